package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"contest-analytics/internal/model"
)

type DocumentSource interface {
	Documents(ctx context.Context) (*Documents, error)
}

type SnapshotStore interface {
	// SaveSnapshot returns how many rows it left out because their natural
	// key is already held by another row.
	SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) (int, error)
}

type QueryLogStore interface {
	Upsert(ctx context.Context, entries []model.QueryLog) error
}

// Importer copies the legacy document store into the relational store.
// Rows are keyed by ids derived from ObjectIDs so reruns update in place.
type Importer struct {
	source    DocumentSource
	store     SnapshotStore
	queryLogs QueryLogStore
	log       zerolog.Logger
}

func New(source DocumentSource, store SnapshotStore, queryLogs QueryLogStore, log zerolog.Logger) *Importer {
	return &Importer{source: source, store: store, queryLogs: queryLogs, log: log}
}

func (i *Importer) Run(ctx context.Context) (Stats, error) {
	docs, err := i.source.Documents(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("read legacy documents: %w", err)
	}

	snapshot, logs, stats := Convert(docs)
	conflicts, err := i.store.SaveSnapshot(ctx, snapshot)
	if err != nil {
		return stats, fmt.Errorf("save snapshot: %w", err)
	}
	stats.SkippedConflicts = conflicts
	if i.queryLogs != nil && len(logs) > 0 {
		if err := i.queryLogs.Upsert(ctx, logs); err != nil {
			return stats, fmt.Errorf("save query logs: %w", err)
		}
	}

	i.log.Info().
		Int("photographers", len(snapshot.Photographers)).
		Int("categories", len(snapshot.Categories)).
		Int("photos", len(snapshot.Photos)).
		Int("judge_scores", len(snapshot.JudgeScores)).
		Int("visitor_votes", len(snapshot.VisitorVotes)).
		Int("winners", len(snapshot.Winners)).
		Int("query_logs", len(logs)).
		Int("skipped_scores", stats.SkippedScores).
		Int("skipped_votes", stats.SkippedVotes).
		Int("skipped_winners", stats.SkippedWinners).
		Int("skipped_query_logs", stats.SkippedQueryLogs).
		Int("skipped_conflicts", stats.SkippedConflicts).
		Msg("legacy import finished")
	return stats, nil
}
