package importer

import (
	"context"
	"fmt"

	"contest-analytics/internal/model"
)

// LegacySnapshots serves report snapshots converted on the fly from the
// legacy document store. Nothing is written back.
type LegacySnapshots struct {
	source DocumentSource
}

func NewLegacySnapshots(source DocumentSource) *LegacySnapshots {
	return &LegacySnapshots{source: source}
}

func (l *LegacySnapshots) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	docs, err := l.source.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("read legacy documents: %w", err)
	}
	snapshot, _, _ := Convert(docs)
	return snapshot, nil
}
