package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"contest-analytics/internal/model"
	"contest-analytics/internal/report"
)

// SnapshotSource supplies the entity collections a report runs against.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

type QueryLogStore interface {
	Create(ctx context.Context, entry *model.QueryLog) error
	Recent(ctx context.Context, limit int) ([]model.QueryLog, error)
}

type AnalyticsService struct {
	source        SnapshotSource
	queryLogs     QueryLogStore
	recordQueries bool
	logLimit      int
	log           zerolog.Logger
	now           func() time.Time
}

func NewAnalyticsService(source SnapshotSource, queryLogs QueryLogStore, recordQueries bool, logLimit int, log zerolog.Logger) *AnalyticsService {
	if logLimit <= 0 {
		logLimit = 100
	}
	return &AnalyticsService{
		source:        source,
		queryLogs:     queryLogs,
		recordQueries: recordQueries,
		logLimit:      logLimit,
		log:           log,
		now:           time.Now,
	}
}

func (s *AnalyticsService) Catalog() []report.Definition {
	return report.Catalog
}

func (s *AnalyticsService) PhotographersInMultipleCategories(ctx context.Context) ([]model.PhotographerCategories, error) {
	return run(ctx, s, report.PhotographersMultipleCategories, nil, func(snap *model.Snapshot) ([]model.PhotographerCategories, error) {
		return report.PhotographersInMultipleCategories(snap), nil
	})
}

func (s *AnalyticsService) HighestScoredPhoto(ctx context.Context) (*model.ScoredPhoto, error) {
	return run(ctx, s, report.HighestScoredPhotoReport, nil, func(snap *model.Snapshot) (*model.ScoredPhoto, error) {
		return report.HighestScoredPhoto(snap), nil
	})
}

func (s *AnalyticsService) CategoriesWithHighSubmissions(ctx context.Context, threshold float64) ([]model.CategorySubmissions, error) {
	return run(ctx, s, report.CategoriesHighSubmissions, thresholdQuery("threshold", threshold), func(snap *model.Snapshot) ([]model.CategorySubmissions, error) {
		return report.CategoriesWithSubmissionsAbove(snap, threshold), nil
	})
}

func (s *AnalyticsService) JudgesWithHighActivity(ctx context.Context, threshold float64) ([]model.JudgeActivity, error) {
	return run(ctx, s, report.JudgesHighActivity, thresholdQuery("threshold", threshold), func(snap *model.Snapshot) ([]model.JudgeActivity, error) {
		return report.JudgesAboveActivity(snap, threshold), nil
	})
}

func (s *AnalyticsService) AverageVotesPerCategory(ctx context.Context) ([]model.CategoryVoteAverage, error) {
	return run(ctx, s, report.AverageVotesPerCategoryReport, nil, func(snap *model.Snapshot) ([]model.CategoryVoteAverage, error) {
		return report.AverageVotesPerCategory(snap), nil
	})
}

func (s *AnalyticsService) PhotosInMultipleGalleries(ctx context.Context) ([]model.PhotoGalleries, error) {
	return run(ctx, s, report.PhotosMultipleGalleries, nil, func(snap *model.Snapshot) ([]model.PhotoGalleries, error) {
		return report.PhotosInMultipleGalleries(snap), nil
	})
}

func (s *AnalyticsService) PhotographersWithMultipleWins(ctx context.Context) ([]model.PhotographerWins, error) {
	return run(ctx, s, report.PhotographersMultipleWins, nil, func(snap *model.Snapshot) ([]model.PhotographerWins, error) {
		return report.PhotographersWithMultipleCategoryWins(snap), nil
	})
}

func (s *AnalyticsService) CategoriesWithNoWinners(ctx context.Context) ([]model.CategoryWithoutWinner, error) {
	return run(ctx, s, report.CategoriesNoWinners, nil, func(snap *model.Snapshot) ([]model.CategoryWithoutWinner, error) {
		return report.CategoriesWithNoWinners(snap), nil
	})
}

func (s *AnalyticsService) VisitorsWithHighEngagement(ctx context.Context, threshold float64) ([]model.VisitorActivity, error) {
	return run(ctx, s, report.VisitorsHighEngagement, thresholdQuery("threshold", threshold), func(snap *model.Snapshot) ([]model.VisitorActivity, error) {
		return report.VisitorsAboveActivity(snap, threshold), nil
	})
}

func (s *AnalyticsService) CategoryWithMostSubmissions(ctx context.Context) (*model.CategorySubmissions, error) {
	return run(ctx, s, report.CategoryMostSubmissions, nil, func(snap *model.Snapshot) (*model.CategorySubmissions, error) {
		return report.CategoryWithMostSubmissions(snap), nil
	})
}

func (s *AnalyticsService) TopWinnersByCategory(ctx context.Context, categoryName string) ([]model.CategoryWinner, error) {
	suffix := []string{url.PathEscape(categoryName)}
	return run(ctx, s, report.TopWinnersByCategory, suffix, func(snap *model.Snapshot) ([]model.CategoryWinner, error) {
		rows, err := report.TopWinnersInCategory(snap, categoryName)
		if errors.Is(err, report.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return rows, err
	})
}

func (s *AnalyticsService) PhotographersWithHighScoresNoAwards(ctx context.Context, minScore float64) ([]model.UnawardedPhotographer, error) {
	return run(ctx, s, report.PhotographersHighScoresNoAwards, thresholdQuery("minScore", minScore), func(snap *model.Snapshot) ([]model.UnawardedPhotographer, error) {
		return report.HighScorersWithoutAwards(snap, minScore), nil
	})
}

type QueryLogInput struct {
	QueryID    int             `json:"queryId"`
	QueryTitle string          `json:"queryTitle"`
	Endpoint   string          `json:"endpoint"`
	Results    json.RawMessage `json:"results"`
}

// SaveQueryLog stores a report result submitted by the dashboard.
func (s *AnalyticsService) SaveQueryLog(ctx context.Context, input QueryLogInput) (*model.QueryLog, error) {
	if input.QueryID <= 0 || strings.TrimSpace(input.QueryTitle) == "" || strings.TrimSpace(input.Endpoint) == "" {
		return nil, fmt.Errorf("%w: queryId, queryTitle and endpoint are required", ErrInvalidInput)
	}
	if len(input.Results) == 0 || !json.Valid(input.Results) {
		return nil, fmt.Errorf("%w: results must be valid JSON", ErrInvalidInput)
	}

	entry := &model.QueryLog{
		QueryID:    input.QueryID,
		QueryTitle: strings.TrimSpace(input.QueryTitle),
		Endpoint:   strings.TrimSpace(input.Endpoint),
		Results:    datatypes.JSON(input.Results),
		ExecutedAt: s.now().UTC(),
	}
	if err := s.queryLogs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *AnalyticsService) RecentQueryLogs(ctx context.Context) ([]model.QueryLog, error) {
	return s.queryLogs.Recent(ctx, s.logLimit)
}

// run loads a snapshot, computes one report and, when enabled, records the
// result. A failed recording is logged and does not affect the caller.
func run[T any](ctx context.Context, s *AnalyticsService, id report.ID, endpointSuffix []string, compute func(*model.Snapshot) (T, error)) (T, error) {
	var zero T

	started := s.now()
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	result, err := compute(snapshot)
	if err != nil {
		return zero, err
	}

	def, _ := report.Lookup(id)
	s.log.Debug().
		Int("report_id", int(id)).
		Str("report", def.Slug).
		Dur("took", s.now().Sub(started)).
		Msg("report computed")

	if s.recordQueries && s.queryLogs != nil {
		s.record(ctx, def, endpointSuffix, result)
	}
	return result, nil
}

func (s *AnalyticsService) record(ctx context.Context, def report.Definition, endpointSuffix []string, result any) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.log.Warn().Err(err).Str("report", def.Slug).Msg("failed to encode report for query log")
		return
	}

	endpoint := "/api/analytics/" + def.Slug
	for _, part := range endpointSuffix {
		if strings.HasPrefix(part, "?") {
			endpoint += part
		} else {
			endpoint += "/" + part
		}
	}

	entry := &model.QueryLog{
		QueryID:    int(def.ID),
		QueryTitle: def.Title,
		Endpoint:   endpoint,
		Results:    datatypes.JSON(payload),
		ExecutedAt: s.now().UTC(),
	}
	if err := s.queryLogs.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("report", def.Slug).Msg("failed to record query log")
	}
}

func thresholdQuery(name string, value float64) []string {
	return []string{"?" + name + "=" + strconv.FormatFloat(value, 'f', -1, 64)}
}
