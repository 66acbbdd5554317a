package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"contest-analytics/internal/model"
	"contest-analytics/internal/report"
	"contest-analytics/internal/repository"
)

type ContestService struct {
	contest  *repository.ContestRepository
	snapshot SnapshotSource
	log      zerolog.Logger
}

func NewContestService(contest *repository.ContestRepository, snapshot SnapshotSource, log zerolog.Logger) *ContestService {
	return &ContestService{contest: contest, snapshot: snapshot, log: log}
}

type ScoreInput struct {
	PhotoID uuid.UUID `json:"photoId" binding:"required"`
	Score   *int      `json:"score" binding:"required"`
	Comment string    `json:"comment"`
}

// SubmitScore records a judge's score for a photo. Only judges may score and
// each judge scores a photo at most once.
func (s *ContestService) SubmitScore(ctx context.Context, principal model.Principal, input ScoreInput) (*model.JudgeScore, error) {
	if !principal.IsJudge() {
		return nil, ErrPermissionDenied
	}
	if input.Score == nil {
		return nil, ErrScoreMissing
	}
	if *input.Score < model.MinJudgeScore || *input.Score > model.MaxJudgeScore {
		return nil, ErrScoreOutOfRange
	}
	if _, err := s.contest.FindJudge(ctx, principal.UserID); err != nil {
		return nil, mapLookup(err, ErrJudgeNotFound)
	}
	if _, err := s.contest.FindPhoto(ctx, input.PhotoID); err != nil {
		return nil, mapLookup(err, ErrPhotoNotFound)
	}

	score := &model.JudgeScore{
		JudgeID: principal.UserID,
		PhotoID: input.PhotoID,
		Score:   *input.Score,
		Comment: strings.TrimSpace(input.Comment),
	}
	if err := s.contest.CreateJudgeScore(ctx, score); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyScored
		}
		return nil, err
	}

	s.log.Info().
		Str("judge_id", score.JudgeID.String()).
		Str("photo_id", score.PhotoID.String()).
		Int("score", score.Score).
		Msg("judge score recorded")
	return score, nil
}

type VoteInput struct {
	VisitorID uuid.UUID `json:"visitorId"`
	PhotoID   uuid.UUID `json:"photoId"`
}

func (s *ContestService) SubmitVote(ctx context.Context, input VoteInput) (*model.VisitorVote, error) {
	if input.VisitorID == uuid.Nil || input.PhotoID == uuid.Nil {
		return nil, fmt.Errorf("%w: visitorId and photoId are required", ErrInvalidInput)
	}
	if _, err := s.contest.FindVisitor(ctx, input.VisitorID); err != nil {
		return nil, mapLookup(err, ErrVisitorNotFound)
	}
	if _, err := s.contest.FindPhoto(ctx, input.PhotoID); err != nil {
		return nil, mapLookup(err, ErrPhotoNotFound)
	}

	vote := &model.VisitorVote{VisitorID: input.VisitorID, PhotoID: input.PhotoID}
	if err := s.contest.CreateVisitorVote(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}
	return vote, nil
}

// ComputeWinners ranks the photos of the named category and replaces its
// stored winners with the top three.
func (s *ContestService) ComputeWinners(ctx context.Context, principal model.Principal, categoryName, announcement string) ([]model.Winner, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	category, err := s.contest.FindCategoryByName(ctx, categoryName)
	if err != nil {
		return nil, mapLookup(err, ErrCategoryNotFound)
	}

	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	winners := report.ComputeWinners(snapshot, category.ID, model.TopWinnersLimit)
	announcement = strings.TrimSpace(announcement)
	for i := range winners {
		winners[i].Announcement = announcement
	}

	if err := s.contest.ReplaceWinners(ctx, category.ID, winners); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("category", category.Name).
		Int("winners", len(winners)).
		Msg("winners computed")
	return winners, nil
}

// ListWinners returns stored winners with their photo, photographer and
// category attached.
func (s *ContestService) ListWinners(ctx context.Context, categoryID *uuid.UUID) ([]model.WinnerDetail, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return report.Winners(snapshot, categoryID), nil
}

func (s *ContestService) Winner(ctx context.Context, id uuid.UUID) (*model.WinnerDetail, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	winner, err := report.WinnerByID(snapshot, id)
	if err != nil {
		return nil, mapReport(err)
	}
	return winner, nil
}

func (s *ContestService) CategoryTopWinners(ctx context.Context, categoryID uuid.UUID) ([]model.WinnerDetail, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return report.CategoryTopWinners(snapshot, categoryID), nil
}

func (s *ContestService) PhotoScoreTotal(ctx context.Context, photoID uuid.UUID) (*model.PhotoScoreTotal, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	total, err := report.PhotoScoreSummary(snapshot, photoID)
	if err != nil {
		return nil, mapReport(err)
	}
	return total, nil
}

func (s *ContestService) PhotoVoteCount(ctx context.Context, photoID uuid.UUID) (*model.PhotoVoteCount, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	count, err := report.PhotoVotes(snapshot, photoID)
	if err != nil {
		return nil, mapReport(err)
	}
	return count, nil
}

func (s *ContestService) VisitorActivity(ctx context.Context, visitorID uuid.UUID) (*model.VisitorHistory, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	history, err := report.VisitorVoteHistory(snapshot, visitorID)
	if err != nil {
		return nil, mapReport(err)
	}
	return history, nil
}

func (s *ContestService) load(ctx context.Context) (*model.Snapshot, error) {
	snapshot, err := s.snapshot.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return snapshot, nil
}

func mapReport(err error) error {
	switch {
	case errors.Is(err, report.ErrPhotoNotFound):
		return ErrPhotoNotFound
	case errors.Is(err, report.ErrVisitorNotFound):
		return ErrVisitorNotFound
	case errors.Is(err, report.ErrWinnerNotFound):
		return ErrWinnerNotFound
	case errors.Is(err, report.ErrCategoryNotFound):
		return ErrCategoryNotFound
	default:
		return err
	}
}

func mapLookup(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}
