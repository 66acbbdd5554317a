package report

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"contest-analytics/internal/model"
)

var (
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrVisitorNotFound = errors.New("visitor not found")
	ErrWinnerNotFound  = errors.New("winner not found")
)

// PhotoScoreSummary totals the judge scores of one photo. The average is
// not rounded.
func PhotoScoreSummary(s *model.Snapshot, photoID uuid.UUID) (*model.PhotoScoreTotal, error) {
	idx := newIndex(s)
	if _, ok := idx.photos[photoID]; !ok {
		return nil, ErrPhotoNotFound
	}

	scores := make([]model.JudgeScore, 0, len(idx.scoresByPhoto[photoID]))
	for _, score := range idx.scoresByPhoto[photoID] {
		scores = append(scores, *score)
	}
	sort.Slice(scores, func(i, j int) bool {
		if !scores[i].CreatedAt.Equal(scores[j].CreatedAt) {
			return scores[i].CreatedAt.Before(scores[j].CreatedAt)
		}
		return lessID(scores[i].ID, scores[j].ID)
	})

	total := idx.judgeScoreTotal(photoID)
	average := 0.0
	if len(scores) > 0 {
		average = float64(total) / float64(len(scores))
	}
	return &model.PhotoScoreTotal{
		PhotoID:        photoID,
		TotalScore:     total,
		AverageScore:   average,
		NumberOfJudges: len(scores),
		Scores:         scores,
	}, nil
}

func PhotoVotes(s *model.Snapshot, photoID uuid.UUID) (*model.PhotoVoteCount, error) {
	idx := newIndex(s)
	if _, ok := idx.photos[photoID]; !ok {
		return nil, ErrPhotoNotFound
	}
	return &model.PhotoVoteCount{PhotoID: photoID, VoteCount: idx.voteCount(photoID)}, nil
}

// VisitorVoteHistory lists the photos a visitor voted for, oldest vote first.
func VisitorVoteHistory(s *model.Snapshot, visitorID uuid.UUID) (*model.VisitorHistory, error) {
	idx := newIndex(s)
	visitor, ok := idx.visitors[visitorID]
	if !ok {
		return nil, ErrVisitorNotFound
	}

	votes := make([]model.VotedPhoto, 0)
	for _, vote := range idx.validVotes {
		if vote.VisitorID != visitorID {
			continue
		}
		photo := idx.photos[vote.PhotoID]
		row := model.VotedPhoto{
			VoteID:        vote.ID,
			VotedAt:       vote.CreatedAt,
			PhotoID:       photo.ID,
			PhotoTitle:    photo.Title,
			PhotoImageURL: photo.ImageURL,
		}
		if photographer, ok := idx.photographers[photo.PhotographerID]; ok {
			row.PhotographerName = photographer.Name
		}
		if category, ok := idx.categories[photo.CategoryID]; ok {
			row.CategoryName = category.Name
		}
		votes = append(votes, row)
	}
	sort.Slice(votes, func(i, j int) bool {
		if !votes[i].VotedAt.Equal(votes[j].VotedAt) {
			return votes[i].VotedAt.Before(votes[j].VotedAt)
		}
		return lessID(votes[i].VoteID, votes[j].VoteID)
	})

	return &model.VisitorHistory{Visitor: *visitor, Votes: votes, TotalVotes: len(votes)}, nil
}

func WinnerByID(s *model.Snapshot, id uuid.UUID) (*model.WinnerDetail, error) {
	idx := newIndex(s)
	for i := range idx.snapshot.Winners {
		if idx.snapshot.Winners[i].ID == id {
			detail := idx.winnerDetail(&idx.snapshot.Winners[i])
			return &detail, nil
		}
	}
	return nil, ErrWinnerNotFound
}

// Winners lists stored winners, optionally of one category, ordered by
// position.
func Winners(s *model.Snapshot, categoryID *uuid.UUID) []model.WinnerDetail {
	idx := newIndex(s)
	result := make([]model.WinnerDetail, 0, len(idx.snapshot.Winners))
	for i := range idx.snapshot.Winners {
		winner := &idx.snapshot.Winners[i]
		if categoryID != nil && winner.CategoryID != *categoryID {
			continue
		}
		result = append(result, idx.winnerDetail(winner))
	}
	sortWinnerDetails(result)
	return result
}

// CategoryTopWinners returns at most three stored winners of a category. An
// unknown category yields an empty list.
func CategoryTopWinners(s *model.Snapshot, categoryID uuid.UUID) []model.WinnerDetail {
	result := Winners(s, &categoryID)
	if len(result) > model.TopWinnersLimit {
		result = result[:model.TopWinnersLimit]
	}
	return result
}

func (idx *index) winnerDetail(winner *model.Winner) model.WinnerDetail {
	detail := model.WinnerDetail{Winner: *winner}
	if category, ok := idx.categories[winner.CategoryID]; ok {
		c := *category
		detail.Category = &c
	}
	photo, ok := idx.photos[winner.PhotoID]
	if !ok {
		return detail
	}
	p := *photo
	p.GalleryIDs = append([]uuid.UUID(nil), photo.GalleryIDs...)
	detail.Photo = &p
	if photographer, ok := idx.photographers[photo.PhotographerID]; ok {
		ph := *photographer
		detail.Photographer = &ph
	}
	return detail
}

func sortWinnerDetails(rows []model.WinnerDetail) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		if rows[i].CategoryID != rows[j].CategoryID {
			return lessID(rows[i].CategoryID, rows[j].CategoryID)
		}
		return lessID(rows[i].ID, rows[j].ID)
	})
}
