package report

import (
	"sort"

	"github.com/google/uuid"

	"contest-analytics/internal/model"
)

// RankPhotos orders photos by combined score (judge score total plus vote
// count), highest first. Equal scores are ordered by photo id ascending.
func RankPhotos(s *model.Snapshot, photos []model.Photo) []model.PhotoScore {
	return newIndex(s).rank(photoRefs(photos))
}

func (idx *index) rank(photos []*model.Photo) []model.PhotoScore {
	ranking := make([]model.PhotoScore, 0, len(photos))
	for _, photo := range photos {
		ranking = append(ranking, model.PhotoScore{
			PhotoID:         photo.ID,
			JudgeScoreTotal: idx.judgeScoreTotal(photo.ID),
			VoteCount:       idx.voteCount(photo.ID),
		})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Combined() != ranking[j].Combined() {
			return ranking[i].Combined() > ranking[j].Combined()
		}
		return lessID(ranking[i].PhotoID, ranking[j].PhotoID)
	})
	return ranking
}

// ComputeWinners ranks the photos of a category and assigns positions 1..limit
// to the best of them. Nothing is persisted; IDs of the returned winners are
// left for the caller to assign.
func ComputeWinners(s *model.Snapshot, categoryID uuid.UUID, limit int) []model.Winner {
	idx := newIndex(s)
	ranking := idx.rank(idx.photosByCategory[categoryID])
	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}

	winners := make([]model.Winner, 0, len(ranking))
	for i, entry := range ranking {
		winners = append(winners, model.Winner{
			PhotoID:    entry.PhotoID,
			CategoryID: categoryID,
			Position:   i + 1,
			TotalScore: entry.Combined(),
		})
	}
	return winners
}

func photoRefs(photos []model.Photo) []*model.Photo {
	refs := make([]*model.Photo, 0, len(photos))
	for i := range photos {
		refs = append(refs, &photos[i])
	}
	return refs
}
