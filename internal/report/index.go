package report

import (
	"bytes"

	"github.com/google/uuid"

	"contest-analytics/internal/model"
)

// index holds the joins every report is built from. Lookups are one-to-one by
// id; the *By* maps are one-to-many. Judge scores and visitor votes whose
// photo does not resolve are dropped while the index is built.
type index struct {
	snapshot *model.Snapshot

	photographers map[uuid.UUID]*model.Photographer
	judges        map[uuid.UUID]*model.Judge
	visitors      map[uuid.UUID]*model.Visitor
	categories    map[uuid.UUID]*model.Category
	photos        map[uuid.UUID]*model.Photo
	galleries     map[uuid.UUID]*model.Gallery

	scoresByPhoto     map[uuid.UUID][]*model.JudgeScore
	votesByPhoto      map[uuid.UUID][]*model.VisitorVote
	winnersByPhoto    map[uuid.UUID][]*model.Winner
	winnersByCategory map[uuid.UUID][]*model.Winner
	photosByCategory  map[uuid.UUID][]*model.Photo
	validScores       []*model.JudgeScore
	validVotes        []*model.VisitorVote
}

func newIndex(s *model.Snapshot) *index {
	if s == nil {
		s = &model.Snapshot{}
	}
	idx := &index{
		snapshot:          s,
		photographers:     make(map[uuid.UUID]*model.Photographer, len(s.Photographers)),
		judges:            make(map[uuid.UUID]*model.Judge, len(s.Judges)),
		visitors:          make(map[uuid.UUID]*model.Visitor, len(s.Visitors)),
		categories:        make(map[uuid.UUID]*model.Category, len(s.Categories)),
		photos:            make(map[uuid.UUID]*model.Photo, len(s.Photos)),
		galleries:         make(map[uuid.UUID]*model.Gallery, len(s.Galleries)),
		scoresByPhoto:     make(map[uuid.UUID][]*model.JudgeScore),
		votesByPhoto:      make(map[uuid.UUID][]*model.VisitorVote),
		winnersByPhoto:    make(map[uuid.UUID][]*model.Winner),
		winnersByCategory: make(map[uuid.UUID][]*model.Winner),
		photosByCategory:  make(map[uuid.UUID][]*model.Photo),
	}

	for i := range s.Photographers {
		idx.photographers[s.Photographers[i].ID] = &s.Photographers[i]
	}
	for i := range s.Judges {
		idx.judges[s.Judges[i].ID] = &s.Judges[i]
	}
	for i := range s.Visitors {
		idx.visitors[s.Visitors[i].ID] = &s.Visitors[i]
	}
	for i := range s.Categories {
		idx.categories[s.Categories[i].ID] = &s.Categories[i]
	}
	for i := range s.Galleries {
		idx.galleries[s.Galleries[i].ID] = &s.Galleries[i]
	}
	for i := range s.Photos {
		photo := &s.Photos[i]
		idx.photos[photo.ID] = photo
		if _, ok := idx.categories[photo.CategoryID]; ok {
			idx.photosByCategory[photo.CategoryID] = append(idx.photosByCategory[photo.CategoryID], photo)
		}
	}
	for i := range s.JudgeScores {
		score := &s.JudgeScores[i]
		if _, ok := idx.photos[score.PhotoID]; !ok {
			continue
		}
		idx.scoresByPhoto[score.PhotoID] = append(idx.scoresByPhoto[score.PhotoID], score)
		idx.validScores = append(idx.validScores, score)
	}
	for i := range s.VisitorVotes {
		vote := &s.VisitorVotes[i]
		if _, ok := idx.photos[vote.PhotoID]; !ok {
			continue
		}
		idx.votesByPhoto[vote.PhotoID] = append(idx.votesByPhoto[vote.PhotoID], vote)
		idx.validVotes = append(idx.validVotes, vote)
	}
	for i := range s.Winners {
		winner := &s.Winners[i]
		idx.winnersByPhoto[winner.PhotoID] = append(idx.winnersByPhoto[winner.PhotoID], winner)
		idx.winnersByCategory[winner.CategoryID] = append(idx.winnersByCategory[winner.CategoryID], winner)
	}

	return idx
}

// photoOwners resolves the photographer and category of a photo. ok is false
// when either reference dangles.
func (idx *index) photoOwners(photo *model.Photo) (*model.Photographer, *model.Category, bool) {
	photographer, ok := idx.photographers[photo.PhotographerID]
	if !ok {
		return nil, nil, false
	}
	category, ok := idx.categories[photo.CategoryID]
	if !ok {
		return nil, nil, false
	}
	return photographer, category, true
}

func (idx *index) judgeScoreTotal(photoID uuid.UUID) int {
	total := 0
	for _, score := range idx.scoresByPhoto[photoID] {
		total += score.Score
	}
	return total
}

func (idx *index) voteCount(photoID uuid.UUID) int {
	return len(idx.votesByPhoto[photoID])
}

// photoGalleries resolves the galleries of a photo, skipping dangling and
// repeated ids.
func (idx *index) photoGalleries(photo *model.Photo) []*model.Gallery {
	seen := make(map[uuid.UUID]struct{}, len(photo.GalleryIDs))
	result := make([]*model.Gallery, 0, len(photo.GalleryIDs))
	for _, id := range photo.GalleryIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if gallery, ok := idx.galleries[id]; ok {
			result = append(result, gallery)
		}
	}
	return result
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
