package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contest-analytics/internal/model"
)

// ContestRepository owns the write paths: scores, votes, winners and the bulk
// import of legacy data.
type ContestRepository struct {
	db *gorm.DB
}

func NewContestRepository(db *gorm.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) FindPhoto(ctx context.Context, id uuid.UUID) (*model.Photo, error) {
	var photo model.Photo
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &photo, nil
}

func (r *ContestRepository) FindVisitor(ctx context.Context, id uuid.UUID) (*model.Visitor, error) {
	var visitor model.Visitor
	if err := r.db.WithContext(ctx).First(&visitor, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &visitor, nil
}

func (r *ContestRepository) FindJudge(ctx context.Context, id uuid.UUID) (*model.Judge, error) {
	var judge model.Judge
	if err := r.db.WithContext(ctx).First(&judge, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &judge, nil
}

func (r *ContestRepository) FindCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// CreateJudgeScore inserts a score. A second score by the same judge for the
// same photo is rejected by the unique index and reported as ErrDuplicate.
func (r *ContestRepository) CreateJudgeScore(ctx context.Context, score *model.JudgeScore) error {
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		return translate(err)
	}
	return nil
}

// CreateVisitorVote inserts a vote; duplicates surface as ErrDuplicate.
func (r *ContestRepository) CreateVisitorVote(ctx context.Context, vote *model.VisitorVote) error {
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		return translate(err)
	}
	return nil
}

// ReplaceWinners swaps the winners of a category in one transaction.
func (r *ContestRepository) ReplaceWinners(ctx context.Context, categoryID uuid.UUID, winners []model.Winner) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&model.Winner{}).Error; err != nil {
			return fmt.Errorf("delete winners: %w", err)
		}
		if len(winners) == 0 {
			return nil
		}
		for i := range winners {
			if winners[i].ID == uuid.Nil {
				winners[i].ID = uuid.New()
			}
		}
		if err := tx.Create(&winners).Error; err != nil {
			return fmt.Errorf("create winners: %w", translate(err))
		}
		return nil
	})
}

// SaveSnapshot upserts every collection of snapshot, keyed by id. Scores,
// votes and winners whose natural key (judge and photo, visitor and photo,
// category and position) already belongs to a different row are left out,
// so rows written by the live service are kept. It returns how many records
// were left out.
func (r *ContestRepository) SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) (int, error) {
	var links []model.PhotoGallery
	seen := make(map[model.PhotoGallery]struct{})
	addLink := func(link model.PhotoGallery) {
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	for _, photo := range snapshot.Photos {
		for _, galleryID := range photo.GalleryIDs {
			addLink(model.PhotoGallery{PhotoID: photo.ID, GalleryID: galleryID})
		}
	}
	for _, gallery := range snapshot.Galleries {
		for _, photoID := range gallery.PhotoIDs {
			addLink(model.PhotoGallery{PhotoID: photoID, GalleryID: gallery.ID})
		}
	}

	skipped := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scores, n, err := withoutTakenKeys(tx, snapshot.JudgeScores,
			func(s model.JudgeScore) [2]uuid.UUID { return [2]uuid.UUID{s.JudgeID, s.PhotoID} },
			func(s model.JudgeScore) uuid.UUID { return s.ID })
		if err != nil {
			return fmt.Errorf("load judge scores: %w", err)
		}
		skipped += n

		votes, n, err := withoutTakenKeys(tx, snapshot.VisitorVotes,
			func(v model.VisitorVote) [2]uuid.UUID { return [2]uuid.UUID{v.VisitorID, v.PhotoID} },
			func(v model.VisitorVote) uuid.UUID { return v.ID })
		if err != nil {
			return fmt.Errorf("load visitor votes: %w", err)
		}
		skipped += n

		winners, n, err := withoutTakenKeys(tx, snapshot.Winners,
			func(w model.Winner) winnerSlot { return winnerSlot{w.CategoryID, w.Position} },
			func(w model.Winner) uuid.UUID { return w.ID })
		if err != nil {
			return fmt.Errorf("load winners: %w", err)
		}
		skipped += n

		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		steps := []struct {
			name  string
			count int
			value interface{}
		}{
			{"photographers", len(snapshot.Photographers), &snapshot.Photographers},
			{"judges", len(snapshot.Judges), &snapshot.Judges},
			{"visitors", len(snapshot.Visitors), &snapshot.Visitors},
			{"categories", len(snapshot.Categories), &snapshot.Categories},
			{"photos", len(snapshot.Photos), &snapshot.Photos},
			{"galleries", len(snapshot.Galleries), &snapshot.Galleries},
			{"judge scores", len(scores), &scores},
			{"visitor votes", len(votes), &votes},
			{"winners", len(winners), &winners},
		}
		for _, step := range steps {
			if step.count == 0 {
				continue
			}
			if err := upsert.CreateInBatches(step.value, 500).Error; err != nil {
				return fmt.Errorf("save %s: %w", step.name, translate(err))
			}
		}
		if len(links) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&links, 500).Error; err != nil {
				return fmt.Errorf("save photo galleries: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return skipped, nil
}

type winnerSlot struct {
	categoryID uuid.UUID
	position   int
}

// withoutTakenKeys drops the rows whose natural key is already stored under
// another id, and rows repeating a key earlier in the batch.
func withoutTakenKeys[T any, K comparable](tx *gorm.DB, rows []T, key func(T) K, id func(T) uuid.UUID) ([]T, int, error) {
	if len(rows) == 0 {
		return nil, 0, nil
	}
	var existing []T
	if err := tx.Find(&existing).Error; err != nil {
		return nil, 0, err
	}
	owner := make(map[K]uuid.UUID, len(existing))
	for _, row := range existing {
		owner[key(row)] = id(row)
	}

	kept := make([]T, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		k := key(row)
		if current, taken := owner[k]; taken && current != id(row) {
			skipped++
			continue
		}
		owner[k] = id(row)
		kept = append(kept, row)
	}
	return kept, skipped, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
