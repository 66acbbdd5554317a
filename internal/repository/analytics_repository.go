package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contest-analytics/internal/model"
)

// AnalyticsRepository reads consistent snapshots of the entity store for the
// reporting engine.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Snapshot loads the nine entity collections inside one read transaction.
func (r *AnalyticsRepository) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	var (
		snapshot model.Snapshot
		links    []model.PhotoGallery
	)

	loads := []struct {
		name string
		dest interface{}
	}{
		{"photographers", &snapshot.Photographers},
		{"judges", &snapshot.Judges},
		{"visitors", &snapshot.Visitors},
		{"categories", &snapshot.Categories},
		{"photos", &snapshot.Photos},
		{"galleries", &snapshot.Galleries},
		{"photo galleries", &links},
		{"judge scores", &snapshot.JudgeScores},
		{"visitor votes", &snapshot.VisitorVotes},
		{"winners", &snapshot.Winners},
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, load := range loads {
			query := tx
			if load.name != "photo galleries" {
				query = tx.Order("created_at ASC").Order("id ASC")
			}
			if err := query.Find(load.dest).Error; err != nil {
				return fmt.Errorf("load %s: %w", load.name, err)
			}
		}
		return nil
	}, snapshotTxOptions(r.db)...)
	if err != nil {
		return nil, err
	}

	attachGalleries(&snapshot, links)
	return &snapshot, nil
}

// attachGalleries fills both directions of the photo/gallery relationship from
// the join rows.
func attachGalleries(snapshot *model.Snapshot, links []model.PhotoGallery) {
	byPhoto := make(map[uuid.UUID][]uuid.UUID)
	byGallery := make(map[uuid.UUID][]uuid.UUID)
	for _, link := range links {
		byPhoto[link.PhotoID] = append(byPhoto[link.PhotoID], link.GalleryID)
		byGallery[link.GalleryID] = append(byGallery[link.GalleryID], link.PhotoID)
	}
	for i := range snapshot.Photos {
		snapshot.Photos[i].GalleryIDs = byPhoto[snapshot.Photos[i].ID]
	}
	for i := range snapshot.Galleries {
		snapshot.Galleries[i].PhotoIDs = byGallery[snapshot.Galleries[i].ID]
	}
}

func snapshotTxOptions(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
}
