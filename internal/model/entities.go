package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Photographer struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Phone        string    `json:"phone,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Judge struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Expertise    string    `json:"expertise,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Visitor struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Photo galleries are stored in photo_galleries; GalleryIDs is filled when a
// snapshot is loaded.
type Photo struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Title          string      `json:"title" gorm:"not null"`
	Description    string      `json:"description,omitempty"`
	ImageURL       string      `json:"imageUrl" gorm:"column:image_url;not null"`
	PhotographerID uuid.UUID   `json:"photographerId" gorm:"type:uuid;not null;index:idx_photos_photographer_category,priority:1"`
	CategoryID     uuid.UUID   `json:"categoryId" gorm:"type:uuid;not null;index:idx_photos_photographer_category,priority:2"`
	GalleryIDs     []uuid.UUID `json:"galleries" gorm:"-"`
	CreatedAt      time.Time   `json:"createdAt"`
}

type Gallery struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string      `json:"name" gorm:"not null;uniqueIndex"`
	Description string      `json:"description,omitempty"`
	PhotoIDs    []uuid.UUID `json:"photos" gorm:"-"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// PhotoGallery is the single source of truth for the photo/gallery
// many-to-many relationship.
type PhotoGallery struct {
	PhotoID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	GalleryID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (PhotoGallery) TableName() string {
	return "photo_galleries"
}

const (
	MinJudgeScore = 0
	MaxJudgeScore = 10
)

type JudgeScore struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	JudgeID   uuid.UUID `json:"judgeId" gorm:"type:uuid;not null;uniqueIndex:idx_judge_scores_judge_photo,priority:1"`
	PhotoID   uuid.UUID `json:"photoId" gorm:"type:uuid;not null;uniqueIndex:idx_judge_scores_judge_photo,priority:2;index"`
	Score     int       `json:"score" gorm:"not null;check:chk_judge_scores_score,score >= 0 AND score <= 10"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type VisitorVote struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VisitorID uuid.UUID `json:"visitorId" gorm:"type:uuid;not null;uniqueIndex:idx_visitor_votes_visitor_photo,priority:1"`
	PhotoID   uuid.UUID `json:"photoId" gorm:"type:uuid;not null;uniqueIndex:idx_visitor_votes_visitor_photo,priority:2;index"`
	CreatedAt time.Time `json:"createdAt"`
}

type Winner struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PhotoID      uuid.UUID `json:"photoId" gorm:"type:uuid;not null;index"`
	CategoryID   uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;uniqueIndex:idx_winners_category_position,priority:1"`
	Position     int       `json:"position" gorm:"not null;uniqueIndex:idx_winners_category_position,priority:2;check:chk_winners_position,position >= 1"`
	TotalScore   int       `json:"totalScore" gorm:"not null"`
	Announcement string    `json:"announcement,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// QueryLog is an audit record of a report run. It is never read by the
// reporting engine.
type QueryLog struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	QueryID    int            `json:"queryId" gorm:"not null;index"`
	QueryTitle string         `json:"queryTitle" gorm:"not null"`
	Endpoint   string         `json:"endpoint" gorm:"not null"`
	Results    datatypes.JSON `json:"results" gorm:"not null"`
	ExecutedAt time.Time      `json:"executedAt" gorm:"not null;index"`
}

// Snapshot is the full set of entity collections a report runs against.
type Snapshot struct {
	Photographers []Photographer
	Judges        []Judge
	Visitors      []Visitor
	Categories    []Category
	Photos        []Photo
	Galleries     []Gallery
	JudgeScores   []JudgeScore
	VisitorVotes  []VisitorVote
	Winners       []Winner
}
