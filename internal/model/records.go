package model

import (
	"time"

	"github.com/google/uuid"
)

type PhotoScoreTotal struct {
	PhotoID        uuid.UUID    `json:"photoId"`
	TotalScore     int          `json:"totalScore"`
	AverageScore   float64      `json:"averageScore"`
	NumberOfJudges int          `json:"numberOfJudges"`
	Scores         []JudgeScore `json:"scores"`
}

type PhotoVoteCount struct {
	PhotoID   uuid.UUID `json:"photoId"`
	VoteCount int       `json:"voteCount"`
}

type VotedPhoto struct {
	VoteID           uuid.UUID `json:"voteId"`
	VotedAt          time.Time `json:"votedAt"`
	PhotoID          uuid.UUID `json:"photoId"`
	PhotoTitle       string    `json:"photoTitle"`
	PhotoImageURL    string    `json:"photoImageUrl"`
	PhotographerName string    `json:"photographerName,omitempty"`
	CategoryName     string    `json:"categoryName,omitempty"`
}

type VisitorHistory struct {
	Visitor    Visitor      `json:"visitor"`
	Votes      []VotedPhoto `json:"votes"`
	TotalVotes int          `json:"totalVotes"`
}

// WinnerDetail is a stored winner with its photo, photographer and category
// attached. References that do not resolve are left nil.
type WinnerDetail struct {
	Winner
	Photo        *Photo        `json:"photo"`
	Photographer *Photographer `json:"photographer"`
	Category     *Category     `json:"category"`
}
