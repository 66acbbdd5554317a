package model

import "github.com/google/uuid"

type PhotographerCategories struct {
	PhotographerID    uuid.UUID `json:"photographerId"`
	PhotographerName  string    `json:"photographerName"`
	PhotographerEmail string    `json:"photographerEmail"`
	CategoryCount     int       `json:"categoryCount"`
	Categories        []string  `json:"categories"`
}

type ScoredPhoto struct {
	PhotoID           uuid.UUID `json:"photoId"`
	Title             string    `json:"title"`
	ImageURL          string    `json:"imageUrl"`
	PhotographerName  string    `json:"photographerName"`
	CategoryName      string    `json:"categoryName"`
	TotalJudgeScore   int       `json:"totalJudgeScore"`
	TotalVisitorVotes int       `json:"totalVisitorVotes"`
	CombinedScore     int       `json:"combinedScore"`
}

type CategorySubmissions struct {
	CategoryID      uuid.UUID `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
	Description     string    `json:"description,omitempty"`
	SubmissionCount int       `json:"submissionCount"`
}

type JudgeActivity struct {
	JudgeID     uuid.UUID `json:"judgeId"`
	JudgeName   string    `json:"judgeName"`
	JudgeEmail  string    `json:"judgeEmail"`
	Expertise   string    `json:"expertise,omitempty"`
	ScoredCount int       `json:"scoredCount"`
}

type CategoryVoteAverage struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	TotalVotes   int       `json:"totalVotes"`
	PhotoCount   int       `json:"photoCount"`
	AverageVotes float64   `json:"averageVotes"`
}

type PhotoGalleries struct {
	PhotoID          uuid.UUID `json:"photoId"`
	Title            string    `json:"title"`
	ImageURL         string    `json:"imageUrl"`
	PhotographerName string    `json:"photographerName"`
	CategoryName     string    `json:"categoryName"`
	GalleryCount     int       `json:"galleryCount"`
	Galleries        []string  `json:"galleries"`
}

type PhotographerWins struct {
	PhotographerID    uuid.UUID `json:"photographerId"`
	PhotographerName  string    `json:"photographerName"`
	PhotographerEmail string    `json:"photographerEmail"`
	CategoryCount     int       `json:"categoryCount"`
	TotalWins         int       `json:"totalWins"`
	Categories        []string  `json:"categories"`
}

type CategoryWithoutWinner struct {
	CategoryID      uuid.UUID `json:"categoryId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	SubmissionCount int       `json:"submissionCount"`
}

type VisitorActivity struct {
	VisitorID    uuid.UUID `json:"visitorId"`
	VisitorName  string    `json:"visitorName"`
	VisitorEmail string    `json:"visitorEmail"`
	VoteCount    int       `json:"voteCount"`
}

type CategoryWinner struct {
	WinnerID          uuid.UUID `json:"winnerId"`
	Position          int       `json:"position"`
	TotalScore        int       `json:"totalScore"`
	Announcement      string    `json:"announcement,omitempty"`
	PhotoID           uuid.UUID `json:"photoId"`
	PhotoTitle        string    `json:"photoTitle"`
	PhotoImageURL     string    `json:"photoImageUrl"`
	PhotographerName  string    `json:"photographerName"`
	PhotographerEmail string    `json:"photographerEmail"`
}

type UnawardedPhotographer struct {
	PhotographerID    uuid.UUID `json:"photographerId"`
	PhotographerName  string    `json:"photographerName"`
	PhotographerEmail string    `json:"photographerEmail"`
	HighestScore      int       `json:"highestScore"`
	AverageScore      float64   `json:"averageScore"`
	Photos            []string  `json:"photos"`
}

// PhotoScore is one entry of a combined-score ranking.
type PhotoScore struct {
	PhotoID         uuid.UUID
	JudgeScoreTotal int
	VoteCount       int
}

func (p PhotoScore) Combined() int {
	return p.JudgeScoreTotal + p.VoteCount
}
