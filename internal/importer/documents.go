package importer

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Documents is the legacy contest database as read from MongoDB.
type Documents struct {
	Photographers []photographerDoc
	Judges        []judgeDoc
	Visitors      []visitorDoc
	Categories    []categoryDoc
	Photos        []photoDoc
	Galleries     []galleryDoc
	JudgeScores   []judgeScoreDoc
	VisitorVotes  []visitorVoteDoc
	Winners       []winnerDoc
	QueryLogs     []queryLogDoc
}

type photographerDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Phone     string        `bson:"phone"`
	Bio       string        `bson:"bio"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type judgeDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Expertise string        `bson:"expertise"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type visitorDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type categoryDoc struct {
	ID          bson.ObjectID `bson:"_id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

type photoDoc struct {
	ID             bson.ObjectID   `bson:"_id"`
	Title          string          `bson:"title"`
	Description    string          `bson:"description"`
	ImageURL       string          `bson:"imageUrl"`
	PhotographerID bson.ObjectID   `bson:"photographerId"`
	CategoryID     bson.ObjectID   `bson:"categoryId"`
	Galleries      []bson.ObjectID `bson:"galleries"`
	CreatedAt      time.Time       `bson:"createdAt"`
}

type galleryDoc struct {
	ID          bson.ObjectID   `bson:"_id"`
	Name        string          `bson:"name"`
	Description string          `bson:"description"`
	Photos      []bson.ObjectID `bson:"photos"`
	CreatedAt   time.Time       `bson:"createdAt"`
}

type judgeScoreDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	JudgeID   bson.ObjectID `bson:"judgeId"`
	PhotoID   bson.ObjectID `bson:"photoId"`
	Score     float64       `bson:"score"`
	Comment   string        `bson:"comment"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type visitorVoteDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	VisitorID bson.ObjectID `bson:"visitorId"`
	PhotoID   bson.ObjectID `bson:"photoId"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type winnerDoc struct {
	ID           bson.ObjectID `bson:"_id"`
	PhotoID      bson.ObjectID `bson:"photoId"`
	CategoryID   bson.ObjectID `bson:"categoryId"`
	Position     int           `bson:"position"`
	TotalScore   float64       `bson:"totalScore"`
	Announcement string        `bson:"announcement"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

type queryLogDoc struct {
	ID         bson.ObjectID `bson:"_id"`
	QueryID    int           `bson:"queryId"`
	QueryTitle string        `bson:"queryTitle"`
	Endpoint   string        `bson:"endpoint"`
	Results    bson.RawValue `bson:"results"`
	ExecutedAt time.Time     `bson:"executedAt"`
}
