package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/datatypes"

	"contest-analytics/internal/model"
)

// objectIDNamespace seeds the name-based UUIDs derived from ObjectIDs, so a
// document maps to the same row on every import.
var objectIDNamespace = uuid.MustParse("5b0f3c52-7d0e-4f8e-9a51-2f4c1c7f6a11")

func idFor(oid bson.ObjectID) uuid.UUID {
	if oid.IsZero() {
		return uuid.Nil
	}
	return uuid.NewSHA1(objectIDNamespace, oid[:])
}

func idsFor(oids []bson.ObjectID) []uuid.UUID {
	if len(oids) == 0 {
		return nil
	}
	out := make([]uuid.UUID, 0, len(oids))
	for _, oid := range oids {
		if id := idFor(oid); id != uuid.Nil {
			out = append(out, id)
		}
	}
	return out
}

// Stats counts the legacy records an import left out.
type Stats struct {
	SkippedScores    int
	SkippedVotes     int
	SkippedWinners   int
	SkippedQueryLogs int
	// SkippedConflicts counts rows whose natural key already belongs to a
	// row written through the API. It is set by Importer.Run.
	SkippedConflicts int
}

// Convert maps legacy documents onto the relational model. References are
// carried over as they are; dangling ones are left for the reports to skip.
// Records that would violate a store constraint are dropped and counted.
func Convert(docs *Documents) (*model.Snapshot, []model.QueryLog, Stats) {
	var stats Stats
	s := &model.Snapshot{}

	for _, d := range docs.Photographers {
		s.Photographers = append(s.Photographers, model.Photographer{
			ID:           idFor(d.ID),
			Name:         strings.TrimSpace(d.Name),
			Email:        strings.ToLower(strings.TrimSpace(d.Email)),
			PasswordHash: d.Password,
			Phone:        d.Phone,
			Bio:          d.Bio,
			CreatedAt:    d.CreatedAt,
		})
	}
	for _, d := range docs.Judges {
		s.Judges = append(s.Judges, model.Judge{
			ID:           idFor(d.ID),
			Name:         strings.TrimSpace(d.Name),
			Email:        strings.ToLower(strings.TrimSpace(d.Email)),
			PasswordHash: d.Password,
			Expertise:    d.Expertise,
			CreatedAt:    d.CreatedAt,
		})
	}
	for _, d := range docs.Visitors {
		s.Visitors = append(s.Visitors, model.Visitor{
			ID:        idFor(d.ID),
			Name:      strings.TrimSpace(d.Name),
			Email:     strings.ToLower(strings.TrimSpace(d.Email)),
			CreatedAt: d.CreatedAt,
		})
	}
	for _, d := range docs.Categories {
		s.Categories = append(s.Categories, model.Category{
			ID:          idFor(d.ID),
			Name:        strings.TrimSpace(d.Name),
			Description: d.Description,
			CreatedAt:   d.CreatedAt,
		})
	}
	for _, d := range docs.Photos {
		s.Photos = append(s.Photos, model.Photo{
			ID:             idFor(d.ID),
			Title:          strings.TrimSpace(d.Title),
			Description:    d.Description,
			ImageURL:       d.ImageURL,
			PhotographerID: idFor(d.PhotographerID),
			CategoryID:     idFor(d.CategoryID),
			GalleryIDs:     idsFor(d.Galleries),
			CreatedAt:      d.CreatedAt,
		})
	}
	for _, d := range docs.Galleries {
		s.Galleries = append(s.Galleries, model.Gallery{
			ID:          idFor(d.ID),
			Name:        strings.TrimSpace(d.Name),
			Description: d.Description,
			PhotoIDs:    idsFor(d.Photos),
			CreatedAt:   d.CreatedAt,
		})
	}

	seenScores := make(map[[2]uuid.UUID]struct{})
	for _, d := range docs.JudgeScores {
		score := int(math.Round(d.Score))
		key := [2]uuid.UUID{idFor(d.JudgeID), idFor(d.PhotoID)}
		if _, dup := seenScores[key]; dup || score < model.MinJudgeScore || score > model.MaxJudgeScore {
			stats.SkippedScores++
			continue
		}
		seenScores[key] = struct{}{}
		s.JudgeScores = append(s.JudgeScores, model.JudgeScore{
			ID:        idFor(d.ID),
			JudgeID:   key[0],
			PhotoID:   key[1],
			Score:     score,
			Comment:   d.Comment,
			CreatedAt: d.CreatedAt,
		})
	}

	seenVotes := make(map[[2]uuid.UUID]struct{})
	for _, d := range docs.VisitorVotes {
		key := [2]uuid.UUID{idFor(d.VisitorID), idFor(d.PhotoID)}
		if _, dup := seenVotes[key]; dup {
			stats.SkippedVotes++
			continue
		}
		seenVotes[key] = struct{}{}
		s.VisitorVotes = append(s.VisitorVotes, model.VisitorVote{
			ID:        idFor(d.ID),
			VisitorID: key[0],
			PhotoID:   key[1],
			CreatedAt: d.CreatedAt,
		})
	}

	for _, d := range docs.Winners {
		if d.Position < 1 {
			stats.SkippedWinners++
			continue
		}
		s.Winners = append(s.Winners, model.Winner{
			ID:           idFor(d.ID),
			PhotoID:      idFor(d.PhotoID),
			CategoryID:   idFor(d.CategoryID),
			Position:     d.Position,
			TotalScore:   int(math.Round(d.TotalScore)),
			Announcement: d.Announcement,
			CreatedAt:    d.CreatedAt,
		})
	}

	var logs []model.QueryLog
	for _, d := range docs.QueryLogs {
		results, err := resultsJSON(d.Results)
		if err != nil {
			stats.SkippedQueryLogs++
			continue
		}
		logs = append(logs, model.QueryLog{
			ID:         idFor(d.ID),
			QueryID:    d.QueryID,
			QueryTitle: d.QueryTitle,
			Endpoint:   d.Endpoint,
			Results:    results,
			ExecutedAt: d.ExecutedAt,
		})
	}

	return s, logs, stats
}

// resultsJSON renders a stored report result as relaxed extended JSON.
func resultsJSON(raw bson.RawValue) (datatypes.JSON, error) {
	if raw.Type == 0 {
		return nil, fmt.Errorf("results missing")
	}
	wrapped, err := bson.MarshalExtJSON(bson.D{{Key: "v", Value: raw}}, false, false)
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	var holder struct {
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(wrapped, &holder); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return datatypes.JSON(holder.V), nil
}
