// Package report computes contest analytics over an in-memory snapshot of the
// entity store. Every function is deterministic and read-only: the snapshot
// passed in is never modified, and records whose references do not resolve
// are left out of the result instead of causing an error.
package report

import (
	"errors"
	"math"
	"sort"

	"github.com/google/uuid"

	"contest-analytics/internal/model"
)

var ErrCategoryNotFound = errors.New("category not found")

// PhotographersInMultipleCategories lists photographers whose photos span more
// than one category.
func PhotographersInMultipleCategories(s *model.Snapshot) []model.PhotographerCategories {
	idx := newIndex(s)

	type group struct {
		photographer *model.Photographer
		categories   map[uuid.UUID]*model.Category
	}
	groups := make(map[uuid.UUID]*group)
	for _, photo := range idx.photos {
		photographer, category, ok := idx.photoOwners(photo)
		if !ok {
			continue
		}
		g, exists := groups[photographer.ID]
		if !exists {
			g = &group{photographer: photographer, categories: make(map[uuid.UUID]*model.Category)}
			groups[photographer.ID] = g
		}
		g.categories[category.ID] = category
	}

	result := make([]model.PhotographerCategories, 0)
	for _, g := range groups {
		if len(g.categories) <= 1 {
			continue
		}
		names := make([]string, 0, len(g.categories))
		for _, category := range g.categories {
			names = append(names, category.Name)
		}
		sort.Strings(names)
		result = append(result, model.PhotographerCategories{
			PhotographerID:    g.photographer.ID,
			PhotographerName:  g.photographer.Name,
			PhotographerEmail: g.photographer.Email,
			CategoryCount:     len(g.categories),
			Categories:        names,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CategoryCount != result[j].CategoryCount {
			return result[i].CategoryCount > result[j].CategoryCount
		}
		return byNameThenID(result[i].PhotographerName, result[j].PhotographerName, result[i].PhotographerID, result[j].PhotographerID)
	})
	return result
}

// HighestScoredPhoto returns the photo with the highest combined score, or nil
// when no photo resolves.
func HighestScoredPhoto(s *model.Snapshot) *model.ScoredPhoto {
	idx := newIndex(s)

	candidates := make([]*model.Photo, 0, len(idx.photos))
	for _, photo := range idx.photos {
		if _, _, ok := idx.photoOwners(photo); ok {
			candidates = append(candidates, photo)
		}
	}
	ranking := idx.rank(candidates)
	if len(ranking) == 0 {
		return nil
	}

	best := ranking[0]
	photo := idx.photos[best.PhotoID]
	photographer, category, _ := idx.photoOwners(photo)
	return &model.ScoredPhoto{
		PhotoID:           photo.ID,
		Title:             photo.Title,
		ImageURL:          photo.ImageURL,
		PhotographerName:  photographer.Name,
		CategoryName:      category.Name,
		TotalJudgeScore:   best.JudgeScoreTotal,
		TotalVisitorVotes: best.VoteCount,
		CombinedScore:     best.Combined(),
	}
}

// CategoriesWithSubmissionsAbove lists categories with strictly more than
// threshold photos, largest first.
func CategoriesWithSubmissionsAbove(s *model.Snapshot, threshold float64) []model.CategorySubmissions {
	idx := newIndex(s)

	result := make([]model.CategorySubmissions, 0)
	for _, row := range idx.submissionCounts() {
		if float64(row.SubmissionCount) > threshold {
			result = append(result, row)
		}
	}
	return result
}

// JudgesAboveActivity lists judges who scored strictly more than threshold
// photos.
func JudgesAboveActivity(s *model.Snapshot, threshold float64) []model.JudgeActivity {
	idx := newIndex(s)

	counts := make(map[uuid.UUID]int)
	for _, score := range idx.validScores {
		if _, ok := idx.judges[score.JudgeID]; ok {
			counts[score.JudgeID]++
		}
	}

	result := make([]model.JudgeActivity, 0)
	for judgeID, count := range counts {
		if float64(count) <= threshold {
			continue
		}
		judge := idx.judges[judgeID]
		result = append(result, model.JudgeActivity{
			JudgeID:     judge.ID,
			JudgeName:   judge.Name,
			JudgeEmail:  judge.Email,
			Expertise:   judge.Expertise,
			ScoredCount: count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ScoredCount != result[j].ScoredCount {
			return result[i].ScoredCount > result[j].ScoredCount
		}
		return byNameThenID(result[i].JudgeName, result[j].JudgeName, result[i].JudgeID, result[j].JudgeID)
	})
	return result
}

// AverageVotesPerCategory reports, for every category with at least one
// photo, the mean number of visitor votes per photo.
func AverageVotesPerCategory(s *model.Snapshot) []model.CategoryVoteAverage {
	idx := newIndex(s)

	result := make([]model.CategoryVoteAverage, 0, len(idx.photosByCategory))
	for categoryID, photos := range idx.photosByCategory {
		totalVotes := 0
		for _, photo := range photos {
			totalVotes += idx.voteCount(photo.ID)
		}
		category := idx.categories[categoryID]
		result = append(result, model.CategoryVoteAverage{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			TotalVotes:   totalVotes,
			PhotoCount:   len(photos),
			AverageVotes: round2(float64(totalVotes) / float64(len(photos))),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].AverageVotes != result[j].AverageVotes {
			return result[i].AverageVotes > result[j].AverageVotes
		}
		return byNameThenID(result[i].CategoryName, result[j].CategoryName, result[i].CategoryID, result[j].CategoryID)
	})
	return result
}

// PhotosInMultipleGalleries lists photos shown in more than one gallery.
func PhotosInMultipleGalleries(s *model.Snapshot) []model.PhotoGalleries {
	idx := newIndex(s)

	result := make([]model.PhotoGalleries, 0)
	for _, photo := range idx.photos {
		galleries := idx.photoGalleries(photo)
		if len(galleries) <= 1 {
			continue
		}
		photographer, category, ok := idx.photoOwners(photo)
		if !ok {
			continue
		}
		names := make([]string, 0, len(galleries))
		for _, gallery := range galleries {
			names = append(names, gallery.Name)
		}
		sort.Strings(names)
		result = append(result, model.PhotoGalleries{
			PhotoID:          photo.ID,
			Title:            photo.Title,
			ImageURL:         photo.ImageURL,
			PhotographerName: photographer.Name,
			CategoryName:     category.Name,
			GalleryCount:     len(galleries),
			Galleries:        names,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].GalleryCount != result[j].GalleryCount {
			return result[i].GalleryCount > result[j].GalleryCount
		}
		return byNameThenID(result[i].Title, result[j].Title, result[i].PhotoID, result[j].PhotoID)
	})
	return result
}

// PhotographersWithMultipleCategoryWins lists photographers holding winner
// positions in more than one category.
func PhotographersWithMultipleCategoryWins(s *model.Snapshot) []model.PhotographerWins {
	idx := newIndex(s)

	type group struct {
		photographer *model.Photographer
		categories   map[uuid.UUID]*model.Category
		wins         int
	}
	groups := make(map[uuid.UUID]*group)
	for i := range idx.snapshot.Winners {
		winner := &idx.snapshot.Winners[i]
		photo, ok := idx.photos[winner.PhotoID]
		if !ok {
			continue
		}
		photographer, ok := idx.photographers[photo.PhotographerID]
		if !ok {
			continue
		}
		g, exists := groups[photographer.ID]
		if !exists {
			g = &group{photographer: photographer, categories: make(map[uuid.UUID]*model.Category)}
			groups[photographer.ID] = g
		}
		g.wins++
		if category, ok := idx.categories[winner.CategoryID]; ok {
			g.categories[category.ID] = category
		}
	}

	result := make([]model.PhotographerWins, 0)
	for _, g := range groups {
		if len(g.categories) <= 1 {
			continue
		}
		names := make([]string, 0, len(g.categories))
		for _, category := range g.categories {
			names = append(names, category.Name)
		}
		sort.Strings(names)
		result = append(result, model.PhotographerWins{
			PhotographerID:    g.photographer.ID,
			PhotographerName:  g.photographer.Name,
			PhotographerEmail: g.photographer.Email,
			CategoryCount:     len(g.categories),
			TotalWins:         g.wins,
			Categories:        names,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CategoryCount != result[j].CategoryCount {
			return result[i].CategoryCount > result[j].CategoryCount
		}
		if result[i].TotalWins != result[j].TotalWins {
			return result[i].TotalWins > result[j].TotalWins
		}
		return byNameThenID(result[i].PhotographerName, result[j].PhotographerName, result[i].PhotographerID, result[j].PhotographerID)
	})
	return result
}

// CategoriesWithNoWinners lists categories no winner row points at.
func CategoriesWithNoWinners(s *model.Snapshot) []model.CategoryWithoutWinner {
	idx := newIndex(s)

	result := make([]model.CategoryWithoutWinner, 0)
	for _, category := range idx.categories {
		if len(idx.winnersByCategory[category.ID]) > 0 {
			continue
		}
		result = append(result, model.CategoryWithoutWinner{
			CategoryID:      category.ID,
			Name:            category.Name,
			Description:     category.Description,
			SubmissionCount: len(idx.photosByCategory[category.ID]),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return byNameThenID(result[i].Name, result[j].Name, result[i].CategoryID, result[j].CategoryID)
	})
	return result
}

// VisitorsAboveActivity lists visitors who voted for strictly more than
// threshold photos.
func VisitorsAboveActivity(s *model.Snapshot, threshold float64) []model.VisitorActivity {
	idx := newIndex(s)

	counts := make(map[uuid.UUID]int)
	for _, vote := range idx.validVotes {
		if _, ok := idx.visitors[vote.VisitorID]; ok {
			counts[vote.VisitorID]++
		}
	}

	result := make([]model.VisitorActivity, 0)
	for visitorID, count := range counts {
		if float64(count) <= threshold {
			continue
		}
		visitor := idx.visitors[visitorID]
		result = append(result, model.VisitorActivity{
			VisitorID:    visitor.ID,
			VisitorName:  visitor.Name,
			VisitorEmail: visitor.Email,
			VoteCount:    count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].VoteCount != result[j].VoteCount {
			return result[i].VoteCount > result[j].VoteCount
		}
		return byNameThenID(result[i].VisitorName, result[j].VisitorName, result[i].VisitorID, result[j].VisitorID)
	})
	return result
}

// CategoryWithMostSubmissions returns the category with the most photos. Ties
// go to the lowest category id. Nil when there are no photos.
func CategoryWithMostSubmissions(s *model.Snapshot) *model.CategorySubmissions {
	rows := newIndex(s).submissionCounts()
	if len(rows) == 0 {
		return nil
	}

	best := rows[0]
	for _, row := range rows[1:] {
		if row.SubmissionCount > best.SubmissionCount ||
			(row.SubmissionCount == best.SubmissionCount && lessID(row.CategoryID, best.CategoryID)) {
			best = row
		}
	}
	return &best
}

// TopWinnersInCategory returns up to three winners of the category with the
// given (case-sensitive) name, best position first.
func TopWinnersInCategory(s *model.Snapshot, categoryName string) ([]model.CategoryWinner, error) {
	idx := newIndex(s)

	var category *model.Category
	for _, candidate := range idx.categories {
		if candidate.Name == categoryName {
			category = candidate
			break
		}
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	winners := append([]*model.Winner(nil), idx.winnersByCategory[category.ID]...)
	sort.Slice(winners, func(i, j int) bool {
		if winners[i].Position != winners[j].Position {
			return winners[i].Position < winners[j].Position
		}
		return lessID(winners[i].ID, winners[j].ID)
	})

	result := make([]model.CategoryWinner, 0, model.TopWinnersLimit)
	for _, winner := range winners {
		if len(result) == model.TopWinnersLimit {
			break
		}
		photo, ok := idx.photos[winner.PhotoID]
		if !ok {
			continue
		}
		photographer, ok := idx.photographers[photo.PhotographerID]
		if !ok {
			continue
		}
		result = append(result, model.CategoryWinner{
			WinnerID:          winner.ID,
			Position:          winner.Position,
			TotalScore:        winner.TotalScore,
			Announcement:      winner.Announcement,
			PhotoID:           photo.ID,
			PhotoTitle:        photo.Title,
			PhotoImageURL:     photo.ImageURL,
			PhotographerName:  photographer.Name,
			PhotographerEmail: photographer.Email,
		})
	}
	return result, nil
}

// HighScorersWithoutAwards groups, per photographer, the photos whose judge
// score total reaches minScore but that never became a winner.
func HighScorersWithoutAwards(s *model.Snapshot, minScore float64) []model.UnawardedPhotographer {
	idx := newIndex(s)

	type scoredTitle struct {
		title string
		score int
	}
	type group struct {
		photographer *model.Photographer
		photos       []scoredTitle
		highest      int
		total        int
	}
	groups := make(map[uuid.UUID]*group)
	for _, photo := range idx.photos {
		total := idx.judgeScoreTotal(photo.ID)
		if float64(total) < minScore || len(idx.winnersByPhoto[photo.ID]) > 0 {
			continue
		}
		photographer, _, ok := idx.photoOwners(photo)
		if !ok {
			continue
		}
		g, exists := groups[photographer.ID]
		if !exists {
			g = &group{photographer: photographer, highest: total}
			groups[photographer.ID] = g
		}
		g.photos = append(g.photos, scoredTitle{title: photo.Title, score: total})
		g.total += total
		if total > g.highest {
			g.highest = total
		}
	}

	result := make([]model.UnawardedPhotographer, 0, len(groups))
	for _, g := range groups {
		sort.Slice(g.photos, func(i, j int) bool {
			if g.photos[i].score != g.photos[j].score {
				return g.photos[i].score > g.photos[j].score
			}
			return g.photos[i].title < g.photos[j].title
		})
		titles := make([]string, 0, len(g.photos))
		for _, p := range g.photos {
			titles = append(titles, p.title)
		}
		result = append(result, model.UnawardedPhotographer{
			PhotographerID:    g.photographer.ID,
			PhotographerName:  g.photographer.Name,
			PhotographerEmail: g.photographer.Email,
			HighestScore:      g.highest,
			AverageScore:      round2(float64(g.total) / float64(len(g.photos))),
			Photos:            titles,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].HighestScore != result[j].HighestScore {
			return result[i].HighestScore > result[j].HighestScore
		}
		return byNameThenID(result[i].PhotographerName, result[j].PhotographerName, result[i].PhotographerID, result[j].PhotographerID)
	})
	return result
}

// submissionCounts counts photos per resolvable category, largest first.
func (idx *index) submissionCounts() []model.CategorySubmissions {
	rows := make([]model.CategorySubmissions, 0, len(idx.photosByCategory))
	for categoryID, photos := range idx.photosByCategory {
		category := idx.categories[categoryID]
		rows = append(rows, model.CategorySubmissions{
			CategoryID:      category.ID,
			CategoryName:    category.Name,
			Description:     category.Description,
			SubmissionCount: len(photos),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SubmissionCount != rows[j].SubmissionCount {
			return rows[i].SubmissionCount > rows[j].SubmissionCount
		}
		return byNameThenID(rows[i].CategoryName, rows[j].CategoryName, rows[i].CategoryID, rows[j].CategoryID)
	})
	return rows
}

func byNameThenID(nameA, nameB string, idA, idB uuid.UUID) bool {
	if nameA != nameB {
		return nameA < nameB
	}
	return lessID(idA, idB)
}

// round2 rounds half to even at two decimals.
func round2(value float64) float64 {
	return math.RoundToEven(value*100) / 100
}
