package report

type ID int

const (
	PhotographersMultipleCategories ID = iota + 1
	HighestScoredPhotoReport
	CategoriesHighSubmissions
	JudgesHighActivity
	AverageVotesPerCategoryReport
	PhotosMultipleGalleries
	PhotographersMultipleWins
	CategoriesNoWinners
	VisitorsHighEngagement
	CategoryMostSubmissions
	TopWinnersByCategory
	PhotographersHighScoresNoAwards
)

type Definition struct {
	ID        ID      `json:"id"`
	Slug      string  `json:"slug"`
	Title     string  `json:"title"`
	Parameter string  `json:"parameter,omitempty"`
	Default   float64 `json:"default,omitempty"`
}

var Catalog = []Definition{
	{ID: PhotographersMultipleCategories, Slug: "photographers-multiple-categories", Title: "Photographers who submitted entries in multiple categories"},
	{ID: HighestScoredPhotoReport, Slug: "highest-scored-photo", Title: "Photo with the highest combined judge and visitor score"},
	{ID: CategoriesHighSubmissions, Slug: "categories-high-submissions", Title: "Categories with many submissions", Parameter: "threshold", Default: 50},
	{ID: JudgesHighActivity, Slug: "judges-high-activity", Title: "Judges who scored many entries", Parameter: "threshold", Default: 20},
	{ID: AverageVotesPerCategoryReport, Slug: "average-votes-per-category", Title: "Average visitor votes per category"},
	{ID: PhotosMultipleGalleries, Slug: "photos-multiple-galleries", Title: "Photos displayed in multiple galleries"},
	{ID: PhotographersMultipleWins, Slug: "photographers-multiple-wins", Title: "Photographers who won in more than one category"},
	{ID: CategoriesNoWinners, Slug: "categories-no-winners", Title: "Categories where no winner was announced"},
	{ID: VisitorsHighEngagement, Slug: "visitors-high-engagement", Title: "Visitors who voted for many photos", Parameter: "threshold", Default: 10},
	{ID: CategoryMostSubmissions, Slug: "category-most-submissions", Title: "Category with the most submissions"},
	{ID: TopWinnersByCategory, Slug: "top-winners", Title: "Top 3 winning photos in a category"},
	{ID: PhotographersHighScoresNoAwards, Slug: "photographers-high-scores-no-awards", Title: "Photographers with high judge scores but no awards", Parameter: "minScore", Default: 30},
}

// Lookup returns the catalog entry for id.
func Lookup(id ID) (Definition, bool) {
	for _, def := range Catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
