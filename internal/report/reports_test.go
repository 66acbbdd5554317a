package report

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"contest-analytics/internal/model"
)

// fixture builds snapshots with readable names instead of raw ids.
type fixture struct {
	s            model.Snapshot
	photographer map[string]uuid.UUID
	category     map[string]uuid.UUID
	judge        map[string]uuid.UUID
	visitor      map[string]uuid.UUID
	gallery      map[string]uuid.UUID
	photo        map[string]uuid.UUID
}

func newFixture() *fixture {
	return &fixture{
		photographer: map[string]uuid.UUID{},
		category:     map[string]uuid.UUID{},
		judge:        map[string]uuid.UUID{},
		visitor:      map[string]uuid.UUID{},
		gallery:      map[string]uuid.UUID{},
		photo:        map[string]uuid.UUID{},
	}
}

func (f *fixture) addPhotographer(name string) uuid.UUID {
	id := uuid.New()
	f.photographer[name] = id
	f.s.Photographers = append(f.s.Photographers, model.Photographer{ID: id, Name: name, Email: name + "@example.com"})
	return id
}

func (f *fixture) addCategory(name string) uuid.UUID {
	id := uuid.New()
	f.category[name] = id
	f.s.Categories = append(f.s.Categories, model.Category{ID: id, Name: name, Description: name + " photography"})
	return id
}

func (f *fixture) addJudge(name string) uuid.UUID {
	id := uuid.New()
	f.judge[name] = id
	f.s.Judges = append(f.s.Judges, model.Judge{ID: id, Name: name, Email: name + "@judges.example.com"})
	return id
}

func (f *fixture) addVisitor(name string) uuid.UUID {
	id := uuid.New()
	f.visitor[name] = id
	f.s.Visitors = append(f.s.Visitors, model.Visitor{ID: id, Name: name, Email: name + "@visitors.example.com"})
	return id
}

func (f *fixture) addGallery(name string) uuid.UUID {
	id := uuid.New()
	f.gallery[name] = id
	f.s.Galleries = append(f.s.Galleries, model.Gallery{ID: id, Name: name})
	return id
}

func (f *fixture) addPhoto(title, photographer, category string, galleries ...string) uuid.UUID {
	id := uuid.New()
	f.photo[title] = id
	photo := model.Photo{
		ID:             id,
		Title:          title,
		ImageURL:       "/uploads/" + title + ".jpg",
		PhotographerID: f.photographer[photographer],
		CategoryID:     f.category[category],
	}
	for _, g := range galleries {
		photo.GalleryIDs = append(photo.GalleryIDs, f.gallery[g])
	}
	f.s.Photos = append(f.s.Photos, photo)
	return id
}

func (f *fixture) addPhotos(n int, photographer, category string) {
	for i := 0; i < n; i++ {
		f.addPhoto(fmt.Sprintf("%s-%s-%d", category, photographer, i), photographer, category)
	}
}

func (f *fixture) score(judge, photo string, score int) {
	f.s.JudgeScores = append(f.s.JudgeScores, model.JudgeScore{
		ID: uuid.New(), JudgeID: f.judge[judge], PhotoID: f.photo[photo], Score: score,
	})
}

func (f *fixture) vote(visitor, photo string) {
	f.s.VisitorVotes = append(f.s.VisitorVotes, model.VisitorVote{
		ID: uuid.New(), VisitorID: f.visitor[visitor], PhotoID: f.photo[photo],
	})
}

func (f *fixture) win(photo, category string, position int) {
	f.s.Winners = append(f.s.Winners, model.Winner{
		ID: uuid.New(), PhotoID: f.photo[photo], CategoryID: f.category[category], Position: position,
	})
}

func TestCategoriesWithSubmissionsAbove_DefaultThreshold(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addCategory("Portrait")
	f.addCategory("Street")
	f.addPhotos(51, "ana", "Nature")
	f.addPhotos(10, "ana", "Portrait")
	f.addPhotos(10, "ana", "Street")

	rows := CategoriesWithSubmissionsAbove(&f.s, model.DefaultSubmissionThreshold)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %+v", len(rows), rows)
	}
	if rows[0].CategoryName != "Nature" || rows[0].SubmissionCount != 51 {
		t.Fatalf("unexpected row %+v", rows[0])
	}
}

func TestCategoriesWithSubmissionsAbove_RowsExceedThreshold(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	for i, name := range []string{"Nature", "Portrait", "Wildlife", "Street"} {
		f.addCategory(name)
		f.addPhotos(i*3, "ana", name)
	}

	for _, threshold := range []float64{-1, 0, 2, 3, 5, 9, 100} {
		rows := CategoriesWithSubmissionsAbove(&f.s, threshold)
		for _, row := range rows {
			if float64(row.SubmissionCount) <= threshold {
				t.Fatalf("threshold %v: row %+v does not exceed it", threshold, row)
			}
		}
		for i := 1; i < len(rows); i++ {
			if rows[i-1].SubmissionCount < rows[i].SubmissionCount {
				t.Fatalf("threshold %v: rows not sorted descending: %+v", threshold, rows)
			}
		}
	}
}

func TestHighestScoredPhoto_CombinedScore(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addJudge("j1")
	f.addJudge("j2")
	f.addJudge("j3")
	f.addVisitor("v1")
	f.addVisitor("v2")
	f.addPhoto("P", "ana", "Nature")
	f.addPhoto("Q", "ana", "Nature")
	f.score("j1", "P", 6)
	f.score("j2", "P", 7)
	f.score("j3", "P", 8)
	f.vote("v1", "P")
	f.vote("v2", "P")
	f.score("j1", "Q", 10)

	best := HighestScoredPhoto(&f.s)
	if best == nil {
		t.Fatal("expected a photo")
	}
	if best.Title != "P" || best.CombinedScore != 23 {
		t.Fatalf("unexpected best photo %+v", best)
	}

	manual := 0
	for _, score := range f.s.JudgeScores {
		if score.PhotoID == best.PhotoID {
			manual += score.Score
		}
	}
	for _, vote := range f.s.VisitorVotes {
		if vote.PhotoID == best.PhotoID {
			manual++
		}
	}
	if manual != best.CombinedScore {
		t.Fatalf("combined score %d does not match raw records %d", best.CombinedScore, manual)
	}
	if best.TotalJudgeScore != 21 || best.TotalVisitorVotes != 2 {
		t.Fatalf("unexpected components %+v", best)
	}
}

func TestHighestScoredPhoto_EmptyAndTies(t *testing.T) {
	if got := HighestScoredPhoto(&model.Snapshot{}); got != nil {
		t.Fatalf("expected nil for empty snapshot, got %+v", got)
	}
	if got := HighestScoredPhoto(nil); got != nil {
		t.Fatalf("expected nil for nil snapshot, got %+v", got)
	}

	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	a := f.addPhoto("A", "ana", "Nature")
	b := f.addPhoto("B", "ana", "Nature")
	want := a
	if lessID(b, a) {
		want = b
	}
	for i := 0; i < 5; i++ {
		got := HighestScoredPhoto(&f.s)
		if got.PhotoID != want {
			t.Fatalf("tie should resolve to lowest photo id %s, got %s", want, got.PhotoID)
		}
	}
}

func TestJudgesAboveActivity_Boundaries(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addJudge("busy")
	f.addJudge("casual")
	f.addJudge("idle")
	for i := 0; i < 4; i++ {
		title := fmt.Sprintf("photo-%d", i)
		f.addPhoto(title, "ana", "Nature")
		f.score("busy", title, 5)
		if i == 0 {
			f.score("casual", title, 7)
		}
	}

	rows := JudgesAboveActivity(&f.s, 0)
	if len(rows) != 2 {
		t.Fatalf("threshold 0 should include every active judge, got %+v", rows)
	}
	if rows[0].JudgeName != "busy" || rows[0].ScoredCount != 4 || rows[1].JudgeName != "casual" {
		t.Fatalf("unexpected order %+v", rows)
	}

	if rows := JudgesAboveActivity(&f.s, math.Inf(1)); len(rows) != 0 {
		t.Fatalf("infinite threshold should yield nothing, got %+v", rows)
	}
	if rows := JudgesAboveActivity(&f.s, model.DefaultJudgeThreshold); len(rows) != 0 {
		t.Fatalf("default threshold should yield nothing, got %+v", rows)
	}
}

func TestVisitorsAboveActivity_StrictThreshold(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addVisitor("V")
	f.addVisitor("W")
	for i := 0; i < 11; i++ {
		title := fmt.Sprintf("photo-%d", i)
		f.addPhoto(title, "ana", "Nature")
		f.vote("V", title)
	}
	f.vote("W", "photo-0")

	rows := VisitorsAboveActivity(&f.s, model.DefaultVisitorThreshold)
	if len(rows) != 1 || rows[0].VisitorName != "V" || rows[0].VoteCount != 11 {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows := VisitorsAboveActivity(&f.s, 11); len(rows) != 0 {
		t.Fatalf("threshold 11 must exclude 11 votes, got %+v", rows)
	}
}

func TestPhotographersInMultipleCategories(t *testing.T) {
	f := newFixture()
	f.addPhotographer("X")
	f.addPhotographer("Y")
	f.addCategory("Nature")
	f.addCategory("Street")
	f.addCategory("Portrait")
	f.addPhotos(3, "X", "Street")
	f.addPhotos(2, "X", "Nature")
	f.addPhotos(4, "Y", "Portrait")

	rows := PhotographersInMultipleCategories(&f.s)
	if len(rows) != 1 {
		t.Fatalf("expected only X, got %+v", rows)
	}
	if rows[0].PhotographerName != "X" || rows[0].CategoryCount != 2 {
		t.Fatalf("unexpected row %+v", rows[0])
	}
	if !reflect.DeepEqual(rows[0].Categories, []string{"Nature", "Street"}) {
		t.Fatalf("unexpected categories %v", rows[0].Categories)
	}
}

func TestAverageVotesPerCategory_RoundsHalfToEven(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Portrait")
	f.addCategory("Wildlife")
	for i := 1; i <= 5; i++ {
		f.addVisitor(fmt.Sprintf("v%d", i))
	}
	f.addPhotos(8, "ana", "Portrait")
	f.addPhotos(8, "ana", "Wildlife")
	f.vote("v1", "Portrait-ana-0")
	for i := 1; i <= 5; i++ {
		f.vote(fmt.Sprintf("v%d", i), "Wildlife-ana-0")
	}

	want := map[string]float64{"Portrait": 0.12, "Wildlife": 0.62}
	for _, row := range AverageVotesPerCategory(&f.s) {
		if row.AverageVotes != want[row.CategoryName] {
			t.Fatalf("%s: expected %v, got %v", row.CategoryName, want[row.CategoryName], row.AverageVotes)
		}
	}
}

func TestAverageVotesPerCategory_Rounding(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addCategory("Street")
	f.addVisitor("v1")
	f.addVisitor("v2")
	f.addPhoto("n1", "ana", "Nature")
	f.addPhoto("n2", "ana", "Nature")
	f.addPhoto("n3", "ana", "Nature")
	f.addPhoto("s1", "ana", "Street")
	f.vote("v1", "n1")
	f.vote("v2", "n1")
	f.vote("v1", "n2")
	f.vote("v1", "s1")
	f.vote("v2", "s1")

	rows := AverageVotesPerCategory(&f.s)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[0].CategoryName != "Street" || rows[0].AverageVotes != 2 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].CategoryName != "Nature" || rows[1].AverageVotes != 1 || rows[1].TotalVotes != 3 || rows[1].PhotoCount != 3 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}

	f.addPhoto("n4", "ana", "Nature")
	f.addPhoto("n5", "ana", "Nature")
	f.addPhoto("n6", "ana", "Nature")
	rows = AverageVotesPerCategory(&f.s)
	for _, row := range rows {
		if row.CategoryName == "Nature" && row.AverageVotes != 0.5 {
			t.Fatalf("expected 0.5, got %v", row.AverageVotes)
		}
	}
}

func TestPhotosInMultipleGalleries(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addGallery("Spring")
	f.addGallery("Summer")
	f.addGallery("Autumn")
	f.addPhoto("three", "ana", "Nature", "Spring", "Summer", "Autumn")
	f.addPhoto("two", "ana", "Nature", "Summer", "Spring")
	f.addPhoto("one", "ana", "Nature", "Spring")
	f.s.Photos[2].GalleryIDs = append(f.s.Photos[2].GalleryIDs, uuid.New())

	rows := PhotosInMultipleGalleries(&f.s)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[0].Title != "three" || rows[0].GalleryCount != 3 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if !reflect.DeepEqual(rows[1].Galleries, []string{"Spring", "Summer"}) {
		t.Fatalf("unexpected galleries %v", rows[1].Galleries)
	}
}

func TestPhotographersWithMultipleCategoryWins(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addPhotographer("bo")
	f.addCategory("Nature")
	f.addCategory("Street")
	f.addPhoto("a1", "ana", "Nature")
	f.addPhoto("a2", "ana", "Street")
	f.addPhoto("a3", "ana", "Nature")
	f.addPhoto("b1", "bo", "Nature")
	f.win("a1", "Nature", 1)
	f.win("a3", "Nature", 2)
	f.win("a2", "Street", 1)
	f.win("b1", "Nature", 3)

	rows := PhotographersWithMultipleCategoryWins(&f.s)
	if len(rows) != 1 {
		t.Fatalf("expected only ana, got %+v", rows)
	}
	if rows[0].PhotographerName != "ana" || rows[0].CategoryCount != 2 || rows[0].TotalWins != 3 {
		t.Fatalf("unexpected row %+v", rows[0])
	}
}

func TestCategoriesWithNoWinners_Complement(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addCategory("Street")
	f.addCategory("Abstract")
	f.addCategory("Empty")
	f.addPhotos(4, "ana", "Abstract")
	f.addPhoto("n", "ana", "Nature")
	f.addPhoto("s", "ana", "Street")
	f.win("n", "Nature", 1)
	f.s.Winners = append(f.s.Winners, model.Winner{ID: uuid.New(), PhotoID: uuid.New(), CategoryID: f.category["Street"], Position: 1})

	rows := CategoriesWithNoWinners(&f.s)

	won := map[uuid.UUID]bool{}
	for _, w := range f.s.Winners {
		won[w.CategoryID] = true
	}
	got := map[uuid.UUID]bool{}
	for _, row := range rows {
		got[row.CategoryID] = true
		if won[row.CategoryID] {
			t.Fatalf("category %s has winners", row.Name)
		}
	}
	for _, c := range f.s.Categories {
		if !won[c.ID] && !got[c.ID] {
			t.Fatalf("category %s missing from result", c.Name)
		}
	}

	for _, row := range rows {
		if row.Name == "Abstract" && row.SubmissionCount != 4 {
			t.Fatalf("Abstract should report 4 submissions, got %d", row.SubmissionCount)
		}
	}
}

func TestCategoryWithMostSubmissions(t *testing.T) {
	if got := CategoryWithMostSubmissions(&model.Snapshot{}); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}

	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addCategory("Street")
	f.addPhotos(2, "ana", "Nature")
	f.addPhotos(5, "ana", "Street")

	got := CategoryWithMostSubmissions(&f.s)
	if got == nil || got.CategoryName != "Street" || got.SubmissionCount != 5 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestTopWinnersInCategory(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addCategory("Street")
	for i := 1; i <= 4; i++ {
		title := fmt.Sprintf("n%d", i)
		f.addPhoto(title, "ana", "Nature")
	}
	f.win("n4", "Nature", 4)
	f.win("n2", "Nature", 2)
	f.win("n1", "Nature", 1)
	f.win("n3", "Nature", 3)

	rows, err := TopWinnersInCategory(&f.s, "Nature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Fatalf("row %d has position %d", i, row.Position)
		}
		if row.PhotographerName != "ana" {
			t.Fatalf("photographer not joined: %+v", row)
		}
	}

	rows, err = TopWinnersInCategory(&f.s, "Street")
	if err != nil || len(rows) != 0 {
		t.Fatalf("expected empty result, got %+v, %v", rows, err)
	}

	if _, err := TopWinnersInCategory(&f.s, "nature"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for case mismatch, got %v", err)
	}
}

func TestHighScorersWithoutAwards(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addPhotographer("bo")
	f.addCategory("Nature")
	judges := []string{"j1", "j2", "j3", "j4"}
	for _, j := range judges {
		f.addJudge(j)
	}
	f.addPhoto("a-high", "ana", "Nature")
	f.addPhoto("a-mid", "ana", "Nature")
	f.addPhoto("a-low", "ana", "Nature")
	f.addPhoto("b-won", "bo", "Nature")
	for _, j := range judges {
		f.score(j, "a-high", 10)
		f.score(j, "a-mid", 8)
		f.score(j, "a-low", 5)
		f.score(j, "b-won", 10)
	}
	f.win("b-won", "Nature", 1)

	rows := HighScorersWithoutAwards(&f.s, model.DefaultMinJudgeScore)
	if len(rows) != 1 {
		t.Fatalf("expected only ana, got %+v", rows)
	}
	row := rows[0]
	if row.HighestScore != 40 || row.AverageScore != 36 {
		t.Fatalf("unexpected scores %+v", row)
	}
	if !reflect.DeepEqual(row.Photos, []string{"a-high", "a-mid"}) {
		t.Fatalf("unexpected photos %v", row.Photos)
	}

	rows = HighScorersWithoutAwards(&f.s, 32)
	if len(rows) != 1 || !reflect.DeepEqual(rows[0].Photos, []string{"a-high", "a-mid"}) {
		t.Fatalf("minScore is inclusive, got %+v", rows)
	}
}

func TestDanglingReferencesAreExcluded(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addJudge("j1")
	f.addVisitor("v1")
	f.addPhoto("kept", "ana", "Nature")
	f.score("j1", "kept", 3)

	ghostPhoto := uuid.New()
	f.s.JudgeScores = append(f.s.JudgeScores, model.JudgeScore{ID: uuid.New(), JudgeID: f.judge["j1"], PhotoID: ghostPhoto, Score: 9})
	f.s.VisitorVotes = append(f.s.VisitorVotes, model.VisitorVote{ID: uuid.New(), VisitorID: f.visitor["v1"], PhotoID: ghostPhoto})
	f.s.Photos = append(f.s.Photos, model.Photo{ID: uuid.New(), Title: "orphan", PhotographerID: uuid.New(), CategoryID: f.category["Nature"]})

	rows := JudgesAboveActivity(&f.s, 0)
	if len(rows) != 1 || rows[0].ScoredCount != 1 {
		t.Fatalf("score on deleted photo should be excluded, got %+v", rows)
	}
	if rows := VisitorsAboveActivity(&f.s, 0); len(rows) != 0 {
		t.Fatalf("vote on deleted photo should be excluded, got %+v", rows)
	}
	best := HighestScoredPhoto(&f.s)
	if best == nil || best.Title != "kept" || best.CombinedScore != 3 {
		t.Fatalf("unexpected best photo %+v", best)
	}
}

func TestReportsAreIdempotentAndReadOnly(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addPhotographer("bo")
	f.addCategory("Nature")
	f.addCategory("Street")
	f.addJudge("j1")
	f.addVisitor("v1")
	f.addGallery("g1")
	f.addGallery("g2")
	f.addPhoto("p1", "ana", "Nature", "g1", "g2")
	f.addPhoto("p2", "ana", "Street", "g2")
	f.addPhoto("p3", "bo", "Street")
	f.score("j1", "p1", 9)
	f.score("j1", "p2", 4)
	f.vote("v1", "p3")
	f.win("p1", "Nature", 1)

	before := fmt.Sprintf("%+v", f.s)
	run := func() []any {
		top, err := TopWinnersInCategory(&f.s, "Nature")
		return []any{
			PhotographersInMultipleCategories(&f.s),
			HighestScoredPhoto(&f.s),
			CategoriesWithSubmissionsAbove(&f.s, 0),
			JudgesAboveActivity(&f.s, 0),
			AverageVotesPerCategory(&f.s),
			PhotosInMultipleGalleries(&f.s),
			PhotographersWithMultipleCategoryWins(&f.s),
			CategoriesWithNoWinners(&f.s),
			VisitorsAboveActivity(&f.s, 0),
			CategoryWithMostSubmissions(&f.s),
			top, err,
			HighScorersWithoutAwards(&f.s, 0),
		}
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ between runs:\n%+v\n%+v", first, second)
	}
	if after := fmt.Sprintf("%+v", f.s); after != before {
		t.Fatal("snapshot was modified by a report")
	}
}
