package report

import (
	"fmt"
	"testing"

	"contest-analytics/internal/model"
)

func TestComputeWinners(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addCategory("Street")
	f.addJudge("j1")
	f.addJudge("j2")
	f.addVisitor("v1")
	for i := 1; i <= 5; i++ {
		f.addPhoto(fmt.Sprintf("n%d", i), "ana", "Nature")
	}
	f.addPhoto("s1", "ana", "Street")
	f.score("j1", "n1", 4)
	f.score("j1", "n2", 9)
	f.score("j2", "n2", 9)
	f.score("j1", "n3", 7)
	f.vote("v1", "n3")
	f.score("j1", "n4", 2)
	f.score("j1", "s1", 10)
	f.score("j2", "s1", 10)

	winners := ComputeWinners(&f.s, f.category["Nature"], model.TopWinnersLimit)
	if len(winners) != 3 {
		t.Fatalf("expected 3 winners, got %d", len(winners))
	}

	want := []struct {
		photo string
		total int
	}{
		{"n2", 18},
		{"n3", 8},
		{"n1", 4},
	}
	for i, w := range want {
		got := winners[i]
		if got.PhotoID != f.photo[w.photo] || got.TotalScore != w.total || got.Position != i+1 {
			t.Fatalf("position %d: want %s/%d, got %+v", i+1, w.photo, w.total, got)
		}
		if got.CategoryID != f.category["Nature"] {
			t.Fatalf("winner assigned to wrong category: %+v", got)
		}
	}
}

func TestComputeWinners_FewerPhotosThanLimit(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addCategory("Empty")
	f.addPhoto("only", "ana", "Nature")

	if winners := ComputeWinners(&f.s, f.category["Nature"], 3); len(winners) != 1 || winners[0].Position != 1 {
		t.Fatalf("unexpected winners %+v", winners)
	}
	if winners := ComputeWinners(&f.s, f.category["Empty"], 3); len(winners) != 0 {
		t.Fatalf("expected no winners, got %+v", winners)
	}
}

func TestRankPhotosMatchesHighestScoredPhoto(t *testing.T) {
	f := newFixture()
	f.addPhotographer("ana")
	f.addCategory("Nature")
	f.addJudge("j1")
	f.addVisitor("v1")
	f.addVisitor("v2")
	f.addPhoto("a", "ana", "Nature")
	f.addPhoto("b", "ana", "Nature")
	f.score("j1", "a", 3)
	f.vote("v1", "b")
	f.vote("v2", "b")
	f.score("j1", "b", 2)

	ranking := RankPhotos(&f.s, f.s.Photos)
	best := HighestScoredPhoto(&f.s)
	if ranking[0].PhotoID != best.PhotoID || ranking[0].Combined() != best.CombinedScore {
		t.Fatalf("ranking %+v disagrees with highest photo %+v", ranking[0], best)
	}
}

func TestCatalogLookup(t *testing.T) {
	for i, def := range Catalog {
		if int(def.ID) != i+1 {
			t.Fatalf("catalog entry %d has id %d", i, def.ID)
		}
		got, ok := Lookup(def.ID)
		if !ok || got.Slug != def.Slug {
			t.Fatalf("lookup of %d failed", def.ID)
		}
	}
	if _, ok := Lookup(ID(99)); ok {
		t.Fatal("unexpected catalog entry 99")
	}
}
