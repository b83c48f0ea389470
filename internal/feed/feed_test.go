package feed

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"bidhinews/internal/models"
)

// post builds a published test post with deterministic creation times.
func post(name string, opts ...func(*models.Post)) models.Post {
	p := models.Post{
		ID:     uuid.New(),
		Name:   name,
		Status: models.PostStatusPublished,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func hot(p *models.Post)       { p.IsHot = true }
func withImage(p *models.Post) { p.ImageURL = "https://cdn.example.com/img.webp" }
func at(t time.Time) func(*models.Post) {
	return func(p *models.Post) { p.CreatedAt = t }
}

func names(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Name
	}
	return out
}

func TestMergeUniqueTrendingWins(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	a := post("A", hot, at(t0.Add(3*time.Hour)))
	b := post("B", at(t0.Add(5*time.Hour)))
	c := post("C", hot, at(t0.Add(1*time.Hour)))

	// Trending fetch: hot posts newest first. Recent fetch: everything
	// newest first, overlapping the trending set.
	trending := []models.Post{a, c}
	recent := []models.Post{b, a, c}

	merged := MergeUnique(trending, recent)
	want := []string{"A", "C", "B"}
	got := names(merged)
	if len(got) != len(want) {
		t.Fatalf("merged = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merged = %v, want %v", got, want)
		}
	}

	seen := map[uuid.UUID]int{}
	for _, p := range merged {
		seen[p.ID]++
		if seen[p.ID] > 1 {
			t.Errorf("post %s appears twice", p.Name)
		}
	}
}

func TestMergeUniqueEmptySets(t *testing.T) {
	if got := MergeUnique(nil, nil); len(got) != 0 {
		t.Errorf("expected empty merge, got %d posts", len(got))
	}
	a := post("A")
	if got := MergeUnique(nil, []models.Post{a}); len(got) != 1 {
		t.Errorf("expected 1 post, got %d", len(got))
	}
	if got := MergeUnique([]models.Post{a}, nil); len(got) != 1 {
		t.Errorf("expected 1 post, got %d", len(got))
	}
}

func TestBuildHomeSlotAssignment(t *testing.T) {
	// Six with-image posts and two text-only ones; no category rails.
	var imgPosts []models.Post
	for _, n := range []string{"I1", "I2", "I3", "I4", "I5", "I6", "I7"} {
		imgPosts = append(imgPosts, post(n, withImage))
	}
	t1 := post("T1")
	t2 := post("T2")

	recent := append(append([]models.Post{}, imgPosts...), t1, t2)
	view := BuildHome(nil, recent, nil)

	if view.Hero == nil || view.Hero.Name != "I1" {
		t.Errorf("hero = %v, want I1", view.Hero)
	}
	if view.Secondary == nil || view.Secondary.Name != "I2" {
		t.Errorf("secondary = %v, want I2", view.Secondary)
	}
	if got := names(view.LatestUpdates); len(got) != 4 ||
		got[0] != "I3" || got[3] != "I6" {
		t.Errorf("latestUpdates = %v, want [I3 I4 I5 I6]", got)
	}
	if got := names(view.TextOnly); len(got) != 2 || got[0] != "T1" || got[1] != "T2" {
		t.Errorf("textOnly = %v, want [T1 T2]", got)
	}
	// I7 overflows the hero region and lands in the remainder; the
	// text-only posts are already shown in their own list.
	if got := names(view.Remainder); len(got) != 1 || got[0] != "I7" {
		t.Errorf("remainder = %v, want [I7]", got)
	}
}

func TestBuildHomeSparseInputs(t *testing.T) {
	t.Run("no posts at all", func(t *testing.T) {
		view := BuildHome(nil, nil, nil)
		if view.Hero != nil || view.Secondary != nil {
			t.Error("expected empty hero region")
		}
		if view.LatestUpdates == nil || view.TextOnly == nil || view.Remainder == nil || view.Categories == nil {
			t.Error("slices must be materialized, never nil")
		}
	})

	t.Run("single with-image post", func(t *testing.T) {
		view := BuildHome(nil, []models.Post{post("only", withImage)}, nil)
		if view.Hero == nil || view.Hero.Name != "only" {
			t.Error("hero not filled")
		}
		if view.Secondary != nil {
			t.Error("secondary must stay empty, no padding")
		}
		if len(view.LatestUpdates) != 0 || len(view.Remainder) != 0 {
			t.Error("no other slots should be filled")
		}
	})
}

func TestBuildHomeCategoryRailSuppressesRemainder(t *testing.T) {
	// I3 would land in the remainder, but it also sits in a category
	// rail, so the rail placement wins.
	i1 := post("I1", withImage)
	i2 := post("I2", withImage)
	extra := make([]models.Post, 0, 6)
	for _, n := range []string{"I3", "I4", "I5", "I6", "I7", "I8"} {
		extra = append(extra, post(n, withImage))
	}
	recent := append([]models.Post{i1, i2}, extra...)

	railed := extra[4] // I7, beyond the hero region
	sections := []CategorySection{{
		Category: models.Category{Slug: "sports", Name: "Sports"},
		Posts:    []models.Post{railed},
	}}

	view := BuildHome(nil, recent, sections)
	for _, p := range view.Remainder {
		if p.ID == railed.ID {
			t.Error("rail post leaked into remainder")
		}
	}
	if got := names(view.Remainder); len(got) != 1 || got[0] != "I8" {
		t.Errorf("remainder = %v, want [I8]", got)
	}

	// Double placement across rail and hero region is allowed.
	sections2 := []CategorySection{{
		Category: models.Category{Slug: "sports", Name: "Sports"},
		Posts:    []models.Post{i1},
	}}
	view2 := BuildHome(nil, recent, sections2)
	if view2.Hero == nil || view2.Hero.ID != i1.ID {
		t.Error("rail membership must not evict the hero")
	}
}

func TestBuildCategoryPage(t *testing.T) {
	cat := models.Category{Slug: "politics", Name: "Politics"}

	t.Run("six posts split across all slots", func(t *testing.T) {
		var posts []models.Post
		for _, n := range []string{"P1", "P2", "P3", "P4", "P5", "P6"} {
			posts = append(posts, post(n))
		}
		view := BuildCategoryPage(cat, posts)
		if view.Featured == nil || view.Featured.Name != "P1" {
			t.Errorf("featured = %v, want P1", view.Featured)
		}
		if got := names(view.LatestUpdates); len(got) != 4 || got[0] != "P2" || got[3] != "P5" {
			t.Errorf("latestUpdates = %v, want [P2 P3 P4 P5]", got)
		}
		if got := names(view.Remainder); len(got) != 1 || got[0] != "P6" {
			t.Errorf("remainder = %v, want [P6]", got)
		}
	})

	t.Run("empty category", func(t *testing.T) {
		view := BuildCategoryPage(cat, nil)
		if view.Featured != nil {
			t.Error("expected no featured post")
		}
		if view.LatestUpdates == nil || view.Remainder == nil {
			t.Error("slices must be materialized")
		}
		if len(view.LatestUpdates) != 0 || len(view.Remainder) != 0 {
			t.Error("expected all-empty view")
		}
	})

	t.Run("two posts", func(t *testing.T) {
		view := BuildCategoryPage(cat, []models.Post{post("P1"), post("P2")})
		if view.Featured == nil || len(view.LatestUpdates) != 1 || len(view.Remainder) != 0 {
			t.Error("short category mis-split")
		}
	})
}

func TestBuildTrendingRail(t *testing.T) {
	var posts []models.Post
	for _, n := range []string{"H1", "H2", "H3", "H4", "H5", "H6"} {
		posts = append(posts, post(n, hot))
	}

	t.Run("excludes current article and truncates", func(t *testing.T) {
		rail := BuildTrendingRail(posts, posts[1].ID, 4)
		got := names(rail)
		want := []string{"H1", "H3", "H4", "H5"}
		if len(got) != 4 {
			t.Fatalf("rail = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("rail = %v, want %v", got, want)
			}
		}
	})

	t.Run("exclusion id absent", func(t *testing.T) {
		rail := BuildTrendingRail(posts, uuid.New(), 4)
		if len(rail) != 4 || rail[0].Name != "H1" {
			t.Errorf("rail = %v", names(rail))
		}
	})

	t.Run("fewer posts than limit", func(t *testing.T) {
		rail := BuildTrendingRail(posts[:2], posts[0].ID, 4)
		if len(rail) != 1 || rail[0].Name != "H2" {
			t.Errorf("rail = %v", names(rail))
		}
	})
}

func TestFilterSearch(t *testing.T) {
	nepal := post("Nepal Budget 2026", func(p *models.Post) {
		p.Description = "<p>The finance minister announced...</p>"
		p.Category = "Politics"
		p.Keywords = []string{"budget", "economy"}
	})
	sports := post("World Cup Final", func(p *models.Post) {
		p.Category = "Sports"
		p.Keywords = []string{"football"}
	})
	posts := []models.Post{nepal, sports}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"title match case-insensitive", "BUDGET", []string{"Nepal Budget 2026"}},
		{"body match", "finance minister", []string{"Nepal Budget 2026"}},
		{"keyword match", "football", []string{"World Cup Final"}},
		{"category match", "sports", []string{"World Cup Final"}},
		{"substring across both", "o", []string{"Nepal Budget 2026", "World Cup Final"}},
		{"no match", "cricket", []string{}},
		{"empty term matches nothing", "", []string{}},
		{"whitespace-only term matches nothing", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterSearch(posts, tt.term))
			if len(got) != len(tt.want) {
				t.Fatalf("FilterSearch(%q) = %v, want %v", tt.term, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("FilterSearch(%q) = %v, want %v", tt.term, got, tt.want)
				}
			}
		})
	}
}
