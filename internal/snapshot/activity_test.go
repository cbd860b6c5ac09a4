package snapshot

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregateActivity_Ranking(t *testing.T) {
	posts := []Post{
		{Subreddit: "A"},
		{Subreddit: "A"},
		{Subreddit: "B"},
	}
	comments := []Comment{
		{Subreddit: "A"},
	}

	got := AggregateActivity(posts, comments)
	want := []SubredditActivity{
		{Subreddit: "A", Count: 3},
		{Subreddit: "B", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateActivity_TieBreakFirstSeen(t *testing.T) {
	// Equal counts keep first-encounter order, posts before comments.
	posts := []Post{{Subreddit: "zebra"}, {Subreddit: "apple"}}
	comments := []Comment{{Subreddit: "mango"}}

	got := AggregateActivity(posts, comments)
	want := []SubredditActivity{
		{Subreddit: "zebra", Count: 1},
		{Subreddit: "apple", Count: 1},
		{Subreddit: "mango", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tie-break order mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateActivity_TopTenCap(t *testing.T) {
	var posts []Post
	for i := 0; i < 15; i++ {
		sub := fmt.Sprintf("sub%02d", i)
		// Descending weight so the cut is deterministic.
		for j := 0; j < 15-i; j++ {
			posts = append(posts, Post{Subreddit: sub})
		}
	}

	got := AggregateActivity(posts, nil)
	if len(got) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(got))
	}
	for i, a := range got {
		if a.Count < 1 {
			t.Errorf("entry %d has count %d, want >= 1", i, a.Count)
		}
		if i > 0 && got[i-1].Count < a.Count {
			t.Errorf("counts not non-increasing at %d: %d then %d", i, got[i-1].Count, a.Count)
		}
	}
}

func TestAggregateActivity_Empty(t *testing.T) {
	if got := AggregateActivity(nil, nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestAggregateActivity_CaseSensitiveNames(t *testing.T) {
	posts := []Post{{Subreddit: "golang"}, {Subreddit: "Golang"}}
	got := AggregateActivity(posts, nil)
	if len(got) != 2 {
		t.Errorf("subreddit names must be counted case-sensitively, got %v", got)
	}
}
