package snapshot

import (
	"testing"
)

func TestSearch_EmptyQuery(t *testing.T) {
	s := testSnapshot()
	for _, q := range []string{"", "   ", "\t\n"} {
		if got := Search(s, q); len(got) != 0 {
			t.Errorf("Search(%q) returned %d matches, want 0", q, len(got))
		}
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	s := testSnapshot()
	lower := Search(s, "channels")
	upper := Search(s, "CHANNELS")
	if len(lower) == 0 {
		t.Fatal("expected a match for lowercase query")
	}
	if len(lower) != len(upper) {
		t.Errorf("case changed result count: %d vs %d", len(lower), len(upper))
	}
}

func TestSearch_PostFields(t *testing.T) {
	s := &AccountSnapshot{
		RecentPosts: []Post{
			{Title: "needle in title", Subreddit: "a"},
			{SelfText: "needle in body", Subreddit: "b"},
			{Title: "nothing", Subreddit: "needlesub"},
			{Title: "nothing", Subreddit: "c"},
		},
	}
	got := Search(s, "needle")
	if len(got) != 3 {
		t.Fatalf("expected 3 post matches, got %d", len(got))
	}
	for _, m := range got {
		if m.Type != MatchPost {
			t.Errorf("unexpected match type %q", m.Type)
		}
		if m.Post == nil {
			t.Error("post match missing content")
		}
	}
}

func TestSearch_SavedPostReplies_SingleMatchPerPost(t *testing.T) {
	s := &AccountSnapshot{
		SavedItems: []SavedItem{
			{Kind: SavedItemPost, Post: &SavedPost{
				Post: Post{Title: "quiet title", Subreddit: "golang"},
				Replies: []Reply{
					{Author: "a", Body: "first needle reply"},
					{Author: "b", Body: "second needle reply"},
					{Author: "c", Body: "third needle reply"},
				},
				CommentsFetched: 3,
			}},
		},
	}
	got := Search(s, "needle")
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(got))
	}
	m := got[0]
	if m.Type != MatchSavedPostComment {
		t.Fatalf("expected saved_post_comment, got %q", m.Type)
	}
	// First matching reply wins.
	if m.Reply == nil || m.Reply.Author != "a" {
		t.Errorf("expected first matching reply, got %+v", m.Reply)
	}
	if m.SavedPost == nil || m.SavedPost.Title != "quiet title" {
		t.Error("parent post provenance missing from reply match")
	}
}

func TestSearch_SavedPostBothTitleAndReplyMatch(t *testing.T) {
	s := &AccountSnapshot{
		SavedItems: []SavedItem{
			{Kind: SavedItemPost, Post: &SavedPost{
				Post:    Post{Title: "needle title", Subreddit: "golang"},
				Replies: []Reply{{Author: "a", Body: "needle reply"}},
			}},
		},
	}
	got := Search(s, "needle")
	if len(got) != 2 {
		t.Fatalf("expected saved_post and saved_post_comment, got %d matches", len(got))
	}
	if got[0].Type != MatchSavedPost || got[1].Type != MatchSavedPostComment {
		t.Errorf("unexpected match types: %q, %q", got[0].Type, got[1].Type)
	}
}

func TestSearch_ResultOrdering(t *testing.T) {
	s := &AccountSnapshot{
		RecentPosts:    []Post{{Title: "needle post", Subreddit: "a"}},
		RecentComments: []Comment{{Body: "needle comment", Subreddit: "b"}},
		SavedItems: []SavedItem{
			{Kind: SavedItemComment, Comment: &SavedComment{
				Comment: Comment{Body: "needle saved comment", Subreddit: "c"},
			}},
			{Kind: SavedItemPost, Post: &SavedPost{
				Post: Post{Title: "needle saved post", Subreddit: "d"},
			}},
		},
	}
	got := Search(s, "needle")
	wantOrder := []MatchType{MatchPost, MatchComment, MatchSavedComment, MatchSavedPost}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d matches, got %d", len(wantOrder), len(got))
	}
	for i, want := range wantOrder {
		if got[i].Type != want {
			t.Errorf("match %d: got type %q, want %q", i, got[i].Type, want)
		}
	}
}

func TestSearch_SavedCommentFields(t *testing.T) {
	s := &AccountSnapshot{
		SavedItems: []SavedItem{
			{Kind: SavedItemComment, Comment: &SavedComment{
				Comment: Comment{Body: "irrelevant", Subreddit: "needlesub"},
			}},
		},
	}
	got := Search(s, "needlesub")
	if len(got) != 1 || got[0].Type != MatchSavedComment {
		t.Fatalf("expected one saved_comment match, got %+v", got)
	}
	if got[0].SavedComment == nil {
		t.Error("saved comment content missing")
	}
}
