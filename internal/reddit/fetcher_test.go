package reddit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"redditwithllm/internal/snapshot"
)

// stubService lets each test script the Reddit surface.
type stubService struct {
	account    *Account
	accountErr error

	submissions    []Submission
	submissionsErr error

	comments    []UserComment
	commentsErr error

	saved    []SavedThing
	savedErr error

	postComments    map[string][]PostComment
	postCommentsErr error

	subreddits    []string
	subredditsErr error
}

func (s *stubService) Me(context.Context) (*Account, error) {
	return s.account, s.accountErr
}

func (s *stubService) Submissions(context.Context, int) ([]Submission, error) {
	return s.submissions, s.submissionsErr
}

func (s *stubService) Comments(context.Context, int) ([]UserComment, error) {
	return s.comments, s.commentsErr
}

func (s *stubService) Saved(context.Context, int) ([]SavedThing, error) {
	return s.saved, s.savedErr
}

func (s *stubService) PostComments(_ context.Context, postID string) ([]PostComment, error) {
	if s.postCommentsErr != nil {
		return nil, s.postCommentsErr
	}
	return s.postComments[postID], nil
}

func (s *stubService) SubscribedSubreddits(context.Context, int) ([]string, error) {
	return s.subreddits, s.subredditsErr
}

func baseStub() *stubService {
	return &stubService{
		account: &Account{
			Name:         "gopher_tester",
			CreatedUTC:   1560328200,
			CommentKarma: 150,
			LinkKarma:    50,
		},
		subreddits: []string{"golang"},
	}
}

func testLimits() Limits {
	return Limits{Posts: 25, Comments: 25, Saved: 50}
}

func TestFetch_KarmaInvariant(t *testing.T) {
	f := NewSnapshotFetcher(baseStub(), nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if snap.TotalKarma != 200 {
		t.Errorf("TotalKarma = %d, want 200", snap.TotalKarma)
	}
	if snap.TotalKarma != snap.CommentKarma+snap.LinkKarma {
		t.Error("karma sum invariant violated")
	}
}

func TestFetch_ProfileFailureIsFatal(t *testing.T) {
	stub := baseStub()
	stub.account = nil
	stub.accountErr = fmt.Errorf("401 unauthorized")

	f := NewSnapshotFetcher(stub, nil)
	_, err := f.Fetch(context.Background(), testLimits())
	if err == nil {
		t.Fatal("expected fatal error for profile failure")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fe.Kind != ErrProfile {
		t.Errorf("Kind = %q, want %q", fe.Kind, ErrProfile)
	}
}

func TestFetch_ListingFailureIsFatal(t *testing.T) {
	stub := baseStub()
	stub.submissionsErr = fmt.Errorf("503 service unavailable")

	f := NewSnapshotFetcher(stub, nil)
	_, err := f.Fetch(context.Background(), testLimits())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.Kind != ErrUnspecified {
		t.Errorf("Kind = %q, want %q", fe.Kind, ErrUnspecified)
	}
}

func TestFetch_SavedListFailureRecovered(t *testing.T) {
	stub := baseStub()
	stub.savedErr = fmt.Errorf("403 forbidden")

	f := NewSnapshotFetcher(stub, nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("saved-list failure should not abort the fetch: %v", err)
	}
	if len(snap.SavedItems) != 0 {
		t.Errorf("expected empty saved items, got %d", len(snap.SavedItems))
	}
}

func TestFetch_SavedPostCommentFailureRecovered(t *testing.T) {
	stub := baseStub()
	stub.saved = []SavedThing{
		{Submission: &Submission{ID: "abc", Title: "broken thread", Subreddit: "golang"}},
	}
	stub.postCommentsErr = fmt.Errorf("429 too many requests")

	f := NewSnapshotFetcher(stub, nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("per-post comment failure should not abort the fetch: %v", err)
	}
	if len(snap.SavedItems) != 1 {
		t.Fatalf("expected the item to be kept, got %d items", len(snap.SavedItems))
	}
	item := snap.SavedItems[0]
	if item.Kind != snapshot.SavedItemPost {
		t.Fatalf("expected saved post variant, got %q", item.Kind)
	}
	if len(item.Post.Replies) != 0 {
		t.Errorf("expected empty replies, got %d", len(item.Post.Replies))
	}
	if item.Post.CommentsFetched != 0 {
		t.Errorf("CommentsFetched = %d, want 0", item.Post.CommentsFetched)
	}
}

func TestFetch_SubscriptionsFailureSentinel(t *testing.T) {
	stub := baseStub()
	stub.subreddits = nil
	stub.subredditsErr = fmt.Errorf("403 private")

	f := NewSnapshotFetcher(stub, nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("subscription failure should not abort the fetch: %v", err)
	}
	want := []string{snapshot.SubscriptionsUnavailable}
	if len(snap.SubscribedSubreddits) != 1 || snap.SubscribedSubreddits[0] != want[0] {
		t.Errorf("SubscribedSubreddits = %v, want %v", snap.SubscribedSubreddits, want)
	}
}

func TestFetch_SavedClassificationAndOrder(t *testing.T) {
	stub := baseStub()
	stub.saved = []SavedThing{
		{Comment: &UserComment{Body: "first saved", Subreddit: "a", Author: "x"}},
		{Submission: &Submission{ID: "p1", Title: "second saved", Subreddit: "b", Author: "y"}},
		{Comment: &UserComment{Body: "third saved", Subreddit: "c", Author: "z"}},
	}

	f := NewSnapshotFetcher(stub, nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(snap.SavedItems) != 3 {
		t.Fatalf("expected 3 saved items, got %d", len(snap.SavedItems))
	}
	wantKinds := []snapshot.SavedItemKind{
		snapshot.SavedItemComment,
		snapshot.SavedItemPost,
		snapshot.SavedItemComment,
	}
	for i, want := range wantKinds {
		if snap.SavedItems[i].Kind != want {
			t.Errorf("item %d: kind %q, want %q", i, snap.SavedItems[i].Kind, want)
		}
	}
	if snap.SavedItems[1].Post == nil || snap.SavedItems[1].Post.Author != "y" {
		t.Error("saved post lost its author")
	}
}

func TestFetch_RepliesFilteredAndCapped(t *testing.T) {
	var tree []PostComment
	tree = append(tree, PostComment{Author: "ghost", Body: "[deleted]"})
	for i := 0; i < 14; i++ {
		tree = append(tree, PostComment{
			Author: fmt.Sprintf("user%d", i),
			Body:   fmt.Sprintf("reply %d", i),
		})
	}

	stub := baseStub()
	stub.saved = []SavedThing{
		{Submission: &Submission{ID: "p1", Title: "busy thread", Subreddit: "golang"}},
	}
	stub.postComments = map[string][]PostComment{"p1": tree}

	f := NewSnapshotFetcher(stub, nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	post := snap.SavedItems[0].Post
	if len(post.Replies) != 10 {
		t.Fatalf("expected 10 replies kept, got %d", len(post.Replies))
	}
	if post.CommentsFetched != 10 {
		t.Errorf("CommentsFetched = %d, want 10", post.CommentsFetched)
	}
	for _, r := range post.Replies {
		if r.Body == "[deleted]" {
			t.Error("deleted reply body kept")
		}
	}
	if post.Replies[0].Author != "user0" {
		t.Errorf("tree order not preserved, first reply by %q", post.Replies[0].Author)
	}
}

func TestFetch_SavedEnrichmentPreservesOrder(t *testing.T) {
	stub := baseStub()
	stub.postComments = map[string][]PostComment{}
	for i := 0; i < 9; i++ {
		id := fmt.Sprintf("p%d", i)
		stub.saved = append(stub.saved, SavedThing{
			Submission: &Submission{ID: id, Title: "post " + id, Subreddit: "golang"},
		})
		stub.postComments[id] = []PostComment{{Author: "a", Body: "reply for " + id}}
	}

	f := NewSnapshotFetcher(stub, nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	for i, item := range snap.SavedItems {
		wantTitle := fmt.Sprintf("post p%d", i)
		if item.Post.Title != wantTitle {
			t.Fatalf("item %d: title %q, want %q", i, item.Post.Title, wantTitle)
		}
		wantBody := fmt.Sprintf("reply for p%d", i)
		if len(item.Post.Replies) != 1 || item.Post.Replies[0].Body != wantBody {
			t.Errorf("item %d: replies attached to the wrong post", i)
		}
	}
}

func TestFetch_FieldNormalization(t *testing.T) {
	stub := baseStub()
	stub.submissions = []Submission{
		{
			Title:     "self post",
			Subreddit: "golang",
			SelfText:  strings.Repeat("x", 600),
			URL:       "https://reddit.com/r/golang/self",
			IsSelf:    true,
		},
		{
			Title:     "link post",
			Subreddit: "golang",
			URL:       "https://example.com/article",
		},
	}
	stub.comments = []UserComment{
		{Body: strings.Repeat("y", 400), Subreddit: "golang"},
		{Body: "short", Subreddit: "golang", LinkTitle: "parent thread"},
	}

	f := NewSnapshotFetcher(stub, nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if got := snap.RecentPosts[0].SelfText; got != strings.Repeat("x", 500)+"..." {
		t.Errorf("selftext not truncated to 500: len=%d", len(got))
	}
	if snap.RecentPosts[0].URL != "" {
		t.Error("self post should have no URL")
	}
	if snap.RecentPosts[1].URL != "https://example.com/article" {
		t.Error("link post URL dropped")
	}

	if got := snap.RecentComments[0].Body; got != strings.Repeat("y", 300)+"..." {
		t.Errorf("comment body not truncated to 300: len=%d", len(got))
	}
	if snap.RecentComments[0].ParentPostTitle != snapshot.UnknownParentTitle {
		t.Errorf("missing parent title should become sentinel, got %q", snap.RecentComments[0].ParentPostTitle)
	}
	if snap.RecentComments[1].ParentPostTitle != "parent thread" {
		t.Error("present parent title replaced")
	}
}

func TestFetch_ActivityRanking(t *testing.T) {
	stub := baseStub()
	stub.submissions = []Submission{
		{Title: "1", Subreddit: "A"},
		{Title: "2", Subreddit: "A"},
		{Title: "3", Subreddit: "B"},
	}
	stub.comments = []UserComment{{Body: "c", Subreddit: "A"}}

	f := NewSnapshotFetcher(stub, nil)
	snap, err := f.Fetch(context.Background(), testLimits())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	want := []snapshot.SubredditActivity{{Subreddit: "A", Count: 3}, {Subreddit: "B", Count: 1}}
	if len(snap.MostActiveSubreddits) != 2 {
		t.Fatalf("expected 2 activity entries, got %d", len(snap.MostActiveSubreddits))
	}
	for i, w := range want {
		if snap.MostActiveSubreddits[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, snap.MostActiveSubreddits[i], w)
		}
	}
}
