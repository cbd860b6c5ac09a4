// Package reddit talks to the Reddit data API and assembles account
// snapshots. The Client implements the raw capability set (profile, listings,
// comment trees, subscriptions) over OAuth2; the SnapshotFetcher turns those
// listings into an immutable snapshot.AccountSnapshot with the documented
// degradation rules.
package reddit

import "context"

// Service is the capability set the snapshot fetcher needs from Reddit.
// Client is the production implementation; tests substitute stubs.
type Service interface {
	// Me returns the authenticated user's profile.
	Me(ctx context.Context) (*Account, error)

	// Submissions lists the user's own submissions, newest first.
	Submissions(ctx context.Context, limit int) ([]Submission, error)

	// Comments lists the user's own comments, newest first.
	Comments(ctx context.Context, limit int) ([]UserComment, error)

	// Saved lists the user's saved things, posts and comments interleaved
	// in Reddit's saved order.
	Saved(ctx context.Context, limit int) ([]SavedThing, error)

	// PostComments returns the flattened comment tree of a submission,
	// with "load more" placeholders dropped.
	PostComments(ctx context.Context, postID string) ([]PostComment, error)

	// SubscribedSubreddits lists subreddits the user subscribes to.
	SubscribedSubreddits(ctx context.Context, limit int) ([]string, error)
}

// Account mirrors the relevant fields of /api/v1/me.
type Account struct {
	Name         string
	CreatedUTC   int64
	CommentKarma int
	LinkKarma    int
	IsGold       bool
	IsMod        bool
}

// Submission is one listing entry of kind t3.
type Submission struct {
	ID          string
	Title       string
	Subreddit   string
	Author      string
	Score       int
	NumComments int
	CreatedUTC  int64
	SelfText    string
	URL         string
	IsSelf      bool
	UpvoteRatio float64
	Permalink   string
}

// UserComment is one listing entry of kind t1.
type UserComment struct {
	Body       string
	Subreddit  string
	Author     string
	Score      int
	CreatedUTC int64
	LinkTitle  string // title of the parent submission, empty when missing
	Permalink  string
}

// SavedThing is one entry of the saved listing. Reddit tags each child with
// its kind, so the post/comment split is decided here, once, from the wire
// data. Exactly one of Submission/Comment is non-nil.
type SavedThing struct {
	Submission *Submission
	Comment    *UserComment
}

// PostComment is one flattened comment from a submission's tree.
type PostComment struct {
	Author      string
	Body        string
	Score       int
	CreatedUTC  int64
	IsSubmitter bool
	Permalink   string
}
