// Package snapshot defines the immutable view of a Reddit account and the
// pure operations over it: activity aggregation, summary rendering, and
// content search. Nothing in this package performs I/O; construction happens
// in internal/reddit and every consumer treats the snapshot as read-only.
package snapshot

import "time"

// Field truncation limits applied at fetch time.
const (
	SelfTextLimit = 500
	BodyLimit     = 300
)

// SubscriptionsUnavailable is the sentinel entry used when the subscribed
// subreddit list cannot be read (private profiles, missing scope).
const SubscriptionsUnavailable = "Private/Unavailable"

// UnknownParentTitle is the sentinel for a comment whose parent submission
// could not be resolved.
const UnknownParentTitle = "Unknown"

// AccountSnapshot is one fetched view of a user's Reddit account at a point
// in time. Constructed once per fetch, never mutated afterward.
type AccountSnapshot struct {
	Username       string
	AccountCreated time.Time

	CommentKarma int
	LinkKarma    int
	TotalKarma   int // always CommentKarma + LinkKarma

	IsGold      bool
	IsModerator bool

	RecentPosts    []Post    // newest first, bounded by fetch limits
	RecentComments []Comment // newest first, bounded by fetch limits
	SavedItems     []SavedItem

	SubscribedSubreddits []string

	// MostActiveSubreddits is ordered by descending interaction count,
	// ties broken by first-seen order. At most 10 entries.
	MostActiveSubreddits []SubredditActivity
}

// SubredditActivity is one entry of the ranked activity table.
type SubredditActivity struct {
	Subreddit string
	Count     int
}

// Post is one of the user's own submissions.
type Post struct {
	Title       string
	Subreddit   string
	Score       int
	NumComments int
	CreatedAt   time.Time
	SelfText    string // truncated to SelfTextLimit
	URL         string // empty for self posts
	UpvoteRatio float64
}

// Comment is one of the user's own comments.
type Comment struct {
	Body            string // truncated to BodyLimit
	Subreddit       string
	Score           int
	CreatedAt       time.Time
	ParentPostTitle string // UnknownParentTitle when unresolved
}

// SavedItemKind discriminates the SavedItem union.
type SavedItemKind string

const (
	SavedItemPost    SavedItemKind = "post"
	SavedItemComment SavedItemKind = "comment"
)

// SavedItem is a bookmarked post or comment. The kind is decided once at
// fetch time; exactly one of Post/Comment is non-nil, matching Kind.
type SavedItem struct {
	Kind    SavedItemKind
	Post    *SavedPost
	Comment *SavedComment
}

// SavedPost is a bookmarked submission, enriched with a bounded set of its
// top-level replies.
type SavedPost struct {
	Post
	Author    string
	Permalink string

	// Replies holds up to 10 non-deleted comments from the post's tree.
	// CommentsFetched records how many were actually retrieved; zero when
	// the comment fetch failed and the item was kept anyway.
	Replies         []Reply
	CommentsFetched int
}

// SavedComment is a bookmarked comment written by someone else.
type SavedComment struct {
	Comment
	Author    string
	Permalink string
}

// Reply is one comment fetched from underneath a saved post.
type Reply struct {
	Author      string
	Body        string // truncated to BodyLimit
	Score       int
	CreatedAt   time.Time
	IsSubmitter bool
	Permalink   string
}
