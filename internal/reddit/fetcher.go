package reddit

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"redditwithllm/internal/snapshot"
)

const (
	// subscriptionLimit bounds the subscribed-subreddit listing.
	subscriptionLimit = 50

	// repliesPerSavedPost bounds the kept replies under each saved post.
	repliesPerSavedPost = 10

	// enrichWorkers bounds the concurrent comment-tree fetches during
	// saved-post enrichment. Ordering of the result is preserved
	// regardless of which fetch finishes first.
	enrichWorkers = 4
)

// deletedBody is Reddit's tombstone for removed comment content.
const deletedBody = "[deleted]"

// Limits bounds one snapshot fetch.
type Limits struct {
	Posts    int
	Comments int
	Saved    int
}

// SnapshotFetcher builds immutable account snapshots from a Service.
type SnapshotFetcher struct {
	svc    Service
	logger *zap.Logger
}

// NewSnapshotFetcher wires a fetcher to a Reddit service.
func NewSnapshotFetcher(svc Service, logger *zap.Logger) *SnapshotFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotFetcher{svc: svc, logger: logger}
}

// Fetch retrieves a bounded snapshot of the authenticated account.
//
// The profile fetch is fatal on failure; submissions and comments propagate
// their errors as fatal too. The saved listing, per-post comment trees, and
// the subscription listing degrade instead of failing: each falls back to an
// empty or sentinel value and the overall fetch still succeeds. All failures
// that escape are typed *FetchError values.
func (f *SnapshotFetcher) Fetch(ctx context.Context, limits Limits) (*snapshot.AccountSnapshot, error) {
	account, err := f.svc.Me(ctx)
	if err != nil {
		return nil, &FetchError{Kind: ErrProfile, Err: err}
	}

	submissions, err := f.svc.Submissions(ctx, limits.Posts)
	if err != nil {
		return nil, &FetchError{Kind: ErrUnspecified, Err: err}
	}
	posts := make([]snapshot.Post, 0, len(submissions))
	for _, sub := range submissions {
		posts = append(posts, toPost(sub))
	}

	userComments, err := f.svc.Comments(ctx, limits.Comments)
	if err != nil {
		return nil, &FetchError{Kind: ErrUnspecified, Err: err}
	}
	comments := make([]snapshot.Comment, 0, len(userComments))
	for _, uc := range userComments {
		comments = append(comments, toComment(uc))
	}

	saved := f.fetchSaved(ctx, limits.Saved)
	subscribed := f.fetchSubscriptions(ctx)

	return &snapshot.AccountSnapshot{
		Username:             account.Name,
		AccountCreated:       time.Unix(account.CreatedUTC, 0).UTC(),
		CommentKarma:         account.CommentKarma,
		LinkKarma:            account.LinkKarma,
		TotalKarma:           account.CommentKarma + account.LinkKarma,
		IsGold:               account.IsGold,
		IsModerator:          account.IsMod,
		RecentPosts:          posts,
		RecentComments:       comments,
		SavedItems:           saved,
		SubscribedSubreddits: subscribed,
		MostActiveSubreddits: snapshot.AggregateActivity(posts, comments),
	}, nil
}

// fetchSaved retrieves the saved listing and enriches saved posts with their
// comment trees. Both failure modes are recovered: a failed listing yields an
// empty slice, a failed per-post tree keeps the item with no replies.
func (f *SnapshotFetcher) fetchSaved(ctx context.Context, limit int) []snapshot.SavedItem {
	things, err := f.svc.Saved(ctx, limit)
	if err != nil {
		f.logger.Warn("could not fetch saved items, continuing without them",
			zap.String("kind", string(ErrSavedList)),
			zap.Error(err))
		return nil
	}

	items := make([]snapshot.SavedItem, len(things))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichWorkers)

	for i, th := range things {
		switch {
		case th.Submission != nil:
			items[i] = snapshot.SavedItem{
				Kind: snapshot.SavedItemPost,
				Post: toSavedPost(*th.Submission),
			}
			post := items[i].Post
			id := th.Submission.ID
			g.Go(func() error {
				replies, err := f.svc.PostComments(gctx, id)
				if err != nil {
					f.logger.Warn("could not fetch comments for saved post",
						zap.String("kind", string(ErrSavedComments)),
						zap.String("title", snapshot.Truncate(post.Title, 50)),
						zap.Error(err))
					return nil
				}
				post.Replies = keepReplies(replies)
				post.CommentsFetched = len(post.Replies)
				return nil
			})
		case th.Comment != nil:
			items[i] = snapshot.SavedItem{
				Kind:    snapshot.SavedItemComment,
				Comment: toSavedComment(*th.Comment),
			}
		}
	}
	_ = g.Wait() // per-post failures are already handled; nothing propagates

	return items
}

func (f *SnapshotFetcher) fetchSubscriptions(ctx context.Context) []string {
	subs, err := f.svc.SubscribedSubreddits(ctx, subscriptionLimit)
	if err != nil {
		f.logger.Warn("could not fetch subscribed subreddits, using sentinel",
			zap.String("kind", string(ErrSubscriptions)),
			zap.Error(err))
		return []string{snapshot.SubscriptionsUnavailable}
	}
	return subs
}

// keepReplies filters deleted content out of a flattened tree and keeps the
// first repliesPerSavedPost survivors in tree order.
func keepReplies(comments []PostComment) []snapshot.Reply {
	replies := make([]snapshot.Reply, 0, repliesPerSavedPost)
	for _, pc := range comments {
		if pc.Body == deletedBody {
			continue
		}
		replies = append(replies, snapshot.Reply{
			Author:      pc.Author,
			Body:        snapshot.Truncate(pc.Body, snapshot.BodyLimit),
			Score:       pc.Score,
			CreatedAt:   time.Unix(pc.CreatedUTC, 0).UTC(),
			IsSubmitter: pc.IsSubmitter,
			Permalink:   pc.Permalink,
		})
		if len(replies) == repliesPerSavedPost {
			break
		}
	}
	return replies
}

func toPost(sub Submission) snapshot.Post {
	url := sub.URL
	if sub.IsSelf {
		url = ""
	}
	return snapshot.Post{
		Title:       sub.Title,
		Subreddit:   sub.Subreddit,
		Score:       sub.Score,
		NumComments: sub.NumComments,
		CreatedAt:   time.Unix(sub.CreatedUTC, 0).UTC(),
		SelfText:    snapshot.Truncate(sub.SelfText, snapshot.SelfTextLimit),
		URL:         url,
		UpvoteRatio: sub.UpvoteRatio,
	}
}

func toComment(uc UserComment) snapshot.Comment {
	parent := uc.LinkTitle
	if parent == "" {
		parent = snapshot.UnknownParentTitle
	}
	return snapshot.Comment{
		Body:            snapshot.Truncate(uc.Body, snapshot.BodyLimit),
		Subreddit:       uc.Subreddit,
		Score:           uc.Score,
		CreatedAt:       time.Unix(uc.CreatedUTC, 0).UTC(),
		ParentPostTitle: parent,
	}
}

func toSavedPost(sub Submission) *snapshot.SavedPost {
	return &snapshot.SavedPost{
		Post:      toPost(sub),
		Author:    sub.Author,
		Permalink: sub.Permalink,
	}
}

func toSavedComment(uc UserComment) *snapshot.SavedComment {
	return &snapshot.SavedComment{
		Comment:   toComment(uc),
		Author:    uc.Author,
		Permalink: uc.Permalink,
	}
}
