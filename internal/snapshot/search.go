package snapshot

import (
	"fmt"
	"strings"
)

// MatchType tags where a search hit came from.
type MatchType string

const (
	MatchPost             MatchType = "post"
	MatchComment          MatchType = "comment"
	MatchSavedPost        MatchType = "saved_post"
	MatchSavedPostComment MatchType = "saved_post_comment"
	MatchSavedComment     MatchType = "saved_comment"
)

// Match is one search hit with its provenance. Exactly the fields implied by
// Type are set: Post for MatchPost, Comment for MatchComment, SavedPost for
// MatchSavedPost and MatchSavedPostComment (Reply additionally set for the
// latter), SavedComment for MatchSavedComment.
type Match struct {
	Type         MatchType
	Post         *Post
	Comment      *Comment
	SavedPost    *SavedPost
	SavedComment *SavedComment
	Reply        *Reply
	Reason       string
}

// Search performs a case-insensitive substring search across the snapshot's
// posts, comments, and saved items. An empty or whitespace-only query matches
// nothing. Results come back grouped: all post matches, then all comment
// matches, then saved-item matches in original saved order.
func Search(s *AccountSnapshot, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []Match

	for i := range s.RecentPosts {
		p := &s.RecentPosts[i]
		if contains(q, p.Title, p.SelfText, p.Subreddit) {
			results = append(results, Match{
				Type:   MatchPost,
				Post:   p,
				Reason: "Title, content, or subreddit match",
			})
		}
	}

	for i := range s.RecentComments {
		c := &s.RecentComments[i]
		if contains(q, c.Body, c.Subreddit) {
			results = append(results, Match{
				Type:    MatchComment,
				Comment: c,
				Reason:  "Comment text or subreddit match",
			})
		}
	}

	for i := range s.SavedItems {
		item := &s.SavedItems[i]
		switch item.Kind {
		case SavedItemPost:
			p := item.Post
			if contains(q, p.Title, p.SelfText, p.Subreddit) {
				results = append(results, Match{
					Type:      MatchSavedPost,
					SavedPost: p,
					Reason:    "Saved post title, content, or subreddit match",
				})
			}
			// Only the first matching reply is reported for a given saved
			// post, so one heavily-discussed topic does not flood results.
			for j := range p.Replies {
				r := &p.Replies[j]
				if strings.Contains(strings.ToLower(r.Body), q) {
					results = append(results, Match{
						Type:      MatchSavedPostComment,
						SavedPost: p,
						Reply:     r,
						Reason:    fmt.Sprintf("Comment in saved post %q", Truncate(p.Title, 50)),
					})
					break
				}
			}
		case SavedItemComment:
			c := item.Comment
			if contains(q, c.Body, c.Subreddit) {
				results = append(results, Match{
					Type:         MatchSavedComment,
					SavedComment: c,
					Reason:       "Saved comment text or subreddit match",
				})
			}
		}
	}

	return results
}

// contains reports whether any candidate field contains the already
// lower-cased query.
func contains(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
