package snapshot

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Rendering bounds. The full report stays within a handful of KB so it fits
// comfortably inside the LLM context alongside the user's question.
const (
	renderSectionItems = 5  // recent posts, recent comments, saved items
	renderRepliesShown = 3  // replies listed under a saved post
	renderTitleLimit   = 80 // saved post title
	renderBodyLimit    = 100
	renderReplyLimit   = 60
)

// Render produces the bounded text report for a snapshot. Pure function:
// identical snapshots yield byte-identical output.
func Render(s *AccountSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reddit Account Summary for %s:\n\n", s.Username)

	b.WriteString("ACCOUNT OVERVIEW:\n")
	fmt.Fprintf(&b, "- Username: %s\n", s.Username)
	fmt.Fprintf(&b, "- Account created: %s\n", s.AccountCreated.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Total karma: %s (Comment: %s, Link: %s)\n",
		humanize.Comma(int64(s.TotalKarma)),
		humanize.Comma(int64(s.CommentKarma)),
		humanize.Comma(int64(s.LinkKarma)))
	fmt.Fprintf(&b, "- Reddit Gold: %s\n", yesNo(s.IsGold))
	fmt.Fprintf(&b, "- Moderator: %s\n\n", yesNo(s.IsModerator))

	b.WriteString("ACTIVITY SUMMARY:\n")
	fmt.Fprintf(&b, "- Recent posts: %d\n", len(s.RecentPosts))
	fmt.Fprintf(&b, "- Recent comments: %d\n", len(s.RecentComments))
	fmt.Fprintf(&b, "- Saved posts/comments: %d\n", len(s.SavedItems))
	fmt.Fprintf(&b, "- Subscribed subreddits: %d\n\n", len(s.SubscribedSubreddits))

	b.WriteString("MOST ACTIVE SUBREDDITS:\n")
	for _, a := range s.MostActiveSubreddits {
		fmt.Fprintf(&b, "- r/%s: %d interactions\n", a.Subreddit, a.Count)
	}

	b.WriteString("\nRECENT POSTS:\n")
	for _, p := range head(s.RecentPosts, renderSectionItems) {
		fmt.Fprintf(&b, "- [%s] %s (Score: %d, Comments: %d)\n",
			p.Subreddit, p.Title, p.Score, p.NumComments)
	}

	b.WriteString("\nRECENT COMMENTS:\n")
	for _, c := range head(s.RecentComments, renderSectionItems) {
		fmt.Fprintf(&b, "- [%s] %s (Score: %d)\n",
			c.Subreddit, Truncate(c.Body, renderBodyLimit), c.Score)
	}

	b.WriteString("\nSAVED POSTS/COMMENTS:\n")
	for _, item := range head(s.SavedItems, renderSectionItems) {
		b.WriteString(renderSavedItem(item))
		b.WriteByte('\n')
	}

	return strings.TrimSpace(b.String())
}

// renderSavedItem formats one saved item. Saved posts get their title line
// plus up to three reply bullets; saved comments collapse to a single line.
func renderSavedItem(item SavedItem) string {
	if item.Kind == SavedItemComment {
		return fmt.Sprintf("- [%s] %s (saved comment)",
			item.Comment.Subreddit, Truncate(item.Comment.Body, renderBodyLimit))
	}

	p := item.Post
	line := fmt.Sprintf("- [%s] %s (Score: %d, Comments: %d)",
		p.Subreddit, Truncate(p.Title, renderTitleLimit), p.Score, p.NumComments)

	if len(p.Replies) == 0 {
		return line + "\n    (No comments fetched)"
	}

	var b strings.Builder
	b.WriteString(line)
	fmt.Fprintf(&b, "\n    Top replies (%d fetched):", p.CommentsFetched)
	for _, r := range head(p.Replies, renderRepliesShown) {
		body := strings.ReplaceAll(r.Body, "\n", " ")
		fmt.Fprintf(&b, "\n      • %s: %s (%d pts)",
			r.Author, Truncate(body, renderReplyLimit), r.Score)
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
