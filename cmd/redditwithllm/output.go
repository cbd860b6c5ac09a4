package main

import (
	"fmt"
	"strings"

	"redditwithllm/internal/snapshot"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders LLM output as terminal markdown. Rendering
// failures and plain mode fall back to the raw text.
func renderMarkdown(text string, plain bool) string {
	if plain {
		return text
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// formatSearchResults formats snapshot search matches for terminal output.
func formatSearchResults(query string, matches []snapshot.Match) string {
	var b strings.Builder
	if len(matches) == 0 {
		fmt.Fprintf(&b, "No matches for %q.\n", query)
		return b.String()
	}

	fmt.Fprintf(&b, "Found %d match(es) for %q:\n\n", len(matches), query)
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, m.Type, searchResultLine(m))
		fmt.Fprintf(&b, "   %s\n", m.Reason)
	}
	return b.String()
}

const searchLineLimit = 120

func searchResultLine(m snapshot.Match) string {
	switch m.Type {
	case snapshot.MatchPost:
		return fmt.Sprintf("r/%s: %s", m.Post.Subreddit, snapshot.Truncate(m.Post.Title, searchLineLimit))
	case snapshot.MatchComment:
		return fmt.Sprintf("r/%s: %s", m.Comment.Subreddit, snapshot.Truncate(oneLine(m.Comment.Body), searchLineLimit))
	case snapshot.MatchSavedPost:
		return fmt.Sprintf("r/%s: %s", m.SavedPost.Subreddit, snapshot.Truncate(m.SavedPost.Title, searchLineLimit))
	case snapshot.MatchSavedPostComment:
		return fmt.Sprintf("r/%s: %s (reply by %s)",
			m.SavedPost.Subreddit, snapshot.Truncate(oneLine(m.Reply.Body), searchLineLimit), m.Reply.Author)
	case snapshot.MatchSavedComment:
		return fmt.Sprintf("r/%s: %s", m.SavedComment.Subreddit, snapshot.Truncate(oneLine(m.SavedComment.Body), searchLineLimit))
	}
	return ""
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
