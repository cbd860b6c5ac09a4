package snapshot

import "sort"

// maxActivityEntries caps the ranked activity table.
const maxActivityEntries = 10

// AggregateActivity derives the ranked subreddit-activity table from the
// user's posts and comments. Each post and each comment counts as one
// interaction, keyed by subreddit name exactly as the API returned it.
//
// The result is ordered by descending count; ties keep first-encounter order
// across posts-then-comments in their original fetch order. At most 10
// entries are returned. Pure and deterministic.
func AggregateActivity(posts []Post, comments []Comment) []SubredditActivity {
	counts := make(map[string]int)
	var order []string

	bump := func(sub string) {
		if _, seen := counts[sub]; !seen {
			order = append(order, sub)
		}
		counts[sub]++
	}
	for _, p := range posts {
		bump(p.Subreddit)
	}
	for _, c := range comments {
		bump(c.Subreddit)
	}

	ranked := make([]SubredditActivity, 0, len(order))
	for _, sub := range order {
		ranked = append(ranked, SubredditActivity{Subreddit: sub, Count: counts[sub]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > maxActivityEntries {
		ranked = ranked[:maxActivityEntries]
	}
	return ranked
}
