package llm

import "fmt"

// SystemPrompt frames every query about the user's account data.
const SystemPrompt = `You are a helpful assistant that analyzes Reddit account data.
You have been provided with a user's Reddit account summary including their posts, comments,
karma, active subreddits, and other account information.

Please answer the user's questions about their Reddit account based on this data.
Be specific, helpful, and provide insights when possible. If the data doesn't contain
enough information to answer a question, say so clearly.

Keep responses conversational and engaging while being accurate to the provided data.`

// BuildUserMessage combines the rendered account summary with the user's
// question into the message body sent to the model.
func BuildUserMessage(summary, question string) string {
	return fmt.Sprintf("Here is my Reddit account data:\n\n%s\n\nMy question: %s", summary, question)
}

// AnalyzePatternsPrompt asks for an overall read of the account's activity.
const AnalyzePatternsPrompt = `Based on this Reddit account data, please provide insights about:

1. **Posting Patterns**: What topics does this user typically post about?
2. **Community Engagement**: Which communities are they most active in and why?
3. **Content Style**: What's their commenting/posting style?
4. **Interests**: What are their main interests based on their activity?
5. **Engagement Quality**: How well do their posts and comments perform?

Please be specific and provide actionable insights where possible.`

// SuggestImprovementsPrompt asks for engagement advice.
const SuggestImprovementsPrompt = `Based on my Reddit activity data, please suggest ways I could:

1. **Improve Engagement**: How can I get better responses to my posts and comments?
2. **Discover Communities**: What new subreddits might I enjoy based on my interests?
3. **Content Strategy**: How can I create more valuable content?
4. **Community Participation**: How can I be a better community member?
5. **Growth Opportunities**: How can I grow my karma and positive impact?

Please provide specific, actionable advice based on my actual Reddit data.`

// CompareSubredditsPrompt asks for a side-by-side of the user's presence in
// two communities.
func CompareSubredditsPrompt(a, b string) string {
	return fmt.Sprintf(`Based on my Reddit activity data, please compare my participation in r/%s vs r/%s:

1. **Activity Level**: How active am I in each community?
2. **Content Type**: What kind of content do I post/comment in each?
3. **Engagement**: How well do my contributions perform in each?
4. **Community Fit**: Which community seems to be a better fit for me and why?
5. **Recommendations**: How can I improve my participation in each community?

If I haven't been active in one or both of these subreddits, please let me know and suggest similar communities I am active in.`, a, b)
}

// ContentSuggestionsPrompt asks for post ideas tailored to one subreddit.
func ContentSuggestionsPrompt(subreddit string) string {
	return fmt.Sprintf(`Based on my Reddit activity and interests, please suggest content ideas for r/%s:

1. **Post Ideas**: What kind of posts would be valuable for this community and align with my interests?
2. **Discussion Topics**: What discussions could I start that would engage the community?
3. **Content Format**: What format (text, link, image, etc.) works best for my style and this subreddit?
4. **Timing**: Based on my activity patterns, when might be the best time to post?
5. **Engagement Strategy**: How can I encourage meaningful discussions?

Please base suggestions on my actual interests and past successful content.`, subreddit)
}
