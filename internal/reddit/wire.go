package reddit

import (
	"encoding/json"
	"fmt"
)

// Reddit thing kinds used by this client.
const (
	kindComment = "t1"
	kindLink    = "t3"
)

// thing is one child of a listing, tagged with its kind.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// listingEnvelope is the standard Listing wrapper around a page of things.
type listingEnvelope struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
		After    string  `json:"after"`
	} `json:"data"`
}

type accountData struct {
	Name         string  `json:"name"`
	CreatedUTC   float64 `json:"created_utc"`
	CommentKarma int     `json:"comment_karma"`
	LinkKarma    int     `json:"link_karma"`
	IsGold       bool    `json:"is_gold"`
	IsMod        bool    `json:"is_mod"`
}

type submissionData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	SelfText    string  `json:"selftext"`
	URL         string  `json:"url"`
	IsSelf      bool    `json:"is_self"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	Permalink   string  `json:"permalink"`
}

type userCommentData struct {
	Body       string  `json:"body"`
	Subreddit  string  `json:"subreddit"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	LinkTitle  string  `json:"link_title"`
	Permalink  string  `json:"permalink"`
}

// commentTreeData is a comment inside a submission's tree. Replies is either
// an empty string or a nested listing, so it stays raw until inspected.
type commentTreeData struct {
	Author      string          `json:"author"`
	Body        string          `json:"body"`
	Score       int             `json:"score"`
	CreatedUTC  float64         `json:"created_utc"`
	IsSubmitter bool            `json:"is_submitter"`
	Permalink   string          `json:"permalink"`
	Replies     json.RawMessage `json:"replies"`
}

func decodeSubmission(raw json.RawMessage) (*Submission, error) {
	var data submissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse submission: %w", err)
	}
	author := data.Author
	if author == "" {
		author = "[deleted]"
	}
	return &Submission{
		ID:          data.ID,
		Title:       data.Title,
		Subreddit:   data.Subreddit,
		Author:      author,
		Score:       data.Score,
		NumComments: data.NumComments,
		CreatedUTC:  int64(data.CreatedUTC),
		SelfText:    data.SelfText,
		URL:         data.URL,
		IsSelf:      data.IsSelf,
		UpvoteRatio: data.UpvoteRatio,
		Permalink:   permalinkURL(data.Permalink),
	}, nil
}

func decodeUserComment(raw json.RawMessage) (*UserComment, error) {
	var data userCommentData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse comment: %w", err)
	}
	author := data.Author
	if author == "" {
		author = "[deleted]"
	}
	return &UserComment{
		Body:       data.Body,
		Subreddit:  data.Subreddit,
		Author:     author,
		Score:      data.Score,
		CreatedUTC: int64(data.CreatedUTC),
		LinkTitle:  data.LinkTitle,
		Permalink:  permalinkURL(data.Permalink),
	}, nil
}
