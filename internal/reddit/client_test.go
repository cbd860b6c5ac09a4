package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := NewClient(Config{
		ClientID:       "cid",
		ClientSecret:   "secret",
		Username:       "gopher_tester",
		Password:       "hunter2",
		AuthBaseURL:    srv.URL,
		APIBaseURL:     srv.URL,
		RequestSpacing: time.Millisecond,
	}, nil)
	t.Cleanup(func() {
		// Drop keep-alive connections before the server shuts down so the
		// leak detector stays quiet.
		c.httpClient.CloseIdleConnections()
		srv.Close()
	})
	return c
}

func tokenHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); !ok || user != "cid" || pass != "secret" {
			t.Errorf("token request missing basic auth, got %q/%q", user, pass)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad token form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %q, want password", got)
		}
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`)
	}
}

func TestClient_Me(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", tokenHandler(t))
	mux.HandleFunc("/api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "gopher_tester") {
			t.Errorf("user agent not defaulted: %q", ua)
		}
		fmt.Fprint(w, `{"name":"gopher_tester","created_utc":1560328200.0,"comment_karma":150,"link_karma":50,"is_gold":false,"is_mod":true}`)
	})

	c := testClient(t, mux)
	acct, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if acct.Name != "gopher_tester" || acct.CommentKarma != 150 || acct.LinkKarma != 50 {
		t.Errorf("unexpected account: %+v", acct)
	}
	if !acct.IsMod || acct.IsGold {
		t.Errorf("flags wrong: %+v", acct)
	}
	if acct.CreatedUTC != 1560328200 {
		t.Errorf("CreatedUTC = %d", acct.CreatedUTC)
	}
}

func TestClient_TokenFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Unauthorized","error":401}`)
	})

	c := testClient(t, mux)
	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestClient_SubmissionsPagination(t *testing.T) {
	page := func(ids []string, after string) string {
		var children []string
		for _, id := range ids {
			children = append(children, fmt.Sprintf(
				`{"kind":"t3","data":{"id":%q,"title":"post %s","subreddit":"golang","permalink":"/r/golang/%s"}}`,
				id, id, id))
		}
		return fmt.Sprintf(`{"kind":"Listing","data":{"children":[%s],"after":%q}}`,
			strings.Join(children, ","), after)
	}

	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", tokenHandler(t))
	mux.HandleFunc("/user/gopher_tester/submitted", func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("after") {
		case "":
			fmt.Fprint(w, page([]string{"a", "b"}, "t3_b"))
		case "t3_b":
			fmt.Fprint(w, page([]string{"c"}, ""))
		default:
			t.Errorf("unexpected after cursor %q", r.URL.Query().Get("after"))
		}
	})

	c := testClient(t, mux)
	// Force pagination by asking for more than one stubbed page holds.
	subs, err := c.Submissions(context.Background(), 150)
	if err != nil {
		t.Fatalf("Submissions failed: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 submissions across pages, got %d", len(subs))
	}
	if calls != 2 {
		t.Errorf("expected 2 listing calls, got %d", calls)
	}
	if subs[0].ID != "a" || subs[2].ID != "c" {
		t.Errorf("page order lost: %+v", subs)
	}
	if subs[0].Permalink != "https://reddit.com/r/golang/a" {
		t.Errorf("permalink not absolutized: %q", subs[0].Permalink)
	}
}

func TestClient_SavedMixedKinds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", tokenHandler(t))
	mux.HandleFunc("/user/gopher_tester/saved", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kind":"Listing","data":{"children":[
			{"kind":"t3","data":{"id":"p1","title":"saved post","subreddit":"golang"}},
			{"kind":"t1","data":{"body":"saved comment","subreddit":"golang","author":"someone","link_title":"parent"}}
		],"after":""}}`)
	})

	c := testClient(t, mux)
	saved, err := c.Saved(context.Background(), 10)
	if err != nil {
		t.Fatalf("Saved failed: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved things, got %d", len(saved))
	}
	if saved[0].Submission == nil || saved[0].Comment != nil {
		t.Error("first thing should be a submission")
	}
	if saved[1].Comment == nil || saved[1].Comment.LinkTitle != "parent" {
		t.Error("second thing should be a comment with its parent title")
	}
}

func TestClient_PostCommentsFlattening(t *testing.T) {
	// Comment forest: top-level with a nested reply, a "more" placeholder,
	// and a deleted author.
	tree := `[
		{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"p1"}}],"after":""}},
		{"kind":"Listing","data":{"children":[
			{"kind":"t1","data":{"author":"alice","body":"top level","score":5,"is_submitter":true,
				"replies":{"kind":"Listing","data":{"children":[
					{"kind":"t1","data":{"author":"bob","body":"nested reply","score":2,"replies":""}}
				],"after":""}}}},
			{"kind":"more","data":{"count":42,"children":["x","y"]}},
			{"kind":"t1","data":{"author":"","body":"orphaned","score":1,"replies":""}}
		],"after":""}}
	]`

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", tokenHandler(t))
	mux.HandleFunc("/comments/p1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tree)
	})

	c := testClient(t, mux)
	comments, err := c.PostComments(context.Background(), "p1")
	if err != nil {
		t.Fatalf("PostComments failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 flattened comments, got %d: %+v", len(comments), comments)
	}
	if comments[0].Author != "alice" || !comments[0].IsSubmitter {
		t.Errorf("first comment wrong: %+v", comments[0])
	}
	if comments[1].Author != "bob" || comments[1].Body != "nested reply" {
		t.Errorf("nested reply not flattened in order: %+v", comments[1])
	}
	if comments[2].Author != "[deleted]" {
		t.Errorf("missing author should map to [deleted], got %q", comments[2].Author)
	}
}

func TestClient_SubscribedSubreddits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", tokenHandler(t))
	mux.HandleFunc("/subreddits/mine/subscriber", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kind":"Listing","data":{"children":[
			{"kind":"t5","data":{"display_name":"golang"}},
			{"kind":"t5","data":{"display_name":"programming"}}
		],"after":""}}`)
	})

	c := testClient(t, mux)
	subs, err := c.SubscribedSubreddits(context.Background(), 50)
	if err != nil {
		t.Fatalf("SubscribedSubreddits failed: %v", err)
	}
	if len(subs) != 2 || subs[0] != "golang" {
		t.Errorf("unexpected subreddits: %v", subs)
	}
}

func TestClient_TokenReused(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(accountData{Name: "gopher_tester"})
	})

	c := testClient(t, mux)
	for i := 0; i < 3; i++ {
		if _, err := c.Me(context.Background()); err != nil {
			t.Fatalf("Me call %d failed: %v", i, err)
		}
	}
	if tokenCalls != 1 {
		t.Errorf("token fetched %d times, want 1", tokenCalls)
	}
}

func TestDefaultConfig_UserAgent(t *testing.T) {
	cfg := DefaultConfig(Config{Username: "gopher_tester", UserAgent: "short"})
	if !strings.Contains(cfg.UserAgent, "by /u/gopher_tester") {
		t.Errorf("short user agent not replaced: %q", cfg.UserAgent)
	}

	cfg = DefaultConfig(Config{Username: "gopher_tester", UserAgent: "myapp:v2.0 (by /u/gopher_tester)"})
	if cfg.UserAgent != "myapp:v2.0 (by /u/gopher_tester)" {
		t.Errorf("valid user agent replaced: %q", cfg.UserAgent)
	}
}
