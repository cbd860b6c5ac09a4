// This file implements the interactive session: banner, connection tests,
// and the numbered menu loop over the fetched account snapshot.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"redditwithllm/internal/config"
	"redditwithllm/internal/llm"
	"redditwithllm/internal/reddit"
	"redditwithllm/internal/snapshot"

	"github.com/charmbracelet/lipgloss"
)

// snapshotLoader abstracts SnapshotFetcher so the session loop can be
// driven by a stub in tests.
type snapshotLoader interface {
	Fetch(ctx context.Context, limits reddit.Limits) (*snapshot.AccountSnapshot, error)
}

// session holds all interactive state. The current snapshot and its
// rendered summary travel together; reloading replaces both.
type session struct {
	cfg     *config.Config
	fetcher snapshotLoader
	llm     llm.Client
	styles  styles
	plain   bool

	in  *bufio.Reader
	out io.Writer

	snap    *snapshot.AccountSnapshot
	summary string
}

func runInteractive() error {
	ctx, cancel := sessionContext()
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer cfg.Clear()

	client, err := buildLLM(ctx, cfg)
	if err != nil {
		return err
	}
	fetcher, redditClient := buildFetcher(cfg)

	s := &session{
		cfg:     cfg,
		fetcher: fetcher,
		llm:     client,
		styles:  defaultStyles(),
		plain:   plainText,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	s.printBanner()

	if err := s.testConnections(ctx, redditClient); err != nil {
		return err
	}
	if err := s.reload(ctx); err != nil {
		return err
	}
	return s.menuLoop(ctx)
}

func (s *session) printBanner() {
	banner := s.styles.Banner.Render("RedditWithLLM\nAsk an LLM about your Reddit account")
	if s.plain {
		banner = "=== RedditWithLLM ==="
	}
	fmt.Fprintln(s.out, banner)
	fmt.Fprintln(s.out)
}

// testConnections probes both APIs before entering the menu so credential
// problems surface immediately instead of mid-session.
func (s *session) testConnections(ctx context.Context, redditClient *reddit.Client) error {
	fmt.Fprint(s.out, "Testing Reddit connection... ")
	me, err := redditClient.Me(ctx)
	if err != nil {
		fmt.Fprintln(s.out, s.style(s.styles.Error, "failed"))
		return describeFetchError(err)
	}
	fmt.Fprintln(s.out, s.style(s.styles.Success, fmt.Sprintf("ok (u/%s)", me.Name)))

	fmt.Fprintf(s.out, "Testing %s connection... ", s.cfg.LLM.Provider)
	if err := llm.Probe(ctx, s.llm); err != nil {
		fmt.Fprintln(s.out, s.style(s.styles.Error, "failed"))
		return fmt.Errorf("LLM connection test failed: %w", err)
	}
	fmt.Fprintln(s.out, s.style(s.styles.Success, "ok"))
	fmt.Fprintln(s.out)
	return nil
}

// reload fetches a fresh snapshot and re-renders the summary.
func (s *session) reload(ctx context.Context) error {
	snap, err := s.fetcher.Fetch(ctx, reddit.Limits{
		Posts:    s.cfg.Limits.Posts,
		Comments: s.cfg.Limits.Comments,
		Saved:    s.cfg.Limits.Saved,
	})
	if err != nil {
		return describeFetchError(err)
	}
	s.snap = snap
	s.summary = snapshot.Render(snap)
	fmt.Fprintf(s.out, "Loaded data for u/%s: %d posts, %d comments, %d saved items\n\n",
		snap.Username, len(snap.RecentPosts), len(snap.RecentComments), len(snap.SavedItems))
	return nil
}

const menuText = `What would you like to do?

  1. Ask a question about your Reddit data
  2. Get AI insights about your activity patterns
  3. Get suggestions to improve your Reddit experience
  4. Compare your activity between two subreddits
  5. Get content suggestions for a subreddit
  6. Reload Reddit data
  7. Exit
`

func (s *session) menuLoop(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, strings.Repeat("─", 60))
		fmt.Fprint(s.out, s.style(s.styles.Menu, menuText))
		choice, err := s.readLine("\nEnter your choice (1-7): ")
		if err != nil {
			return nil
		}

		switch choice {
		case "1":
			s.handleQuestion(ctx)
		case "2":
			s.askLLM(ctx, llm.AnalyzePatternsPrompt)
		case "3":
			s.askLLM(ctx, llm.SuggestImprovementsPrompt)
		case "4":
			s.handleCompare(ctx)
		case "5":
			s.handleContentSuggestions(ctx)
		case "6":
			if err := s.reload(ctx); err != nil {
				fmt.Fprintln(s.out, s.style(s.styles.Error, fmt.Sprintf("Reload failed: %v", err)))
			}
		case "7":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, s.style(s.styles.Warn, "Please enter a number between 1 and 7."))
		}

		if err := ctx.Err(); err != nil {
			return nil
		}
	}
}

func (s *session) handleQuestion(ctx context.Context) {
	question, err := s.readLine("Your question: ")
	if err != nil || question == "" {
		fmt.Fprintln(s.out, s.style(s.styles.Warn, "No question entered."))
		return
	}
	s.askLLM(ctx, question)
}

func (s *session) handleCompare(ctx context.Context) {
	first, err := s.readLine("First subreddit: ")
	if err != nil || first == "" {
		fmt.Fprintln(s.out, s.style(s.styles.Warn, "No subreddit entered."))
		return
	}
	second, err := s.readLine("Second subreddit: ")
	if err != nil || second == "" {
		fmt.Fprintln(s.out, s.style(s.styles.Warn, "No subreddit entered."))
		return
	}
	s.askLLM(ctx, llm.CompareSubredditsPrompt(first, second))
}

func (s *session) handleContentSuggestions(ctx context.Context) {
	sub, err := s.readLine("Subreddit name: ")
	if err != nil || sub == "" {
		fmt.Fprintln(s.out, s.style(s.styles.Warn, "No subreddit entered."))
		return
	}
	s.askLLM(ctx, llm.ContentSuggestionsPrompt(sub))
}

// askLLM sends one question about the current summary and prints the
// rendered answer with its token count.
func (s *session) askLLM(ctx context.Context, question string) {
	fmt.Fprintln(s.out, "\nThinking...")
	resp, err := s.llm.Chat(ctx, llm.SystemPrompt, llm.BuildUserMessage(s.summary, question))
	if err != nil {
		fmt.Fprintln(s.out, s.style(s.styles.Error, fmt.Sprintf("LLM request failed: %v", err)))
		return
	}

	fmt.Fprintln(s.out, strings.Repeat("─", 60))
	fmt.Fprintln(s.out, renderMarkdown(resp.Text, s.plain))
	if resp.TokensUsed > 0 {
		fmt.Fprintln(s.out, s.style(s.styles.Faint, fmt.Sprintf("(%d tokens, %s)", resp.TokensUsed, resp.Model)))
	}
	fmt.Fprintln(s.out)
}

// readLine prints a prompt and reads one trimmed line from the session input.
func (s *session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, s.style(s.styles.Prompt, prompt))
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *session) style(st lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return st.Render(text)
}
