package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"redditwithllm/internal/config"
	"redditwithllm/internal/llm"
	"redditwithllm/internal/reddit"
	"redditwithllm/internal/snapshot"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	plainText  bool
	postLimit  int
	commentLim int
	savedLimit int

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command. Running it without a subcommand
// starts the interactive session.
var rootCmd = &cobra.Command{
	Use:   "redditwithllm",
	Short: "Analyze your Reddit account with an LLM",
	Long: `redditwithllm fetches your Reddit profile, recent activity, saved items,
and subscriptions, then lets you ask questions about that data through
an LLM provider (OpenAI, Anthropic, or Gemini).

Credentials are read from config, environment variables, or a .env file,
and are never written back to disk.

Run without arguments to start the interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = level
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("session_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// summaryCmd fetches the account and prints the formatted summary once.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Fetch account data and print the summary",
	Long: `Fetches your Reddit profile, recent posts and comments, saved items,
and subscribed subreddits, and prints the aggregated text summary
without entering the interactive session.`,
	RunE: runSummary,
}

// searchCmd fetches the account and searches the snapshot for a keyword.
var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search your fetched Reddit data for a keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

// askCmd fetches the account and sends a single question to the LLM.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the LLM a single question about your Reddit data",
	Long: `Fetches your account data, builds the summary, and sends one question
to the configured LLM provider. The answer is printed and the program
exits.

Example:
  redditwithllm ask "What are my most discussed topics?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.redditwithllm.yaml)")
	rootCmd.PersistentFlags().BoolVar(&plainText, "plain", false, "Disable styled output and markdown rendering")
	rootCmd.PersistentFlags().IntVar(&postLimit, "posts", 0, "Override number of recent posts to fetch")
	rootCmd.PersistentFlags().IntVar(&commentLim, "comments", 0, "Override number of recent comments to fetch")
	rootCmd.PersistentFlags().IntVar(&savedLimit, "saved", 0, "Override number of saved items to fetch")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// sessionContext returns a context cancelled on SIGINT/SIGTERM.
func sessionContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted")
		cancel()
	}()
	return ctx, cancel
}

// loadConfig loads the config file, applies flag overrides, and prompts
// for any missing credentials on stdin.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if postLimit > 0 {
		cfg.Limits.Posts = postLimit
	}
	if commentLim > 0 {
		cfg.Limits.Comments = commentLim
	}
	if savedLimit > 0 {
		cfg.Limits.Saved = savedLimit
	}
	if err := config.CollectMissing(cfg, os.Stdin, os.Stdout); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildFetcher wires the Reddit client and snapshot fetcher from config.
func buildFetcher(cfg *config.Config) (*reddit.SnapshotFetcher, *reddit.Client) {
	client := reddit.NewClient(reddit.Config{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
		UserAgent:    cfg.Reddit.UserAgent,
	}, logger)
	return reddit.NewSnapshotFetcher(client, logger), client
}

// buildLLM constructs the configured LLM client.
func buildLLM(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	return llm.New(ctx, llm.Options{
		Provider:    llm.Provider(cfg.LLM.Provider),
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, logger)
}

// fetchSnapshot runs the full account fetch with a progress line.
func fetchSnapshot(ctx context.Context, fetcher *reddit.SnapshotFetcher, cfg *config.Config) (*snapshot.AccountSnapshot, error) {
	fmt.Println("Fetching Reddit account data...")
	start := time.Now()
	snap, err := fetcher.Fetch(ctx, reddit.Limits{
		Posts:    cfg.Limits.Posts,
		Comments: cfg.Limits.Comments,
		Saved:    cfg.Limits.Saved,
	})
	if err != nil {
		return nil, describeFetchError(err)
	}
	fmt.Printf("Fetched data for u/%s in %s\n", snap.Username, time.Since(start).Round(time.Millisecond))
	return snap, nil
}

// describeFetchError attaches a remediation hint to common Reddit API
// failures before surfacing them.
func describeFetchError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "401"):
		return fmt.Errorf("%w\nHint: check your Reddit client ID, secret, username, and password", err)
	case strings.Contains(msg, "403"):
		return fmt.Errorf("%w\nHint: the app must be a 'script' type app registered at https://www.reddit.com/prefs/apps", err)
	case strings.Contains(msg, "429"):
		return fmt.Errorf("%w\nHint: rate limited by Reddit, wait a minute and retry", err)
	}
	return err
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx, cancel := sessionContext()
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer cfg.Clear()

	fetcher, _ := buildFetcher(cfg)
	snap, err := fetchSnapshot(ctx, fetcher, cfg)
	if err != nil {
		return err
	}
	fmt.Println(snapshot.Render(snap))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := sessionContext()
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer cfg.Clear()

	fetcher, _ := buildFetcher(cfg)
	snap, err := fetchSnapshot(ctx, fetcher, cfg)
	if err != nil {
		return err
	}
	fmt.Print(formatSearchResults(args[0], snapshot.Search(snap, args[0])))
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	fetcher, _ := buildFetcher(cfg)
	snap, err := fetchSnapshot(ctx, fetcher, cfg)
	if err != nil {
		return err
	}
	summary := snapshot.Render(snap)

	question := strings.Join(args, " ")
	resp, err := client.Chat(ctx, llm.SystemPrompt, llm.BuildUserMessage(summary, question))
	if err != nil {
		return fmt.Errorf("LLM request failed: %w", err)
	}
	fmt.Println(renderMarkdown(resp.Text, plainText))
	if resp.TokensUsed > 0 {
		fmt.Printf("\n(%d tokens, %s)\n", resp.TokensUsed, resp.Model)
	}
	return nil
}
