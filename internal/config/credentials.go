package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// CollectMissing prompts for any credential the config does not already
// carry. Secrets are read without echo when stdin is a terminal. Nothing
// collected here is ever written to disk.
func CollectMissing(cfg *Config, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	prompt := func(dst *string, label string, secret bool) error {
		if *dst != "" {
			return nil
		}
		fmt.Fprintf(out, "   %s: ", label)
		var value string
		if secret && isTerminal(in) {
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", label, err)
			}
			value = string(raw)
		} else {
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read %s: %w", label, err)
			}
			value = line
		}
		*dst = strings.TrimSpace(value)
		return nil
	}

	fmt.Fprintln(out, "Reddit API credentials:")
	if err := prompt(&cfg.Reddit.ClientID, "Reddit Client ID", false); err != nil {
		return err
	}
	if err := prompt(&cfg.Reddit.ClientSecret, "Reddit Client Secret", true); err != nil {
		return err
	}
	if err := prompt(&cfg.Reddit.Username, "Reddit Username", false); err != nil {
		return err
	}
	if err := prompt(&cfg.Reddit.Password, "Reddit Password", true); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nLLM configuration (provider: %s):\n", cfg.LLM.Provider)
	if err := prompt(&cfg.LLM.APIKey, "LLM API Key", true); err != nil {
		return err
	}

	return cfg.Validate()
}

func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
