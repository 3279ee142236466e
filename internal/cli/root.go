// Package cli provides the terminal front-end for the chat widget.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iyunix/go-spurchat/internal/client"
	"github.com/iyunix/go-spurchat/internal/widget"
)

// Version is set at build time.
var Version = "0.1.0"

type options struct {
	apiURL    string
	timeout   time.Duration
	storePath string
}

// NewRootCmd builds the command tree. Commands read from cmd.InOrStdin and
// write to cmd.OutOrStdout so they can be driven from tests.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "spurchat",
		Short: "SpurStore support chat in your terminal",
		Long: `spurchat talks to the SpurChat API server.

Run "spurchat chat" for an interactive conversation. The last active
conversation is remembered and resumed on the next start.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	_ = godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", envOr("SPURCHAT_API_URL", client.DefaultBaseURL), "chat API base URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", envDuration("SPURCHAT_CLIENT_TIMEOUT", 60*time.Second), "request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.storePath, "store", "", "file that remembers the active session (default: user config dir)")

	rootCmd.AddCommand(newChatCmd(opts))
	rootCmd.AddCommand(newSessionsCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newClearCmd(opts))
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) client() *client.Client {
	return client.New(o.apiURL, o.timeout)
}

func (o *options) store() (widget.SessionStore, error) {
	path := o.storePath
	if path == "" {
		var err error
		path, err = widget.DefaultStorePath()
		if err != nil {
			return nil, err
		}
	}
	return widget.NewFileStore(path), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s %q, using %v\n", key, v, fallback)
		return fallback
	}
	return d
}

// stderrLogger satisfies widget.Logger.
type stderrLogger struct{ w io.Writer }

func (l stderrLogger) Warn(msg string, keysAndValues ...interface{}) {
	fmt.Fprintf(l.w, "warning: %s %v\n", msg, keysAndValues)
}
