package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-spurchat/internal/widget"
)

const replHelp = `Commands:
  /new         start a new conversation
  /sessions    list previous conversations
  /open N      open conversation N from the list
  /delete N    hide conversation N from the list
  /search Q    filter the list by title (empty Q clears)
  /clear-all   delete ALL chat history
  /quit        exit
Anything else is sent as a message.`

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive support conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			ctrl := widget.NewController(opts.client(), store, stderrLogger{cmd.ErrOrStderr()})
			return runREPL(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runREPL(ctx context.Context, ctrl *widget.Controller, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl.Init(ctx)
	printTranscript(out, ctrl.State())
	printError(out, ctrl.State())
	fmt.Fprintln(out, "Type /help for commands.")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if !strings.HasPrefix(strings.TrimSpace(line), "/") {
			before := len(ctrl.State().Messages)
			ctrl.Send(ctx, line)
			s := ctrl.State()
			if len(s.Messages) > before {
				printEntry(out, s.Messages[len(s.Messages)-1])
			}
			printError(out, s)
			continue
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "/quit", "/exit":
			return nil
		case "/help":
			fmt.Fprintln(out, replHelp)
		case "/new":
			ctrl.NewChat(ctx)
			printTranscript(out, ctrl.State())
		case "/sessions":
			ctrl.RefreshSessions(ctx)
			printSessions(out, ctrl.State())
		case "/search":
			ctrl.Search(arg)
			printSessions(out, ctrl.State())
		case "/open", "/delete":
			id, ok := pickSession(out, ctrl.State(), arg)
			if !ok {
				continue
			}
			if cmd == "/open" {
				ctrl.Open(ctx, id)
				printTranscript(out, ctrl.State())
			} else {
				ctrl.DeleteSession(ctx, id)
				printSessions(out, ctrl.State())
			}
			printError(out, ctrl.State())
		case "/clear-all":
			fmt.Fprint(out, "Are you sure you want to delete ALL chat history? This cannot be undone. [y/N]: ")
			if !scanner.Scan() || !isYes(scanner.Text()) {
				fmt.Fprintln(out, "Cancelled.")
				continue
			}
			ctrl.ClearAll(ctx)
			if s := ctrl.State(); s.Error != "" {
				printError(out, s)
			} else {
				fmt.Fprintln(out, "All chat history deleted.")
			}
		default:
			fmt.Fprintf(out, "Unknown command %s. Type /help for commands.\n", cmd)
		}
	}
}

// pickSession resolves a 1-based index into the visible session list.
func pickSession(out io.Writer, s widget.State, arg string) (string, bool) {
	visible := s.VisibleSessions()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(visible) {
		fmt.Fprintln(out, "Pick a number from /sessions.")
		return "", false
	}
	return visible[n-1].ID, true
}

func isYes(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
