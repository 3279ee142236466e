package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iyunix/go-spurchat/internal/widget"
)

func newSessionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List previous conversations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := opts.client().GetSessions(cmd.Context())
			if err != nil {
				return err
			}
			printSessions(cmd.OutOrStdout(), widget.State{}.SessionsLoaded(sessions))
			return nil
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history <session-id>",
		Short: "Print the transcript of one conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := opts.client().GetHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s, _ := widget.State{}.HistoryLoaded(args[0], messages)
			printTranscript(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newClearCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete ALL chat history",
		Long: `Delete every conversation and message on the server.

Requires confirmation unless --force is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !force {
				fmt.Fprint(out, "Are you sure you want to delete ALL chat history? This cannot be undone. [y/N]: ")
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if !scanner.Scan() || !isYes(scanner.Text()) {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			msg, err := opts.client().DeleteAllSessions(cmd.Context())
			if err != nil {
				return err
			}
			store, err := opts.store()
			if err == nil {
				err = store.Clear()
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not forget active session: %v\n", err)
			}
			fmt.Fprintln(out, msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
