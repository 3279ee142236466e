package cli

import (
	"fmt"
	"io"

	"github.com/iyunix/go-spurchat/internal/domain"
	"github.com/iyunix/go-spurchat/internal/widget"
)

func printEntry(w io.Writer, e widget.Entry) {
	who := "you"
	if e.Sender == domain.SenderAI {
		who = "support"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", e.Timestamp.Local().Format("15:04"), who, e.Text)
}

func printTranscript(w io.Writer, s widget.State) {
	if len(s.Messages) == 0 {
		fmt.Fprintln(w, "Hi! How can we help you today?")
		return
	}
	for _, e := range s.Messages {
		printEntry(w, e)
	}
}

func printSessions(w io.Writer, s widget.State) {
	visible := s.VisibleSessions()
	if len(visible) == 0 {
		if s.Search != "" {
			fmt.Fprintf(w, "No conversations match %q.\n", s.Search)
		} else {
			fmt.Fprintln(w, "No previous conversations.")
		}
		return
	}
	for i, sess := range visible {
		marker := " "
		if sess.ID == s.SessionID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%2d. %s (%s)\n", marker, i+1, widget.SessionLabel(sess), sess.CreatedAt.Local().Format("Jan 2, 2006"))
	}
}

func printError(w io.Writer, s widget.State) {
	if s.Error != "" {
		fmt.Fprintf(w, "! %s\n", s.Error)
	}
}
