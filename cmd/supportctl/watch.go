package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"talentflow/internal/domain/entity"
	"talentflow/internal/usecase"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <uid>",
		Short: "Stream the support conversation of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			watchConversation(ctx, a.feed, entity.SupportConversationKey(args[0]), newFeedPrinter(cmd.OutOrStdout()))
			return nil
		},
	}
}

type feedWatcher interface {
	Watch(ctx context.Context, conversationKey string, sink usecase.FeedSink) *usecase.Subscription
}

// watchConversation streams into sink until ctx ends or the feed fails. It
// returns only after the listener has been released.
func watchConversation(ctx context.Context, feed feedWatcher, conversationKey string, sink usecase.FeedSink) {
	sub := feed.Watch(ctx, conversationKey, sink)
	defer func() {
		sub.Close()
		<-sub.Done()
	}()

	select {
	case <-ctx.Done():
	case <-sub.Done():
	}
}

// feedPrinter writes each message once, in feed order.
type feedPrinter struct {
	out  io.Writer
	seen map[string]bool
}

func newFeedPrinter(out io.Writer) *feedPrinter {
	return &feedPrinter{out: out, seen: make(map[string]bool)}
}

func (p *feedPrinter) Publish(state usecase.FeedState) {
	if state.Loading {
		fmt.Fprintf(p.out, "loading %s...\n", state.ConversationKey)
		return
	}
	if state.Notice != nil {
		fmt.Fprintf(p.out, "%s: %s\n", state.Notice.Title, state.Notice.Description)
		return
	}
	for _, m := range state.Messages {
		if p.seen[m.ID] {
			continue
		}
		p.seen[m.ID] = true
		fmt.Fprintln(p.out, formatMessage(m))
	}
}

func formatMessage(m *entity.Message) string {
	when := "pending"
	if m.CreatedAt != nil {
		when = m.CreatedAt.Local().Format(time.DateTime)
	}
	line := fmt.Sprintf("[%s] %s:", when, m.SenderID)
	if m.Text != nil {
		line += " " + *m.Text
	}
	if m.FileURL != nil {
		name := "View File"
		if m.FileName != nil {
			name = *m.FileName
		}
		line += fmt.Sprintf(" <%s %s>", name, *m.FileURL)
	}
	return line
}

var _ usecase.FeedSink = (*feedPrinter)(nil)
