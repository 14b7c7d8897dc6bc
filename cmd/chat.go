package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/statcompare/internal/chat"
	"github.com/sells-group/statcompare/internal/compare"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the stats assistant",
	Long: `Sends messages to the stats assistant. With a message argument a single
turn is sent; otherwise an interactive prompt reads one message per line
until EOF or /quit. When the assistant names two teams, the comparison
views are loaded for them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		errW := cmd.ErrOrStderr()

		client := newClient()
		store, err := newCompareStore(client)
		if err != nil {
			return err
		}

		session := chat.NewSession(client, store,
			chat.WithTypingInterval(cfg.Chat.TypingInterval()),
			chat.WithErrorNotice(cfg.Chat.ErrorNotice),
			chat.WithTypingListener(func(text string) {
				_, _ = fmt.Fprintf(errW, "\r%-10s", text)
			}),
		)

		if len(args) > 0 {
			return chatTurn(ctx, w, errW, session, store, strings.Join(args, " "))
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			_, _ = fmt.Fprint(errW, "> ")
			if !scanner.Scan() {
				break
			}
			line := scanner.Text()
			if cmdText := strings.TrimSpace(line); cmdText == "/quit" || cmdText == "/exit" {
				break
			}
			if err := chatTurn(ctx, w, errW, session, store, line); err != nil {
				return err
			}
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// chatTurn sends one message, prints the reply and, when the reply selected a
// pair, the refreshed comparison.
func chatTurn(ctx context.Context, w, errW io.Writer, session *chat.Session, store *compare.Store, text string) error {
	before := store.View(compare.RadarView).Token

	err := session.Send(ctx, text)
	_, _ = fmt.Fprint(errW, "\r"+strings.Repeat(" ", 10)+"\r")
	if errors.Is(err, chat.ErrEmptyMessage) {
		return nil
	}
	if err != nil {
		return err
	}

	history := session.History()
	if len(history) > 0 {
		_, _ = fmt.Fprintln(w, history[len(history)-1].Content)
	}

	if store.View(compare.RadarView).Token == before {
		return nil
	}
	store.Wait()
	if pair, ok := store.Pair(); ok {
		_, _ = fmt.Fprintf(w, "\nComparing %s and %s\n", pair.A(), pair.B())
	}
	return printCompare(w, outputTable, buildCompareReport(store))
}
