package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wellspring-ai/wellspring/internal/assistant"
	"github.com/wellspring-ai/wellspring/internal/config"
)

func newChatCmd() *cobra.Command {
	var (
		userID   string
		userName string
	)

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send one message to the assistant and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			a, db, err := buildAssistant(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := a.Chat(ctx, assistant.ChatRequest{
				UserID:   userID,
				UserName: userName,
				Message:  message,
			})
			if err != nil {
				return err
			}

			fmt.Println(result.Reply)
			if result.Model != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n[model=%s tokens=%d+%d]\n",
					result.Model, result.Usage.PromptTokens, result.Usage.CompletionTokens)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "cli", "user ID owning the conversation")
	cmd.Flags().StringVar(&userName, "name", "", "display name passed to the assistant")

	return cmd
}
