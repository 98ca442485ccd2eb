package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"talentflow/internal/domain/entity"
	"talentflow/internal/usecase"
)

func sendCmd() *cobra.Command {
	var (
		text     string
		filePath string
		senderID string
	)

	cmd := &cobra.Command{
		Use:   "send <uid>",
		Short: "Send a message into the support conversation of a user",
		Long: `Sends text, a file, or both into support_<uid>. By default the
message is sent as <uid>; use --as to reply as an admin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			uid := args[0]
			if senderID == "" {
				senderID = uid
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if senderID != uid && !a.admins.IsPrivileged(ctx, senderID) {
				return fmt.Errorf("%s is not an admin", senderID)
			}

			var attachment *entity.Attachment
			if filePath != "" {
				f, err := os.Open(filePath)
				if err != nil {
					return err
				}
				defer f.Close()

				info, err := f.Stat()
				if err != nil {
					return err
				}
				attachment = &entity.Attachment{
					FileName:    filepath.Base(filePath),
					ContentType: mime.TypeByExtension(filepath.Ext(filePath)),
					Size:        info.Size(),
					Body:        f,
				}
			}

			content := entity.NewMessageContent(text, attachment)
			result, err := a.chat.Send(ctx, entity.SupportConversationKey(uid), entity.Identity{UID: senderID}, content)
			if err != nil {
				notice := usecase.NoticeFor(err)
				return fmt.Errorf("%s: %s", notice.Title, notice.Description)
			}
			if result.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to send")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", result.Message.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "message text")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "file to attach")
	cmd.Flags().StringVar(&senderID, "as", "", "sender uid (must be an admin when not <uid>)")

	return cmd
}
