package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bornholm/chatten/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagJSON = "json"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "chat",
		Usage:     "Ask a question to the document assistant",
		ArgsUsage: "<message>",
		Flags: common.WithCommonFlags(
			&cli.BoolFlag{
				Name:  flagJSON,
				Usage: "Print the raw json response",
			},
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			message := strings.Join(cCtx.Args().Slice(), " ")
			if strings.TrimSpace(message) == "" {
				return errors.New("a message is required")
			}

			client, err := common.GetChattenClient(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not create chatten client")
			}

			res, err := client.Chat(ctx, message)
			if err != nil {
				return errors.WithStack(err)
			}

			if cCtx.Bool(flagJSON) {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return errors.WithStack(encoder.Encode(res))
			}

			fmt.Println(res.Content)

			if len(res.Metadata) > 0 {
				fmt.Println()
				fmt.Println("Sources:")
			}

			for _, m := range res.Metadata {
				if m.Year != nil {
					fmt.Printf("- %s (%d)\n", m.FileName, *m.Year)
				} else {
					fmt.Printf("- %s\n", m.FileName)
				}
			}

			return nil
		},
	}
}
