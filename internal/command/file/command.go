package file

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bornholm/chatten/internal/command/common"
	"github.com/bornholm/chatten/internal/core/model"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagOutput = "output"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "file",
		Usage: "Download documents and locate their relevant pages",
		Subcommands: []*cli.Command{
			getCommand(),
			pageCommand(),
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Download a document",
		ArgsUsage: "<file_name>",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   "Destination file (use '-' for stdout, default to the document base name)",
			},
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			documentID := model.DocumentID(cCtx.Args().First())
			if err := documentID.Validate(); err != nil {
				return errors.WithStack(err)
			}

			client, err := common.GetChattenClient(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not create chatten client")
			}

			output := cCtx.String(flagOutput)
			if output == "" {
				output = filepath.Base(string(documentID))
			}

			var w io.Writer
			if output == "-" {
				w = os.Stdout
			} else {
				file, err := os.Create(output)
				if err != nil {
					return errors.Wrapf(err, "could not create file '%s'", output)
				}

				defer file.Close()

				w = file
			}

			counter := &countingWriter{w: w}

			if err := client.GetFile(ctx, documentID, counter); err != nil {
				return errors.WithStack(err)
			}

			slog.InfoContext(ctx, "document downloaded",
				slog.String("documentID", string(documentID)),
				slog.String("output", output),
				slog.String("size", humanize.Bytes(uint64(counter.n))),
			)

			return nil
		},
	}
}

func pageCommand() *cli.Command {
	return &cli.Command{
		Name:      "page",
		Usage:     "Find the page of an already downloaded document best matching a text",
		ArgsUsage: "<file_name> <query>",
		Flags:     common.WithCommonFlags(),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			if cCtx.NArg() < 2 {
				return errors.New("a file name and a query are required")
			}

			documentID := model.DocumentID(cCtx.Args().First())
			query := strings.Join(cCtx.Args().Tail(), " ")

			client, err := common.GetChattenClient(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not create chatten client")
			}

			res, err := client.RelevantPage(ctx, documentID, query)
			if err != nil {
				return errors.WithStack(err)
			}

			if !res.Matched {
				slog.WarnContext(ctx, "no page matched the query, defaulting to the first one")
			}

			fmt.Println(res.PageNum)

			return nil
		},
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
