package task

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/bornholm/chatten/internal/command/common"
	"github.com/bornholm/chatten/internal/core/model"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagWait = "wait"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Inspect the background prefetch tasks",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the known tasks",
				Flags: common.WithCommonFlags(),
				Action: func(cCtx *cli.Context) error {
					client, err := common.GetChattenClient(cCtx)
					if err != nil {
						return errors.Wrap(err, "could not create chatten client")
					}

					tasks, err := client.ListTasks(cCtx.Context)
					if err != nil {
						return errors.WithStack(err)
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tSCHEDULED")
					for _, t := range tasks {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Type, t.Status, humanize.Time(t.ScheduledAt))
					}

					return errors.WithStack(w.Flush())
				},
			},
			{
				Name:      "show",
				Usage:     "Show a task",
				ArgsUsage: "<task_id>",
				Flags: common.WithCommonFlags(
					&cli.BoolFlag{
						Name:  flagWait,
						Usage: "Wait for the task to finish",
					},
				),
				Action: func(cCtx *cli.Context) error {
					ctx := cCtx.Context

					taskID := model.TaskID(cCtx.Args().First())
					if taskID == "" {
						return errors.New("a task id is required")
					}

					client, err := common.GetChattenClient(cCtx)
					if err != nil {
						return errors.Wrap(err, "could not create chatten client")
					}

					task, err := client.GetTask(ctx, taskID)
					if err != nil {
						return errors.WithStack(err)
					}

					if cCtx.Bool(flagWait) && task.FinishedAt.IsZero() {
						task, err = client.WaitFor(ctx, taskID)
						if err != nil {
							return errors.WithStack(err)
						}
					}

					fmt.Printf("ID:        %s\n", task.ID)
					fmt.Printf("Type:      %s\n", task.Type)
					fmt.Printf("Status:    %s\n", task.Status)
					fmt.Printf("Scheduled: %s\n", task.ScheduledAt.Format(time.RFC3339))
					if !task.FinishedAt.IsZero() {
						fmt.Printf("Finished:  %s (%s)\n", task.FinishedAt.Format(time.RFC3339), task.FinishedAt.Sub(task.ScheduledAt))
					}
					if task.Message != "" {
						fmt.Printf("Message:   %s\n", task.Message)
					}
					if task.Error != "" {
						fmt.Printf("Error:     %s\n", task.Error)
					}

					return nil
				},
			},
		},
	}
}
