package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"harshagw/textstats/internal/sink"
	"harshagw/textstats/internal/store"
)

var errHistoryDisabled = errors.New("run history is disabled (history.enabled = false)")

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history [file]",
		Short: "List recorded analyses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s sessionAPI) error {
				history := s.History()
				if history == nil {
					return errHistoryDisabled
				}

				var runs []*store.Run
				var err error
				if len(args) == 1 {
					runs, err = history.Runs(args[0])
				} else {
					runs, err = history.All()
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No recorded runs")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					words := ""
					if run.Result != nil {
						words = strconv.Itoa(run.Result.WordCount)
					}
					rows = append(rows, []string{
						strconv.FormatUint(run.ID, 10),
						run.File,
						strconv.Itoa(run.N),
						words,
						run.Encoding,
						run.CreatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "File", "N", "Words", "Encoding", "Created"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the result of a recorded analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}
			return ctx.withSession(func(s sessionAPI) error {
				history := s.History()
				if history == nil {
					return errHistoryDisabled
				}
				run, ok, err := history.Get(id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("run %d not found", id)
				}
				data, err := sink.Encode(run.Result)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
}
