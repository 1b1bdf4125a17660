package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"harshagw/textstats/internal/query"
)

func newWordsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "words <file> [query...]",
		Short: "Look up words in the vocabulary of an analyzed file",
		Long: "Look up words in the vocabulary written by the last analysis of a file.\n\n" +
			"Query syntax:\n" +
			"  word        exact word\n" +
			"  wo*         prefix\n" +
			"  word~2      words within two edits (word~ means one)\n" +
			"  /w.+d/      regular expression matching the whole word\n" +
			"  a AND b, a b, a OR b, NOT a, -a, ( ... )\n\n" +
			"Without a query every word is listed, most frequent first.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args[1:], " ")
			q, err := query.ParseString(input)
			if err != nil {
				return fmt.Errorf("invalid query: %w", err)
			}

			return ctx.withSession(func(s sessionAPI) error {
				v, err := s.Vocabulary(args[0])
				if err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						return fmt.Errorf("no vocabulary for %s; analyze it first", args[0])
					}
					return err
				}
				defer v.Close()

				words, err := query.NewExecutor(v).Execute(q, limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(words) == 0 {
					fmt.Fprintf(out, "No words match %s\n", q)
					return nil
				}
				fmt.Fprintln(out, renderFrequencies("Word", words))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of words to print (0 for all)")
	return cmd
}
