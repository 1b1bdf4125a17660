package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"harshagw/textstats/internal/analysis"
	"harshagw/textstats/internal/session"
	"harshagw/textstats/internal/sink"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var n int
	var printJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a file and save the result",
		Long: "Analyze a file and save the result as JSON in the output directory.\n" +
			"A bare file name is looked up in the input directory; a path is used as given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s sessionAPI) error {
				if !cmd.Flags().Changed("top") {
					n = s.Config().Analysis.DefaultN
				}
				report, err := s.Analyze(cmd.Context(), args[0], n)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if printJSON {
					data, err := sink.Encode(report.Result)
					if err != nil {
						return err
					}
					_, err = out.Write(data)
					return err
				}

				fmt.Fprintf(out, "Analysis of %s saved to %s\n", report.File, report.OutputPath)
				fmt.Fprintln(out, renderSummary(report))
				fmt.Fprintln(out, renderFrequencies("Word", report.Result.MostFrequentWords))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&n, "top", "n", 0, "Number of most frequent words (defaults to analysis.default_n)")
	cmd.Flags().BoolVar(&printJSON, "print", false, "Print the saved JSON document instead of tables")
	return cmd
}

func renderSummary(report *session.Report) string {
	r := report.Result
	rows := [][]string{
		{"Encoding", report.Encoding},
		{"Symbols", strconv.Itoa(r.TotalSymbols.WithSpaces)},
		{"Symbols without spaces", strconv.Itoa(r.TotalSymbols.WithoutSpaces)},
		{"Sentences", strconv.Itoa(r.SentenceCount)},
		{"Words", strconv.Itoa(r.WordCount)},
		{"Average word length", strconv.FormatFloat(r.AverageWordLength, 'f', 2, 64)},
	}
	if report.RunID != 0 {
		rows = append(rows, []string{"Run", strconv.FormatUint(report.RunID, 10)})
	}
	return renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

func renderFrequencies(label string, freqs analysis.Frequencies) string {
	rows := make([][]string, 0, len(freqs))
	for i, f := range freqs {
		rows = append(rows, []string{strconv.Itoa(i + 1), f.Key, strconv.Itoa(f.Count)})
	}
	return renderTable([]string{"#", label, "Count"}, rows, []columnAlignment{alignRight, alignLeft, alignRight})
}
