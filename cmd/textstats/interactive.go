package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"harshagw/textstats/internal/session"
)

// lineReader reads one line of user input. io.EOF ends the session.
// prompt.Input reports Ctrl-D as an empty line, so an empty answer at the
// file and continue prompts ends the session too.
type lineReader interface {
	ReadLine(prefix string, completer prompt.Completer) (string, error)
}

type promptReader struct{}

func (promptReader) ReadLine(prefix string, completer prompt.Completer) (string, error) {
	if completer == nil {
		completer = noSuggestions
	}
	return prompt.Input(prefix, completer, prompt.OptionTitle("textstats")), nil
}

func noSuggestions(prompt.Document) []prompt.Suggest { return nil }

func newInteractiveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Choose files and analyze them one after another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s sessionAPI) error {
				return runInteractive(cmd.Context(), cmd.OutOrStdout(), s, promptReader{})
			})
		},
	}
}

func printBanner(out io.Writer) {
	fmt.Fprintln(out, "Text Statistics Analyzer")
	fmt.Fprintln(out, "========================")
	fmt.Fprintln(out)
}

// runInteractive lists the input files, lets the user pick one and the number
// of top words, analyzes it and repeats until the user stops.
func runInteractive(ctx context.Context, out io.Writer, s sessionAPI, in lineReader) error {
	printBanner(out)
	cfg := s.Config()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		files, err := s.Files()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(out, "No text files found in %s\n", cfg.Paths.InputDir)
			return nil
		}

		fmt.Fprintln(out, "Available files:")
		for i, name := range files {
			fmt.Fprintf(out, "  %d. %s\n", i+1, name)
		}
		fmt.Fprintln(out)

		file, quit, err := readFileChoice(out, in, files)
		if err != nil {
			return endOfInput(out, err)
		}
		if quit {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		n, err := readN(out, in, cfg.Analysis.DefaultN, cfg.Analysis.MaxN)
		if err != nil {
			return endOfInput(out, err)
		}

		report, err := s.Analyze(ctx, file, n)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		} else {
			fmt.Fprintf(out, "Analysis of %s saved to %s\n", report.File, report.OutputPath)
			fmt.Fprintln(out, renderSummary(report))
		}
		fmt.Fprintln(out)

		again, err := readContinue(out, in)
		if err != nil {
			return endOfInput(out, err)
		}
		if !again {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
	}
}

func readFileChoice(out io.Writer, in lineReader, files []string) (string, bool, error) {
	suggestions := make([]prompt.Suggest, 0, len(files))
	for i, name := range files {
		suggestions = append(suggestions, prompt.Suggest{Text: name, Description: strconv.Itoa(i + 1)})
	}
	completer := func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
	}

	for {
		line, err := in.ReadLine("Select a file number ('q' or empty to quit): ", completer)
		if err != nil {
			return "", false, err
		}
		if strings.TrimSpace(line) == "" {
			return "", true, nil
		}
		file, quit, err := session.ParseFileChoice(line, files)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		return file, quit, nil
	}
}

func readN(out io.Writer, in lineReader, defaultN, maxN int) (int, error) {
	label := fmt.Sprintf("Number of most frequent words (1-%d) [%d]: ", maxN, defaultN)
	for {
		line, err := in.ReadLine(label, nil)
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(line) == "" {
			return defaultN, nil
		}
		n, err := session.ParseN(line, maxN)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		return n, nil
	}
}

func readContinue(out io.Writer, in lineReader) (bool, error) {
	choices := []prompt.Suggest{{Text: "y", Description: "analyze another file"}, {Text: "n", Description: "exit"}}
	completer := func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(choices, d.GetWordBeforeCursor(), true)
	}
	for {
		line, err := in.ReadLine("Analyze another file? (y/n): ", completer)
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(line) == "" {
			return false, nil
		}
		again, err := session.ParseContinue(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		return again, nil
	}
}

func endOfInput(out io.Writer, err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(out, "Goodbye!")
		return nil
	}
	return err
}
