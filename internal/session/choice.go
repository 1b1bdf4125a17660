package session

import (
	"fmt"
	"strconv"
	"strings"

	"harshagw/textstats/internal/analysis"
)

// ParseFileChoice interprets a 1-based file number typed by the user. It
// returns quit=true for "q".
func ParseFileChoice(input string, files []string) (file string, quit bool, err error) {
	if len(files) == 0 {
		return "", false, &analysis.ValidationError{Field: "choice", Msg: "No files available to choose from"}
	}

	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "q") {
		return "", true, nil
	}

	idx, err := strconv.Atoi(input)
	if err != nil {
		// completion may insert the file name itself
		for _, f := range files {
			if f == input {
				return f, false, nil
			}
		}
		return "", false, &analysis.ValidationError{Field: "choice", Value: input,
			Msg: "Please enter a valid number or 'q' to quit"}
	}
	if idx < 1 || idx > len(files) {
		return "", false, &analysis.ValidationError{Field: "choice", Value: idx, Limit: len(files),
			Msg: fmt.Sprintf("Please enter a number between 1 and %d", len(files))}
	}
	return files[idx-1], false, nil
}

// ParseN parses the number of most frequent words and checks it against
// [analysis.MinN, maxN].
func ParseN(input string, maxN int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &analysis.ValidationError{Field: "n", Value: input, Msg: "N must be an integer"}
	}
	if err := analysis.ValidateN(n); err != nil {
		return 0, err
	}
	if n > maxN {
		return 0, &analysis.ValidationError{Field: "n", Value: n, Limit: maxN,
			Msg: fmt.Sprintf("N must be between %d and %d", analysis.MinN, maxN)}
	}
	return n, nil
}

// ParseContinue interprets a y/n answer.
func ParseContinue(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, &analysis.ValidationError{Field: "continue", Value: input, Msg: "Please enter 'y' or 'n'"}
	}
}
