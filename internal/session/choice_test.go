package session

import (
	"testing"

	"harshagw/textstats/internal/analysis"
)

func TestParseFileChoice(t *testing.T) {
	files := []string{"a.txt", "b.txt", "c.txt"}

	tests := []struct {
		input string
		want  string
		quit  bool
		valid bool
	}{
		{"1", "a.txt", false, true},
		{" 3 ", "c.txt", false, true},
		{"b.txt", "b.txt", false, true},
		{"q", "", true, true},
		{"Q", "", true, true},
		{"0", "", false, false},
		{"4", "", false, false},
		{"-1", "", false, false},
		{"abc", "", false, false},
		{"", "", false, false},
	}

	for _, tt := range tests {
		got, quit, err := ParseFileChoice(tt.input, files)
		if tt.valid {
			if err != nil {
				t.Errorf("ParseFileChoice(%q) error: %v", tt.input, err)
				continue
			}
			if got != tt.want || quit != tt.quit {
				t.Errorf("ParseFileChoice(%q) = %q, %v; want %q, %v", tt.input, got, quit, tt.want, tt.quit)
			}
			continue
		}
		if !analysis.IsValidation(err) {
			t.Errorf("ParseFileChoice(%q): expected ValidationError, got %v", tt.input, err)
		}
	}
}

func TestParseFileChoice_NoFiles(t *testing.T) {
	if _, _, err := ParseFileChoice("1", nil); !analysis.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseFileChoice_RangeMessage(t *testing.T) {
	_, _, err := ParseFileChoice("9", []string{"a", "b"})
	if err == nil || err.Error() != "Please enter a number between 1 and 2" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseN(t *testing.T) {
	for _, input := range []string{"1", "10", " 100 "} {
		if _, err := ParseN(input, 100); err != nil {
			t.Errorf("ParseN(%q) error: %v", input, err)
		}
	}
	for _, input := range []string{"0", "101", "-3", "ten", "", "1.5"} {
		if _, err := ParseN(input, 100); !analysis.IsValidation(err) {
			t.Errorf("ParseN(%q): expected ValidationError, got %v", input, err)
		}
	}
	if _, err := ParseN("50", 20); !analysis.IsValidation(err) {
		t.Errorf("ParseN above configured max: expected ValidationError, got %v", err)
	}
	if n, err := ParseN("7", 100); err != nil || n != 7 {
		t.Errorf("ParseN(7) = %d, %v", n, err)
	}
}

func TestParseContinue(t *testing.T) {
	tests := map[string]bool{"y": true, "Y": true, "yes": true, " n ": false, "NO": false}
	for input, want := range tests {
		got, err := ParseContinue(input)
		if err != nil {
			t.Errorf("ParseContinue(%q) error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseContinue(%q) = %v, want %v", input, got, want)
		}
	}
	for _, input := range []string{"", "maybe", "1"} {
		if _, err := ParseContinue(input); !analysis.IsValidation(err) {
			t.Errorf("ParseContinue(%q): expected ValidationError, got %v", input, err)
		}
	}
}
