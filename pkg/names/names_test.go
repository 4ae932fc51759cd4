package names

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ParsedName
	}{
		{
			name:  "given and surname",
			input: "John Smith",
			want:  ParsedName{GivenName: "John", Surname: "Smith"},
		},
		{
			name:  "middle name",
			input: "John William Smith",
			want:  ParsedName{GivenName: "John", MiddleNames: []string{"William"}, Surname: "Smith"},
		},
		{
			name:  "two middle names",
			input: "Eleanor Mae Beaumont Harding",
			want:  ParsedName{GivenName: "Eleanor", MiddleNames: []string{"Mae", "Beaumont"}, Surname: "Harding"},
		},
		{
			name:  "nee marker",
			input: "Mary Smith (née Jones)",
			want:  ParsedName{GivenName: "Mary", Surname: "Smith", MaidenName: "Jones"},
		},
		{
			name:  "born marker",
			input: "Mary Smith (born Jones)",
			want:  ParsedName{GivenName: "Mary", Surname: "Smith", MaidenName: "Jones"},
		},
		{
			name:  "maiden name marker",
			input: "Mary Smith (maiden name: Jones)",
			want:  ParsedName{GivenName: "Mary", Surname: "Smith", MaidenName: "Jones"},
		},
		{
			name:  "bare nee",
			input: "Mary Smith née Jones",
			want:  ParsedName{GivenName: "Mary", Surname: "Smith", MaidenName: "Jones"},
		},
		{
			name:  "junior suffix",
			input: "John Smith Jr.",
			want:  ParsedName{GivenName: "John", Surname: "Smith", Suffixes: []string{"Jr"}},
		},
		{
			name:  "numeral suffix",
			input: "Henry Ford III",
			want:  ParsedName{GivenName: "Henry", Surname: "Ford", Suffixes: []string{"III"}},
		},
		{
			name:  "single token",
			input: "Madonna",
			want:  ParsedName{GivenName: "Madonna", Surname: "Unknown"},
		},
		{
			name:  "empty",
			input: "",
			want:  ParsedName{GivenName: "Unknown", Surname: "Unknown"},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  ParsedName{GivenName: "Unknown", Surname: "Unknown"},
		},
		{
			name:  "extra whitespace",
			input: "  John   Smith  ",
			want:  ParsedName{GivenName: "John", Surname: "Smith"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name          string
		newName       string
		newYear       *int
		candidateName string
		candidateYear *int
		want          float64
	}{
		{
			name:    "identical name and year",
			newName: "John Smith", newYear: intPtr(1950),
			candidateName: "John Smith", candidateYear: intPtr(1950),
			want: 1.0,
		},
		{
			name:    "year only",
			newName: "John Smith", newYear: intPtr(1950),
			candidateName: "Mary Johnson", candidateYear: intPtr(1950),
			want: 0.5,
		},
		{
			name:    "name only, year gap too wide",
			newName: "John Smith", newYear: intPtr(1950),
			candidateName: "John Smith", candidateYear: intPtr(1980),
			want: 0.5,
		},
		{
			name:    "within two years",
			newName: "John Smith", newYear: intPtr(1950),
			candidateName: "John Smith", candidateYear: intPtr(1952),
			want: 0.95,
		},
		{
			name:    "within five years",
			newName: "John Smith", newYear: intPtr(1950),
			candidateName: "John Smith", candidateYear: intPtr(1955),
			want: 0.8,
		},
		{
			name:    "suffix mismatch is fatal",
			newName: "John Smith Jr.", newYear: intPtr(1950),
			candidateName: "John Smith Sr.", candidateYear: intPtr(1950),
			want: 0.0,
		},
		{
			name:    "maiden name bridges surnames",
			newName: "Mary Jones", newYear: intPtr(1920),
			candidateName: "Mary Smith (née Jones)", candidateYear: intPtr(1920),
			want: 1.0,
		},
		{
			name:    "surname as candidate middle token",
			newName: "Mary Jones", newYear: nil,
			candidateName: "Mary Jones Smith", candidateYear: nil,
			want: 0.45,
		},
		{
			name:    "given names differ",
			newName: "John Smith", newYear: nil,
			candidateName: "James Smith", candidateYear: nil,
			want: 0.0,
		},
		{
			name:    "middle name bonus",
			newName: "John William Smith", newYear: nil,
			candidateName: "John William Smith", candidateYear: nil,
			want: 0.6,
		},
		{
			name:    "no years available",
			newName: "John Smith", newYear: nil,
			candidateName: "John Smith", candidateYear: intPtr(1950),
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchScore(tt.newName, tt.newYear, tt.candidateName, tt.candidateYear)
			if got != tt.want {
				t.Errorf("MatchScore(%q, %q) = %v, want %v", tt.newName, tt.candidateName, got, tt.want)
			}
			if got < 0.0 || got > 1.0 {
				t.Errorf("score out of range: %v", got)
			}
		})
	}
}

func TestExtractMentions(t *testing.T) {
	biography := "Eleanor grew up in Vermont. Her brother often wrote about Eleanor in his letters."

	snippets := ExtractMentions("Eleanor", biography, 10)
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets, got %d", len(snippets))
	}
	if snippets[0] != "Eleanor grew up i" {
		t.Errorf("unexpected first snippet: %q", snippets[0])
	}

	if got := ExtractMentions("", biography, 10); got != nil {
		t.Errorf("expected nil for empty name, got %v", got)
	}
	if got := ExtractMentions("Eleanor", "", 10); got != nil {
		t.Errorf("expected nil for empty biography, got %v", got)
	}
	if got := ExtractMentions("Elle", "Elle waved at Elles and Eleanor", 5); len(got) != 1 {
		t.Errorf("expected whole-word matching, got %v", got)
	}
}
