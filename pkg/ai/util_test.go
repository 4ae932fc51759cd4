package ai

import (
	"testing"
)

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	type subject struct {
		GivenName string `json:"given_name"`
		BirthYear int    `json:"birth_year,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  subject
	}{
		{
			name:  "valid json object",
			input: `{"given_name":"Clara"}`,
			want:  subject{GivenName: "Clara"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{given_name: 'Clara'}`,
			want:  subject{GivenName: "Clara"},
		},
		{
			name:  "trailing comma",
			input: `{"given_name":"Clara",}`,
			want:  subject{GivenName: "Clara"},
		},
		{
			name:  "missing endbracket",
			input: `{"given_name":"Clara`,
			want:  subject{GivenName: "Clara"},
		},
		{
			name:  "stringified invalid json object",
			input: `"{given_name: 'Clara'}"`,
			want:  subject{GivenName: "Clara"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"given_name\": \"Clara\"\n}\n",
			want:  subject{GivenName: "Clara"},
		},
		{
			name:  "duplicate leading brace no newlines",
			input: `{ { "given_name": "Clara" }`,
			want:  subject{GivenName: "Clara"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got subject
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.GivenName != tc.want.GivenName || got.BirthYear != tc.want.BirthYear {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_ArrayVariants(t *testing.T) {
	type reference struct {
		Name string `json:"name"`
	}

	input := `[{name:'Rose Hale'},{name:'Thomas Hale',}]`
	var got []reference
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "Rose Hale" || got[1].Name != "Thomas Hale" {
		t.Fatalf("UnmarshalFlexible() got = %+v, want the two siblings", got)
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type subject struct {
		GivenName string `json:"given_name"`
	}

	var got subject
	if err := UnmarshalFlexible("I could not produce JSON for this biography.", &got); err == nil {
		t.Fatalf("UnmarshalFlexible() expected error for unrecoverable input")
	}
}

func TestUnmarshalFlexible_StringifiedExtraction(t *testing.T) {
	type extraction struct {
		GivenName string   `json:"given_name"`
		Surname   string   `json:"surname"`
		Notes     []string `json:"notes"`
	}

	tests := []struct {
		name  string
		input string
		want  extraction
	}{
		{
			name:  "stringified facts",
			input: `"{ \"given_name\": \"Clara\", \"surname\": \"Hale\", \"notes\": [ \"Kept bees\", \"Never left Millbrook\" ] }"`,
			want:  extraction{GivenName: "Clara", Surname: "Hale", Notes: []string{"Kept bees", "Never left Millbrook"}},
		},
		{
			name:  "stringified facts with newlines",
			input: `"{\n  \"given_name\": \"Clara\",\n  \"surname\": \"Hale\",\n  \"notes\": [\"Kept bees\", \"Ran the orchard (with her sister, Rose)\"]\n  }\n"`,
			want:  extraction{GivenName: "Clara", Surname: "Hale", Notes: []string{"Kept bees", "Ran the orchard (with her sister, Rose)"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got extraction
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.GivenName != tc.want.GivenName || got.Surname != tc.want.Surname {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
			if len(got.Notes) != len(tc.want.Notes) {
				t.Fatalf("UnmarshalFlexible() notes length got = %d, want %d", len(got.Notes), len(tc.want.Notes))
			}
			for i := range got.Notes {
				if got.Notes[i] != tc.want.Notes[i] {
					t.Fatalf("UnmarshalFlexible() notes[%d] = %q, want %q", i, got.Notes[i], tc.want.Notes[i])
				}
			}
		})
	}
}
