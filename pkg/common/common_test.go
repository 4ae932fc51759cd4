package common

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRelationshipInverse(t *testing.T) {
	tests := []struct {
		rel  RelationshipType
		want RelationshipType
	}{
		{RelParent, RelChild},
		{RelChild, RelParent},
		{RelSpouse, RelSpouse},
		{RelSibling, RelSibling},
		{RelGrandparent, RelGrandchild},
		{RelGrandchild, RelGrandparent},
		{RelUncle, RelNephew},
		{RelAunt, RelNiece},
		{RelNiece, RelAunt},
		{RelNephew, RelUncle},
		{RelCousin, RelCousin},
		{RelOther, RelOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.rel), func(t *testing.T) {
			if got := tt.rel.Inverse(); got != tt.want {
				t.Fatalf("inverse of %s: got %s, want %s", tt.rel, got, tt.want)
			}
		})
	}
}

func TestParseRelationship(t *testing.T) {
	if got := ParseRelationship("grandparent"); got != RelGrandparent {
		t.Fatalf("got %s, want grandparent", got)
	}
	if got := ParseRelationship("step-uncle twice removed"); got != RelOther {
		t.Fatalf("got %s, want other", got)
	}
	if got := ParseRelationship(""); got != RelOther {
		t.Fatalf("got %s, want other for empty input", got)
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		input string
		want  Gender
	}{
		{"male", GenderMale},
		{"female", GenderFemale},
		{"unknown", GenderUnknown},
		{"nonsense", GenderUnknown},
		{"", GenderUnknown},
	}

	for _, tt := range tests {
		if got := ParseGender(tt.input); got != tt.want {
			t.Fatalf("ParseGender(%q): got %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestNewSpouseLinkCanonicalOrder(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("ffffffff-0000-0000-0000-000000000002")

	forward := NewSpouseLink(a, b)
	backward := NewSpouseLink(b, a)

	if forward != backward {
		t.Fatalf("link order depends on argument order: %+v vs %+v", forward, backward)
	}
	if forward.Person1ID != a || forward.Person2ID != b {
		t.Fatalf("unexpected canonical order: %+v", forward)
	}
}

func TestPersonFullNameAndYears(t *testing.T) {
	birth := YearDate(1872)
	p := Person{GivenName: "Clara", Surname: "Hale", BirthDate: &birth}

	if got := p.FullName(); got != "Clara Hale" {
		t.Fatalf("full name: got %q", got)
	}
	if y, ok := p.BirthYear(); !ok || y != 1872 {
		t.Fatalf("birth year: got %d, %v", y, ok)
	}
	if _, ok := p.DeathYear(); ok {
		t.Fatal("expected no death year")
	}
}

func TestYearDate(t *testing.T) {
	d := YearDate(1900)
	want := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Fatalf("got %v, want %v", d, want)
	}
}

func TestEventYearOfPrefersDate(t *testing.T) {
	date := time.Date(1922, time.June, 14, 0, 0, 0, 0, time.UTC)
	year := 1925
	e := Event{Date: &date, Year: &year}

	if y, ok := e.YearOf(); !ok || y != 1922 {
		t.Fatalf("got %d, %v, want 1922 from the exact date", y, ok)
	}

	e.Date = nil
	if y, ok := e.YearOf(); !ok || y != 1925 {
		t.Fatalf("got %d, %v, want 1925 from the bare year", y, ok)
	}

	e.Year = nil
	if _, ok := e.YearOf(); ok {
		t.Fatal("expected no year when neither field is set")
	}
}
