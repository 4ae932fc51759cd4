package common

import "time"

// PersonReference is an ephemeral mention of another person produced by
// fact extraction. It is consumed exactly once by reference resolution and
// never persisted.
type PersonReference struct {
	Name         string           `json:"name"`
	Relationship RelationshipType `json:"relationship"`
	BirthYear    *int             `json:"approximate_birth_year,omitempty"`
	Gender       Gender           `json:"gender"`
	Context      string           `json:"context,omitempty"`
}

// ExtractedEvent is a life event as extracted from a biography, before it
// is assigned an id and attached to a person.
type ExtractedEvent struct {
	Type        EventType  `json:"event_type"`
	Date        *time.Time `json:"event_date,omitempty"`
	Year        *int       `json:"event_year,omitempty"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description"`
}

// YearOf returns the event year, preferring the exact date when present.
func (e *ExtractedEvent) YearOf() (int, bool) {
	if e.Date != nil {
		return e.Date.Year(), true
	}
	if e.Year != nil {
		return *e.Year, true
	}
	return 0, false
}

// ExtractedFacts is the structured output of fact extraction over a
// biography: the subject's identity fields plus every mentioned relative,
// event, and free note.
type ExtractedFacts struct {
	GivenName  string `json:"given_name"`
	Surname    string `json:"surname"`
	MaidenName string `json:"maiden_name,omitempty"`
	Gender     Gender `json:"gender"`

	BirthDate  *time.Time `json:"birth_date,omitempty"`
	BirthYear  *int       `json:"birth_year,omitempty"`
	BirthPlace string     `json:"birth_place,omitempty"`
	DeathDate  *time.Time `json:"death_date,omitempty"`
	DeathYear  *int       `json:"death_year,omitempty"`
	DeathPlace string     `json:"death_place,omitempty"`

	Parents        []PersonReference `json:"parents,omitempty"`
	Children       []PersonReference `json:"children,omitempty"`
	Spouses        []PersonReference `json:"spouses,omitempty"`
	Siblings       []PersonReference `json:"siblings,omitempty"`
	OtherRelatives []PersonReference `json:"other_relatives,omitempty"`

	Events []ExtractedEvent `json:"events,omitempty"`
	Notes  []string         `json:"notes,omitempty"`
}

// SubjectBirthYear returns the subject's birth year, preferring the exact
// date over the bare year field.
func (f *ExtractedFacts) SubjectBirthYear() (int, bool) {
	if f.BirthDate != nil {
		return f.BirthDate.Year(), true
	}
	if f.BirthYear != nil {
		return *f.BirthYear, true
	}
	return 0, false
}

// SubjectDeathYear returns the subject's death year, preferring the exact
// date over the bare year field.
func (f *ExtractedFacts) SubjectDeathYear() (int, bool) {
	if f.DeathDate != nil {
		return f.DeathDate.Year(), true
	}
	if f.DeathYear != nil {
		return *f.DeathYear, true
	}
	return 0, false
}

// ValidationResult collects the outcome of plausibility checks over
// extracted facts. Errors block persistence until corrected; warnings are
// informational only.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *ValidationResult) AddError(msg string) {
	v.Errors = append(v.Errors, msg)
}

func (v *ValidationResult) AddWarning(msg string) {
	v.Warnings = append(v.Warnings, msg)
}

// IsValid reports whether no errors were recorded.
func (v *ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}
