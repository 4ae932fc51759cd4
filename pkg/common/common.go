package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person is a node in the family graph. A person is created Pending when
// first mentioned in another subject's biography and becomes Complete once
// its own biography has been generated and its facts extracted.
type Person struct {
	ID     uuid.UUID    `json:"id"`
	Status PersonStatus `json:"status"`

	GivenName  string `json:"given_name"`
	Surname    string `json:"surname"`
	MaidenName string `json:"maiden_name,omitempty"`
	Nickname   string `json:"nickname,omitempty"`

	Gender     Gender     `json:"gender"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	BirthPlace string     `json:"birth_place,omitempty"`
	DeathDate  *time.Time `json:"death_date,omitempty"`
	DeathPlace string     `json:"death_place,omitempty"`

	Biography string `json:"biography,omitempty"`

	// Generation 0 is the seed cohort, negative values are ancestors,
	// positive values are descendants.
	Generation int `json:"generation"`
}

// FullName returns "Given Surname".
func (p *Person) FullName() string {
	return fmt.Sprintf("%s %s", p.GivenName, p.Surname)
}

// BirthYear returns the birth year if a birth date is known.
func (p *Person) BirthYear() (int, bool) {
	if p.BirthDate == nil {
		return 0, false
	}
	return p.BirthDate.Year(), true
}

// DeathYear returns the death year if a death date is known.
func (p *Person) DeathYear() (int, bool) {
	if p.DeathDate == nil {
		return 0, false
	}
	return p.DeathDate.Year(), true
}

// YearDate converts a bare year into the January 1st date used to store
// approximate year-only dates.
func YearDate(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// ChildLink is a directed parent-to-child edge. A child may carry at most
// two distinct parent links; a third candidate triggers reconciliation.
type ChildLink struct {
	ParentID uuid.UUID `json:"parent_id"`
	ChildID  uuid.UUID `json:"child_id"`
}

// SpouseLink is an undirected edge stored with the lexicographically
// smaller id first so existence checks only query one orientation.
type SpouseLink struct {
	Person1ID uuid.UUID `json:"person1_id"`
	Person2ID uuid.UUID `json:"person2_id"`
}

// NewSpouseLink builds a SpouseLink in canonical order.
func NewSpouseLink(a, b uuid.UUID) SpouseLink {
	if strings.Compare(a.String(), b.String()) > 0 {
		a, b = b, a
	}
	return SpouseLink{Person1ID: a, Person2ID: b}
}

// QueueEntry schedules a person for biography generation. At most one
// entry exists per person; re-enqueuing raises priority but never lowers it.
type QueueEntry struct {
	PersonID uuid.UUID `json:"person_id"`
	Priority int       `json:"priority"`
	AddedAt  time.Time `json:"added_at"`
}

// Event is a persisted life event attached to a person.
type Event struct {
	ID              uuid.UUID   `json:"id"`
	Type            EventType   `json:"event_type"`
	Date            *time.Time  `json:"event_date,omitempty"`
	Year            *int        `json:"event_year,omitempty"`
	Location        string      `json:"location,omitempty"`
	Description     string      `json:"description"`
	PrimaryPersonID uuid.UUID   `json:"primary_person_id"`
	OtherPersonIDs  []uuid.UUID `json:"other_person_ids,omitempty"`
}

// YearOf returns the event year, preferring the exact date when present.
func (e *Event) YearOf() (int, bool) {
	if e.Date != nil {
		return e.Date.Year(), true
	}
	if e.Year != nil {
		return *e.Year, true
	}
	return 0, false
}

// Note is a persisted free-text fact about a person.
type Note struct {
	ID                  uuid.UUID    `json:"id"`
	PersonID            uuid.UUID    `json:"person_id"`
	Category            NoteCategory `json:"category"`
	Content             string       `json:"content"`
	Source              string       `json:"source,omitempty"`
	ReferencedPersonIDs []uuid.UUID  `json:"referenced_person_ids,omitempty"`
}

// PersonSummary carries the relational context of a person, used both for
// biography generation prompts and for duplicate confirmation.
type PersonSummary struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Gender     Gender    `json:"gender"`
	BirthYear  *int      `json:"birth_year,omitempty"`
	DeathYear  *int      `json:"death_year,omitempty"`
	BirthPlace string    `json:"birth_place,omitempty"`
	Generation int       `json:"generation"`

	Relationship RelationshipType `json:"relationship_to_subject,omitempty"`
	KeyFacts     []string         `json:"key_facts,omitempty"`

	Parents  []string `json:"parents,omitempty"`
	Children []string `json:"children,omitempty"`
	Spouses  []string `json:"spouses,omitempty"`
	Siblings []string `json:"siblings,omitempty"`

	Grandparents  []string `json:"grandparents,omitempty"`
	Grandchildren []string `json:"grandchildren,omitempty"`

	BiographySnippets []string `json:"biography_snippets,omitempty"`
}

// Stats is a snapshot of dataset-level counts.
type Stats struct {
	TotalPersons int                  `json:"total_persons"`
	ByStatus     map[PersonStatus]int `json:"by_status"`
	ByGeneration map[int]int          `json:"by_generation"`
	ChildLinks   int                  `json:"child_links"`
	SpouseLinks  int                  `json:"spouse_links"`
	Events       int                  `json:"events"`
	Notes        int                  `json:"notes"`
	QueueDepth   int                  `json:"queue_depth"`
}
