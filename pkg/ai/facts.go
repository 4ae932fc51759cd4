package ai

import (
	"time"

	"github.com/aerugo/ancestral-vision/pkg/common"
)

// Wire payloads for structured oracle output. Dates travel as ISO strings
// and unknown years as 0; conversion to domain types happens here so the
// engine never sees the wire shapes.

type referencePayload struct {
	Name                 string `json:"name" jsonschema_description:"Full name of the referenced person."`
	Relationship         string `json:"relationship" jsonschema_description:"Relationship to the subject: parent, child, spouse, sibling, grandparent, grandchild, uncle, aunt, cousin, niece, nephew, or other."`
	ApproximateBirthYear int    `json:"approximate_birth_year" jsonschema_description:"Approximate birth year if mentioned or inferable, 0 if unknown."`
	Gender               string `json:"gender" jsonschema_description:"Gender if known: male, female, or unknown."`
	Context              string `json:"context" jsonschema_description:"Brief context about this person from the biography."`
}

type eventPayload struct {
	EventType   string `json:"event_type" jsonschema_description:"Type of event: birth, death, marriage, divorce, baptism, graduation, immigration, emigration, military_service, occupation, residence, retirement, or other."`
	EventDate   string `json:"event_date" jsonschema_description:"Date of the event as YYYY-MM-DD, empty if only the year is known."`
	EventYear   int    `json:"event_year" jsonschema_description:"Year of the event if the exact date is unknown, 0 otherwise."`
	Location    string `json:"location" jsonschema_description:"Location of the event, empty if unknown."`
	Description string `json:"description" jsonschema_description:"Description of the event."`
}

type factsPayload struct {
	GivenName  string `json:"given_name" jsonschema_description:"First/given name of the subject."`
	Surname    string `json:"surname" jsonschema_description:"Family/last name of the subject."`
	MaidenName string `json:"maiden_name" jsonschema_description:"Maiden name if applicable, empty otherwise."`
	Gender     string `json:"gender" jsonschema_description:"Gender of the subject: male, female, or unknown."`

	BirthDate  string `json:"birth_date" jsonschema_description:"Date of birth as YYYY-MM-DD, empty if only the year is known."`
	BirthYear  int    `json:"birth_year" jsonschema_description:"Birth year if the exact date is unknown, 0 otherwise."`
	BirthPlace string `json:"birth_place" jsonschema_description:"Place of birth, empty if unknown."`
	DeathDate  string `json:"death_date" jsonschema_description:"Date of death as YYYY-MM-DD, empty if alive or only the year is known."`
	DeathYear  int    `json:"death_year" jsonschema_description:"Death year if the exact date is unknown, 0 otherwise."`
	DeathPlace string `json:"death_place" jsonschema_description:"Place of death, empty if unknown."`

	Parents        []referencePayload `json:"parents" jsonschema_description:"Parents mentioned in the biography."`
	Children       []referencePayload `json:"children" jsonschema_description:"Children mentioned in the biography."`
	Spouses        []referencePayload `json:"spouses" jsonschema_description:"Spouses mentioned in the biography."`
	Siblings       []referencePayload `json:"siblings" jsonschema_description:"Siblings mentioned in the biography."`
	OtherRelatives []referencePayload `json:"other_relatives" jsonschema_description:"Other relatives such as grandparents, aunts, uncles, cousins."`

	Events []eventPayload `json:"events" jsonschema_description:"Life events extracted from the biography."`
	Notes  []string       `json:"notes" jsonschema_description:"Additional interesting facts or notes."`
}

func parseWireDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func wireYear(year int) *int {
	if year == 0 {
		return nil
	}
	return &year
}

func (p referencePayload) toReference() common.PersonReference {
	return common.PersonReference{
		Name:         p.Name,
		Relationship: common.ParseRelationship(p.Relationship),
		BirthYear:    wireYear(p.ApproximateBirthYear),
		Gender:       common.ParseGender(p.Gender),
		Context:      p.Context,
	}
}

func toReferences(payloads []referencePayload) []common.PersonReference {
	if len(payloads) == 0 {
		return nil
	}
	refs := make([]common.PersonReference, 0, len(payloads))
	for _, p := range payloads {
		refs = append(refs, p.toReference())
	}
	return refs
}

func parseEventType(s string) common.EventType {
	switch t := common.EventType(s); t {
	case common.EventBirth, common.EventDeath, common.EventMarriage,
		common.EventDivorce, common.EventBaptism, common.EventGraduation,
		common.EventImmigration, common.EventEmigration,
		common.EventMilitaryService, common.EventOccupation,
		common.EventResidence, common.EventRetirement:
		return t
	default:
		return common.EventOther
	}
}

func (p factsPayload) toFacts() *common.ExtractedFacts {
	facts := &common.ExtractedFacts{
		GivenName:  p.GivenName,
		Surname:    p.Surname,
		MaidenName: p.MaidenName,
		Gender:     common.ParseGender(p.Gender),

		BirthDate:  parseWireDate(p.BirthDate),
		BirthYear:  wireYear(p.BirthYear),
		BirthPlace: p.BirthPlace,
		DeathDate:  parseWireDate(p.DeathDate),
		DeathYear:  wireYear(p.DeathYear),
		DeathPlace: p.DeathPlace,

		Parents:        toReferences(p.Parents),
		Children:       toReferences(p.Children),
		Spouses:        toReferences(p.Spouses),
		Siblings:       toReferences(p.Siblings),
		OtherRelatives: toReferences(p.OtherRelatives),

		Notes: p.Notes,
	}
	for _, e := range p.Events {
		facts.Events = append(facts.Events, common.ExtractedEvent{
			Type:        parseEventType(e.EventType),
			Date:        parseWireDate(e.EventDate),
			Year:        wireYear(e.EventYear),
			Location:    e.Location,
			Description: e.Description,
		})
	}
	return facts
}
