package common

// PersonStatus tracks the processing lifecycle of a person. Transitions are
// monotonic except that a merge may delete a record outright.
type PersonStatus string

const (
	StatusPending    PersonStatus = "pending"
	StatusQueued     PersonStatus = "queued"
	StatusProcessing PersonStatus = "processing"
	StatusComplete   PersonStatus = "complete"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// ParseGender maps arbitrary input to a known gender, defaulting to unknown.
func ParseGender(s string) Gender {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s)
	default:
		return GenderUnknown
	}
}

// EventType classifies a life event.
type EventType string

const (
	EventBirth           EventType = "birth"
	EventDeath           EventType = "death"
	EventMarriage        EventType = "marriage"
	EventDivorce         EventType = "divorce"
	EventBaptism         EventType = "baptism"
	EventGraduation      EventType = "graduation"
	EventImmigration     EventType = "immigration"
	EventEmigration      EventType = "emigration"
	EventMilitaryService EventType = "military_service"
	EventOccupation      EventType = "occupation"
	EventResidence       EventType = "residence"
	EventRetirement      EventType = "retirement"
	EventOther           EventType = "other"
)

// NoteCategory classifies a note about a person.
type NoteCategory string

const (
	NoteBiography         NoteCategory = "biography"
	NoteHealth            NoteCategory = "health"
	NoteEducation         NoteCategory = "education"
	NoteCareer            NoteCategory = "career"
	NotePersonality       NoteCategory = "personality"
	NoteAchievement       NoteCategory = "achievement"
	NoteAnecdote          NoteCategory = "anecdote"
	NoteHistoricalContext NoteCategory = "historical_context"
	NoteCrossBiography    NoteCategory = "cross_biography"
	NoteOther             NoteCategory = "other"
)
