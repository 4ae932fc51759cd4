package store

import (
	"context"
	"errors"

	"github.com/aerugo/ancestral-vision/pkg/common"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// PersonFilter narrows ListPersons results. Nil fields are ignored.
type PersonFilter struct {
	Status     *common.PersonStatus
	Generation *int
	Limit      int
	Offset     int
}

// FamilyStore defines the interface for persisting and querying the family
// graph. It provides CRUD on persons, name/birth-year similarity search for
// the resolver, link queries and mutations, the processing queue, and
// attached events and notes.
//
// Multi-step mutations that must be atomic (a merge, a dequeue-then-mark
// transition) run inside WithTx.
type FamilyStore interface {
	CreatePerson(ctx context.Context, p *common.Person) error
	GetPerson(ctx context.Context, id uuid.UUID) (*common.Person, error)
	UpdatePerson(ctx context.Context, p *common.Person) error
	DeletePerson(ctx context.Context, id uuid.UUID) error
	ListPersons(ctx context.Context, filter PersonFilter) ([]common.Person, error)

	// SearchSimilar finds candidates whose given name matches and whose
	// surname or maiden name appears in surnames, within the birth-year
	// window. Candidates without a known birth year are always included.
	SearchSimilar(ctx context.Context, givenName string, surnames []string, birthYear *int, window int) ([]common.Person, error)
	// SearchByGivenName is the broader fallback search on given name alone,
	// used to catch people recorded under a spouse's surname.
	SearchByGivenName(ctx context.Context, givenName string, birthYear *int, window int) ([]common.Person, error)

	// AddChildLink is idempotent; linking an already linked pair is a no-op.
	AddChildLink(ctx context.Context, parentID, childID uuid.UUID) error
	DeleteChildLink(ctx context.Context, parentID, childID uuid.UUID) error
	GetParents(ctx context.Context, childID uuid.UUID) ([]common.Person, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]common.Person, error)
	ListChildLinks(ctx context.Context) ([]common.ChildLink, error)

	// AddSpouseLink stores the edge in canonical order and is idempotent.
	AddSpouseLink(ctx context.Context, a, b uuid.UUID) error
	DeleteSpouseLink(ctx context.Context, a, b uuid.UUID) error
	GetSpouses(ctx context.Context, personID uuid.UUID) ([]common.Person, error)
	ListSpouseLinks(ctx context.Context) ([]common.SpouseLink, error)

	// Enqueue keeps at most one entry per person. Re-enqueuing raises the
	// priority but never lowers it.
	Enqueue(ctx context.Context, personID uuid.UUID, priority int) error
	// Dequeue removes and returns the highest-priority entry, ties broken
	// by earliest enqueue time. Returns nil when the queue is empty.
	Dequeue(ctx context.Context) (*common.QueueEntry, error)
	QueueDepth(ctx context.Context) (int, error)

	AddEvent(ctx context.Context, e *common.Event) error
	GetEvents(ctx context.Context, personID uuid.UUID) ([]common.Event, error)
	AddNote(ctx context.Context, n *common.Note) error
	GetNotes(ctx context.Context, personID uuid.UUID) ([]common.Note, error)

	SetBiographyEmbedding(ctx context.Context, personID uuid.UUID, embedding []float32) error
	// SearchByEmbedding returns complete persons ordered by biography
	// similarity. Stores without vector support return ErrNotFound.
	SearchByEmbedding(ctx context.Context, embedding []float32, limit int) ([]common.Person, error)

	Stats(ctx context.Context) (*common.Stats, error)

	WithTx(ctx context.Context, fn func(tx FamilyStore) error) error
}
