// Package export renders the family graph into interchange formats:
// a JSON dump of the full graph, CSV tables, and GEDCOM 5.5.1.
package export

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/google/uuid"
)

// Snapshot is a complete point-in-time copy of the graph.
type Snapshot struct {
	ExportedAt  time.Time           `json:"exported_at"`
	Persons     []common.Person     `json:"persons"`
	ChildLinks  []common.ChildLink  `json:"child_links"`
	SpouseLinks []common.SpouseLink `json:"spouse_links"`
	Events      []common.Event      `json:"events,omitempty"`
	Notes       []common.Note       `json:"notes,omitempty"`
}

// Collect reads the whole graph from the store. Persons are ordered by
// generation, then name, so repeated exports of the same data are
// byte-identical apart from the timestamp.
func Collect(ctx context.Context, st store.FamilyStore) (*Snapshot, error) {
	persons, err := st.ListPersons(ctx, store.PersonFilter{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(persons, func(i, j int) bool {
		if persons[i].Generation != persons[j].Generation {
			return persons[i].Generation < persons[j].Generation
		}
		if persons[i].Surname != persons[j].Surname {
			return persons[i].Surname < persons[j].Surname
		}
		if persons[i].GivenName != persons[j].GivenName {
			return persons[i].GivenName < persons[j].GivenName
		}
		return persons[i].ID.String() < persons[j].ID.String()
	})

	childLinks, err := st.ListChildLinks(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(childLinks, func(i, j int) bool {
		if childLinks[i].ParentID != childLinks[j].ParentID {
			return childLinks[i].ParentID.String() < childLinks[j].ParentID.String()
		}
		return childLinks[i].ChildID.String() < childLinks[j].ChildID.String()
	})

	spouseLinks, err := st.ListSpouseLinks(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(spouseLinks, func(i, j int) bool {
		if spouseLinks[i].Person1ID != spouseLinks[j].Person1ID {
			return spouseLinks[i].Person1ID.String() < spouseLinks[j].Person1ID.String()
		}
		return spouseLinks[i].Person2ID.String() < spouseLinks[j].Person2ID.String()
	})

	snap := &Snapshot{
		ExportedAt:  time.Now().UTC(),
		Persons:     persons,
		ChildLinks:  childLinks,
		SpouseLinks: spouseLinks,
	}

	seenEvents := map[uuid.UUID]bool{}
	for _, p := range persons {
		events, err := st.GetEvents(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			if seenEvents[ev.ID] {
				continue
			}
			seenEvents[ev.ID] = true
			snap.Events = append(snap.Events, ev)
		}

		notes, err := st.GetNotes(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		snap.Notes = append(snap.Notes, notes...)
	}

	return snap, nil
}

// WriteJSON writes the snapshot as indented JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
