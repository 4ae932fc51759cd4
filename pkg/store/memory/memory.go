// Package memory provides an in-memory FamilyStore used by tests and
// small local runs. All data is lost when the process exits.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/google/uuid"
)

type queueEntry struct {
	common.QueueEntry
	seq int64
}

// FamilyMemStore implements store.FamilyStore with plain maps guarded by
// a mutex. WithTx snapshots the maps and restores them when the callback
// fails, so merge atomicity behaves like the database-backed store.
type FamilyMemStore struct {
	mu sync.Mutex

	persons     map[uuid.UUID]common.Person
	childLinks  map[common.ChildLink]bool
	spouseLinks map[common.SpouseLink]bool
	queue       map[uuid.UUID]queueEntry
	events      []common.Event
	notes       []common.Note
	embeddings  map[uuid.UUID][]float32

	seq  int64
	inTx bool
}

// NewFamilyMemStore creates an empty in-memory store.
func NewFamilyMemStore() *FamilyMemStore {
	return &FamilyMemStore{
		persons:     map[uuid.UUID]common.Person{},
		childLinks:  map[common.ChildLink]bool{},
		spouseLinks: map[common.SpouseLink]bool{},
		queue:       map[uuid.UUID]queueEntry{},
		embeddings:  map[uuid.UUID][]float32{},
	}
}

func (s *FamilyMemStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *FamilyMemStore) CreatePerson(_ context.Context, p *common.Person) error {
	defer s.lock()()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.persons[p.ID] = *p
	return nil
}

func (s *FamilyMemStore) GetPerson(_ context.Context, id uuid.UUID) (*common.Person, error) {
	defer s.lock()()
	p, ok := s.persons[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *FamilyMemStore) UpdatePerson(_ context.Context, p *common.Person) error {
	defer s.lock()()
	if _, ok := s.persons[p.ID]; !ok {
		return store.ErrNotFound
	}
	s.persons[p.ID] = *p
	return nil
}

func (s *FamilyMemStore) DeletePerson(_ context.Context, id uuid.UUID) error {
	defer s.lock()()
	if _, ok := s.persons[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.persons, id)
	for l := range s.childLinks {
		if l.ParentID == id || l.ChildID == id {
			delete(s.childLinks, l)
		}
	}
	for l := range s.spouseLinks {
		if l.Person1ID == id || l.Person2ID == id {
			delete(s.spouseLinks, l)
		}
	}
	delete(s.queue, id)
	delete(s.embeddings, id)
	return nil
}

func (s *FamilyMemStore) ListPersons(_ context.Context, filter store.PersonFilter) ([]common.Person, error) {
	defer s.lock()()
	out := make([]common.Person, 0, len(s.persons))
	for _, p := range s.persons {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Generation != nil && p.Generation != *filter.Generation {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func withinWindow(candidate common.Person, birthYear *int, window int) bool {
	if birthYear == nil {
		return true
	}
	y, ok := candidate.BirthYear()
	if !ok {
		return true
	}
	diff := y - *birthYear
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}

func (s *FamilyMemStore) SearchSimilar(_ context.Context, givenName string, surnames []string, birthYear *int, window int) ([]common.Person, error) {
	defer s.lock()()
	surnameSet := map[string]bool{}
	for _, sn := range surnames {
		if sn = strings.ToLower(strings.TrimSpace(sn)); sn != "" {
			surnameSet[sn] = true
		}
	}
	var out []common.Person
	for _, p := range s.persons {
		if !strings.EqualFold(p.GivenName, givenName) {
			continue
		}
		if !surnameSet[strings.ToLower(p.Surname)] && !surnameSet[strings.ToLower(p.MaidenName)] {
			continue
		}
		if withinWindow(p, birthYear, window) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *FamilyMemStore) SearchByGivenName(_ context.Context, givenName string, birthYear *int, window int) ([]common.Person, error) {
	defer s.lock()()
	var out []common.Person
	for _, p := range s.persons {
		if strings.EqualFold(p.GivenName, givenName) && withinWindow(p, birthYear, window) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *FamilyMemStore) AddChildLink(_ context.Context, parentID, childID uuid.UUID) error {
	defer s.lock()()
	s.childLinks[common.ChildLink{ParentID: parentID, ChildID: childID}] = true
	return nil
}

func (s *FamilyMemStore) DeleteChildLink(_ context.Context, parentID, childID uuid.UUID) error {
	defer s.lock()()
	delete(s.childLinks, common.ChildLink{ParentID: parentID, ChildID: childID})
	return nil
}

func (s *FamilyMemStore) GetParents(_ context.Context, childID uuid.UUID) ([]common.Person, error) {
	defer s.lock()()
	var out []common.Person
	for l := range s.childLinks {
		if l.ChildID == childID {
			if p, ok := s.persons[l.ParentID]; ok {
				out = append(out, p)
			}
		}
	}
	sortPersons(out)
	return out, nil
}

func (s *FamilyMemStore) GetChildren(_ context.Context, parentID uuid.UUID) ([]common.Person, error) {
	defer s.lock()()
	var out []common.Person
	for l := range s.childLinks {
		if l.ParentID == parentID {
			if p, ok := s.persons[l.ChildID]; ok {
				out = append(out, p)
			}
		}
	}
	sortPersons(out)
	return out, nil
}

func (s *FamilyMemStore) ListChildLinks(_ context.Context) ([]common.ChildLink, error) {
	defer s.lock()()
	out := make([]common.ChildLink, 0, len(s.childLinks))
	for l := range s.childLinks {
		out = append(out, l)
	}
	return out, nil
}

func (s *FamilyMemStore) AddSpouseLink(_ context.Context, a, b uuid.UUID) error {
	defer s.lock()()
	s.spouseLinks[common.NewSpouseLink(a, b)] = true
	return nil
}

func (s *FamilyMemStore) DeleteSpouseLink(_ context.Context, a, b uuid.UUID) error {
	defer s.lock()()
	delete(s.spouseLinks, common.NewSpouseLink(a, b))
	return nil
}

func (s *FamilyMemStore) GetSpouses(_ context.Context, personID uuid.UUID) ([]common.Person, error) {
	defer s.lock()()
	var out []common.Person
	for l := range s.spouseLinks {
		var other uuid.UUID
		switch personID {
		case l.Person1ID:
			other = l.Person2ID
		case l.Person2ID:
			other = l.Person1ID
		default:
			continue
		}
		if p, ok := s.persons[other]; ok {
			out = append(out, p)
		}
	}
	sortPersons(out)
	return out, nil
}

func (s *FamilyMemStore) ListSpouseLinks(_ context.Context) ([]common.SpouseLink, error) {
	defer s.lock()()
	out := make([]common.SpouseLink, 0, len(s.spouseLinks))
	for l := range s.spouseLinks {
		out = append(out, l)
	}
	return out, nil
}

func (s *FamilyMemStore) Enqueue(_ context.Context, personID uuid.UUID, priority int) error {
	defer s.lock()()
	if existing, ok := s.queue[personID]; ok {
		if priority > existing.Priority {
			existing.Priority = priority
			s.queue[personID] = existing
		}
		return nil
	}
	s.seq++
	s.queue[personID] = queueEntry{
		QueueEntry: common.QueueEntry{PersonID: personID, Priority: priority},
		seq:        s.seq,
	}
	return nil
}

func (s *FamilyMemStore) Dequeue(_ context.Context) (*common.QueueEntry, error) {
	defer s.lock()()
	var best *queueEntry
	for _, e := range s.queue {
		e := e
		if best == nil || e.Priority > best.Priority ||
			(e.Priority == best.Priority && e.seq < best.seq) {
			best = &e
		}
	}
	if best == nil {
		return nil, nil
	}
	delete(s.queue, best.PersonID)
	entry := best.QueueEntry
	return &entry, nil
}

func (s *FamilyMemStore) QueueDepth(_ context.Context) (int, error) {
	defer s.lock()()
	return len(s.queue), nil
}

func (s *FamilyMemStore) AddEvent(_ context.Context, e *common.Event) error {
	defer s.lock()()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.events = append(s.events, *e)
	return nil
}

func (s *FamilyMemStore) GetEvents(_ context.Context, personID uuid.UUID) ([]common.Event, error) {
	defer s.lock()()
	var out []common.Event
	for _, e := range s.events {
		if e.PrimaryPersonID == personID {
			out = append(out, e)
			continue
		}
		for _, other := range e.OtherPersonIDs {
			if other == personID {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (s *FamilyMemStore) AddNote(_ context.Context, n *common.Note) error {
	defer s.lock()()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	s.notes = append(s.notes, *n)
	return nil
}

func (s *FamilyMemStore) GetNotes(_ context.Context, personID uuid.UUID) ([]common.Note, error) {
	defer s.lock()()
	var out []common.Note
	for _, n := range s.notes {
		if n.PersonID == personID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *FamilyMemStore) SetBiographyEmbedding(_ context.Context, personID uuid.UUID, embedding []float32) error {
	defer s.lock()()
	if _, ok := s.persons[personID]; !ok {
		return store.ErrNotFound
	}
	s.embeddings[personID] = embedding
	return nil
}

// SearchByEmbedding is not supported by the in-memory store.
func (s *FamilyMemStore) SearchByEmbedding(_ context.Context, _ []float32, _ int) ([]common.Person, error) {
	return nil, store.ErrNotFound
}

func (s *FamilyMemStore) Stats(_ context.Context) (*common.Stats, error) {
	defer s.lock()()
	stats := &common.Stats{
		TotalPersons: len(s.persons),
		ByStatus:     map[common.PersonStatus]int{},
		ByGeneration: map[int]int{},
		ChildLinks:   len(s.childLinks),
		SpouseLinks:  len(s.spouseLinks),
		Events:       len(s.events),
		Notes:        len(s.notes),
		QueueDepth:   len(s.queue),
	}
	for _, p := range s.persons {
		stats.ByStatus[p.Status]++
		stats.ByGeneration[p.Generation]++
	}
	return stats, nil
}

// WithTx runs fn against the store while holding the lock. The maps are
// snapshotted first and restored when fn returns an error.
func (s *FamilyMemStore) WithTx(_ context.Context, fn func(tx store.FamilyStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.copyState()
	s.inTx = true
	err := fn(s)
	s.inTx = false
	if err != nil {
		s.restoreState(snapshot)
		return err
	}
	return nil
}

type memState struct {
	persons     map[uuid.UUID]common.Person
	childLinks  map[common.ChildLink]bool
	spouseLinks map[common.SpouseLink]bool
	queue       map[uuid.UUID]queueEntry
	events      []common.Event
	notes       []common.Note
	embeddings  map[uuid.UUID][]float32
}

func (s *FamilyMemStore) copyState() memState {
	st := memState{
		persons:     make(map[uuid.UUID]common.Person, len(s.persons)),
		childLinks:  make(map[common.ChildLink]bool, len(s.childLinks)),
		spouseLinks: make(map[common.SpouseLink]bool, len(s.spouseLinks)),
		queue:       make(map[uuid.UUID]queueEntry, len(s.queue)),
		events:      append([]common.Event(nil), s.events...),
		notes:       append([]common.Note(nil), s.notes...),
		embeddings:  make(map[uuid.UUID][]float32, len(s.embeddings)),
	}
	for k, v := range s.persons {
		st.persons[k] = v
	}
	for k, v := range s.childLinks {
		st.childLinks[k] = v
	}
	for k, v := range s.spouseLinks {
		st.spouseLinks[k] = v
	}
	for k, v := range s.queue {
		st.queue[k] = v
	}
	for k, v := range s.embeddings {
		st.embeddings[k] = v
	}
	return st
}

func (s *FamilyMemStore) restoreState(st memState) {
	s.persons = st.persons
	s.childLinks = st.childLinks
	s.spouseLinks = st.spouseLinks
	s.queue = st.queue
	s.events = st.events
	s.notes = st.notes
	s.embeddings = st.embeddings
}

func sortPersons(ps []common.Person) {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].ID.String() < ps[j].ID.String()
	})
}
