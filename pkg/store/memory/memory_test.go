package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/google/uuid"
)

func TestQueueOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewFamilyMemStore()

	low1 := uuid.New()
	low2 := uuid.New()
	high := uuid.New()

	if err := s.Enqueue(ctx, low1, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Enqueue(ctx, low2, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Enqueue(ctx, high, 5); err != nil {
		t.Fatal(err)
	}

	want := []uuid.UUID{high, low1, low2}
	for i, id := range want {
		e, err := s.Dequeue(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if e == nil || e.PersonID != id {
			t.Fatalf("dequeue %d: got %v, want %s", i, e, id)
		}
	}

	e, err := s.Dequeue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if e != nil {
		t.Fatalf("empty queue dequeue = %v, want nil", e)
	}
}

func TestEnqueueRaisesPriorityOnly(t *testing.T) {
	ctx := context.Background()
	s := NewFamilyMemStore()

	id := uuid.New()
	other := uuid.New()

	if err := s.Enqueue(ctx, id, 3); err != nil {
		t.Fatal(err)
	}
	// Lower priority must not demote the existing entry.
	if err := s.Enqueue(ctx, id, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Enqueue(ctx, other, 2); err != nil {
		t.Fatal(err)
	}

	depth, err := s.QueueDepth(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if depth != 2 {
		t.Fatalf("QueueDepth() = %d, want 2", depth)
	}

	e, err := s.Dequeue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if e.PersonID != id || e.Priority != 3 {
		t.Fatalf("dequeue = %+v, want person %s with priority 3", e, id)
	}

	// Re-enqueue with a higher priority raises it.
	if err := s.Enqueue(ctx, other, 7); err != nil {
		t.Fatal(err)
	}
	e, err = s.Dequeue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if e.Priority != 7 {
		t.Fatalf("raised priority = %d, want 7", e.Priority)
	}
}

func TestSearchSimilarMatchesMaidenName(t *testing.T) {
	ctx := context.Background()
	s := NewFamilyMemStore()

	year := 1920
	born := common.YearDate(year)
	p := &common.Person{
		GivenName:  "Mary",
		Surname:    "Smith",
		MaidenName: "Jones",
		BirthDate:  &born,
	}
	if err := s.CreatePerson(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := s.SearchSimilar(ctx, "mary", []string{"jones"}, &year, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("SearchSimilar = %v, want the person matched via maiden name", got)
	}

	far := 1990
	got, err = s.SearchSimilar(ctx, "mary", []string{"jones"}, &far, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("SearchSimilar outside window = %v, want empty", got)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewFamilyMemStore()

	p := &common.Person{GivenName: "John", Surname: "Smith"}
	if err := s.CreatePerson(ctx, p); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.FamilyStore) error {
		if err := tx.DeletePerson(ctx, p.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx err = %v, want %v", err, boom)
	}

	if _, err := s.GetPerson(ctx, p.ID); err != nil {
		t.Fatalf("person missing after rollback: %v", err)
	}
}

func TestDeletePersonRemovesLinks(t *testing.T) {
	ctx := context.Background()
	s := NewFamilyMemStore()

	parent := &common.Person{GivenName: "Anna", Surname: "Berg"}
	child := &common.Person{GivenName: "Erik", Surname: "Berg"}
	spouse := &common.Person{GivenName: "Lars", Surname: "Berg"}
	for _, p := range []*common.Person{parent, child, spouse} {
		if err := s.CreatePerson(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AddChildLink(ctx, parent.ID, child.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.AddSpouseLink(ctx, parent.ID, spouse.ID); err != nil {
		t.Fatal(err)
	}

	if err := s.DeletePerson(ctx, parent.ID); err != nil {
		t.Fatal(err)
	}

	parents, err := s.GetParents(ctx, child.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(parents) != 0 {
		t.Fatalf("GetParents after delete = %v, want empty", parents)
	}
	spouses, err := s.GetSpouses(ctx, spouse.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(spouses) != 0 {
		t.Fatalf("GetSpouses after delete = %v, want empty", spouses)
	}
}
