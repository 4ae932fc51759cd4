package tree

import (
	"context"
	"testing"

	"github.com/aerugo/ancestral-vision/pkg/common"
)

func TestNextSubjectPrefersQueue(t *testing.T) {
	ctx := context.Background()
	e, st := newTestEngine(newStubOracle())

	low := mustCreate(t, st, &common.Person{GivenName: "Rose", Surname: "Hale", Status: common.StatusQueued})
	high := mustCreate(t, st, &common.Person{GivenName: "Edward", Surname: "Hale", Status: common.StatusQueued})
	mustCreate(t, st, &common.Person{GivenName: "Tobias", Surname: "Crane", Status: common.StatusPending})

	if err := st.Enqueue(ctx, low.ID, 1); err != nil {
		t.Fatal(err)
	}
	if err := st.Enqueue(ctx, high.ID, 5); err != nil {
		t.Fatal(err)
	}

	got, err := e.NextSubject(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != high.ID {
		t.Fatalf("subject = %s, want highest priority entry %s", got, high.ID)
	}
	p, err := st.GetPerson(ctx, got)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != common.StatusProcessing {
		t.Errorf("subject status = %s, want processing", p.Status)
	}

	got, err = e.NextSubject(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != low.ID {
		t.Errorf("second subject = %s, want remaining entry %s", got, low.ID)
	}
}

func TestNextSubjectSamplesPendingWhenQueueEmpty(t *testing.T) {
	ctx := context.Background()
	e, st := newTestEngine(newStubOracle())

	pending := map[string]bool{}
	for _, name := range []string{"Rose", "Edward", "Tobias"} {
		p := mustCreate(t, st, &common.Person{GivenName: name, Surname: "Hale", Status: common.StatusPending})
		pending[p.ID.String()] = true
	}

	got, err := e.NextSubject(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !pending[got.String()] {
		t.Fatalf("subject %s is not one of the pending candidates", got)
	}
	p, err := st.GetPerson(ctx, got)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != common.StatusProcessing {
		t.Errorf("subject status = %s, want processing", p.Status)
	}
}

func TestNextSubjectSynthesizesSeedWhenEmpty(t *testing.T) {
	ctx := context.Background()
	e, st := newTestEngine(newStubOracle())

	got, err := e.NextSubject(ctx)
	if err != nil {
		t.Fatal(err)
	}
	seed, err := st.GetPerson(ctx, got)
	if err != nil {
		t.Fatal(err)
	}
	if seed.GivenName == "" || seed.Surname == "" {
		t.Errorf("seed has empty name: %+v", seed)
	}
	if seed.Generation != 0 {
		t.Errorf("seed generation = %d, want 0", seed.Generation)
	}
	if seed.Status != common.StatusProcessing {
		t.Errorf("seed status = %s, want processing", seed.Status)
	}
	if seed.BirthDate == nil {
		t.Fatal("seed has no birth date")
	}
	year := seed.BirthDate.Year()
	if year < e.cfg.SeedYearMin || year > e.cfg.SeedYearMax {
		t.Errorf("seed born %d, want within [%d, %d]", year, e.cfg.SeedYearMin, e.cfg.SeedYearMax)
	}
}

func TestSampleForestFireFavorsLowGenerations(t *testing.T) {
	e, st := newTestEngine(newStubOracle())

	near := mustCreate(t, st, &common.Person{GivenName: "Rose", Surname: "Hale", Generation: 0})
	far := mustCreate(t, st, &common.Person{GivenName: "Tobias", Surname: "Crane", Generation: -6})

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		id := e.sampleForestFire([]common.Person{*near, *far})
		counts[id.String()]++
	}
	if counts[near.ID.String()] <= counts[far.ID.String()] {
		t.Errorf("generation 0 picked %d times, generation -6 picked %d times",
			counts[near.ID.String()], counts[far.ID.String()])
	}
}
