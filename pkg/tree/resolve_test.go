package tree

import (
	"context"
	"fmt"
	"testing"

	"github.com/aerugo/ancestral-vision/pkg/common"
)

func TestResolveDropsUnusableReferences(t *testing.T) {
	ctx := context.Background()
	e, st := newTestEngine(newStubOracle())
	subject := mustCreate(t, st, &common.Person{GivenName: "Clara", Surname: "Hale"})

	tests := []struct {
		name string
		ref  common.PersonReference
	}{
		{"empty name", common.PersonReference{Name: "   ", Relationship: common.RelParent}},
		{"birth year in the future", common.PersonReference{
			Name: "Edward Hale", Relationship: common.RelParent, BirthYear: yearPtr(2150)}},
		{"birth year before the floor", common.PersonReference{
			Name: "Edward Hale", Relationship: common.RelParent, BirthYear: yearPtr(900)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, created, err := e.Resolve(ctx, tt.ref, -1, subject)
			if err != nil {
				t.Fatal(err)
			}
			if resolved != nil || created {
				t.Errorf("reference should be dropped, got %+v created=%v", resolved, created)
			}
		})
	}
}

func TestResolveCreatesPendingPersonWhenNoMatch(t *testing.T) {
	ctx := context.Background()
	e, st := newTestEngine(newStubOracle())
	subject := mustCreate(t, st, &common.Person{GivenName: "Clara", Surname: "Hale", Generation: 0})

	ref := common.PersonReference{
		Name:         "William Smith",
		Relationship: common.RelParent,
		BirthYear:    yearPtr(1870),
		Gender:       common.GenderMale,
	}
	resolved, created, err := e.Resolve(ctx, ref, subject.Generation-1, subject)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("expected a new person")
	}
	if resolved.GivenName != "William" || resolved.Surname != "Smith" {
		t.Errorf("name = %s %s, want William Smith", resolved.GivenName, resolved.Surname)
	}
	if resolved.Status != common.StatusPending {
		t.Errorf("status = %s, want pending", resolved.Status)
	}
	if resolved.Generation != -1 {
		t.Errorf("generation = %d, want -1", resolved.Generation)
	}
	if resolved.BirthDate == nil || resolved.BirthDate.Year() != 1870 {
		t.Error("approximate birth year not recorded")
	}
	if _, err := st.GetPerson(ctx, resolved.ID); err != nil {
		t.Errorf("created person not persisted: %v", err)
	}
}

func TestResolveMatchesExistingPersonViaOracle(t *testing.T) {
	ctx := context.Background()
	oracle := newStubOracle()
	e, st := newTestEngine(oracle)

	subject := mustCreate(t, st, &common.Person{GivenName: "Clara", Surname: "Hale", Generation: 0})
	existing := mustCreate(t, st, &common.Person{
		GivenName: "William", Surname: "Smith", Gender: common.GenderMale,
		BirthDate: bornIn(1870).BirthDate, Generation: -1,
	})
	oracle.formats["confirm_duplicate"] = fmt.Sprintf(
		`{"is_duplicate": true, "matched_person_id": %q, "confidence": 0.9, "reasoning": "same person"}`,
		existing.ID)

	ref := common.PersonReference{
		Name:         "William Smith",
		Relationship: common.RelParent,
		BirthYear:    yearPtr(1872),
		Gender:       common.GenderMale,
	}
	resolved, created, err := e.Resolve(ctx, ref, -1, subject)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("expected a match, not a new person")
	}
	if resolved.ID != existing.ID {
		t.Errorf("resolved = %s, want existing %s", resolved.ID, existing.ID)
	}
	if oracle.formatCalls["confirm_duplicate"] != 1 {
		t.Errorf("dedupe calls = %d, want 1", oracle.formatCalls["confirm_duplicate"])
	}
}

func TestResolveTreatsMalformedMatchIDAsNoMatch(t *testing.T) {
	ctx := context.Background()
	oracle := newStubOracle()
	oracle.formats["confirm_duplicate"] = `{"is_duplicate": true, "matched_person_id": "not-a-uuid", "confidence": 0.9, "reasoning": ""}`
	e, st := newTestEngine(oracle)

	subject := mustCreate(t, st, &common.Person{GivenName: "Clara", Surname: "Hale"})
	existing := mustCreate(t, st, &common.Person{
		GivenName: "William", Surname: "Smith", Gender: common.GenderMale,
	})

	ref := common.PersonReference{Name: "William Smith", Relationship: common.RelParent}
	resolved, created, err := e.Resolve(ctx, ref, -1, subject)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("malformed match id should fall through to creation")
	}
	if resolved.ID == existing.ID {
		t.Error("must not resolve to the existing person")
	}
}

func TestResolveOracleRejectionCreatesNewPerson(t *testing.T) {
	ctx := context.Background()
	oracle := newStubOracle()
	oracle.formats["confirm_duplicate"] = `{"is_duplicate": false, "matched_person_id": "", "confidence": 0.8, "reasoning": "different birth years"}`
	e, st := newTestEngine(oracle)

	subject := mustCreate(t, st, &common.Person{GivenName: "Clara", Surname: "Hale"})
	mustCreate(t, st, &common.Person{
		GivenName: "William", Surname: "Smith", Gender: common.GenderMale,
	})

	ref := common.PersonReference{Name: "William Smith", Relationship: common.RelParent}
	resolved, created, err := e.Resolve(ctx, ref, -1, subject)
	if err != nil {
		t.Fatal(err)
	}
	if !created || resolved == nil {
		t.Fatal("rejected match should create a new person")
	}
}
