package tree

import (
	"context"
	"testing"

	"github.com/aerugo/ancestral-vision/pkg/common"

	"github.com/google/uuid"
)

func TestGatherRelativesLabelsByClosestDegree(t *testing.T) {
	ctx := context.Background()
	e, st := newTestEngine(newStubOracle())

	subject := mustCreate(t, st, &common.Person{GivenName: "Rose", Surname: "Hale"})
	father := mustCreate(t, st, &common.Person{GivenName: "Edward", Surname: "Hale", Gender: common.GenderMale, Generation: -1})
	mother := mustCreate(t, st, &common.Person{GivenName: "Clara", Surname: "Hale", Gender: common.GenderFemale, Generation: -1})
	brother := mustCreate(t, st, &common.Person{GivenName: "Tom", Surname: "Hale", Gender: common.GenderMale})
	grandpa := mustCreate(t, st, &common.Person{GivenName: "Silas", Surname: "Hale", Gender: common.GenderMale, Generation: -2})
	aunt := mustCreate(t, st, &common.Person{GivenName: "Ada", Surname: "Crane", Gender: common.GenderFemale, Generation: -1})
	husband := mustCreate(t, st, &common.Person{GivenName: "John", Surname: "Frey", Gender: common.GenderMale})

	links := []struct{ parent, child uuid.UUID }{
		{father.ID, subject.ID},
		{mother.ID, subject.ID},
		{father.ID, brother.ID},
		{mother.ID, brother.ID},
		{grandpa.ID, father.ID},
		{grandpa.ID, aunt.ID},
	}
	for _, l := range links {
		if err := st.AddChildLink(ctx, l.parent, l.child); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.AddSpouseLink(ctx, subject.ID, husband.ID); err != nil {
		t.Fatal(err)
	}

	relatives, err := e.GatherRelatives(ctx, subject.ID)
	if err != nil {
		t.Fatal(err)
	}

	got := map[uuid.UUID]common.RelationshipType{}
	for _, r := range relatives {
		if prev, dup := got[r.ID]; dup {
			t.Errorf("%s listed twice (%s and %s)", r.FullName, prev, r.Relationship)
		}
		got[r.ID] = r.Relationship
	}

	want := map[uuid.UUID]common.RelationshipType{
		father.ID:  common.RelParent,
		mother.ID:  common.RelParent,
		brother.ID: common.RelSibling,
		grandpa.ID: common.RelGrandparent,
		aunt.ID:    common.RelAunt,
		husband.ID: common.RelSpouse,
	}
	for id, rel := range want {
		if got[id] != rel {
			t.Errorf("relative %s labeled %q, want %q", id, got[id], rel)
		}
	}
	if len(got) != len(want) {
		t.Errorf("gathered %d relatives, want %d", len(got), len(want))
	}
}
