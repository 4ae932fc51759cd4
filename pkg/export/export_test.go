package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store/memory"
)

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	ctx := context.Background()
	st := memory.NewFamilyMemStore()

	create := func(given, surname string, gender common.Gender, birthYear, generation int) *common.Person {
		p := &common.Person{
			Status: common.StatusComplete, GivenName: given, Surname: surname,
			Gender: gender, Generation: generation,
		}
		if birthYear > 0 {
			born := common.YearDate(birthYear)
			p.BirthDate = &born
		}
		if err := st.CreatePerson(ctx, p); err != nil {
			t.Fatal(err)
		}
		return p
	}

	father := create("Edward", "Hale", common.GenderMale, 1870, -1)
	mother := create("Clara", "Hale", common.GenderFemale, 1872, -1)
	child := create("Rose", "Hale", common.GenderFemale, 1900, 0)

	if err := st.AddChildLink(ctx, father.ID, child.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.AddChildLink(ctx, mother.ID, child.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.AddSpouseLink(ctx, father.ID, mother.ID); err != nil {
		t.Fatal(err)
	}

	snap, err := Collect(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestCollectOrdersPersons(t *testing.T) {
	snap := testSnapshot(t)
	if len(snap.Persons) != 3 {
		t.Fatalf("persons = %d, want 3", len(snap.Persons))
	}
	// Generation -1 before generation 0, then by name.
	if snap.Persons[0].GivenName != "Clara" || snap.Persons[1].GivenName != "Edward" {
		t.Errorf("unexpected order: %s, %s", snap.Persons[0].GivenName, snap.Persons[1].GivenName)
	}
	if snap.Persons[2].GivenName != "Rose" {
		t.Errorf("child should sort last, got %s", snap.Persons[2].GivenName)
	}
	if len(snap.ChildLinks) != 2 || len(snap.SpouseLinks) != 1 {
		t.Errorf("links = %d child, %d spouse", len(snap.ChildLinks), len(snap.SpouseLinks))
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	snap := testSnapshot(t)
	var buf bytes.Buffer
	if err := snap.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Persons) != 3 || len(decoded.ChildLinks) != 2 {
		t.Errorf("decoded %d persons, %d child links", len(decoded.Persons), len(decoded.ChildLinks))
	}
}

func TestWriteCSV(t *testing.T) {
	snap := testSnapshot(t)

	var persons bytes.Buffer
	if err := snap.WritePersonsCSV(&persons); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&persons).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("person rows = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "id" || rows[0][6] != "birth_date" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "Clara" || rows[1][6] != "1872-01-01" {
		t.Errorf("unexpected first person row: %v", rows[1])
	}

	var rels bytes.Buffer
	if err := snap.WriteRelationshipsCSV(&rels); err != nil {
		t.Fatal(err)
	}
	relRows, err := csv.NewReader(&rels).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(relRows) != 4 {
		t.Fatalf("relationship rows = %d, want header + 3", len(relRows))
	}
	kinds := map[string]int{}
	for _, row := range relRows[1:] {
		kinds[row[0]]++
	}
	if kinds["parent-child"] != 2 || kinds["spouse"] != 1 {
		t.Errorf("relationship kinds = %v", kinds)
	}
}

func TestWriteGEDCOM(t *testing.T) {
	snap := testSnapshot(t)
	var buf bytes.Buffer
	if err := snap.WriteGEDCOM(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"0 HEAD\n",
		"2 VERS 5.5.1\n",
		"1 NAME Rose /Hale/\n",
		"1 SEX F\n",
		"2 DATE 1900\n",
		"0 TRLR\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// The couple and their child collapse into one FAM record.
	if got := strings.Count(out, " FAM\n"); got != 1 {
		t.Errorf("FAM records = %d, want 1", got)
	}
	if got := strings.Count(out, "1 CHIL "); got != 1 {
		t.Errorf("CHIL lines = %d, want 1", got)
	}
	if !strings.Contains(out, "1 HUSB ") || !strings.Contains(out, "1 WIFE ") {
		t.Error("family missing HUSB or WIFE")
	}
	// Each partner points at the family, the child points back.
	if got := strings.Count(out, "1 FAMS "); got != 2 {
		t.Errorf("FAMS lines = %d, want 2", got)
	}
	if got := strings.Count(out, "1 FAMC "); got != 1 {
		t.Errorf("FAMC lines = %d, want 1", got)
	}
}
