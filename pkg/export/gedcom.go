package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aerugo/ancestral-vision/pkg/common"

	"github.com/google/uuid"
)

// family is a GEDCOM FAM record under construction: up to two partners
// and their children.
type family struct {
	key      string
	partners []uuid.UUID
	children []uuid.UUID
}

// WriteGEDCOM renders the snapshot as GEDCOM 5.5.1. Each person becomes
// an INDI record; each parent couple or childless spouse pair becomes a
// FAM record wired through FAMS and FAMC pointers.
func (s *Snapshot) WriteGEDCOM(w io.Writer) error {
	persons := map[uuid.UUID]common.Person{}
	indiRef := map[uuid.UUID]string{}
	for i, p := range s.Persons {
		persons[p.ID] = p
		indiRef[p.ID] = fmt.Sprintf("@I%d@", i+1)
	}

	families := s.buildFamilies(persons)
	famRef := map[string]string{}
	for i, f := range families {
		famRef[f.key] = fmt.Sprintf("@F%d@", i+1)
	}

	// Pointer sets per person, in family order.
	fams := map[uuid.UUID][]string{}
	famc := map[uuid.UUID][]string{}
	for _, f := range families {
		ref := famRef[f.key]
		for _, id := range f.partners {
			fams[id] = append(fams[id], ref)
		}
		for _, id := range f.children {
			famc[id] = append(famc[id], ref)
		}
	}

	var b strings.Builder
	b.WriteString("0 HEAD\n")
	b.WriteString("1 SOUR ancestral-vision\n")
	b.WriteString("1 GEDC\n")
	b.WriteString("2 VERS 5.5.1\n")
	b.WriteString("2 FORM LINEAGE-LINKED\n")
	b.WriteString("1 CHAR UTF-8\n")

	for _, p := range s.Persons {
		fmt.Fprintf(&b, "0 %s INDI\n", indiRef[p.ID])
		fmt.Fprintf(&b, "1 NAME %s /%s/\n", p.GivenName, p.Surname)
		if sex := gedcomSex(p.Gender); sex != "" {
			fmt.Fprintf(&b, "1 SEX %s\n", sex)
		}
		writeGedcomEvent(&b, "BIRT", p.BirthDate, p.BirthPlace)
		writeGedcomEvent(&b, "DEAT", p.DeathDate, p.DeathPlace)
		for _, ref := range famc[p.ID] {
			fmt.Fprintf(&b, "1 FAMC %s\n", ref)
		}
		for _, ref := range fams[p.ID] {
			fmt.Fprintf(&b, "1 FAMS %s\n", ref)
		}
	}

	for _, f := range families {
		fmt.Fprintf(&b, "0 %s FAM\n", famRef[f.key])
		husb, wife := assignPartners(f.partners, persons)
		if husb != uuid.Nil {
			fmt.Fprintf(&b, "1 HUSB %s\n", indiRef[husb])
		}
		if wife != uuid.Nil {
			fmt.Fprintf(&b, "1 WIFE %s\n", indiRef[wife])
		}
		for _, child := range f.children {
			fmt.Fprintf(&b, "1 CHIL %s\n", indiRef[child])
		}
	}

	b.WriteString("0 TRLR\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// buildFamilies groups children by their parent set and folds in spouse
// pairs, so a couple with children yields a single FAM record.
func (s *Snapshot) buildFamilies(persons map[uuid.UUID]common.Person) []family {
	parentsOf := map[uuid.UUID][]uuid.UUID{}
	for _, l := range s.ChildLinks {
		parentsOf[l.ChildID] = append(parentsOf[l.ChildID], l.ParentID)
	}

	byKey := map[string]*family{}
	add := func(partners []uuid.UUID) *family {
		sorted := append([]uuid.UUID(nil), partners...)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].String() < sorted[j].String()
		})
		parts := make([]string, len(sorted))
		for i, id := range sorted {
			parts[i] = id.String()
		}
		key := strings.Join(parts, "|")
		if f, ok := byKey[key]; ok {
			return f
		}
		f := &family{key: key, partners: sorted}
		byKey[key] = f
		return f
	}

	for _, l := range s.SpouseLinks {
		add([]uuid.UUID{l.Person1ID, l.Person2ID})
	}
	// Children in snapshot order keeps the output deterministic.
	for _, p := range s.Persons {
		parents := parentsOf[p.ID]
		if len(parents) == 0 {
			continue
		}
		if len(parents) > 2 {
			parents = parents[:2]
		}
		f := add(parents)
		f.children = append(f.children, p.ID)
	}

	out := make([]family, 0, len(byKey))
	for _, f := range byKey {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// assignPartners maps a family's partners onto the HUSB and WIFE slots by
// gender, falling back to ordering when genders do not disambiguate.
func assignPartners(partners []uuid.UUID, persons map[uuid.UUID]common.Person) (husb, wife uuid.UUID) {
	for _, id := range partners {
		switch persons[id].Gender {
		case common.GenderMale:
			if husb == uuid.Nil {
				husb = id
				continue
			}
		case common.GenderFemale:
			if wife == uuid.Nil {
				wife = id
				continue
			}
		}
		if husb == uuid.Nil {
			husb = id
		} else if wife == uuid.Nil {
			wife = id
		}
	}
	return husb, wife
}

func gedcomSex(g common.Gender) string {
	switch g {
	case common.GenderMale:
		return "M"
	case common.GenderFemale:
		return "F"
	default:
		return "U"
	}
}

// writeGedcomEvent emits a BIRT or DEAT block. January 1st dates are the
// store's year-only approximation and are rendered as a bare year.
func writeGedcomEvent(b *strings.Builder, tag string, date *time.Time, place string) {
	if date == nil && place == "" {
		return
	}
	fmt.Fprintf(b, "1 %s\n", tag)
	if date != nil {
		if date.Month() == time.January && date.Day() == 1 {
			fmt.Fprintf(b, "2 DATE %d\n", date.Year())
		} else {
			fmt.Fprintf(b, "2 DATE %s\n", strings.ToUpper(date.Format("2 Jan 2006")))
		}
	}
	if place != "" {
		fmt.Fprintf(b, "2 PLAC %s\n", place)
	}
}
