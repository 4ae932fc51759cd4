package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

func csvDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}

// WritePersonsCSV writes one row per person.
func (s *Snapshot) WritePersonsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "status", "given_name", "surname", "maiden_name", "gender",
		"birth_date", "birth_place", "death_date", "death_place", "generation",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range s.Persons {
		row := []string{
			p.ID.String(), string(p.Status), p.GivenName, p.Surname,
			p.MaidenName, string(p.Gender),
			csvDate(p.BirthDate), p.BirthPlace,
			csvDate(p.DeathDate), p.DeathPlace,
			fmt.Sprintf("%d", p.Generation),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRelationshipsCSV writes one row per edge. Child links carry the
// type "parent-child" from parent to child, spouse links the symmetric
// type "spouse".
func (s *Snapshot) WriteRelationshipsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "from_id", "to_id"}); err != nil {
		return err
	}
	for _, l := range s.ChildLinks {
		if err := cw.Write([]string{"parent-child", l.ParentID.String(), l.ChildID.String()}); err != nil {
			return err
		}
	}
	for _, l := range s.SpouseLinks {
		if err := cw.Write([]string{"spouse", l.Person1ID.String(), l.Person2ID.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
