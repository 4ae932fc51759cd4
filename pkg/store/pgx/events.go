package pgx

import (
	"context"

	"github.com/aerugo/ancestral-vision/pkg/common"

	"github.com/google/uuid"
)

func (s *FamilyDBStore) AddEvent(ctx context.Context, e *common.Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	others := e.OtherPersonIDs
	if others == nil {
		others = []uuid.UUID{}
	}
	_, err := s.conn.Exec(ctx, `
		INSERT INTO events (id, event_type, event_date, event_year, location,
			description, primary_person_id, other_person_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Type, e.Date, e.Year, e.Location, e.Description,
		e.PrimaryPersonID, others)
	return err
}

func (s *FamilyDBStore) GetEvents(ctx context.Context, personID uuid.UUID) ([]common.Event, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, event_type, event_date, event_year, location, description,
			primary_person_id, other_person_ids
		FROM events
		WHERE primary_person_id = $1 OR $1 = ANY(other_person_ids)
		ORDER BY event_year NULLS LAST, id`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.Event
	for rows.Next() {
		var e common.Event
		if err := rows.Scan(&e.ID, &e.Type, &e.Date, &e.Year, &e.Location,
			&e.Description, &e.PrimaryPersonID, &e.OtherPersonIDs); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *FamilyDBStore) AddNote(ctx context.Context, n *common.Note) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	refs := n.ReferencedPersonIDs
	if refs == nil {
		refs = []uuid.UUID{}
	}
	_, err := s.conn.Exec(ctx, `
		INSERT INTO notes (id, person_id, category, content, source, referenced_person_ids)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.PersonID, n.Category, n.Content, n.Source, refs)
	return err
}

func (s *FamilyDBStore) GetNotes(ctx context.Context, personID uuid.UUID) ([]common.Note, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, person_id, category, content, source, referenced_person_ids
		FROM notes WHERE person_id = $1 ORDER BY id`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.Note
	for rows.Next() {
		var n common.Note
		if err := rows.Scan(&n.ID, &n.PersonID, &n.Category, &n.Content,
			&n.Source, &n.ReferencedPersonIDs); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
