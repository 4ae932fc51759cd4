package pgx

import (
	"context"
	"fmt"

	"github.com/aerugo/ancestral-vision/pkg/common"

	"github.com/google/uuid"
)

func (s *FamilyDBStore) AddChildLink(ctx context.Context, parentID, childID uuid.UUID) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO child_links (parent_id, child_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, parentID, childID)
	return err
}

func (s *FamilyDBStore) DeleteChildLink(ctx context.Context, parentID, childID uuid.UUID) error {
	_, err := s.conn.Exec(ctx,
		`DELETE FROM child_links WHERE parent_id = $1 AND child_id = $2`,
		parentID, childID)
	return err
}

func (s *FamilyDBStore) GetParents(ctx context.Context, childID uuid.UUID) ([]common.Person, error) {
	rows, err := s.conn.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM persons p
		JOIN child_links l ON l.parent_id = p.id
		WHERE l.child_id = $1
		ORDER BY p.id`, prefixedPersonColumns("p")), childID)
	if err != nil {
		return nil, err
	}
	return scanPersons(rows)
}

func (s *FamilyDBStore) GetChildren(ctx context.Context, parentID uuid.UUID) ([]common.Person, error) {
	rows, err := s.conn.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM persons p
		JOIN child_links l ON l.child_id = p.id
		WHERE l.parent_id = $1
		ORDER BY p.id`, prefixedPersonColumns("p")), parentID)
	if err != nil {
		return nil, err
	}
	return scanPersons(rows)
}

func (s *FamilyDBStore) ListChildLinks(ctx context.Context) ([]common.ChildLink, error) {
	rows, err := s.conn.Query(ctx, `SELECT parent_id, child_id FROM child_links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.ChildLink
	for rows.Next() {
		var l common.ChildLink
		if err := rows.Scan(&l.ParentID, &l.ChildID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *FamilyDBStore) AddSpouseLink(ctx context.Context, a, b uuid.UUID) error {
	link := common.NewSpouseLink(a, b)
	_, err := s.conn.Exec(ctx, `
		INSERT INTO spouse_links (person1_id, person2_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, link.Person1ID, link.Person2ID)
	return err
}

func (s *FamilyDBStore) DeleteSpouseLink(ctx context.Context, a, b uuid.UUID) error {
	link := common.NewSpouseLink(a, b)
	_, err := s.conn.Exec(ctx,
		`DELETE FROM spouse_links WHERE person1_id = $1 AND person2_id = $2`,
		link.Person1ID, link.Person2ID)
	return err
}

func (s *FamilyDBStore) GetSpouses(ctx context.Context, personID uuid.UUID) ([]common.Person, error) {
	rows, err := s.conn.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM persons p
		JOIN spouse_links l
		  ON (l.person1_id = $1 AND l.person2_id = p.id)
		  OR (l.person2_id = $1 AND l.person1_id = p.id)
		ORDER BY p.id`, prefixedPersonColumns("p")), personID)
	if err != nil {
		return nil, err
	}
	return scanPersons(rows)
}

func (s *FamilyDBStore) ListSpouseLinks(ctx context.Context) ([]common.SpouseLink, error) {
	rows, err := s.conn.Query(ctx, `SELECT person1_id, person2_id FROM spouse_links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.SpouseLink
	for rows.Next() {
		var l common.SpouseLink
		if err := rows.Scan(&l.Person1ID, &l.Person2ID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
