package pgx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/google/uuid"
	pgxv5 "github.com/jackc/pgx/v5"
)

const personColumns = `id, status, given_name, surname, maiden_name, nickname,
	gender, birth_date, birth_place, death_date, death_place, biography, generation`

func prefixedPersonColumns(alias string) string {
	cols := strings.Split(personColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func scanPerson(row pgxv5.Row) (*common.Person, error) {
	var p common.Person
	err := row.Scan(
		&p.ID, &p.Status, &p.GivenName, &p.Surname, &p.MaidenName, &p.Nickname,
		&p.Gender, &p.BirthDate, &p.BirthPlace, &p.DeathDate, &p.DeathPlace,
		&p.Biography, &p.Generation,
	)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanPersons(rows pgxv5.Rows) ([]common.Person, error) {
	defer rows.Close()

	var out []common.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *FamilyDBStore) CreatePerson(ctx context.Context, p *common.Person) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := s.conn.Exec(ctx, `
		INSERT INTO persons (id, status, given_name, surname, maiden_name, nickname,
			gender, birth_date, birth_place, death_date, death_place, biography, generation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Status, p.GivenName, p.Surname, p.MaidenName, p.Nickname,
		p.Gender, p.BirthDate, p.BirthPlace, p.DeathDate, p.DeathPlace,
		p.Biography, p.Generation,
	)
	return err
}

func (s *FamilyDBStore) GetPerson(ctx context.Context, id uuid.UUID) (*common.Person, error) {
	row := s.conn.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM persons WHERE id = $1`, personColumns), id)
	return scanPerson(row)
}

func (s *FamilyDBStore) UpdatePerson(ctx context.Context, p *common.Person) error {
	tag, err := s.conn.Exec(ctx, `
		UPDATE persons SET status = $2, given_name = $3, surname = $4,
			maiden_name = $5, nickname = $6, gender = $7, birth_date = $8,
			birth_place = $9, death_date = $10, death_place = $11,
			biography = $12, generation = $13
		WHERE id = $1`,
		p.ID, p.Status, p.GivenName, p.Surname, p.MaidenName, p.Nickname,
		p.Gender, p.BirthDate, p.BirthPlace, p.DeathDate, p.DeathPlace,
		p.Biography, p.Generation,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *FamilyDBStore) DeletePerson(ctx context.Context, id uuid.UUID) error {
	tag, err := s.conn.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *FamilyDBStore) ListPersons(ctx context.Context, filter store.PersonFilter) ([]common.Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM persons WHERE TRUE`, personColumns)
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Generation != nil {
		args = append(args, *filter.Generation)
		query += fmt.Sprintf(` AND generation = $%d`, len(args))
	}
	query += ` ORDER BY created_at, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPersons(rows)
}
