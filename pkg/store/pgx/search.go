package pgx

import (
	"context"
	"fmt"
	"strings"

	"github.com/aerugo/ancestral-vision/pkg/common"
)

func (s *FamilyDBStore) SearchSimilar(ctx context.Context, givenName string, surnames []string, birthYear *int, window int) ([]common.Person, error) {
	lowered := make([]string, 0, len(surnames))
	for _, sn := range surnames {
		if sn = strings.ToLower(strings.TrimSpace(sn)); sn != "" {
			lowered = append(lowered, sn)
		}
	}

	query := fmt.Sprintf(`
		SELECT %s FROM persons
		WHERE LOWER(given_name) = LOWER($1)
		  AND (LOWER(surname) = ANY($2) OR LOWER(maiden_name) = ANY($2))`,
		personColumns)
	args := []any{givenName, lowered}

	if birthYear != nil {
		args = append(args, *birthYear, window)
		query += fmt.Sprintf(`
		  AND (birth_date IS NULL
		       OR ABS(EXTRACT(YEAR FROM birth_date)::int - $%d) <= $%d)`,
			len(args)-1, len(args))
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPersons(rows)
}

func (s *FamilyDBStore) SearchByGivenName(ctx context.Context, givenName string, birthYear *int, window int) ([]common.Person, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM persons
		WHERE LOWER(given_name) = LOWER($1)`, personColumns)
	args := []any{givenName}

	if birthYear != nil {
		args = append(args, *birthYear, window)
		query += fmt.Sprintf(`
		  AND (birth_date IS NULL
		       OR ABS(EXTRACT(YEAR FROM birth_date)::int - $%d) <= $%d)`,
			len(args)-1, len(args))
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPersons(rows)
}
