package pgx

import (
	"context"
	"fmt"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

func (s *FamilyDBStore) SetBiographyEmbedding(ctx context.Context, personID uuid.UUID, embedding []float32) error {
	tag, err := s.conn.Exec(ctx,
		`UPDATE persons SET embedding = $2 WHERE id = $1`,
		personID, pgvector.NewVector(embedding))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SearchByEmbedding returns completed persons ordered by cosine distance
// between their biography embedding and the query vector.
func (s *FamilyDBStore) SearchByEmbedding(ctx context.Context, embedding []float32, limit int) ([]common.Person, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.conn.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM persons
		WHERE embedding IS NOT NULL AND status = 'complete'
		ORDER BY embedding <=> $1
		LIMIT $2`, personColumns),
		pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, err
	}
	return scanPersons(rows)
}
