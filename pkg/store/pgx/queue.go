package pgx

import (
	"context"
	"errors"

	"github.com/aerugo/ancestral-vision/pkg/common"

	"github.com/google/uuid"
	pgxv5 "github.com/jackc/pgx/v5"
)

func (s *FamilyDBStore) Enqueue(ctx context.Context, personID uuid.UUID, priority int) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO queue_entries (person_id, priority) VALUES ($1, $2)
		ON CONFLICT (person_id)
		DO UPDATE SET priority = GREATEST(queue_entries.priority, EXCLUDED.priority)`,
		personID, priority)
	return err
}

func (s *FamilyDBStore) Dequeue(ctx context.Context) (*common.QueueEntry, error) {
	var e common.QueueEntry
	err := s.conn.QueryRow(ctx, `
		DELETE FROM queue_entries
		WHERE person_id = (
			SELECT person_id FROM queue_entries
			ORDER BY priority DESC, added_at ASC
			LIMIT 1
		)
		RETURNING person_id, priority, added_at`).
		Scan(&e.PersonID, &e.Priority, &e.AddedAt)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (s *FamilyDBStore) QueueDepth(ctx context.Context) (int, error) {
	var depth int
	err := s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM queue_entries`).Scan(&depth)
	return depth, err
}
