package pgx

import (
	"context"

	"github.com/aerugo/ancestral-vision/pkg/common"
)

func (s *FamilyDBStore) Stats(ctx context.Context) (*common.Stats, error) {
	stats := &common.Stats{
		ByStatus:     map[common.PersonStatus]int{},
		ByGeneration: map[int]int{},
	}

	err := s.conn.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM persons),
			(SELECT COUNT(*) FROM child_links),
			(SELECT COUNT(*) FROM spouse_links),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM notes),
			(SELECT COUNT(*) FROM queue_entries)`).
		Scan(&stats.TotalPersons, &stats.ChildLinks, &stats.SpouseLinks,
			&stats.Events, &stats.Notes, &stats.QueueDepth)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, `SELECT status, COUNT(*) FROM persons GROUP BY status`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var status common.PersonStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByStatus[status] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.conn.Query(ctx, `SELECT generation, COUNT(*) FROM persons GROUP BY generation`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var generation, count int
		if err := rows.Scan(&generation, &count); err != nil {
			return nil, err
		}
		stats.ByGeneration[generation] = count
	}
	return stats, rows.Err()
}
