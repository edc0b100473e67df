package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is the record of one finished game.
type Run struct {
	ID        uuid.UUID
	GameID    string
	Player    string // SSH user name, empty for local play
	Score     int
	MaxTile   int
	Launches  int
	Merges    int
	Duration  time.Duration
	CreatedAt time.Time
}

// RunStats aggregates the run records of one game.
type RunStats struct {
	GameID        string
	Runs          int
	BestTile      int
	TotalLaunches int
	TotalMerges   int
	AvgDuration   time.Duration
}

// SaveRun stores a finished run. A zero ID is replaced with a fresh UUID;
// the stored ID is returned.
func (s *Store) SaveRun(run Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, player, score, max_tile, launches, merges, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(),
		run.GameID,
		run.Player,
		run.Score,
		run.MaxTile,
		run.Launches,
		run.Merges,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

// RecentRuns returns the latest runs for a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	return s.queryRuns("ORDER BY seq DESC", gameID, limit)
}

// TopRuns returns the best runs for a game by score, then max tile.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	return s.queryRuns("ORDER BY score DESC, max_tile DESC, seq ASC", gameID, limit)
}

func (s *Store) queryRuns(order, gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	//#nosec G202 -- order is one of the constant clauses above
	rows, err := s.db.Query(
		`SELECT run_id, game_id, player, score, max_tile, launches, merges, duration_ms, created_at
		 FROM runs
		 WHERE game_id = ?
		 `+order+`
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			id         string
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&id, &r.GameID, &r.Player, &r.Score, &r.MaxTile,
			&r.Launches, &r.Merges, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}

		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("storage: run %q has a malformed id: %w", id, err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// GetRunStats aggregates every stored run of a game.
func (s *Store) GetRunStats(gameID string) (*RunStats, error) {
	stats := &RunStats{GameID: gameID}
	var avgMS float64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(max_tile), 0), COALESCE(SUM(launches), 0),
		        COALESCE(SUM(merges), 0), COALESCE(AVG(duration_ms), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.BestTile, &stats.TotalLaunches, &stats.TotalMerges, &avgMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	stats.AvgDuration = time.Duration(avgMS) * time.Millisecond
	return stats, nil
}
