// Package db persists search jobs and accepted seeds, adapted from the
// teacher's PostgresStore: a pgxpool connection, a schema.sql loaded once
// at startup, and upsert statements for every write path.
package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rawblock/seedscan/pkg/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect initializes the connection pool to PostgreSQL using pgx.
func Connect(connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}
	log.Println("Successfully connected to PostgreSQL for seed search job tracking")
	return &PostgresStore{pool: pool}, nil
}

// Close gracefully closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema loads and executes the schema.sql file.
func (s *PostgresStore) InitSchema() error {
	schemaBytes, err := os.ReadFile("internal/db/schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %v", err)
	}
	if _, err := s.pool.Exec(context.Background(), string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}
	log.Println("Seed search schema initialized")
	return nil
}

// SaveJob upserts a search job's current status and progress counters.
func (s *PostgresStore) SaveJob(ctx context.Context, job models.SearchJob) error {
	const q = `
		INSERT INTO search_jobs
			(id, name, status, cutoff, auto_cutoff, seed_start, seed_end,
			 seeds_scanned, results_found, learned_cutoff, created_at_unix)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			seeds_scanned = EXCLUDED.seeds_scanned,
			results_found = EXCLUDED.results_found,
			learned_cutoff = EXCLUDED.learned_cutoff;
	`
	_, err := s.pool.Exec(ctx, q,
		job.ID, job.Query.Name, job.Status, job.Cutoff, job.AutoCutoff,
		job.SeedStart, job.SeedEnd, job.SeedsScanned, job.ResultsFound,
		job.LearnedCutoff, job.CreatedAtUnix)
	if err != nil {
		return fmt.Errorf("failed to upsert search_jobs: %v", err)
	}
	return nil
}

// SaveResult persists one accepted seed tally against its job.
func (s *PostgresStore) SaveResult(ctx context.Context, jobID string, tally models.Tally) error {
	const q = `
		INSERT INTO search_results (job_id, seed, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_id, seed) DO UPDATE SET score = EXCLUDED.score;
	`
	_, err := s.pool.Exec(ctx, q, jobID, tally.Seed, tally.Score)
	if err != nil {
		return fmt.Errorf("failed to insert search_results: %v", err)
	}
	return nil
}

// LoadResults returns every saved result for a job, ordered by descending
// score.
func (s *PostgresStore) LoadResults(ctx context.Context, jobID string) ([]models.Tally, error) {
	rows, err := s.pool.Query(ctx, `SELECT seed, score FROM search_results WHERE job_id = $1 ORDER BY score DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query search_results: %v", err)
	}
	defer rows.Close()

	var out []models.Tally
	for rows.Next() {
		var t models.Tally
		if err := rows.Scan(&t.Seed, &t.Score); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
