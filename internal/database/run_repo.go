package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

type runRepository struct {
	db dbConn
}

func newRunRepository(db dbConn) contract.RunRepo {
	return &runRepository{db: db}
}

const runColumns = `id, started_at, finished_at, reference_at, window_start, window_end,
	outgoing, incoming, phase, outcome, error, test_mode`

func (r *runRepository) Create(ctx context.Context, run *entity.Run) error {
	query := `
		INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
		nullTime(run.Reference),
		nullTime(run.WindowStart),
		nullTime(run.WindowEnd),
		run.Outgoing,
		run.Incoming,
		string(run.Phase),
		string(run.Outcome),
		run.Error,
		run.TestMode,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (r *runRepository) AddCall(ctx context.Context, runID string, seq int, call entity.PhoneActionResult) error {
	query := `
		INSERT INTO call_attempts (run_id, seq, purpose, destination, call_id, success, skipped, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		runID,
		seq,
		string(call.Purpose),
		call.To,
		call.CallID,
		call.Success,
		call.Skipped,
		call.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to add call attempt: %w", err)
	}
	return nil
}

// GetByID returns nil when the run does not exist.
func (r *runRepository) GetByID(ctx context.Context, id string) (*entity.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if run.Calls, err = r.getCalls(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

// GetLatest returns up to limit runs, newest first.
func (r *runRepository) GetLatest(ctx context.Context, limit int) ([]*entity.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	// Release the connection before loading the calls.
	rows.Close()

	for _, run := range runs {
		if run.Calls, err = r.getCalls(ctx, run.ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *runRepository) getCalls(ctx context.Context, runID string) ([]entity.PhoneActionResult, error) {
	query := `
		SELECT purpose, destination, call_id, success, skipped, reason
		FROM call_attempts
		WHERE run_id = ?
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get call attempts: %w", err)
	}
	defer rows.Close()

	var calls []entity.PhoneActionResult
	for rows.Next() {
		var call entity.PhoneActionResult
		var purpose string
		if err := rows.Scan(&purpose, &call.To, &call.CallID, &call.Success, &call.Skipped, &call.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan call attempt: %w", err)
		}
		call.Purpose = entity.CallPurpose(purpose)
		calls = append(calls, call)
	}
	return calls, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*entity.Run, error) {
	run := &entity.Run{}
	var reference, windowStart, windowEnd sql.NullTime
	var phase, outcome string

	err := row.Scan(
		&run.ID,
		&run.StartedAt,
		&run.FinishedAt,
		&reference,
		&windowStart,
		&windowEnd,
		&run.Outgoing,
		&run.Incoming,
		&phase,
		&outcome,
		&run.Error,
		&run.TestMode,
	)
	if err != nil {
		return nil, err
	}

	run.Reference = reference.Time
	run.WindowStart = windowStart.Time
	run.WindowEnd = windowEnd.Time
	run.Phase = entity.OnCallPhase(phase)
	run.Outcome = entity.RunOutcome(outcome)
	return run, nil
}

// Times are stored in UTC so that the text sqlite compares sorts chronologically.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
