package workflow

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"hermes/internal/metrics"
	"hermes/pkg/errors"
)

// RunJournal persists run records to PostgreSQL for long-term history.
// It is optional; deployments without PostgreSQL skip it entirely.
type RunJournal struct {
	db *sqlx.DB
}

// NewRunJournal creates a run journal backed by the given database.
func NewRunJournal(db *sqlx.DB) *RunJournal {
	return &RunJournal{db: db}
}

// Record inserts a run record.
func (j *RunJournal) Record(ctx context.Context, record *RunRecord) error {
	query := `
		INSERT INTO workflow_runs (
			id, job_name, agent_name, status, final_response,
			events, tool_calls, input_tokens, output_tokens,
			duration_ns, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	_, err := j.db.ExecContext(ctx, query,
		record.ID, record.JobName, record.AgentName, record.Status, record.FinalResponse,
		record.Events, record.ToolCalls, record.InputTokens, record.OutputTokens,
		record.Duration, record.CreatedAt,
	)
	if err != nil {
		metrics.StoreOperations.WithLabelValues("postgres", "insert", "error").Inc()
		return errors.Wrapf(err, "failed to record workflow run: id=%s", record.ID)
	}

	metrics.StoreOperations.WithLabelValues("postgres", "insert", "success").Inc()
	return nil
}

// RecentRuns returns the latest run records, newest first.
func (j *RunJournal) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []RunRecord
	query := `
		SELECT * FROM workflow_runs
		ORDER BY created_at DESC
		LIMIT $1`

	if err := j.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, errors.Wrap(err, "failed to load recent workflow runs")
	}

	return records, nil
}

// Get loads a single run record by id.
func (j *RunJournal) Get(ctx context.Context, id string) (*RunRecord, error) {
	var record RunRecord
	query := `SELECT * FROM workflow_runs WHERE id = $1`

	if err := j.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(errors.ErrNotFound, "workflow run %s", id)
		}
		return nil, errors.Wrapf(err, "failed to load workflow run %s", id)
	}

	return &record, nil
}

// RecentIDs returns the ids of the latest runs, newest first. Together
// with Get this lets the journal back the run history endpoints when no
// Redis store is configured.
func (j *RunJournal) RecentIDs(ctx context.Context, limit int) ([]string, error) {
	records, err := j.RecentRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	return ids, nil
}
