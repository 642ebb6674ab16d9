package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-applytrack/internal/extract"
)

// Application is one tracked job application, pre-filled from an
// extraction result and advanced through the status state machine.
type Application struct {
	ID           string    `json:"id"`
	PostingID    string    `json:"posting_id"`
	Organization string    `json:"organization"`
	RoleTitle    string    `json:"role_title"`
	Location     string    `json:"location"`
	URL          string    `json:"url"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Hosted connection poolers (PgBouncer in transaction mode) do not
	// support prepared statements, so the statement cache must stay off.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// SaveResult upserts an application pre-filled from an extraction result,
// keyed by posting id. Re-extracting refreshes the stored fields without
// touching the application status.
func (r *Repository) SaveResult(ctx context.Context, res *extract.Result) (*Application, error) {
	query := `
		INSERT INTO applications (posting_id, organization, role_title, location, url, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (posting_id)
		DO UPDATE SET organization = EXCLUDED.organization, role_title = EXCLUDED.role_title,
			location = EXCLUDED.location, description = EXCLUDED.description, updated_at = now()
		RETURNING id, posting_id, organization, role_title, location, url, description, status, created_at, updated_at`

	var app Application
	err := r.db.QueryRow(ctx, query,
		res.PostingID, res.Organization, res.RoleTitle, res.Location, res.PostingURL, res.Description, StatusSaved).
		Scan(&app.ID, &app.PostingID, &app.Organization, &app.RoleTitle, &app.Location,
			&app.URL, &app.Description, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return &app, nil
}

// GetByPostingID retrieves a tracked application by posting id.
func (r *Repository) GetByPostingID(ctx context.Context, postingID string) (*Application, error) {
	var app Application
	query := `SELECT id, posting_id, organization, role_title, location, url, description, status, created_at, updated_at
		FROM applications WHERE posting_id = $1`
	err := r.db.QueryRow(ctx, query, postingID).
		Scan(&app.ID, &app.PostingID, &app.Organization, &app.RoleTitle, &app.Location,
			&app.URL, &app.Description, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("application not found")
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// UpdateStatus advances an application through the state machine, rejecting
// transitions the status graph does not allow.
func (r *Repository) UpdateStatus(ctx context.Context, appID string, to Status) error {
	var current Status
	err := r.db.QueryRow(ctx, "SELECT status FROM applications WHERE id = $1", appID).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read application status: %w", err)
	}

	if !IsTransitionAllowed(current, to) {
		return fmt.Errorf("transition %s → %s is not allowed", current, to)
	}

	_, err = r.db.Exec(ctx, "UPDATE applications SET status = $1, updated_at = now() WHERE id = $2", to, appID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

// CountByStatus feeds the dashboard metrics: how many applications sit in
// each pipeline stage.
func (r *Repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.Query(ctx, "SELECT status, COUNT(*) FROM applications GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var st Status
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[st] = n
	}
	return counts, rows.Err()
}
