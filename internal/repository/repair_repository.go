package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/fixtrack/repair-shop-api/internal/models"
)

// Querier is the slice of the connection manager the repository needs.
// Satisfied by *database.DB and, in tests, by a sqlx.DB over sqlmock.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// RepairRepository persists repair jobs. The connection resource is
// injected at construction; the repository itself never reconnects.
type RepairRepository struct {
	db Querier
}

// NewRepairRepository constructs the repository.
func NewRepairRepository(db Querier) *RepairRepository {
	return &RepairRepository{db: db}
}

const repairColumns = `id, title, customer_name, repair_type, priority, status, estimated_cost, date_added, description, assigned_to, created_at, updated_at`

// repairRow is the raw storage shape. Every text column is nullable
// because rows from earlier schema generations may only carry the legacy
// description/assigned_to columns; normalize() folds either shape into the
// canonical entity in one place.
type repairRow struct {
	ID            int64           `db:"id"`
	Title         sql.NullString  `db:"title"`
	CustomerName  sql.NullString  `db:"customer_name"`
	RepairType    sql.NullString  `db:"repair_type"`
	Priority      sql.NullString  `db:"priority"`
	Status        sql.NullString  `db:"status"`
	EstimatedCost sql.NullFloat64 `db:"estimated_cost"`
	DateAdded     sql.NullString  `db:"date_added"`
	Description   sql.NullString  `db:"description"`
	AssignedTo    sql.NullString  `db:"assigned_to"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// normalize maps a canonical or legacy-shaped row into the canonical
// entity: title falls back to the legacy description, customerName to
// assigned_to, repairType to the fixed default, and dateAdded to the
// creation date.
func (row repairRow) normalize() models.RepairJob {
	job := models.RepairJob{
		ID:         fmt.Sprintf("%d", row.ID),
		Title:      row.Title.String,
		RepairType: models.DefaultRepairType,
		Priority:   models.Priority(row.Priority.String),
		Status:     models.Status(row.Status.String),
		DateAdded:  row.DateAdded.String,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if !row.Title.Valid || row.Title.String == "" {
		job.Title = row.Description.String
	}
	job.CustomerName = row.CustomerName.String
	if !row.CustomerName.Valid || row.CustomerName.String == "" {
		job.CustomerName = row.AssignedTo.String
	}
	if row.RepairType.Valid && row.RepairType.String != "" {
		job.RepairType = row.RepairType.String
	}
	if row.EstimatedCost.Valid {
		cost := row.EstimatedCost.Float64
		job.EstimatedCost = &cost
	}
	if !row.DateAdded.Valid || row.DateAdded.String == "" {
		job.DateAdded = row.CreatedAt.Format("2006-01-02")
	}
	return job
}

// CreateRepairParams carries the validated, defaulted fields for insertion.
type CreateRepairParams struct {
	Title         string
	CustomerName  string
	RepairType    string
	Priority      models.Priority
	Status        models.Status
	EstimatedCost *float64
	DateAdded     string
}

// Create inserts a repair job and returns the assigned id.
func (r *RepairRepository) Create(ctx context.Context, params CreateRepairParams) (int64, error) {
	const query = `INSERT INTO repairs (title, customer_name, repair_type, priority, status, estimated_cost, date_added)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	var id int64
	if err := r.db.GetContext(ctx, &id, query,
		params.Title,
		params.CustomerName,
		params.RepairType,
		params.Priority,
		params.Status,
		params.EstimatedCost,
		params.DateAdded,
	); err != nil {
		return 0, fmt.Errorf("create repair: %w", err)
	}
	return id, nil
}

// List returns all repair jobs, newest first. The id tiebreaker keeps the
// ordering stable when creation timestamps collide.
func (r *RepairRepository) List(ctx context.Context) ([]models.RepairJob, error) {
	query := fmt.Sprintf(`SELECT %s FROM repairs ORDER BY created_at DESC, id DESC`, repairColumns)
	var rows []repairRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	jobs := make([]models.RepairJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.normalize())
	}
	return jobs, nil
}

// UpdateStatus sets the status and refreshes updated_at in a single
// statement, returning the updated row. sql.ErrNoRows means no such id.
func (r *RepairRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) (*models.RepairJob, error) {
	query := fmt.Sprintf(`UPDATE repairs SET status = $1, updated_at = now() WHERE id = $2
RETURNING %s`, repairColumns)
	var row repairRow
	if err := r.db.GetContext(ctx, &row, query, status, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update repair status: %w", err)
	}
	job := row.normalize()
	return &job, nil
}

// Delete removes a repair job. sql.ErrNoRows means no such id.
func (r *RepairRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM repairs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete repair: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete repair: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IsCheckViolation reports whether the error is a Postgres CHECK
// constraint failure, letting callers surface an enum rejection as a
// validation error instead of a generic storage failure.
func IsCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23514"
}
