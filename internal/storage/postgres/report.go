package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/tilecheck/internal/checker"
	"github.com/cory-johannsen/tilecheck/internal/tilemap"
)

// ErrReportNotFound is returned when a report lookup yields no results.
var ErrReportNotFound = errors.New("report not found")

// ErrReportExists is returned when a report with the same ID is saved twice.
var ErrReportExists = errors.New("report already exists")

// ReportRepository stores validation reports.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a ReportRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, path, valid, kind, message, detail, pos_row, pos_col, width, height,
	players, exits, collectables, reachable, unreached, checked_at, elapsed_us`

// SaveReport inserts r.
//
// Precondition: r.ID must be set.
// Postcondition: Returns nil, ErrReportExists for a duplicate ID, or a wrapped error.
func (r *ReportRepository) SaveReport(ctx context.Context, rep checker.Report) error {
	unreached := rep.Unreached
	if unreached == nil {
		unreached = []tilemap.Coordinate{}
	}
	var posRow, posCol *int
	if rep.Position != nil {
		posRow, posCol = &rep.Position.Row, &rep.Position.Col
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO validation_reports (`+reportColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		rep.ID, rep.Path, rep.Valid, rep.Kind, rep.Message, rep.Detail, posRow, posCol,
		rep.Width, rep.Height, rep.Players, rep.Exits, rep.Collectables, rep.Reachable,
		unreached, rep.CheckedAt, rep.Elapsed.Microseconds(),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrReportExists
		}
		return fmt.Errorf("inserting report %s: %w", rep.ID, err)
	}
	return nil
}

// Get retrieves a report by ID.
//
// Postcondition: Returns the report or ErrReportNotFound.
func (r *ReportRepository) Get(ctx context.Context, id uuid.UUID) (checker.Report, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM validation_reports WHERE id = $1`, id)
	rep, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checker.Report{}, ErrReportNotFound
		}
		return checker.Report{}, fmt.Errorf("querying report %s: %w", id, err)
	}
	return rep, nil
}

// ListByPath returns up to limit reports for path, newest first.
//
// Precondition: limit must be positive.
func (r *ReportRepository) ListByPath(ctx context.Context, path string, limit int) ([]checker.Report, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reportColumns+` FROM validation_reports
		 WHERE path = $1 ORDER BY checked_at DESC LIMIT $2`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports for %s: %w", path, err)
	}
	return collectReports(rows)
}

// ListRecent returns up to limit reports across all paths, newest first.
//
// Precondition: limit must be positive.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]checker.Report, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reportColumns+` FROM validation_reports
		 ORDER BY checked_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent reports: %w", err)
	}
	return collectReports(rows)
}

func collectReports(rows pgx.Rows) ([]checker.Report, error) {
	defer rows.Close()
	var out []checker.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}
	return out, nil
}

func scanReport(row pgx.Row) (checker.Report, error) {
	var rep checker.Report
	var elapsedUS int64
	var posRow, posCol *int
	err := row.Scan(
		&rep.ID, &rep.Path, &rep.Valid, &rep.Kind, &rep.Message, &rep.Detail, &posRow, &posCol,
		&rep.Width, &rep.Height, &rep.Players, &rep.Exits, &rep.Collectables, &rep.Reachable,
		&rep.Unreached, &rep.CheckedAt, &elapsedUS,
	)
	if err != nil {
		return checker.Report{}, err
	}
	if posRow != nil && posCol != nil {
		rep.Position = &tilemap.Coordinate{Row: *posRow, Col: *posCol}
	}
	if len(rep.Unreached) == 0 {
		rep.Unreached = nil
	}
	rep.CheckedAt = rep.CheckedAt.UTC()
	rep.Elapsed = time.Duration(elapsedUS) * time.Microsecond
	return rep, nil
}

// isDuplicateKeyError checks for SQLSTATE 23505 (unique_violation).
func isDuplicateKeyError(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
