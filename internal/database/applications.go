package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"logoped/internal/models"
)

// CreateApplication stores a new application with a generated id and status
// "new", returning the stored record.
func (db *DB) CreateApplication(ctx context.Context, app *models.Application) (*models.Application, error) {
	app.ID = uuid.NewString()
	app.Status = models.StatusNew
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	_, err := db.ExecContext(ctx, `
		INSERT INTO applications
			(id, parent_name, phone, email, child_age, problem, preferred_time, comment, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID, app.ParentName, app.Phone, nullable(app.Email), nullable(app.ChildAge),
		app.Problem, nullable(app.PreferredTime), nullable(app.Comment),
		string(app.Status), app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return app, nil
}

// ListApplications returns all applications, newest first.
func (db *DB) ListApplications(ctx context.Context) ([]models.Application, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, parent_name, phone, COALESCE(email, ''), COALESCE(child_age, ''),
		       problem, COALESCE(preferred_time, ''), COALESCE(comment, ''),
		       COALESCE(admin_comment, ''), status, created_at, updated_at
		FROM applications
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(&a.ID, &a.ParentName, &a.Phone, &a.Email, &a.ChildAge,
			&a.Problem, &a.PreferredTime, &a.Comment, &a.AdminComment,
			&a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// GetApplication returns one application by id.
func (db *DB) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, parent_name, phone, COALESCE(email, ''), COALESCE(child_age, ''),
		       problem, COALESCE(preferred_time, ''), COALESCE(comment, ''),
		       COALESCE(admin_comment, ''), status, created_at, updated_at
		FROM applications
		WHERE id = ?`, id)

	var a models.Application
	err := row.Scan(&a.ID, &a.ParentName, &a.Phone, &a.Email, &a.ChildAge,
		&a.Problem, &a.PreferredTime, &a.Comment, &a.AdminComment,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &a, nil
}

// UpdateApplicationStatus moves an application to a new status.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id string, status models.AppStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	res, err := db.ExecContext(ctx,
		`UPDATE applications SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return checkAffected(res)
}

// UpdateApplicationComment sets the admin comment on an application.
func (db *DB) UpdateApplicationComment(ctx context.Context, id, comment string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE applications SET admin_comment = ?, updated_at = ? WHERE id = ?`,
		comment, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return checkAffected(res)
}

// ListPreferredTimes returns the non-empty preferred-time values of all
// applications. This is the raw input of the booked-slot index; parsing and
// tolerance of malformed values is the caller's concern.
func (db *DB) ListPreferredTimes(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT preferred_time FROM applications
		WHERE preferred_time IS NOT NULL AND preferred_time != ''`)
	if err != nil {
		return nil, fmt.Errorf("list preferred times: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan preferred time: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
