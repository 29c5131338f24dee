package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mailmind/mailmind/internal/entity"
)

type postgresReminderRepository struct {
	db *sql.DB
}

func NewPostgresReminderRepository(db *sql.DB) ReminderRepository {
	return &postgresReminderRepository{db: db}
}

const reminderColumns = "id, email_id, due_at, message, created_at, active, snoozed_until"

func (r *postgresReminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (id, email_id, due_at, message, created_at, active, snoozed_until)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		reminder.ID, nullString(reminder.EmailID), reminder.DueAt, reminder.Message,
		reminder.CreatedAt, reminder.Active, reminder.SnoozedUntil,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (r *postgresReminderRepository) GetByID(ctx context.Context, id string) (*entity.Reminder, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
	return scanReminder(row)
}

func (r *postgresReminderRepository) List(ctx context.Context, filter ReminderFilter) ([]*entity.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders`
	var conditions []string
	var args []interface{}

	if filter.ActiveOnly {
		conditions = append(conditions, "active = true")
	}
	if filter.EmailID != "" {
		args = append(args, filter.EmailID)
		conditions = append(conditions, fmt.Sprintf("email_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY due_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

func (r *postgresReminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET email_id = $1, due_at = $2, message = $3, active = $4, snoozed_until = $5
		 WHERE id = $6`,
		nullString(reminder.EmailID), reminder.DueAt, reminder.Message,
		reminder.Active, reminder.SnoozedUntil, reminder.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrReminderNotFound
	}
	return nil
}

func (r *postgresReminderRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete reminder: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *postgresReminderRepository) DueBefore(ctx context.Context, t time.Time) ([]*entity.Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders
		 WHERE active = true AND COALESCE(snoozed_until, due_at) <= $1
		 ORDER BY COALESCE(snoozed_until, due_at) ASC`,
		t,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer rows.Close()

	return collectReminders(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReminder(row rowScanner) (*entity.Reminder, error) {
	reminder := &entity.Reminder{}
	var emailID sql.NullString
	var snoozedUntil sql.NullTime

	err := row.Scan(&reminder.ID, &emailID, &reminder.DueAt, &reminder.Message,
		&reminder.CreatedAt, &reminder.Active, &snoozedUntil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to scan reminder: %w", err)
	}

	reminder.EmailID = emailID.String
	if snoozedUntil.Valid {
		t := snoozedUntil.Time
		reminder.SnoozedUntil = &t
	}
	return reminder, nil
}

func collectReminders(rows *sql.Rows) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
