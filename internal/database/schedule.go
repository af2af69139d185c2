package database

import (
	"context"
	"fmt"
	"time"

	"logoped/internal/models"
)

// DefaultScheduleConfig provides default values for a fresh schedule.
// Weekdays use the stored numbering: 0 = Sunday .. 6 = Saturday.
var DefaultScheduleConfig = struct {
	StartTime    string
	EndTime      string
	SlotDuration int
}{
	StartTime:    "09:00",
	EndTime:      "18:00",
	SlotDuration: 45,
}

// EnsureDefaultSchedule creates the 7 weekday rows if they are missing:
// Monday through Friday working, the weekend off.
func (db *DB) EnsureDefaultSchedule(ctx context.Context) error {
	for weekday := 0; weekday <= 6; weekday++ {
		exists, err := db.scheduleRowExists(ctx, weekday)
		if err != nil {
			return fmt.Errorf("check schedule row: %w", err)
		}
		if exists {
			continue
		}

		working := weekday >= 1 && weekday <= 5
		_, err = db.ExecContext(ctx, `
			INSERT INTO work_schedule (weekday, start_time, end_time, is_working_day, slot_duration_minutes)
			VALUES (?, ?, ?, ?, ?)`,
			weekday, DefaultScheduleConfig.StartTime, DefaultScheduleConfig.EndTime,
			working, DefaultScheduleConfig.SlotDuration)
		if err != nil {
			return fmt.Errorf("create schedule row for weekday %d: %w", weekday, err)
		}
	}
	return nil
}

func (db *DB) scheduleRowExists(ctx context.Context, weekday int) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM work_schedule WHERE weekday = ?`, weekday).Scan(&count)
	return count > 0, err
}

// ListSchedule returns all schedule rows ordered by weekday.
func (db *DB) ListSchedule(ctx context.Context) ([]models.ScheduleRule, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, weekday, start_time, end_time, is_working_day, slot_duration_minutes, created_at, updated_at
		FROM work_schedule
		ORDER BY weekday`)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	defer rows.Close()

	var rules []models.ScheduleRule
	for rows.Next() {
		var r models.ScheduleRule
		if err := rows.Scan(&r.ID, &r.Weekday, &r.StartTime, &r.EndTime,
			&r.IsWorkingDay, &r.SlotDurationMinutes, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// UpsertScheduleRule creates or replaces the rule for one weekday.
func (db *DB) UpsertScheduleRule(ctx context.Context, rule models.ScheduleRule) error {
	if rule.Weekday < 0 || rule.Weekday > 6 {
		return fmt.Errorf("weekday %d out of range", rule.Weekday)
	}
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO work_schedule (weekday, start_time, end_time, is_working_day, slot_duration_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(weekday) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			is_working_day = excluded.is_working_day,
			slot_duration_minutes = excluded.slot_duration_minutes,
			updated_at = excluded.updated_at`,
		rule.Weekday, rule.StartTime, rule.EndTime, rule.IsWorkingDay,
		rule.SlotDurationMinutes, now, now)
	if err != nil {
		return fmt.Errorf("upsert schedule rule: %w", err)
	}
	return nil
}
