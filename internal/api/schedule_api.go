package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"logoped/internal/metrics"
	"logoped/internal/models"
)

// ScheduleRuleUpdate is one row of the admin schedule update.
type ScheduleRuleUpdate struct {
	Weekday             int    `json:"weekday"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	IsWorkingDay        bool   `json:"is_working_day"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

const (
	minSlotDuration = 15
	maxSlotDuration = 120
)

// handleUpdateSchedule replaces the weekly schedule in bulk.
// PUT /api/v1/admin/schedule
func (s *HTTPServer) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_update_schedule")

	var req struct {
		Schedule []ScheduleRuleUpdate `json:"schedule"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Schedule) == 0 {
		writeError(w, http.StatusBadRequest, "schedule rows are required")
		return
	}

	for _, row := range req.Schedule {
		if row.Weekday < 0 || row.Weekday > 6 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("weekday %d out of range", row.Weekday))
			return
		}
		duration := row.SlotDurationMinutes
		if duration < minSlotDuration || duration > maxSlotDuration {
			duration = 45
		}

		err := s.db.UpsertScheduleRule(r.Context(), models.ScheduleRule{
			Weekday:             row.Weekday,
			StartTime:           row.StartTime,
			EndTime:             row.EndTime,
			IsWorkingDay:        row.IsWorkingDay,
			SlotDurationMinutes: duration,
		})
		if err != nil {
			s.logger.Error().Err(err).Int("weekday", row.Weekday).Msg("upsert schedule rule")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	// Schedule changes invalidate every cached month in the horizon.
	s.bustAllAvailability(r)

	rules, err := s.db.ListSchedule(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list schedule after update")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": rules})
}

func (s *HTTPServer) bustAllAvailability(r *http.Request) {
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	keys := make([]string, 0, 3)
	for i := 0; i <= 2; i++ {
		m := first.AddDate(0, i, 0)
		keys = append(keys, fmt.Sprintf("availability:%04d-%02d", m.Year(), int(m.Month())))
	}
	s.deleteCache(r.Context(), keys...)
}
