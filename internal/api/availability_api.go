package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"logoped/internal/availability"
	"logoped/internal/metrics"
)

// MonthAvailabilityResponse is the response for GET /api/v1/availability.
type MonthAvailabilityResponse struct {
	Year           int                    `json:"year"`
	Month          int                    `json:"month"`
	FirstDayOffset int                    `json:"first_day_offset"` // Monday-first grid
	Days           []availability.DayInfo `json:"days"`
}

// DayAvailabilityResponse is the response for GET /api/v1/availability/day.
type DayAvailabilityResponse struct {
	Date       string                 `json:"date"`     // YYYY-MM-DD
	DateKey    string                 `json:"date_key"` // DD.MM.YYYY, the committed-value prefix
	Status     availability.DayStatus `json:"status"`
	Selectable bool                   `json:"selectable"`
	AllSlots   []string               `json:"all_slots"`
	Booked     []string               `json:"booked"`
	Available  []string               `json:"available"`
}

// handleAvailabilityMonth classifies every day of the requested month.
// GET /api/v1/availability?year=2025&month=3
func (s *HTTPServer) handleAvailabilityMonth(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_month")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month; expected 1-12")
		return
	}

	cacheKey := fmt.Sprintf("availability:%04d-%02d", year, month)
	var resp MonthAvailabilityResponse
	if s.readCache(r.Context(), cacheKey, &resp) {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	state, err := s.loadEngineState(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("load engine state")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := s.now()
	resp = MonthAvailabilityResponse{
		Year:           year,
		Month:          month,
		FirstDayOffset: availability.FirstDayOffset(year, time.Month(month), now.Location()),
		Days:           availability.MonthStatuses(year, time.Month(month), now, state.schedule, state.booked, s.opts.HorizonDays),
	}

	s.writeCache(r.Context(), cacheKey, resp)
	writeJSON(w, http.StatusOK, resp)
}

// handleAvailabilityDay returns the slot breakdown for one date.
// GET /api/v1/availability/day?date=2025-03-15
func (s *HTTPServer) handleAvailabilityDay(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_day")

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	state, err := s.loadEngineState(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("load engine state")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := s.now()
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	dateKey := availability.DateKey(date)
	status := availability.ClassifyDay(date, now, state.schedule, state.booked, s.opts.HorizonDays)

	resp := DayAvailabilityResponse{
		Date:       date.Format("2006-01-02"),
		DateKey:    dateKey,
		Status:     status,
		Selectable: status.Selectable(),
		Booked:     state.booked[dateKey],
	}

	if rule, ok := state.schedule.RuleFor(int(date.Weekday())); ok && rule.IsWorkingDay {
		resp.AllSlots = availability.GenerateSlots(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes)
		if status.Selectable() {
			resp.Available = availability.AvailableSlots(rule, state.booked[dateKey])
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSchedule returns the weekly schedule rows ordered by weekday.
// GET /api/v1/schedule
func (s *HTTPServer) handleSchedule(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("schedule")

	rules, err := s.db.ListSchedule(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list schedule")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": rules})
}
