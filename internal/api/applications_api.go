package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"logoped/internal/availability"
	"logoped/internal/database"
	"logoped/internal/export"
	"logoped/internal/metrics"
	"logoped/internal/models"
)

// CreateApplicationRequest is the request body for POST /api/v1/applications.
type CreateApplicationRequest struct {
	ParentName    string `json:"parent_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	ChildAge      string `json:"child_age,omitempty"`
	Problem       string `json:"problem"`
	PreferredTime string `json:"preferred_time,omitempty"` // "DD.MM.YYYY HH:MM–HH:MM"
	Comment       string `json:"comment,omitempty"`
}

// handleCreateApplication accepts a public booking application.
// POST /api/v1/applications
func (s *HTTPServer) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("create_application")

	var req CreateApplicationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.ParentName = strings.TrimSpace(req.ParentName)
	req.Problem = strings.TrimSpace(req.Problem)
	if req.ParentName == "" || req.Phone == "" || req.Problem == "" {
		writeError(w, http.StatusBadRequest, "parent_name, phone and problem are required")
		return
	}

	phone, ok := normalizePhone(req.Phone)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid phone number")
		return
	}

	app, err := s.db.CreateApplication(r.Context(), &models.Application{
		ParentName:    req.ParentName,
		Phone:         phone,
		Email:         strings.TrimSpace(req.Email),
		ChildAge:      strings.TrimSpace(req.ChildAge),
		Problem:       req.Problem,
		PreferredTime: strings.TrimSpace(req.PreferredTime),
		Comment:       strings.TrimSpace(req.Comment),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("create application")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.IncApplicationCreated()
	s.bustAvailabilityFor(r, app.PreferredTime)

	s.logger.Info().Str("id", app.ID).Str("preferred_time", app.PreferredTime).Msg("application created")
	writeJSON(w, http.StatusCreated, app)
}

// bustAvailabilityFor drops the cached month view touched by a new booking.
// Occupancy changed, so the cached statuses are stale.
func (s *HTTPServer) bustAvailabilityFor(r *http.Request, preferredTime string) {
	dateKey, _, ok := availability.ParseCommitted(preferredTime)
	if !ok {
		return
	}
	date, err := time.Parse(availability.DateKeyLayout, dateKey)
	if err != nil {
		return
	}
	s.deleteCache(r.Context(), fmt.Sprintf("availability:%04d-%02d", date.Year(), int(date.Month())))
}

// handleListApplications returns all applications, newest first.
// GET /api/v1/admin/applications
func (s *HTTPServer) handleListApplications(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_list_applications")

	apps, err := s.db.ListApplications(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list applications")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps, "total": len(apps)})
}

// handleUpdateStatus moves an application to a new status.
// POST /api/v1/admin/applications/{id}/status
func (s *HTTPServer) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_update_status")

	var req struct {
		Status models.AppStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id := r.PathValue("id")
	err := s.db.UpdateApplicationStatus(r.Context(), id, req.Status)
	switch {
	case errors.Is(err, database.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "application not found")
		return
	case err != nil:
		s.logger.Error().Err(err).Str("id", id).Msg("update status")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.IncStatusChanged(string(req.Status))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleUpdateComment sets the admin comment on an application.
// POST /api/v1/admin/applications/{id}/comment
func (s *HTTPServer) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_update_comment")

	var req struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id := r.PathValue("id")
	err := s.db.UpdateApplicationComment(r.Context(), id, req.Comment)
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "application not found")
		return
	case err != nil:
		s.logger.Error().Err(err).Str("id", id).Msg("update comment")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleExportApplications streams all applications as an XLSX file.
// GET /api/v1/admin/applications/export
func (s *HTTPServer) handleExportApplications(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_export_applications")

	apps, err := s.db.ListApplications(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list applications for export")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	filename := fmt.Sprintf("applications_%s.xlsx", s.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteApplicationsXLSX(w, apps); err != nil {
		s.logger.Error().Err(err).Msg("write xlsx export")
	}
}

// normalizePhone reduces free-form input to the canonical +7XXXXXXXXXX form.
// Accepts 10 digits, or 11 digits with a leading 7 or 8.
func normalizePhone(raw string) (string, bool) {
	var digits []rune
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 11 && (digits[0] == '7' || digits[0] == '8') {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false
	}
	return "+7" + string(digits), true
}
