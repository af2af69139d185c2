package api

import (
	"encoding/json"
	"net/http"

	"logoped/internal/metrics"
	"logoped/internal/models"
)

// handleGetSettings returns stored notification settings for a channel.
// GET /api/v1/admin/settings/{channel}
func (s *HTTPServer) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_get_settings")

	channel := models.NotificationChannel(r.PathValue("channel"))
	if !channel.Valid() {
		writeError(w, http.StatusBadRequest, "unknown channel; expected telegram, max or email")
		return
	}

	settings, err := s.db.GetNotificationSettings(r.Context(), channel)
	if err != nil {
		s.logger.Error().Err(err).Str("channel", string(channel)).Msg("get notification settings")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings stores notification settings for a channel. Delivery
// over these channels is not implemented; the values are configuration only.
// PUT /api/v1/admin/settings/{channel}
func (s *HTTPServer) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_update_settings")

	channel := models.NotificationChannel(r.PathValue("channel"))
	if !channel.Valid() {
		writeError(w, http.StatusBadRequest, "unknown channel; expected telegram, max or email")
		return
	}

	var settings models.NotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	settings.Channel = channel

	if err := s.db.UpsertNotificationSettings(r.Context(), &settings); err != nil {
		s.logger.Error().Err(err).Str("channel", string(channel)).Msg("upsert notification settings")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
