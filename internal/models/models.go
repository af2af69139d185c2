package models

import "time"

// AppStatus is the processing state of an application.
type AppStatus string

const (
	StatusNew        AppStatus = "new"
	StatusInProgress AppStatus = "in_progress"
	StatusCompleted  AppStatus = "completed"
	StatusRejected   AppStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s AppStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Application is a booking request left through the public form.
type Application struct {
	ID            string    `json:"id"`
	ParentName    string    `json:"parent_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	ChildAge      string    `json:"child_age,omitempty"`
	Problem       string    `json:"problem"`
	PreferredTime string    `json:"preferred_time,omitempty"` // "DD.MM.YYYY HH:MM–HH:MM"
	Comment       string    `json:"comment,omitempty"`
	AdminComment  string    `json:"admin_comment,omitempty"`
	Status        AppStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ScheduleRule is the recurring working-hours configuration for one weekday.
// Weekday uses the stored numbering: 0 = Sunday .. 6 = Saturday.
type ScheduleRule struct {
	ID                  int64     `json:"id"`
	Weekday             int       `json:"weekday"`
	StartTime           string    `json:"start_time"` // "09:00"
	EndTime             string    `json:"end_time"`   // "18:00"
	IsWorkingDay        bool      `json:"is_working_day"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NotificationChannel identifies a stored notification configuration.
type NotificationChannel string

const (
	ChannelTelegram NotificationChannel = "telegram"
	ChannelMax      NotificationChannel = "max"
	ChannelEmail    NotificationChannel = "email"
)

// Valid reports whether c is one of the known channels.
func (c NotificationChannel) Valid() bool {
	switch c {
	case ChannelTelegram, ChannelMax, ChannelEmail:
		return true
	}
	return false
}

// NotificationSettings holds per-channel notification configuration.
// Delivery is not wired up; these are stored for the admin surface only.
type NotificationSettings struct {
	Channel   NotificationChannel `json:"channel"`
	Enabled   bool                `json:"enabled"`
	Token     string              `json:"token,omitempty"`
	ChatID    string              `json:"chat_id,omitempty"`
	Host      string              `json:"host,omitempty"`
	Port      int                 `json:"port,omitempty"`
	Username  string              `json:"username,omitempty"`
	Password  string              `json:"password,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
}
