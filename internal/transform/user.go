package transform

import (
	"strings"
	"time"

	"opsdash/internal/models"
)

var UserAliases = Aliases{
	"id":                {"id"},
	"fullName":          {"full_name", "fullName", "fullname", "name"},
	"email":             {"email"},
	"phone":             {"phone"},
	"role":              {"role"},
	"status":            {"status"},
	"avatar":            {"avatar", "avatar_url", "avatarUrl"},
	"totalAppointments": {"total_appointments", "totalAppointments", "totalappointments"},
	"totalPayments":     {"total_payments", "totalPayments", "totalpayments"},
	"totalCalls":        {"total_calls", "totalCalls", "totalcalls"},
	"failedCalls":       {"failed_calls", "failedCalls", "failedcalls"},
	"failedPayments":    {"failed_payments", "failedPayments", "failedpayments"},
	"lastActivity":      {"last_activity", "lastActivity", "lastactivity", "updated_at", "updatedAt", "created_at", "createdAt"},
	"createdAt":         {"created_at", "createdAt", "createdat"},
}

// User maps a stored user row to its external shape. stats, when given,
// fills counters the row leaves at zero. publicBaseURL absolutizes avatars
// stored as /uploads paths.
func User(rec models.Record, stats *models.UserStats, publicBaseURL string) models.UserView {
	a := UserAliases
	v := models.UserView{
		ID:       a.textOr(rec, "id", ""),
		FullName: a.textOr(rec, "fullName", "Unknown User"),
		Email:    a.textOr(rec, "email", ""),
		Phone:    a.textOr(rec, "phone", ""),
		Role:     normalizeEnum(a.textOr(rec, "role", ""), models.RoleCustomer, models.UserRoles...),
		Status:   normalizeEnum(a.textOr(rec, "status", ""), models.UserStatusActive, models.UserStatuses...),
	}

	var fallback models.UserStats
	if stats != nil {
		fallback = *stats
	}
	v.TotalAppointments = counter(a, rec, "totalAppointments", fallback.TotalAppointments)
	v.TotalPayments = counter(a, rec, "totalPayments", fallback.TotalPayments)
	v.TotalCalls = counter(a, rec, "totalCalls", fallback.TotalCalls)
	v.FailedCalls = counter(a, rec, "failedCalls", fallback.FailedCalls)
	v.FailedPayments = counter(a, rec, "failedPayments", fallback.FailedPayments)

	if t, ok := a.timestamp(rec, "lastActivity"); ok {
		v.LastActivity = timePtr(t)
	}
	if t, ok := a.timestamp(rec, "createdAt"); ok {
		v.CreatedAt = timePtr(t)
	}
	v.Avatar = resolveAvatar(a.textOr(rec, "avatar", ""), v.FullName, publicBaseURL)
	return v
}

func Users(recs []models.Record, publicBaseURL string) []models.UserView {
	out := make([]models.UserView, len(recs))
	for i, rec := range recs {
		out[i] = User(rec, nil, publicBaseURL)
	}
	return out
}

func counter(a Aliases, rec models.Record, field string, fallback int) int {
	if n, ok := a.integer(rec, field); ok && n > 0 {
		return n
	}
	if fallback > 0 {
		return fallback
	}
	return 0
}

func resolveAvatar(avatar, name, publicBaseURL string) string {
	avatar = strings.TrimSpace(avatar)
	switch {
	case strings.HasPrefix(avatar, "http://"), strings.HasPrefix(avatar, "https://"):
		return avatar
	case strings.HasPrefix(avatar, "/uploads"):
		return strings.TrimSuffix(publicBaseURL, "/") + avatar
	default:
		return placeholderAvatar(name)
	}
}

func timePtr(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}
