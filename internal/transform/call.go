package transform

import (
	"strings"
	"time"

	"opsdash/internal/models"
)

var CallAliases = Aliases{
	"id":              {"id"},
	"userId":          {"user_id", "userId", "userid"},
	"callerName":      {"caller_name", "callerName", "callername", "user_name"},
	"phoneNumber":     {"phone_number", "phoneNumber", "phonenumber", "user_phone"},
	"callType":        {"call_type", "callType", "calltype"},
	"status":          {"call_status", "callStatus", "callstatus", "status"},
	"duration":        {"duration"},
	"durationSeconds": {"call_duration_seconds", "callDurationSeconds", "calldurationseconds"},
	"startTime":       {"call_start_time", "callStartTime", "callstarttime"},
	"endTime":         {"call_end_time", "callEndTime", "callendtime"},
	"timestamp":       {"call_timestamp", "callTimestamp", "calltimestamp", "call_start_time", "callStartTime", "timestamp", "created_at", "createdAt"},
	"purpose":         {"purpose"},
	"notes":           {"notes"},
}

// callStatus folds the stored status into the client vocabulary. Anything
// unrecognized, including "missed", is reported as completed.
func callStatus(raw string) string {
	switch s := strings.ToLower(strings.TrimSpace(raw)); s {
	case models.CallCompleted, models.CallBounced, models.CallFailed, models.CallActive:
		return s
	default:
		return models.CallCompleted
	}
}

// callDuration resolves the MM:SS duration: stored text first, then stored
// seconds, then end minus start.
func callDuration(rec models.Record) (string, bool) {
	a := CallAliases
	if d, ok := a.text(rec, "duration"); ok {
		return d, true
	}
	if secs, ok := a.integer(rec, "durationSeconds"); ok {
		return FormatDuration(secs), true
	}
	start, okStart := a.timestamp(rec, "startTime")
	end, okEnd := a.timestamp(rec, "endTime")
	if okStart && okEnd && !end.Before(start) {
		return FormatDuration(int(end.Sub(start).Seconds())), true
	}
	return "", false
}

// Call maps a stored call row to its external shape. In-progress calls carry
// no duration.
func Call(rec models.Record) models.CallView {
	a := CallAliases
	v := models.CallView{
		ID:          a.textOr(rec, "id", ""),
		UserID:      a.optionalText(rec, "userId"),
		CallerName:  a.textOr(rec, "callerName", "Unknown"),
		PhoneNumber: a.textOr(rec, "phoneNumber", ""),
		CallType:    normalizeEnum(a.textOr(rec, "callType", ""), models.CallIncoming, models.CallTypes...),
		Status:      callStatus(a.textOr(rec, "status", "")),
		Purpose:     a.textOr(rec, "purpose", "Unknown"),
		Notes:       a.textOr(rec, "notes", ""),
	}
	if ts, ok := a.timestamp(rec, "timestamp"); ok {
		v.Timestamp = FormatTimestamp(ts)
	}
	if v.Status != models.CallActive {
		d, ok := callDuration(rec)
		if !ok {
			d = DefaultDuration
		}
		v.Duration = &d
	}
	return v
}

func Calls(recs []models.Record) []models.CallView {
	out := make([]models.CallView, len(recs))
	for i, rec := range recs {
		out[i] = Call(rec)
	}
	return out
}

// LiveCall maps a recent call row to the live panel shape.
func LiveCall(rec models.Record) models.LiveCallView {
	a := CallAliases
	v := models.LiveCallView{
		ID:         a.textOr(rec, "id", ""),
		CallerName: a.textOr(rec, "callerName", "Unknown"),
		Duration:   DefaultDuration,
		Status:     models.LiveCallOnHold,
		Purpose:    a.textOr(rec, "purpose", "Unknown"),
	}
	switch strings.ToLower(a.textOr(rec, "status", "")) {
	case models.CallActive, models.CallCompleted:
		v.Status = models.LiveCallActive
	}
	if d, ok := a.text(rec, "duration"); ok {
		v.Duration = d
	} else if secs, ok := a.integer(rec, "durationSeconds"); ok {
		v.Duration = FormatDuration(secs)
	}
	return v
}

func LiveCalls(recs []models.Record) []models.LiveCallView {
	out := make([]models.LiveCallView, len(recs))
	for i, rec := range recs {
		out[i] = LiveCall(rec)
	}
	return out
}

// CallStartTime returns when the call started, if the row records it.
func CallStartTime(rec models.Record) (time.Time, bool) {
	return CallAliases.timestamp(rec, "startTime")
}
