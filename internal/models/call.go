package models

const (
	CallCompleted = "completed"
	CallMissed    = "missed"
	CallBounced   = "bounced"
	CallFailed    = "failed"
	CallActive    = "active"

	CallIncoming = "incoming"
	CallOutgoing = "outgoing"

	LiveCallActive = "active"
	LiveCallOnHold = "on-hold"
)

var (
	CallStatuses = []string{CallCompleted, CallMissed, CallBounced, CallFailed, CallActive}
	CallTypes    = []string{CallIncoming, CallOutgoing}
)

type CreateCallInput struct {
	ID          *string `json:"id"`
	UserID      *string `json:"userId"`
	CallerName  string  `json:"callerName"`
	PhoneNumber string  `json:"phoneNumber"`
	CallType    string  `json:"callType"`
	Status      string  `json:"status"`
	Duration    *string `json:"duration"`
	Timestamp   *string `json:"timestamp"`
	Purpose     *string `json:"purpose"`
	Notes       *string `json:"notes"`
}

type UpdateCallInput struct {
	Status   *string `json:"status"`
	Duration *string `json:"duration"`
	Purpose  *string `json:"purpose"`
	Notes    *string `json:"notes"`
}

func (u UpdateCallInput) Empty() bool {
	return u.Status == nil && u.Duration == nil && u.Purpose == nil && u.Notes == nil
}

type CallView struct {
	ID          string  `json:"id"`
	UserID      *string `json:"userId"`
	CallerName  string  `json:"callerName"`
	PhoneNumber string  `json:"phoneNumber"`
	CallType    string  `json:"callType"`
	Status      string  `json:"status"`
	Duration    *string `json:"duration"` // nil while the call is in progress
	Timestamp   string  `json:"timestamp"`
	Purpose     string  `json:"purpose"`
	Notes       string  `json:"notes"`
}

type LiveCallView struct {
	ID         string `json:"id"`
	CallerName string `json:"callerName"`
	Duration   string `json:"duration"`
	Status     string `json:"status"`
	Purpose    string `json:"purpose"`
}
