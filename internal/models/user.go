package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleAgent    = "agent"
	RoleCustomer = "customer"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBlocked  = "blocked"
)

var (
	UserRoles    = []string{RoleAdmin, RoleStaff, RoleAgent, RoleCustomer}
	UserStatuses = []string{UserStatusActive, UserStatusInactive, UserStatusBlocked}
)

type CreateUserInput struct {
	ID       *string `json:"id"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
	Avatar   *string `json:"avatar"`
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Avatar   *string `json:"avatar"`
}

func (u UpdateUserInput) Empty() bool {
	return u.FullName == nil && u.Email == nil && u.Phone == nil &&
		u.Role == nil && u.Status == nil && u.Avatar == nil
}

// UserCounters are the denormalized relationship counts stored on a user.
type UserCounters struct {
	TotalAppointments int `json:"totalAppointments"`
	TotalPayments     int `json:"totalPayments"`
	TotalCalls        int `json:"totalCalls"`
}

// UserStats extends the counters with failure tallies.
type UserStats struct {
	UserCounters
	FailedCalls    int `json:"failedCalls"`
	FailedPayments int `json:"failedPayments"`
}

type UserView struct {
	ID                string     `json:"id"`
	FullName          string     `json:"fullName"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	Role              string     `json:"role"`
	Status            string     `json:"status"`
	Avatar            string     `json:"avatar"`
	TotalAppointments int        `json:"totalAppointments"`
	TotalPayments     int        `json:"totalPayments"`
	TotalCalls        int        `json:"totalCalls"`
	FailedCalls       int        `json:"failedCalls"`
	FailedPayments    int        `json:"failedPayments"`
	LastActivity      *time.Time `json:"lastActivity"`
	CreatedAt         *time.Time `json:"createdAt"`
}
