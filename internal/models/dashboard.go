package models

import "time"

type DashboardSummary struct {
	TodayAppointments     int       `json:"todayAppointments"`
	ConfirmedToday        int       `json:"confirmedTodayAppointments"`
	CompletedAppointments int       `json:"completedAppointments"`
	PendingPayments       int       `json:"pendingPayments"`
	PendingPaymentsAmount float64   `json:"pendingPaymentsAmount"`
	TotalRevenue          float64   `json:"totalRevenue"`
	TotalCalls            int       `json:"totalCalls"`
	CompletedCalls        int       `json:"completedCalls"`
	ActiveCalls           int       `json:"activeCalls"`
	GeneratedAt           time.Time `json:"generatedAt"`
}

const (
	AlertCritical      = "critical"
	AlertMissedCall    = "missed-call"
	AlertFailedPayment = "failed-payment"
)

type Alert struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Category  string     `json:"category"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp"`
}

type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}
