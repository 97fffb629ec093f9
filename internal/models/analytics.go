package models

import "time"

// HostelStats summarises open work for a warden's block or the whole hostel.
type HostelStats struct {
	Students   int `db:"students" json:"students"`
	Complaints int `db:"complaints" json:"complaints"`
	Leaves     int `db:"leaves" json:"leaves"`
}

// BlockCount is the number of assigned students per block.
type BlockCount struct {
	BlockID   string `db:"block_id" json:"blockId"`
	BlockName string `db:"block_name" json:"blockName"`
	Students  int    `db:"students" json:"students"`
}

// MonthlyPayment totals paid amounts per calendar month.
type MonthlyPayment struct {
	Month string `db:"month" json:"month"`
	Total int64  `db:"total" json:"total"`
	Count int    `db:"count" json:"count"`
}

// StatusCount counts records per status.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// LeaveTrend counts leave requests per month and status.
type LeaveTrend struct {
	Month  string `db:"month" json:"month"`
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// HostelAnalytics is the admin dashboard payload.
type HostelAnalytics struct {
	StudentCountByBlock []BlockCount     `json:"studentCountByBlock"`
	MonthlyPayments     []MonthlyPayment `json:"monthlyPayments"`
	ComplaintSummary    []StatusCount    `json:"complaintSummary"`
	LeaveTrends         []LeaveTrend     `json:"leaveTrends"`
	GeneratedAt         time.Time        `json:"generatedAt"`
}
