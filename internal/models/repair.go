package models

import "time"

// Status tracks where a repair job sits in its lifecycle.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusOnHold     Status = "On Hold"
)

// Valid reports whether the status is one of the enumerated values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Priority ranks how urgently a repair job should be handled.
type Priority string

const (
	PriorityLow       Priority = "Low"
	PriorityMedium    Priority = "Medium"
	PriorityHigh      Priority = "High"
	PriorityEmergency Priority = "Emergency"
)

// Valid reports whether the priority is one of the enumerated values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

// DefaultRepairType backfills rows predating the repair_type column.
const DefaultRepairType = "General Maintenance"

// RepairJob is the canonical repair record as served over the API. The id
// is surfaced as a string and estimatedCost stays a pointer so an absent
// cost serialises as null, never zero.
type RepairJob struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CustomerName  string    `json:"customerName"`
	RepairType    string    `json:"repairType"`
	Priority      Priority  `json:"priority"`
	Status        Status    `json:"status"`
	EstimatedCost *float64  `json:"estimatedCost"`
	DateAdded     string    `json:"dateAdded"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
