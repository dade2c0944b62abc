// Package maintenance provides repair ticket value types.
package maintenance

// Priority of a ticket.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status of a ticket.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// Ticket represents one maintenance request for a unit (value type).
type Ticket struct {
	ID          string   `json:"id"`
	UnitID      string   `json:"unitId"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	SLADueDate  string   `json:"slaDueDate"` // YYYY-MM-DD
	RepairCost  int64    `json:"repairCost"`
}

// IsOpen reports whether the ticket still needs work.
func (t Ticket) IsOpen() bool {
	return t.Status != StatusCompleted
}
