// Package unit provides the rental unit value type.
package unit

// Status represents the occupancy state of a unit.
type Status string

const (
	StatusVacant      Status = "Vacant"
	StatusOccupied    Status = "Occupied"
	StatusMaintenance Status = "Maintenance"
)

// Unit represents one rentable room or apartment (value type).
type Unit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BaseRent int64  `json:"baseRent"` // đ per month, seeds new leases
	Status   Status `json:"status"`
}
