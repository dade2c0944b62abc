// Package tenant provides the tenant value type and credit-balance rules.
package tenant

// Tenant represents a renter (value type).
//
// CreditBalance stores pre-paid or overpaid funds in đ. It is only
// incremented by payment surplus or explicit top-ups and decremented by
// applying credit to an invoice; it must never go negative.
type Tenant struct {
	ID               string   `json:"id"`
	FullName         string   `json:"fullName"`
	Phone            string   `json:"phone"`
	EmergencyContact string   `json:"emergencyContact"`
	IDNumber         string   `json:"idNumber"`
	Notes            string   `json:"notes"`
	VehiclePlates    []string `json:"vehiclePlates"`
	CreditBalance    int64    `json:"creditBalance"`
}
