// Package settings provides per-workspace tariff and policy values.
package settings

import "fmt"

// Settings holds the tariffs, due-day policy and bank display fields of
// one workspace. It is read-only input to invoice generation.
type Settings struct {
	ElectricityPrice            int64  `json:"electricityPrice"` // đ per kWh
	WaterAdultPrice             int64  `json:"waterAdultPrice"`  // đ per adult per month
	WaterChildPrice             int64  `json:"waterChildPrice"`  // đ per child per month
	LivingFeePerAdult           int64  `json:"livingFeePerAdult"`
	DefaultDueDay               int    `json:"defaultDueDay"` // day of month, 1-28
	AllowInvoiceWithoutElectric bool   `json:"allowInvoiceWithoutElectric"`
	BankName                    string `json:"bankName"`
	BankAccount                 string `json:"bankAccount"`
	BankOwner                   string `json:"bankOwner"`
}

// Defaults returns the settings a fresh workspace starts with.
func Defaults() Settings {
	return Settings{
		ElectricityPrice:            3500,
		WaterAdultPrice:             100000,
		WaterChildPrice:             50000,
		LivingFeePerAdult:           50000,
		DefaultDueDay:               5,
		AllowInvoiceWithoutElectric: false,
	}
}

// Validate checks that the settings can be used for invoice generation.
func (s Settings) Validate() error {
	if s.ElectricityPrice < 0 || s.WaterAdultPrice < 0 || s.WaterChildPrice < 0 || s.LivingFeePerAdult < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	if s.DefaultDueDay < 1 || s.DefaultDueDay > 28 {
		return fmt.Errorf("default due day must be between 1 and 28, got %d", s.DefaultDueDay)
	}
	return nil
}

// DueDate derives an invoice due date from a "YYYY-MM" month key.
func (s Settings) DueDate(month string) string {
	return fmt.Sprintf("%s-%02d", month, s.DefaultDueDay)
}
