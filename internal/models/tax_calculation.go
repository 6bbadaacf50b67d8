package models

import "gorm.io/datatypes"

// TaxCalculation is schema-only for now: the calculator endpoint is stateless
// and nothing in the core writes here yet.
type TaxCalculation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	TaxYear       string         `gorm:"not null;size:10" json:"tax_year"`
	IncomeData    datatypes.JSON `gorm:"type:jsonb" json:"income_data"`
	CalculatedTax datatypes.JSON `gorm:"type:jsonb" json:"calculated_tax"`
}

func (TaxCalculation) TableName() string {
	return "tax_calculations"
}
