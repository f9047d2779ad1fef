package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// IncomeType classifies incomes, for example "Salary" or "Dividends".
type IncomeType struct {
	DefaultModel
	Name  string `json:"name" gorm:"uniqueIndex"`
	Color string `json:"color"`
}

func (t *IncomeType) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)

	if t.Color == "" {
		t.Color = "#10b981"
	}

	return nil
}

// BeforeDelete blocks deletion while the income type is still referenced.
func (t *IncomeType) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Income{}).Where("income_type_id = ?", t.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w by %d income(s)", ErrIncomeTypeInUse, count)
	}

	return nil
}

// IncomeTypes returns all income types ordered by name.
func IncomeTypes(db *gorm.DB) ([]IncomeType, error) {
	var incomeTypes []IncomeType
	err := db.Order("name").Find(&incomeTypes).Error
	return incomeTypes, err
}
