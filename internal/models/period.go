package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Period says when in the month an expense or income is due, for example
// "Beginning" or "End".
type Period struct {
	DefaultModel
	Name  string `json:"name" gorm:"uniqueIndex"`
	Color string `json:"color"`
}

func (p *Period) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)

	if p.Color == "" {
		p.Color = "#8b5cf6"
	}

	return nil
}

// BeforeDelete blocks deletion while the period is still referenced.
func (p *Period) BeforeDelete(tx *gorm.DB) error {
	var expenses int64
	err := tx.Model(&Expense{}).Where("period_id = ?", p.ID).Count(&expenses).Error
	if err != nil {
		return err
	}

	var incomes int64
	err = tx.Model(&Income{}).Where("period_id = ?", p.ID).Count(&incomes).Error
	if err != nil {
		return err
	}

	if expenses+incomes > 0 {
		return fmt.Errorf("%w by %d expense(s) and %d income(s)", ErrPeriodInUse, expenses, incomes)
	}

	return nil
}

// Periods returns all periods ordered by name.
func Periods(db *gorm.DB) ([]Period, error) {
	var periods []Period
	err := db.Order("name").Find(&periods).Error
	return periods, err
}
