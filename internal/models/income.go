package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is an expected or received income within a month.
type Income struct {
	DefaultModel
	IncomeTypeID uint            `json:"income_type_id" gorm:"index"`
	IncomeType   IncomeType      `json:"-"`
	PeriodID     uint            `json:"period_id" gorm:"index"`
	Period       Period          `json:"-"`
	Budget       decimal.Decimal `json:"budget" gorm:"type:DECIMAL(20,8)"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	MonthID      uint            `json:"month_id" gorm:"index"`
	Month        Month           `json:"-"`
}

func (i *Income) BeforeCreate(tx *gorm.DB) error {
	return i.checkIntegrity(tx)
}

func (i *Income) BeforeUpdate(tx *gorm.DB) error {
	return i.checkIntegrity(tx)
}

// checkIntegrity verifies that all referenced resources exist.
func (i *Income) checkIntegrity(tx *gorm.DB) error {
	err := tx.First(&Month{}, i.MonthID).Error
	if err != nil {
		return referenceError(err, "month", i.MonthID)
	}

	err = tx.First(&IncomeType{}, i.IncomeTypeID).Error
	if err != nil {
		return referenceError(err, "income type", i.IncomeTypeID)
	}

	err = tx.First(&Period{}, i.PeriodID).Error
	if err != nil {
		return referenceError(err, "period", i.PeriodID)
	}

	return nil
}

// IncomeFilter restricts the incomes returned by Incomes.
type IncomeFilter struct {
	Period       string // name of the period
	IncomeTypeID uint
	MonthID      uint
}

// Incomes returns all incomes matching the filter, ordered by income type
// name. The income type and period associations are loaded for display.
func Incomes(db *gorm.DB, filter IncomeFilter) ([]Income, error) {
	query := db.Joins("IncomeType").Joins("Period")

	if filter.Period != "" {
		query = query.Where(`"Period"."name" = ?`, filter.Period)
	}

	if filter.IncomeTypeID != 0 {
		query = query.Where("incomes.income_type_id = ?", filter.IncomeTypeID)
	}

	if filter.MonthID != 0 {
		query = query.Where("incomes.month_id = ?", filter.MonthID)
	}

	var incomes []Income
	err := query.Order(`"IncomeType"."name"`).Find(&incomes).Error
	return incomes, err
}
