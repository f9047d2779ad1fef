package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/appz-budget/backend/internal/types"
	"gorm.io/gorm"
)

// Month is an accounting period container for expenses and incomes.
// Exactly one Month exists per (year, month) pair.
type Month struct {
	DefaultModel
	Year      int        `json:"year" gorm:"uniqueIndex:month_year_month"`
	Month     int        `json:"month" gorm:"uniqueIndex:month_year_month"` // 1-12
	Name      string     `json:"name"`                                      // e.g. "November 2024"
	StartDate types.Date `json:"start_date"`
	EndDate   types.Date `json:"end_date"`
	IsClosed  bool       `json:"is_closed"`
	ClosedAt  *time.Time `json:"closed_at"`
	ClosedBy  string     `json:"closed_by,omitempty"`
}

// Calendar returns the calendar month this Month represents.
func (m Month) Calendar() types.Month {
	return types.NewMonth(m.Year, time.Month(m.Month))
}

// BeforeSave derives the display name and the start and end dates from the
// year and month numbers.
func (m *Month) BeforeSave(_ *gorm.DB) error {
	if m.Month < 1 || m.Month > 12 {
		return ErrMonthNumberInvalid
	}

	calendar := m.Calendar()
	m.Name = calendar.Name()
	m.StartDate = calendar.FirstDay()
	m.EndDate = calendar.LastDay()

	return nil
}

// Gate returns an error rejecting the action when the month is closed.
func (m Month) Gate(action string) error {
	if m.IsClosed {
		return fmt.Errorf("cannot %s: month '%s' %w", action, m.Name, ErrMonthClosed)
	}

	return nil
}

// Close marks the month as closed, recording the closing time and user.
func (m *Month) Close(db *gorm.DB, actor string) error {
	if m.IsClosed {
		return fmt.Errorf("month '%s' %w", m.Name, ErrMonthAlreadyClosed)
	}

	now := time.Now().In(time.UTC)
	m.IsClosed = true
	m.ClosedAt = &now
	m.ClosedBy = actor
	m.SetActor(actor)

	return db.Save(m).Error
}

// Open reopens a closed month, clearing the closing time and user.
func (m *Month) Open(db *gorm.DB, actor string) error {
	if !m.IsClosed {
		return fmt.Errorf("month '%s' %w", m.Name, ErrMonthNotClosed)
	}

	m.IsClosed = false
	m.ClosedAt = nil
	m.ClosedBy = ""
	m.SetActor(actor)

	// Save skips zero values for non-pointer fields on some paths, use an
	// explicit update so that is_closed and closed_by are always written
	return db.Model(m).Select("IsClosed", "ClosedAt", "ClosedBy", "UpdatedBy", "Year", "Month", "Name", "StartDate", "EndDate").Updates(m).Error
}

// Months returns all months, most recent first.
func Months(db *gorm.DB) ([]Month, error) {
	var months []Month
	err := db.Order("year desc, month desc").Find(&months).Error
	return months, err
}

// MonthByDate returns the month a specific point in time falls into.
func MonthByDate(db *gorm.DB, t time.Time) (Month, error) {
	var month Month
	err := db.Where(&Month{Year: t.Year(), Month: int(t.Month())}).First(&month).Error
	return month, err
}

// CurrentMonth returns the month containing today. When it does not exist,
// the most recent month is returned instead.
func CurrentMonth(db *gorm.DB) (Month, error) {
	month, err := MonthByDate(db, time.Now())
	if err == nil {
		return month, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Month{}, err
	}

	err = db.Order("year desc, month desc").First(&month).Error
	return month, err
}

// NextMonth returns the month chronologically following m, creating it when
// it does not exist yet.
func (m Month) NextMonth(db *gorm.DB, actor string) (Month, error) {
	calendar := m.Calendar().Next()

	var next Month
	err := db.Where(&Month{Year: calendar.Year(), Month: calendar.Number()}).First(&next).Error
	if err == nil {
		return next, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Month{}, err
	}

	next = Month{Year: calendar.Year(), Month: calendar.Number()}
	next.SetActor(actor)
	err = db.Create(&next).Error
	return next, err
}

// Delete removes the month together with all expenses and incomes scoped to
// it.
func (m *Month) Delete(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("month_id = ?", m.ID).Delete(&Expense{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("month_id = ?", m.ID).Delete(&Income{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(m).Error
	})
}

// Clone copies the month's expenses and incomes into the chronologically
// next month, creating it when missing. Cloned expenses keep their budget
// and position, but start with zero cost and no purchases. Cloned incomes
// keep their budget and start with zero amount.
func (m Month) Clone(db *gorm.DB, actor string) (next Month, expenses, incomes int, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		next, err = m.NextMonth(tx, actor)
		if err != nil {
			return err
		}

		var sourceExpenses []Expense
		err = tx.Where("month_id = ?", m.ID).Find(&sourceExpenses).Error
		if err != nil {
			return err
		}

		for _, expense := range sourceExpenses {
			clone := Expense{
				Name:       expense.Name,
				CategoryID: expense.CategoryID,
				PeriodID:   expense.PeriodID,
				Budget:     expense.Budget,
				Notes:      expense.Notes,
				MonthID:    next.ID,
				Order:      expense.Order,
			}
			clone.SetActor(actor)

			err = tx.Create(&clone).Error
			if err != nil {
				return err
			}
			expenses++
		}

		var sourceIncomes []Income
		err = tx.Where("month_id = ?", m.ID).Find(&sourceIncomes).Error
		if err != nil {
			return err
		}

		for _, income := range sourceIncomes {
			clone := Income{
				IncomeTypeID: income.IncomeTypeID,
				PeriodID:     income.PeriodID,
				Budget:       income.Budget,
				MonthID:      next.ID,
			}
			clone.SetActor(actor)

			err = tx.Create(&clone).Error
			if err != nil {
				return err
			}
			incomes++
		}

		return nil
	})

	return
}
