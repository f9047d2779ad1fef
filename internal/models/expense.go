package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/appz-budget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Purchase is a line item within an expense. The amounts of all purchases of
// an expense sum to its cost.
type Purchase struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Date   types.Date      `json:"date"`
}

// PurchaseList stores the purchases of an expense as a JSON document.
type PurchaseList []Purchase

// Sum returns the sum of all purchase amounts.
func (l PurchaseList) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, purchase := range l {
		sum = sum.Add(purchase.Amount)
	}

	return sum
}

// Value returns the value for the SQL driver to write to the database.
func (l PurchaseList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}

	return json.Marshal(l)
}

// Scan reads the value from the database.
func (l *PurchaseList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PurchaseList", value)
	}

	return json.Unmarshal(data, l)
}

// GormDataType defines the data type used by gorm for the type.
func (PurchaseList) GormDataType() string {
	return "JSON"
}

// Expense is a budgeted cost within a month. It references its category and
// period by id, the display names are resolved on read.
type Expense struct {
	DefaultModel
	Name        string          `json:"expense_name" gorm:"index"`
	CategoryID  uint            `json:"category_id" gorm:"index"`
	Category    Category        `json:"-"`
	PeriodID    uint            `json:"period_id" gorm:"index"`
	Period      Period          `json:"-"`
	Budget      decimal.Decimal `json:"budget" gorm:"type:DECIMAL(20,8)"`
	Cost        decimal.Decimal `json:"cost" gorm:"type:DECIMAL(20,8)"`
	Notes       string          `json:"notes,omitempty"`
	MonthID     uint            `json:"month_id" gorm:"index"`
	Month       Month           `json:"-"`
	Purchases   PurchaseList    `json:"purchases,omitempty"`
	Order       int             `json:"order" gorm:"column:sort_order"`
	ExpenseDate types.Date      `json:"expense_date"`
}

// BeforeSave normalizes the expense. Non-empty purchases are authoritative
// for the cost.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Notes = strings.TrimSpace(e.Notes)

	if len(e.Purchases) > 0 {
		e.Cost = e.Purchases.Sum()
	}

	if e.ExpenseDate.IsZero() {
		e.ExpenseDate = types.Today()
	}

	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	return e.checkIntegrity(tx)
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	return e.checkIntegrity(tx)
}

// checkIntegrity verifies that all referenced resources exist.
func (e *Expense) checkIntegrity(tx *gorm.DB) error {
	err := tx.First(&Month{}, e.MonthID).Error
	if err != nil {
		return referenceError(err, "month", e.MonthID)
	}

	err = tx.First(&Category{}, e.CategoryID).Error
	if err != nil {
		return referenceError(err, "category", e.CategoryID)
	}

	err = tx.First(&Period{}, e.PeriodID).Error
	if err != nil {
		return referenceError(err, "period", e.PeriodID)
	}

	return nil
}

// referenceError translates a lookup failure for a referenced resource into
// an error telling the user which reference was invalid.
func referenceError(err error, resource string, id uint) error {
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: there is no %s with id %d", ErrReferenceInvalid, resource, id)
	}

	return err
}

// Pay appends a payment purchase entry to the expense. The cost is
// recalculated from the purchases, so repeated payments accumulate.
func (e *Expense) Pay(db *gorm.DB, amount decimal.Decimal, actor string) error {
	e.Purchases = append(e.Purchases, Purchase{
		Name:   "Payment",
		Amount: amount,
		Date:   types.Today(),
	})
	e.SetActor(actor)

	return db.Omit(clause.Associations).Save(e).Error
}

// NextExpenseOrder returns the position for a new expense in a month, which
// is one more than the highest position in use.
func NextExpenseOrder(db *gorm.DB, monthID uint) (int, error) {
	var count int64
	err := db.Model(&Expense{}).Where("month_id = ?", monthID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	if count == 0 {
		return 0, nil
	}

	var max int
	err = db.Model(&Expense{}).Where("month_id = ?", monthID).Select("MAX(sort_order)").Row().Scan(&max)
	if err != nil {
		return 0, err
	}

	return max + 1, nil
}

// ExpenseFilter restricts the expenses returned by Expenses.
type ExpenseFilter struct {
	Period   string // name of the period
	Category string // name of the category
	MonthID  uint
}

// Expenses returns all expenses matching the filter, ordered by name. The
// category and period associations are loaded for display.
func Expenses(db *gorm.DB, filter ExpenseFilter) ([]Expense, error) {
	query := db.Joins("Category").Joins("Period")

	if filter.Period != "" {
		query = query.Where(`"Period"."name" = ?`, filter.Period)
	}

	if filter.Category != "" {
		query = query.Where(`"Category"."name" = ?`, filter.Category)
	}

	if filter.MonthID != 0 {
		query = query.Where("expenses.month_id = ?", filter.MonthID)
	}

	var expenses []Expense
	err := query.Order("expenses.name").Find(&expenses).Error
	return expenses, err
}

// ReorderExpenses rewrites the positions of the given expenses to match the
// order of the id list. All updates happen in one transaction, either the
// full new order is persisted or none of it.
func ReorderExpenses(db *gorm.DB, ids []uint, actor string) ([]Expense, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			var expense Expense
			err := tx.First(&expense, id).Error
			if err != nil {
				return err
			}

			updates := map[string]interface{}{"sort_order": position}
			if actor != "" {
				updates["updated_by"] = actor
			}

			err = tx.Model(&expense).Updates(updates).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var expenses []Expense
	err = db.Joins("Category").Joins("Period").Where("expenses.id IN ?", ids).Order("expenses.sort_order").Find(&expenses).Error
	return expenses, err
}
