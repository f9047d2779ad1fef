package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Category groups expenses, for example "Housing" or "Groceries".
type Category struct {
	DefaultModel
	Name  string `json:"name" gorm:"uniqueIndex"`
	Color string `json:"color"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Color == "" {
		c.Color = "#8b5cf6"
	}

	return nil
}

// BeforeDelete blocks deletion while the category is still referenced.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Expense{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w by %d expense(s)", ErrCategoryInUse, count)
	}

	return nil
}

// Categories returns all categories ordered by name.
func Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category
	err := db.Order("name").Find(&categories).Error
	return categories, err
}
