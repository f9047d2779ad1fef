// Package models implements the entities the budget backend stores.
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// All clients of this API exchange amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultModel is the base model for all models in the budget backend.
// Resources are identified by their numeric id on the wire.
type DefaultModel struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}

// SetActor records the acting user in the audit fields.
func (m *DefaultModel) SetActor(name string) {
	if name == "" {
		return
	}

	if m.ID == 0 {
		m.CreatedBy = name
	}
	m.UpdatedBy = name
}
