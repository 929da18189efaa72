package conversion

import (
	"time"

	"github.com/google/uuid"
)

// Conversion is the persisted form of a ledger record.
type Conversion struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	FromCurrency string    `gorm:"type:varchar(16);not null"`
	ToCurrency   string    `gorm:"type:varchar(16);not null"`
	FromAmount   float64   `gorm:"type:decimal(20,8);not null"`
	ToAmount     float64   `gorm:"type:decimal(20,8);not null"`
	Date         time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Conversion model.
func (Conversion) TableName() string {
	return "conversions"
}
