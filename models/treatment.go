package models

import (
	"gorm.io/gorm"
)

// Treatment is a catalogue entry. The catalogue price is a default only:
// the price actually charged is frozen into the consultation record at
// completion time and never re-read from here.
type Treatment struct {
	gorm.Model
	ServiceCode string  `json:"service_code" gorm:"uniqueIndex"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
