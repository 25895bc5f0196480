package models

import (
	"gorm.io/gorm"
)

// Branch is a clinic location. Reference data only, passed around by ID.
type Branch struct {
	gorm.Model
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PhoneNumber string `json:"phone_number"`
}

type Specialty struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique"`
	Description string `json:"description"`
}
