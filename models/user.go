package models

import (
	"time"
)

// Role names seeded at migration time.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
	RolePatient      = "patient"
)

type Role struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"unique"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name"`
	Email       string     `json:"email" gorm:"unique"`
	Password    string     `json:"password,omitempty"`
	RoleID      uint       `json:"role_id"`
	Role        Role       `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	SpecialtyID *uint      `json:"specialty_id"` // set for doctors
	Specialty   *Specialty `json:"specialty,omitempty" gorm:"foreignKey:SpecialtyID"`
	BranchID    *uint      `json:"branch_id"`
	Branch      *Branch    `json:"branch,omitempty" gorm:"foreignKey:BranchID"`

	AvailabilityRules []AvailabilityRule `json:"availability_rules,omitempty" gorm:"foreignKey:DoctorID"`
	Appointments      []Appointment      `json:"appointments,omitempty" gorm:"foreignKey:DoctorID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDoctor reports whether the user's preloaded role is the doctor role.
func (u *User) IsDoctor() bool {
	return u.Role.Name == RoleDoctor
}
