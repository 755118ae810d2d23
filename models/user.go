// carbib-crm/models/user.go

package models

import "gorm.io/gorm"

// User — сотрудник агентства, работающий с кандидатами.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
}
