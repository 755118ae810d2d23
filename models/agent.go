// carbib-crm/models/agent.go

package models

import "gorm.io/gorm"

// Agent — агент/реферал, приведший кандидата.
// При импорте из Excel агент создается автоматически, если не найден по имени.
type Agent struct {
	gorm.Model
	FullName    string `json:"fullName" gorm:"not null"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address" gorm:"type:text"`
	Photo       string `json:"photo"`
}
