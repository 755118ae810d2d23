// carbib-crm/models/job.go

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Job — вакансия, на которую подается кандидат.
// Может создаваться администратором или автоматически при импорте из Excel.
type Job struct {
	gorm.Model
	Title            string     `json:"title" gorm:"not null"`
	Description      string     `json:"description" gorm:"type:text;default:'No description provided.'"`
	Location         string     `json:"location" gorm:"default:'Not specified'"`
	Salary           float64    `json:"salary" gorm:"default:0"`
	DatePosted       time.Time  `json:"datePosted" gorm:"autoCreateTime"`
	ClosingDate      *time.Time `json:"closingDate"`
	Responsibilities string     `json:"responsibilities" gorm:"type:text;default:'Not specified'"`
	Status           string     `json:"status" gorm:"default:open"`
}
