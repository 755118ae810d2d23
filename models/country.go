package models

// Country представляет страну трудоустройства кандидата.
type Country struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"unique;not null"`
}
