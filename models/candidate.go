// carbib-crm/models/candidate.go

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CandidateStatusPending   = "Pending"
	CandidateStatusApproved  = "Approved"
	CandidateStatusTravelled = "Travelled"
)

// Candidate — центральная сущность: анкета кандидата на работу за рубежом.
type Candidate struct {
	gorm.Model
	CandidateStatus string `json:"candidateStatus" gorm:"default:Pending"`

	// --- BASIC INFO TAB ---
	FullName      string     `json:"fullName" gorm:"not null"`
	Gender        string     `json:"gender"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	PhoneNumber   string     `json:"phoneNumber"`
	Email         string     `json:"email"`
	Religion      string     `json:"religion"`
	MaritalStatus string     `json:"maritalStatus"`
	NoOfChildren  int        `json:"noOfChildren" gorm:"default:0"`
	Tribe         string     `json:"tribe"`
	Clan          string     `json:"clan"`
	NINNumber     string     `json:"ninNumber"`
	// Номер паспорта — естественный ключ дедупликации при импорте.
	// Уникальность закреплена индексом, чтобы ручная форма и импорт вели себя одинаково.
	PassportNumber    string `json:"passportNumber" gorm:"uniqueIndex"`
	WorkingExperience string `json:"workingExperience" gorm:"type:text"`
	Skills            string `json:"skills" gorm:"type:text"`
	CountryWorked     string `json:"countryWorked"`
	EducationLevel    string `json:"educationLevel"`

	// --- PLACE OF ORIGIN TAB ---
	PlaceOfOriginVillage   string `json:"placeOfOriginVillage"`
	PlaceOfOriginParish    string `json:"placeOfOriginParish"`
	PlaceOfOriginSubcounty string `json:"placeOfOriginSubcounty"`
	PlaceOfOriginCounty    string `json:"placeOfOriginCounty"`
	PlaceOfOriginDistrict  string `json:"placeOfOriginDistrict"`

	// --- PRESENT ADDRESS TAB ---
	PresentAddressVillage   string `json:"presentAddressVillage"`
	PresentAddressParish    string `json:"presentAddressParish"`
	PresentAddressSubcounty string `json:"presentAddressSubcounty"`
	PresentAddressCounty    string `json:"presentAddressCounty"`
	PresentAddressDistrict  string `json:"presentAddressDistrict"`

	// --- FAMILY TAB ---
	FatherName     string     `json:"fatherName"`
	FatherDOB      *time.Time `json:"fatherDob"`
	FatherTel      string     `json:"fatherTel"`
	FatherNIN      string     `json:"fatherNin"`
	FatherDistrict string     `json:"fatherDistrict"`
	FatherTribe    string     `json:"fatherTribe"`
	FatherStatus   string     `json:"fatherStatus"`

	MotherName     string     `json:"motherName"`
	MotherDOB      *time.Time `json:"motherDob"`
	MotherTel      string     `json:"motherTel"`
	MotherNIN      string     `json:"motherNin"`
	MotherDistrict string     `json:"motherDistrict"`
	MotherTribe    string     `json:"motherTribe"`
	MotherStatus   string     `json:"motherStatus"`

	NextOfKinName         string `json:"nextOfKinName"`
	NextOfKinRelationship string `json:"nextOfKinRelationship"`
	NextOfKinContact      string `json:"nextOfKinContact"`
	NextOfKinAddress      string `json:"nextOfKinAddress"`

	// --- JOB INFO ---
	JobAppliedID   *uint `json:"jobAppliedId"`
	JobLocationID  *uint `json:"jobLocationId"`
	ReferralInfoID *uint `json:"referralInfoId"`

	// --- CV & DOCUMENTS ---
	CV             string `json:"cv"`
	ProfilePicture string `json:"profilePicture"`
	PassportCopy   string `json:"passportCopy"`
	FullPhoto      string `json:"fullPhoto"`
	MedicalCopy    string `json:"medicalCopy"`
	Interpol       string `json:"interpol"`

	// --- GORM RELATIONSHIPS ---
	JobApplied   *Job     `gorm:"foreignKey:JobAppliedID;constraint:OnDelete:SET NULL" json:"jobApplied,omitempty"`
	JobLocation  *Country `gorm:"foreignKey:JobLocationID;constraint:OnDelete:SET NULL" json:"jobLocation,omitempty"`
	ReferralInfo *Agent   `gorm:"foreignKey:ReferralInfoID;constraint:OnDelete:SET NULL" json:"referralInfo,omitempty"`
}

// AgeAt вычисляет полный возраст на заданную дату.
// До дня рождения в текущем году возраст на единицу меньше.
func (c *Candidate) AgeAt(today time.Time) *int {
	if c.DateOfBirth == nil {
		return nil
	}
	dob := *c.DateOfBirth
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return &age
}

// Age — возраст кандидата на текущий момент.
func (c *Candidate) Age() *int {
	return c.AgeAt(time.Now())
}
