package models

import (
	"time"
)

// Patient is a person receiving care.
type Patient struct {
	ID          uint      `gorm:"primaryKey;column:patient_id" json:"patientId"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	DateOfBirth time.Time `gorm:"column:dob;type:date;not null" json:"dob"`
	Email       *string   `gorm:"column:email;size:255" json:"email,omitempty"`
	Address     *string   `gorm:"column:address;type:text" json:"address,omitempty"`
}

// TableName pins the table name across dialects.
func (Patient) TableName() string {
	return "patient"
}

// PatientView is the API representation of a patient.
type PatientView struct {
	ID          uint    `json:"patientId"`
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dob"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// View renders the patient with a calendar-date birth date.
func (p *Patient) View() PatientView {
	return PatientView{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth.Format(DateLayout),
		Email:       p.Email,
		Address:     p.Address,
	}
}
