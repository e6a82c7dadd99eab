package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a DECIMAL(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

// Enrollment records that a patient is enrolled in a scheme and the
// cumulative amount claimed under it.
type Enrollment struct {
	ID         uint            `gorm:"primaryKey;column:enrollment_id" json:"enrollmentId"`
	PatientID  uint            `gorm:"column:patient_id;not null;index" json:"patientId"`
	SchemeID   uint            `gorm:"column:scheme_id;not null;index" json:"schemeId"`
	EnrollDate time.Time       `gorm:"column:enroll_date;type:date;not null" json:"enrollDate"`
	AmtClaimed decimal.Decimal `gorm:"column:amt_claimed;type:decimal(10,2);not null;default:0;check:chk_enrollment_amt_claimed,amt_claimed >= 0" json:"amtClaimed"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Scheme  Scheme  `gorm:"foreignKey:SchemeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the table name across dialects.
func (Enrollment) TableName() string {
	return "enrollment"
}

// EnrollmentDetail is an enrollment joined with its patient and scheme names.
type EnrollmentDetail struct {
	ID          uint            `gorm:"column:enrollment_id" json:"enrollmentId"`
	PatientID   uint            `gorm:"column:patient_id" json:"patientId"`
	PatientName string          `gorm:"column:patient_name" json:"patientName"`
	SchemeID    uint            `gorm:"column:scheme_id" json:"schemeId"`
	SchemeName  string          `gorm:"column:sname" json:"schemeName"`
	EnrollDate  time.Time       `gorm:"column:enroll_date" json:"-"`
	AmtClaimed  decimal.Decimal `gorm:"column:amt_claimed" json:"amtClaimed"`
}

// EnrollmentView is the API representation of an enrollment.
type EnrollmentView struct {
	ID          uint            `json:"enrollmentId"`
	PatientID   uint            `json:"patientId"`
	PatientName string          `json:"patientName,omitempty"`
	SchemeID    uint            `json:"schemeId"`
	SchemeName  string          `json:"schemeName,omitempty"`
	EnrollDate  string          `json:"enrollDate"`
	AmtClaimed  decimal.Decimal `json:"amtClaimed"`
}

// View renders the enrollment detail for API responses.
func (e *EnrollmentDetail) View() EnrollmentView {
	return EnrollmentView{
		ID:          e.ID,
		PatientID:   e.PatientID,
		PatientName: e.PatientName,
		SchemeID:    e.SchemeID,
		SchemeName:  e.SchemeName,
		EnrollDate:  e.EnrollDate.Format(DateLayout),
		AmtClaimed:  e.AmtClaimed.Round(2),
	}
}
