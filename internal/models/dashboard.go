package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchemeStat aggregates enrollments for one scheme.
type SchemeStat struct {
	SchemeID        uint            `gorm:"column:scheme_id" json:"schemeId"`
	SchemeName      string          `gorm:"column:sname" json:"schemeName"`
	EnrollmentCount int64           `gorm:"column:enrollment_count" json:"enrollmentCount"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount" json:"totalAmount"`
}

// PatientSummary is a patient with the number of schemes they are enrolled in.
type PatientSummary struct {
	PatientID       uint      `gorm:"column:patient_id" json:"patientId"`
	Name            string    `gorm:"column:name" json:"name"`
	DateOfBirth     time.Time `gorm:"column:dob" json:"-"`
	DOB             string    `gorm:"-" json:"dob"`
	Email           *string   `gorm:"column:email" json:"email,omitempty"`
	EnrollmentCount int64     `gorm:"column:enrollment_count" json:"enrollmentCount"`
}

// Dashboard holds the read-only aggregates shown on the admin page.
type Dashboard struct {
	TotalPatients     int64            `json:"totalPatients"`
	TotalSchemes      int64            `json:"totalSchemes"`
	TotalClaimed      decimal.Decimal  `json:"totalClaimed"`
	SchemeStats       []SchemeStat     `json:"schemeStats"`
	RecentEnrollments []EnrollmentView `json:"recentEnrollments"`
	Patients          []PatientSummary `json:"patients"`
	Degraded          bool             `json:"degraded"`
}

// EmptyDashboard is the zero-valued dashboard with non-nil lists.
func EmptyDashboard() Dashboard {
	return Dashboard{
		TotalClaimed:      decimal.Zero,
		SchemeStats:       []SchemeStat{},
		RecentEnrollments: []EnrollmentView{},
		Patients:          []PatientSummary{},
	}
}
