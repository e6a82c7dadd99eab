package models

import (
	"time"
)

// Scheme is a government or institutional health benefit program.
type Scheme struct {
	ID          uint      `gorm:"primaryKey;column:scheme_id" json:"schemeId"`
	Name        string    `gorm:"column:sname;size:255;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"column:dscript;type:text" json:"description,omitempty"`
	StartDate   time.Time `gorm:"column:start_date;type:date;not null" json:"startDate"`
}

// TableName pins the table name across dialects.
func (Scheme) TableName() string {
	return "scheme"
}

// SchemeView is the API representation of a scheme.
type SchemeView struct {
	ID          uint    `json:"schemeId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	StartDate   string  `json:"startDate"`
}

// View renders the scheme with a calendar-date start date.
func (s *Scheme) View() SchemeView {
	return SchemeView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		StartDate:   s.StartDate.Format(DateLayout),
	}
}
