package store

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hospital-schemes-server/internal/models"
)

// RecentEnrollmentLimit bounds the recent enrollments list on the dashboard.
const RecentEnrollmentLimit = 10

const schemeStatsQuery = `
SELECT s.scheme_id, s.sname,
       COUNT(e.enrollment_id) AS enrollment_count,
       COALESCE(SUM(e.amt_claimed), 0) AS total_amount
FROM scheme s
LEFT JOIN enrollment e ON e.scheme_id = s.scheme_id
GROUP BY s.scheme_id, s.sname
ORDER BY s.sname`

const patientSummaryQuery = `
SELECT p.patient_id, p.name, p.dob, p.email,
       COUNT(e.enrollment_id) AS enrollment_count
FROM patient p
LEFT JOIN enrollment e ON e.patient_id = p.patient_id
GROUP BY p.patient_id, p.name, p.dob, p.email
ORDER BY p.patient_id DESC`

// Dashboard computes the admin aggregates. Empty tables yield zero totals
// and empty lists, never nulls.
func (s *Store) Dashboard(ctx context.Context) (models.Dashboard, error) {
	dash := models.EmptyDashboard()
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Patient{}).Count(&dash.TotalPatients).Error; err != nil {
		return models.EmptyDashboard(), s.finish("dashboard", err)
	}
	if err := db.Model(&models.Scheme{}).Count(&dash.TotalSchemes).Error; err != nil {
		return models.EmptyDashboard(), s.finish("dashboard", err)
	}

	total, err := totalClaimed(db)
	if err != nil {
		return models.EmptyDashboard(), s.finish("dashboard", err)
	}
	dash.TotalClaimed = total

	if err := db.Raw(schemeStatsQuery).Scan(&dash.SchemeStats).Error; err != nil {
		return models.EmptyDashboard(), s.finish("dashboard", err)
	}
	for i := range dash.SchemeStats {
		dash.SchemeStats[i].TotalAmount = dash.SchemeStats[i].TotalAmount.Round(2)
	}

	var recent []models.EnrollmentDetail
	err = enrollmentDetails(db).
		Order("e.enroll_date DESC, e.enrollment_id DESC").
		Limit(RecentEnrollmentLimit).
		Scan(&recent).Error
	if err != nil {
		return models.EmptyDashboard(), s.finish("dashboard", err)
	}
	for i := range recent {
		dash.RecentEnrollments = append(dash.RecentEnrollments, recent[i].View())
	}

	if err := db.Raw(patientSummaryQuery).Scan(&dash.Patients).Error; err != nil {
		return models.EmptyDashboard(), s.finish("dashboard", err)
	}
	for i := range dash.Patients {
		dash.Patients[i].DOB = dash.Patients[i].DateOfBirth.Format(models.DateLayout)
	}

	return dash, s.finish("dashboard", nil)
}

// TotalClaimed sums amt_claimed over every enrollment; zero when there are none.
func (s *Store) TotalClaimed(ctx context.Context) (decimal.Decimal, error) {
	total, err := totalClaimed(s.db.WithContext(ctx))
	return total, s.finish("total claimed", err)
}

func totalClaimed(db *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := db.Model(&models.Enrollment{}).Select("COALESCE(SUM(amt_claimed), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}
