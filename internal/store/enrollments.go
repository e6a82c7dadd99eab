package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-schemes-server/internal/models"
)

// EnrollmentInput enrolls a patient in a scheme. A zero AmtClaimed records
// no claim yet.
type EnrollmentInput struct {
	SchemeID   uint
	EnrollDate time.Time
	AmtClaimed decimal.Decimal
}

func (in EnrollmentInput) normalize() (models.Enrollment, error) {
	if in.SchemeID == 0 {
		return models.Enrollment{}, invalid("scheme_id", "is required")
	}
	date, err := requireDate("enroll_date", in.EnrollDate)
	if err != nil {
		return models.Enrollment{}, err
	}
	amount, err := normalizeAmount(in.AmtClaimed)
	if err != nil {
		return models.Enrollment{}, err
	}
	return models.Enrollment{
		SchemeID:   in.SchemeID,
		EnrollDate: date,
		AmtClaimed: amount,
	}, nil
}

// Enroll enrolls an existing patient in an existing scheme and returns the
// enrollment id. An unknown patient or scheme fails with ErrForeignKey and
// nothing is written.
func (s *Store) Enroll(ctx context.Context, patientID uint, in EnrollmentInput) (uint, error) {
	if patientID == 0 {
		return 0, s.finish("enroll", invalid("patient_id", "is required"))
	}
	row, err := in.normalize()
	if err != nil {
		return 0, s.finish("enroll", err)
	}
	row.PatientID = patientID

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Patient{}, "patient_id", patientID)
		if err != nil {
			return err
		}
		if !found {
			return ErrForeignKey
		}
		return insertEnrollment(tx, &row)
	})
	if err != nil {
		return 0, s.finish("enroll", err)
	}
	s.recorder.AddClaimed(row.AmtClaimed)
	return row.ID, s.finish("enroll", nil)
}

// insertEnrollment checks the scheme under a shared lock and inserts row.
// The caller guarantees row.PatientID exists within tx.
func insertEnrollment(tx *gorm.DB, row *models.Enrollment) error {
	found, err := exists(tx, &models.Scheme{}, "scheme_id", row.SchemeID)
	if err != nil {
		return err
	}
	if !found {
		return ErrForeignKey
	}
	return tx.Omit(clause.Associations).Create(row).Error
}

// GetEnrollment returns one enrollment joined with its patient and scheme.
func (s *Store) GetEnrollment(ctx context.Context, id uint) (*models.EnrollmentDetail, error) {
	var details []models.EnrollmentDetail
	err := enrollmentDetails(s.db.WithContext(ctx)).
		Where("e.enrollment_id = ?", id).
		Limit(1).
		Scan(&details).Error
	if err != nil {
		return nil, s.finish("get enrollment", err)
	}
	if len(details) == 0 {
		return nil, s.finish("get enrollment", ErrNotFound)
	}
	return &details[0], s.finish("get enrollment", nil)
}

// ListEnrollments returns every enrollment, most recently dated first.
func (s *Store) ListEnrollments(ctx context.Context) ([]models.EnrollmentDetail, error) {
	details := []models.EnrollmentDetail{}
	err := enrollmentDetails(s.db.WithContext(ctx)).
		Order("e.enroll_date DESC, e.enrollment_id DESC").
		Scan(&details).Error
	if err != nil {
		return nil, s.finish("list enrollments", err)
	}
	return details, s.finish("list enrollments", nil)
}

// UpdateEnrollment moves an enrollment to another scheme and replaces its
// date and claimed amount.
func (s *Store) UpdateEnrollment(ctx context.Context, id uint, in EnrollmentInput) error {
	row, err := in.normalize()
	if err != nil {
		return s.finish("update enrollment", err)
	}

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Enrollment{}, "enrollment_id", id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		schemeFound, err := exists(tx, &models.Scheme{}, "scheme_id", row.SchemeID)
		if err != nil {
			return err
		}
		if !schemeFound {
			return ErrForeignKey
		}
		return tx.Model(&models.Enrollment{}).Where("enrollment_id = ?", id).Updates(map[string]any{
			"scheme_id":   row.SchemeID,
			"enroll_date": row.EnrollDate,
			"amt_claimed": row.AmtClaimed,
		}).Error
	})
	return s.finish("update enrollment", err)
}

// DeleteEnrollment removes one enrollment. An absent id is ErrNotFound.
func (s *Store) DeleteEnrollment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Where("enrollment_id = ?", id).Delete(&models.Enrollment{})
	if res.Error != nil {
		return s.finish("delete enrollment", res.Error)
	}
	if res.RowsAffected == 0 {
		return s.finish("delete enrollment", ErrNotFound)
	}
	return s.finish("delete enrollment", nil)
}

// enrollmentDetails selects enrollments joined to patient and scheme names.
func enrollmentDetails(db *gorm.DB) *gorm.DB {
	return db.Table("enrollment AS e").
		Select("e.enrollment_id, e.patient_id, p.name AS patient_name, e.scheme_id, s.sname, e.enroll_date, e.amt_claimed").
		Joins("JOIN patient p ON p.patient_id = e.patient_id").
		Joins("JOIN scheme s ON s.scheme_id = e.scheme_id")
}
