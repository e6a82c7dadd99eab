package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-schemes-server/internal/models"
)

// PatientInput carries the writable fields of a patient.
type PatientInput struct {
	Name        string
	DateOfBirth time.Time
	Email       *string
	Address     *string
}

func (in PatientInput) normalize() (models.Patient, error) {
	name, err := requireText("name", in.Name)
	if err != nil {
		return models.Patient{}, err
	}
	dob, err := requireDate("dob", in.DateOfBirth)
	if err != nil {
		return models.Patient{}, err
	}
	return models.Patient{
		Name:        name,
		DateOfBirth: dob,
		Email:       optionalText(in.Email),
		Address:     optionalText(in.Address),
	}, nil
}

// CreatePatient registers a patient without any enrollment.
func (s *Store) CreatePatient(ctx context.Context, in PatientInput) (uint, error) {
	id, _, err := s.RegisterPatient(ctx, in, nil)
	return id, err
}

// RegisterPatient inserts a patient and, when enrollment is non-nil, enrolls
// the new patient in the given scheme. Both rows commit together or neither
// persists. The returned enrollment id is zero when no enrollment was made.
func (s *Store) RegisterPatient(ctx context.Context, in PatientInput, enrollment *EnrollmentInput) (uint, uint, error) {
	patient, err := in.normalize()
	if err != nil {
		return 0, 0, s.finish("register patient", err)
	}

	var row models.Enrollment
	if enrollment != nil {
		if row, err = enrollment.normalize(); err != nil {
			return 0, 0, s.finish("register patient", err)
		}
	}

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&patient).Error; err != nil {
			return err
		}
		if enrollment == nil {
			return nil
		}
		row.PatientID = patient.ID
		return insertEnrollment(tx, &row)
	})
	if err != nil {
		return 0, 0, s.finish("register patient", err)
	}
	if enrollment != nil {
		s.recorder.AddClaimed(row.AmtClaimed)
	}
	return patient.ID, row.ID, s.finish("register patient", nil)
}

// GetPatient returns one patient by id.
func (s *Store) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).First(&patient, "patient_id = ?", id).Error; err != nil {
		return nil, s.finish("get patient", err)
	}
	return &patient, s.finish("get patient", nil)
}

// ListPatients returns every patient, newest first.
func (s *Store) ListPatients(ctx context.Context) ([]models.Patient, error) {
	patients := []models.Patient{}
	err := s.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "patient_id"}, Desc: true}).
		Find(&patients).Error
	if err != nil {
		return nil, s.finish("list patients", err)
	}
	return patients, s.finish("list patients", nil)
}

// PatientEnrollments lists the enrollments of one patient, newest first.
// An unknown patient yields ErrNotFound.
func (s *Store) PatientEnrollments(ctx context.Context, patientID uint) ([]models.EnrollmentDetail, error) {
	details := []models.EnrollmentDetail{}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Patient{}, "patient_id", patientID)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return enrollmentDetails(tx).
			Where("e.patient_id = ?", patientID).
			Order("e.enroll_date DESC, e.enrollment_id DESC").
			Scan(&details).Error
	})
	if err != nil {
		return nil, s.finish("patient enrollments", err)
	}
	return details, s.finish("patient enrollments", nil)
}

// UpdatePatient replaces the fields of an existing patient.
func (s *Store) UpdatePatient(ctx context.Context, id uint, in PatientInput) error {
	patient, err := in.normalize()
	if err != nil {
		return s.finish("update patient", err)
	}

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Patient{}, "patient_id", id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return tx.Model(&models.Patient{}).Where("patient_id = ?", id).Updates(map[string]any{
			"name":    patient.Name,
			"dob":     patient.DateOfBirth,
			"email":   patient.Email,
			"address": patient.Address,
		}).Error
	})
	return s.finish("update patient", err)
}

// DeletePatient removes a patient together with all of their enrollments and
// reports how many enrollments were removed.
func (s *Store) DeletePatient(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Patient{}, "patient_id", id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		res := tx.Where("patient_id = ?", id).Delete(&models.Enrollment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return tx.Where("patient_id = ?", id).Delete(&models.Patient{}).Error
	})
	if err != nil {
		return 0, s.finish("delete patient", err)
	}
	return removed, s.finish("delete patient", nil)
}
