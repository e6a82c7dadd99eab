package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hospital-schemes-server/internal/models"
)

// SchemeInput carries the writable fields of a scheme.
type SchemeInput struct {
	Name        string
	Description *string
	StartDate   time.Time
}

func (in SchemeInput) normalize() (models.Scheme, error) {
	name, err := requireText("sname", in.Name)
	if err != nil {
		return models.Scheme{}, err
	}
	start, err := requireDate("start_date", in.StartDate)
	if err != nil {
		return models.Scheme{}, err
	}
	return models.Scheme{
		Name:        name,
		Description: optionalText(in.Description),
		StartDate:   start,
	}, nil
}

// CreateScheme inserts a scheme and returns its id. A name already in use
// fails with ErrDuplicateName.
func (s *Store) CreateScheme(ctx context.Context, in SchemeInput) (uint, error) {
	scheme, err := in.normalize()
	if err != nil {
		return 0, s.finish("create scheme", err)
	}

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, scheme.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		return tx.Create(&scheme).Error
	})
	if err != nil {
		return 0, s.finish("create scheme", err)
	}
	return scheme.ID, s.finish("create scheme", nil)
}

// GetScheme returns one scheme by id.
func (s *Store) GetScheme(ctx context.Context, id uint) (*models.Scheme, error) {
	var scheme models.Scheme
	if err := s.db.WithContext(ctx).First(&scheme, "scheme_id = ?", id).Error; err != nil {
		return nil, s.finish("get scheme", err)
	}
	return &scheme, s.finish("get scheme", nil)
}

// ListSchemes returns every scheme ordered by name.
func (s *Store) ListSchemes(ctx context.Context) ([]models.Scheme, error) {
	schemes := []models.Scheme{}
	if err := s.db.WithContext(ctx).Order("sname").Find(&schemes).Error; err != nil {
		return nil, s.finish("list schemes", err)
	}
	return schemes, s.finish("list schemes", nil)
}

// UpdateScheme replaces the fields of an existing scheme.
func (s *Store) UpdateScheme(ctx context.Context, id uint, in SchemeInput) error {
	scheme, err := in.normalize()
	if err != nil {
		return s.finish("update scheme", err)
	}

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Scheme{}, "scheme_id", id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		taken, err := nameTaken(tx, scheme.Name, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		return tx.Model(&models.Scheme{}).Where("scheme_id = ?", id).Updates(map[string]any{
			"sname":      scheme.Name,
			"dscript":    scheme.Description,
			"start_date": scheme.StartDate,
		}).Error
	})
	return s.finish("update scheme", err)
}

// DeleteScheme removes a scheme together with every enrollment that
// references it and reports how many enrollments were removed.
func (s *Store) DeleteScheme(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Scheme{}, "scheme_id", id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		res := tx.Where("scheme_id = ?", id).Delete(&models.Enrollment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return tx.Where("scheme_id = ?", id).Delete(&models.Scheme{}).Error
	})
	if err != nil {
		return 0, s.finish("delete scheme", err)
	}
	return removed, s.finish("delete scheme", nil)
}

func nameTaken(tx *gorm.DB, name string, exceptID uint) (bool, error) {
	var ids []uint
	q := tx.Model(&models.Scheme{}).Where("sname = ?", name)
	if exceptID != 0 {
		q = q.Where("scheme_id <> ?", exceptID)
	}
	if err := q.Limit(1).Pluck("scheme_id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}
