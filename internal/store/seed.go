package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-schemes-server/internal/models"
)

// SeedMode selects how SeedSchemes treats existing rows.
type SeedMode string

const (
	// SeedUpsert inserts missing schemes and refreshes existing ones by name.
	// Schemes outside the list are left alone.
	SeedUpsert SeedMode = "upsert"
	// SeedReset deletes every scheme, and through the cascade every
	// enrollment, before inserting the list. Only for explicit resets.
	SeedReset SeedMode = "reset"
)

// DefaultSchemes is the predefined scheme list applied at startup.
func DefaultSchemes() []SchemeInput {
	return []SchemeInput{
		{
			Name:        "Ayushman Bharat",
			Description: strPtr("Health insurance scheme for poor and vulnerable families"),
			StartDate:   time.Date(2018, time.September, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:        "PMJAY",
			Description: strPtr("Prime Ministers Scheme for cashless healthcare"),
			StartDate:   time.Date(2018, time.September, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:        "RSBY",
			Description: strPtr("Rashtriya Swasthya Bima Yojana for unorganized workers"),
			StartDate:   time.Date(2007, time.October, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// SeedSchemes applies the scheme list in one transaction. Running it twice
// with SeedUpsert never creates duplicates.
func (s *Store) SeedSchemes(ctx context.Context, schemes []SchemeInput, mode SeedMode) error {
	rows := make([]models.Scheme, 0, len(schemes))
	for _, in := range schemes {
		row, err := in.normalize()
		if err != nil {
			return s.finish("seed schemes", err)
		}
		rows = append(rows, row)
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		switch mode {
		case SeedUpsert:
		case SeedReset:
			log.Warn().Msg("Resetting scheme table; all schemes and enrollments will be removed")
			all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
			if err := all.Delete(&models.Enrollment{}).Error; err != nil {
				return err
			}
			if err := all.Delete(&models.Scheme{}).Error; err != nil {
				return err
			}
		default:
			return invalid("seed_mode", fmt.Sprintf("unknown mode %q", mode))
		}

		for i := range rows {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "sname"}},
				DoUpdates: clause.AssignmentColumns([]string{"dscript", "start_date"}),
			}).Create(&rows[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.finish("seed schemes", err)
	}

	log.Info().Str("mode", string(mode)).Int("schemes", len(rows)).Msg("Schemes seeded")
	return s.finish("seed schemes", nil)
}

func strPtr(s string) *string {
	return &s
}
