package repository

import (
	"apna_room_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates the seeker preferences repository.
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) FindByUserId(userId string) (*model.SeekerPreferences, error) {
	var prefs model.SeekerPreferences
	if err := r.db.Where("user_id = ?", userId).First(&prefs).Error; err != nil {
		return nil, wrapDBErrorf(err, "find preferences user_id=%s", userId)
	}
	return &prefs, nil
}

func (r *preferenceRepository) Upsert(prefs *model.SeekerPreferences) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"budget_min", "budget_max", "preferred_locations",
			"room_type_preference", "gender_preference", "updated_at",
		}),
	}).Create(prefs).Error
	if err != nil {
		return wrapDBErrorf(err, "upsert preferences user_id=%s", prefs.UserId)
	}
	return nil
}
