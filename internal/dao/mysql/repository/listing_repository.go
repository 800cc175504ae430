package repository

import (
	"apna_room_server/internal/model"

	"gorm.io/gorm"
)

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates the listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(listing *model.Listing) error {
	if err := r.db.Create(listing).Error; err != nil {
		return wrapDBError(err, "create listing")
	}
	return nil
}

func (r *listingRepository) FindByUuid(uuid string) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.Where("uuid = ?", uuid).First(&listing).Error; err != nil {
		return nil, wrapDBErrorf(err, "find listing uuid=%s", uuid)
	}
	return &listing, nil
}

func (r *listingRepository) FindByListerId(listerId string) ([]model.Listing, error) {
	var listings []model.Listing
	if err := r.db.Where("lister_id = ?", listerId).Find(&listings).Error; err != nil {
		return nil, wrapDBErrorf(err, "find listings lister_id=%s", listerId)
	}
	return listings, nil
}
