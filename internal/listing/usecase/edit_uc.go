package usecase

import (
	"context"
	"fmt"

	"github.com/your-org/estate-admin/internal/adapter/messaging/nats"
	"github.com/your-org/estate-admin/internal/listing/domain"
	"github.com/your-org/estate-admin/internal/listing/form"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

// EditUsecase updates one previously-fetched listing. Field edits are
// applied to the in-memory seed; Save lands the result in one
// merge-write regardless of whether an image was replaced, so the two
// save paths cannot leave differently-shaped documents behind.
type EditUsecase struct {
	repo      domain.ListingRepository
	storage   Storage
	publisher EventPublisher
	cache     ListingCache
	logger    *logger.Logger
}

func NewEditUsecase(repo domain.ListingRepository, storage Storage, publisher EventPublisher, cache ListingCache, log *logger.Logger) *EditUsecase {
	return &EditUsecase{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		cache:     cache,
		logger:    log,
	}
}

// ApplyField replaces one top-level scalar on the seed listing.
func (uc *EditUsecase) ApplyField(listing *domain.Listing, name string, value interface{}) error {
	switch name {
	case "buildingStatus":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.Status = domain.ListingStatus(v)
	case "city":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.City = v
	case "address":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.Address = v
	case "parking":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.Parking = domain.ParkingKind(v)
	case "description":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.Description = v
	case "price":
		v, ok := floatValue(value)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.Price = v
	case "hauseArea":
		v, ok := floatValue(value)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.HouseArea = v
	case "apartments":
		v, ok := intValue(value)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.UnitCount = v
	case "hauseRooms":
		v, ok := intValue(value)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		listing.HouseRooms = v
	default:
		return fmt.Errorf("field %q: %w", name, domain.ErrUnknownField)
	}
	return nil
}

// ApplyApartmentField patches one nested apartment field with explicit
// bounds checks; the floor tree is rebuilt along the touched path only.
func (uc *EditUsecase) ApplyApartmentField(listing *domain.Listing, floorIndex, apartmentIndex int, field string, value interface{}) error {
	floors, err := domain.UpdateApartmentField(listing.Floors, floorIndex, apartmentIndex, field, value)
	if err != nil {
		return err
	}
	listing.Floors = floors
	return nil
}

// Save persists the edited listing. When a replacement image is staged,
// the old storage folder is enumerated and emptied first (best-effort:
// individual delete failures are logged and skipped, never aborting the
// update), then the new image is uploaded and its resolved URL merged in.
func (uc *EditUsecase) Save(ctx context.Context, listing *domain.Listing, newImage *form.StagedFile) (*domain.Listing, error) {
	uc.logger.Info("EditUsecase.Save: saving listing", "listing_id", listing.ID, "image_replaced", newImage != nil)

	if newImage != nil {
		prefix := fmt.Sprintf("buildings/%s/", listing.Address)

		keys, err := uc.storage.ListFolder(ctx, prefix)
		if err != nil {
			uc.logger.Warn("EditUsecase.Save: listing old image folder failed, continuing",
				"listing_id", listing.ID, "prefix", prefix, "error", err.Error())
		}
		for _, key := range keys {
			if err := uc.storage.RemoveObject(ctx, key); err != nil {
				uc.logger.Warn("EditUsecase.Save: stale object delete failed, continuing",
					"listing_id", listing.ID, "object_key", key, "error", err.Error())
			}
		}

		url, err := uc.storage.Upload(ctx, prefix+newImage.Name, newImage.Data)
		if err != nil {
			uc.logger.Error("EditUsecase.Save: replacement image upload failed", "listing_id", listing.ID, "error", err.Error())
			return nil, fmt.Errorf("upload replacement image: %w", err)
		}
		listing.Image = url
	}

	if err := uc.repo.Merge(ctx, listing.ID, listing); err != nil {
		uc.logger.Error("EditUsecase.Save: persist failed", "listing_id", listing.ID, "error", err.Error())
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, listing.ID); err != nil {
			uc.logger.Warn("EditUsecase.Save: cache delete failed", "listing_id", listing.ID, "error", err.Error())
		}
		if err := uc.cache.InvalidateAll(ctx); err != nil {
			uc.logger.Warn("EditUsecase.Save: cache invalidation failed", "error", err.Error())
		}
	}
	if uc.publisher != nil {
		event := ListingEvent{ID: listing.ID, Kind: string(listing.Kind), Address: listing.Address}
		if err := uc.publisher.Publish(ctx, nats.SubjectListingUpdated, event); err != nil {
			uc.logger.Warn("EditUsecase.Save: failed to publish listing.updated", "listing_id", listing.ID, "error", err.Error())
		}
	}

	return listing, nil
}

func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func floatValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
