package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/your-org/estate-admin/internal/adapter/messaging/nats"
	"github.com/your-org/estate-admin/internal/listing/domain"
	"github.com/your-org/estate-admin/internal/listing/form"
	"github.com/your-org/estate-admin/internal/mailer"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

// Storage is the object-storage surface the pipelines need.
type Storage interface {
	Upload(ctx context.Context, objectKey string, data []byte) (string, error)
	ListFolder(ctx context.Context, prefix string) ([]string, error)
	RemoveObject(ctx context.Context, objectKey string) error
}

// EventPublisher pushes listing lifecycle events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ListingCache is the read-side cache; every write path invalidates it.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]*domain.Listing, error)
	SetAll(ctx context.Context, listings []*domain.Listing) error
	InvalidateAll(ctx context.Context) error
}

// ListingEvent is the payload published on listing.* subjects.
type ListingEvent struct {
	ID      string `json:"id"`
	Kind    string `json:"typeBuilding"`
	Address string `json:"address,omitempty"`
}

// SubmitUsecase lands a draft as a persisted listing: placeholder record
// first, then the image upload batches, then a merge-write of the
// composite document. Cache and publisher are optional collaborators.
type SubmitUsecase struct {
	repo       domain.ListingRepository
	storage    Storage
	publisher  EventPublisher
	cache      ListingCache
	logger     *logger.Logger
	adminEmail string
	notify     func(toEmail, address string) error
}

func NewSubmitUsecase(repo domain.ListingRepository, storage Storage, publisher EventPublisher, cache ListingCache, log *logger.Logger, adminEmail string) *SubmitUsecase {
	return &SubmitUsecase{
		repo:       repo,
		storage:    storage,
		publisher:  publisher,
		cache:      cache,
		logger:     log,
		adminEmail: adminEmail,
		notify:     mailer.SendListingCreatedEmail,
	}
}

// Submit runs the whole pipeline. Any step's failure aborts the
// sequence; a failure after the placeholder insert triggers a
// compensating delete so no orphan record survives.
func (uc *SubmitUsecase) Submit(ctx context.Context, store *form.Store) (*domain.Listing, error) {
	draft := store.Snapshot()
	uc.logger.Info("SubmitUsecase.Submit: starting submission",
		"kind", string(draft.Kind), "address", draft.Address)

	id, err := uc.repo.CreatePlaceholder(ctx, draft.Kind)
	if err != nil {
		uc.logger.Error("SubmitUsecase.Submit: failed to create placeholder record", "error", err.Error())
		return nil, err
	}

	listing, err := uc.finalize(ctx, id, draft)
	if err != nil {
		if delErr := uc.repo.Delete(ctx, id); delErr != nil {
			uc.logger.Error("SubmitUsecase.Submit: compensating delete failed, orphan record remains",
				"listing_id", id, "delete_error", delErr.Error(), "submit_error", err.Error())
		} else {
			uc.logger.Warn("SubmitUsecase.Submit: submission failed, placeholder record removed",
				"listing_id", id, "error", err.Error())
		}
		return nil, err
	}

	store.Reset()

	if uc.cache != nil {
		if err := uc.cache.InvalidateAll(ctx); err != nil {
			uc.logger.Warn("SubmitUsecase.Submit: cache invalidation failed", "error", err.Error())
		}
	}
	if uc.publisher != nil {
		event := ListingEvent{ID: id, Kind: string(listing.Kind), Address: listing.Address}
		if err := uc.publisher.Publish(ctx, nats.SubjectListingCreated, event); err != nil {
			uc.logger.Warn("SubmitUsecase.Submit: failed to publish listing.created", "listing_id", id, "error", err.Error())
		}
	}
	if uc.adminEmail != "" {
		if err := uc.notify(uc.adminEmail, listing.Address); err != nil {
			uc.logger.Warn("SubmitUsecase.Submit: notification email failed", "error", err.Error())
		}
	}

	uc.logger.Info("SubmitUsecase.Submit: listing persisted", "listing_id", id)
	return listing, nil
}

// finalize uploads every staged image, composes the full document and
// merge-writes it onto the placeholder identity.
func (uc *SubmitUsecase) finalize(ctx context.Context, id string, draft form.Draft) (*domain.Listing, error) {
	var imageURL string
	if draft.Image != nil {
		key := fmt.Sprintf("buildings/%s/%s", draft.Address, draft.Image.Name)
		url, err := uc.storage.Upload(ctx, key, draft.Image.Data)
		if err != nil {
			return nil, fmt.Errorf("upload primary image: %w", err)
		}
		imageURL = url
	}

	houseURLs, err := uc.uploadHouseImages(ctx, draft)
	if err != nil {
		return nil, err
	}

	floors, err := uc.resolveFloors(ctx, id, draft.Floors)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		ID:          id,
		Kind:        draft.Kind,
		Status:      draft.Status,
		City:        draft.City,
		Address:     draft.Address,
		Parking:     draft.Parking,
		Price:       draft.Price,
		Description: draft.Description,
		Image:       imageURL,
		UnitCount:   draft.UnitCount,
		FloorCount:  draft.FloorCount,
		Floors:      floors,
		HouseRooms:  draft.HouseRooms,
		HouseArea:   draft.HouseArea,
		HouseImages: houseURLs,
		CreatedAt:   time.Now(),
	}

	if err := uc.repo.Merge(ctx, id, listing); err != nil {
		return nil, fmt.Errorf("persist listing: %w", err)
	}
	return listing, nil
}

// uploadHouseImages uploads the staged house set concurrently and waits
// on the batch; order in the result matches the staged order.
func (uc *SubmitUsecase) uploadHouseImages(ctx context.Context, draft form.Draft) ([]string, error) {
	urls := make([]string, len(draft.HouseImages))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range draft.HouseImages {
		i, file := i, file
		g.Go(func() error {
			key := fmt.Sprintf("houses/%s/%s", draft.Address, file.Name)
			url, err := uc.storage.Upload(gctx, key, file.Data)
			if err != nil {
				return fmt.Errorf("upload house image %s: %w", file.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// resolveFloors uploads every apartment's staged images and produces the
// finalized floor tree. All uploads across all floors run concurrently
// and settle on a single join.
func (uc *SubmitUsecase) resolveFloors(ctx context.Context, id string, floors []form.Floor) ([]domain.Floor, error) {
	resolved := make([]domain.Floor, len(floors))
	g, gctx := errgroup.WithContext(ctx)

	for fi, floor := range floors {
		apartments := make([]domain.Apartment, len(floor.Apartments))
		for ai, apt := range floor.Apartments {
			urls := make([]string, len(apt.Staged))
			apartments[ai] = domain.Apartment{
				ID:          apt.ID,
				RoomType:    apt.RoomType,
				Area:        apt.Area,
				Price:       apt.Price,
				Status:      apt.Status,
				Description: apt.Description,
				Images:      urls,
			}
			floorNumber := floor.FloorNumber
			for ii, file := range apt.Staged {
				ii, file, apt := ii, file, apt
				g.Go(func() error {
					key := fmt.Sprintf("apartments/%s/%d/%s/%s", id, floorNumber, apt.ID, file.Name)
					url, err := uc.storage.Upload(gctx, key, file.Data)
					if err != nil {
						return fmt.Errorf("upload apartment image %s/%s: %w", apt.ID, file.Name, err)
					}
					urls[ii] = url
					return nil
				})
			}
		}
		resolved[fi] = domain.Floor{
			FloorNumber: floor.FloorNumber,
			UnitCount:   floor.UnitCount,
			Apartments:  apartments,
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
