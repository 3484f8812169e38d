package usecase

import (
	"context"
	"errors"

	"github.com/your-org/estate-admin/internal/adapter/messaging/nats"
	"github.com/your-org/estate-admin/internal/listing/domain"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

// Page is one window of the filtered overview.
type Page struct {
	Items        []*domain.Listing `json:"items"`
	TotalMatched int               `json:"totalMatched"`
	PageCount    int               `json:"pageCount"`
	PageIndex    int               `json:"pageIndex"`
	PageSize     int               `json:"pageSize"`
}

// QueryUsecase serves the listing overview: fetch-all, in-memory
// filtering and pagination, single-record reads and deletion.
type QueryUsecase struct {
	repo      domain.ListingRepository
	cache     ListingCache
	publisher EventPublisher
	logger    *logger.Logger
}

func NewQueryUsecase(repo domain.ListingRepository, cache ListingCache, publisher EventPublisher, log *logger.Logger) *QueryUsecase {
	return &QueryUsecase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

// Search pulls the whole collection (cached briefly), applies the filter
// predicate and slices out the requested page. Everything recomputes
// from the full set on every call; there is no incremental index.
func (uc *QueryUsecase) Search(ctx context.Context, filter domain.Filter, pageSize, pageIndex int) (*Page, error) {
	listings, err := uc.fetchAll(ctx)
	if err != nil {
		uc.logger.Error("QueryUsecase.Search: fetch-all failed", "error", err.Error())
		return nil, err
	}

	matched := filter.Apply(listings)
	return &Page{
		Items:        domain.Paginate(matched, pageSize, pageIndex),
		TotalMatched: len(matched),
		PageCount:    domain.PageCount(len(matched), pageSize),
		PageIndex:    pageIndex,
		PageSize:     pageSize,
	}, nil
}

func (uc *QueryUsecase) fetchAll(ctx context.Context) ([]*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetAll(ctx)
		if err != nil {
			uc.logger.Warn("QueryUsecase.fetchAll: cache read failed, falling back to repository", "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	listings, err := uc.repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetAll(ctx, listings); err != nil {
			uc.logger.Warn("QueryUsecase.fetchAll: cache write failed", "error", err.Error())
		}
	}
	return listings, nil
}

func (uc *QueryUsecase) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("QueryUsecase.GetByID: cache read failed", "listing_id", id, "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Error("QueryUsecase.GetByID: repository read failed", "listing_id", id, "error", err.Error())
		}
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("QueryUsecase.GetByID: cache write failed", "listing_id", id, "error", err.Error())
		}
	}
	return listing, nil
}

// Delete removes the record and drops it from the cache. Storage
// objects under the listing's folders are left in place.
func (uc *QueryUsecase) Delete(ctx context.Context, id string) error {
	uc.logger.Info("QueryUsecase.Delete: deleting listing", "listing_id", id)

	if err := uc.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Error("QueryUsecase.Delete: repository delete failed", "listing_id", id, "error", err.Error())
		}
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, id); err != nil {
			uc.logger.Warn("QueryUsecase.Delete: cache delete failed", "listing_id", id, "error", err.Error())
		}
		if err := uc.cache.InvalidateAll(ctx); err != nil {
			uc.logger.Warn("QueryUsecase.Delete: cache invalidation failed", "error", err.Error())
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, nats.SubjectListingDeleted, ListingEvent{ID: id}); err != nil {
			uc.logger.Warn("QueryUsecase.Delete: failed to publish listing.deleted", "listing_id", id, "error", err.Error())
		}
	}
	return nil
}
