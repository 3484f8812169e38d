package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/estate-admin/internal/adapter/messaging/nats"
	"github.com/your-org/estate-admin/internal/listing/domain"
)

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.seed(
		&domain.Listing{ID: "b1", Kind: domain.KindBuilding, Status: domain.StatusForSale, City: "Almaty", Price: 250000},
		&domain.Listing{ID: "b2", Kind: domain.KindBuilding, Status: domain.StatusRent, City: "Astana", Price: 1200},
		&domain.Listing{ID: "b3", Kind: domain.KindBuilding, Status: domain.StatusSold, City: "Almaty", Price: 310000},
		&domain.Listing{ID: "h1", Kind: domain.KindHouse, Status: domain.StatusForSale, City: "Shymkent", Price: 95000, HouseArea: 140},
		&domain.Listing{ID: "h2", Kind: domain.KindHouse, Status: domain.StatusRent, City: "Almaty", Price: 800, HouseArea: 95.5},
	)
	return repo
}

func TestSearch_FiltersByKind(t *testing.T) {
	uc := NewQueryUsecase(seededRepo(), nil, nil, testLogger())

	page, err := uc.Search(context.Background(), domain.Filter{Kind: domain.KindHouse}, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, page.TotalMatched)
	assert.Equal(t, 1, page.PageCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "h1", page.Items[0].ID)
	assert.Equal(t, "h2", page.Items[1].ID)
}

func TestSearch_EmptyFilterPaginates(t *testing.T) {
	uc := NewQueryUsecase(seededRepo(), nil, nil, testLogger())

	page, err := uc.Search(context.Background(), domain.Filter{}, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 5, page.TotalMatched)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, 1, page.PageIndex)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b3", page.Items[0].ID)
}

func TestSearch_PageBeyondEndIsEmpty(t *testing.T) {
	uc := NewQueryUsecase(seededRepo(), nil, nil, testLogger())

	page, err := uc.Search(context.Background(), domain.Filter{}, 10, 7)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 5, page.TotalMatched)
}

func TestGetByID(t *testing.T) {
	uc := NewQueryUsecase(seededRepo(), nil, nil, testLogger())

	listing, err := uc.GetByID(context.Background(), "b2")
	require.NoError(t, err)
	assert.Equal(t, "Astana", listing.City)

	_, err = uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestDelete_RemovesAndPublishes(t *testing.T) {
	repo := seededRepo()
	pub := &fakePublisher{}
	uc := NewQueryUsecase(repo, nil, pub, testLogger())

	require.NoError(t, uc.Delete(context.Background(), "b1"))

	_, err := repo.FindByID(context.Background(), "b1")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.Equal(t, []string{nats.SubjectListingDeleted}, pub.subjects())
}

func TestDelete_MissingListing(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewQueryUsecase(seededRepo(), nil, pub, testLogger())

	err := uc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	assert.Empty(t, pub.subjects())
}
