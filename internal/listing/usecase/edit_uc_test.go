package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/estate-admin/internal/adapter/messaging/nats"
	"github.com/your-org/estate-admin/internal/listing/domain"
	"github.com/your-org/estate-admin/internal/listing/form"
)

func seedBuilding() *domain.Listing {
	return &domain.Listing{
		ID:         "b1",
		Kind:       domain.KindBuilding,
		Status:     domain.StatusForSale,
		City:       "Almaty",
		Address:    "12 Abay Ave",
		Price:      250000,
		FloorCount: 2,
		Floors: []domain.Floor{
			{FloorNumber: 1, UnitCount: 1, Apartments: []domain.Apartment{
				{ID: "1_01", RoomType: 2, Area: 55, Images: []string{}},
			}},
			{FloorNumber: 2, UnitCount: 1, Apartments: []domain.Apartment{
				{ID: "2_01", RoomType: 3, Area: 72, Images: []string{}},
			}},
		},
	}
}

func TestApplyField_ScalarsAndRejections(t *testing.T) {
	uc := NewEditUsecase(newFakeRepo(), newFakeStorage(), nil, nil, testLogger())
	listing := seedBuilding()

	require.NoError(t, uc.ApplyField(listing, "city", "Astana"))
	require.NoError(t, uc.ApplyField(listing, "price", 275000.0))
	require.NoError(t, uc.ApplyField(listing, "buildingStatus", "Sold"))
	assert.Equal(t, "Astana", listing.City)
	assert.Equal(t, 275000.0, listing.Price)
	assert.Equal(t, domain.StatusSold, listing.Status)

	assert.ErrorIs(t, uc.ApplyField(listing, "typeBuilding", "House"), domain.ErrUnknownField)
	assert.ErrorIs(t, uc.ApplyField(listing, "price", "lots"), domain.ErrInvalidFieldType)
}

func TestApplyApartmentField_BoundsChecked(t *testing.T) {
	uc := NewEditUsecase(newFakeRepo(), newFakeStorage(), nil, nil, testLogger())
	listing := seedBuilding()

	require.NoError(t, uc.ApplyApartmentField(listing, 1, 0, "price", 99000.0))
	assert.Equal(t, 99000.0, listing.Floors[1].Apartments[0].Price)

	err := uc.ApplyApartmentField(listing, 4, 0, "price", 1.0)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestSave_WithoutImagePreservesEverythingElse(t *testing.T) {
	repo := newFakeRepo()
	seed := seedBuilding()
	repo.seed(seed)
	storage := newFakeStorage()
	pub := &fakePublisher{}
	uc := NewEditUsecase(repo, storage, pub, nil, testLogger())

	edited := cloneListing(seed)
	require.NoError(t, uc.ApplyField(edited, "city", "Astana"))

	saved, err := uc.Save(context.Background(), edited, nil)
	require.NoError(t, err)
	assert.Equal(t, "Astana", saved.City)

	persisted := repo.stored("b1")
	assert.Equal(t, "Astana", persisted.City)
	assert.Equal(t, seed.Floors, persisted.Floors, "untouched nested tree must survive the save")
	assert.Equal(t, seed.Price, persisted.Price)

	// No storage traffic on a field-only save.
	assert.Zero(t, storage.uploadCount())
	assert.Empty(t, storage.removed)

	assert.Equal(t, []string{nats.SubjectListingUpdated}, pub.subjects())
}

func TestSave_ImageReplacementEmptiesOldFolderFirst(t *testing.T) {
	repo := newFakeRepo()
	seed := seedBuilding()
	repo.seed(seed)
	storage := newFakeStorage()

	// Two stale objects sit under the listing's folder, one elsewhere.
	_, err := storage.Upload(context.Background(), "buildings/12 Abay Ave/old1.jpg", []byte("o1"))
	require.NoError(t, err)
	_, err = storage.Upload(context.Background(), "buildings/12 Abay Ave/old2.jpg", []byte("o2"))
	require.NoError(t, err)
	_, err = storage.Upload(context.Background(), "buildings/7 Dostyk Ave/keep.jpg", []byte("k"))
	require.NoError(t, err)

	uc := NewEditUsecase(repo, storage, nil, nil, testLogger())

	newImage := form.StageFile("fresh.jpg", []byte("fresh"))
	saved, err := uc.Save(context.Background(), cloneListing(seed), &newImage)
	require.NoError(t, err)

	assert.Equal(t, "https://storage.local/estate-images/buildings/12 Abay Ave/fresh.jpg", saved.Image)
	assert.ElementsMatch(t, []string{
		"buildings/12 Abay Ave/old1.jpg",
		"buildings/12 Abay Ave/old2.jpg",
	}, storage.removed)

	keys, err := storage.ListFolder(context.Background(), "buildings/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"buildings/12 Abay Ave/fresh.jpg",
		"buildings/7 Dostyk Ave/keep.jpg",
	}, keys)

	assert.Equal(t, saved.Image, repo.stored("b1").Image)
}

func TestSave_UploadFailureLeavesRecordUntouched(t *testing.T) {
	repo := newFakeRepo()
	seed := seedBuilding()
	repo.seed(seed)
	storage := newFakeStorage()
	storage.uploadErr = errors.New("bucket unavailable")
	uc := NewEditUsecase(repo, storage, nil, nil, testLogger())

	newImage := form.StageFile("fresh.jpg", []byte("fresh"))
	edited := cloneListing(seed)
	require.NoError(t, uc.ApplyField(edited, "city", "Astana"))

	_, err := uc.Save(context.Background(), edited, &newImage)
	require.Error(t, err)
	assert.Equal(t, "Almaty", repo.stored("b1").City)
}

func TestSave_MergeErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(seedBuilding())
	repo.mergeErr = errors.New("write concern failed")
	pub := &fakePublisher{}
	uc := NewEditUsecase(repo, newFakeStorage(), pub, nil, testLogger())

	_, err := uc.Save(context.Background(), seedBuilding(), nil)
	require.Error(t, err)
	assert.Empty(t, pub.subjects())
}
