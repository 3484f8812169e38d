package form

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/estate-admin/internal/listing/domain"
)

func TestRegenerateFloors_BuildsRequestedTree(t *testing.T) {
	for _, count := range []int{1, 2, 5, 12} {
		t.Run(fmt.Sprintf("count_%d", count), func(t *testing.T) {
			store := NewStore()
			require.NoError(t, store.RegenerateFloors(count))

			d := store.Snapshot()
			assert.Equal(t, count, d.FloorCount)
			require.Len(t, d.Floors, count)
			for i, floor := range d.Floors {
				assert.Equal(t, i+1, floor.FloorNumber)
				assert.Equal(t, 1, floor.UnitCount)
				require.Len(t, floor.Apartments, 1)
				assert.Equal(t, fmt.Sprintf("%d_01", i+1), floor.Apartments[0].ID)
				assert.Equal(t, 1, floor.Apartments[0].RoomType)
				assert.Empty(t, floor.Apartments[0].Staged)
			}
		})
	}
}

func TestRegenerateFloors_RejectsInvalidCount(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.RegenerateFloors(3))
	before := store.Snapshot()

	for _, count := range []int{0, -1, -7} {
		err := store.RegenerateFloors(count)
		assert.ErrorIs(t, err, domain.ErrInvalidCount)
	}

	// Rejection is a no-op: the prior tree is untouched.
	assert.Equal(t, before, store.Snapshot())
}

func TestRegenerateFloors_DiscardsPriorEdits(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.RegenerateFloors(2))
	require.NoError(t, store.SetApartmentField(0, 0, "description", "corner unit"))

	// Destructive rebuild: changing the count drops per-apartment edits.
	require.NoError(t, store.RegenerateFloors(2))
	d := store.Snapshot()
	assert.Empty(t, d.Floors[0].Apartments[0].Description)
}

func TestRegenerateApartments_SynthesizesZeroPaddedIDs(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.RegenerateFloors(3))
	require.NoError(t, store.RegenerateApartments(1, 12))

	d := store.Snapshot()
	floor := d.Floors[1]
	assert.Equal(t, 12, floor.UnitCount)
	require.Len(t, floor.Apartments, 12)
	assert.Equal(t, "2_01", floor.Apartments[0].ID)
	assert.Equal(t, "2_09", floor.Apartments[8].ID)
	assert.Equal(t, "2_12", floor.Apartments[11].ID)
}

func TestRegenerateApartments_LeavesOtherFloorsUntouched(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.RegenerateFloors(3))
	require.NoError(t, store.SetApartmentField(0, 0, "price", 125000.0))

	require.NoError(t, store.RegenerateApartments(2, 4))

	d := store.Snapshot()
	assert.Equal(t, 125000.0, d.Floors[0].Apartments[0].Price)
	assert.Len(t, d.Floors[1].Apartments, 1)
	assert.Len(t, d.Floors[2].Apartments, 4)
}

func TestRegenerateApartments_RejectsInvalidInput(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.RegenerateFloors(2))
	before := store.Snapshot()

	assert.ErrorIs(t, store.RegenerateApartments(0, 0), domain.ErrInvalidCount)
	assert.ErrorIs(t, store.RegenerateApartments(0, -2), domain.ErrInvalidCount)
	assert.ErrorIs(t, store.RegenerateApartments(5, 1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, store.RegenerateApartments(-1, 1), domain.ErrIndexOutOfRange)

	assert.Equal(t, before, store.Snapshot())
}
