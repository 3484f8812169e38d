package form

import (
	"fmt"

	"github.com/your-org/estate-admin/internal/listing/domain"
)

// newApartments initializes count apartments for a floor, each with a
// freshly synthesized id "{floorNumber}_{NN}".
func newApartments(floorNumber, count int) []Apartment {
	apartments := make([]Apartment, count)
	for i := range apartments {
		apartments[i] = Apartment{
			ID:       fmt.Sprintf("%d_%02d", floorNumber, i+1),
			RoomType: 1,
			Staged:   []StagedFile{},
		}
	}
	return apartments
}

func newFloors(count int) []Floor {
	floors := make([]Floor, count)
	for i := range floors {
		floors[i] = Floor{
			FloorNumber: i + 1,
			UnitCount:   1,
			Apartments:  newApartments(i+1, 1),
		}
	}
	return floors
}

// RegenerateFloors replaces the entire tree with count floors, each
// holding exactly one fresh apartment. This is a deliberate destructive
// rebuild: the UI sets a count, it never adds or removes single units,
// so prior per-apartment edits are discarded. A non-positive count is
// rejected and the prior tree is left untouched.
func (s *Store) RegenerateFloors(count int) error {
	if count < 1 {
		return fmt.Errorf("floors %d: %w", count, domain.ErrInvalidCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft
	d.FloorCount = count
	d.Floors = newFloors(count)
	s.draft = d
	return nil
}

// RegenerateApartments replaces one floor's apartment run with count
// fresh apartments and recomputes every id on that floor. Other floors
// are shared with the previous snapshot. Rejection leaves prior state
// untouched; the operation never partially applies.
func (s *Store) RegenerateApartments(floorIndex, count int) error {
	if count < 1 {
		return fmt.Errorf("apartments %d: %w", count, domain.ErrInvalidCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if floorIndex < 0 || floorIndex >= len(s.draft.Floors) {
		return fmt.Errorf("floor %d: %w", floorIndex, domain.ErrIndexOutOfRange)
	}

	d := s.draft
	newFloor := d.Floors[floorIndex]
	newFloor.UnitCount = count
	newFloor.Apartments = newApartments(newFloor.FloorNumber, count)

	newFloors := make([]Floor, len(d.Floors))
	copy(newFloors, d.Floors)
	newFloors[floorIndex] = newFloor

	d.Floors = newFloors
	s.draft = d
	return nil
}
