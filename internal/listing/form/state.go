// Package form holds the draft of one listing while the operator fills
// the add form: scalar fields, the floor/apartment tree and staged image
// files. Every mutation produces a new snapshot by copying only the path
// from the root to the touched leaf; the store keeps the latest snapshot
// only, with no history.
package form

import (
	"fmt"
	"sync"

	"github.com/your-org/estate-admin/internal/listing/domain"
)

// Apartment mirrors domain.Apartment but carries staged files instead of
// resolved image URLs. URLs only exist after submission.
type Apartment struct {
	ID          string
	RoomType    int
	Area        float64
	Price       float64
	Status      domain.ListingStatus
	Description string
	Staged      []StagedFile
}

type Floor struct {
	FloorNumber int
	UnitCount   int
	Apartments  []Apartment
}

// Draft is the full form state for one listing.
type Draft struct {
	Kind        domain.ListingKind
	Status      domain.ListingStatus
	City        string
	Address     string
	Parking     domain.ParkingKind
	Price       float64
	Description string

	UnitCount  int // declared building total, independent of the nested count
	FloorCount int
	Floors     []Floor

	HouseRooms int
	HouseArea  float64

	Image       *StagedFile
	HouseImages []StagedFile
}

func initialDraft() Draft {
	return Draft{
		FloorCount: 1,
		HouseRooms: 1,
		Floors:     newFloors(1),
	}
}

// Store holds the single live draft for a session.
type Store struct {
	mu    sync.Mutex
	draft Draft
}

func NewStore() *Store {
	return &Store{draft: initialDraft()}
}

// Snapshot returns the latest draft. Mutations never modify slices in
// place, so the returned value stays consistent after later calls.
func (s *Store) Snapshot() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Reset returns the store to the empty draft.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = initialDraft()
}

// SetField replaces one top-level scalar. The value must match the
// field's declared type; no further validation is applied.
func (s *Store) SetField(name string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft
	switch name {
	case "typeBuilding":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.Kind = domain.ListingKind(v)
	case "buildingStatus":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.Status = domain.ListingStatus(v)
	case "city":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.City = v
	case "address":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.Address = v
	case "parking":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.Parking = domain.ParkingKind(v)
	case "description":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.Description = v
	case "price":
		v, ok := coerceFloat(value)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.Price = v
	case "hauseArea":
		v, ok := coerceFloat(value)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.HouseArea = v
	case "apartments":
		v, ok := coerceInt(value)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.UnitCount = v
	case "hauseRooms":
		v, ok := coerceInt(value)
		if !ok {
			return fmt.Errorf("field %q: %w", name, domain.ErrInvalidFieldType)
		}
		d.HouseRooms = v
	default:
		return fmt.Errorf("field %q: %w", name, domain.ErrUnknownField)
	}

	s.draft = d
	return nil
}

// SetFloors replaces the whole nested tree. Only the tree builder calls
// this; everything else goes through the path-addressed setters.
func (s *Store) SetFloors(floors []Floor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.Floors = floors
	s.draft = d
}

// SetApartmentField replaces one field of one apartment. Out-of-range
// indices are rejected with an explicit error rather than ignored.
func (s *Store) SetApartmentField(floorIndex, apartmentIndex int, field string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apt, err := s.apartmentAt(floorIndex, apartmentIndex)
	if err != nil {
		return err
	}

	switch field {
	case "type":
		v, ok := coerceInt(value)
		if !ok {
			return fmt.Errorf("field %q: %w", field, domain.ErrInvalidFieldType)
		}
		apt.RoomType = v
	case "area":
		v, ok := coerceFloat(value)
		if !ok {
			return fmt.Errorf("field %q: %w", field, domain.ErrInvalidFieldType)
		}
		apt.Area = v
	case "price":
		v, ok := coerceFloat(value)
		if !ok {
			return fmt.Errorf("field %q: %w", field, domain.ErrInvalidFieldType)
		}
		apt.Price = v
	case "status":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", field, domain.ErrInvalidFieldType)
		}
		apt.Status = domain.ListingStatus(v)
	case "description":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q: %w", field, domain.ErrInvalidFieldType)
		}
		apt.Description = v
	default:
		return fmt.Errorf("field %q: %w", field, domain.ErrUnknownField)
	}

	s.replaceApartment(floorIndex, apartmentIndex, apt)
	return nil
}

// apartmentAt returns a copy of the addressed apartment after bounds
// checks. Callers mutate the copy and hand it to replaceApartment.
func (s *Store) apartmentAt(floorIndex, apartmentIndex int) (Apartment, error) {
	if floorIndex < 0 || floorIndex >= len(s.draft.Floors) {
		return Apartment{}, fmt.Errorf("floor %d: %w", floorIndex, domain.ErrIndexOutOfRange)
	}
	if apartmentIndex < 0 || apartmentIndex >= len(s.draft.Floors[floorIndex].Apartments) {
		return Apartment{}, fmt.Errorf("apartment %d on floor %d: %w", apartmentIndex, floorIndex, domain.ErrIndexOutOfRange)
	}
	return s.draft.Floors[floorIndex].Apartments[apartmentIndex], nil
}

// replaceApartment rebuilds the path root → floor → apartment, sharing
// every untouched floor and apartment with the previous snapshot.
func (s *Store) replaceApartment(floorIndex, apartmentIndex int, apt Apartment) {
	d := s.draft

	newApartments := make([]Apartment, len(d.Floors[floorIndex].Apartments))
	copy(newApartments, d.Floors[floorIndex].Apartments)
	newApartments[apartmentIndex] = apt

	newFloor := d.Floors[floorIndex]
	newFloor.Apartments = newApartments

	newFloors := make([]Floor, len(d.Floors))
	copy(newFloors, d.Floors)
	newFloors[floorIndex] = newFloor

	d.Floors = newFloors
	s.draft = d
}

// coerceInt accepts the numeric shapes a decoded JSON body can carry.
func coerceInt(v interface{}) (int, bool) {
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

func coerceFloat(v interface{}) (float64, bool) {
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
