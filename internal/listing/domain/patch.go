package domain

import "fmt"

// UpdateApartmentField replaces one field of one apartment and returns a
// new floor sequence. Only the path from the root to the touched leaf is
// copied; untouched floors and apartments are shared with the input.
func UpdateApartmentField(floors []Floor, floorIndex, apartmentIndex int, field string, value interface{}) ([]Floor, error) {
	if floorIndex < 0 || floorIndex >= len(floors) {
		return nil, fmt.Errorf("floor %d: %w", floorIndex, ErrIndexOutOfRange)
	}
	if apartmentIndex < 0 || apartmentIndex >= len(floors[floorIndex].Apartments) {
		return nil, fmt.Errorf("apartment %d on floor %d: %w", apartmentIndex, floorIndex, ErrIndexOutOfRange)
	}

	apt := floors[floorIndex].Apartments[apartmentIndex]
	switch field {
	case "type":
		n, ok := toInt(value)
		if !ok {
			return nil, fmt.Errorf("field %q: %w", field, ErrInvalidFieldType)
		}
		apt.RoomType = n
	case "area":
		n, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("field %q: %w", field, ErrInvalidFieldType)
		}
		apt.Area = n
	case "price":
		n, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("field %q: %w", field, ErrInvalidFieldType)
		}
		apt.Price = n
	case "status":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q: %w", field, ErrInvalidFieldType)
		}
		apt.Status = ListingStatus(s)
	case "description":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q: %w", field, ErrInvalidFieldType)
		}
		apt.Description = s
	default:
		return nil, fmt.Errorf("field %q: %w", field, ErrUnknownField)
	}

	newApartments := make([]Apartment, len(floors[floorIndex].Apartments))
	copy(newApartments, floors[floorIndex].Apartments)
	newApartments[apartmentIndex] = apt

	newFloor := floors[floorIndex]
	newFloor.Apartments = newApartments

	newFloors := make([]Floor, len(floors))
	copy(newFloors, floors)
	newFloors[floorIndex] = newFloor
	return newFloors, nil
}

// toInt accepts the numeric shapes a JSON body can carry.
func toInt(v interface{}) (int, bool) {
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

func toFloat(v interface{}) (float64, bool) {
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
