package domain

import "time"

type ListingKind string

const (
	KindBuilding ListingKind = "Building"
	KindHouse    ListingKind = "House"
)

type ListingStatus string

const (
	StatusForSale ListingStatus = "For Sale"
	StatusRent    ListingStatus = "Rent"
	StatusSold    ListingStatus = "Sold"
	StatusRented  ListingStatus = "Rented"
	StatusUnset   ListingStatus = ""
)

type ParkingKind string

const (
	ParkingUnderground ParkingKind = "Underground parking"
	ParkingGarage      ParkingKind = "Garage"
	ParkingStreet      ParkingKind = "Street parking"
	ParkingNone        ParkingKind = "None"
	ParkingUnset       ParkingKind = ""
)

// Apartment is one unit on a floor. The ID is synthetic:
// "{floorNumber}_{NN}" with a 2-digit zero-padded sequence, e.g. "3_02".
type Apartment struct {
	ID          string        `json:"_id"`
	RoomType    int           `json:"type"` // 1..8 rooms
	Area        float64       `json:"area"`
	Price       float64       `json:"price"`
	Status      ListingStatus `json:"status"`
	Description string        `json:"description"`
	Images      []string      `json:"images"` // resolved storage URLs only
}

// Floor holds an ordered run of apartments. UnitCount is the declared
// number of apartments; it matches len(Apartments) right after a
// regeneration but the two may drift under manual edits.
type Floor struct {
	FloorNumber int         `json:"floorNumber"` // 1-based, matches position
	UnitCount   int         `json:"numApartments"`
	Apartments  []Apartment `json:"apartments"`
}

// Listing is one persisted record in the "buildings" collection. The
// field names on the wire keep the shape the panel has always stored,
// including the historical "hause" spelling.
type Listing struct {
	ID          string        `json:"id"`
	Kind        ListingKind   `json:"typeBuilding"`
	Status      ListingStatus `json:"buildingStatus"`
	City        string        `json:"city"`
	Address     string        `json:"address"`
	Parking     ParkingKind   `json:"parking"`
	Price       float64       `json:"price"`
	Description string        `json:"description"`
	Image       string        `json:"image"` // primary image URL, empty if none

	// Building-only fields.
	UnitCount  int     `json:"apartments"` // declared total, independent of nested count
	FloorCount int     `json:"numFloors"`
	Floors     []Floor `json:"floors"`

	// House-only fields.
	HouseRooms  int      `json:"hauseRooms"`
	HouseArea   float64  `json:"hauseArea"`
	HouseImages []string `json:"hauseImages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
