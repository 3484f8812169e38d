package mongodb

import (
	"fmt"
	"time"

	"github.com/your-org/estate-admin/internal/listing/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listingDocument is the stored shape of a listing in the "buildings"
// collection. Field names keep the wire format the panel has always
// written, including the historical "hause" spelling.
type listingDocument struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	TypeBuilding   string               `bson:"typeBuilding"`
	BuildingStatus string               `bson:"buildingStatus"`
	City           string               `bson:"city"`
	Address        string               `bson:"address"`
	Parking        string               `bson:"parking"`
	Price          float64              `bson:"price"`
	Description    string               `bson:"description"`
	Image          string               `bson:"image"`
	Apartments     int                  `bson:"apartments"`
	NumFloors      int                  `bson:"numFloors"`
	Floors         []floorDocument      `bson:"floors"`
	HauseRooms     int                  `bson:"hauseRooms"`
	HauseArea      float64              `bson:"hauseArea"`
	HauseImages    []string             `bson:"hauseImages"`
	CreatedAt      time.Time            `bson:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt,omitempty"`
}

type floorDocument struct {
	FloorNumber   int                 `bson:"floorNumber"`
	NumApartments int                 `bson:"numApartments"`
	Apartments    []apartmentDocument `bson:"apartments"`
}

type apartmentDocument struct {
	ID          string   `bson:"_id"`
	Type        int      `bson:"type"`
	Area        float64  `bson:"area"`
	Price       float64  `bson:"price"`
	Status      string   `bson:"status"`
	Description string   `bson:"description"`
	Images      []string `bson:"images"`
}

// toListingDocument converts the domain model into its stored shape. An
// empty domain ID maps to NilObjectID so MongoDB assigns one on insert.
func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	docID := primitive.NilObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("toListingDocument: invalid ID format '%s': %w", l.ID, err)
		}
	}

	floors := make([]floorDocument, 0, len(l.Floors))
	for _, f := range l.Floors {
		apartments := make([]apartmentDocument, 0, len(f.Apartments))
		for _, a := range f.Apartments {
			images := a.Images
			if images == nil {
				images = []string{}
			}
			apartments = append(apartments, apartmentDocument{
				ID:          a.ID,
				Type:        a.RoomType,
				Area:        a.Area,
				Price:       a.Price,
				Status:      string(a.Status),
				Description: a.Description,
				Images:      images,
			})
		}
		floors = append(floors, floorDocument{
			FloorNumber:   f.FloorNumber,
			NumApartments: f.UnitCount,
			Apartments:    apartments,
		})
	}

	hauseImages := l.HouseImages
	if hauseImages == nil {
		hauseImages = []string{}
	}

	return &listingDocument{
		ID:             docID,
		TypeBuilding:   string(l.Kind),
		BuildingStatus: string(l.Status),
		City:           l.City,
		Address:        l.Address,
		Parking:        string(l.Parking),
		Price:          l.Price,
		Description:    l.Description,
		Image:          l.Image,
		Apartments:     l.UnitCount,
		NumFloors:      l.FloorCount,
		Floors:         floors,
		HauseRooms:     l.HouseRooms,
		HauseArea:      l.HouseArea,
		HauseImages:    hauseImages,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}

	floors := make([]domain.Floor, 0, len(d.Floors))
	for _, f := range d.Floors {
		apartments := make([]domain.Apartment, 0, len(f.Apartments))
		for _, a := range f.Apartments {
			apartments = append(apartments, domain.Apartment{
				ID:          a.ID,
				RoomType:    a.Type,
				Area:        a.Area,
				Price:       a.Price,
				Status:      domain.ListingStatus(a.Status),
				Description: a.Description,
				Images:      a.Images,
			})
		}
		floors = append(floors, domain.Floor{
			FloorNumber: f.FloorNumber,
			UnitCount:   f.NumApartments,
			Apartments:  apartments,
		})
	}

	return &domain.Listing{
		ID:          d.ID.Hex(),
		Kind:        domain.ListingKind(d.TypeBuilding),
		Status:      domain.ListingStatus(d.BuildingStatus),
		City:        d.City,
		Address:     d.Address,
		Parking:     domain.ParkingKind(d.Parking),
		Price:       d.Price,
		Description: d.Description,
		Image:       d.Image,
		UnitCount:   d.Apartments,
		FloorCount:  d.NumFloors,
		Floors:      floors,
		HouseRooms:  d.HauseRooms,
		HouseArea:   d.HauseArea,
		HouseImages: d.HauseImages,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings
}
