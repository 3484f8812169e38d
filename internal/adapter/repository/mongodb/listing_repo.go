package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/estate-admin/internal/listing/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListingRepository stores listings in the "buildings" collection.
type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("buildings")}
}

// CreatePlaceholder inserts a minimal record carrying only the kind so a
// stable identity exists before any image upload starts.
func (r *ListingRepository) CreatePlaceholder(ctx context.Context, kind domain.ListingKind) (string, error) {
	res, err := r.collection.InsertOne(ctx, bson.M{
		"typeBuilding": string(kind),
		"createdAt":    time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("insert placeholder: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert placeholder: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Merge $set-writes the full document onto an existing identity. Fields
// absent from the document are left untouched.
func (r *ListingRepository) Merge(ctx context.Context, id string, listing *domain.Listing) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("merge listing: invalid id '%s': %w", id, err)
	}

	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	doc.ID = primitive.NilObjectID // _id never changes on merge
	doc.UpdatedAt = time.Now()

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("merge listing %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("find listing: invalid id '%s': %w", id, err)
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find listing %s: %w", id, err)
	}
	return toDomainListing(&doc), nil
}

// FetchAll pulls the entire collection; filtering and pagination happen
// on the caller's side.
func (r *ListingRepository) FetchAll(ctx context.Context) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetch all listings: %w", err)
	}
	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("fetch all listings: decode: %w", err)
	}
	return toDomainListings(docs), nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("delete listing: invalid id '%s': %w", id, err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}
