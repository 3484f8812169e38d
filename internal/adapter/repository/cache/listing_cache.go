package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/estate-admin/internal/listing/domain"
)

const (
	listingTTL  = 1 * time.Hour
	fetchAllTTL = 1 * time.Minute
	fetchAllKey = "listings:all"
)

// ListingCache keeps listings in Redis: individual records by id plus
// the full fetched set the overview filters over.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(addr string) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr, // e.g., "localhost:6379"
	})
	_, err := client.Ping(context.Background()).Result()
	if err != nil {
		return nil, err
	}
	return &ListingCache{client: client}, nil
}

func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, "listing:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *ListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "listing:"+listing.ID, data, listingTTL).Err()
}

func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	return c.client.Del(ctx, "listing:"+id).Err()
}

func (c *ListingCache) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	data, err := c.client.Get(ctx, fetchAllKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var listings []*domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *ListingCache) SetAll(ctx context.Context, listings []*domain.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fetchAllKey, data, fetchAllTTL).Err()
}

// InvalidateAll drops the fetched set; every write path calls this.
func (c *ListingCache) InvalidateAll(ctx context.Context) error {
	return c.client.Del(ctx, fetchAllKey).Err()
}
