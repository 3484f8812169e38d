package domain

import "context"

type ListingRepository interface {
	// CreatePlaceholder inserts a minimal record carrying only the kind
	// and returns the store-assigned identity.
	CreatePlaceholder(ctx context.Context, kind ListingKind) (string, error)
	// Merge writes the listing onto an existing identity with a $set-style
	// merge; fields absent from the listing are left untouched.
	Merge(ctx context.Context, id string, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FetchAll(ctx context.Context) ([]*Listing, error)
	Delete(ctx context.Context, id string) error
}
