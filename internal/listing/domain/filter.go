package domain

import "strings"

// Filter is the multi-field search criteria for the listing overview.
// A zero value for any criterion means "absent": it always passes.
type Filter struct {
	Kind      ListingKind
	Status    ListingStatus
	City      string
	Address   string
	Parking   ParkingKind
	AreaFrom  float64
	AreaTo    float64
	PriceFrom float64
	PriceTo   float64
}

// Matches reports whether the listing satisfies every present criterion.
// Kind, status and parking compare exactly; city and address are
// case-insensitive substring matches; area and price bounds are inclusive.
func (f Filter) Matches(l *Listing) bool {
	if f.Kind != "" && l.Kind != f.Kind {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(l.City), strings.ToLower(f.City)) {
		return false
	}
	if f.Address != "" && !strings.Contains(strings.ToLower(l.Address), strings.ToLower(f.Address)) {
		return false
	}
	if f.Parking != "" && l.Parking != f.Parking {
		return false
	}
	if f.AreaFrom > 0 && l.HouseArea < f.AreaFrom {
		return false
	}
	if f.AreaTo > 0 && l.HouseArea > f.AreaTo {
		return false
	}
	if f.PriceFrom > 0 && l.Price < f.PriceFrom {
		return false
	}
	if f.PriceTo > 0 && l.Price > f.PriceTo {
		return false
	}
	return true
}

// Apply filters the full fetched set; the result keeps the input order.
func (f Filter) Apply(listings []*Listing) []*Listing {
	matched := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if f.Matches(l) {
			matched = append(matched, l)
		}
	}
	return matched
}

// Paginate returns the window [pageIndex*pageSize, pageIndex*pageSize+pageSize),
// clamped to the sequence bounds. Page indexes are 0-based.
func Paginate(listings []*Listing, pageSize, pageIndex int) []*Listing {
	if pageSize <= 0 || pageIndex < 0 {
		return []*Listing{}
	}
	offset := pageIndex * pageSize
	if offset >= len(listings) {
		return []*Listing{}
	}
	end := offset + pageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[offset:end]
}

// PageCount is ceil(total / pageSize).
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
