package domain

import "context"

// Completer sends one prompt to a language model and returns the raw text answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Interpreter turns free text into a preference record.
type Interpreter interface {
	Extract(ctx context.Context, text string) (*Preferences, error)
}

// HotelProvider is the inventory and pricing backend.
type HotelProvider interface {
	HotelsByGeocode(ctx context.Context, q GeocodeQuery) ([]HotelCandidate, error)
	HotelsByCity(ctx context.Context, q CityQuery) ([]HotelCandidate, error)
	HotelOffers(ctx context.Context, q OfferQuery) ([]OfferBlock, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}

type GeocodeQuery struct {
	Latitude, Longitude float64
	RadiusKM            int
	Amenities           []string
	Ratings             []string
}

type CityQuery struct {
	CityCode  string
	RadiusKM  int
	Amenities []string
	Ratings   []string
}

type OfferQuery struct {
	HotelID      string
	Adults       int
	CheckInDate  string
	CheckOutDate string
	RoomQuantity int
	PriceRange   string
	Currency     string
}
