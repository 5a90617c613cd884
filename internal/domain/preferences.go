package domain

import "strings"

const (
	DefaultAdults       = 1
	DefaultRoomQuantity = 1
	DefaultCurrency     = "USD"
	DefaultPriceRange   = "0-1000"
	SearchRadiusKM      = 10
)

// Preferences is the structured search request extracted from free text.
// Dates stay as strings until NormalizeDates has repaired them.
type Preferences struct {
	CityCode     string   `json:"cityCode,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Ratings      []string `json:"ratings,omitempty"`
	Adults       int      `json:"adults"`
	CheckInDate  string   `json:"checkInDate"`
	CheckOutDate string   `json:"checkOutDate"`
	RoomQuantity int      `json:"roomQuantity"`
	PriceRange   string   `json:"priceRange,omitempty"`
	Currency     string   `json:"currency"`
}

// HasCoordinates reports whether a geocode search is possible.
func (p Preferences) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// HasLocation reports whether any discovery mode can run.
func (p Preferences) HasLocation() bool {
	return p.HasCoordinates() || strings.TrimSpace(p.CityCode) != ""
}

// WithDefaults returns a copy with occupancy, price and currency defaults filled in.
func (p Preferences) WithDefaults() Preferences {
	if p.Adults < 1 {
		p.Adults = DefaultAdults
	}
	if p.RoomQuantity < 1 {
		p.RoomQuantity = DefaultRoomQuantity
	}
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if len(p.Currency) != 3 {
		p.Currency = DefaultCurrency
	}
	if strings.TrimSpace(p.PriceRange) == "" {
		p.PriceRange = DefaultPriceRange
	}
	p.CityCode = strings.ToUpper(strings.TrimSpace(p.CityCode))
	return p
}

// Amenities is the amenity vocabulary the hotel provider accepts as a filter.
var Amenities = []string{
	"SWIMMING_POOL", "SPA", "FITNESS_CENTER", "AIR_CONDITIONING", "RESTAURANT", "PARKING",
	"PETS_ALLOWED", "AIRPORT_SHUTTLE", "BUSINESS_CENTER", "DISABLED_FACILITIES", "WIFI",
	"MEETING_ROOMS", "NO_KID_ALLOWED", "TENNIS", "GOLF", "KITCHEN", "ANIMAL_WATCHING",
	"BABY-SITTING", "BEACH", "CASINO", "JACUZZI", "SAUNA", "SOLARIUM", "MASSAGE",
	"VALET_PARKING", "BAR or LOUNGE", "KIDS_WELCOME", "NO_PORN_FILMS", "MINIBAR",
	"TELEVISION", "WI-FI_IN_ROOM", "ROOM_SERVICE", "GUARDED_PARKG", "SERV_SPEC_MENU",
}

var amenityIndex = func() map[string]string {
	m := make(map[string]string, len(Amenities))
	for _, a := range Amenities {
		m[strings.ToUpper(a)] = a
	}
	return m
}()

// CanonicalAmenity maps a case-insensitive amenity name onto the vocabulary.
func CanonicalAmenity(s string) (string, bool) {
	a, ok := amenityIndex[strings.ToUpper(strings.TrimSpace(s))]
	return a, ok
}
