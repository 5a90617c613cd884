package app

import (
	"strconv"
	"strings"

	"sedi/internal/domain"
)

/********** alias registry (single source of truth) **********/

// The model is asked for camelCase keys but occasionally answers in other casings.
var prefAliases = map[string][]string{
	"cityCode":     {"cityCode", "city_code", "citycode", "city"},
	"latitude":     {"latitude", "lat", "geoCode.latitude"},
	"longitude":    {"longitude", "lon", "lng", "geoCode.longitude"},
	"amenities":    {"amenities"},
	"ratings":      {"ratings", "stars"},
	"adults":       {"adults", "guests"},
	"checkInDate":  {"checkInDate", "check_in_date", "checkIn"},
	"checkOutDate": {"checkOutDate", "check_out_date", "checkOut"},
	"roomQuantity": {"roomQuantity", "room_quantity", "rooms"},
	"priceRange":   {"priceRange", "price_range"},
	"currency":     {"currency", "Currency"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstAlias returns the first non-nil value for a named alias set.
func firstAlias(m map[string]any, key string) any {
	for _, p := range prefAliases[key] {
		if v := lookupAny(m, p); v != nil {
			return v
		}
	}
	return nil
}

// strFlexible: string, number or bool rendered as a string; "" otherwise.
func strFlexible(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// floatFlexible: number from float64 or a string like "41,39".
func floatFlexible(v any) *float64 {
	switch t := v.(type) {
	case float64:
		f := t
		return &f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

// intFlexible: whole number from float64 or numeric string; 0 when absent.
func intFlexible(v any) int {
	if f := floatFlexible(v); f != nil {
		return int(*f)
	}
	return 0
}

// stringsFlexible accepts ["a","b"], [4,5] or "a, b".
func stringsFlexible(v any) []string {
	var raw []string
	switch t := v.(type) {
	case []any:
		for _, e := range t {
			if s := strFlexible(e); s != "" {
				raw = append(raw, s)
			}
		}
	case string, float64:
		for _, s := range strings.Split(strFlexible(t), ",") {
			if s = strings.TrimSpace(s); s != "" {
				raw = append(raw, s)
			}
		}
	}
	return raw
}

/********** mappers **********/

// mapPreferences builds a preference record from the decoded model answer.
// Unknown amenities and out-of-range star levels are dropped since the provider rejects them.
func mapPreferences(m map[string]any) domain.Preferences {
	p := domain.Preferences{
		CityCode:     strFlexible(firstAlias(m, "cityCode")),
		Latitude:     floatFlexible(firstAlias(m, "latitude")),
		Longitude:    floatFlexible(firstAlias(m, "longitude")),
		Adults:       intFlexible(firstAlias(m, "adults")),
		CheckInDate:  strFlexible(firstAlias(m, "checkInDate")),
		CheckOutDate: strFlexible(firstAlias(m, "checkOutDate")),
		RoomQuantity: intFlexible(firstAlias(m, "roomQuantity")),
		PriceRange:   strFlexible(firstAlias(m, "priceRange")),
		Currency:     strFlexible(firstAlias(m, "currency")),
	}

	seen := map[string]bool{}
	for _, a := range stringsFlexible(firstAlias(m, "amenities")) {
		if c, ok := domain.CanonicalAmenity(a); ok && !seen[c] {
			seen[c] = true
			p.Amenities = append(p.Amenities, c)
		}
	}

	for _, r := range stringsFlexible(firstAlias(m, "ratings")) {
		if len(p.Ratings) == maxRatings {
			break
		}
		if n, err := strconv.Atoi(r); err == nil && n >= 1 && n <= 5 && !seen["r"+r] {
			seen["r"+r] = true
			p.Ratings = append(p.Ratings, r)
		}
	}
	return p.WithDefaults()
}

// provider accepts at most four star levels per request
const maxRatings = 4
