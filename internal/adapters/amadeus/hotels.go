package amadeus

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"sedi/internal/domain"
)

type hotelListResponse struct {
	Data []struct {
		HotelID  string `json:"hotelId"`
		Name     string `json:"name"`
		IATACode string `json:"iataCode"`
		GeoCode  struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"geoCode"`
	} `json:"data"`
}

type offersResponse struct {
	Data []domain.OfferBlock `json:"data"`
}

// HotelsByGeocode lists hotels within RadiusKM of a point.
func (c *Client) HotelsByGeocode(ctx context.Context, q domain.GeocodeQuery) ([]domain.HotelCandidate, error) {
	v := url.Values{
		"latitude":   {strconv.FormatFloat(q.Latitude, 'f', -1, 64)},
		"longitude":  {strconv.FormatFloat(q.Longitude, 'f', -1, 64)},
		"radius":     {strconv.Itoa(q.RadiusKM)},
		"radiusUnit": {"KM"},
	}
	addFilters(v, q.Amenities, q.Ratings)
	return c.listHotels(ctx, "hotels_by_geocode", byGeocode, v)
}

// HotelsByCity lists hotels within RadiusKM of a city or airport IATA code.
func (c *Client) HotelsByCity(ctx context.Context, q domain.CityQuery) ([]domain.HotelCandidate, error) {
	v := url.Values{
		"cityCode":   {q.CityCode},
		"radius":     {strconv.Itoa(q.RadiusKM)},
		"radiusUnit": {"KM"},
	}
	addFilters(v, q.Amenities, q.Ratings)
	return c.listHotels(ctx, "hotels_by_city", byCity, v)
}

// HotelOffers returns priced offers for a single hotel.
func (c *Client) HotelOffers(ctx context.Context, q domain.OfferQuery) ([]domain.OfferBlock, error) {
	v := url.Values{
		"hotelIds":     {q.HotelID},
		"adults":       {strconv.Itoa(q.Adults)},
		"checkInDate":  {q.CheckInDate},
		"checkOutDate": {q.CheckOutDate},
		"roomQuantity": {strconv.Itoa(q.RoomQuantity)},
	}
	if q.PriceRange != "" {
		v.Set("priceRange", q.PriceRange)
	}
	if q.Currency != "" {
		v.Set("currency", q.Currency)
	}

	var out offersResponse
	if err := c.get(ctx, "hotel_offers", hotelOffers, v, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) listHotels(ctx context.Context, endpoint, path string, v url.Values) ([]domain.HotelCandidate, error) {
	var out hotelListResponse
	if err := c.get(ctx, endpoint, path, v, &out); err != nil {
		return nil, err
	}
	hotels := make([]domain.HotelCandidate, 0, len(out.Data))
	for _, h := range out.Data {
		hotels = append(hotels, domain.HotelCandidate{
			HotelID:   h.HotelID,
			Name:      h.Name,
			CityCode:  h.IATACode,
			Latitude:  h.GeoCode.Latitude,
			Longitude: h.GeoCode.Longitude,
		})
	}
	return hotels, nil
}

func addFilters(v url.Values, amenities, ratings []string) {
	if len(amenities) > 0 {
		v.Set("amenities", strings.Join(amenities, ","))
	}
	if len(ratings) > 0 {
		v.Set("ratings", strings.Join(ratings, ","))
	}
}
