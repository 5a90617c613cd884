package app

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"sedi/internal/domain"
)

const (
	MaxMatches       = 5
	bookingSearchURL = "https://www.booking.com/searchresults.html"
)

// BookingURL builds a booking search link for a hotel; aid is added only when affiliateID is set.
func BookingURL(hotelName, cityCode, affiliateID string) string {
	u := bookingSearchURL + "?ss=" + url.QueryEscape(hotelName+" "+cityCode)
	if affiliateID != "" {
		u += "&aid=" + url.QueryEscape(affiliateID)
	}
	return u
}

type rankedMatch struct {
	match domain.Match
	price float64
}

// FormatMatches flattens offer blocks into at most MaxMatches rows, cheapest first.
// Unparseable prices, blanks included, rank after every valid one. A missing total is shown as "0".
func FormatMatches(blocks []domain.OfferBlock, affiliateID string) []domain.Match {
	var rows []rankedMatch

	for _, b := range blocks {
		name := orDefault(b.Hotel.Name, "Unnamed Hotel")
		link := BookingURL(name, b.Hotel.CityCode, affiliateID)

		for _, o := range b.Offers {
			total := "0"
			if o.Price.Total != nil {
				total = *o.Price.Total
			}
			currency := orDefault(o.Price.Currency, domain.DefaultCurrency)

			rows = append(rows, rankedMatch{
				match: domain.Match{
					HotelName:       name,
					RoomDescription: orDefault(o.Room.Description.Text, "No description"),
					Price:           total + " " + currency,
					CheckIn:         o.CheckInDate,
					CheckOut:        o.CheckOutDate,
					BookingURL:      link,
				},
				price: numericPrice(total),
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].price < rows[j].price })
	if len(rows) > MaxMatches {
		rows = rows[:MaxMatches]
	}

	out := make([]domain.Match, len(rows))
	for i, r := range rows {
		out[i] = r.match
	}
	return out
}

// numericPrice returns +Inf for anything that is not a usable number.
func numericPrice(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return math.Inf(1)
	}
	return f
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
