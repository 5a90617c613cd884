package app

import (
	"fmt"
	"strings"

	"sedi/internal/domain"
)

const extractionPrompt = `You are an assistant helping to book hotel rooms.
Today's date is %[1]s (GMT).

Extract the following preferences from the user's request:
- cityCode. Use IATA codes, airport codes when the user names an airport rather than a city. String.
- latitude. Latitude if a landmark is specified.
- longitude. Longitude if a landmark is specified.
- amenities (if mentioned). Array of strings. Available values are: %[2]s
- ratings. Hotel stars. Up to four values, array of strings.
- adults. Number of adult guests (1-9) per room. Default to 1 if not specified.
- checkInDate. Check-in date of the stay (hotel local date), format YYYY-MM-DD. No dates in the past. Defaults to today's date. A day and month without a year means the next occurrence of that date.
- checkOutDate. Check-out date of the stay (hotel local date), format YYYY-MM-DD. At least checkInDate+1, which is also the default. A day and month without a year means the next occurrence of that date.
- roomQuantity. Number of rooms. Default to 1.
- priceRange. Price range per night (e.g. 200-300, -300 or 100). A currency is mandatory when this is set.
- currency. Currency specified by the user, default USD.

Return a single valid JSON object using double quotes for all keys and string values, for example:
{
  "cityCode": "NYC",
  "latitude": 41.397158,
  "longitude": 2.160873,
  "amenities": ["SPA", "FITNESS_CENTER"],
  "ratings": ["4", "5"],
  "adults": 2,
  "checkInDate": "2025-08-01",
  "checkOutDate": "2025-08-06",
  "roomQuantity": 1,
  "priceRange": "100-500",
  "currency": "USD"
}

Now extract from: %[3]q
`

// BuildPrompt embeds the user's request into the extraction instructions.
func BuildPrompt(text, today string) string {
	return fmt.Sprintf(extractionPrompt, today, strings.Join(domain.Amenities, ", "), text)
}
