package domain

// HotelCandidate is a hotel found by discovery, not yet priced.
type HotelCandidate struct {
	HotelID   string  `json:"hotelId"`
	Name      string  `json:"name"`
	CityCode  string  `json:"cityCode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OfferBlock groups the priced offers returned for one hotel.
type OfferBlock struct {
	Hotel  HotelCandidate `json:"hotel"`
	Offers []Offer        `json:"offers"`
}

type Offer struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Price        Price  `json:"price"`
	Room         Room   `json:"room"`
}

type Price struct {
	// nil when the provider omitted the field; a present blank total stays blank
	Total    *string `json:"total"`
	Currency string  `json:"currency"`
}

type Room struct {
	Description struct {
		Text string `json:"text"`
	} `json:"description"`
}

// Match is the user-facing result row: one offer plus a booking link.
type Match struct {
	HotelName       string `json:"hotel_name"`
	RoomDescription string `json:"room_description"`
	Price           string `json:"price"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	BookingURL      string `json:"booking_url"`
}
