package app_test

import (
	"fmt"
	"strings"
	"testing"

	"sedi/internal/app"
	"sedi/internal/domain"
)

func TestBookingURL(t *testing.T) {
	got := app.BookingURL("Hôtel & Spa", "PAR", "")
	want := "https://www.booking.com/searchresults.html?ss=H%C3%B4tel+%26+Spa+PAR"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if got := app.BookingURL("Inn", "NYC", "1234"); !strings.HasSuffix(got, "?ss=Inn+NYC&aid=1234") {
		t.Fatalf("unexpected affiliate url: %s", got)
	}
}

func TestFormatMatches_HealthyHotelScenario(t *testing.T) {
	// H1's fetch failed upstream, so only H2's block reaches the formatter
	got := app.FormatMatches([]domain.OfferBlock{block("H2", "Two", "150.00")}, "")
	if len(got) != 1 || got[0].Price != "150.00 USD" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestFormatMatches_MalformedPriceLast(t *testing.T) {
	blocks := []domain.OfferBlock{
		block("H1", "Bad", "bad"),
		block("H2", "Fine", "300"),
	}
	got := app.FormatMatches(blocks, "")
	if len(got) != 2 || got[0].Price != "300 USD" || got[1].Price != "bad USD" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestFormatMatches_SortedTopFive(t *testing.T) {
	prices := []string{"N/A", "220.5", "99", "", "1e3", "NaN", "150", "75.25", "abc", "310"}
	var blocks []domain.OfferBlock
	for i, p := range prices {
		blocks = append(blocks, block(fmt.Sprintf("H%d", i), fmt.Sprintf("Hotel %d", i), p))
	}

	got := app.FormatMatches(blocks, "")
	if len(got) != app.MaxMatches {
		t.Fatalf("expected %d matches, got %d", app.MaxMatches, len(got))
	}
	want := []string{"75.25 USD", "99 USD", "150 USD", "220.5 USD", "310 USD"}
	for i, w := range want {
		if got[i].Price != w {
			t.Fatalf("position %d: got %s, want %s (all=%+v)", i, got[i].Price, w, got)
		}
	}
}

func TestFormatMatches_BlankTotalLast(t *testing.T) {
	got := app.FormatMatches([]domain.OfferBlock{
		block("H1", "Empty", ""),
		block("H2", "Blank", "   "),
		block("H3", "Good", "300"),
	}, "")
	if len(got) != 3 || got[0].HotelName != "Good" || got[1].HotelName != "Empty" || got[2].HotelName != "Blank" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].Price != " USD" {
		t.Fatalf("blank total must be shown as given, got %q", got[1].Price)
	}
}

func TestFormatMatches_MissingTotalIsZero(t *testing.T) {
	missing := domain.OfferBlock{
		Hotel:  domain.HotelCandidate{HotelID: "H2", Name: "Missing", CityCode: "NYC"},
		Offers: []domain.Offer{{Price: domain.Price{Currency: "EUR"}}},
	}
	got := app.FormatMatches([]domain.OfferBlock{block("H1", "Paid", "10"), missing}, "")
	if len(got) != 2 || got[0].HotelName != "Missing" || got[0].Price != "0 EUR" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestFormatMatches_InvalidOnlyStable(t *testing.T) {
	got := app.FormatMatches([]domain.OfferBlock{
		block("H1", "First", "N/A"),
		block("H2", "Second", "n/a"),
		block("H3", "Third", "12"),
	}, "")
	if len(got) != 3 || got[0].HotelName != "Third" || got[1].HotelName != "First" || got[2].HotelName != "Second" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestFormatMatches_DefaultsAndSharedLink(t *testing.T) {
	b := domain.OfferBlock{
		Hotel: domain.HotelCandidate{HotelID: "H1", CityCode: "LON"},
		Offers: []domain.Offer{
			{CheckInDate: "2099-01-01", CheckOutDate: "2099-01-02", Price: domain.Price{Total: ptr("80")}},
			{Price: domain.Price{Total: ptr("60"), Currency: "GBP"}},
		},
	}
	b.Offers[0].Room.Description.Text = "Double room"

	got := app.FormatMatches([]domain.OfferBlock{b}, "aff")
	if len(got) != 2 {
		t.Fatalf("expected two matches, got %+v", got)
	}
	if got[0].Price != "60 GBP" || got[0].RoomDescription != "No description" {
		t.Fatalf("unexpected first match: %+v", got[0])
	}
	if got[1].Price != "80 USD" || got[1].RoomDescription != "Double room" || got[1].CheckIn != "2099-01-01" {
		t.Fatalf("unexpected second match: %+v", got[1])
	}
	if got[0].HotelName != "Unnamed Hotel" || got[0].BookingURL != got[1].BookingURL {
		t.Fatalf("offers of one hotel must share the link: %+v", got)
	}
	if got[0].BookingURL != "https://www.booking.com/searchresults.html?ss=Unnamed+Hotel+LON&aid=aff" {
		t.Fatalf("unexpected link: %s", got[0].BookingURL)
	}
}

func TestFormatMatches_Empty(t *testing.T) {
	if got := app.FormatMatches(nil, ""); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}
