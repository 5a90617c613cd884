package app_test

import (
	"testing"
	"time"

	"sedi/internal/app"
	"sedi/internal/domain"
)

// late evening in UTC-5 is already the next day in UTC
var now = time.Date(2026, 3, 14, 22, 30, 0, 0, time.FixedZone("EST", -5*3600))

const (
	today    = "2026-03-15"
	tomorrow = "2026-03-16"
)

func TestNormalizeDates(t *testing.T) {
	cases := []struct {
		name    string
		in, out string
		wantIn  string
		wantOut string
	}{
		{"valid stay untouched", "2099-01-01", "2099-01-05", "2099-01-01", "2099-01-05"},
		{"same day checkout", "2099-01-01", "2099-01-01", "2099-01-01", "2099-01-02"},
		{"checkout before checkin", "2099-01-10", "2099-01-03", "2099-01-10", "2099-01-11"},
		{"past checkin clamped", "2020-05-01", "2099-01-03", today, "2099-01-03"},
		{"past stay clamped", "2020-05-01", "2020-05-03", today, tomorrow},
		{"checkin today kept", today, "", today, tomorrow},
		{"no leading zeros", "2099-1-5", "2099-1-9", "2099-01-05", "2099-01-09"},
		{"mixed padding", "2099-01-5", "2099-2-01", "2099-01-05", "2099-02-01"},
		{"malformed checkin resets both", "June 1st", "2099-01-03", today, tomorrow},
		{"malformed checkout resets both", "2099-01-01", "2099/01/03", today, tomorrow},
		{"both missing", "", "", today, tomorrow},
		{"both malformed", "N/A", "soon", today, tomorrow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := app.NormalizeDates(domain.Preferences{CityCode: "NYC", CheckInDate: tc.in, CheckOutDate: tc.out}, now)
			if got.CheckInDate != tc.wantIn || got.CheckOutDate != tc.wantOut {
				t.Fatalf("got (%s, %s), want (%s, %s)", got.CheckInDate, got.CheckOutDate, tc.wantIn, tc.wantOut)
			}
			if got.CityCode != "NYC" {
				t.Fatalf("other fields must be preserved, got %+v", got)
			}
		})
	}
}

func TestNormalizeDates_IdempotentAndOrdered(t *testing.T) {
	inputs := [][2]string{
		{"2099-01-01", "2099-01-01"},
		{"2001-01-01", "2000-01-01"},
		{"", "2099-02-02"},
		{"garbage", "garbage"},
		{today, today},
		{"2099-12-31", "2100-01-01"},
	}
	for _, in := range inputs {
		once := app.NormalizeDates(domain.Preferences{CheckInDate: in[0], CheckOutDate: in[1]}, now)
		twice := app.NormalizeDates(once, now)
		if once.CheckInDate != twice.CheckInDate || once.CheckOutDate != twice.CheckOutDate {
			t.Fatalf("not idempotent for %v: %+v vs %+v", in, once, twice)
		}
		ci, _ := time.Parse("2006-01-02", once.CheckInDate)
		co, _ := time.Parse("2006-01-02", once.CheckOutDate)
		if !co.After(ci) {
			t.Fatalf("checkout not after checkin for %v: %+v", in, once)
		}
		if once.CheckInDate < today {
			t.Fatalf("checkin in the past for %v: %+v", in, once)
		}
	}
}
