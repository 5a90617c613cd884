package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"sedi/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	// accepts month and day with or without a leading zero
	parseLayout = "2006-1-2"
)

// NormalizeDates repairs the stay dates against today's UTC date.
// A check-in in the past becomes today and a check-out not after check-in becomes check-in + 1 day.
// If either date is missing or malformed both are reset to (today, today+1).
func NormalizeDates(p domain.Preferences, now time.Time) domain.Preferences {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	in, out, err := repairStay(p.CheckInDate, p.CheckOutDate, today)
	if err != nil {
		log.Warn().Err(err).
			Str("check_in", p.CheckInDate).
			Str("check_out", p.CheckOutDate).
			Msg("invalid or missing stay dates, applying defaults")
		in, out = today, today.AddDate(0, 0, 1)
	}

	p.CheckInDate = in.Format(dateLayout)
	p.CheckOutDate = out.Format(dateLayout)
	return p
}

func repairStay(checkIn, checkOut string, today time.Time) (time.Time, time.Time, error) {
	in, err := time.Parse(parseLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if in.Before(today) {
		in = today
	}

	out, err := time.Parse(parseLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !out.After(in) {
		out = in.AddDate(0, 0, 1)
	}
	return in, out, nil
}
