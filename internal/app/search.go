package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"sedi/internal/domain"
)

type SearchService struct {
	provider domain.HotelProvider
	cache    domain.Cache
	cacheTTL time.Duration
	workers  int
}

// NewSearchService wires the provider. cache may be nil; workers bounds concurrent offer lookups.
func NewSearchService(p domain.HotelProvider, c domain.Cache, ttl time.Duration, workers int) *SearchService {
	if workers <= 0 {
		workers = 1
	}
	return &SearchService{provider: p, cache: c, cacheTTL: ttl, workers: workers}
}

// Search discovers hotels for the preferences and collects their priced offers.
// It never fails: provider errors degrade to an empty or partial result.
// Blocks come back in the provider's discovery order.
func (s *SearchService) Search(ctx context.Context, prefs domain.Preferences) []domain.OfferBlock {
	prefs = prefs.WithDefaults()

	hotels, err := s.discover(ctx, prefs)
	if err != nil {
		log.Warn().Err(err).Msg("hotel discovery failed")
		return nil
	}

	ids := make([]string, 0, len(hotels))
	for _, h := range hotels {
		if h.HotelID != "" {
			ids = append(ids, h.HotelID)
		}
	}
	if len(ids) == 0 {
		log.Info().Str("city", prefs.CityCode).Msg("no hotels found")
		return nil
	}

	return s.fetchOffers(ctx, prefs, ids)
}

// discover uses the geocode lookup when coordinates are present, the city lookup otherwise.
func (s *SearchService) discover(ctx context.Context, p domain.Preferences) ([]domain.HotelCandidate, error) {
	if !p.HasLocation() {
		return nil, domain.ErrNoLocation
	}

	key := discoveryKey(p)
	var hotels []domain.HotelCandidate
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &hotels); ok {
			return hotels, nil
		}
	}

	var err error
	if p.HasCoordinates() {
		hotels, err = s.provider.HotelsByGeocode(ctx, domain.GeocodeQuery{
			Latitude:  *p.Latitude,
			Longitude: *p.Longitude,
			RadiusKM:  domain.SearchRadiusKM,
			Amenities: p.Amenities,
			Ratings:   p.Ratings,
		})
	} else {
		hotels, err = s.provider.HotelsByCity(ctx, domain.CityQuery{
			CityCode:  p.CityCode,
			RadiusKM:  domain.SearchRadiusKM,
			Amenities: p.Amenities,
			Ratings:   p.Ratings,
		})
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(hotels) > 0 {
		_ = s.cache.Set(ctx, key, hotels, int(s.cacheTTL.Seconds()))
	}
	return hotels, nil
}

func discoveryKey(p domain.Preferences) string {
	filters := strings.Join(p.Amenities, ",") + ":" + strings.Join(p.Ratings, ",")
	if p.HasCoordinates() {
		return fmt.Sprintf("hotels:geo:%.5f:%.5f:%s", *p.Latitude, *p.Longitude, filters)
	}
	return fmt.Sprintf("hotels:city:%s:%s", p.CityCode, filters)
}

// fetchOffers asks for offers hotel by hotel. A failing hotel only loses its own slot.
func (s *SearchService) fetchOffers(ctx context.Context, p domain.Preferences, ids []string) []domain.OfferBlock {
	slots := make([][]domain.OfferBlock, len(ids))
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup

	for i, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Int("remaining", len(ids)-i).Msg("offer lookup stopped")
			break
		}

		wg.Add(1)
		go func(i int, hotelID string) {
			defer wg.Done()
			defer sem.Release(1)

			blocks, err := s.provider.HotelOffers(ctx, domain.OfferQuery{
				HotelID:      hotelID,
				Adults:       p.Adults,
				CheckInDate:  p.CheckInDate,
				CheckOutDate: p.CheckOutDate,
				RoomQuantity: p.RoomQuantity,
				PriceRange:   p.PriceRange,
				Currency:     p.Currency,
			})
			if err != nil {
				log.Warn().Str("hotel_id", hotelID).Err(err).Msg("offer lookup failed")
				return
			}
			slots[i] = blocks
		}(i, id)
	}
	wg.Wait()

	var out []domain.OfferBlock
	for _, blocks := range slots {
		for _, b := range blocks {
			if len(b.Offers) > 0 {
				out = append(out, b)
			}
		}
	}
	return out
}
