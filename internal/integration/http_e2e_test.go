//go:build integration || !unit

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"sedi/internal/adapters/amadeus"
	server "sedi/internal/adapters/http_server"
	"sedi/internal/adapters/openai"
	redisad "sedi/internal/adapters/redis"
	"sedi/internal/app"
)

// ---------- fake upstreams ----------

func fakeLLM(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-e2e",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": answer},
				"finish_reason": "stop",
			}},
		})
	}))
}

type fakeInventory struct {
	cityCalls  int32
	offerCalls int32
}

func (f *fakeInventory) server(t *testing.T) *httptest.Server {
	t.Helper()
	offer := func(id, total string) string {
		return fmt.Sprintf(`{"id":%q,"checkInDate":"2099-01-01","checkOutDate":"2099-01-02",
			"room":{"description":{"text":"Room %s"}},"price":{"currency":"USD","total":%q}}`, id, id, total)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"e2e","expires_in":1799}`))
	})
	mux.HandleFunc("/v1/reference-data/locations/hotels/by-city", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.cityCalls, 1)
		if r.URL.Query().Get("cityCode") != "NYC" {
			t.Errorf("unexpected cityCode %q", r.URL.Query().Get("cityCode"))
		}
		_, _ = w.Write([]byte(`{"data":[{"hotelId":"H1"},{"hotelId":"H2"},{"hotelId":"H3"}]}`))
	})
	mux.HandleFunc("/v3/shopping/hotel-offers", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.offerCalls, 1)
		if got := r.URL.Query().Get("checkOutDate"); got != "2099-01-02" {
			t.Errorf("checkout not normalized before search: %q", got)
		}
		switch r.URL.Query().Get("hotelIds") {
		case "H1":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"errors":[{"status":500,"code":141,"title":"SYSTEM ERROR HAS OCCURRED"}]}`))
		case "H2":
			fmt.Fprintf(w, `{"data":[{"hotel":{"hotelId":"H2","name":"Two Rivers","cityCode":"NYC"},"offers":[%s,%s]}]}`,
				offer("O21", "300.00"), offer("O22", "N/A"))
		case "H3":
			fmt.Fprintf(w, `{"data":[{"hotel":{"hotelId":"H3","name":"Three Bridges","cityCode":"NYC"},"offers":[%s]}]}`,
				offer("O31", "150.00"))
		}
	})
	return httptest.NewServer(mux)
}

// ---------- the test ----------

func TestHTTP_EndToEnd_Search(t *testing.T) {
	llmSrv := fakeLLM(t, "```json\n"+`{"cityCode":"NYC","checkInDate":"2099-01-01","checkOutDate":"2099-01-01","amenities":["WIFI"]}`+"\n```")
	defer llmSrv.Close()
	inv := &fakeInventory{}
	invSrv := inv.server(t)
	defer invSrv.Close()
	mr := miniredis.RunT(t)

	llm, err := openai.New(openai.Config{APIKey: "k", BaseURL: llmSrv.URL})
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	provider, err := amadeus.New(invSrv.URL, "id", "secret", 100)
	if err != nil {
		t.Fatalf("amadeus: %v", err)
	}
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	a := app.NewAssistant(app.NewExtractor(llm, nil), app.NewSearchService(provider, cache, time.Minute, 2), "", nil)
	srv := server.New(zerolog.Nop(), 10*time.Second)
	srv.MountHandlers(&server.Handlers{A: a, Ready: cache.Ping})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	search := func() app.Result {
		t.Helper()
		res, err := http.Post(ts.URL+"/v1/search", "application/json",
			strings.NewReader(`{"query":"hotel in New York on Jan 1 2099 with wifi","affiliate_id":"777"}`))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status %d", res.StatusCode)
		}
		var body app.Result
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return body
	}

	body := search()
	if body.Status != app.StatusOK || len(body.Matches) != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
	wantPrices := []string{"150.00 USD", "300.00 USD", "N/A USD"}
	for i, w := range wantPrices {
		if body.Matches[i].Price != w {
			t.Fatalf("position %d: got %s, want %s", i, body.Matches[i].Price, w)
		}
	}
	if body.Matches[0].BookingURL != "https://www.booking.com/searchresults.html?ss=Three+Bridges+NYC&aid=777" {
		t.Fatalf("unexpected link: %s", body.Matches[0].BookingURL)
	}

	// discovery is served from redis the second time; offers are always live
	search()
	if got := atomic.LoadInt32(&inv.cityCalls); got != 1 {
		t.Fatalf("expected cached discovery, got %d city calls", got)
	}
	if got := atomic.LoadInt32(&inv.offerCalls); got != 6 {
		t.Fatalf("expected 6 offer calls, got %d", got)
	}

	rr, err := http.Get(ts.URL + "/readyz")
	if err != nil || rr.StatusCode != http.StatusOK {
		t.Fatalf("readyz: %v %v", err, rr)
	}
	rr.Body.Close()
}
