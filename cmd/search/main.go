package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"sedi/internal/adapters/amadeus"
	"sedi/internal/adapters/observability"
	"sedi/internal/adapters/openai"
	redisad "sedi/internal/adapters/redis"
	"sedi/internal/app"
	"sedi/internal/domain"
	"sedi/internal/shared"
)

// search runs one request from the command line (or stdin) and prints the top matches.
func main() {
	timeout := flag.Duration("timeout", 60*time.Second, "overall deadline for the search")
	aid := flag.String("aid", "", "booking affiliate id (overrides BOOKING_AFFILIATE_ID)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	cfg := shared.Load()

	// results go to stdout, logs to stderr
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv)

	query := strings.Join(flag.Args(), " ")
	if query == "" {
		b, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			log.Fatal().Err(err).Msg("read stdin failed")
		}
		query = string(b)
	}

	llm, err := openai.New(openai.Config{APIKey: cfg.OpenAIKey, BaseURL: cfg.OpenAIBase, Model: cfg.OpenAIModel})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize OpenAI client")
	}
	provider, err := amadeus.New(cfg.AmadeusBase, cfg.AmadeusID, cfg.AmadeusSecret, cfg.AmadeusRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Amadeus client")
	}
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	assistant := app.NewAssistant(
		app.NewExtractor(llm, nil),
		app.NewSearchService(provider, cache, cfg.CacheTTL, cfg.OfferWorkers),
		cfg.AffiliateID,
		nil,
	)

	res := assistant.Run(ctx, query, *aid)
	printResult(os.Stdout, res)
	if res.Status == app.StatusEmptyQuery || res.Status == app.StatusNotUnderstood {
		os.Exit(2)
	}
}

func printResult(w io.Writer, res app.Result) {
	if res.Status != app.StatusOK {
		fmt.Fprintln(w, res.Message)
		return
	}
	fmt.Fprintln(w, "Top hotel matches:")
	for i, m := range res.Matches {
		fmt.Fprintf(w, "\n%d. %s\n   Room:  %s\n   Price: %s\n   Dates: %s -> %s\n   Book:  %s\n",
			i+1, m.HotelName, m.RoomDescription, m.Price, m.CheckIn, m.CheckOut, m.BookingURL)
	}
}
