package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/engine"
	"github.com/hjkrause/alm-engine/pkg/config"
	"github.com/hjkrause/alm-engine/pkg/logger"
)

// Book flags shared by project and optimize.
var (
	bookToday   string
	bookHorizon int
	bookRates   string
	bookBonds   int
	bookPayout  float64
)

// loadRuntime loads config and builds the logger, honoring --verbose.
func loadRuntime() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New(cfg), nil
}

// bookFromFlags builds the book, starting from the defaults and applying
// flag overrides.
func bookFromFlags() (engine.BookConfig, error) {
	today := date.New(2025, 5, 7)
	if bookToday != "" {
		parsed, err := date.Parse(bookToday)
		if err != nil {
			return engine.BookConfig{}, err
		}
		today = parsed
	}

	book := engine.DefaultBook(today)
	if bookHorizon > 0 {
		book.HorizonYears = bookHorizon
	}
	if bookBonds > 0 {
		book.BondCount = bookBonds
	}
	if bookPayout > 0 {
		book.LiabilityPayout = bookPayout
	}

	if bookRates != "" {
		var rates []float64
		for _, part := range strings.Split(bookRates, ",") {
			r, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return engine.BookConfig{}, fmt.Errorf("invalid rate %q: %w", part, err)
			}
			rates = append(rates, r)
		}
		book.Rates = rates
	}

	return book, nil
}

func registerBookFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&bookToday, "today", "", "valuation date (YYYY-MM-DD, default 2025-05-07)")
	cmd.Flags().IntVar(&bookHorizon, "horizon", 0, "projection horizon in years (default 10)")
	cmd.Flags().StringVar(&bookRates, "rates", "", "comma-separated flat scenario rates (default 0.03..0.11)")
	cmd.Flags().IntVar(&bookBonds, "bonds", 0, "number of starting bonds (default 5)")
	cmd.Flags().Float64Var(&bookPayout, "payout", 0, "annual liability payout (default 5000)")
}
