package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"roombook/internal/config"
	"roombook/internal/export"
	"roombook/internal/logging"
	"roombook/internal/models"
	"roombook/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	fromFlag := flag.String("from", "", "start date YYYY-MM-DD (default today)")
	toFlag := flag.String("to", "", "end date YYYY-MM-DD (default one month ahead)")
	outFlag := flag.String("out", "", "output file (default under exports path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	start := time.Now().Truncate(24 * time.Hour)
	if *fromFlag != "" {
		if start, err = time.Parse(models.DateLayout, *fromFlag); err != nil {
			return fmt.Errorf("invalid -from date: %w", err)
		}
	}
	end := start.AddDate(0, 1, 0)
	if *toFlag != "" {
		if end, err = time.Parse(models.DateLayout, *toFlag); err != nil {
			return fmt.Errorf("invalid -to date: %w", err)
		}
	}

	st, err := store.New(cfg.Storage.Dir, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	rooms, err := st.Rooms(ctx)
	if err != nil {
		return err
	}
	bookings, err := st.Bookings(ctx)
	if err != nil {
		return err
	}
	users, err := st.Users(ctx)
	if err != nil {
		return err
	}

	out := *outFlag
	if out == "" {
		if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
		out = filepath.Join(cfg.Exports.Path, fmt.Sprintf("occupancy_%s_to_%s.xlsx",
			start.Format(models.DateLayout), end.Format(models.DateLayout)))
	}

	if err := export.WriteOccupancy(out, rooms, bookings, users, start, end); err != nil {
		return err
	}

	logger.Info().Str("file", out).Int("rooms", len(rooms)).Int("bookings", len(bookings)).Msg("occupancy export written")
	return nil
}
