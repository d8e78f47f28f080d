package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"gradescan/pkg/config"
	"gradescan/pkg/db"
	"gradescan/pkg/export"
	"gradescan/pkg/gpx"
	"gradescan/pkg/grade"
	"gradescan/pkg/logging"
	"gradescan/pkg/store"
)

var (
	configPath  = flag.String("config", "configs/gradescan.yaml", "Path to config file")
	initConfig  = flag.Bool("init-config", false, "Generate default config file and exit")
	windowSize  = flag.Int("window", 0, "Grade window size (overrides config)")
	csvPath     = flag.String("csv", "", "Write the series as CSV to this path")
	geojsonPath = flag.String("geojson", "", "Write the series as GeoJSON to this path")
	dbPath      = flag.String("db", "", "Persist the run to this SQLite database")
)

func main() {
	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <track.gpx>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(context.Background(), flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, trackPath string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg)

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	doc, err := gpx.Parse(trackPath)
	if err != nil {
		return err
	}
	points := doc.FirstSegment()
	slog.Info("Track loaded", "file", trackPath, "name", doc.Name(), "points", len(points))

	scanner := grade.NewScanner(cfg.Scan.WindowSize, float64(cfg.Scan.MetersPerDegree))
	started := time.Now()
	res, err := scanner.Scan(points)
	if err != nil {
		return err
	}

	var totalDist, totalTime float64
	if n := len(res.Records); n > 0 {
		totalDist = res.Records[n-1].Distance
		totalTime = res.Records[n-1].Elapsed
	}
	slog.Info("Scan complete",
		"records", len(res.Records),
		"window", scanner.WindowSize,
		"distance_m", fmt.Sprintf("%.1f", totalDist),
		"time_s", fmt.Sprintf("%.1f", totalTime),
		"max_grade_pct", fmt.Sprintf("%.2f", res.Max.Grade),
		"max_grade_idx", res.Max.Index,
		"min_grade_pct", fmt.Sprintf("%.2f", res.Min.Grade),
		"min_grade_idx", res.Min.Index,
		"cache_hits", res.Cache.Hits,
		"cache_misses", res.Cache.Misses,
		"elapsed", time.Since(started))

	if cfg.Export.CSVPath != "" {
		if err := writeSink(cfg.Export.CSVPath, func(f *os.File) error {
			return export.WriteCSV(f, res)
		}); err != nil {
			return err
		}
		slog.Info("CSV written", "path", cfg.Export.CSVPath)
	}

	if cfg.Export.GeoJSONPath != "" {
		if err := writeSink(cfg.Export.GeoJSONPath, func(f *os.File) error {
			return export.WriteGeoJSON(f, points, res)
		}); err != nil {
			return err
		}
		slog.Info("GeoJSON written", "path", cfg.Export.GeoJSONPath)
	}

	if cfg.DB.Path != "" {
		if err := persistRun(ctx, cfg.DB.Path, trackPath, doc, scanner, res, totalDist, totalTime); err != nil {
			return err
		}
	}

	return nil
}

// applyOverrides lets command-line flags win over config file values.
func applyOverrides(cfg *config.Config) {
	if *windowSize > 0 {
		cfg.Scan.WindowSize = *windowSize
	}
	if *csvPath != "" {
		cfg.Export.CSVPath = *csvPath
	}
	if *geojsonPath != "" {
		cfg.Export.GeoJSONPath = *geojsonPath
	}
	if *dbPath != "" {
		cfg.DB.Path = *dbPath
	}
}

func writeSink(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

func persistRun(ctx context.Context, path, source string, doc *gpx.Document,
	scanner *grade.Scanner, res *grade.Result, totalDist, totalTime float64) error {
	conn, err := db.Init(path)
	if err != nil {
		return err
	}
	st := store.NewSQLiteStore(conn)
	defer st.Close()

	run := &store.Run{
		ID:        uuid.NewString(),
		Source:    source,
		TrackName: doc.Name(),
		Window:    scanner.WindowSize,
		Points:    len(doc.FirstSegment()),
		Distance:  totalDist,
		Elapsed:   totalTime,
		Max:       res.Max,
		Min:       res.Min,
		CreatedAt: time.Now().UTC(),
		Records:   res.Records,
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to persist run: %w", err)
	}

	slog.Info("Run persisted", "db", path, "id", run.ID)
	return nil
}
