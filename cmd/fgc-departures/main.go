package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/fgc-tools/fgc-departures/comments"
	"github.com/fgc-tools/fgc-departures/config"
	"github.com/fgc-tools/fgc-departures/gtfs"
	"github.com/fgc-tools/fgc-departures/metrics"
	"github.com/fgc-tools/fgc-departures/realtime"
	"github.com/fgc-tools/fgc-departures/schedule"
	"github.com/fgc-tools/fgc-departures/server"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML configuration")
	mode := flag.String("mode", "serve", "serve|departures")
	stopID := flag.String("stop", "", "stop_id to query (departures mode)")
	station := flag.String("station", "", "station name to query (departures mode)")
	date := flag.String("date", "", "service date as YYYY-MM-DD (default today)")
	at := flag.String("at", "", "query time as HH:MM:SS (default now)")
	window := flag.Int("window", 0, "minutes ahead to list (default from config)")
	via := flag.String("via", "all", "platform filter: 1|2|all")
	dev := flag.Bool("dev", false, "human-readable logs")
	flag.Parse()

	logger := newLogger(*dev)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		logger.Fatal("loading configuration", zap.Error(err))
	}

	collector := metrics.NewCollector()

	ds := gtfs.NewDataset(logger)
	if err := ds.LoadFromDir(cfg.GTFS.Dir); err != nil {
		logger.Fatal("loading schedule feed", zap.Error(err))
	}
	if err := ds.LoadAccess(cfg.GTFS.AccessFile); err != nil {
		logger.Fatal("loading accessibility table", zap.Error(err))
	}
	idx := gtfs.NewIndex(logger, ds)

	for table, n := range map[string]int{
		"stops":          len(ds.Stops),
		"routes":         len(ds.Routes),
		"trips":          len(ds.Trips),
		"stop_times":     len(ds.StopTimes),
		"calendar_dates": len(ds.CalendarDates),
	} {
		collector.FeedRows.WithLabelValues(table).Set(float64(n))
	}
	logger.Info("schedule loaded",
		zap.String("dir", cfg.GTFS.Dir),
		zap.Int("stops", len(ds.Stops)),
		zap.Int("trips", len(ds.Trips)),
		zap.Int("stop_times", len(ds.StopTimes)),
	)

	switch *mode {
	case "departures":
		runDepartures(logger, idx, cfg, *stopID, *station, *date, *at, *window, *via)
	case "serve":
		runServe(logger, idx, cfg, collector)
	default:
		logger.Fatal("unknown mode", zap.String("mode", *mode))
	}
}

func newLogger(dev bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func runServe(logger *zap.Logger, idx *gtfs.Index, cfg config.AppConfig, collector *metrics.Collector) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := comments.NewStore(cfg.Comments.File, cfg.Comments.MaxPerLine, logger)
	if err != nil {
		logger.Fatal("opening comment store", zap.Error(err))
	}

	var feed *realtime.Feed
	if cfg.Realtime.TripUpdatesURL != "" || cfg.Realtime.VehiclePositionsURL != "" {
		client := realtime.NewClient(time.Duration(cfg.Realtime.TimeoutMS) * time.Millisecond)
		feed = realtime.NewFeed(client,
			cfg.Realtime.TripUpdatesURL,
			cfg.Realtime.VehiclePositionsURL,
			time.Duration(cfg.Realtime.RefreshIntervalMS)*time.Millisecond,
			logger, collector)
		go feed.Run(ctx, idx)
	} else {
		logger.Info("no realtime URLs configured, serving schedule only")
	}

	srv := server.New(server.Options{
		Logger:        logger,
		Index:         idx,
		Feed:          feed,
		Comments:      store,
		Collector:     collector,
		Port:          cfg.Server.Port,
		DefaultWindow: time.Duration(cfg.Departures.DefaultWindowMinutes) * time.Minute,
		MaxWindow:     time.Duration(cfg.Departures.MaxWindowMinutes) * time.Minute,
	})
	srv.Start()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	} else {
		logger.Info("server shut down")
	}
}

func runDepartures(logger *zap.Logger, idx *gtfs.Index, cfg config.AppConfig, stopID, station, date, at string, window int, via string) {
	now := time.Now()

	q := schedule.Query{
		Date:   now,
		Now:    schedule.TimeOfDayFrom(now),
		Window: time.Duration(cfg.Departures.DefaultWindowMinutes) * time.Minute,
	}

	switch {
	case stopID != "":
		if idx.StopByID(stopID) == nil {
			logger.Fatal("no such stop", zap.String("stop_id", stopID))
		}
		q.StopID = stopID
	case station != "":
		stop := idx.StopByName(station)
		if stop == nil {
			logger.Fatal("no such station", zap.String("station", station))
		}
		q.StopID = stop.ID
	default:
		logger.Fatal("provide -stop or -station")
	}

	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			logger.Fatal("invalid date", zap.String("date", date), zap.Error(err))
		}
		q.Date = d
	}
	if at != "" {
		tod, err := schedule.ParseTimeOfDay(at)
		if err != nil {
			logger.Fatal("invalid time", zap.String("at", at), zap.Error(err))
		}
		q.Now = tod
	}
	if window > 0 {
		q.Window = time.Duration(window) * time.Minute
	}

	filter, err := schedule.ParseViaFilter(via)
	if err != nil {
		logger.Fatal("invalid via filter", zap.String("via", via), zap.Error(err))
	}
	q.Via = filter

	deps, err := schedule.UpcomingDepartures(idx, q)
	if err != nil {
		logger.Fatal("listing departures", zap.Error(err))
	}

	if len(deps) == 0 {
		fmt.Println("No hi ha viatges previstos")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Hora de sortida\tLínia\tDestí\tVia")
	for _, d := range deps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Time, d.LineID, d.Destination, d.Via)
	}
	_ = w.Flush()
}
