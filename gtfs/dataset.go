package gtfs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// ErrUnknownFileName is returned if a feed file matches no known table.
var ErrUnknownFileName = errors.New("unknown file name encountered")

// Dataset holds the raw schedule tables as loaded from disk, before any
// indexing. Tables are loaded once per session and never mutated afterwards.
type Dataset struct {
	Stops         []*Stop
	Routes        []*Route
	Trips         []*Trip
	StopTimes     []*StopTime
	CalendarDates []*CalendarDate
	Access        []*StopAccess

	logger *zap.Logger
}

// NewDataset creates an empty dataset.
func NewDataset(logger *zap.Logger) *Dataset {
	gocsv.SetCSVReader(feedCSVReader)
	return &Dataset{
		logger: logger,
	}
}

// LoadFromDir loads every recognized feed file from the supplied directory.
// Files that belong to the wider GTFS spec but are not consumed here are
// skipped; parse failures in a consumed file abort the load, since corrupt
// reference data must not silently produce wrong departures.
func (ds *Dataset) LoadFromDir(path string) error {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}

		err = ds.parseFile(path, dirEntry.Name())
		if errors.Is(err, ErrUnknownFileName) {
			ds.logger.Debug("skipping unrecognized feed file",
				zap.String("file_name", dirEntry.Name()),
			)
			continue
		}
		if err != nil {
			return fmt.Errorf("parsing %s: %w", dirEntry.Name(), err)
		}
	}
	return nil
}

// LoadAccess loads the station accessibility table. The table ships
// separately from the feed and is optional; a missing file leaves the
// dataset without accessibility data rather than failing the load.
func (ds *Dataset) LoadAccess(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		ds.logger.Info("no accessibility table found",
			zap.String("path", path),
		)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.Unmarshal(f, &ds.Access)
}

func (ds *Dataset) parseFile(dir, name string) error {
	var dst any
	switch name {
	case "stops.txt":
		dst = &ds.Stops
	case "routes.txt":
		dst = &ds.Routes
	case "trips.txt":
		dst = &ds.Trips
	case "stop_times.txt":
		dst = &ds.StopTimes
	case "calendar_dates.txt":
		dst = &ds.CalendarDates
	default:
		return ErrUnknownFileName
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.Unmarshal(f, dst)
}

// GTFS marks many columns optional, so rows may carry fewer columns than
// the header. We do not error on ragged rows, for better or worse.
func feedCSVReader(in io.Reader) gocsv.CSVReader {
	csvReader := csv.NewReader(in)
	csvReader.FieldsPerRecord = -1
	return csvReader
}
