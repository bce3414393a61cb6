package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flappy/config"
)

// Output file names inside the run directory.
const (
	GenerationsFile = "generations.csv"
	BookmarksFile   = "bookmarks.csv"
	PerfFile        = "perf.csv"
	ConfigFile      = "config.yaml"
	HallOfFameFile  = "hall_of_fame.json"
)

// csvLog appends records to one CSV file, writing the header with the first
// record only.
type csvLog struct {
	name   string
	file   *os.File
	header bool
}

func openCSV(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, file: f}, nil
}

func (l *csvLog) write(records any) error {
	var err error
	if l.header {
		err = gocsv.MarshalWithoutHeaders(records, l.file)
	} else {
		err = gocsv.Marshal(records, l.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	l.header = true
	return nil
}

// OutputManager writes a training run to a directory. A nil manager
// discards everything, so callers need not check whether output is enabled.
type OutputManager struct {
	dir         string
	generations *csvLog
	bookmarks   *csvLog
	perf        *csvLog
}

// NewOutputManager creates dir and opens the CSV logs inside it.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, open := range []struct {
		dst  **csvLog
		name string
	}{
		{&om.generations, GenerationsFile},
		{&om.bookmarks, BookmarksFile},
		{&om.perf, PerfFile},
	} {
		l, err := openCSV(dir, open.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*open.dst = l
	}
	return om, nil
}

// WriteConfig saves the run configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteGeneration appends one row to generations.csv.
func (om *OutputManager) WriteGeneration(s GenerationStats) error {
	if om == nil {
		return nil
	}
	return om.generations.write([]GenerationStats{s})
}

// WriteBookmark appends one row to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write([]Bookmark{b})
}

// WritePerf appends one row to perf.csv.
func (om *OutputManager) WritePerf(r PerfRecord) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfRecord{r})
}

// WriteHallOfFame replaces hall_of_fame.json with the current hall.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, HallOfFameFile), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", HallOfFameFile, err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, l := range []*csvLog{om.generations, om.bookmarks, om.perf} {
		if l == nil {
			continue
		}
		if err := l.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
