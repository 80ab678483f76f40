package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/glow/config"
)

// OutputManager handles run output with CSV logging.
type OutputManager struct {
	dir        string
	framesFile *os.File
	perfFile   *os.File

	// Track if headers have been written
	framesHeaderWritten bool
	perfHeaderWritten   bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	om.framesFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.framesFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow writes a window stats record to frames.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.framesFile, []WindowStats{stats}, &om.framesHeaderWritten); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, strip int, frame int64) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(strip, frame)}
	if err := writeRecords(om.perfFile, records, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// writeRecords appends records, including the header on the first write.
func writeRecords(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.framesFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
