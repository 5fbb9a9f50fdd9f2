// Package store persists rolling-scan results for later inspection.
package store

import "github.com/bernie-sg/riley-cycles-watch/scan"

// Recorder persists the outcome of an analysis run.
type Recorder interface {
	// RecordRun stores the detected peaks of every analyzed window under a
	// new run row and returns the run id.
	RecordRun(symbol string, cfg scan.Config, results []scan.WindowResult) (int64, error)
	Close() error
}

// Noop discards everything. Used when no database path is configured.
type Noop struct{}

// RecordRun implements Recorder.
func (Noop) RecordRun(string, scan.Config, []scan.WindowResult) (int64, error) { return 0, nil }

// Close implements Recorder.
func (Noop) Close() error { return nil }
