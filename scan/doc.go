// Package scan drives the full cycle-detection pipeline over price windows.
//
// A single analysis takes the most recent window of a daily price series,
// log-transforms it, removes its least-squares linear trend, estimates the
// period-domain power spectrum, conditions it, and extracts ranked peaks. The
// rolling analyzer repeats this over successive historical windows stepped
// back a fixed number of trading days per iteration, producing one result per
// offset, most recent first.
//
// The package owns orchestration and configuration only; estimation lives in
// package spectrum, peak extraction in package peaks.
package scan
