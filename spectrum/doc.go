// Package spectrum estimates and conditions period-domain power spectra of
// detrended price windows.
//
// The package intentionally does not read prices or fit trends. It operates on
// a detrended window produced upstream and provides estimation (Morlet kernel
// scan, Goertzel single-bin scan) plus the fixed denoising and enhancement
// pipeline applied to raw spectra before peak detection.
package spectrum
