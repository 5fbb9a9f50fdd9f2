// Package wavelet constructs frequency-selective complex Morlet kernels for
// cycle analysis of daily price series.
//
// A kernel is a Gaussian-enveloped complex oscillation tuned to one candidate
// period (in trading days). The quality factor grows with frequency, so short
// cycles are resolved more sharply relative to long ones. All kernels are
// normalized to unit total energy, which makes power estimates comparable
// across periods.
//
// The package also provides bandpass extraction: dense complex kernel
// coefficients over a narrow period band, amplitude-weighted and averaged,
// yielding the cyclical component of the series together with its current
// phase and amplitude and an optional forward projection.
package wavelet
