// Package analysis characterizes recorded runs.
//
// A leader circulating the curve produces a near-periodic coordinate series.
// [PowerSpectrum] windows and transforms such a series and
// [DominantPeriod] reports the strongest orbit period in frames:
//
//	xs := series.Column(func(s metrics.Sample) float64 { return s.LeaderX })
//	period, _, err := analysis.DominantPeriod(xs)
package analysis
