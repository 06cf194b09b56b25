package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/san-kum/heartswarm/internal/dynamo"
)

// PowerSpectrum returns |X_k|²/n for k in [0, n/2] of the mean-removed,
// Hann-windowed series.
func PowerSpectrum(data []float64) ([]float64, error) {
	n := len(data)
	if n < 2 {
		return nil, dynamo.ErrEmptySeries
	}

	mean := Mean(data)
	w := window.Hann(n)
	buf := make([]float64, n)
	for i, v := range data {
		buf[i] = (v - mean) * w[i]
	}

	spectrum := fft.FFTReal(buf)
	ps := make([]float64, n/2+1)
	for i := range ps {
		a := cmplx.Abs(spectrum[i])
		ps[i] = a * a / float64(n)
	}
	return ps, nil
}

// DominantPeriod returns the period in frames of the strongest non-DC bin and
// that bin's power. A flat series has period 0.
func DominantPeriod(data []float64) (float64, float64, error) {
	ps, err := PowerSpectrum(data)
	if err != nil {
		return 0, 0, err
	}

	best, bestPow := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPow {
			best, bestPow = k, ps[k]
		}
	}
	if best == 0 {
		return 0, 0, nil
	}
	return float64(len(data)) / float64(best), bestPow, nil
}

func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// Summary is min, max, mean and standard deviation of a series.
type Summary struct {
	Min, Max, Mean, StdDev float64
}

func Summarize(data []float64) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, dynamo.ErrEmptySeries
	}
	s := Summary{Min: math.Inf(1), Max: math.Inf(-1), Mean: Mean(data)}
	var sq float64
	for _, v := range data {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(len(data)))
	return s, nil
}
