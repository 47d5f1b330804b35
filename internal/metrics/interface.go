// Metrics comparing the working image against the loaded original
package metrics

import (
	"errors"
	"fmt"
	"sort"

	"gocv.io/x/gocv"
)

// ErrSizeMismatch is returned when the two images do not share dimensions.
var ErrSizeMismatch = errors.New("image dimensions mismatch")

// Metric defines the interface for quality metrics
type Metric interface {
	// Calculate compares candidate against reference
	Calculate(reference, candidate gocv.Mat) (float64, error)

	// Name returns the metric name
	Name() string

	// HigherIsBetter reports whether larger values mean closer images
	HigherIsBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with MSE and PSNR registered.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.Register(NewMSE())
	e.Register(NewPSNR())
	return e
}

// Register adds metric under its name, replacing any previous one.
func (e *Evaluator) Register(metric Metric) {
	e.metrics[metric.Name()] = metric
}

// Names returns the registered metric names in sorted order.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculate calculates a specific metric
func (e *Evaluator) Calculate(name string, reference, candidate gocv.Mat) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}

	return metric.Calculate(reference, candidate)
}

// CalculateAll calculates every registered metric. The first failure aborts.
func (e *Evaluator) CalculateAll(reference, candidate gocv.Mat) (map[string]float64, error) {
	results := make(map[string]float64, len(e.metrics))
	for _, name := range e.Names() {
		value, err := e.metrics[name].Calculate(reference, candidate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		results[name] = value
	}
	return results, nil
}
