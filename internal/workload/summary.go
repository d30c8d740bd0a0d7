package workload

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/roach88/hiot/internal/digest"
)

// Counter is one named integer result.
type Counter struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Ratio is one named derived value.
type Ratio struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Summary is the result of one workload run. Counters and Ratios keep the
// order the workload reported them in. Digest covers the workload name and
// counters only.
type Summary struct {
	Workload string    `json:"workload"`
	Counters []Counter `json:"counters"`
	Ratios   []Ratio   `json:"ratios,omitempty"`
	Digest   string    `json:"digest"`
}

func newSummary(name string) *Summary {
	return &Summary{Workload: name}
}

func (s *Summary) count(name string, v int64) {
	s.Counters = append(s.Counters, Counter{Name: name, Value: v})
}

func (s *Summary) ratio(name string, v float64) {
	s.Ratios = append(s.Ratios, Ratio{Name: name, Value: v})
}

// Counter looks up a counter by name.
func (s *Summary) Counter(name string) (int64, bool) {
	c, ok := lo.Find(s.Counters, func(c Counter) bool { return c.Name == name })
	return c.Value, ok
}

// Ratio looks up a ratio by name.
func (s *Summary) Ratio(name string) (float64, bool) {
	r, ok := lo.Find(s.Ratios, func(r Ratio) bool { return r.Name == name })
	return r.Value, ok
}

// CounterMap returns the counters keyed by name.
func (s *Summary) CounterMap() map[string]int64 {
	return lo.SliceToMap(s.Counters, func(c Counter) (string, int64) { return c.Name, c.Value })
}

// Seal computes and stores the digest.
func (s *Summary) Seal() error {
	d, err := digest.Summary(s.Workload, s.CounterMap())
	if err != nil {
		return fmt.Errorf("seal %s summary: %w", s.Workload, err)
	}
	s.Digest = d
	return nil
}

func (s *Summary) sealed() (*Summary, error) {
	if err := s.Seal(); err != nil {
		return nil, err
	}
	return s, nil
}
