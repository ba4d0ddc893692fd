package prices

import (
	"fmt"
	"sort"
	"time"
)

// Series is a date-sorted close-price series supporting the nearest
// trading-day lookups the return computation needs.
type Series struct {
	points []PricePoint
	dates  []time.Time
}

// NewSeries validates and sorts the points by date.
func NewSeries(points []PricePoint) (*Series, error) {
	s := &Series{points: make([]PricePoint, len(points))}
	copy(s.points, points)

	sort.Slice(s.points, func(i, j int) bool {
		return s.points[i].Date < s.points[j].Date
	})

	s.dates = make([]time.Time, len(s.points))
	for i, p := range s.points {
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("bad date %q in price series: %w", p.Date, err)
		}
		s.dates[i] = d
	}
	return s, nil
}

// Len returns the number of trading days in the series.
func (s *Series) Len() int { return len(s.points) }

// indexAtOrAfter finds the first trading-day index at or after date.
func (s *Series) indexAtOrAfter(date time.Time) (int, bool) {
	i := sort.Search(len(s.dates), func(i int) bool {
		return !s.dates[i].Before(date)
	})
	if i >= len(s.dates) {
		return 0, false
	}
	return i, true
}

// windowReturn computes the percentage return between two trading-day
// indexes. Absent when the window runs past the end of the series.
func (s *Series) windowReturn(entry, days int) (float64, bool) {
	exit := entry + days
	if entry < 0 || exit >= len(s.points) {
		return 0, false
	}
	entryPrice := s.points[entry].Close
	exitPrice := s.points[exit].Close
	if entryPrice == 0 {
		return 0, false
	}
	return (exitPrice - entryPrice) / entryPrice, true
}

// ReturnAfter is the strategy return: enter on the first trading day
// strictly after the event date's nearest trading day, exit a fixed number
// of trading days later.
func (s *Series) ReturnAfter(date time.Time, days int) (float64, bool) {
	event, ok := s.indexAtOrAfter(date)
	if !ok {
		return 0, false
	}
	return s.windowReturn(event+1, days)
}

// BenchmarkReturn is the hold-from-earnings return: enter on the event
// date's nearest trading day itself, exit the same number of trading days
// later.
func (s *Series) BenchmarkReturn(date time.Time, days int) (float64, bool) {
	event, ok := s.indexAtOrAfter(date)
	if !ok {
		return 0, false
	}
	return s.windowReturn(event, days)
}
