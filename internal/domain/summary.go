package domain

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// Summary describes the whole contribution window returned by the API.
type Summary struct {
	Days        int
	ActiveDays  int
	Total       int
	MeanPerDay  float64
	BusiestDay  string
	BusiestDays int
}

// Summarize computes a Summary for the calendar. An empty calendar yields
// the zero Summary.
func (c Calendar) Summarize() Summary {
	if len(c) == 0 {
		return Summary{}
	}

	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	// Sorted so that ties on the busiest day resolve to the earliest date.
	sort.Strings(keys)

	data := make(stats.Float64Data, 0, len(keys))
	s := Summary{Days: len(keys)}
	for _, k := range keys {
		count := c[k]
		data = append(data, float64(count))
		if count > 0 {
			s.ActiveDays++
		}
		if count > s.BusiestDays {
			s.BusiestDay = k
			s.BusiestDays = count
		}
	}

	total, _ := stats.Sum(data)
	mean, _ := stats.Mean(data)
	s.Total = int(total)
	s.MeanPerDay = mean
	return s
}
