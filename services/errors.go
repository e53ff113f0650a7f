package services

import "fmt"

// Warning records a rate-table lookup miss. The engine recovers with the
// documented default (0 for additive rates, 1.0 for factors) and finishes
// the quote; callers surface warnings so incomplete rate seeding stays
// visible.
type Warning struct {
	Table    string  `json:"table"`
	Key      string  `json:"key"`
	Fallback float64 `json:"fallback"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s[%s]: no rate row, using %g", w.Table, w.Key, w.Fallback)
}

// warnings accumulates data-gap warnings during one computation.
type warnings []Warning

func (ws *warnings) miss(table, key string, fallback float64) float64 {
	*ws = append(*ws, Warning{Table: table, Key: key, Fallback: fallback})
	return fallback
}
