package model

import (
	"fmt"
	"math"
	"strconv"
)

// MetricID identifies a metric in the catalog
type MetricID string

// Value is a raw metric reading that may be absent from a snapshot
type Value struct {
	N     float64
	Valid bool
}

// Present wraps a reading
func Present(n float64) Value {
	return Value{N: n, Valid: true}
}

// Missing is the absent reading
var Missing = Value{}

// Or returns the reading, or def when it is absent
func (v Value) Or(def float64) float64 {
	if !v.Valid {
		return def
	}
	return v.N
}

// Formatter turns a raw reading into display text. It must accept Missing.
type Formatter func(Value) string

// MetricDescriptor describes one selectable metric
type MetricDescriptor struct {
	ID       MetricID
	Label    string
	Header   string
	Group    string
	ValueKey string
	Format   Formatter
}

// DisplayHeader returns the column header, falling back to the label
func (m MetricDescriptor) DisplayHeader() string {
	if m.Header != "" {
		return m.Header
	}
	return m.Label
}

// FormatValue applies the descriptor's formatter, defaulting to FormatCount
func (m MetricDescriptor) FormatValue(v Value) string {
	if m.Format == nil {
		return FormatCount(v)
	}
	return m.Format(v)
}

// FormatCount renders a plain number; missing is "0"
func FormatCount(v Value) string {
	return strconv.FormatFloat(v.Or(0), 'f', -1, 64)
}

// FormatDuration renders seconds as MM:SS; missing or negative is "00:00"
func FormatDuration(v Value) string {
	seconds := int64(math.Floor(v.Or(0)))
	if seconds < 0 {
		seconds = 0
	}

	minutes := seconds / 60
	rest := seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, rest)
}

// FormatPercent renders a number with a percent sign; missing is "0%"
func FormatPercent(v Value) string {
	return FormatCount(v) + "%"
}
