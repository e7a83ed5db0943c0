package analyze

import "regexp"

// Token grammars used by the analyzer. Kept as named constants so tests
// can target the patterns directly.
const (
	// NumberPattern matches numeric literals: optional sign with
	// a decimal fraction, or a plain digit run.
	NumberPattern = `[-+]?\d*\.\d+|\d+`

	// MeasurementPattern matches a numeric value glued to a short
	// unit-like token ("124 light-years", "33 days", "2.6km").
	// The unit class is deliberately permissive and also matches bare
	// words: "2.6 times that of Earth" yields unit "times". Units are
	// recorded as matched, never validated.
	MeasurementPattern = `(?i)(?P<value>[-+]?\d*\.\d+|\d+(?:e[-+]?\d+)?)[\s\-]*(?P<unit>[A-Za-z/%°μkmhdys]+)`
)

var (
	numberRe      = regexp.MustCompile(NumberPattern)
	measurementRe = regexp.MustCompile(MeasurementPattern)

	measurementValueIdx = measurementRe.SubexpIndex("value")
	measurementUnitIdx  = measurementRe.SubexpIndex("unit")
)
