// Package conv converts between integer widths with overflow checks, for
// counts written to and read from encoded headers.
package conv
