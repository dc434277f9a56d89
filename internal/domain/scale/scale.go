// Package scale converts between network-order fixed-point integers and
// local floating-point values as stored in binary game logs.
//
// Two independent scales exist: 16-bit fields (showinfo_t positions) use
// Scale16, 32-bit fields (short shows and parameter records) use Scale32.
// Values outside the destination range wrap silently, matching the legacy
// writers.
package scale

import (
	"encoding/binary"
	"math"
)

// Fixed-point scale factors.
const (
	Scale16 = 16.0
	Scale32 = 65536.0
)

// Net16 is a 16-bit value in network byte order.
type Net16 [2]byte

// Net32 is a 32-bit value in network byte order.
type Net32 [4]byte

// ToLocalFixed16 decodes a network-order fixed-point 16-bit value.
func ToLocalFixed16(n Net16) float64 {
	return float64(int16(binary.BigEndian.Uint16(n[:]))) / Scale16
}

// ToNetFixed16 encodes f as a network-order fixed-point 16-bit value.
func ToNetFixed16(f float64) Net16 {
	var n Net16
	binary.BigEndian.PutUint16(n[:], uint16(int16(Round(f*Scale16))))
	return n
}

// ToLocalFixed32 decodes a network-order fixed-point 32-bit value.
func ToLocalFixed32(n Net32) float64 {
	return float64(int32(binary.BigEndian.Uint32(n[:]))) / Scale32
}

// ToNetFixed32 encodes f as a network-order fixed-point 32-bit value.
func ToNetFixed32(f float64) Net32 {
	var n Net32
	binary.BigEndian.PutUint32(n[:], uint32(int32(Round(f*Scale32))))
	return n
}

// ToLocal16 converts a network-order 16-bit integer to a signed host value.
func ToLocal16(n Net16) int16 {
	return int16(binary.BigEndian.Uint16(n[:]))
}

// ToNet16 converts v to network order; v is truncated to 16 bits.
func ToNet16(v int) Net16 {
	var n Net16
	binary.BigEndian.PutUint16(n[:], uint16(int16(v)))
	return n
}

// ToLocal32 converts a network-order 32-bit integer to a signed host value.
func ToLocal32(n Net32) int32 {
	return int32(binary.BigEndian.Uint32(n[:]))
}

// ToNet32 converts v to network order; v is truncated to 32 bits.
func ToNet32(v int) Net32 {
	var n Net32
	binary.BigEndian.PutUint32(n[:], uint32(int32(v)))
	return n
}

// Round rounds to the nearest integer, ties away from zero. The result is
// returned as int64 so callers can truncate to the wire width themselves.
func Round(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	return int64(math.Round(f))
}

// Resolution16 is the smallest step representable by the 16-bit scale.
func Resolution16() float64 { return 1 / Scale16 }

// Resolution32 is the smallest step representable by the 32-bit scale.
func Resolution32() float64 { return 1 / Scale32 }
