package scale_test

import (
	"math"
	"testing"

	"github.com/okian/rcg/internal/domain/scale"
	"github.com/smartystreets/goconvey/convey"
)

func TestFixed16(t *testing.T) {
	convey.Convey("Given the 16-bit fixed-point codec", t, func() {
		convey.Convey("When encoding a value", func() {
			n := scale.ToNetFixed16(-52.5)

			convey.Convey("Then the bytes are big-endian scaled by 16", func() {
				convey.So(n, convey.ShouldResemble, scale.Net16{0xfc, 0xb8})
				convey.So(scale.ToLocalFixed16(n), convey.ShouldEqual, -52.5)
			})
		})

		convey.Convey("When round-tripping values across the field range", func() {
			maxErr := 0.0
			for f := -100.0; f <= 100.0; f += 0.013 {
				got := scale.ToLocalFixed16(scale.ToNetFixed16(f))
				maxErr = math.Max(maxErr, math.Abs(got-f))
			}

			convey.Convey("Then the error stays within one resolution step", func() {
				convey.So(maxErr, convey.ShouldBeLessThanOrEqualTo, scale.Resolution16())
			})
		})

		convey.Convey("When the scaled value exceeds int16", func() {
			n := scale.ToNetFixed16(2048.0) // 32768 wraps to -32768

			convey.Convey("Then it wraps silently", func() {
				convey.So(scale.ToLocalFixed16(n), convey.ShouldEqual, -2048.0)
			})
		})
	})
}

func TestFixed32(t *testing.T) {
	convey.Convey("Given the 32-bit fixed-point codec", t, func() {
		convey.Convey("When encoding 1.5", func() {
			n := scale.ToNetFixed32(1.5)

			convey.Convey("Then it is scaled by 65536", func() {
				convey.So(n, convey.ShouldResemble, scale.Net32{0x00, 0x01, 0x80, 0x00})
				convey.So(scale.ToLocalFixed32(n), convey.ShouldEqual, 1.5)
			})
		})

		convey.Convey("When round-tripping values", func() {
			maxErr := 0.0
			for f := -8000.0; f <= 8000.0; f += 3.7 {
				got := scale.ToLocalFixed32(scale.ToNetFixed32(f))
				maxErr = math.Max(maxErr, math.Abs(got-f))
			}

			convey.Convey("Then the error stays within one resolution step", func() {
				convey.So(maxErr, convey.ShouldBeLessThanOrEqualTo, scale.Resolution32())
			})
		})

		convey.Convey("When re-encoding a decoded value", func() {
			in := scale.Net32{0xff, 0xfe, 0x12, 0x34}
			out := scale.ToNetFixed32(scale.ToLocalFixed32(in))

			convey.Convey("Then the bytes are identical", func() {
				convey.So(out, convey.ShouldResemble, in)
			})
		})
	})
}

func TestRound(t *testing.T) {
	convey.Convey("Round breaks ties away from zero", t, func() {
		convey.So(scale.Round(0.5), convey.ShouldEqual, 1)
		convey.So(scale.Round(-0.5), convey.ShouldEqual, -1)
		convey.So(scale.Round(2.5), convey.ShouldEqual, 3)
		convey.So(scale.Round(-2.4), convey.ShouldEqual, -2)
		convey.So(scale.Round(math.NaN()), convey.ShouldEqual, 0)
	})

	convey.Convey("Plain integers round-trip through network order", t, func() {
		convey.So(scale.ToLocal16(scale.ToNet16(-3)), convey.ShouldEqual, -3)
		convey.So(scale.ToLocal32(scale.ToNet32(123456)), convey.ShouldEqual, 123456)
		convey.So(scale.ToNet16(0x10001), convey.ShouldResemble, scale.Net16{0x00, 0x01})
	})
}
