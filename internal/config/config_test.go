package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/rcg/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.OutputVersion, convey.ShouldEqual, 5)
			convey.So(cfg.Compression, convey.ShouldEqual, "auto")
			convey.So(cfg.Workers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
			convey.So(cfg.MetricsFile, convey.ShouldBeEmpty)
			convey.So(cfg.StrictParams, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad field", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"version too low", func(c *config.Config) { c.OutputVersion = 0 }},
			{"version too high", func(c *config.Config) { c.OutputVersion = 6 }},
			{"compression", func(c *config.Config) { c.Compression = "lz4" }},
			{"queue size", func(c *config.Config) { c.QueueSize = 0 }},
			{"workers", func(c *config.Config) { c.Workers = -1 }},
			{"log format", func(c *config.Config) { c.LogFormat = "xml" }},
		}

		for _, tc := range cases {
			convey.Convey("When the "+tc.name+" is invalid", func() {
				cfg := config.New()
				tc.mutate(cfg)

				convey.Convey("Then validation fails", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
