package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// gathered returns the summed counter value of a family on reg.
func gathered(reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return -1
	}
	var sum float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created on that registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldEqual, registry)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("conv"),
				WithMetricPrefix("batch"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordDecoded("5", "show", 1)

			Convey("Then names carry the namespace, subsystem and prefix", func() {
				So(gathered(registry, "test_conv_batch_records_decoded_total"), ShouldEqual, 1.0)
			})
		})

		Convey("When empty options are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithPrometheusRegistry(registry),
			)
			manager.RecordDecoded("2", "show", 1)

			Convey("Then the defaults are kept", func() {
				So(gathered(registry, "rcg_codec_records_decoded_total"), ShouldEqual, 1.0)
			})
		})
	})
}

func TestCodecMetrics(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording codec activity", func() {
			manager.RecordDecoded("3", "show", 1)
			manager.RecordDecoded("3", "msg", 1)
			manager.RecordEncoded("5", "show", 10)
			manager.RecordEncoded("5", "msg", 0)
			manager.RecordParseWarnings("4", 2)
			manager.RecordBytes(100, 250)
			manager.RecordConversion("ok", 12)

			Convey("Then the counters reflect it", func() {
				So(gathered(registry, "rcg_codec_records_decoded_total"), ShouldEqual, 2.0)
				So(gathered(registry, "rcg_codec_records_encoded_total"), ShouldEqual, 10.0)
				So(gathered(registry, "rcg_codec_parse_warnings_total"), ShouldEqual, 2.0)
				So(gathered(registry, "rcg_codec_bytes_read_total"), ShouldEqual, 100.0)
				So(gathered(registry, "rcg_codec_bytes_written_total"), ShouldEqual, 250.0)
				So(gathered(registry, "rcg_codec_conversions_total"), ShouldEqual, 1.0)
			})
		})

		Convey("When the manager is disabled", func() {
			reg := prometheus.NewRegistry()
			off := NewManager(WithPrometheusRegistry(reg), WithMetricsEnabled(false))
			off.RecordDecoded("3", "show", 1)
			off.RecordBytes(10, 10)

			Convey("Then nothing is counted", func() {
				So(gathered(reg, "rcg_codec_records_decoded_total"), ShouldEqual, 0.0)
				So(gathered(reg, "rcg_codec_bytes_read_total"), ShouldEqual, 0.0)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global recorders", t, func() {
		Convey("Then they should not panic", func() {
			So(func() {
				RecordDecoded("1", "show", 1)
				RecordEncoded("2", "team", 1)
				RecordParseWarnings("4", 1)
				RecordBytes(1, 1)
				RecordConversion("error", 1)
				UpdateQueueSize(1)
				UpdateQueueCapacity(8)
				UpdateQueueUtilization(0.125)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerCount(2)
				UpdateWorkerActiveCount(1)
				UpdateWorkerIdleCount(1)
				RecordWorkerProcessingLatency(3)
				RecordWorkerError()
				RecordErrorByComponent("parser", "malformed")
			}, ShouldNotPanic)
		})

		Convey("Then concurrent use should be safe", func() {
			var wg sync.WaitGroup
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range 100 {
						RecordDecoded("5", "show", 1)
					}
				}()
			}
			wg.Wait()
			So(gathered(GetRegistry(), "rcg_codec_records_decoded_total"), ShouldBeGreaterThanOrEqualTo, 800.0)
		})
	})
}

func TestWriteToTextfile(t *testing.T) {
	Convey("Given recorded metrics", t, func() {
		RecordDecoded("5", "show", 1)
		path := filepath.Join(t.TempDir(), "rcg.prom")

		Convey("When writing the textfile", func() {
			err := WriteToTextfile(path)
			So(err, ShouldBeNil)

			Convey("Then it contains the exposition text", func() {
				raw, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.Contains(string(raw), "rcg_codec_records_decoded_total"), ShouldBeTrue)
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteToTextfile(filepath.Join(t.TempDir(), "missing", "rcg.prom"))

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
