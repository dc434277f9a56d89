package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/rcg/internal/adapters/mq/queue"
	"github.com/okian/rcg/internal/adapters/serializer"
	"github.com/okian/rcg/internal/adapters/stream"
	"github.com/okian/rcg/internal/domain/model"
	"github.com/okian/rcg/internal/synth"
)

// writeMatch writes a synthetic match of n shows as ver to path.
func writeMatch(t *testing.T, path string, ver model.LogVersion, n int) {
	t.Helper()
	ser, err := serializer.New(ver)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := synth.New(synth.WithShows(n), synth.WithParams(2)).Write(context.Background(), ser, f); err != nil {
		t.Fatal(err)
	}
}

func TestServiceConvert(t *testing.T) {
	Convey("Given a synthetic version 3 match", t, func() {
		var in bytes.Buffer
		ser, err := serializer.New(model.Version3)
		So(err, ShouldBeNil)
		So(synth.New(synth.WithShows(20), synth.WithMessages(5)).Write(context.Background(), ser, &in), ShouldBeNil)
		size := int64(in.Len())

		Convey("When a default service converts it", func() {
			svc, err := New()
			So(err, ShouldBeNil)
			So(svc.Target(), ShouldEqual, model.Latest)

			var out bytes.Buffer
			stats, err := svc.Convert(context.Background(), &in, &out)
			So(err, ShouldBeNil)

			Convey("Then the output is the latest text revision", func() {
				So(strings.HasPrefix(out.String(), "ULG5\n"), ShouldBeTrue)
				So(strings.Count(out.String(), "(show "), ShouldEqual, 20)
				So(strings.Count(out.String(), "(msg "), ShouldEqual, 4)
			})

			Convey("Then the stats match the streams", func() {
				So(stats.InputVersion, ShouldEqual, 3)
				So(stats.OutputVersion, ShouldEqual, 5)
				So(stats.Read[KindShow], ShouldEqual, 20)
				So(stats.Written[KindShow], ShouldEqual, 20)
				So(stats.BytesRead, ShouldEqual, size)
				So(stats.BytesWritten, ShouldEqual, int64(out.Len()))
			})
		})

		Convey("When a cycle range is cut in the input's own revision", func() {
			svc, err := New(WithInputVersion(), WithCycleRange(CycleRange{Start: 5, End: 9}))
			So(err, ShouldBeNil)

			var out bytes.Buffer
			stats, err := svc.Convert(context.Background(), &in, &out)
			So(err, ShouldBeNil)

			Convey("Then the output keeps version 3 and only those cycles", func() {
				So(out.Bytes()[:4], ShouldResemble, []byte{'U', 'L', 'G', 3})
				So(stats.OutputVersion, ShouldEqual, 3)
				So(stats.Written[KindShow], ShouldEqual, 5)
				So(stats.Skipped, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the input revision is kept without a range", func() {
			svc, err := New(WithInputVersion())
			So(err, ShouldBeNil)
			_, err = svc.Convert(context.Background(), &in, io.Discard)

			Convey("Then it is refused", func() {
				So(errors.Is(err, ErrSameVersion), ShouldBeTrue)
			})
		})

		Convey("When the target equals the input revision", func() {
			svc, err := New(WithOutputVersion(model.Version3))
			So(err, ShouldBeNil)
			_, err = svc.Convert(context.Background(), &in, io.Discard)

			Convey("Then it is refused", func() {
				So(errors.Is(err, ErrSameVersion), ShouldBeTrue)
			})
		})
	})
}

func TestServiceOptions(t *testing.T) {
	Convey("Given an inverted cycle range", t, func() {
		_, err := New(WithCycleRange(CycleRange{Start: 10, End: 5}))

		Convey("Then construction fails", func() {
			So(errors.Is(err, ErrInvalidRange), ShouldBeTrue)
		})
	})

	Convey("Given an invalid output version", t, func() {
		svc, err := New(WithOutputVersion(model.LogVersion(9)))

		Convey("Then the latest revision is kept", func() {
			So(err, ShouldBeNil)
			So(svc.Target(), ShouldEqual, model.Latest)
		})
	})
}

func TestConvertFile(t *testing.T) {
	Convey("Given a version 4 file on disk", t, func() {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "match.rcg")
		writeMatch(t, inPath, model.Version4, 12)

		Convey("When converted to a gzip file", func() {
			svc, err := New(WithOutputVersion(model.Version2))
			So(err, ShouldBeNil)
			outPath := filepath.Join(dir, "match.v2.rcg.gz")
			stats, err := svc.ConvertFile(context.Background(), inPath, outPath)
			So(err, ShouldBeNil)
			So(stats.Written[KindShow], ShouldEqual, 12)

			Convey("Then the file is compressed version 2", func() {
				raw, err := os.ReadFile(outPath)
				So(err, ShouldBeNil)
				So(raw[:2], ShouldResemble, []byte{0x1f, 0x8b})

				rc, err := stream.Open(outPath)
				So(err, ShouldBeNil)
				defer rc.Close()
				body, err := io.ReadAll(rc)
				So(err, ShouldBeNil)
				So(string(body[:3]), ShouldEqual, "ULG")
				So(body[3], ShouldEqual, byte(2))
				So(int64(len(body)), ShouldEqual, stats.BytesWritten)
			})
		})

		Convey("When the output names the input", func() {
			before, err := os.ReadFile(inPath)
			So(err, ShouldBeNil)
			svc, _ := New(WithOutputVersion(model.Version2))
			_, err = svc.ConvertFile(context.Background(), inPath, filepath.Join(dir, ".", "match.rcg"))

			Convey("Then it is refused and the input survives", func() {
				So(errors.Is(err, ErrConvertFailed), ShouldBeTrue)
				So(errors.Is(err, ErrSameFile), ShouldBeTrue)
				after, err := os.ReadFile(inPath)
				So(err, ShouldBeNil)
				So(after, ShouldResemble, before)
			})
		})

		Convey("When a refused run targets an existing output", func() {
			outPath := filepath.Join(dir, "keep.rcg")
			So(os.WriteFile(outPath, []byte("previous run"), 0o644), ShouldBeNil)
			svc, _ := New(WithOutputVersion(model.Version4))
			_, err := svc.ConvertFile(context.Background(), inPath, outPath)

			Convey("Then the existing output is untouched", func() {
				So(errors.Is(err, ErrSameVersion), ShouldBeTrue)
				got, err := os.ReadFile(outPath)
				So(err, ShouldBeNil)
				So(string(got), ShouldEqual, "previous run")
				entries, err := os.ReadDir(dir)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
			})
		})

		Convey("When the input does not exist", func() {
			svc, _ := New()
			_, err := svc.ConvertFile(context.Background(), filepath.Join(dir, "nope.rcg"), filepath.Join(dir, "out.rcg"))

			Convey("Then the error wraps the failure and the cause", func() {
				So(errors.Is(err, ErrConvertFailed), ShouldBeTrue)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})
	})
}

func TestRunBatch(t *testing.T) {
	Convey("Given three good inputs and a missing one", t, func() {
		dir := t.TempDir()
		var jobs []queue.Job
		for _, name := range []string{"a", "b", "c"} {
			in := filepath.Join(dir, name+".rcg")
			writeMatch(t, in, model.Version5, 6)
			jobs = append(jobs, queue.NewJob(in, filepath.Join(dir, name+".v3.rcg")))
		}
		jobs = append(jobs, queue.NewJob(filepath.Join(dir, "missing.rcg"), filepath.Join(dir, "missing.v3.rcg")))

		Convey("When the batch runs", func() {
			svc, err := New(WithOutputVersion(model.Version3))
			So(err, ShouldBeNil)
			results := RunBatch(context.Background(), svc, jobs, WithWorkers(2), WithQueueSize(2))

			Convey("Then results come back in job order", func() {
				So(len(results), ShouldEqual, len(jobs))
				for i, r := range results {
					So(r.Job.ID, ShouldEqual, jobs[i].ID)
				}
			})

			Convey("Then good inputs convert and the missing one fails", func() {
				for _, r := range results[:3] {
					So(r.Err, ShouldBeNil)
					So(r.Stats.Written[KindShow], ShouldEqual, 6)
					_, err := os.Stat(r.Job.Output)
					So(err, ShouldBeNil)
				}
				So(errors.Is(results[3].Err, ErrConvertFailed), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			svc, _ := New(WithOutputVersion(model.Version3))
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			results := RunBatch(ctx, svc, jobs[:3], WithWorkers(1))

			Convey("Then every job reports a failure", func() {
				for _, r := range results {
					So(errors.Is(r.Err, ErrConvertFailed), ShouldBeTrue)
				}
			})
		})
	})
}
