package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/crashlink/pkg/logger"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("SlogLogger", func() {
	It("writes key/value pairs", func() {
		var buf bytes.Buffer

		log := logger.New(&buf, slog.LevelDebug)
		log.With("component", "router").Warn("callback failed", "kind", "crash")

		Expect(buf.String()).To(ContainSubstring("callback failed"))
		Expect(buf.String()).To(ContainSubstring("component=router"))
		Expect(buf.String()).To(ContainSubstring("kind=crash"))
	})

	It("filters records below the configured level", func() {
		var buf bytes.Buffer

		log := logger.New(&buf, slog.LevelWarn)
		log.Debug("hidden")
		log.Info("hidden too")

		Expect(buf.Len()).To(BeZero())
		Expect(log.Enabled(slog.LevelError)).To(BeTrue())
	})

	DescribeTable("ParseLevel",
		func(name string, expected slog.Level) {
			Expect(logger.ParseLevel(name)).To(Equal(expected))
		},
		Entry("debug", "debug", slog.LevelDebug),
		Entry("upper case", "WARN", slog.LevelWarn),
		Entry("warning alias", "warning", slog.LevelWarn),
		Entry("error", "error", slog.LevelError),
		Entry("unknown falls back to info", "verbose", slog.LevelInfo),
	)
})

var _ = Describe("NoOpLogger", func() {
	It("returns itself from With", func() {
		log := logger.NewNoOpLogger()
		Expect(log.With("k", "v")).To(BeIdenticalTo(log))
	})
})
