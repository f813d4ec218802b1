package dispatch_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/crashlink/internal/dispatch"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

func TestDispatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispatch Suite")
}

var errHandler = errors.New("upload failed")

var _ = Describe("Dispatcher", func() {
	var (
		buf *bytes.Buffer
		d   *dispatch.Dispatcher
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		d = dispatch.NewDispatcher(logger.New(buf, slog.LevelDebug))
	})

	It("passes path and emergency through unchanged", func() {
		var gotPath, gotEmergency string

		calls := 0
		h := dispatch.HandlerFunc(func(p, e string) error {
			calls++
			gotPath, gotEmergency = p, e

			return nil
		})

		Expect(d.Dispatch(dispatch.KindNativeCrash, h, "/data/t.native.xcrash", "SIGSEGV")).To(Succeed())
		Expect(calls).To(Equal(1))
		Expect(gotPath).To(Equal("/data/t.native.xcrash"))
		Expect(gotEmergency).To(Equal("SIGSEGV"))
	})

	It("treats a nil handler as a no-op", func() {
		Expect(d.Dispatch(dispatch.KindANR, nil, "/p", "e")).To(Succeed())
	})

	It("captures a returned error", func() {
		h := dispatch.HandlerFunc(func(string, string) error { return errHandler })

		err := d.Dispatch(dispatch.KindANR, h, "", "")
		Expect(errors.Is(err, dispatch.ErrCallbackFailed)).To(BeTrue())
		Expect(errors.Is(err, errHandler)).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("handler failed"))
	})

	It("captures a panic", func() {
		h := dispatch.HandlerFunc(func(string, string) error { panic("boom") })

		var err error

		Expect(func() {
			err = d.Dispatch(dispatch.KindNativeCrash, h, "/p", "e")
		}).NotTo(Panic())
		Expect(errors.Is(err, dispatch.ErrCallbackFailed)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("boom"))
		Expect(buf.String()).To(ContainSubstring("handler panicked"))
	})
})
