package threads_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestThreads(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Threads Suite")
}
