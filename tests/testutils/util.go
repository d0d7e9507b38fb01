// Package testutils provides test infrastructure for di-checker integration tests.
package testutils

import (
	"path/filepath"
	"runtime"

	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"
)

func testsDir() string {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed

	return filepath.Dir(filepath.Dir(thisFile))
}

// Setup creates a test case configured to run the di-checker binary.
func Setup() *test.Case {
	binaryPath := filepath.Join(filepath.Dir(testsDir()), "bin", "di-checker")

	return agar.Setup(binaryPath)
}

// Fixture returns the absolute path of a file under tests/testdata.
func Fixture(name string) string {
	return filepath.Join(testsDir(), "testdata", name)
}
