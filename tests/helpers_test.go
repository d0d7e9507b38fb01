package tests_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

const outputName = "report.html"

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectFileContains returns a comparator verifying that the file at path holds every given substring.
func expectFileContains(path string, substrs ...string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		content, err := os.ReadFile(path) //nolint:gosec // test reads its own temp files
		if err != nil {
			testing.Log(fmt.Sprintf("reading %s: %v", path, err))
			testing.Fail()

			return
		}

		for _, substr := range substrs {
			if !strings.Contains(string(content), substr) {
				testing.Log(fmt.Sprintf("expected substring %q not found in %s:\n%s", substr, path, content))
				testing.Fail()
			}
		}
	}
}

// expectFileCount returns a comparator verifying how many times substr occurs in the file at path.
func expectFileCount(path, substr string, count int) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		content, err := os.ReadFile(path) //nolint:gosec // test reads its own temp files
		if err != nil {
			testing.Log(fmt.Sprintf("reading %s: %v", path, err))
			testing.Fail()

			return
		}

		if got := strings.Count(string(content), substr); got != count {
			testing.Log(fmt.Sprintf("expected %d occurrences of %q in %s, got %d:\n%s", count, substr, path, got, content))
			testing.Fail()
		}
	}
}

// expectFileEquals returns a comparator verifying the exact content of the file at path.
func expectFileEquals(path, expected string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		content, err := os.ReadFile(path) //nolint:gosec // test reads its own temp files
		if err != nil {
			testing.Log(fmt.Sprintf("reading %s: %v", path, err))
			testing.Fail()

			return
		}

		if string(content) != expected {
			testing.Log(fmt.Sprintf("expected %s to hold %q, got %q", path, expected, content))
			testing.Fail()
		}
	}
}

// expectNoFile returns a comparator verifying nothing was written at path.
func expectNoFile(path string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		if _, err := os.Stat(path); err == nil {
			testing.Log(fmt.Sprintf("expected %s not to exist", path))
			testing.Fail()
		}
	}
}
