package test

import (
	"path/filepath"
	"runtime"
)

func ProjectRoot() string {
	_, b, _, _ := runtime.Caller(0)
	// Root folder of this project is 2 levels up from this file
	return filepath.Join(filepath.Dir(b), "../..")
}

// FixtureContentDir is the on-disk sample content tree used by integration tests.
func FixtureContentDir() string {
	return filepath.Join(ProjectRoot(), "testdata", "content")
}
