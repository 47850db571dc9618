package testlistener

import (
	"context"
	"time"
)

// TestingHandle is the subset of *testing.T used by Attach.
type TestingHandle interface {
	Name() string
	Failed() bool
	Skipped() bool
	Cleanup(cleanup func())
}

// Attach reports the start of the running test immediately and its outcome
// once the test and its subtests complete. A test that failed before calling
// Skip is reported as a failure, matching go test.
func Attach(testingHandle TestingHandle, listener Listener) {
	if testingHandle == nil || listener == nil {
		return
	}

	startedAt := time.Now()
	identity := Identity{Name: testingHandle.Name()}
	listener.OnTestStart(context.Background(), TestResult{Identity: identity, Status: StatusStarted})

	testingHandle.Cleanup(func() {
		result := TestResult{Identity: identity, Elapsed: time.Since(startedAt)}
		switch {
		case testingHandle.Failed():
			listener.OnTestFailure(context.Background(), result)
		case testingHandle.Skipped():
			listener.OnTestSkipped(context.Background(), result)
		default:
			listener.OnTestSuccess(context.Background(), result)
		}
	})
}
