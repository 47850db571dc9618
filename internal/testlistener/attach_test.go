package testlistener_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/graphene/internal/testlistener"
)

type fakeTestingHandle struct {
	name     string
	failed   bool
	skipped  bool
	cleanups []func()
}

func (handle *fakeTestingHandle) Name() string {
	return handle.name
}

func (handle *fakeTestingHandle) Failed() bool {
	return handle.failed
}

func (handle *fakeTestingHandle) Skipped() bool {
	return handle.skipped
}

func (handle *fakeTestingHandle) Cleanup(cleanup func()) {
	handle.cleanups = append(handle.cleanups, cleanup)
}

func (handle *fakeTestingHandle) runCleanups() {
	for cleanupIndex := len(handle.cleanups) - 1; cleanupIndex >= 0; cleanupIndex-- {
		handle.cleanups[cleanupIndex]()
	}
}

type recordedNotification struct {
	status testlistener.Status
	name   string
}

type recordingListener struct {
	notifications []recordedNotification
}

func (listener *recordingListener) record(status testlistener.Status, result testlistener.TestResult) {
	listener.notifications = append(listener.notifications, recordedNotification{status: status, name: result.Identity.QualifiedName()})
}

func (listener *recordingListener) OnTestStart(_ context.Context, result testlistener.TestResult) {
	listener.record(testlistener.StatusStarted, result)
}

func (listener *recordingListener) OnTestSuccess(_ context.Context, result testlistener.TestResult) {
	listener.record(testlistener.StatusSuccess, result)
}

func (listener *recordingListener) OnTestFailure(_ context.Context, result testlistener.TestResult) {
	listener.record(testlistener.StatusFailure, result)
}

func (listener *recordingListener) OnTestSkipped(_ context.Context, result testlistener.TestResult) {
	listener.record(testlistener.StatusSkip, result)
}

func (listener *recordingListener) OnTestFailedButWithinSuccessPercentage(_ context.Context, result testlistener.TestResult) {
	listener.record(testlistener.StatusFailurePercentage, result)
}

func TestAttachReportsOutcome(testInstance *testing.T) {
	testCases := []struct {
		name          string
		failed        bool
		skipped       bool
		expectedFinal testlistener.Status
	}{
		{name: "success", expectedFinal: testlistener.StatusSuccess},
		{name: "failure", failed: true, expectedFinal: testlistener.StatusFailure},
		{name: "skipped", skipped: true, expectedFinal: testlistener.StatusSkip},
		{name: "failed_then_skipped", failed: true, skipped: true, expectedFinal: testlistener.StatusFailure},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testListenerSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			handle := &fakeTestingHandle{name: "TestCalendar/select_date"}
			listener := &recordingListener{}

			testlistener.Attach(handle, listener)
			require.Equal(testInstance, []recordedNotification{{status: testlistener.StatusStarted, name: "TestCalendar/select_date"}}, listener.notifications)

			handle.failed = testCase.failed
			handle.skipped = testCase.skipped
			handle.runCleanups()

			require.Len(testInstance, listener.notifications, 2)
			require.Equal(testInstance, testCase.expectedFinal, listener.notifications[1].status)
		})
	}
}

func TestAttachWithRealTest(testInstance *testing.T) {
	listener := &recordingListener{}

	testInstance.Run("inner", func(innerTestInstance *testing.T) {
		testlistener.Attach(innerTestInstance, listener)
	})

	require.Equal(testInstance, []recordedNotification{
		{status: testlistener.StatusStarted, name: "TestAttachWithRealTest/inner"},
		{status: testlistener.StatusSuccess, name: "TestAttachWithRealTest/inner"},
	}, listener.notifications)
}

func TestAttachIgnoresNilArguments(testInstance *testing.T) {
	require.NotPanics(testInstance, func() {
		testlistener.Attach(nil, &recordingListener{})
		testlistener.Attach(&fakeTestingHandle{}, nil)
	})
}
