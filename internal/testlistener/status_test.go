package testlistener_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/graphene/internal/testlistener"
)

const (
	testListenerSubtestNameTemplateConstant = "%d_%s"
)

func TestStatusNames(testInstance *testing.T) {
	testCases := []struct {
		name         string
		status       testlistener.Status
		expectedName string
		expectKnown  bool
	}{
		{name: "started", status: testlistener.StatusStarted, expectedName: "Started", expectKnown: true},
		{name: "success", status: testlistener.StatusSuccess, expectedName: "Success", expectKnown: true},
		{name: "failure", status: testlistener.StatusFailure, expectedName: "Failure", expectKnown: true},
		{name: "skip", status: testlistener.StatusSkip, expectedName: "Skip", expectKnown: true},
		{name: "failure_percentage", status: testlistener.StatusFailurePercentage, expectedName: "FailurePercentage", expectKnown: true},
		{name: "unknown", status: testlistener.Status(99), expectedName: "", expectKnown: false},
	}

	statusNames := testlistener.NewStatusNames()
	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testListenerSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			name, known := statusNames.Name(testCase.status)
			require.Equal(testInstance, testCase.expectKnown, known)
			require.Equal(testInstance, testCase.expectedName, name)
		})
	}
}

func TestStatusNamesStatusesSorted(testInstance *testing.T) {
	statuses := testlistener.NewStatusNames().Statuses()
	require.Equal(testInstance, []testlistener.Status{
		testlistener.StatusSuccess,
		testlistener.StatusFailure,
		testlistener.StatusSkip,
		testlistener.StatusFailurePercentage,
		testlistener.StatusStarted,
	}, statuses)
}

func TestStatusNamesNilReceiver(testInstance *testing.T) {
	var statusNames *testlistener.StatusNames
	name, known := statusNames.Name(testlistener.StatusSuccess)
	require.False(testInstance, known)
	require.Empty(testInstance, name)
	require.Nil(testInstance, statusNames.Statuses())
}
