package testlistener

import "sort"

// Status identifies a test lifecycle transition.
type Status int

// Supported test statuses.
const (
	StatusSuccess           Status = 1
	StatusFailure           Status = 2
	StatusSkip              Status = 3
	StatusFailurePercentage Status = 4
	StatusStarted           Status = 16
)

const (
	statusSuccessNameConstant           = "Success"
	statusFailureNameConstant           = "Failure"
	statusSkipNameConstant              = "Skip"
	statusFailurePercentageNameConstant = "FailurePercentage"
	statusStartedNameConstant           = "Started"
)

// StatusNames maps statuses to display names. It is built once and never
// modified afterwards, so a single instance can be shared between listeners.
type StatusNames struct {
	names map[Status]string
}

// NewStatusNames constructs the status name mapping.
func NewStatusNames() *StatusNames {
	return &StatusNames{
		names: map[Status]string{
			StatusFailure:           statusFailureNameConstant,
			StatusSkip:              statusSkipNameConstant,
			StatusStarted:           statusStartedNameConstant,
			StatusSuccess:           statusSuccessNameConstant,
			StatusFailurePercentage: statusFailurePercentageNameConstant,
		},
	}
}

// Name returns the display name registered for status.
func (statusNames *StatusNames) Name(status Status) (string, bool) {
	if statusNames == nil {
		return "", false
	}
	name, exists := statusNames.names[status]
	return name, exists
}

// Statuses lists the registered statuses in ascending order.
func (statusNames *StatusNames) Statuses() []Status {
	if statusNames == nil {
		return nil
	}
	statuses := make([]Status, 0, len(statusNames.names))
	for status := range statusNames.names {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(leftIndex int, rightIndex int) bool {
		return statuses[leftIndex] < statuses[rightIndex]
	})
	return statuses
}
