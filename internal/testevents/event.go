package testevents

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Action is the test2json action of an event.
type Action string

// Actions emitted by test2json.
const (
	ActionStart  Action = "start"
	ActionRun    Action = "run"
	ActionPause  Action = "pause"
	ActionCont   Action = "cont"
	ActionPass   Action = "pass"
	ActionBench  Action = "bench"
	ActionFail   Action = "fail"
	ActionOutput Action = "output"
	ActionSkip   Action = "skip"
)

const (
	eventDecodeErrorTemplateConstant = "invalid test event: %w"
	missingActionMessageConstant     = "test event has no action"
)

var errMissingAction = errors.New(missingActionMessageConstant)

// Event is a single record of the `go test -json` stream.
type Event struct {
	Time    time.Time `json:"Time"`
	Action  Action    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// DecodeEvent parses one line of the stream. Lines that are not JSON objects
// carrying an Action fail to decode.
func DecodeEvent(line []byte) (Event, error) {
	var event Event
	if decodeError := json.Unmarshal(line, &event); decodeError != nil {
		return Event{}, fmt.Errorf(eventDecodeErrorTemplateConstant, decodeError)
	}
	if len(event.Action) == 0 {
		return Event{}, fmt.Errorf(eventDecodeErrorTemplateConstant, errMissingAction)
	}
	return event, nil
}

// IsTestEvent reports whether the event concerns a test rather than a whole package.
func (event Event) IsTestEvent() bool {
	return len(event.Test) > 0
}

// ElapsedDuration converts the elapsed seconds to a duration.
func (event Event) ElapsedDuration() time.Duration {
	return time.Duration(event.Elapsed * float64(time.Second))
}
