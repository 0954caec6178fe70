package bikeshare

// Event is a sealed interface representing progress during an analysis.
// Failures come from Analyze's error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventFilters reports the validated filters before anything is loaded.
type EventFilters struct {
	Spec FilterSpec
}

func (EventFilters) event() {}

// EventWarning carries a message the user should see before the statistics.
type EventWarning struct {
	Message string
}

func (EventWarning) event() {}

// EventLoaded signals that the dataset was read and filtered.
type EventLoaded struct {
	City     City
	Loaded   int
	Selected int
}

func (EventLoaded) event() {}

// EventStage signals that a reporter is about to run.
type EventStage struct {
	Stage Stage
}

func (EventStage) event() {}

// Stage names one of the four reporters.
type Stage string

const (
	StageTime     Stage = "time"
	StageStation  Stage = "station"
	StageDuration Stage = "duration"
	StageUser     Stage = "user"
)

// Interface compliance checks.
var (
	_ Event = EventFilters{}
	_ Event = EventWarning{}
	_ Event = EventLoaded{}
	_ Event = EventStage{}
)
