package driver

// Stage marks where a script is in the run.
type Stage uint8

const (
	StageQueued Stage = iota
	StageValidating
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageValidating:
		return "validating"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// Event reports per-file progress during a run.
type Event struct {
	Path  string
	Stage Stage
	// Diags is the diagnostic count, filled on StageDone.
	Diags int
	// Failed is true when the script produced error diagnostics or could
	// not be read at all.
	Failed bool
}

// Sink consumes progress events. Implementations must be safe for
// concurrent Send calls.
type Sink interface {
	Send(Event)
}

// ChannelSink forwards events to a channel; the channel is owned and
// closed by the producer side of the run.
type ChannelSink struct{ Ch chan<- Event }

func (s ChannelSink) Send(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func emit(sink Sink, ev Event) {
	if sink != nil {
		sink.Send(ev)
	}
}
