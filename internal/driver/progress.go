package driver

// Stage describes where a file is in the detection pipeline.
type Stage string

const (
	// StageRead loads the capped line prefix of a file.
	StageRead Stage = "read"
	// StageClassify runs the classifier over the loaded lines.
	StageClassify Stage = "classify"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file has a verdict.
	StatusDone Status = "done"
	// StatusError indicates the file could not be read.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File   string
	Stage  Stage
	Status Status
	// Style is the verdict name once Status is StatusDone.
	Style string
}

// ProgressSink receives progress events. Implementations must be safe for
// concurrent use; workers report independently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
