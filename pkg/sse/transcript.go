package sse

// FailureText replaces the in-progress message when the stream reports an
// in-band error.
const FailureText = "Sorry, something went wrong while processing your request. Please try again."

// Transcript applies decoded events to one conversation turn: the visible
// message text, the tool side channel, and turn completion.
type Transcript struct {
	text     string
	transfer *TransferParams
	done     bool
	failed   bool
}

// NewTranscript starts an empty turn
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Apply folds one event into the turn state
func (t *Transcript) Apply(ev Event) {
	if t.done {
		return
	}
	switch ev.Kind {
	case KindDelta:
		t.text += ev.Text
	case KindReset:
		t.text = ev.Text
	case KindTool:
		// Raw JSON never reaches the chat text; the summary does.
		t.text = ev.Text
		if ev.Tool != nil {
			params := ev.Tool.Parameters
			t.transfer = &params
		}
	case KindError:
		t.text = FailureText
		t.failed = true
		t.done = true
	case KindDone:
		t.done = true
	}
}

// ApplyAll folds a batch of events
func (t *Transcript) ApplyAll(events []Event) {
	for _, ev := range events {
		t.Apply(ev)
	}
}

// Text returns the reconstructed message text so far
func (t *Transcript) Text() string { return t.text }

// Transfer returns the side-channel transfer details, if a tool record was
// seen this turn.
func (t *Transcript) Transfer() *TransferParams { return t.transfer }

// Done reports whether the turn is complete and input can be re-enabled
func (t *Transcript) Done() bool { return t.done }

// Failed reports whether the turn ended with an error record
func (t *Transcript) Failed() bool { return t.failed }
