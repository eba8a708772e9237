// Package submit coordinates one improvement request at a time. The
// machine is pure state; the TUI and CLI wire it to the API client and
// feed the outcome back in.
package submit

import (
	"errors"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// State is the submission lifecycle phase.
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

// ErrAlreadyLoading rejects a submission while one is in flight. One
// logical form gets at most one outstanding request.
var ErrAlreadyLoading = errors.New("a submission is already in progress")

// Validator checks a draft before it may leave the machine. The draft
// controller satisfies this.
type Validator interface {
	Validate() error
}

// Machine tracks the single active submission. Transitions are strictly
// Idle→Loading→{Success|Error}, then back to Loading on the next Begin.
type Machine struct {
	state   State
	result  *models.ProcessingResult
	message string
}

// NewMachine starts in Idle.
func NewMachine() *Machine {
	return &Machine{state: Idle}
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Result returns the last successful result, only meaningful in
// Success.
func (m *Machine) Result() *models.ProcessingResult {
	return m.result
}

// ErrorMessage returns the banner text, only meaningful in Error.
func (m *Machine) ErrorMessage() string {
	return m.message
}

// Begin moves to Loading for a validated draft. While Loading it
// rejects with ErrAlreadyLoading; a validation failure leaves the
// current state untouched so the machine never leaves Idle for a draft
// that would never reach the network.
func (m *Machine) Begin(v Validator) error {
	if m.state == Loading {
		return ErrAlreadyLoading
	}
	if err := v.Validate(); err != nil {
		return err
	}
	m.state = Loading
	m.message = ""
	return nil
}

// Resolve records a successful outcome, discarding any previous error.
func (m *Machine) Resolve(result *models.ProcessingResult) {
	m.state = Success
	m.result = result
	m.message = ""
}

// Fail records a failed outcome, discarding any previous result.
func (m *Machine) Fail(message string) {
	m.state = Error
	m.result = nil
	m.message = message
}

// Acknowledge returns an Error state to Idle once the user has seen the
// banner. Success keeps its result until the next submission replaces
// it.
func (m *Machine) Acknowledge() {
	if m.state == Error {
		m.state = Idle
		m.message = ""
	}
}
