package submit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

type stubDraft struct {
	err error
}

func (s stubDraft) Validate() error { return s.err }

func TestSubmissionLifecycle(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, Idle, m.State())

	require.NoError(t, m.Begin(stubDraft{}))
	assert.Equal(t, Loading, m.State())

	result := &models.ProcessingResult{
		ImprovedContent: "Hi,\n\nGreetings.",
		Suggestions:     []string{"Add a greeting"},
		Corrections:     []string{},
	}
	m.Resolve(result)
	assert.Equal(t, Success, m.State())
	assert.Equal(t, result, m.Result())
	assert.Empty(t, m.ErrorMessage())
}

func TestBeginRejectedWhileLoading(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Begin(stubDraft{}))

	err := m.Begin(stubDraft{})
	assert.ErrorIs(t, err, ErrAlreadyLoading)
	assert.Equal(t, Loading, m.State())
}

func TestValidationFailureNeverLeavesIdle(t *testing.T) {
	m := NewMachine()

	wantErr := errors.New("email content is required")
	err := m.Begin(stubDraft{err: wantErr})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, Idle, m.State())
}

func TestFailCarriesMessageAndDiscardsResult(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Begin(stubDraft{}))
	m.Resolve(&models.ProcessingResult{ImprovedContent: "ok"})

	require.NoError(t, m.Begin(stubDraft{}))
	m.Fail("model unavailable")

	assert.Equal(t, Error, m.State())
	assert.Equal(t, "model unavailable", m.ErrorMessage())
	assert.Nil(t, m.Result())
}

func TestResubmitAfterTerminalStates(t *testing.T) {
	m := NewMachine()

	require.NoError(t, m.Begin(stubDraft{}))
	m.Fail("boom")
	require.NoError(t, m.Begin(stubDraft{}), "Begin allowed from Error")

	m.Resolve(&models.ProcessingResult{ImprovedContent: "ok"})
	require.NoError(t, m.Begin(stubDraft{}), "Begin allowed from Success")
}

func TestAcknowledgeClearsErrorOnly(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Begin(stubDraft{}))
	m.Fail("boom")

	m.Acknowledge()
	assert.Equal(t, Idle, m.State())
	assert.Empty(t, m.ErrorMessage())

	require.NoError(t, m.Begin(stubDraft{}))
	m.Resolve(&models.ProcessingResult{ImprovedContent: "ok"})
	m.Acknowledge()
	assert.Equal(t, Success, m.State(), "Acknowledge must not clear a result")
}
