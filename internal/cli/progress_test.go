package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressModel_QuitsOnResult(t *testing.T) {
	m := newProgressModel("working", func() (int, error) { return 7, nil })
	assert.Contains(t, m.View(), "working")

	next, cmd := m.Update(resultMsg[int]{value: 7})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	done := next.(progressModel[int])
	require.NotNil(t, done.result)
	assert.Equal(t, 7, done.result.value)
	assert.Empty(t, done.View())
}

func TestProgressModel_CtrlCCancels(t *testing.T) {
	m := newProgressModel("working", func() (int, error) { return 0, nil })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	done := next.(progressModel[int])
	assert.ErrorIs(t, done.result.err, context.Canceled)
}

func TestProgressModel_IgnoresOtherKeys(t *testing.T) {
	m := newProgressModel("working", func() (int, error) { return 0, nil })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.Nil(t, next.(progressModel[int]).result)
}

func TestWithProgress_NonInteractiveCallsDirectly(t *testing.T) {
	app := &App{}
	boom := errors.New("boom")

	v, err := withProgress(app, &bytes.Buffer{}, "x", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	_, err = withProgress(app, &bytes.Buffer{}, "x", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}

func TestContextWizard_Apply(t *testing.T) {
	f := &contextFlags{}
	w := newContextWizard(f, []string{"lat", "lon", "minutes", "goal"})
	w.lat, w.lon, w.minutes = "52.5", "13.4", "45"

	require.NoError(t, w.apply())
	assert.Equal(t, 52.5, f.lat)
	assert.Equal(t, 13.4, f.lon)
	assert.Equal(t, 45, f.minutes)
}

func TestWizardValidators(t *testing.T) {
	assert.NoError(t, validateFloat(-90, 90)("45.1"))
	assert.Error(t, validateFloat(-90, 90)("91"))
	assert.Error(t, validateFloat(-90, 90)("north"))
	assert.NoError(t, validatePositiveInt("10"))
	assert.Error(t, validatePositiveInt("0"))
}
