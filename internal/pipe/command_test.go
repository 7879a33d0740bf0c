package pipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toast/internal/core/notify"
)

func TestCommand_Draft(t *testing.T) {
	cmd := Command{
		Type:       "password_change",
		Title:      "Security",
		Message:    "changed",
		DurationMS: 1500,
		Actions:    []ActionInput{{Label: "Undo", Primary: true}},
	}

	d, err := cmd.Draft()
	require.NoError(t, err)

	assert.Equal(t, notify.TypePasswordChange, d.Type)
	assert.Equal(t, "Security", d.Title)
	assert.Equal(t, 1500*time.Millisecond, d.Duration)
	assert.Equal(t, []notify.Action{{Label: "Undo", Primary: true}}, d.Actions)
}

func TestCommand_Draft_defaultsType(t *testing.T) {
	d, err := Command{Message: "m"}.Draft()
	require.NoError(t, err)
	assert.Equal(t, notify.TypeInfo, d.Type)
}

func TestCommand_Draft_errors(t *testing.T) {
	_, err := Command{Type: "nope"}.Draft()
	require.Error(t, err)

	_, err = Command{DurationMS: -1}.Draft()
	require.Error(t, err)
}

func TestCommand_Window(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, Command{WindowMS: 250}.Window())
	assert.Zero(t, Command{}.Window())
}
