package commands

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/config"
	"github.com/colonyops/toast/internal/core/notify"
)

func TestDefaultConfigPath_usesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "toast", "config.yaml"), DefaultConfigPath())
}

func TestDefaultLogFile_usesXDGState(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, filepath.Join("/tmp/state", "toast", "toast.log"), DefaultLogFile())
}

func TestNewNotifier_appliesConfig(t *testing.T) {
	cfg := config.DefaultConfig().Notifications
	cfg.DefaultDuration = 7 * time.Second
	cfg.ErrorDuration = 9 * time.Second
	cfg.PasswordChangeDuration = 4 * time.Second

	n := newNotifier(cfg, clockwork.NewFakeClock())
	defer n.Close()

	n.Info("info")
	n.PasswordChange("changed")
	n.Store().Add(n.Store().Draft(notify.TypeError, "err"))

	items := n.Store().Snapshot()
	require.Len(t, items, 3)
	assert.Equal(t, 7*time.Second, items[0].Duration)
	assert.Equal(t, 4*time.Second, items[1].Duration)
	assert.Equal(t, 9*time.Second, items[2].Duration)
}

func TestCollectIssues(t *testing.T) {
	assert.Nil(t, collectIssues(nil))

	plain := collectIssues(errors.New("parse config file: bad yaml"))
	require.Len(t, plain, 1)
	assert.Empty(t, plain[0].Field)

	var b criterio.FieldErrorsBuilder
	b = b.Append("tui.width", errors.New("too small"))
	wrapped := fmt.Errorf("invalid config: %w", b.ToError())

	issues := collectIssues(wrapped)
	require.Len(t, issues, 1)
	assert.Equal(t, "tui.width", issues[0].Field)
	assert.Equal(t, "too small", issues[0].Message)
}

func newTestApp(flags *Flags, out *bytes.Buffer) *cli.Command {
	app := &cli.Command{Name: "toast", Writer: out, ErrWriter: out}
	app = NewPipeCmd(flags).Register(app)
	app = NewConfigCmd(flags).Register(app)
	app = NewReportsCmd(flags).Register(app)
	return app
}

func TestPipeCmd_fromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"type":"success","message":"saved"}`+"\n"+`{"op":"clear"}`+"\n",
	), 0o644))

	cfg := config.DefaultConfig()
	flags := &Flags{Config: &cfg}
	var out bytes.Buffer

	err := newTestApp(flags, &out).Run(t.Context(), []string{"toast", "pipe", "--no-wait", "-f", path})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"message":"saved"`)
	assert.Contains(t, lines[1], `"notifications":[]`)
}

func TestConfigCmd_validateJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tui:\n  theme: tokyo-night\n"), 0o644))

	flags := &Flags{ConfigPath: path}
	var out bytes.Buffer

	err := newTestApp(flags, &out).Run(t.Context(), []string{"toast", "config", "validate", "--format", "json"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"valid": true`)
}

func TestReportsCmd_list(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"role":"Admin","allowed_reports":[{"report_type":"billing","display_name":"Billing Report"}]}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.Reports.BaseURL = srv.URL
	cfg.Reports.Token = "tkn"
	flags := &Flags{Config: &cfg}

	var out bytes.Buffer
	require.NoError(t, newTestApp(flags, &out).Run(t.Context(), []string{"toast", "reports", "list"}))
	assert.Contains(t, out.String(), "Role: Admin")
	assert.Contains(t, out.String(), "billing")
	assert.Contains(t, out.String(), "Billing Report")
}

func TestReportsCmd_filtersRequiresBaseURL(t *testing.T) {
	cfg := config.DefaultConfig()
	flags := &Flags{Config: &cfg}

	var out bytes.Buffer
	err := newTestApp(flags, &out).Run(t.Context(), []string{"toast", "reports", "filters", "--type", "law"})
	require.ErrorContains(t, err, "reports.base_url is not configured")
}

func TestReportsCmd_generateWritesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":3}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.Reports.BaseURL = srv.URL
	flags := &Flags{Config: &cfg}

	var out bytes.Buffer
	err := newTestApp(flags, &out).Run(t.Context(), []string{"toast", "reports", "generate", "--type", "inspection", "--year", "2025"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":3}`, out.String())
}

func TestFormatFlag_rejectsUnknown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Reports.BaseURL = "http://reports.test"

	tests := []struct {
		name string
		args []string
	}{
		{"reports list", []string{"toast", "reports", "list", "--format", "xml"}},
		{"config validate", []string{"toast", "config", "validate", "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := &Flags{Config: &cfg, ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}
			var out bytes.Buffer

			err := newTestApp(flags, &out).Run(t.Context(), tt.args)
			require.ErrorContains(t, err, `unknown format "xml"`)
			assert.Empty(t, out.String())
		})
	}
}

func TestHoldLogs(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var direct bytes.Buffer
	log.Logger = zerolog.New(&direct)

	t.Run("empty log file holds until restore", func(t *testing.T) {
		var errOut bytes.Buffer
		restore := holdLogs("", &errOut)

		log.Info().Msg("while drawing")
		assert.Empty(t, errOut.String())
		assert.Empty(t, direct.String())

		restore()
		assert.Contains(t, errOut.String(), "while drawing")

		log.Info().Msg("after exit")
		assert.Contains(t, direct.String(), "after exit")
	})

	t.Run("log file leaves logger alone", func(t *testing.T) {
		var errOut bytes.Buffer
		restore := holdLogs(filepath.Join(t.TempDir(), "toast.log"), &errOut)
		defer restore()

		log.Info().Msg("to file")
		assert.Empty(t, errOut.String())
		assert.Contains(t, direct.String(), "to file")
	})
}
