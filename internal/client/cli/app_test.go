package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	app := &App{log: logging.NewTextLogger(&buf, slog.LevelInfo)}

	app.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, app.currentMode())
	assert.Contains(t, buf.String(), "mode=online")

	buf.Reset()
	app.setMode(ModeOnline)
	assert.Empty(t, buf.String())

	app.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, app.currentMode())
	assert.Contains(t, buf.String(), "mode=offline")
}

func TestStatus(t *testing.T) {
	app, auth, _, _, _ := newTestApp("")

	auth.userID = ""
	assert.Equal(t, "", app.status())

	app.setMode(ModeOffline)
	assert.Equal(t, "offline", app.status())

	auth.userID = "u1"
	app.setMode(ModeOnline)
	assert.Equal(t, "sesión online", app.status())
}

func TestCheckOnline(t *testing.T) {
	app, auth, _, _, _ := newTestApp("")

	auth.pingErr = errors.New("connection refused")
	app.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, app.currentMode())

	auth.pingErr = nil
	app.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, app.currentMode())
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	app, _, _, _, _ := newTestApp("")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return app.currentMode() == ModeOnline }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestRun_ResumesAndCloses(t *testing.T) {
	out := captureOutput(t)
	app, auth, _, _, _ := newTestApp("exit\n")
	auth.userID = ""
	auth.resumed = true

	app.Run(context.Background())

	assert.True(t, auth.closed)
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, ModeOnline, app.currentMode())
	assert.Contains(t, *out, "¡Hasta luego!")
}
