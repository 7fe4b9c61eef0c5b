package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/streamingfast/shutter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*shutter.Shutter
	run func(app *testApp) error
}

func newTestApp(run func(app *testApp) error) *testApp {
	return &testApp{Shutter: shutter.New(), run: run}
}

func (a *testApp) Run() error {
	return a.run(a)
}

func appDef(id string, app App) *AppDef {
	return &AppDef{
		ID: id,
		FactoryFunc: func(runtime *Runtime) (App, error) {
			return app, nil
		},
	}
}

func waitLauncher(t *testing.T, l *Launcher) string {
	select {
	case appID := <-l.Terminating():
		return appID
	case <-time.After(5 * time.Second):
		require.FailNow(t, "launcher did not terminate")
		return ""
	}
}

func TestLauncher_AppShutdown(t *testing.T) {
	failing := newTestApp(func(app *testApp) error {
		go app.Shutdown(errors.New("boom"))
		return nil
	})
	idle := newTestApp(func(app *testApp) error { return nil })

	withRegistry(t, appDef("failing", failing), appDef("idle", idle))

	l := NewLauncher(&Runtime{})
	require.NoError(t, l.Launch([]string{"failing", "idle"}))

	assert.Equal(t, "failing", waitLauncher(t, l))
	assert.EqualError(t, l.Err(), "boom")

	select {
	case <-idle.Terminated():
	case <-time.After(5 * time.Second):
		require.FailNow(t, "idle app was not shut down")
	}
}

func TestLauncher_RunError(t *testing.T) {
	withRegistry(t, appDef("broken", newTestApp(func(app *testApp) error {
		return errors.New("cannot start")
	})))

	l := NewLauncher(&Runtime{})
	require.NoError(t, l.Launch([]string{"broken"}))

	assert.Equal(t, "broken", waitLauncher(t, l))
	assert.EqualError(t, l.Err(), "cannot start")
}

func TestLauncher_Panic(t *testing.T) {
	withRegistry(t, appDef("panicky", newTestApp(func(app *testApp) error {
		panic("unexpected")
	})))

	l := NewLauncher(&Runtime{})
	require.NoError(t, l.Launch([]string{"panicky"}))

	assert.Equal(t, "panicky", waitLauncher(t, l))
	require.Error(t, l.Err())
	assert.Contains(t, l.Err().Error(), `app "panicky" panicked: unexpected`)
}

func TestLauncher_Close(t *testing.T) {
	app := newTestApp(func(app *testApp) error { return nil })
	withRegistry(t, appDef("app", app))

	l := NewLauncher(&Runtime{})
	require.NoError(t, l.Launch([]string{"app"}))

	l.Close()
	assert.Equal(t, "", waitLauncher(t, l))
	assert.NoError(t, l.Err())

	l.WaitForTermination()
	assert.True(t, app.IsTerminated())
}

func TestLauncher_InvalidApps(t *testing.T) {
	withRegistry(t, &AppDef{ID: "app", InitFunc: func(runtime *Runtime) error {
		return errors.New("bad config")
	}})

	l := NewLauncher(&Runtime{})
	assert.Error(t, l.Launch(nil))
	assert.EqualError(t, l.Launch([]string{"unknown"}), `cannot launch un-registered application "unknown"`)
	assert.EqualError(t, l.Launch([]string{"app"}), `unable to initialize app "app": bad config`)
}

func TestLoadConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dfusehedera.yaml")
	require.NoError(t, os.WriteFile(file, []byte("start:\n  args:\n  - loader\n  - streamer\n  flags:\n    loader-batch-size: \"10\"\n"), 0644))

	require.NoError(t, LoadConfigFile(file))
	require.NotNil(t, Config["start"])
	assert.Equal(t, []string{"loader", "streamer"}, Config["start"].Args)
	assert.Equal(t, map[string]string{"loader-batch-size": "10"}, Config["start"].Flags)

	assert.Error(t, LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
