package launcher

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/streamingfast/shutter"
	"go.uber.org/zap"
)

type Launcher struct {
	shutter *shutter.Shutter

	runtime *Runtime
	apps    map[string]App

	shutdownLock       sync.Mutex
	firstShutdownAppID string
}

func NewLauncher(runtime *Runtime) *Launcher {
	return &Launcher{
		shutter: shutter.New(),
		apps:    make(map[string]App),
		runtime: runtime,
	}
}

func (l *Launcher) Close() {
	l.shutter.Shutdown(nil)
}

func (l *Launcher) Launch(appNames []string) error {
	if len(appNames) == 0 {
		return fmt.Errorf("no apps specified")
	}

	// Init everything first so nothing runs when something is misconfigured
	for _, appID := range appNames {
		appDef, found := AppRegistry[appID]
		if !found {
			return fmt.Errorf("cannot launch un-registered application %q", appID)
		}

		if appDef.InitFunc != nil {
			userLog.Debug("initialize application", zap.String("app", appID))
			if err := appDef.InitFunc(l.runtime); err != nil {
				return fmt.Errorf("unable to initialize app %q: %w", appID, err)
			}
		}
	}

	for _, appID := range appNames {
		appDef := AppRegistry[appID]

		userLog.Debug("creating application", zap.String("app", appID))
		app, err := appDef.FactoryFunc(l.runtime)
		if err != nil {
			return fmt.Errorf("unable to create app %q: %w", appID, err)
		}

		l.shutter.OnTerminating(func(err error) {
			go app.Shutdown(err)
		})

		l.apps[appDef.ID] = app
	}

	for appID, app := range l.apps {
		if l.shutter.IsTerminating() {
			break
		}

		go func(appID string, app App) {
			defer (func() {
				// Only recovers panics of this goroutine, not of the ones the app
				// launches itself.
				l.shutdownIfRecoveringFromPanic(appID, recover())
			})()

			userLog.Debug("launching app", zap.String("app", appID))
			if err := app.Run(); err != nil {
				l.shutdownDueToApp(appID, err)
			}
		}(appID, app)
	}

	for appID, app := range l.apps {
		if l.shutter.IsTerminating() {
			break
		}

		go func(appID string, app App) {
			select {
			case <-app.Terminating():
				l.shutdownDueToApp(appID, app.Err())
			case <-l.shutter.Terminating():
			}
		}(appID, app)
	}

	return nil
}

// Terminating yields the id of the app that triggered the shutdown, empty
// when the launcher was closed.
func (l *Launcher) Terminating() <-chan string {
	ch := make(chan string, 1)
	go func() {
		<-l.shutter.Terminating()

		l.shutdownLock.Lock()
		ch <- l.firstShutdownAppID
		l.shutdownLock.Unlock()
		close(ch)
	}()

	return ch
}

func (l *Launcher) Err() error {
	return l.shutter.Err()
}

// shutdownDueToApp records the app that first triggered the shutdown and
// shuts the launcher down. A nil err is a clean shutdown. Apps stopping after
// the launcher started terminating are not recorded.
func (l *Launcher) shutdownDueToApp(appID string, err error) {
	l.shutdownLock.Lock()
	if l.firstShutdownAppID == "" && !l.shutter.IsTerminating() {
		l.firstShutdownAppID = appID

		if err != nil {
			userLog.AppFailed(appID, err)
		} else {
			userLog.Printf("app %s triggered clean shutdown", appID)
		}
	}
	l.shutdownLock.Unlock()

	l.shutter.Shutdown(err)
}

func (l *Launcher) shutdownIfRecoveringFromPanic(appID string, recovered interface{}) {
	if recovered == nil {
		return
	}

	err := fmt.Errorf("app %q panicked", appID)
	switch v := recovered.(type) {
	case error:
		err = fmt.Errorf("%s: %w\n%s", err.Error(), v, string(debug.Stack()))
	default:
		err = fmt.Errorf("%s: %s\n%s", err.Error(), v, string(debug.Stack()))
	}

	l.shutdownDueToApp(appID, err)
}

func (l *Launcher) AppIDs() (out []string) {
	for appID := range l.apps {
		out = append(out, appID)
	}
	return out
}

func (l *Launcher) WaitForTermination() {
	userLog.Printf("Waiting for all apps termination...")
	now := time.Now()
	for appID, app := range l.apps {
	innerFor:
		for {
			select {
			case <-app.Terminated():
				userLog.Debug("app terminated", zap.String("app_id", appID))
				break innerFor
			case <-time.After(1500 * time.Millisecond):
				userLog.Printf("Still waiting for app %q ... %v", appID, time.Since(now).Round(100*time.Millisecond))
			}
		}
	}
	userLog.Printf("All apps terminated gracefully")
}
