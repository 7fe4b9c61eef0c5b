// Copyright 2019 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dfuse-io/dfuse-hedera/launcher"
	zapbox "github.com/dfuse-io/dfuse-hedera/zap-box"
	"github.com/spf13/viper"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var userLog = zapbox.NewUserLogger(zap.NewNop())

func init() {
	logging.Register("github.com/dfuse-io/dfuse-hedera/cmd/dfusehedera/cli", userLog.Reference())
}

// loggerGroup gives the loggers matching its definition a shared console
// level, addressable by id from the WARN, INFO and DEBUG variables.
type loggerGroup struct {
	id  string
	def *launcher.LoggingDef
}

var commonLoggingDef = launcher.NewLoggingDef("", nil)

var builtinGroups = []loggerGroup{
	{"dfuse", &launcher.LoggingDef{
		Levels: []zapcore.Level{zap.InfoLevel, zap.InfoLevel, zap.DebugLevel},
		Regex:  "github.com/dfuse-io/dfuse-hedera(/metrics|/launcher|/cmd/dfusehedera/cli)?$",
	}},
	{"storage", launcher.NewLoggingDef("github.com/dfuse-io/dfuse-hedera/(trxdb|codec).*", nil)},
}

var envLevelOverrides = []struct {
	env   string
	level zapcore.Level
}{
	{"WARN", zap.WarnLevel},
	{"INFO", zap.InfoLevel},
	{"DEBUG", zap.DebugLevel},
}

type levelRegistry struct {
	lock   sync.Mutex
	levels map[string]zap.AtomicLevel
}

var consoleLevels = &levelRegistry{levels: map[string]zap.AtomicLevel{}}

func (r *levelRegistry) track(groupID string, level zapcore.Level) zap.AtomicLevel {
	r.lock.Lock()
	defer r.lock.Unlock()

	atomicLevel := zap.NewAtomicLevelAt(level)
	r.levels[groupID] = atomicLevel
	return atomicLevel
}

func (r *levelRegistry) set(groupID string, level zapcore.Level) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	atomicLevel, found := r.levels[groupID]
	if found {
		atomicLevel.SetLevel(level)
	}
	return found
}

type loggingSetup struct {
	verbosity int
	file      zapcore.WriteSyncer
	console   zapcore.WriteSyncer
}

func setupLogger() {
	setup := &loggingSetup{
		verbosity: viper.GetInt("global-verbose"),
		file:      openLogFile(viper.GetString("global-data-dir")),
		console:   zapcore.Lock(os.Stdout),
	}

	commonLogger := setup.newLogger("common", commonLoggingDef)
	logging.Set(commonLogger)

	groups := make([]loggerGroup, 0, len(launcher.AppRegistry)+len(builtinGroups))
	for appID, appDef := range launcher.AppRegistry {
		groups = append(groups, loggerGroup{appID, appDef.Logger})
	}
	groups = append(groups, builtinGroups...)

	for _, group := range groups {
		logging.Set(setup.newLogger(group.id, group.def), group.def.Regex)
	}

	for _, override := range envLevelOverrides {
		if value := os.Getenv(override.env); value != "" {
			overrideLevels(value, override.level)
		}
	}

	userLog.SkipWrapperFrame()
	launcher.UserLog().SkipWrapperFrame()

	zap.RedirectStdLogAt(commonLogger, zap.DebugLevel)
}

func (s *loggingSetup) newLogger(groupID string, def *launcher.LoggingDef) *zap.Logger {
	level := consoleLevels.track(groupID, levelForVerbosity(def.Levels, s.verbosity))

	cores := []zapcore.Core{zapcore.NewCore(zapbox.NewEncoder(s.verbosity), s.console, level)}
	if s.file != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), s.file, zap.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(groupID)
}

// overrideLevels applies level to each comma separated input, a group id or
// else a logger regex.
func overrideLevels(inputs string, level zapcore.Level) {
	for _, input := range strings.Split(inputs, ",") {
		if consoleLevels.set(strings.TrimSpace(input), level) {
			continue
		}

		// WithLevel cannot go below the level of the core, see
		// https://github.com/uber-go/zap/issues/581#issuecomment-600641485.
		logging.Extend(func(current *zap.Logger) *zap.Logger {
			return current.WithOptions(zapbox.WithLevel(level))
		}, input)
	}
}

// levelForVerbosity picks the level of the -v count, the last level covers
// any higher count.
func levelForVerbosity(levels []zapcore.Level, verbosity int) zapcore.Level {
	if verbosity >= len(levels) {
		return levels[len(levels)-1]
	}
	return levels[verbosity]
}

// openLogFile writes JSON logs to the data directory, or the temp directory
// when that fails. Nil means console only.
func openLogFile(dataDir string) zapcore.WriteSyncer {
	_ = os.MkdirAll(dataDir, 0755)

	for _, dir := range []string{dataDir, os.TempDir()} {
		path := filepath.Join(dir, "dfusehedera.log.json")

		writer, _, err := zap.Open(path)
		if err == nil {
			return writer
		}
		fmt.Fprintf(os.Stderr, "Unable to log to %q: %s\n", path, err)
	}

	fmt.Fprintln(os.Stderr, "Logs won't be saved to a file, console only")
	return nil
}
