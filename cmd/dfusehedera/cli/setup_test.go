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
	"io"
	"testing"

	"github.com/dfuse-io/dfuse-hedera/launcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Test_extractCmd(t *testing.T) {
	testCmdE := func(cmd *cobra.Command, args []string) error {
		return nil
	}

	rootCmd := &cobra.Command{Use: "dfusehedera", Short: "dfuse for Hedera"}
	startCmd := &cobra.Command{Use: "start", Short: "Starts `dfuse for Hedera` services all at once", RunE: testCmdE}
	toolCmd := &cobra.Command{Use: "tools", Short: "Developer tools", RunE: testCmdE}
	readCmd := &cobra.Command{Use: "read", Short: "Read a record file", RunE: testCmdE}

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(toolCmd)
	toolCmd.AddCommand(readCmd)

	tests := []struct {
		name      string
		cmd       *cobra.Command
		expectCmd []string
	}{
		{
			name:      "root command",
			cmd:       rootCmd,
			expectCmd: []string{"dfusehedera"},
		},
		{
			name:      "first tier command",
			cmd:       startCmd,
			expectCmd: []string{"dfusehedera", "start"},
		},
		{
			name:      "child command",
			cmd:       readCmd,
			expectCmd: []string{"dfusehedera", "tools", "read"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expectCmd, extractCmd(test.cmd))
		})
	}
}

func Test_shouldRunSetup(t *testing.T) {
	tests := []struct {
		name       string
		cmds       []string
		expectBool bool
	}{
		{
			name:       "root command",
			cmds:       []string{"dfusehedera"},
			expectBool: false,
		},
		{
			name:       "start command",
			cmds:       []string{"dfusehedera", "start"},
			expectBool: true,
		},
		{
			name:       "child command",
			cmds:       []string{"dfusehedera", "tools", "read"},
			expectBool: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expectBool, shouldRunSetup(test.cmds, []*cobra.Command{
				StartCmd,
			}))
		})
	}
}

func Test_applyConfigFlags(t *testing.T) {
	previous := launcher.Config
	t.Cleanup(func() { launcher.Config = previous })

	launcher.Config = map[string]*launcher.CommandConfig{
		"start": {Flags: map[string]string{"loader-batch-size": "10", "data-dir": "/tmp/hedera"}},
		"bad":   {Flags: map[string]string{"unknown-flag": "1"}},
	}

	knownFlags := map[string]bool{"loader-batch-size": true, "global-data-dir": true}

	require.NoError(t, applyConfigFlags("start", knownFlags))
	assert.Equal(t, uint64(10), viper.GetUint64("loader-batch-size"))
	assert.Equal(t, "/tmp/hedera", viper.GetString("global-data-dir"))

	assert.NoError(t, applyConfigFlags("missing", knownFlags))
	assert.EqualError(t, applyConfigFlags("bad", knownFlags), "invalid flag unknown-flag in config file under command bad")
}

func Test_getDirsToMake(t *testing.T) {
	assert.Equal(t, []string{"/data/storage/records"}, getDirsToMake("file:///data/storage/records"))
	assert.Equal(t, []string{"/data/storage"}, getDirsToMake("/data/storage/trxdb.db"))
	assert.Nil(t, getDirsToMake("gs://bucket/records"))
	assert.Equal(t, "file:///data/storage/records", mustReplaceDataDir("/data", RecordsStoreURL))
}

func Test_levelForVerbosity(t *testing.T) {
	levels := commonLoggingDef.Levels
	assert.Equal(t, zap.WarnLevel, levelForVerbosity(levels, 0))
	assert.Equal(t, zap.InfoLevel, levelForVerbosity(levels, 1))
	assert.Equal(t, zap.DebugLevel, levelForVerbosity(levels, 3))
	assert.Equal(t, zap.DebugLevel, levelForVerbosity(levels, 10))
}

func Test_overrideLevels(t *testing.T) {
	loaderLevel := consoleLevels.track("test-loader", zap.WarnLevel)
	streamerLevel := consoleLevels.track("test-streamer", zap.WarnLevel)

	overrideLevels("test-loader, test-streamer", zap.DebugLevel)
	assert.Equal(t, zap.DebugLevel, loaderLevel.Level())
	assert.Equal(t, zap.DebugLevel, streamerLevel.Level())

	assert.False(t, consoleLevels.set("github.com/dfuse-io/dfuse-hedera/unknown.*", zap.InfoLevel))
}

func Test_newLogger(t *testing.T) {
	setup := &loggingSetup{verbosity: 0, console: zapcore.AddSync(io.Discard)}
	logger := setup.newLogger("test-group", launcher.NewLoggingDef("", nil))

	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	require.True(t, consoleLevels.set("test-group", zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func Test_registeredApps(t *testing.T) {
	assert.Equal(t, []string{"loader", "streamer"}, launcher.ParseAppsFromArgs([]string{"all"}))

	cmd := &cobra.Command{Use: "start"}
	require.NoError(t, launcher.RegisterFlags(cmd))
	for _, name := range []string{"common-records-store-url", "common-trxdb-dsn", "loader-start-block", "loader-batch-size", "streamer-grpc-listen-addr", "streamer-hub-buffer-size", "streamer-transaction-cache-size"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
