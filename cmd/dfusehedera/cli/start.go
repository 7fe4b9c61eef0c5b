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
	"path/filepath"
	"strings"

	"github.com/dfuse-io/dfuse-hedera/launcher"
	"github.com/dfuse-io/dfuse-hedera/streaming"
	_ "github.com/dfuse-io/dfuse-hedera/trxdb/kv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streamingfast/derr"
	"go.uber.org/zap"
)

var StartCmd = &cobra.Command{Use: "start", Short: "Starts `dfuse for Hedera` services all at once", RunE: dfuseStartE, Args: cobra.ArbitraryArgs}

func init() {
	RootCmd.AddCommand(StartCmd)
}

func dfuseStartE(cmd *cobra.Command, args []string) (err error) {
	dataDir := viper.GetString("global-data-dir")
	userLog.Debug("dfusehedera binary started", zap.String("data_dir", dataDir))

	configFile := viper.GetString("global-config-file")
	userLog.Printf("Starting dfuse for Hedera with config file '%s'", configFile)

	err = Start(dataDir, args)
	if err != nil {
		return fmt.Errorf("unable to launch: %w", err)
	}

	userLog.Printf("Goodbye")
	return
}

func Start(dataDir string, args []string) (err error) {
	dataDirAbs, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("unable to setup directory structure: %w", err)
	}

	err = makeDirs([]string{dataDirAbs})
	if err != nil {
		return err
	}

	hub, err := streaming.NewHub(viper.GetInt("streamer-hub-buffer-size"))
	if err != nil {
		return fmt.Errorf("unable to create topic hub: %w", err)
	}

	runtime := &launcher.Runtime{
		AbsDataDir: dataDirAbs,
		TopicHub:   hub,
	}

	launch := launcher.NewLauncher(runtime)
	userLog.Debug("launcher created")

	apps := launcher.ParseAppsFromArgs(args)
	if len(args) == 0 && launcher.Config["start"] != nil {
		apps = launcher.ParseAppsFromArgs(launcher.Config["start"].Args)
	}

	if len(apps) == 0 {
		apps = launcher.ParseAppsFromArgs([]string{"all"})
	}

	userLog.Printf("Launching applications: %s", strings.Join(apps, ","))
	if err = launch.Launch(apps); err != nil {
		return err
	}

	signalHandler := derr.SetupSignalHandler(viper.GetDuration("common-system-shutdown-signal-delay"))
	select {
	case <-signalHandler:
		userLog.Printf("Received termination signal, quitting")
		go launch.Close()
	case appID := <-launch.Terminating():
		if launch.Err() == nil {
			userLog.Printf("Application %s triggered a clean shutdown, quitting", appID)
		} else {
			userLog.Printf("Application %s shutdown unexpectedly, quitting", appID)
			return launch.Err()
		}
	}

	launch.WaitForTermination()

	return
}
