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
	"github.com/dfuse-io/dfuse-hedera/launcher"
	loaderApp "github.com/dfuse-io/dfuse-hedera/loader/app/loader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	launcher.RegisterApp(&launcher.AppDef{
		ID:          "loader",
		Title:       "Record loader",
		Description: "Projects record files into trxdb and feeds live topic messages",
		MetricsID:   "loader",
		Logger:      launcher.NewLoggingDef("github.com/dfuse-io/dfuse-hedera/loader.*", nil),
		RegisterFlags: func(cmd *cobra.Command) error {
			cmd.Flags().Uint64("loader-start-block", 0, "Block number where we start processing, 0 resumes after the last written block")
			cmd.Flags().Uint64("loader-stop-block", 0, "Block number where we stop processing (exclusive), 0 runs forever")
			cmd.Flags().Int("loader-parallelism", 4, "Number of blocks projected concurrently")
			cmd.Flags().Uint64("loader-batch-size", 1000, "Number of blocks written between database flushes")
			return nil
		},
		InitFunc: func(runtime *launcher.Runtime) error {
			return mkdirStorePathIfLocal(mustReplaceDataDir(runtime.AbsDataDir, viper.GetString("common-records-store-url")))
		},
		FactoryFunc: func(runtime *launcher.Runtime) (launcher.App, error) {
			dfuseDataDir := runtime.AbsDataDir

			modules := &loaderApp.Modules{}
			if runtime.TopicHub != nil {
				modules.Publisher = runtime.TopicHub
			}

			return loaderApp.New(&loaderApp.Config{
				RecordsStoreURL: mustReplaceDataDir(dfuseDataDir, viper.GetString("common-records-store-url")),
				TrxDBDSN:        mustReplaceDataDir(dfuseDataDir, viper.GetString("common-trxdb-dsn")),
				StartBlock:      viper.GetUint64("loader-start-block"),
				StopBlock:       viper.GetUint64("loader-stop-block"),
				BatchSize:       viper.GetUint64("loader-batch-size"),
				Parallelism:     viper.GetInt("loader-parallelism"),
			}, modules), nil
		},
	})
}
