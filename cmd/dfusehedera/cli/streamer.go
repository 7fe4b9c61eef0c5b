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
	streamerApp "github.com/dfuse-io/dfuse-hedera/streaming/app/streamer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	launcher.RegisterApp(&launcher.AppDef{
		ID:          "streamer",
		Title:       "Streaming gRPC",
		Description: "Serves topic messages and the node address book over gRPC",
		MetricsID:   "streamer",
		Logger:      launcher.NewLoggingDef("github.com/dfuse-io/dfuse-hedera/streaming.*", nil),
		RegisterFlags: func(cmd *cobra.Command) error {
			cmd.Flags().String("streamer-grpc-listen-addr", StreamerGRPCServingAddr, "Address to listen for incoming gRPC requests")
			cmd.Flags().Int("streamer-hub-buffer-size", HubBufferSize, "Number of live topic messages buffered per subscriber before it falls back to reading storage")
			cmd.Flags().Int("streamer-transaction-cache-size", TransactionCacheSize, "Number of recently read transactions kept in memory for GetTransaction lookups")
			return nil
		},
		FactoryFunc: func(runtime *launcher.Runtime) (launcher.App, error) {
			return streamerApp.New(&streamerApp.Config{
				GRPCListenAddr:       viper.GetString("streamer-grpc-listen-addr"),
				TrxDBDSN:             mustReplaceDataDir(runtime.AbsDataDir, viper.GetString("common-trxdb-dsn")),
				TransactionCacheSize: viper.GetInt("streamer-transaction-cache-size"),
			}, &streamerApp.Modules{
				Hub: runtime.TopicHub,
			}), nil
		},
	})
}
