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

package streamer

import (
	"fmt"

	"github.com/dfuse-io/dfuse-hedera/streaming"
	streamgrpc "github.com/dfuse-io/dfuse-hedera/streaming/grpc"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	"github.com/streamingfast/shutter"
	"go.uber.org/zap"
)

type Config struct {
	GRPCListenAddr       string // Address the streaming gRPC service listens on
	TrxDBDSN             string // Storage connection string
	TransactionCacheSize int    // Transactions kept in memory by lookups, 0 keeps the storage default
}

type Modules struct {
	// Hub feeds live topic messages to subscribers, without it they only
	// receive stored messages.
	Hub *streaming.Hub
}

type App struct {
	*shutter.Shutter
	config  *Config
	modules *Modules
}

func New(config *Config, modules *Modules) *App {
	return &App{
		Shutter: shutter.New(),
		config:  config,
		modules: modules,
	}
}

func (a *App) Run() error {
	zlog.Info("launching streamer", zap.Reflect("config", a.config))

	opts := []trxdb.Option{trxdb.WithLogger(zlog)}
	if a.config.TransactionCacheSize > 0 {
		opts = append(opts, trxdb.WithTransactionCacheSize(a.config.TransactionCacheSize))
	}

	db, err := trxdb.New(a.config.TrxDBDSN, opts...)
	if err != nil {
		return fmt.Errorf("unable to create trxdb: %w", err)
	}

	var hub *streaming.Hub
	if a.modules != nil {
		hub = a.modules.Hub
	}

	server := streamgrpc.New(a.config.GRPCListenAddr, db, hub)

	a.OnTerminating(func(err error) {
		server.Shutdown(err)
		server.Terminate(err)

		if closeErr := db.Close(); closeErr != nil {
			zlog.Warn("unable to close trxdb", zap.Error(closeErr))
		}
	})
	server.OnTerminated(a.Shutdown)

	go server.Serve()
	return nil
}
