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

package loader

import (
	"fmt"

	"github.com/dfuse-io/dfuse-hedera/loader"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	"github.com/streamingfast/dstore"
	"github.com/streamingfast/shutter"
	"go.uber.org/zap"
)

type Config struct {
	RecordsStoreURL string // Store URL holding the record files
	TrxDBDSN        string // Storage connection string
	StartBlock      uint64 // Block number where we start processing, 0 resumes after the last written block
	StopBlock       uint64 // Block number where we stop processing (exclusive), 0 runs forever
	BatchSize       uint64 // Number of blocks written between database flushes
	Parallelism     int    // Number of blocks projected concurrently
}

type Modules struct {
	Publisher loader.Publisher
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
	zlog.Info("launching loader", zap.Reflect("config", a.config))

	recordsStore, err := dstore.NewDBinStore(a.config.RecordsStoreURL)
	if err != nil {
		return fmt.Errorf("setting up records store: %w", err)
	}

	db, err := trxdb.New(a.config.TrxDBDSN, trxdb.WithLogger(zlog))
	if err != nil {
		return fmt.Errorf("unable to create trxdb: %w", err)
	}

	opts := []loader.Option{
		loader.WithStopBlock(a.config.StopBlock),
		loader.WithBatchSize(a.config.BatchSize),
		loader.WithParallelism(a.config.Parallelism),
	}
	if a.modules != nil && a.modules.Publisher != nil {
		opts = append(opts, loader.WithPublisher(a.modules.Publisher))
	}

	l := loader.New(recordsStore, db, a.config.StartBlock, opts...)

	a.OnTerminating(l.Shutdown)
	l.OnTerminated(func(err error) {
		if closeErr := db.Close(); closeErr != nil {
			zlog.Warn("unable to close trxdb", zap.Error(closeErr))
		}
		a.Shutdown(err)
	})

	go l.Launch()
	return nil
}
