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

package kv

import (
	"fmt"
	"sync"

	pbtrxdb "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/trxdb/v1"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/streamingfast/kvdb/store"
	_ "github.com/streamingfast/kvdb/store/badger"
	"go.uber.org/zap"
)

const defaultTransactionCacheSize = 10_000

type DB struct {
	store store.KVStore

	enc *trxdb.RowEncoder
	dec *trxdb.RowDecoder

	trxCache *lru.Cache[int64, *pbtrxdb.TransactionRow]

	logger *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

func init() {
	trxdb.Register("badger", func(dsn string) (trxdb.DB, error) {
		return New(dsn)
	})
}

func New(dsnString string) (*DB, error) {
	cleanDSN, cacheSize, err := parseAndCleanDSN(dsnString)
	if err != nil {
		return nil, err
	}

	kvStore, err := newCachedKVDB(cleanDSN)
	if err != nil {
		return nil, err
	}

	trxCache, err := lru.New[int64, *pbtrxdb.TransactionRow](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("transaction cache: %w", err)
	}

	zlog.Debug("creating new kv trxdb instance", zap.String("dsn", cleanDSN), zap.Int("trx_cache_size", cacheSize))
	return &DB{
		store:    kvStore,
		enc:      trxdb.NewRowEncoder(),
		dec:      trxdb.NewRowDecoder(),
		trxCache: trxCache,
		logger:   zlog,
	}, nil
}

func (db *DB) SetLogger(logger *zap.Logger) error {
	db.logger = logger
	return nil
}

func (db *DB) SetTransactionCacheSize(size int) error {
	trxCache, err := lru.New[int64, *pbtrxdb.TransactionRow](size)
	if err != nil {
		return fmt.Errorf("transaction cache: %w", err)
	}

	db.trxCache = trxCache
	return nil
}

func (db *DB) Close() error {
	db.closeOnce.Do(func() {
		db.closeErr = closeCachedKVDB(db.store)
	})
	return db.closeErr
}
