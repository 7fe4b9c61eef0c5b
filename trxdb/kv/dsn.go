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
	"net/url"
	"strconv"
	"sync"

	"github.com/streamingfast/kvdb/store"
	"go.uber.org/zap"
)

type cachedStore struct {
	store store.KVStore
	refs  int
}

var storeCachePool = make(map[string]*cachedStore)
var storeCachePoolLock sync.Mutex

// parseAndCleanDSN extracts the `trx-cache-size` option, the rest of the DSN
// is handed as-is to kvdb.
func parseAndCleanDSN(dsn string) (cleanDSN string, cacheSize int, err error) {
	zlog.Debug("parsing DSN", zap.String("dsn", dsn))
	dsnURL, err := url.Parse(dsn)
	if err != nil {
		return "", 0, fmt.Errorf("invalid dsn: %w", err)
	}

	query, err := url.ParseQuery(dsnURL.RawQuery)
	if err != nil {
		return "", 0, fmt.Errorf("invalid query: %w", err)
	}

	cacheSize = defaultTransactionCacheSize
	if value := query.Get("trx-cache-size"); value != "" {
		cacheSize, err = strconv.Atoi(value)
		if err != nil || cacheSize <= 0 {
			return "", 0, fmt.Errorf("invalid trx-cache-size %q, expecting a positive integer", value)
		}
	}

	cleanDSN, err = store.RemoveDSNOptions(dsn, "trx-cache-size")
	if err != nil {
		return "", 0, fmt.Errorf("unable to clean dsn: %w", err)
	}

	return cleanDSN, cacheSize, nil
}

// newCachedKVDB shares one store per DSN, each call must be paired with a
// closeCachedKVDB.
func newCachedKVDB(dsn string) (out store.KVStore, err error) {
	storeCachePoolLock.Lock()
	defer storeCachePoolLock.Unlock()

	if cached := storeCachePool[dsn]; cached != nil {
		cached.refs++
		zlog.Debug("re-using cached kv store", zap.String("dsn", dsn), zap.Int("refs", cached.refs))
		return cached.store, nil
	}

	zlog.Debug("kv store is not cached for this DSN, creating a new one", zap.String("dsn", dsn))
	out, err = store.New(dsn)
	if err != nil {
		return nil, fmt.Errorf("new kvdb store: %w", err)
	}

	storeCachePool[dsn] = &cachedStore{store: out, refs: 1}
	return out, nil
}

// closeCachedKVDB releases one reference, the store is closed with the last.
func closeCachedKVDB(kvStore store.KVStore) error {
	storeCachePoolLock.Lock()
	defer storeCachePoolLock.Unlock()

	for dsn, cached := range storeCachePool {
		if cached.store != kvStore {
			continue
		}

		cached.refs--
		if cached.refs > 0 {
			return nil
		}

		delete(storeCachePool, dsn)
		break
	}

	return kvStore.Close()
}
