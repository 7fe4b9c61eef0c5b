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

package trxdb

import (
	"fmt"

	"go.uber.org/zap"
)

type Option func(db DB) error

type loggerSetter interface {
	SetLogger(logger *zap.Logger) error
}

type cacheSizeSetter interface {
	SetTransactionCacheSize(size int) error
}

func WithLogger(logger *zap.Logger) Option {
	return func(db DB) error {
		setter, ok := db.(loggerSetter)
		if !ok {
			return nil
		}
		return setter.SetLogger(logger)
	}
}

// WithTransactionCacheSize sizes the in-memory cache of recently read
// transactions, drivers without a cache ignore it.
func WithTransactionCacheSize(size int) Option {
	return func(db DB) error {
		if size <= 0 {
			return fmt.Errorf("transaction cache size must be positive, got %d", size)
		}

		setter, ok := db.(cacheSizeSetter)
		if !ok {
			return nil
		}
		return setter.SetTransactionCacheSize(size)
	}
}
