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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseAndCleanDSN(t *testing.T) {
	tests := []struct {
		name            string
		dsn             string
		expectCleanDSN  string
		expectCacheSize int
		expectError     bool
	}{
		{
			name:            "simple dsn",
			dsn:             "badger:///tmp/trxdb.db",
			expectCleanDSN:  "badger:///tmp/trxdb.db",
			expectCacheSize: defaultTransactionCacheSize,
		},
		{
			name:            "dsn with cache size",
			dsn:             "badger:///tmp/trxdb.db?trx-cache-size=50",
			expectCleanDSN:  "badger:///tmp/trxdb.db",
			expectCacheSize: 50,
		},
		{
			name:            "dsn with other options kept",
			dsn:             "bigkv://dev.dev/test-trxdb?createTables=true&trx-cache-size=5",
			expectCleanDSN:  "bigkv://dev.dev/test-trxdb?createTables=true",
			expectCacheSize: 5,
		},
		{
			name:        "invalid cache size",
			dsn:         "badger:///tmp/trxdb.db?trx-cache-size=-1",
			expectError: true,
		},
		{
			name:        "non numeric cache size",
			dsn:         "badger:///tmp/trxdb.db?trx-cache-size=many",
			expectError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cleanDSN, cacheSize, err := parseAndCleanDSN(test.dsn)
			if test.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectCleanDSN, cleanDSN)
			assert.Equal(t, test.expectCacheSize, cacheSize)
		})
	}
}
