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
	"context"
	"testing"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	pbtrxdb "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/trxdb/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	Register("aaa", func(dsn string) (DB, error) {
		return &testDB{dsn: dsn}, nil
	})

	Register("bbb", func(dsn string) (DB, error) {
		return nil, assert.AnError
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		dsn         string
		expectError bool
	}{
		{name: "sunny path", dsn: "aaa://path?foo=bar"},
		{name: "scheme is case insensitive", dsn: "AAA://path"},
		{name: "two DSN", dsn: "aaa://path?foo=bar aaa://secondPath?foo2=bar3", expectError: true},
		{name: "no dsn", dsn: "", expectError: true},
		{name: "invalid dsn", dsn: "driverpath?foor=bar", expectError: true},
		{name: "unregistered scheme", dsn: "ccc://path", expectError: true},
		{name: "driver error", dsn: "bbb://path", expectError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			db, err := New(test.dsn)
			if test.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.dsn, db.(*testDB).dsn)
		})
	}
}

func TestNew_Options(t *testing.T) {
	logger := zap.NewNop()

	db, err := New("aaa://path", WithLogger(logger), WithTransactionCacheSize(64))
	require.NoError(t, err)

	assert.Equal(t, logger, db.(*testDB).logger)
	assert.Equal(t, 64, db.(*testDB).cacheSize)

	_, err = New("aaa://path", WithTransactionCacheSize(0))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	assert.True(t, IsRegistered("aaa"))
	assert.True(t, IsRegistered("AAA"))
	assert.False(t, IsRegistered("ccc"))
	assert.Contains(t, RegisteredSchemes(), "bbb")

	assert.Panics(t, func() {
		Register("aaa", func(dsn string) (DB, error) { return nil, nil })
	})
}

type testDB struct {
	dsn       string
	logger    *zap.Logger
	cacheSize int
}

func (db *testDB) SetLogger(logger *zap.Logger) error {
	db.logger = logger
	return nil
}

func (db *testDB) SetTransactionCacheSize(size int) error {
	db.cacheSize = size
	return nil
}

func (db *testDB) PutProjectedBlock(ctx context.Context, blk *pbcodec.ProjectedBlock) error {
	return nil
}

func (db *testDB) Flush(ctx context.Context) error { return nil }
func (db *testDB) Close() error                    { return nil }

func (db *testDB) GetLastWrittenBlockNum(ctx context.Context) (uint64, error) {
	return 0, ErrNotFound
}

func (db *testDB) GetBlock(ctx context.Context, blockNum uint64) (*pbcodec.ProjectedBlock, error) {
	return nil, ErrNotFound
}

func (db *testDB) GetTransaction(ctx context.Context, consensusTimestamp int64) (*pbtrxdb.TransactionRow, error) {
	return nil, ErrNotFound
}

func (db *testDB) ScanTopicMessages(ctx context.Context, topicID *pbcodec.TopicID, start, end int64, limit uint64, fn func(msg *pbcodec.TopicMessage) error) error {
	return nil
}

func (db *testDB) ListAddressBook(ctx context.Context, limit int) ([]*pbcodec.AddressBookEntry, error) {
	return nil, nil
}
