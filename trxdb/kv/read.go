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
	"context"
	"errors"
	"fmt"
	"math"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	pbtrxdb "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/trxdb/v1"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	"github.com/streamingfast/kvdb/store"
	"go.uber.org/zap"
)

func (db *DB) GetLastWrittenBlockNum(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	it := db.store.Scan(ctx, Keys.StartOfBlocksTable(), Keys.EndOfBlocksTable(), 1)
	if it.Next() {
		return Keys.UnpackBlockKey(it.Item().Key), nil
	}

	if err := it.Err(); err != nil {
		return 0, fmt.Errorf("scan blocks table: %w", err)
	}

	return 0, trxdb.ErrNotFound
}

func (db *DB) GetBlock(ctx context.Context, blockNum uint64) (*pbcodec.ProjectedBlock, error) {
	row := &pbtrxdb.BlockRow{}
	if err := db.get(ctx, Keys.PackBlockKey(blockNum), row); err != nil {
		return nil, fmt.Errorf("get block %d: %w", blockNum, err)
	}

	blk := &pbcodec.ProjectedBlock{
		Number:       row.Number,
		Hash:         row.Hash,
		PreviousHash: row.PreviousHash,
		ConsensusEnd: row.ConsensusEnd,
	}

	count := len(row.TransactionTimestamps)
	if count == 0 {
		return blk, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Transactions of a block are contiguous in the trxs table.
	startKey := Keys.PackTrxKey(row.TransactionTimestamps[0])
	endKey := Keys.PackTrxKey(row.TransactionTimestamps[count-1] + 1)

	blk.Transactions = make([]pbcodec.ProjectedTransaction, 0, count)
	it := db.store.Scan(ctx, startKey, endKey, count)
	for it.Next() {
		trxRow := &pbtrxdb.TransactionRow{}
		if err := db.dec.Into(it.Item().Value, trxRow); err != nil {
			return nil, fmt.Errorf("block %d: %w", blockNum, err)
		}

		if trxRow.BlockNum != blockNum || trxRow.Transaction == nil {
			return nil, fmt.Errorf("block %d: transaction at %d belongs to block %d", blockNum, Keys.UnpackTrxKey(it.Item().Key), trxRow.BlockNum)
		}

		blk.Transactions = append(blk.Transactions, *trxRow.Transaction)
	}

	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("scan transactions of block %d: %w", blockNum, err)
	}

	if len(blk.Transactions) != count {
		return nil, fmt.Errorf("block %d: expected %d transactions, found %d", blockNum, count, len(blk.Transactions))
	}

	return blk, nil
}

func (db *DB) GetTransaction(ctx context.Context, consensusTimestamp int64) (*pbtrxdb.TransactionRow, error) {
	if row, found := db.trxCache.Get(consensusTimestamp); found {
		return row, nil
	}

	row := &pbtrxdb.TransactionRow{}
	if err := db.get(ctx, Keys.PackTrxKey(consensusTimestamp), row); err != nil {
		return nil, fmt.Errorf("get transaction %d: %w", consensusTimestamp, err)
	}

	db.trxCache.Add(consensusTimestamp, row)
	return row, nil
}

func (db *DB) ScanTopicMessages(ctx context.Context, topicID *pbcodec.TopicID, start, end int64, limit uint64, fn func(msg *pbcodec.TopicMessage) error) error {
	if topicID == nil {
		return fmt.Errorf("topic id is required")
	}

	if start < 0 {
		start = 0
	}

	if end <= start {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if traceEnabled {
		db.logger.Debug("scanning topic messages", zap.Stringer("topic_id", topicID), zap.Int64("start", start), zap.Int64("end", end), zap.Uint64("limit", limit))
	}

	it := db.store.Scan(ctx, Keys.PackTopicMessageKey(topicID, start), Keys.PackTopicMessageKey(topicID, end), scanLimit(limit))
	for it.Next() {
		msg := &pbcodec.TopicMessage{}
		if err := db.dec.Into(it.Item().Value, msg); err != nil {
			return fmt.Errorf("topic message: %w", err)
		}

		if err := fn(msg); err != nil {
			return err
		}
	}

	if err := it.Err(); err != nil {
		return fmt.Errorf("scan topic %s messages: %w", topicID, err)
	}

	return nil
}

func (db *DB) ListAddressBook(ctx context.Context, limit int) (out []*pbcodec.AddressBookEntry, err error) {
	if limit < 0 {
		limit = 0
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	it := db.store.Scan(ctx, Keys.StartOfNodesTable(), Keys.EndOfNodesTable(), limit)
	for it.Next() {
		entry := &pbcodec.AddressBookEntry{}
		if err := db.dec.Into(it.Item().Value, entry); err != nil {
			return nil, fmt.Errorf("address book entry of node %d: %w", Keys.UnpackNodeKey(it.Item().Key), err)
		}

		out = append(out, entry)
	}

	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("scan nodes table: %w", err)
	}

	return out, nil
}

func (db *DB) get(ctx context.Context, key []byte, row interface{}) error {
	value, err := db.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return trxdb.ErrNotFound
	}

	if err != nil {
		return err
	}

	return db.dec.Into(value, row)
}

// scanLimit maps an unbounded limit of 0 to the kvdb convention.
func scanLimit(limit uint64) int {
	if limit == 0 {
		return 0
	}

	if limit > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(limit)
}
