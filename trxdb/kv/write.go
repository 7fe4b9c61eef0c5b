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
	"fmt"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	pbtrxdb "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/trxdb/v1"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	"go.uber.org/zap"
)

func (db *DB) Flush(ctx context.Context) error {
	return db.store.FlushPuts(ctx)
}

// PutProjectedBlock writes the transactions and derived rows before the
// block row, a reader seeing the block can find all of its rows.
func (db *DB) PutProjectedBlock(ctx context.Context, blk *pbcodec.ProjectedBlock) error {
	blockRow := &pbtrxdb.BlockRow{
		Number:       blk.Number,
		Hash:         blk.Hash,
		PreviousHash: blk.PreviousHash,
		ConsensusEnd: blk.ConsensusEnd,
	}

	for i := range blk.Transactions {
		trx := &blk.Transactions[i]
		consensusTimestamp := trx.ConsensusTimestamp.UnixNano()

		row := &pbtrxdb.TransactionRow{BlockNum: blk.Number, Index: uint32(i), Transaction: trx}
		if err := db.put(ctx, Keys.PackTrxKey(consensusTimestamp), row); err != nil {
			return fmt.Errorf("put transaction %s: %w", trx.ConsensusTimestamp, err)
		}

		db.trxCache.Remove(consensusTimestamp)
		blockRow.TransactionTimestamps = append(blockRow.TransactionTimestamps, consensusTimestamp)
	}

	messages := trxdb.TopicMessages(blk)
	for _, msg := range messages {
		if err := db.put(ctx, Keys.PackTopicMessageKey(msg.TopicID, msg.ConsensusTimestamp), msg); err != nil {
			return fmt.Errorf("put topic message %s #%d: %w", msg.TopicID, msg.SequenceNumber, err)
		}
	}

	entries := trxdb.AddressBookEntries(blk)
	for _, entry := range entries {
		if err := db.put(ctx, Keys.PackNodeKey(entry.NodeID), entry); err != nil {
			return fmt.Errorf("put address book entry of node %d: %w", entry.NodeID, err)
		}
	}

	if err := db.put(ctx, Keys.PackBlockKey(blk.Number), blockRow); err != nil {
		return fmt.Errorf("put block %d: %w", blk.Number, err)
	}

	db.logger.Debug("put projected block",
		zap.Uint64("block_num", blk.Number),
		zap.Int("transaction_count", len(blk.Transactions)),
		zap.Int("topic_message_count", len(messages)),
		zap.Int("address_book_entry_count", len(entries)),
	)

	return nil
}

func (db *DB) put(ctx context.Context, key []byte, row interface{}) error {
	value, err := db.enc.Encode(row)
	if err != nil {
		return err
	}

	return db.store.Put(ctx, key, value)
}
