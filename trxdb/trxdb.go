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
	"errors"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	pbtrxdb "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/trxdb/v1"
)

var ErrNotFound = errors.New("not found")

type DB interface {
	DBReader
	DBWriter

	Close() error
}

type DBWriter interface {
	// PutProjectedBlock writes the block, its transactions and the rows
	// derived from them. Writes are buffered until Flush.
	PutProjectedBlock(ctx context.Context, blk *pbcodec.ProjectedBlock) error

	Flush(ctx context.Context) error
}

type DBReader interface {
	GetLastWrittenBlockNum(ctx context.Context) (uint64, error)

	// GetBlock returns the block with its transactions linked back in
	// consensus order.
	GetBlock(ctx context.Context, blockNum uint64) (*pbcodec.ProjectedBlock, error)

	// GetTransaction returns the transaction executed at the given consensus
	// timestamp, in nanoseconds since epoch.
	GetTransaction(ctx context.Context, consensusTimestamp int64) (*pbtrxdb.TransactionRow, error)

	TopicMessageReader
	AddressBookReader
}

type TopicMessageReader interface {
	// ScanTopicMessages calls fn for each message of the topic with
	// start <= consensus timestamp < end, in consensus order. A limit of 0
	// means no limit. Returning an error from fn stops the scan.
	ScanTopicMessages(ctx context.Context, topicID *pbcodec.TopicID, start, end int64, limit uint64, fn func(msg *pbcodec.TopicMessage) error) error
}

type AddressBookReader interface {
	// ListAddressBook returns the latest entry of each known node, ordered by
	// node id. A limit of 0 means no limit.
	ListAddressBook(ctx context.Context, limit int) ([]*pbcodec.AddressBookEntry, error)
}
