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
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dfuse-io/dfuse-hedera/codec"
	ct "github.com/dfuse-io/dfuse-hedera/codec/testing"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	_ "github.com/dfuse-io/dfuse-hedera/trxdb/kv"
	"github.com/streamingfast/dstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	lock     sync.Mutex
	messages []*pbcodec.TopicMessage
}

func (p *recordingPublisher) Publish(msgs ...*pbcodec.TopicMessage) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.messages = append(p.messages, msgs...)
}

func (p *recordingPublisher) sequences() (out []int64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	for _, msg := range p.messages {
		out = append(out, msg.SequenceNumber)
	}
	return
}

func newTestEnv(t *testing.T) (dstore.Store, trxdb.DB) {
	dir := t.TempDir()

	store, err := dstore.NewDBinStore(filepath.Join(dir, "records"))
	require.NoError(t, err)

	db, err := trxdb.New(fmt.Sprintf("badger://%s/test.db?createTables=true", dir))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store, db
}

func writeRecordFile(t *testing.T, store dstore.Store, base uint64, blocks ...*pbcodec.RecordBlock) {
	buffer := bytes.NewBuffer(nil)
	writer, err := codec.NewRecordBlockWriter(buffer)
	require.NoError(t, err)

	for _, blk := range blocks {
		require.NoError(t, writer.Write(blk))
	}

	require.NoError(t, store.WriteObject(context.Background(), fmt.Sprintf("%010d", base), buffer))
}

func submitMessage(t *testing.T, consensus interface{}, topic int64, sequence uint64) *pbcodec.RecordItem {
	return ct.RecordItem(t, consensus,
		&pbcodec.ConsensusSubmitMessageBody{TopicID: ct.Topic(topic), Message: []byte(fmt.Sprintf("message %d", sequence))},
		ct.ReceiptFunc(func(r *pbcodec.TransactionReceipt) {
			r.TopicSequenceNumber = sequence
			r.TopicRunningHash = []byte{byte(sequence)}
		}),
	)
}

func waitTerminated(t *testing.T, l *Loader) {
	select {
	case <-l.Terminated():
	case <-time.After(10 * time.Second):
		require.FailNow(t, "loader did not terminate")
	}
}

func TestLoader_Run(t *testing.T) {
	store, db := newTestEnv(t)
	consensus := ct.AutoConsensus()

	writeRecordFile(t, store, 0,
		ct.Block(t, 1, submitMessage(t, consensus, 1001, 1)),
		ct.Block(t, 2, ct.RecordItem(t, consensus, ct.Transfer(2, 1001, 10))),
		ct.Block(t, 3, submitMessage(t, consensus, 1001, 2), submitMessage(t, consensus, 1002, 1)),
	)
	writeRecordFile(t, store, 100,
		ct.Block(t, 100, submitMessage(t, consensus, 1001, 3)),
		ct.Block(t, 101, submitMessage(t, consensus, 1001, 4)),
	)

	publisher := &recordingPublisher{}
	l := New(store, db, 1, WithStopBlock(101), WithPublisher(publisher), WithBatchSize(2), WithPollInterval(10*time.Millisecond))

	go l.Launch()
	waitTerminated(t, l)
	require.NoError(t, l.Err())

	ctx := context.Background()
	lastWritten, err := db.GetLastWrittenBlockNum(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), lastWritten)

	blk, err := db.GetBlock(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, blk.Transactions, 2)

	_, err = db.GetBlock(ctx, 101)
	assert.ErrorIs(t, err, trxdb.ErrNotFound)

	assert.Equal(t, []int64{1, 2, 1, 3}, publisher.sequences())
}

func TestLoader_WaitsForRecordFile(t *testing.T) {
	store, db := newTestEnv(t)

	l := New(store, db, 5, WithStopBlock(100), WithPollInterval(10*time.Millisecond))
	go l.Launch()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, l.IsTerminating())

	writeRecordFile(t, store, 0,
		ct.Block(t, 4, ct.RecordItem(t, ct.ConsensusAt{Seconds: 4}, ct.Transfer(2, 1001, 10))),
		ct.Block(t, 5, ct.RecordItem(t, ct.ConsensusAt{Seconds: 5}, ct.Transfer(2, 1001, 10))),
	)

	waitTerminated(t, l)
	require.NoError(t, l.Err())

	lastWritten, err := db.GetLastWrittenBlockNum(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), lastWritten)

	_, err = db.GetBlock(context.Background(), 4)
	assert.ErrorIs(t, err, trxdb.ErrNotFound)
}

func TestLoader_Shutdown(t *testing.T) {
	store, db := newTestEnv(t)

	l := New(store, db, 1, WithPollInterval(time.Hour))
	go l.Launch()

	time.Sleep(20 * time.Millisecond)
	l.Shutdown(nil)

	waitTerminated(t, l)
	assert.NoError(t, l.Err())
}

func TestLoader_ProjectionError(t *testing.T) {
	store, db := newTestEnv(t)

	writeRecordFile(t, store, 0,
		ct.Block(t, 1, ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.TruncatedEnvelope{})),
	)

	l := New(store, db, 1, WithStopBlock(100), WithPollInterval(10*time.Millisecond))
	go l.Launch()

	waitTerminated(t, l)
	require.Error(t, l.Err())
	assert.Contains(t, l.Err().Error(), "block #1")
}

func TestLoader_ResolveStartBlock(t *testing.T) {
	store, db := newTestEnv(t)
	ctx := context.Background()

	startBlock, err := New(store, db, 0).resolveStartBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), startBlock)

	projected, err := codec.ProjectBlock(ct.Block(t, 7, ct.RecordItem(t, ct.Transfer(2, 1001, 10))))
	require.NoError(t, err)
	require.NoError(t, db.PutProjectedBlock(ctx, projected))
	require.NoError(t, db.Flush(ctx))

	startBlock, err = New(store, db, 0).resolveStartBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), startBlock)

	startBlock, err = New(store, db, 3).resolveStartBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), startBlock)
}
