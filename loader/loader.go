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
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dfuse-io/dfuse-hedera/codec"
	"github.com/dfuse-io/dfuse-hedera/metrics"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	"github.com/streamingfast/derr"
	"github.com/streamingfast/dstore"
	"github.com/streamingfast/shutter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BlocksPerFile is the number of record blocks bundled in one record file,
// files are named after the first block they hold.
const BlocksPerFile = 100

const MaxRetries = 5

// Publisher receives the topic messages of every written block.
type Publisher interface {
	Publish(msgs ...*pbcodec.TopicMessage)
}

type Loader struct {
	*shutter.Shutter

	recordsStore dstore.Store
	db           trxdb.DB
	publisher    Publisher

	startBlock  uint64
	stopBlock   uint64
	parallelism int
	batchSize   uint64

	pollInterval time.Duration

	lastTickBlock        uint64
	lastTickTime         time.Time
	lastBlockSecs        []float64
	lastBlockSecsPointer int
}

type Option func(l *Loader)

// WithStopBlock stops the loader before writing the given block (exclusive).
func WithStopBlock(blockNum uint64) Option {
	return func(l *Loader) { l.stopBlock = blockNum }
}

func WithPublisher(publisher Publisher) Option {
	return func(l *Loader) { l.publisher = publisher }
}

func WithParallelism(parallelism int) Option {
	return func(l *Loader) { l.parallelism = parallelism }
}

// WithBatchSize flushes the database every given number of blocks, the end
// of each record file always flushes.
func WithBatchSize(batchSize uint64) Option {
	return func(l *Loader) { l.batchSize = batchSize }
}

func WithPollInterval(interval time.Duration) Option {
	return func(l *Loader) { l.pollInterval = interval }
}

func New(recordsStore dstore.Store, db trxdb.DB, startBlock uint64, opts ...Option) *Loader {
	l := &Loader{
		Shutter:       shutter.New(),
		recordsStore:  recordsStore,
		db:            db,
		startBlock:    startBlock,
		parallelism:   4,
		batchSize:     1000,
		pollInterval:  5 * time.Second,
		lastBlockSecs: make([]float64, 100),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Loader) Launch() {
	ctx, cancel := context.WithCancel(context.Background())
	l.OnTerminating(func(err error) {
		cancel()
	})

	startBlock, err := l.resolveStartBlock(ctx)
	if err != nil {
		l.Shutdown(err)
		return
	}

	err = l.run(ctx, startBlock)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	l.Shutdown(err)
}

// resolveStartBlock resumes right after the last written block when no
// explicit start block was configured.
func (l *Loader) resolveStartBlock(ctx context.Context) (uint64, error) {
	if l.startBlock != 0 {
		return l.startBlock, nil
	}

	lastWritten, err := l.db.GetLastWrittenBlockNum(ctx)
	if errors.Is(err, trxdb.ErrNotFound) {
		zlog.Info("no block written yet, starting from the beginning")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get last written block: %w", err)
	}

	zlog.Info("resuming after last written block", zap.Uint64("last_written_block_num", lastWritten))
	return lastWritten + 1, nil
}

func (l *Loader) run(ctx context.Context, startBlock uint64) error {
	currentBase := startBlock - (startBlock % BlocksPerFile)
	pendingBlocks := uint64(0)

	logRateLimiter := rate.NewLimiter(2, 2)
	for {
		if l.stopBlock != 0 && currentBase >= l.stopBlock {
			zlog.Info("reached stop block", zap.Uint64("stop_block", l.stopBlock))
			return l.flush(ctx, "reached stop block")
		}

		currentBaseFile := fmt.Sprintf("%010d", currentBase)

		exists, err := l.recordsStore.FileExists(ctx, currentBaseFile)
		if err != nil {
			return fmt.Errorf("checking record file %q: %w", currentBaseFile, err)
		}

		if !exists {
			if logRateLimiter.Allow() {
				zlog.Info("waiting for record file", zap.String("base_file", currentBaseFile))
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.pollInterval):
			}
			continue
		}

		var blocks []*pbcodec.RecordBlock
		err = derr.Retry(MaxRetries, func(ctx context.Context) (err error) {
			blocks, err = l.readRecordFile(ctx, currentBaseFile)
			return err
		})
		if err != nil {
			return fmt.Errorf("reading record file %q: %w", currentBaseFile, err)
		}

		blocks = l.keepInRange(blocks, startBlock)

		projected, err := codec.ProjectBlocks(ctx, blocks, l.parallelism)
		if err != nil {
			return fmt.Errorf("projecting record file %q: %w", currentBaseFile, err)
		}

		var unpublished []*pbcodec.ProjectedBlock
		for _, blk := range projected {
			if err := l.db.PutProjectedBlock(ctx, blk); err != nil {
				return fmt.Errorf("store block #%d: %w", blk.Number, err)
			}
			unpublished = append(unpublished, blk)

			pendingBlocks++
			if pendingBlocks >= l.batchSize {
				if err := l.flushAndPublish(ctx, "batch size reached", unpublished); err != nil {
					return err
				}
				unpublished = nil
				pendingBlocks = 0
			}
		}

		if err := l.flushAndPublish(ctx, "end of record file", unpublished); err != nil {
			return err
		}
		pendingBlocks = 0

		if logRateLimiter.Allow() {
			zlog.Info("processed record file", zap.String("base_file", currentBaseFile), zap.Int("block_count", len(projected)))
		}

		currentBase += BlocksPerFile
	}
}

// keepInRange drops blocks before the start block and from the stop block on.
func (l *Loader) keepInRange(blocks []*pbcodec.RecordBlock, startBlock uint64) []*pbcodec.RecordBlock {
	out := blocks[:0]
	for _, blk := range blocks {
		if blk.Number < startBlock {
			continue
		}
		if l.stopBlock != 0 && blk.Number >= l.stopBlock {
			continue
		}
		out = append(out, blk)
	}
	return out
}

func (l *Loader) readRecordFile(ctx context.Context, baseFile string) (out []*pbcodec.RecordBlock, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readCloser, err := l.recordsStore.OpenObject(ctx, baseFile)
	if err != nil {
		return nil, err
	}
	defer readCloser.Close()

	reader, err := codec.NewRecordBlockReader(readCloser)
	if err != nil {
		return nil, err
	}

	for {
		blk, err := reader.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		out = append(out, blk)
	}
}

// flushAndPublish makes the blocks durable before live subscribers see
// their messages, a subscriber scanning storage then never misses one.
func (l *Loader) flushAndPublish(ctx context.Context, reason string, blocks []*pbcodec.ProjectedBlock) error {
	if len(blocks) == 0 {
		return nil
	}

	if err := l.flush(ctx, reason); err != nil {
		return err
	}

	for _, blk := range blocks {
		messages := trxdb.TopicMessages(blk)
		if l.publisher != nil && len(messages) > 0 {
			l.publisher.Publish(messages...)
			metrics.PublishedTopicMessages.AddInt(len(messages))
		}

		l.reportBlock(blk)
	}

	return nil
}

func (l *Loader) flush(ctx context.Context, reason string) error {
	if traceEnabled {
		zlog.Debug("flushing", zap.String("reason", reason))
	}

	err := derr.Retry(MaxRetries, func(_ context.Context) error {
		return l.db.Flush(ctx)
	})
	if err != nil {
		return fmt.Errorf("db flush failed after reaching max retries (%d): %w", MaxRetries, err)
	}

	return nil
}

func (l *Loader) reportBlock(blk *pbcodec.ProjectedBlock) {
	stateChanges := 0
	for _, trx := range blk.Transactions {
		stateChanges += len(trx.StateChanges)
	}

	metrics.ProjectedBlocks.Inc()
	metrics.ProjectedTransactions.AddInt(len(blk.Transactions))
	metrics.SynthesizedStateChanges.AddInt(stateChanges)
	metrics.HeadBlockNumber.SetUint64(blk.Number)
	if blk.ConsensusEnd != nil {
		metrics.HeadTimeDrift.SetBlockTime(time.Unix(0, blk.ConsensusEnd.UnixNano()))
	}

	l.showProgress(blk.Number)
}

func (l *Loader) showProgress(blockNum uint64) {
	now := time.Now()
	if l.lastTickTime.Before(now.Add(-5 * time.Second)) {
		if !l.lastTickTime.IsZero() {
			blockSec := float64(blockNum-l.lastTickBlock) / now.Sub(l.lastTickTime).Seconds()

			l.lastBlockSecs[l.lastBlockSecsPointer%len(l.lastBlockSecs)] = blockSec
			l.lastBlockSecsPointer++

			var totalBlockSec float64
			for _, curBlockSec := range l.lastBlockSecs {
				totalBlockSec += curBlockSec
			}

			samples := l.lastBlockSecsPointer
			if samples > len(l.lastBlockSecs) {
				samples = len(l.lastBlockSecs)
			}

			zlog.Info("5sec AVG INSERT RATE",
				zap.Uint64("block_num", blockNum),
				zap.Uint64("last_tick_block", l.lastTickBlock),
				zap.Float64("block_sec", math.Round(blockSec*100)/100),
				zap.Float64("100_tick_avg", math.Round(totalBlockSec/float64(samples)*100)/100),
			)
		}
		l.lastTickTime = now
		l.lastTickBlock = blockNum
	}
}
