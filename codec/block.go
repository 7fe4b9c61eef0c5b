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

package codec

import (
	"context"
	"fmt"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProjectBlock projects every record item of the block in consensus order
// and links them. Items out of consensus order mean corrupted upstream data.
func ProjectBlock(blk *pbcodec.RecordBlock) (*pbcodec.ProjectedBlock, error) {
	chain := NewChain(len(blk.Items))

	var lastTimestamp *pbcodec.Timestamp
	for i := range blk.Items {
		item := &blk.Items[i]

		projected, err := ProjectRecordItem(item)
		if err != nil {
			return nil, fmt.Errorf("block #%d, item %d: %w", blk.Number, i, err)
		}

		if i > 0 && projected.ConsensusTimestamp.Compare(lastTimestamp) <= 0 {
			return nil, fmt.Errorf("block #%d, item %d: consensus timestamp %s is not after previous item", blk.Number, i, projected.ConsensusTimestamp)
		}
		lastTimestamp = projected.ConsensusTimestamp

		chain.Append(projected)
	}

	zlog.Debug("projected block",
		zap.Uint64("block_num", blk.Number),
		zap.Int("transaction_count", chain.Len()),
	)

	return &pbcodec.ProjectedBlock{
		Number:       blk.Number,
		Hash:         blk.Hash,
		PreviousHash: blk.PreviousHash,
		ConsensusEnd: blk.ConsensusEnd,
		Transactions: chain.Finalize(),
	}, nil
}

// ProjectBlocks projects independent blocks concurrently, at most
// parallelism at a time. Results keep the order of the input.
func ProjectBlocks(ctx context.Context, blocks []*pbcodec.RecordBlock, parallelism int) ([]*pbcodec.ProjectedBlock, error) {
	out := make([]*pbcodec.ProjectedBlock, len(blocks))

	group, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		group.SetLimit(parallelism)
	}

	for i, blk := range blocks {
		i, blk := i, blk
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			projected, err := ProjectBlock(blk)
			if err != nil {
				return err
			}

			out[i] = projected
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
