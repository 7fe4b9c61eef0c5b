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

package grpc

import (
	"context"
	"errors"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/dfuse-io/dfuse-hedera/streaming"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	"github.com/streamingfast/derr"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

func (s *Server) GetTransaction(ctx context.Context, query *pbcodec.TransactionQuery) (*pbcodec.TransactionResponse, error) {
	if query.ConsensusTimestamp == nil {
		return nil, derr.Status(codes.InvalidArgument, "consensus timestamp is required")
	}

	timestamp := streaming.ToNanosClamped(query.ConsensusTimestamp)
	logging.Logger(ctx, zlog).Debug("get transaction", zap.Int64("consensus_timestamp", timestamp))

	row, err := s.db.GetTransaction(ctx, timestamp)
	if errors.Is(err, trxdb.ErrNotFound) {
		return nil, derr.Statusf(codes.NotFound, "transaction at %s not found", query.ConsensusTimestamp)
	}
	if err != nil {
		return nil, derr.Statusf(codes.Unknown, "unable to get transaction: %s", err)
	}

	return &pbcodec.TransactionResponse{
		BlockNum:    row.BlockNum,
		Index:       row.Index,
		Transaction: row.Transaction,
	}, nil
}

func (s *Server) GetBlock(ctx context.Context, query *pbcodec.BlockQuery) (*pbcodec.ProjectedBlock, error) {
	logging.Logger(ctx, zlog).Debug("get block", zap.Uint64("block_num", query.BlockNum))

	blk, err := s.db.GetBlock(ctx, query.BlockNum)
	if errors.Is(err, trxdb.ErrNotFound) {
		return nil, derr.Statusf(codes.NotFound, "block %d not found", query.BlockNum)
	}
	if err != nil {
		return nil, derr.Statusf(codes.Unknown, "unable to get block: %s", err)
	}

	return blk, nil
}
