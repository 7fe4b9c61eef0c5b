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
	"github.com/dfuse-io/dfuse-hedera/metrics"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/dfuse-io/dfuse-hedera/streaming"
	"github.com/streamingfast/derr"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

func (s *Server) GetNodes(query *pbcodec.AddressBookQuery, stream grpc.ServerStream) error {
	ctx := stream.Context()
	logger := logging.Logger(ctx, zlog)

	if query.Limit < 0 {
		return derr.Status(codes.InvalidArgument, "negative limit is not valid")
	}

	entries, err := s.db.ListAddressBook(ctx, int(query.Limit))
	if err != nil {
		return derr.Statusf(codes.Unknown, "unable to list address book: %s", err)
	}

	logger.Debug("streaming address book", zap.Int("entry_count", len(entries)))
	for _, entry := range entries {
		if err := stream.SendMsg(streaming.AddressBookEntryToNodeAddress(entry)); err != nil {
			return err
		}
		metrics.StreamedNodes.Inc()
	}

	return nil
}
