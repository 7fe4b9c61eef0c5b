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

package streaming

import (
	"github.com/blockberries/cramberry/pkg/cramberry"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"go.uber.org/zap"
)

// DefaultRunningHashVersion is reported for messages stored without a
// running hash version.
const DefaultRunningHashVersion = 3

func TopicMessageToResponse(msg *pbcodec.TopicMessage) *pbcodec.ConsensusTopicResponse {
	out := &pbcodec.ConsensusTopicResponse{
		ConsensusTimestamp: pbcodec.TimestampFromNanos(msg.ConsensusTimestamp),
		Message:            msg.Message,
		RunningHash:        msg.RunningHash,
		SequenceNumber:     uint64(msg.SequenceNumber),
		RunningHashVersion: DefaultRunningHashVersion,
	}

	if msg.RunningHashVersion != nil {
		out.RunningHashVersion = uint64(*msg.RunningHashVersion)
	}

	if msg.ChunkNum > 0 {
		out.ChunkInfo = &pbcodec.ConsensusMessageChunkInfo{
			InitialTransactionID: initialTransactionID(msg),
			Number:               msg.ChunkNum,
			Total:                msg.ChunkTotal,
		}
	}

	return out
}

// initialTransactionID prefers the stored id, then the one made of the payer
// and valid start of the message, nil when neither is usable.
func initialTransactionID(msg *pbcodec.TopicMessage) *pbcodec.TransactionID {
	if len(msg.InitialTransactionID) > 0 {
		out := &pbcodec.TransactionID{}
		err := cramberry.Unmarshal(msg.InitialTransactionID, out)
		if err == nil {
			return out
		}

		zlog.Warn("unable to decode stored initial transaction id, falling back to payer and valid start",
			zap.Int64("consensus_timestamp", msg.ConsensusTimestamp),
			zap.Stringer("topic_id", msg.TopicID),
			zap.Error(err),
		)
	}

	if msg.PayerAccountID != nil && msg.ValidStartTimestamp != nil {
		return &pbcodec.TransactionID{
			AccountID:             msg.PayerAccountID,
			TransactionValidStart: pbcodec.TimestampFromNanos(*msg.ValidStartTimestamp),
		}
	}

	return nil
}
