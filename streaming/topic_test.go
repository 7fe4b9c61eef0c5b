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
	"testing"

	"github.com/blockberries/cramberry/pkg/cramberry"
	ct "github.com/dfuse-io/dfuse-hedera/codec/testing"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicMessageToResponse(t *testing.T) {
	version := uint32(2)
	msg := &pbcodec.TopicMessage{
		ConsensusTimestamp: 1568411616_000_000_005,
		TopicID:            ct.Topic(1001),
		Message:            []byte("hello"),
		RunningHash:        []byte{0x01, 0x02},
		RunningHashVersion: &version,
		SequenceNumber:     7,
	}

	assert.Equal(t, &pbcodec.ConsensusTopicResponse{
		ConsensusTimestamp: &pbcodec.Timestamp{Seconds: 1568411616, Nanos: 5},
		Message:            []byte("hello"),
		RunningHash:        []byte{0x01, 0x02},
		SequenceNumber:     7,
		RunningHashVersion: 2,
	}, TopicMessageToResponse(msg))
}

func TestTopicMessageToResponse_DefaultRunningHashVersion(t *testing.T) {
	resp := TopicMessageToResponse(&pbcodec.TopicMessage{TopicID: ct.Topic(1001), SequenceNumber: 1})
	assert.Equal(t, uint64(3), resp.RunningHashVersion)
	assert.Nil(t, resp.ChunkInfo)
}

func TestTopicMessageToResponse_ChunkInfo(t *testing.T) {
	stored := ct.TrxID(1001, 100)
	storedBytes, err := cramberry.Marshal(stored)
	require.NoError(t, err)

	validStart := int64(200_000_000_007)

	tests := []struct {
		name     string
		msg      *pbcodec.TopicMessage
		expected *pbcodec.TransactionID
	}{
		{
			name: "stored initial transaction id",
			msg: &pbcodec.TopicMessage{
				InitialTransactionID: storedBytes,
				PayerAccountID:       ct.Account(2),
				ValidStartTimestamp:  &validStart,
			},
			expected: stored,
		},
		{
			name: "payer and valid start",
			msg: &pbcodec.TopicMessage{
				PayerAccountID:      ct.Account(2),
				ValidStartTimestamp: &validStart,
			},
			expected: &pbcodec.TransactionID{
				AccountID:             ct.Account(2),
				TransactionValidStart: &pbcodec.Timestamp{Seconds: 200, Nanos: 7},
			},
		},
		{
			name: "malformed stored bytes fall back",
			msg: &pbcodec.TopicMessage{
				InitialTransactionID: []byte{0xff, 0xff, 0xff},
				PayerAccountID:       ct.Account(2),
				ValidStartTimestamp:  &validStart,
			},
			expected: &pbcodec.TransactionID{
				AccountID:             ct.Account(2),
				TransactionValidStart: &pbcodec.Timestamp{Seconds: 200, Nanos: 7},
			},
		},
		{
			name:     "missing valid start",
			msg:      &pbcodec.TopicMessage{PayerAccountID: ct.Account(2)},
			expected: nil,
		},
		{
			name:     "nothing to build from",
			msg:      &pbcodec.TopicMessage{},
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.msg.TopicID = ct.Topic(1001)
			test.msg.ChunkNum = 2
			test.msg.ChunkTotal = 3

			resp := TopicMessageToResponse(test.msg)
			require.NotNil(t, resp.ChunkInfo)
			assert.Equal(t, int32(2), resp.ChunkInfo.Number)
			assert.Equal(t, int32(3), resp.ChunkInfo.Total)
			assert.Equal(t, test.expected, resp.ChunkInfo.InitialTransactionID)
		})
	}
}
