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
	"testing"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"github.com/dfuse-io/dfuse-hedera/codec"
	ct "github.com/dfuse-io/dfuse-hedera/codec/testing"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitMessage(t *testing.T, topic int64, sequence uint64, components ...interface{}) *pbcodec.RecordItem {
	body := &pbcodec.ConsensusSubmitMessageBody{TopicID: ct.Topic(topic), Message: []byte("message")}
	for _, component := range components {
		if chunk, ok := component.(*pbcodec.ConsensusMessageChunkInfo); ok {
			body.ChunkInfo = chunk
		}
	}

	rest := []interface{}{body, ct.ReceiptFunc(func(r *pbcodec.TransactionReceipt) {
		r.TopicSequenceNumber = sequence
		r.TopicRunningHash = []byte{byte(sequence)}
	})}
	for _, component := range components {
		if _, ok := component.(*pbcodec.ConsensusMessageChunkInfo); !ok {
			rest = append(rest, component)
		}
	}

	return ct.RecordItem(t, rest...)
}

func projectBlock(t *testing.T, num uint64, items ...*pbcodec.RecordItem) *pbcodec.ProjectedBlock {
	blk, err := codec.ProjectBlock(ct.Block(t, num, items...))
	require.NoError(t, err)
	return blk
}

func TestTopicMessages(t *testing.T) {
	consensus := ct.AutoConsensus()
	initialID := ct.TrxID(1001, 100)

	blk := projectBlock(t, 1,
		submitMessage(t, 7, 1, consensus, ct.Payer(1001)),
		ct.RecordItem(t, ct.Transfer(2, 1001, 10), consensus),
		submitMessage(t, 7, 2, consensus, ct.Status(pbcodec.ResponseCode_INVALID_TOPIC_ID)),
		submitMessage(t, 8, 3, consensus, &pbcodec.ConsensusMessageChunkInfo{InitialTransactionID: initialID, Total: 2, Number: 1}, ct.ReceiptFunc(func(r *pbcodec.TransactionReceipt) {
			r.TopicRunningHashVersion = 2
		})),
	)

	messages := TopicMessages(blk)
	require.Len(t, messages, 2)

	first := messages[0]
	assert.Equal(t, ct.Topic(7), first.TopicID)
	assert.Equal(t, int64(1), first.SequenceNumber)
	assert.Equal(t, []byte("message"), first.Message)
	assert.Equal(t, []byte{0x01}, first.RunningHash)
	assert.Equal(t, blk.Transactions[0].ConsensusTimestamp.UnixNano(), first.ConsensusTimestamp)
	assert.Nil(t, first.RunningHashVersion)
	assert.Equal(t, ct.Account(1001), first.PayerAccountID)
	require.NotNil(t, first.ValidStartTimestamp)
	assert.Equal(t, int64(ct.GenesisSeconds)*1_000_000_000, *first.ValidStartTimestamp)
	assert.Nil(t, first.InitialTransactionID)

	second := messages[1]
	assert.Equal(t, ct.Topic(8), second.TopicID)
	require.NotNil(t, second.RunningHashVersion)
	assert.Equal(t, uint32(2), *second.RunningHashVersion)
	assert.Equal(t, int32(1), second.ChunkNum)
	assert.Equal(t, int32(2), second.ChunkTotal)

	decoded := &pbcodec.TransactionID{}
	require.NoError(t, cramberry.Unmarshal(second.InitialTransactionID, decoded))
	assert.Equal(t, initialID, decoded)
}

func TestAddressBookEntries(t *testing.T) {
	consensus := ct.AutoConsensus()
	node := func(id uint64, description string) *pbcodec.RecordItem {
		return ct.RecordItem(t, consensus, &pbcodec.NodeCreateBody{
			AccountID:           ct.Account(int64(id + 3)),
			Description:         description,
			GossipCACertificate: []byte{0xca},
			GrpcCertificateHash: []byte{0x0c},
			ServiceEndpoints: []pbcodec.ServiceEndpoint{
				{IPAddressV4: []byte{10, 0, 0, 1}, Port: 50211},
				{DomainName: "node.example.com", Port: 50212},
			},
		}, ct.ReceiptFunc(func(r *pbcodec.TransactionReceipt) { r.NodeID = id }))
	}

	blk := projectBlock(t, 1, node(0, "first"), node(1, "second"), node(0, "first again"))

	entries := AddressBookEntries(blk)
	require.Len(t, entries, 2)

	assert.Equal(t, &pbcodec.AddressBookEntry{
		ConsensusTimestamp: blk.Transactions[2].ConsensusTimestamp.UnixNano(),
		NodeID:             0,
		NodeAccountID:      ct.Account(3),
		Description:        "first again",
		NodeCertHash:       []byte{0x0c},
		PublicKey:          "ca",
		ServiceEndpoints: []pbcodec.AddressBookServiceEndpoint{
			{IPAddressV4: "10.0.0.1", Port: 50211},
			{DomainName: "node.example.com", Port: 50212},
		},
	}, entries[0])
	assert.Equal(t, int64(1), entries[1].NodeID)
	assert.Equal(t, "second", entries[1].Description)
}

func TestRowEncoder(t *testing.T) {
	enc := NewRowEncoder()
	dec := NewRowDecoder()

	in := &pbcodec.TopicMessage{ConsensusTimestamp: 10, TopicID: ct.Topic(7), Message: []byte("hello"), SequenceNumber: 3}
	data, err := enc.Encode(in)
	require.NoError(t, err)

	out := &pbcodec.TopicMessage{}
	require.NoError(t, dec.Into(data, out))
	assert.Equal(t, in, out)

	assert.Error(t, dec.Into([]byte{0x01, 0x02}, out))
}
