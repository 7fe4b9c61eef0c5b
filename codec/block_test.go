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
	"testing"

	"github.com/blockberries/cramberry/pkg/cramberry"
	ct "github.com/dfuse-io/dfuse-hedera/codec/testing"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlock(t *testing.T, num uint64, count int) *pbcodec.RecordBlock {
	consensus := ct.AutoConsensus()

	items := make([]*pbcodec.RecordItem, count)
	for i := range items {
		items[i] = ct.RecordItem(t, ct.Transfer(2, int64(1000+i), 10), consensus)
	}

	return ct.Block(t, num, items...)
}

func TestProjectBlock(t *testing.T) {
	blk := testBlock(t, 12, 3)

	projected, err := ProjectBlock(blk)
	require.NoError(t, err)

	assert.Equal(t, uint64(12), projected.Num())
	assert.Equal(t, blk.Hash, projected.Hash)
	assert.Equal(t, blk.ConsensusEnd, projected.ConsensusEnd)
	require.Len(t, projected.Transactions, 3)

	assert.Nil(t, projected.Previous(0))
	for i := 1; i < 3; i++ {
		previous := projected.Previous(i)
		require.NotNil(t, previous)
		assert.Equal(t, projected.Transactions[i-1].ConsensusTimestamp, previous.ConsensusTimestamp)
	}

	for _, trx := range projected.Transactions {
		assert.Equal(t, pbcodec.TransactionKind_CRYPTO_TRANSFER, trx.Kind)
		assert.True(t, trx.IsSuccess())
		assert.Nil(t, trx.Output)
		assert.Nil(t, trx.StateChanges)
	}
}

func TestProjectBlock_OutOfOrder(t *testing.T) {
	blk := ct.Block(t, 12,
		ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.ConsensusAt{Seconds: 10}),
		ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.ConsensusAt{Seconds: 10}),
	)

	_, err := ProjectBlock(blk)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block #12, item 1")
}

func TestProjectBlock_FarFutureTimestamps(t *testing.T) {
	blk := ct.Block(t, 12,
		ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.ConsensusAt{Seconds: 9223372036, Nanos: 999999999}),
		ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.ConsensusAt{Seconds: 9223372037}),
		ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.ConsensusAt{Seconds: 9223372037, Nanos: 1}),
	)

	projected, err := ProjectBlock(blk)
	require.NoError(t, err)
	require.Len(t, projected.Transactions, 3)

	outOfOrder := ct.Block(t, 13,
		ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.ConsensusAt{Seconds: 9223372037}),
		ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.ConsensusAt{Seconds: 9223372036, Nanos: 999999999}),
	)

	_, err = ProjectBlock(outOfOrder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block #13, item 1")
}

func TestProjectBlock_MalformedItem(t *testing.T) {
	blk := ct.Block(t, 12, ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.TruncatedEnvelope{}))

	_, err := ProjectBlock(blk)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode signed transaction")
}

func TestProjectBlock_Deterministic(t *testing.T) {
	blk := ct.Block(t, 7,
		ct.RecordItem(t, &pbcodec.TokenMintBody{Token: ct.Token(10)}, ct.ConsensusAt{Seconds: 1}, ct.ReceiptFunc(func(r *pbcodec.TransactionReceipt) {
			r.SerialNumbers = []int64{1, 2}
			r.NewTotalSupply = 2
		})),
		ct.RecordItem(t, &pbcodec.ContractCreateBody{Gas: 100_000}, ct.ConsensusAt{Seconds: 2}, &ct.CreateResult{
			ContractID:         ct.Contract(0, 1001),
			CreatedContractIDs: []pbcodec.ContractID{*ct.Contract(0, 1002)},
		}),
	)

	first, err := ProjectBlock(blk)
	require.NoError(t, err)
	second, err := ProjectBlock(blk)
	require.NoError(t, err)

	firstBytes, err := cramberry.Marshal(first)
	require.NoError(t, err)
	secondBytes, err := cramberry.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstBytes, secondBytes)
}

func TestProjectBlocks(t *testing.T) {
	blocks := []*pbcodec.RecordBlock{
		testBlock(t, 1, 2),
		testBlock(t, 2, 5),
		testBlock(t, 3, 1),
		testBlock(t, 4, 3),
	}

	projected, err := ProjectBlocks(context.Background(), blocks, 2)
	require.NoError(t, err)
	require.Len(t, projected, 4)

	for i, blk := range projected {
		assert.Equal(t, blocks[i].Number, blk.Num())
		assert.Len(t, blk.Transactions, len(blocks[i].Items))
	}
}

func TestProjectBlocks_Error(t *testing.T) {
	blocks := []*pbcodec.RecordBlock{
		testBlock(t, 1, 2),
		ct.Block(t, 2, ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.TruncatedEnvelope{})),
	}

	_, err := ProjectBlocks(context.Background(), blocks, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block #2")
}

func TestProjectTransaction_TraceData(t *testing.T) {
	at := ct.ConsensusAt{Seconds: 3}
	bytecode := &pbcodec.ContractBytecode{ContractID: ct.Contract(0, 1001), InitCode: []byte{0x60}, RuntimeBytecode: []byte{0x61}}

	projected, err := ProjectRecordItem(ct.RecordItem(t, &pbcodec.ContractCreateBody{Gas: 100_000}, at,
		&ct.CreateResult{ContractID: ct.Contract(0, 1001)},
		pbcodec.TransactionSidecarRecord{ConsensusTimestamp: &pbcodec.Timestamp{Seconds: 3}, Bytecode: bytecode},
	))
	require.NoError(t, err)

	require.NotNil(t, projected.TraceData)
	assert.Equal(t, []byte{0x60}, projected.TraceData.EvmTraceData.InitCode)
	assert.Equal(t, []byte{0x61}, projected.TraceData.EvmTraceData.RuntimeBytecode)
	assert.Equal(t, pbcodec.NoPrevious, projected.PreviousIndex)

	projected, err = ProjectRecordItem(ct.RecordItem(t, &pbcodec.ContractCallBody{Gas: 100_000}, &ct.CallResult{ContractID: ct.Contract(0, 1001)}, ct.Status(pbcodec.ResponseCode_INSUFFICIENT_GAS)))
	require.NoError(t, err)
	assert.Nil(t, projected.TraceData)
	assert.False(t, projected.IsSuccess())
}

func TestProjectResult(t *testing.T) {
	parent := &pbcodec.Timestamp{Seconds: 1}
	trx, err := NewTransactionContext(ct.RecordItem(t, ct.Transfer(2, 1001, 10), ct.RecordFunc(func(r *pbcodec.TransactionRecord) {
		r.TransactionFee = 120
		r.TransactionHash = []byte{0x01}
		r.ParentConsensusTimestamp = parent
	})))
	require.NoError(t, err)

	result := ProjectResult(trx)
	assert.Equal(t, pbcodec.ResponseCode_SUCCESS, result.Status)
	assert.Equal(t, uint64(120), result.TransactionFeeCharged)
	assert.Equal(t, []byte{0x01}, result.TransactionHash)
	assert.Equal(t, parent, result.ParentConsensusTimestamp)
	assert.Nil(t, result.ScheduleRef)
	assert.Equal(t, ct.TrxID(2, ct.GenesisSeconds), result.TransactionID)
}
