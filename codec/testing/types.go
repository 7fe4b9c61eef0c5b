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

package ct

import (
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/mitchellh/go-testing-interface"
	"github.com/streamingfast/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var zlog *zap.Logger

func init() {
	logging.Register("github.com/dfuse-io/dfuse-hedera/codec/testing", &zlog)
}

// GenesisSeconds is the consensus second used by auto generated timestamps.
const GenesisSeconds = 1568411616

// AutoConsensus hands out strictly increasing consensus timestamps, one
// nanosecond apart.
func AutoConsensus() *autoConsensus {
	return &autoConsensus{
		count: atomic.NewInt64(0),
	}
}

type autoConsensus struct {
	count *atomic.Int64
}

func (a *autoConsensus) Next() *pbcodec.Timestamp {
	return &pbcodec.Timestamp{Seconds: GenesisSeconds, Nanos: int32(a.count.Inc())}
}

type Status pbcodec.ResponseCode
type ConsensusAt pbcodec.Timestamp
type Payer int64
type EvmAddress []byte

// TruncatedEnvelope cuts the encoded signed transaction short so it cannot be
// decoded.
type TruncatedEnvelope struct{}

type ReceiptFunc func(receipt *pbcodec.TransactionReceipt)
type RecordFunc func(record *pbcodec.TransactionRecord)

// CallResult and CreateResult place the EVM result on the matching record field.
type CallResult pbcodec.ContractFunctionResult
type CreateResult pbcodec.ContractFunctionResult

//
/// Identifiers
//

func Account(num int64) *pbcodec.AccountID {
	return &pbcodec.AccountID{AccountNum: num}
}

func ShardAccount(shard, num int64) *pbcodec.AccountID {
	return &pbcodec.AccountID{ShardNum: shard, AccountNum: num}
}

func Contract(shard, num int64) *pbcodec.ContractID {
	return &pbcodec.ContractID{ShardNum: shard, ContractNum: num}
}

func Token(num int64) *pbcodec.TokenID {
	return &pbcodec.TokenID{TokenNum: num}
}

func Topic(num int64) *pbcodec.TopicID {
	return &pbcodec.TopicID{TopicNum: num}
}

func Schedule(num int64) *pbcodec.ScheduleID {
	return &pbcodec.ScheduleID{ScheduleNum: num}
}

func File(num int64) *pbcodec.FileID {
	return &pbcodec.FileID{FileNum: num}
}

// Transfer is a plain hbar transfer body between two accounts.
func Transfer(from, to int64, amount int64) *pbcodec.CryptoTransferBody {
	return &pbcodec.CryptoTransferBody{Transfers: &pbcodec.TransferList{AccountAmounts: []pbcodec.AccountAmount{
		{AccountID: Account(from), Amount: -amount},
		{AccountID: Account(to), Amount: amount},
	}}}
}

func TrxID(payer int64, seconds int64) *pbcodec.TransactionID {
	return &pbcodec.TransactionID{
		AccountID:             Account(payer),
		TransactionValidStart: &pbcodec.Timestamp{Seconds: seconds},
	}
}

//
/// Record items
//

// RecordItem builds an executed transaction. The kind is picked from the body
// component given (`*pbcodec.ContractCallBody`, `*pbcodec.TokenMintBody`, ...),
// status defaults to SUCCESS and payer to 0.0.2.
func RecordItem(t testing.T, components ...interface{}) *pbcodec.RecordItem {
	body := &pbcodec.TransactionBody{TransactionID: TrxID(2, GenesisSeconds)}
	record := &pbcodec.TransactionRecord{
		Receipt:            &pbcodec.TransactionReceipt{Status: pbcodec.ResponseCode_SUCCESS},
		ConsensusTimestamp: &pbcodec.Timestamp{Seconds: GenesisSeconds},
	}

	var sidecars []pbcodec.TransactionSidecarRecord
	truncated := false

	for _, component := range components {
		switch v := component.(type) {
		case Status:
			record.Receipt.Status = pbcodec.ResponseCode(v)
		case ConsensusAt:
			ts := pbcodec.Timestamp(v)
			record.ConsensusTimestamp = &ts
		case *autoConsensus:
			record.ConsensusTimestamp = v.Next()
		case Payer:
			body.TransactionID.AccountID = Account(int64(v))
		case EvmAddress:
			record.EvmAddress = []byte(v)
		case *CallResult:
			record.ContractCallResult = (*pbcodec.ContractFunctionResult)(v)
		case *CreateResult:
			record.ContractCreateResult = (*pbcodec.ContractFunctionResult)(v)
		case ReceiptFunc:
			v(record.Receipt)
		case RecordFunc:
			v(record)
		case pbcodec.TransactionSidecarRecord:
			sidecars = append(sidecars, v)
		case TruncatedEnvelope:
			truncated = true

		case *pbcodec.CryptoTransferBody:
			body.CryptoTransfer = v
		case *pbcodec.CryptoCreateBody:
			body.CryptoCreate = v
		case *pbcodec.ContractCallBody:
			body.ContractCall = v
		case *pbcodec.ContractCreateBody:
			body.ContractCreate = v
		case *pbcodec.ContractUpdateBody:
			body.ContractUpdate = v
		case *pbcodec.ContractDeleteBody:
			body.ContractDelete = v
		case *pbcodec.EthereumTransactionBody:
			body.EthereumTransaction = v
		case *pbcodec.ScheduleCreateBody:
			body.ScheduleCreate = v
		case *pbcodec.ScheduleSignBody:
			body.ScheduleSign = v
		case *pbcodec.ScheduleDeleteBody:
			body.ScheduleDelete = v
		case *pbcodec.TokenCreateBody:
			body.TokenCreate = v
		case *pbcodec.TokenMintBody:
			body.TokenMint = v
		case *pbcodec.TokenBurnBody:
			body.TokenBurn = v
		case *pbcodec.TokenWipeBody:
			body.TokenWipe = v
		case *pbcodec.TokenAirdropBody:
			body.TokenAirdrop = v
		case *pbcodec.ConsensusCreateTopicBody:
			body.ConsensusCreateTopic = v
		case *pbcodec.ConsensusSubmitMessageBody:
			body.ConsensusSubmitMessage = v
		case *pbcodec.FileCreateBody:
			body.FileCreate = v
		case *pbcodec.NodeCreateBody:
			body.NodeCreate = v
		case *pbcodec.UtilPrngBody:
			body.UtilPrng = v
		default:
			failInvalidComponent(t, "record item", component)
		}
	}

	record.TransactionID = body.TransactionID

	item := &pbcodec.RecordItem{
		Record:   record,
		Sidecars: sidecars,
	}

	item.SignedTransactionBytes = SignedTransactionBytes(t, body)
	if truncated {
		if body.Memo == "" {
			body.Memo = "truncated envelope padding"
			item.SignedTransactionBytes = SignedTransactionBytes(t, body)
		}
		item.SignedTransactionBytes = item.SignedTransactionBytes[:len(item.SignedTransactionBytes)/2]
	}

	return item
}

func SignedTransactionBytes(t testing.T, body *pbcodec.TransactionBody) []byte {
	bodyBytes, err := cramberry.Marshal(body)
	require.NoError(t, err)

	signed, err := cramberry.Marshal(&pbcodec.SignedTransaction{BodyBytes: bodyBytes})
	require.NoError(t, err)

	return signed
}

// Block assembles a record block, items get their index in the block.
func Block(t testing.T, num uint64, items ...*pbcodec.RecordItem) *pbcodec.RecordBlock {
	blk := &pbcodec.RecordBlock{
		Number:       num,
		Hash:         []byte(fmt.Sprintf("%08x", num)),
		PreviousHash: []byte(fmt.Sprintf("%08x", num-1)),
	}

	for i, item := range items {
		item.Index = uint32(i)
		blk.Items = append(blk.Items, *item)
	}

	if len(blk.Items) > 0 {
		blk.ConsensusStart = blk.Items[0].Record.ConsensusTimestamp
		blk.ConsensusEnd = blk.Items[len(blk.Items)-1].Record.ConsensusTimestamp
	}

	return blk
}

func failInvalidComponent(t testing.T, tag string, component interface{}) {
	zlog.Info(fmt.Sprintf("invalid %s component of type %T", tag, component))
	require.FailNowf(t, "invalid component", "Invalid %s component of type %T", tag, component)
}
