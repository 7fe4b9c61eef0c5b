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

package pbcodec

//
/// Transaction result
//

type TransactionResult struct {
	Status                     ResponseCode        `cramberry:"1"`
	ConsensusTimestamp         *Timestamp          `cramberry:"2"`
	TransactionFeeCharged      uint64              `cramberry:"3"`
	TransferList               *TransferList       `cramberry:"4"`
	TokenTransferLists         []TokenTransferList `cramberry:"5"`
	AssessedCustomFees         []AssessedCustomFee `cramberry:"6"`
	AutomaticTokenAssociations []TokenAssociation  `cramberry:"7"`
	PaidStakingRewards         []AccountAmount     `cramberry:"8"`
	ParentConsensusTimestamp   *Timestamp          `cramberry:"9"`
	ScheduleRef                *ScheduleID         `cramberry:"10"`
	TransactionHash            []byte              `cramberry:"11"`
	TransactionID              *TransactionID      `cramberry:"12"`
}

//
/// Transaction output
//

type OutputKind uint8

const (
	OutputKind_NONE OutputKind = iota
	OutputKind_CONTRACT_CALL
	OutputKind_CONTRACT_CREATE
	OutputKind_ETHEREUM_CALL
	OutputKind_ETHEREUM_CREATE
	OutputKind_CREATE_SCHEDULE
	OutputKind_SIGN_SCHEDULE
	OutputKind_UTIL_PRNG
	OutputKind_ACCOUNT_CREATE
)

// TransactionOutput has exactly one populated field.
type TransactionOutput struct {
	ContractCall   *ContractCallOutput   `cramberry:"1"`
	ContractCreate *ContractCreateOutput `cramberry:"2"`
	Ethereum       *EthereumOutput       `cramberry:"3"`
	CreateSchedule *CreateScheduleOutput `cramberry:"4"`
	SignSchedule   *SignScheduleOutput   `cramberry:"5"`
	UtilPrng       *UtilPrngOutput       `cramberry:"6"`
	AccountCreate  *AccountCreateOutput  `cramberry:"7"`
}

type InternalCallContext struct {
	Gas      uint64 `cramberry:"1"`
	Value    []byte `cramberry:"2"`
	CallData []byte `cramberry:"3"`
}

type EvmTransactionResult struct {
	SenderID            *AccountID           `cramberry:"1"`
	ContractID          *ContractID          `cramberry:"2"`
	ResultData          []byte               `cramberry:"3"`
	ErrorMessage        string               `cramberry:"4"`
	GasUsed             uint64               `cramberry:"5"`
	InternalCallContext *InternalCallContext `cramberry:"6"`
}

type ContractCallOutput struct {
	EvmCallResult *EvmTransactionResult `cramberry:"1"`
}

type ContractCreateOutput struct {
	EvmCreateResult *EvmTransactionResult `cramberry:"1"`
}

// EthereumOutput carries either a call or a create result, never both.
type EthereumOutput struct {
	EvmCallResult   *EvmTransactionResult `cramberry:"1"`
	EvmCreateResult *EvmTransactionResult `cramberry:"2"`
	EthereumHash    []byte                `cramberry:"3"`
}

type CreateScheduleOutput struct {
	ScheduleID             *ScheduleID    `cramberry:"1"`
	ScheduledTransactionID *TransactionID `cramberry:"2"`
}

type SignScheduleOutput struct {
	ScheduledTransactionID *TransactionID `cramberry:"1"`
}

// UtilPrngOutput carries either PrngNumber or PrngBytes, never both.
type UtilPrngOutput struct {
	PrngNumber *int32 `cramberry:"1"`
	PrngBytes  []byte `cramberry:"2"`
}

type AccountCreateOutput struct {
	CreatedAccountID *AccountID `cramberry:"1"`
}

//
/// Trace data
//

type EvmTransactionLog struct {
	ContractID *ContractID `cramberry:"1"`
	Data       []byte      `cramberry:"2"`
	Topics     [][]byte    `cramberry:"3"`
}

type EvmTraceData struct {
	Logs            []EvmTransactionLog `cramberry:"1"`
	InitCode        []byte              `cramberry:"2"`
	RuntimeBytecode []byte              `cramberry:"3"`
}

type TraceData struct {
	EvmTraceData *EvmTraceData `cramberry:"1"`
}

//
/// Projected transaction & block
//

// NoPrevious is the PreviousIndex of the first projected transaction of a block.
const NoPrevious int32 = -1

type ProjectedTransaction struct {
	ConsensusTimestamp *Timestamp         `cramberry:"1"`
	Kind               TransactionKind    `cramberry:"2"`
	Body               *TransactionBody   `cramberry:"3"`
	Result             *TransactionResult `cramberry:"4"`
	Output             *TransactionOutput `cramberry:"5"`
	StateChanges       []StateChange      `cramberry:"6"`
	TraceData          *TraceData         `cramberry:"7"`

	// PreviousIndex is the position of the predecessor within the block's
	// transaction list, NoPrevious for the first one.
	PreviousIndex int32 `cramberry:"8"`
}

type ProjectedBlock struct {
	Number       uint64                 `cramberry:"1"`
	Hash         []byte                 `cramberry:"2"`
	PreviousHash []byte                 `cramberry:"3"`
	ConsensusEnd *Timestamp             `cramberry:"4"`
	Transactions []ProjectedTransaction `cramberry:"5"`
}
