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

type ResponseCode int32

const (
	ResponseCode_OK                                     ResponseCode = 0
	ResponseCode_INVALID_TRANSACTION                    ResponseCode = 1
	ResponseCode_INVALID_SIGNATURE                      ResponseCode = 7
	ResponseCode_INSUFFICIENT_PAYER_BALANCE             ResponseCode = 10
	ResponseCode_SUCCESS                                ResponseCode = 22
	ResponseCode_INSUFFICIENT_GAS                       ResponseCode = 30
	ResponseCode_CONTRACT_REVERT_EXECUTED               ResponseCode = 33
	ResponseCode_INVALID_CONTRACT_ID                    ResponseCode = 16
	ResponseCode_INVALID_TOKEN_ID                       ResponseCode = 167
	ResponseCode_FEE_SCHEDULE_FILE_PART_UPLOADED        ResponseCode = 104
	ResponseCode_INVALID_SCHEDULE_ID                    ResponseCode = 201
	ResponseCode_IDENTICAL_SCHEDULE_ALREADY_CREATED     ResponseCode = 211
	ResponseCode_SUCCESS_BUT_MISSING_EXPECTED_OPERATION ResponseCode = 220
	ResponseCode_INVALID_TOPIC_ID                       ResponseCode = 150
)

var ResponseCode_name = map[ResponseCode]string{
	ResponseCode_OK:                                     "OK",
	ResponseCode_INVALID_TRANSACTION:                    "INVALID_TRANSACTION",
	ResponseCode_INVALID_SIGNATURE:                      "INVALID_SIGNATURE",
	ResponseCode_INSUFFICIENT_PAYER_BALANCE:             "INSUFFICIENT_PAYER_BALANCE",
	ResponseCode_SUCCESS:                                "SUCCESS",
	ResponseCode_INSUFFICIENT_GAS:                       "INSUFFICIENT_GAS",
	ResponseCode_CONTRACT_REVERT_EXECUTED:               "CONTRACT_REVERT_EXECUTED",
	ResponseCode_INVALID_CONTRACT_ID:                    "INVALID_CONTRACT_ID",
	ResponseCode_INVALID_TOKEN_ID:                       "INVALID_TOKEN_ID",
	ResponseCode_FEE_SCHEDULE_FILE_PART_UPLOADED:        "FEE_SCHEDULE_FILE_PART_UPLOADED",
	ResponseCode_INVALID_SCHEDULE_ID:                    "INVALID_SCHEDULE_ID",
	ResponseCode_IDENTICAL_SCHEDULE_ALREADY_CREATED:     "IDENTICAL_SCHEDULE_ALREADY_CREATED",
	ResponseCode_SUCCESS_BUT_MISSING_EXPECTED_OPERATION: "SUCCESS_BUT_MISSING_EXPECTED_OPERATION",
	ResponseCode_INVALID_TOPIC_ID:                       "INVALID_TOPIC_ID",
}

type AccountAmount struct {
	AccountID  *AccountID `cramberry:"1"`
	Amount     int64      `cramberry:"2"`
	IsApproval bool       `cramberry:"3"`
}

type TransferList struct {
	AccountAmounts []AccountAmount `cramberry:"1"`
}

type NftTransfer struct {
	SenderAccountID   *AccountID `cramberry:"1"`
	ReceiverAccountID *AccountID `cramberry:"2"`
	SerialNumber      int64      `cramberry:"3"`
	IsApproval        bool       `cramberry:"4"`
}

type TokenTransferList struct {
	Token            *TokenID        `cramberry:"1"`
	Transfers        []AccountAmount `cramberry:"2"`
	NftTransfers     []NftTransfer   `cramberry:"3"`
	ExpectedDecimals *uint32         `cramberry:"4"`
}

type AssessedCustomFee struct {
	Amount                   int64       `cramberry:"1"`
	TokenID                  *TokenID    `cramberry:"2"`
	FeeCollectorAccountID    *AccountID  `cramberry:"3"`
	EffectivePayerAccountIDs []AccountID `cramberry:"4"`
}

type TokenAssociation struct {
	TokenID   *TokenID   `cramberry:"1"`
	AccountID *AccountID `cramberry:"2"`
}

type PendingAirdropRecord struct {
	PendingAirdropID *PendingAirdropID `cramberry:"1"`
	Amount           *uint64           `cramberry:"2"`
}

type TransactionReceipt struct {
	Status                  ResponseCode   `cramberry:"1"`
	AccountID               *AccountID     `cramberry:"2"`
	FileID                  *FileID        `cramberry:"3"`
	ContractID              *ContractID    `cramberry:"4"`
	TopicID                 *TopicID       `cramberry:"5"`
	TokenID                 *TokenID       `cramberry:"6"`
	ScheduleID              *ScheduleID    `cramberry:"7"`
	ScheduledTransactionID  *TransactionID `cramberry:"8"`
	TopicSequenceNumber     uint64         `cramberry:"9"`
	TopicRunningHash        []byte         `cramberry:"10"`
	TopicRunningHashVersion uint64         `cramberry:"11"`
	NewTotalSupply          uint64         `cramberry:"12"`
	SerialNumbers           []int64        `cramberry:"13"`
	NodeID                  uint64         `cramberry:"14"`
}

type ContractLoginfo struct {
	ContractID *ContractID `cramberry:"1"`
	Bloom      []byte      `cramberry:"2"`
	Topic      [][]byte    `cramberry:"3"`
	Data       []byte      `cramberry:"4"`
}

// ContractFunctionResult is the already computed outcome of an EVM
// execution, as found in a transaction record.
type ContractFunctionResult struct {
	ContractID         *ContractID       `cramberry:"1"`
	ContractCallResult []byte            `cramberry:"2"`
	ErrorMessage       string            `cramberry:"3"`
	Bloom              []byte            `cramberry:"4"`
	GasUsed            uint64            `cramberry:"5"`
	LogInfo            []ContractLoginfo `cramberry:"6"`
	CreatedContractIDs []ContractID      `cramberry:"7"`
	EvmAddress         []byte            `cramberry:"8"`
	Gas                int64             `cramberry:"9"`
	Amount             int64             `cramberry:"10"`
	FunctionParameters []byte            `cramberry:"11"`
	SenderID           *AccountID        `cramberry:"12"`
	SignerNonce        *int64            `cramberry:"13"`
}

type TransactionRecord struct {
	Receipt                    *TransactionReceipt     `cramberry:"1"`
	TransactionHash            []byte                  `cramberry:"2"`
	ConsensusTimestamp         *Timestamp              `cramberry:"3"`
	TransactionID              *TransactionID          `cramberry:"4"`
	Memo                       string                  `cramberry:"5"`
	TransactionFee             uint64                  `cramberry:"6"`
	ContractCallResult         *ContractFunctionResult `cramberry:"7"`
	ContractCreateResult       *ContractFunctionResult `cramberry:"8"`
	TransferList               *TransferList           `cramberry:"9"`
	TokenTransferLists         []TokenTransferList     `cramberry:"10"`
	ScheduleRef                *ScheduleID             `cramberry:"11"`
	AssessedCustomFees         []AssessedCustomFee     `cramberry:"12"`
	AutomaticTokenAssociations []TokenAssociation      `cramberry:"13"`
	ParentConsensusTimestamp   *Timestamp              `cramberry:"14"`
	Alias                      []byte                  `cramberry:"15"`
	EthereumHash               []byte                  `cramberry:"16"`
	PaidStakingRewards         []AccountAmount         `cramberry:"17"`
	PrngBytes                  []byte                  `cramberry:"18"`
	PrngNumber                 *int32                  `cramberry:"19"`
	EvmAddress                 []byte                  `cramberry:"20"`
	NewPendingAirdrops         []PendingAirdropRecord  `cramberry:"21"`
}

type ContractBytecode struct {
	ContractID      *ContractID `cramberry:"1"`
	InitCode        []byte      `cramberry:"2"`
	RuntimeBytecode []byte      `cramberry:"3"`
}

type TransactionSidecarRecord struct {
	ConsensusTimestamp *Timestamp        `cramberry:"1"`
	MigrationRecord    bool              `cramberry:"2"`
	Bytecode           *ContractBytecode `cramberry:"3"`
}

// RecordItem is one executed transaction as handed over by the record file
// parser.
type RecordItem struct {
	SignedTransactionBytes []byte                     `cramberry:"1"`
	Record                 *TransactionRecord         `cramberry:"2"`
	Sidecars               []TransactionSidecarRecord `cramberry:"3"`
	Index                  uint32                     `cramberry:"4"`
}

type RecordBlock struct {
	Number         uint64       `cramberry:"1"`
	Hash           []byte       `cramberry:"2"`
	PreviousHash   []byte       `cramberry:"3"`
	ConsensusStart *Timestamp   `cramberry:"4"`
	ConsensusEnd   *Timestamp   `cramberry:"5"`
	HapiVersion    string       `cramberry:"6"`
	Items          []RecordItem `cramberry:"7"`
}
