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

type TransactionKind uint16

const (
	TransactionKind_UNKNOWN TransactionKind = iota
	TransactionKind_CRYPTO_TRANSFER
	TransactionKind_CRYPTO_CREATE
	TransactionKind_CONTRACT_CALL
	TransactionKind_CONTRACT_CREATE
	TransactionKind_CONTRACT_UPDATE
	TransactionKind_CONTRACT_DELETE
	TransactionKind_ETHEREUM_TRANSACTION
	TransactionKind_SCHEDULE_CREATE
	TransactionKind_SCHEDULE_SIGN
	TransactionKind_SCHEDULE_DELETE
	TransactionKind_TOKEN_CREATE
	TransactionKind_TOKEN_MINT
	TransactionKind_TOKEN_BURN
	TransactionKind_TOKEN_WIPE
	TransactionKind_TOKEN_AIRDROP
	TransactionKind_CONSENSUS_CREATE_TOPIC
	TransactionKind_CONSENSUS_SUBMIT_MESSAGE
	TransactionKind_FILE_CREATE
	TransactionKind_NODE_CREATE
	TransactionKind_UTIL_PRNG
)

var TransactionKind_name = map[TransactionKind]string{
	TransactionKind_UNKNOWN:                  "UNKNOWN",
	TransactionKind_CRYPTO_TRANSFER:          "CRYPTO_TRANSFER",
	TransactionKind_CRYPTO_CREATE:            "CRYPTO_CREATE",
	TransactionKind_CONTRACT_CALL:            "CONTRACT_CALL",
	TransactionKind_CONTRACT_CREATE:          "CONTRACT_CREATE",
	TransactionKind_CONTRACT_UPDATE:          "CONTRACT_UPDATE",
	TransactionKind_CONTRACT_DELETE:          "CONTRACT_DELETE",
	TransactionKind_ETHEREUM_TRANSACTION:     "ETHEREUM_TRANSACTION",
	TransactionKind_SCHEDULE_CREATE:          "SCHEDULE_CREATE",
	TransactionKind_SCHEDULE_SIGN:            "SCHEDULE_SIGN",
	TransactionKind_SCHEDULE_DELETE:          "SCHEDULE_DELETE",
	TransactionKind_TOKEN_CREATE:             "TOKEN_CREATE",
	TransactionKind_TOKEN_MINT:               "TOKEN_MINT",
	TransactionKind_TOKEN_BURN:               "TOKEN_BURN",
	TransactionKind_TOKEN_WIPE:               "TOKEN_WIPE",
	TransactionKind_TOKEN_AIRDROP:            "TOKEN_AIRDROP",
	TransactionKind_CONSENSUS_CREATE_TOPIC:   "CONSENSUS_CREATE_TOPIC",
	TransactionKind_CONSENSUS_SUBMIT_MESSAGE: "CONSENSUS_SUBMIT_MESSAGE",
	TransactionKind_FILE_CREATE:              "FILE_CREATE",
	TransactionKind_NODE_CREATE:              "NODE_CREATE",
	TransactionKind_UTIL_PRNG:                "UTIL_PRNG",
}

// SignedTransaction is the envelope found in a record item. BodyBytes holds
// the encoded TransactionBody.
type SignedTransaction struct {
	BodyBytes    []byte          `cramberry:"1"`
	SignatureMap []SignaturePair `cramberry:"2"`
}

type SignaturePair struct {
	PubKeyPrefix []byte `cramberry:"1"`
	Ed25519      []byte `cramberry:"2"`
	ECDSA        []byte `cramberry:"3"`
}

// TransactionBody carries the common header plus exactly one kind specific
// field. See Kind().
type TransactionBody struct {
	TransactionID  *TransactionID `cramberry:"1"`
	NodeAccountID  *AccountID     `cramberry:"2"`
	TransactionFee uint64         `cramberry:"3"`
	Memo           string         `cramberry:"4"`

	CryptoTransfer         *CryptoTransferBody         `cramberry:"10"`
	CryptoCreate           *CryptoCreateBody           `cramberry:"11"`
	ContractCall           *ContractCallBody           `cramberry:"12"`
	ContractCreate         *ContractCreateBody         `cramberry:"13"`
	ContractUpdate         *ContractUpdateBody         `cramberry:"14"`
	ContractDelete         *ContractDeleteBody         `cramberry:"15"`
	EthereumTransaction    *EthereumTransactionBody    `cramberry:"16"`
	ScheduleCreate         *ScheduleCreateBody         `cramberry:"17"`
	ScheduleSign           *ScheduleSignBody           `cramberry:"18"`
	ScheduleDelete         *ScheduleDeleteBody         `cramberry:"19"`
	TokenCreate            *TokenCreateBody            `cramberry:"20"`
	TokenMint              *TokenMintBody              `cramberry:"21"`
	TokenBurn              *TokenBurnBody              `cramberry:"22"`
	TokenWipe              *TokenWipeBody              `cramberry:"23"`
	TokenAirdrop           *TokenAirdropBody           `cramberry:"24"`
	ConsensusCreateTopic   *ConsensusCreateTopicBody   `cramberry:"25"`
	ConsensusSubmitMessage *ConsensusSubmitMessageBody `cramberry:"26"`
	FileCreate             *FileCreateBody             `cramberry:"27"`
	NodeCreate             *NodeCreateBody             `cramberry:"28"`
	UtilPrng               *UtilPrngBody               `cramberry:"29"`
}

type CryptoTransferBody struct {
	Transfers      *TransferList       `cramberry:"1"`
	TokenTransfers []TokenTransferList `cramberry:"2"`
}

type CryptoCreateBody struct {
	InitialBalance uint64 `cramberry:"1"`
	Memo           string `cramberry:"2"`
	Alias          []byte `cramberry:"3"`
}

type ContractCallBody struct {
	ContractID         *ContractID `cramberry:"1"`
	Gas                int64       `cramberry:"2"`
	Amount             int64       `cramberry:"3"`
	FunctionParameters []byte      `cramberry:"4"`
}

type ContractCreateBody struct {
	FileID                *FileID `cramberry:"1"`
	InitCode              []byte  `cramberry:"2"`
	Gas                   int64   `cramberry:"3"`
	InitialBalance        int64   `cramberry:"4"`
	ConstructorParameters []byte  `cramberry:"5"`
	Memo                  string  `cramberry:"6"`
}

type ContractUpdateBody struct {
	ContractID *ContractID `cramberry:"1"`
	Memo       string      `cramberry:"2"`
}

type ContractDeleteBody struct {
	ContractID        *ContractID `cramberry:"1"`
	TransferAccountID *AccountID  `cramberry:"2"`
}

// EthereumTransactionBody holds the raw signed ethereum transaction. Gas,
// value and call data only live inside EthereumData.
type EthereumTransactionBody struct {
	EthereumData    []byte  `cramberry:"1"`
	CallData        *FileID `cramberry:"2"`
	MaxGasAllowance int64   `cramberry:"3"`
}

type ScheduleCreateBody struct {
	ScheduledTransactionBody []byte     `cramberry:"1"`
	Memo                     string     `cramberry:"2"`
	PayerAccountID           *AccountID `cramberry:"3"`
	WaitForExpiry            bool       `cramberry:"4"`
}

type ScheduleSignBody struct {
	ScheduleID *ScheduleID `cramberry:"1"`
}

type ScheduleDeleteBody struct {
	ScheduleID *ScheduleID `cramberry:"1"`
}

type TokenCreateBody struct {
	Name          string     `cramberry:"1"`
	Symbol        string     `cramberry:"2"`
	Decimals      uint32     `cramberry:"3"`
	InitialSupply uint64     `cramberry:"4"`
	Treasury      *AccountID `cramberry:"5"`
	NonFungible   bool       `cramberry:"6"`
}

type TokenMintBody struct {
	Token    *TokenID `cramberry:"1"`
	Amount   uint64   `cramberry:"2"`
	Metadata [][]byte `cramberry:"3"`
}

type TokenBurnBody struct {
	Token         *TokenID `cramberry:"1"`
	Amount        uint64   `cramberry:"2"`
	SerialNumbers []int64  `cramberry:"3"`
}

type TokenWipeBody struct {
	Token         *TokenID   `cramberry:"1"`
	Account       *AccountID `cramberry:"2"`
	Amount        uint64     `cramberry:"3"`
	SerialNumbers []int64    `cramberry:"4"`
}

type TokenAirdropBody struct {
	TokenTransfers []TokenTransferList `cramberry:"1"`
}

type ConsensusCreateTopicBody struct {
	Memo             string     `cramberry:"1"`
	AutoRenewAccount *AccountID `cramberry:"2"`
}

type ConsensusMessageChunkInfo struct {
	InitialTransactionID *TransactionID `cramberry:"1"`
	Total                int32          `cramberry:"2"`
	Number               int32          `cramberry:"3"`
}

type ConsensusSubmitMessageBody struct {
	TopicID   *TopicID                   `cramberry:"1"`
	Message   []byte                     `cramberry:"2"`
	ChunkInfo *ConsensusMessageChunkInfo `cramberry:"3"`
}

type FileCreateBody struct {
	Contents []byte `cramberry:"1"`
	Memo     string `cramberry:"2"`
}

type ServiceEndpoint struct {
	IPAddressV4 []byte `cramberry:"1"`
	Port        int32  `cramberry:"2"`
	DomainName  string `cramberry:"3"`
}

type NodeCreateBody struct {
	AccountID           *AccountID        `cramberry:"1"`
	Description         string            `cramberry:"2"`
	GossipEndpoints     []ServiceEndpoint `cramberry:"3"`
	ServiceEndpoints    []ServiceEndpoint `cramberry:"4"`
	GossipCACertificate []byte            `cramberry:"5"`
	GrpcCertificateHash []byte            `cramberry:"6"`
	AdminKey            []byte            `cramberry:"7"`
}

type UtilPrngBody struct {
	Range int32 `cramberry:"1"`
}
