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

type StateIdentifier uint8

const (
	StateIdentifier_UNKNOWN StateIdentifier = iota
	StateIdentifier_ACCOUNTS
	StateIdentifier_TOKENS
	StateIdentifier_NFTS
	StateIdentifier_TOPICS
	StateIdentifier_SCHEDULES
	StateIdentifier_FILES
	StateIdentifier_NODES
	StateIdentifier_PENDING_AIRDROPS
)

var StateIdentifier_name = map[StateIdentifier]string{
	StateIdentifier_UNKNOWN:          "UNKNOWN",
	StateIdentifier_ACCOUNTS:         "ACCOUNTS",
	StateIdentifier_TOKENS:           "TOKENS",
	StateIdentifier_NFTS:             "NFTS",
	StateIdentifier_TOPICS:           "TOPICS",
	StateIdentifier_SCHEDULES:        "SCHEDULES",
	StateIdentifier_FILES:            "FILES",
	StateIdentifier_NODES:            "NODES",
	StateIdentifier_PENDING_AIRDROPS: "PENDING_AIRDROPS",
}

// StateChange is either a map update or a map delete against one state
// partition.
type StateChange struct {
	StateID   StateIdentifier  `cramberry:"1"`
	MapUpdate *MapUpdateChange `cramberry:"2"`
	MapDelete *MapDeleteChange `cramberry:"3"`
}

type MapUpdateChange struct {
	Key   *MapChangeKey   `cramberry:"1"`
	Value *MapChangeValue `cramberry:"2"`
}

type MapDeleteChange struct {
	Key *MapChangeKey `cramberry:"1"`
}

// MapChangeKey has exactly one populated field.
type MapChangeKey struct {
	AccountIDKey        *AccountID        `cramberry:"1"`
	TokenIDKey          *TokenID          `cramberry:"2"`
	NftIDKey            *NftID            `cramberry:"3"`
	TopicIDKey          *TopicID          `cramberry:"4"`
	ScheduleIDKey       *ScheduleID       `cramberry:"5"`
	FileIDKey           *FileID           `cramberry:"6"`
	NodeIDKey           *uint64           `cramberry:"7"`
	PendingAirdropIDKey *PendingAirdropID `cramberry:"8"`
}

// MapChangeValue has exactly one populated field.
type MapChangeValue struct {
	AccountValue               *Account               `cramberry:"1"`
	TokenValue                 *Token                 `cramberry:"2"`
	NftValue                   *Nft                   `cramberry:"3"`
	TopicValue                 *Topic                 `cramberry:"4"`
	ScheduleValue              *Schedule              `cramberry:"5"`
	FileValue                  *File                  `cramberry:"6"`
	NodeValue                  *Node                  `cramberry:"7"`
	AccountPendingAirdropValue *AccountPendingAirdrop `cramberry:"8"`
}

type Account struct {
	AccountID     *AccountID `cramberry:"1"`
	SmartContract bool       `cramberry:"2"`
	Alias         []byte     `cramberry:"3"`
	Deleted       bool       `cramberry:"4"`
	EthereumNonce int64      `cramberry:"5"`
	Memo          string     `cramberry:"6"`
}

type Token struct {
	TokenID     *TokenID   `cramberry:"1"`
	TotalSupply int64      `cramberry:"2"`
	Name        string     `cramberry:"3"`
	Symbol      string     `cramberry:"4"`
	Decimals    uint32     `cramberry:"5"`
	Treasury    *AccountID `cramberry:"6"`
}

type Nft struct {
	NftID    *NftID `cramberry:"1"`
	Metadata []byte `cramberry:"2"`
	Deleted  bool   `cramberry:"3"`
}

type Topic struct {
	TopicID            *TopicID   `cramberry:"1"`
	SequenceNumber     int64      `cramberry:"2"`
	RunningHash        []byte     `cramberry:"3"`
	Memo               string     `cramberry:"4"`
	AutoRenewID        *AccountID `cramberry:"5"`
	RunningHashVersion uint64     `cramberry:"6"`
}

type Schedule struct {
	ScheduleID             *ScheduleID    `cramberry:"1"`
	Deleted                bool           `cramberry:"2"`
	Memo                   string         `cramberry:"3"`
	PayerAccountID         *AccountID     `cramberry:"4"`
	SchedulerAccountID     *AccountID     `cramberry:"5"`
	ScheduledTransactionID *TransactionID `cramberry:"6"`
	WaitForExpiry          bool           `cramberry:"7"`
}

type File struct {
	FileID   *FileID `cramberry:"1"`
	Contents []byte  `cramberry:"2"`
	Memo     string  `cramberry:"3"`
}

type Node struct {
	NodeID              uint64            `cramberry:"1"`
	AccountID           *AccountID        `cramberry:"2"`
	Description         string            `cramberry:"3"`
	GossipEndpoints     []ServiceEndpoint `cramberry:"4"`
	ServiceEndpoints    []ServiceEndpoint `cramberry:"5"`
	GossipCACertificate []byte            `cramberry:"6"`
	GrpcCertificateHash []byte            `cramberry:"7"`
}

type AccountPendingAirdrop struct {
	PendingAirdropValue *uint64 `cramberry:"1"`
}
