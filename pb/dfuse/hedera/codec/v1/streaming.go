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

// TopicMessage is the stored row for one consensus message. Timestamps are
// nanoseconds since epoch.
type TopicMessage struct {
	ConsensusTimestamp   int64      `cramberry:"1"`
	TopicID              *TopicID   `cramberry:"2"`
	Message              []byte     `cramberry:"3"`
	RunningHash          []byte     `cramberry:"4"`
	RunningHashVersion   *uint32    `cramberry:"5"`
	SequenceNumber       int64      `cramberry:"6"`
	ChunkNum             int32      `cramberry:"7"`
	ChunkTotal           int32      `cramberry:"8"`
	PayerAccountID       *AccountID `cramberry:"9"`
	ValidStartTimestamp  *int64     `cramberry:"10"`
	InitialTransactionID []byte     `cramberry:"11"`
}

type ConsensusTopicQuery struct {
	TopicID            *TopicID   `cramberry:"1"`
	ConsensusStartTime *Timestamp `cramberry:"2"`
	ConsensusEndTime   *Timestamp `cramberry:"3"`
	Limit              uint64     `cramberry:"4"`
}

type ConsensusTopicResponse struct {
	ConsensusTimestamp *Timestamp                 `cramberry:"1"`
	Message            []byte                     `cramberry:"2"`
	RunningHash        []byte                     `cramberry:"3"`
	SequenceNumber     uint64                     `cramberry:"4"`
	RunningHashVersion uint64                     `cramberry:"5"`
	ChunkInfo          *ConsensusMessageChunkInfo `cramberry:"6"`
}

type AddressBookServiceEndpoint struct {
	DomainName  string `cramberry:"1"`
	IPAddressV4 string `cramberry:"2"`
	Port        int32  `cramberry:"3"`
}

// AddressBookEntry is the stored row for one node of the address book.
type AddressBookEntry struct {
	ConsensusTimestamp int64                        `cramberry:"1"`
	NodeID             int64                        `cramberry:"2"`
	NodeAccountID      *AccountID                   `cramberry:"3"`
	Description        string                       `cramberry:"4"`
	Memo               string                       `cramberry:"5"`
	NodeCertHash       []byte                       `cramberry:"6"`
	PublicKey          string                       `cramberry:"7"`
	Stake              *int64                       `cramberry:"8"`
	ServiceEndpoints   []AddressBookServiceEndpoint `cramberry:"9"`
}

type AddressBookQuery struct {
	FileID *FileID `cramberry:"1"`
	Limit  int32   `cramberry:"2"`
}

type NodeAddress struct {
	NodeID           int64             `cramberry:"1"`
	NodeAccountID    *AccountID        `cramberry:"2"`
	Description      string            `cramberry:"3"`
	Memo             []byte            `cramberry:"4"`
	NodeCertHash     []byte            `cramberry:"5"`
	RSAPubKey        string            `cramberry:"6"`
	Stake            int64             `cramberry:"7"`
	ServiceEndpoints []ServiceEndpoint `cramberry:"8"`
}

type TransactionQuery struct {
	ConsensusTimestamp *Timestamp `cramberry:"1"`
}

type TransactionResponse struct {
	BlockNum    uint64                `cramberry:"1"`
	Index       uint32                `cramberry:"2"`
	Transaction *ProjectedTransaction `cramberry:"3"`
}

type BlockQuery struct {
	BlockNum uint64 `cramberry:"1"`
}
