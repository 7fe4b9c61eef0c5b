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

type Timestamp struct {
	Seconds int64 `cramberry:"1"`
	Nanos   int32 `cramberry:"2"`
}

type AccountID struct {
	ShardNum   int64 `cramberry:"1"`
	RealmNum   int64 `cramberry:"2"`
	AccountNum int64 `cramberry:"3"`
}

type ContractID struct {
	ShardNum    int64 `cramberry:"1"`
	RealmNum    int64 `cramberry:"2"`
	ContractNum int64 `cramberry:"3"`
}

type TokenID struct {
	ShardNum int64 `cramberry:"1"`
	RealmNum int64 `cramberry:"2"`
	TokenNum int64 `cramberry:"3"`
}

type TopicID struct {
	ShardNum int64 `cramberry:"1"`
	RealmNum int64 `cramberry:"2"`
	TopicNum int64 `cramberry:"3"`
}

type ScheduleID struct {
	ShardNum    int64 `cramberry:"1"`
	RealmNum    int64 `cramberry:"2"`
	ScheduleNum int64 `cramberry:"3"`
}

type FileID struct {
	ShardNum int64 `cramberry:"1"`
	RealmNum int64 `cramberry:"2"`
	FileNum  int64 `cramberry:"3"`
}

type NftID struct {
	TokenID      *TokenID `cramberry:"1"`
	SerialNumber int64    `cramberry:"2"`
}

// PendingAirdropID identifies one pending airdrop. Exactly one of
// FungibleTokenType or NonFungibleToken is set.
type PendingAirdropID struct {
	SenderID          *AccountID `cramberry:"1"`
	ReceiverID        *AccountID `cramberry:"2"`
	FungibleTokenType *TokenID   `cramberry:"3"`
	NonFungibleToken  *NftID     `cramberry:"4"`
}

type TransactionID struct {
	TransactionValidStart *Timestamp `cramberry:"1"`
	AccountID             *AccountID `cramberry:"2"`
	Scheduled             bool       `cramberry:"3"`
	Nonce                 int32      `cramberry:"4"`
}
