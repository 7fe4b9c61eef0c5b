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

package kv

import (
	"encoding/binary"
	"fmt"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
)

const (
	TblPrefixTrxs      = 0x00
	TblPrefixBlocks    = 0x01
	TblPrefixTopicMsgs = 0x02
	TblPrefixNodes     = 0x03
)

const (
	trxKeyLen      = 1 + 8
	blockKeyLen    = 1 + 8
	topicPrefixLen = 1 + 8 + 8 + 8
	topicMsgKeyLen = topicPrefixLen + 8
	nodeKeyLen     = 1 + 8
)

var Keys Keyer

type Keyer struct{}

// Blocks virtual table, block numbers are inverted so the last written block
// sorts first.

func (Keyer) PackBlockKey(blockNum uint64) []byte {
	key := make([]byte, blockKeyLen)
	key[0] = TblPrefixBlocks
	binary.BigEndian.PutUint64(key[1:], ^blockNum)
	return key
}

func (Keyer) UnpackBlockKey(key []byte) uint64 {
	if len(key) != blockKeyLen {
		panic(fmt.Sprintf("invalid block key length %d", len(key)))
	}
	return ^binary.BigEndian.Uint64(key[1:])
}

func (Keyer) StartOfBlocksTable() []byte { return []byte{TblPrefixBlocks} }
func (Keyer) EndOfBlocksTable() []byte   { return []byte{TblPrefixBlocks + 1} }

// Trxs virtual table, keyed by consensus timestamp in nanoseconds.

func (Keyer) PackTrxKey(consensusTimestamp int64) []byte {
	key := make([]byte, trxKeyLen)
	key[0] = TblPrefixTrxs
	binary.BigEndian.PutUint64(key[1:], uint64(consensusTimestamp))
	return key
}

func (Keyer) UnpackTrxKey(key []byte) int64 {
	if len(key) != trxKeyLen {
		panic(fmt.Sprintf("invalid trx key length %d", len(key)))
	}
	return int64(binary.BigEndian.Uint64(key[1:]))
}

func (Keyer) StartOfTrxsTable() []byte { return []byte{TblPrefixTrxs} }
func (Keyer) EndOfTrxsTable() []byte   { return []byte{TblPrefixTrxs + 1} }

// Topic messages virtual table, keyed by topic then consensus timestamp.

func (k Keyer) PackTopicMessageKey(topicID *pbcodec.TopicID, consensusTimestamp int64) []byte {
	key := make([]byte, topicMsgKeyLen)
	copy(key, k.PackTopicMessagePrefix(topicID))
	binary.BigEndian.PutUint64(key[topicPrefixLen:], uint64(consensusTimestamp))
	return key
}

func (Keyer) PackTopicMessagePrefix(topicID *pbcodec.TopicID) []byte {
	key := make([]byte, topicPrefixLen)
	key[0] = TblPrefixTopicMsgs
	binary.BigEndian.PutUint64(key[1:], uint64(topicID.ShardNum))
	binary.BigEndian.PutUint64(key[9:], uint64(topicID.RealmNum))
	binary.BigEndian.PutUint64(key[17:], uint64(topicID.TopicNum))
	return key
}

func (Keyer) UnpackTopicMessageKey(key []byte) (topicID *pbcodec.TopicID, consensusTimestamp int64) {
	if len(key) != topicMsgKeyLen {
		panic(fmt.Sprintf("invalid topic message key length %d", len(key)))
	}

	topicID = &pbcodec.TopicID{
		ShardNum: int64(binary.BigEndian.Uint64(key[1:])),
		RealmNum: int64(binary.BigEndian.Uint64(key[9:])),
		TopicNum: int64(binary.BigEndian.Uint64(key[17:])),
	}
	return topicID, int64(binary.BigEndian.Uint64(key[topicPrefixLen:]))
}

func (Keyer) StartOfTopicMessagesTable() []byte { return []byte{TblPrefixTopicMsgs} }
func (Keyer) EndOfTopicMessagesTable() []byte   { return []byte{TblPrefixTopicMsgs + 1} }

// Nodes virtual table, one address book entry per node id.

func (Keyer) PackNodeKey(nodeID int64) []byte {
	key := make([]byte, nodeKeyLen)
	key[0] = TblPrefixNodes
	binary.BigEndian.PutUint64(key[1:], uint64(nodeID))
	return key
}

func (Keyer) UnpackNodeKey(key []byte) int64 {
	if len(key) != nodeKeyLen {
		panic(fmt.Sprintf("invalid node key length %d", len(key)))
	}
	return int64(binary.BigEndian.Uint64(key[1:]))
}

func (Keyer) StartOfNodesTable() []byte { return []byte{TblPrefixNodes} }
func (Keyer) EndOfNodesTable() []byte   { return []byte{TblPrefixNodes + 1} }
