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
	"encoding/hex"
	"net"

	"github.com/blockberries/cramberry/pkg/cramberry"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"go.uber.org/zap"
)

// TopicMessages derives one stored message per successful submit message
// transaction of the block. Sequence number and running hash come from the
// TOPICS state change of the transaction.
func TopicMessages(blk *pbcodec.ProjectedBlock) (out []*pbcodec.TopicMessage) {
	for i := range blk.Transactions {
		trx := &blk.Transactions[i]
		if trx.Kind != pbcodec.TransactionKind_CONSENSUS_SUBMIT_MESSAGE || !trx.IsSuccess() {
			continue
		}

		if msg := topicMessage(trx); msg != nil {
			out = append(out, msg)
		}
	}
	return out
}

func topicMessage(trx *pbcodec.ProjectedTransaction) *pbcodec.TopicMessage {
	body := trx.Body.ConsensusSubmitMessage
	if body == nil {
		return nil
	}

	topic := submittedTopic(trx.StateChanges)
	if topic == nil {
		zlog.Warn("submit message transaction without topic state change, skipping", zap.Stringer("consensus_timestamp", trx.ConsensusTimestamp))
		return nil
	}

	msg := &pbcodec.TopicMessage{
		ConsensusTimestamp: trx.ConsensusTimestamp.UnixNano(),
		TopicID:            body.TopicID,
		Message:            body.Message,
		RunningHash:        topic.RunningHash,
		SequenceNumber:     topic.SequenceNumber,
	}

	if topic.RunningHashVersion != 0 {
		version := uint32(topic.RunningHashVersion)
		msg.RunningHashVersion = &version
	}

	if trxID := trx.Body.TransactionID; trxID != nil {
		msg.PayerAccountID = trxID.AccountID
		if trxID.TransactionValidStart != nil {
			validStart := trxID.TransactionValidStart.UnixNano()
			msg.ValidStartTimestamp = &validStart
		}
	}

	if chunk := body.ChunkInfo; chunk != nil {
		msg.ChunkNum = chunk.Number
		msg.ChunkTotal = chunk.Total

		if chunk.InitialTransactionID != nil {
			initial, err := cramberry.Marshal(chunk.InitialTransactionID)
			if err != nil {
				zlog.Warn("unable to encode initial transaction id", zap.Stringer("consensus_timestamp", trx.ConsensusTimestamp), zap.Error(err))
			} else {
				msg.InitialTransactionID = initial
			}
		}
	}

	return msg
}

func submittedTopic(changes []pbcodec.StateChange) *pbcodec.Topic {
	for i := range changes {
		change := &changes[i]
		if change.StateID == pbcodec.StateIdentifier_TOPICS && change.MapUpdate != nil && change.MapUpdate.Value != nil {
			return change.MapUpdate.Value.TopicValue
		}
	}
	return nil
}

// AddressBookEntries derives the address book rows from the NODES updates
// of the block. When a node is updated many times, the last update wins.
func AddressBookEntries(blk *pbcodec.ProjectedBlock) (out []*pbcodec.AddressBookEntry) {
	positions := map[uint64]int{}

	for i := range blk.Transactions {
		trx := &blk.Transactions[i]
		if !trx.IsSuccess() {
			continue
		}

		for j := range trx.StateChanges {
			change := &trx.StateChanges[j]
			if change.StateID != pbcodec.StateIdentifier_NODES || change.MapUpdate == nil || change.MapUpdate.Value == nil {
				continue
			}

			node := change.MapUpdate.Value.NodeValue
			if node == nil {
				continue
			}

			entry := addressBookEntry(trx.ConsensusTimestamp.UnixNano(), node)
			if position, found := positions[node.NodeID]; found {
				out[position] = entry
				continue
			}

			positions[node.NodeID] = len(out)
			out = append(out, entry)
		}
	}

	return out
}

func addressBookEntry(consensusTimestamp int64, node *pbcodec.Node) *pbcodec.AddressBookEntry {
	entry := &pbcodec.AddressBookEntry{
		ConsensusTimestamp: consensusTimestamp,
		NodeID:             int64(node.NodeID),
		NodeAccountID:      node.AccountID,
		Description:        node.Description,
		NodeCertHash:       node.GrpcCertificateHash,
	}

	if len(node.GossipCACertificate) > 0 {
		entry.PublicKey = hex.EncodeToString(node.GossipCACertificate)
	}

	for _, endpoint := range node.ServiceEndpoints {
		stored := pbcodec.AddressBookServiceEndpoint{
			DomainName: endpoint.DomainName,
			Port:       endpoint.Port,
		}
		if len(endpoint.IPAddressV4) == net.IPv4len {
			stored.IPAddressV4 = net.IP(endpoint.IPAddressV4).String()
		}

		entry.ServiceEndpoints = append(entry.ServiceEndpoints, stored)
	}

	return entry
}
