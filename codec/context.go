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
	"errors"
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

var ErrMissingRecord = errors.New("record item has no transaction record")

// TransactionContext bundles one executed transaction: its decoded body, its
// record and the side payloads attached to it. It is built once by
// NewTransactionContext and never mutated afterwards.
type TransactionContext struct {
	Body     *pbcodec.TransactionBody
	Record   *pbcodec.TransactionRecord
	Sidecars []pbcodec.TransactionSidecarRecord

	Kind               pbcodec.TransactionKind
	Success            bool
	ConsensusTimestamp *pbcodec.Timestamp

	ethereum *ethereumTransaction
}

// ethereumTransaction is the subset of a raw ethereum transaction that the
// record does not repeat.
type ethereumTransaction struct {
	gas      uint64
	value    *uint256.Int
	callData []byte
	nonce    uint64
}

// NewTransactionContext decodes the signed transaction envelope of the item.
// A payload that cannot be decoded means corrupted upstream data and is
// returned as an error.
func NewTransactionContext(item *pbcodec.RecordItem) (*TransactionContext, error) {
	if item.Record == nil {
		return nil, ErrMissingRecord
	}

	consensusTimestamp := item.Record.ConsensusTimestamp

	signed := &pbcodec.SignedTransaction{}
	if err := cramberry.Unmarshal(item.SignedTransactionBytes, signed); err != nil {
		return nil, fmt.Errorf("transaction at %s: decode signed transaction: %w", consensusTimestamp, err)
	}

	body := &pbcodec.TransactionBody{}
	if err := cramberry.Unmarshal(signed.BodyBytes, body); err != nil {
		return nil, fmt.Errorf("transaction at %s: decode transaction body: %w", consensusTimestamp, err)
	}

	trx := &TransactionContext{
		Body:               body,
		Record:             item.Record,
		Sidecars:           item.Sidecars,
		Kind:               body.Kind(),
		Success:            item.Record.Status().IsSuccess(),
		ConsensusTimestamp: consensusTimestamp,
	}

	if body.EthereumTransaction != nil {
		trx.ethereum = parseEthereumTransaction(consensusTimestamp, body.EthereumTransaction.EthereumData)
	}

	if traceEnabled {
		zlog.Debug("transaction context",
			zap.Stringer("consensus_timestamp", consensusTimestamp),
			zap.Stringer("kind", trx.Kind),
			zap.Stringer("status", item.Record.Status()),
		)
	}

	return trx, nil
}

func (t *TransactionContext) Receipt() *pbcodec.TransactionReceipt {
	if t.Record.Receipt == nil {
		return &pbcodec.TransactionReceipt{}
	}
	return t.Record.Receipt
}

// PayerAccountID is the account that paid for the transaction, nil when the
// body carries no transaction id.
func (t *TransactionContext) PayerAccountID() *pbcodec.AccountID {
	if t.Body.TransactionID == nil {
		return nil
	}
	return t.Body.TransactionID.AccountID
}

// Bytecode returns the contract bytecode sidecar emitted at the same
// consensus timestamp, if any.
func (t *TransactionContext) Bytecode() *pbcodec.ContractBytecode {
	for i := range t.Sidecars {
		sidecar := &t.Sidecars[i]
		if sidecar.Bytecode != nil && sidecar.ConsensusTimestamp.Equal(t.ConsensusTimestamp) {
			return sidecar.Bytecode
		}
	}
	return nil
}

// parseEthereumTransaction decodes raw ethereum transaction bytes, legacy or
// typed. Malformed bytes are logged and yield nil.
func parseEthereumTransaction(consensusTimestamp *pbcodec.Timestamp, data []byte) *ethereumTransaction {
	if len(data) == 0 {
		return nil
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(data); err != nil {
		zlog.Warn("unable to decode ethereum transaction data, ignoring call context",
			zap.Stringer("consensus_timestamp", consensusTimestamp),
			zap.Int("data_length", len(data)),
			zap.Error(err),
		)
		return nil
	}

	value, overflow := uint256.FromBig(tx.Value())
	if overflow {
		zlog.Warn("ethereum transaction value overflows 256 bits, ignoring call context",
			zap.Stringer("consensus_timestamp", consensusTimestamp),
		)
		return nil
	}

	return &ethereumTransaction{
		gas:      tx.Gas(),
		value:    value,
		callData: tx.Data(),
		nonce:    tx.Nonce(),
	}
}

func (e *ethereumTransaction) callContext() *pbcodec.InternalCallContext {
	if e == nil {
		return nil
	}

	return &pbcodec.InternalCallContext{
		Gas:      e.gas,
		Value:    e.value.Bytes(),
		CallData: e.callData,
	}
}
