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
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
)

// ProjectTransaction combines result, output, state changes and trace data
// of one transaction. The returned value is not linked yet, see Chain.
func ProjectTransaction(trx *TransactionContext) pbcodec.ProjectedTransaction {
	return pbcodec.ProjectedTransaction{
		ConsensusTimestamp: trx.ConsensusTimestamp,
		Kind:               trx.Kind,
		Body:               trx.Body,
		Result:             ProjectResult(trx),
		Output:             SynthesizeOutput(trx),
		StateChanges:       SynthesizeStateChanges(trx),
		TraceData:          synthesizeTraceData(trx),
		PreviousIndex:      pbcodec.NoPrevious,
	}
}

func ProjectRecordItem(item *pbcodec.RecordItem) (pbcodec.ProjectedTransaction, error) {
	trx, err := NewTransactionContext(item)
	if err != nil {
		return pbcodec.ProjectedTransaction{}, err
	}

	return ProjectTransaction(trx), nil
}

// synthesizeTraceData is only attached to contract touching kinds.
func synthesizeTraceData(trx *TransactionContext) *pbcodec.TraceData {
	if !trx.Success {
		return nil
	}

	switch trx.Kind {
	case pbcodec.TransactionKind_CONTRACT_CALL:
		return EvmResultToTraceData(trx.Record.ContractCallResult, nil)
	case pbcodec.TransactionKind_CONTRACT_CREATE:
		return EvmResultToTraceData(trx.Record.ContractCreateResult, trx.Bytecode())
	case pbcodec.TransactionKind_ETHEREUM_TRANSACTION:
		result, isCreate := trx.Record.FunctionResult()
		if isCreate {
			return EvmResultToTraceData(result, trx.Bytecode())
		}
		return EvmResultToTraceData(result, nil)
	}

	return nil
}
