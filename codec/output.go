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

// SynthesizeOutput builds the typed output of the transaction, nil when its
// kind has none or when it failed. A schedule create that failed because an
// identical schedule exists still reports the existing schedule.
func SynthesizeOutput(trx *TransactionContext) *pbcodec.TransactionOutput {
	if !trx.Success && !isIdenticalScheduleCreate(trx) {
		return nil
	}

	switch trx.Kind {
	case pbcodec.TransactionKind_CONTRACT_CALL:
		return contractCallOutput(trx)
	case pbcodec.TransactionKind_CONTRACT_CREATE:
		return contractCreateOutput(trx)
	case pbcodec.TransactionKind_ETHEREUM_TRANSACTION:
		return ethereumOutput(trx)
	case pbcodec.TransactionKind_SCHEDULE_CREATE:
		return createScheduleOutput(trx)
	case pbcodec.TransactionKind_SCHEDULE_SIGN:
		return signScheduleOutput(trx)
	case pbcodec.TransactionKind_UTIL_PRNG:
		return utilPrngOutput(trx)
	case pbcodec.TransactionKind_CRYPTO_CREATE:
		return accountCreateOutput(trx)
	}

	return nil
}

func isIdenticalScheduleCreate(trx *TransactionContext) bool {
	return trx.Kind == pbcodec.TransactionKind_SCHEDULE_CREATE &&
		trx.Record.Status() == pbcodec.ResponseCode_IDENTICAL_SCHEDULE_ALREADY_CREATED
}

func contractCallOutput(trx *TransactionContext) *pbcodec.TransactionOutput {
	result := trx.Record.ContractCallResult
	if result == nil {
		return nil
	}

	return &pbcodec.TransactionOutput{
		ContractCall: &pbcodec.ContractCallOutput{EvmCallResult: EvmResultToOutput(result, nil)},
	}
}

func contractCreateOutput(trx *TransactionContext) *pbcodec.TransactionOutput {
	result := trx.Record.ContractCreateResult
	if result == nil {
		return nil
	}

	return &pbcodec.TransactionOutput{
		ContractCreate: &pbcodec.ContractCreateOutput{EvmCreateResult: EvmResultToOutput(result, nil)},
	}
}

// ethereumOutput folds the call context decoded from the raw ethereum
// transaction, the body itself does not carry gas, value nor call data.
func ethereumOutput(trx *TransactionContext) *pbcodec.TransactionOutput {
	result, isCreate := trx.Record.FunctionResult()
	if result == nil {
		return nil
	}

	evmResult := EvmResultToOutput(result, trx.ethereum.callContext())
	out := &pbcodec.EthereumOutput{EthereumHash: trx.Record.EthereumHash}
	if isCreate {
		out.EvmCreateResult = evmResult
	} else {
		out.EvmCallResult = evmResult
	}

	return &pbcodec.TransactionOutput{Ethereum: out}
}

func createScheduleOutput(trx *TransactionContext) *pbcodec.TransactionOutput {
	receipt := trx.Receipt()
	if receipt.ScheduleID == nil {
		return nil
	}

	return &pbcodec.TransactionOutput{
		CreateSchedule: &pbcodec.CreateScheduleOutput{
			ScheduleID:             receipt.ScheduleID,
			ScheduledTransactionID: receipt.ScheduledTransactionID,
		},
	}
}

// signScheduleOutput only exists when the signature made the schedule
// executable.
func signScheduleOutput(trx *TransactionContext) *pbcodec.TransactionOutput {
	receipt := trx.Receipt()
	if receipt.ScheduledTransactionID == nil {
		return nil
	}

	return &pbcodec.TransactionOutput{
		SignSchedule: &pbcodec.SignScheduleOutput{ScheduledTransactionID: receipt.ScheduledTransactionID},
	}
}

func utilPrngOutput(trx *TransactionContext) *pbcodec.TransactionOutput {
	record := trx.Record

	switch {
	case record.PrngNumber != nil:
		return &pbcodec.TransactionOutput{UtilPrng: &pbcodec.UtilPrngOutput{PrngNumber: record.PrngNumber}}
	case len(record.PrngBytes) > 0:
		return &pbcodec.TransactionOutput{UtilPrng: &pbcodec.UtilPrngOutput{PrngBytes: record.PrngBytes}}
	}

	return nil
}

func accountCreateOutput(trx *TransactionContext) *pbcodec.TransactionOutput {
	receipt := trx.Receipt()
	if receipt.AccountID == nil {
		return nil
	}

	return &pbcodec.TransactionOutput{
		AccountCreate: &pbcodec.AccountCreateOutput{CreatedAccountID: receipt.AccountID},
	}
}
