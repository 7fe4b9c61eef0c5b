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

// ProjectResult builds the common transaction result out of the record. Parent
// timestamp and schedule reference are only set when the record has them.
func ProjectResult(trx *TransactionContext) *pbcodec.TransactionResult {
	record := trx.Record

	out := &pbcodec.TransactionResult{
		Status:                     record.Status(),
		ConsensusTimestamp:         record.ConsensusTimestamp,
		TransactionFeeCharged:      record.TransactionFee,
		TransferList:               record.TransferList,
		TokenTransferLists:         record.TokenTransferLists,
		AssessedCustomFees:         record.AssessedCustomFees,
		AutomaticTokenAssociations: record.AutomaticTokenAssociations,
		PaidStakingRewards:         record.PaidStakingRewards,
		TransactionHash:            record.TransactionHash,
		TransactionID:              record.TransactionID,
	}

	if record.ParentConsensusTimestamp != nil {
		out.ParentConsensusTimestamp = record.ParentConsensusTimestamp
	}

	if record.ScheduleRef != nil {
		out.ScheduleRef = record.ScheduleRef
	}

	return out
}
