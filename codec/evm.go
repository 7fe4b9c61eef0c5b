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
	"encoding/binary"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/ethereum/go-ethereum/common"
)

// EvmResultToOutput normalizes an EVM execution result. The call context is
// only known for ethereum transactions and is nil otherwise.
func EvmResultToOutput(in *pbcodec.ContractFunctionResult, callContext *pbcodec.InternalCallContext) *pbcodec.EvmTransactionResult {
	if in == nil {
		return nil
	}

	return &pbcodec.EvmTransactionResult{
		SenderID:            in.SenderID,
		ContractID:          in.ContractID,
		ResultData:          in.ContractCallResult,
		ErrorMessage:        in.ErrorMessage,
		GasUsed:             in.GasUsed,
		InternalCallContext: callContext,
	}
}

// EvmResultToTraceData translates emitted logs in emission order. Bytecode
// is optional.
func EvmResultToTraceData(in *pbcodec.ContractFunctionResult, bytecode *pbcodec.ContractBytecode) *pbcodec.TraceData {
	if in == nil {
		return nil
	}

	out := &pbcodec.EvmTraceData{}
	if len(in.LogInfo) > 0 {
		out.Logs = make([]pbcodec.EvmTransactionLog, len(in.LogInfo))
		for i, log := range in.LogInfo {
			out.Logs[i] = pbcodec.EvmTransactionLog{
				ContractID: log.ContractID,
				Data:       log.Data,
				Topics:     log.Topic,
			}
		}
	}

	if bytecode != nil {
		out.InitCode = bytecode.InitCode
		out.RuntimeBytecode = bytecode.RuntimeBytecode
	}

	return &pbcodec.TraceData{EvmTraceData: out}
}

// ValidatedAlias returns the EVM address when its embedded shard matches the
// contract's shard, nil otherwise.
func ValidatedAlias(evmAddress []byte, contractID *pbcodec.ContractID) []byte {
	if contractID == nil || len(evmAddress) != common.AddressLength {
		return nil
	}

	if ShardOf(common.BytesToAddress(evmAddress)) != contractID.ShardNum {
		return nil
	}

	return evmAddress
}

// ShardOf extracts the shard of a long-zero address, laid out as 4 bytes of
// shard, 8 bytes of realm and 8 bytes of entity number.
func ShardOf(address common.Address) int64 {
	return int64(binary.BigEndian.Uint32(address[0:4]))
}

// LongZeroAddress builds the EVM address mirroring an entity id.
func LongZeroAddress(shard, realm, num int64) common.Address {
	var out common.Address
	binary.BigEndian.PutUint32(out[0:4], uint32(shard))
	binary.BigEndian.PutUint64(out[4:12], uint64(realm))
	binary.BigEndian.PutUint64(out[12:20], uint64(num))
	return out
}
