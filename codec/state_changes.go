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
	"github.com/ethereum/go-ethereum/common"
)

// SynthesizeStateChanges builds the ordered state mutations of the
// transaction. Failed transactions and kinds without side effects yield nil.
// Order matters, a later entry for the same key is a later write.
func SynthesizeStateChanges(trx *TransactionContext) []pbcodec.StateChange {
	if !trx.Success {
		return nil
	}

	switch trx.Kind {
	case pbcodec.TransactionKind_CONTRACT_CALL:
		return contractResultChanges(trx.Record.ContractCallResult)
	case pbcodec.TransactionKind_CONTRACT_CREATE:
		return contractResultChanges(trx.Record.ContractCreateResult)
	case pbcodec.TransactionKind_CONTRACT_UPDATE:
		return contractUpdateChanges(trx)
	case pbcodec.TransactionKind_CONTRACT_DELETE:
		return contractDeleteChanges(trx)
	case pbcodec.TransactionKind_ETHEREUM_TRANSACTION:
		return ethereumChanges(trx)
	case pbcodec.TransactionKind_CRYPTO_CREATE:
		return cryptoCreateChanges(trx)
	case pbcodec.TransactionKind_SCHEDULE_CREATE:
		return scheduleCreateChanges(trx)
	case pbcodec.TransactionKind_SCHEDULE_DELETE:
		return scheduleDeleteChanges(trx)
	case pbcodec.TransactionKind_TOKEN_CREATE:
		return tokenCreateChanges(trx)
	case pbcodec.TransactionKind_TOKEN_MINT:
		mint := trx.Body.TokenMint
		return tokenSupplyChanges(mint.Token, trx.Receipt().NewTotalSupply, trx.Receipt().SerialNumbers, mint.Metadata, false)
	case pbcodec.TransactionKind_TOKEN_BURN:
		burn := trx.Body.TokenBurn
		return tokenSupplyChanges(burn.Token, trx.Receipt().NewTotalSupply, burn.SerialNumbers, nil, true)
	case pbcodec.TransactionKind_TOKEN_WIPE:
		wipe := trx.Body.TokenWipe
		return tokenSupplyChanges(wipe.Token, trx.Receipt().NewTotalSupply, wipe.SerialNumbers, nil, true)
	case pbcodec.TransactionKind_TOKEN_AIRDROP:
		return pendingAirdropChanges(trx)
	case pbcodec.TransactionKind_CONSENSUS_CREATE_TOPIC:
		return topicCreateChanges(trx)
	case pbcodec.TransactionKind_CONSENSUS_SUBMIT_MESSAGE:
		return topicSubmitMessageChanges(trx)
	case pbcodec.TransactionKind_FILE_CREATE:
		return fileCreateChanges(trx)
	case pbcodec.TransactionKind_NODE_CREATE:
		return nodeCreateChanges(trx)
	}

	return nil
}

func mapUpdate(stateID pbcodec.StateIdentifier, key *pbcodec.MapChangeKey, value *pbcodec.MapChangeValue) pbcodec.StateChange {
	return pbcodec.StateChange{
		StateID:   stateID,
		MapUpdate: &pbcodec.MapUpdateChange{Key: key, Value: value},
	}
}

func mapDelete(stateID pbcodec.StateIdentifier, key *pbcodec.MapChangeKey) pbcodec.StateChange {
	return pbcodec.StateChange{
		StateID:   stateID,
		MapDelete: &pbcodec.MapDeleteChange{Key: key},
	}
}

func accountUpdate(account *pbcodec.Account) pbcodec.StateChange {
	return mapUpdate(pbcodec.StateIdentifier_ACCOUNTS,
		&pbcodec.MapChangeKey{AccountIDKey: account.AccountID},
		&pbcodec.MapChangeValue{AccountValue: account},
	)
}

//
/// Contracts
//

// contractAccount marks the account backing a contract as a smart contract
// account, trusting the EVM alias only when it lives in the contract's shard.
func contractAccount(contractID *pbcodec.ContractID, evmAddress []byte) *pbcodec.Account {
	return &pbcodec.Account{
		AccountID:     contractID.AsAccountID(),
		SmartContract: true,
		Alias:         ValidatedAlias(evmAddress, contractID),
	}
}

// contractResultChanges emits one update for the called or created contract
// followed by one per child contract created during execution.
func contractResultChanges(result *pbcodec.ContractFunctionResult) (out []pbcodec.StateChange) {
	if result == nil || result.ContractID == nil {
		return nil
	}

	out = append(out, accountUpdate(contractAccount(result.ContractID, result.EvmAddress)))

	seen := map[pbcodec.ContractID]bool{*result.ContractID: true}
	for i := range result.CreatedContractIDs {
		created := &result.CreatedContractIDs[i]
		if seen[*created] {
			continue
		}
		seen[*created] = true

		out = append(out, accountUpdate(contractAccount(created, nil)))
	}

	return out
}

func contractUpdateChanges(trx *TransactionContext) []pbcodec.StateChange {
	contractID := trx.Body.ContractUpdate.ContractID
	if contractID == nil {
		return nil
	}

	account := contractAccount(contractID, trx.Record.EvmAddress)
	account.Memo = trx.Body.ContractUpdate.Memo

	return []pbcodec.StateChange{accountUpdate(account)}
}

func contractDeleteChanges(trx *TransactionContext) []pbcodec.StateChange {
	contractID := trx.Body.ContractDelete.ContractID
	if contractID == nil {
		return nil
	}

	account := contractAccount(contractID, trx.Record.EvmAddress)
	account.Deleted = true

	return []pbcodec.StateChange{accountUpdate(account)}
}

// ethereumChanges emits the contract account update, then the sender's
// incremented nonce. The signer nonce of the result wins over the one decoded
// from the raw transaction.
func ethereumChanges(trx *TransactionContext) []pbcodec.StateChange {
	result, _ := trx.Record.FunctionResult()
	if result == nil {
		return nil
	}

	out := contractResultChanges(result)

	if result.SenderID == nil {
		return out
	}

	var nonce int64
	switch {
	case result.SignerNonce != nil:
		nonce = *result.SignerNonce
	case trx.ethereum != nil:
		nonce = int64(trx.ethereum.nonce) + 1
	default:
		return out
	}

	return append(out, accountUpdate(&pbcodec.Account{
		AccountID:     result.SenderID,
		EthereumNonce: nonce,
	}))
}

//
/// Accounts
//

func cryptoCreateChanges(trx *TransactionContext) []pbcodec.StateChange {
	accountID := trx.Receipt().AccountID
	if accountID == nil {
		return nil
	}

	account := &pbcodec.Account{
		AccountID: accountID,
		Memo:      trx.Body.CryptoCreate.Memo,
	}
	if len(trx.Record.EvmAddress) == common.AddressLength {
		account.Alias = trx.Record.EvmAddress
	}

	return []pbcodec.StateChange{accountUpdate(account)}
}

//
/// Schedules
//

func scheduleCreateChanges(trx *TransactionContext) []pbcodec.StateChange {
	receipt := trx.Receipt()
	if receipt.ScheduleID == nil {
		return nil
	}

	body := trx.Body.ScheduleCreate
	return []pbcodec.StateChange{
		mapUpdate(pbcodec.StateIdentifier_SCHEDULES,
			&pbcodec.MapChangeKey{ScheduleIDKey: receipt.ScheduleID},
			&pbcodec.MapChangeValue{ScheduleValue: &pbcodec.Schedule{
				ScheduleID:             receipt.ScheduleID,
				Memo:                   body.Memo,
				PayerAccountID:         body.PayerAccountID,
				SchedulerAccountID:     trx.PayerAccountID(),
				ScheduledTransactionID: receipt.ScheduledTransactionID,
				WaitForExpiry:          body.WaitForExpiry,
			}},
		),
	}
}

// scheduleDeleteChanges removes the schedule from the active index then
// records its deleted projection, both under the same key.
func scheduleDeleteChanges(trx *TransactionContext) []pbcodec.StateChange {
	scheduleID := trx.Body.ScheduleDelete.ScheduleID
	if scheduleID == nil {
		return nil
	}

	key := &pbcodec.MapChangeKey{ScheduleIDKey: scheduleID}
	return []pbcodec.StateChange{
		mapDelete(pbcodec.StateIdentifier_SCHEDULES, key),
		mapUpdate(pbcodec.StateIdentifier_SCHEDULES, key, &pbcodec.MapChangeValue{
			ScheduleValue: &pbcodec.Schedule{ScheduleID: scheduleID, Deleted: true},
		}),
	}
}

//
/// Tokens
//

func tokenCreateChanges(trx *TransactionContext) []pbcodec.StateChange {
	tokenID := trx.Receipt().TokenID
	if tokenID == nil {
		return nil
	}

	body := trx.Body.TokenCreate
	return []pbcodec.StateChange{
		mapUpdate(pbcodec.StateIdentifier_TOKENS,
			&pbcodec.MapChangeKey{TokenIDKey: tokenID},
			&pbcodec.MapChangeValue{TokenValue: &pbcodec.Token{
				TokenID:     tokenID,
				TotalSupply: int64(body.InitialSupply),
				Name:        body.Name,
				Symbol:      body.Symbol,
				Decimals:    body.Decimals,
				Treasury:    body.Treasury,
			}},
		),
	}
}

// tokenSupplyChanges emits the new total supply of the token followed by
// one NFTS update per affected serial, none for fungible operations.
func tokenSupplyChanges(tokenID *pbcodec.TokenID, totalSupply uint64, serials []int64, metadata [][]byte, deleted bool) []pbcodec.StateChange {
	if tokenID == nil {
		return nil
	}

	out := make([]pbcodec.StateChange, 0, 1+len(serials))
	out = append(out, mapUpdate(pbcodec.StateIdentifier_TOKENS,
		&pbcodec.MapChangeKey{TokenIDKey: tokenID},
		&pbcodec.MapChangeValue{TokenValue: &pbcodec.Token{TokenID: tokenID, TotalSupply: int64(totalSupply)}},
	))

	for i, serial := range serials {
		nftID := &pbcodec.NftID{TokenID: tokenID, SerialNumber: serial}
		nft := &pbcodec.Nft{NftID: nftID, Deleted: deleted}
		if i < len(metadata) {
			nft.Metadata = metadata[i]
		}

		out = append(out, mapUpdate(pbcodec.StateIdentifier_NFTS,
			&pbcodec.MapChangeKey{NftIDKey: nftID},
			&pbcodec.MapChangeValue{NftValue: nft},
		))
	}

	return out
}

func pendingAirdropChanges(trx *TransactionContext) (out []pbcodec.StateChange) {
	for _, airdrop := range trx.Record.NewPendingAirdrops {
		out = append(out, mapUpdate(pbcodec.StateIdentifier_PENDING_AIRDROPS,
			&pbcodec.MapChangeKey{PendingAirdropIDKey: airdrop.PendingAirdropID},
			&pbcodec.MapChangeValue{AccountPendingAirdropValue: &pbcodec.AccountPendingAirdrop{PendingAirdropValue: airdrop.Amount}},
		))
	}
	return out
}

//
/// Topics
//

func topicCreateChanges(trx *TransactionContext) []pbcodec.StateChange {
	topicID := trx.Receipt().TopicID
	if topicID == nil {
		return nil
	}

	body := trx.Body.ConsensusCreateTopic
	return []pbcodec.StateChange{
		mapUpdate(pbcodec.StateIdentifier_TOPICS,
			&pbcodec.MapChangeKey{TopicIDKey: topicID},
			&pbcodec.MapChangeValue{TopicValue: &pbcodec.Topic{
				TopicID:     topicID,
				Memo:        body.Memo,
				AutoRenewID: body.AutoRenewAccount,
			}},
		),
	}
}

func topicSubmitMessageChanges(trx *TransactionContext) []pbcodec.StateChange {
	topicID := trx.Body.ConsensusSubmitMessage.TopicID
	if topicID == nil {
		return nil
	}

	receipt := trx.Receipt()
	return []pbcodec.StateChange{
		mapUpdate(pbcodec.StateIdentifier_TOPICS,
			&pbcodec.MapChangeKey{TopicIDKey: topicID},
			&pbcodec.MapChangeValue{TopicValue: &pbcodec.Topic{
				TopicID:            topicID,
				SequenceNumber:     int64(receipt.TopicSequenceNumber),
				RunningHash:        receipt.TopicRunningHash,
				RunningHashVersion: receipt.TopicRunningHashVersion,
			}},
		),
	}
}

//
/// Files & nodes
//

// fileCreateChanges first touches the partition with a bare entry, then
// writes the populated file.
func fileCreateChanges(trx *TransactionContext) []pbcodec.StateChange {
	fileID := trx.Receipt().FileID
	if fileID == nil {
		return nil
	}

	key := &pbcodec.MapChangeKey{FileIDKey: fileID}
	body := trx.Body.FileCreate
	return []pbcodec.StateChange{
		mapUpdate(pbcodec.StateIdentifier_FILES, key, &pbcodec.MapChangeValue{FileValue: &pbcodec.File{FileID: fileID}}),
		mapUpdate(pbcodec.StateIdentifier_FILES, key, &pbcodec.MapChangeValue{FileValue: &pbcodec.File{
			FileID:   fileID,
			Contents: body.Contents,
			Memo:     body.Memo,
		}}),
	}
}

// nodeCreateChanges seeds the node entry before populating it, the same
// way as files.
func nodeCreateChanges(trx *TransactionContext) []pbcodec.StateChange {
	nodeID := trx.Receipt().NodeID
	key := &pbcodec.MapChangeKey{NodeIDKey: &nodeID}
	body := trx.Body.NodeCreate

	return []pbcodec.StateChange{
		mapUpdate(pbcodec.StateIdentifier_NODES, key, &pbcodec.MapChangeValue{NodeValue: &pbcodec.Node{NodeID: nodeID}}),
		mapUpdate(pbcodec.StateIdentifier_NODES, key, &pbcodec.MapChangeValue{NodeValue: &pbcodec.Node{
			NodeID:              nodeID,
			AccountID:           body.AccountID,
			Description:         body.Description,
			GossipEndpoints:     body.GossipEndpoints,
			ServiceEndpoints:    body.ServiceEndpoints,
			GossipCACertificate: body.GossipCACertificate,
			GrpcCertificateHash: body.GrpcCertificateHash,
		}}),
	}
}
