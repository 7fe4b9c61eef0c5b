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

import (
	"cmp"
	"fmt"
	"time"
)

//
/// Timestamp
//

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

// TimestampFromNanos is the reverse of UnixNano, negative values are not
// supported.
func TimestampFromNanos(nanos int64) *Timestamp {
	return &Timestamp{Seconds: nanos / int64(time.Second), Nanos: int32(nanos % int64(time.Second))}
}

// UnixNano returns the timestamp as nanoseconds since epoch. Callers facing
// untrusted seconds values must guard against overflow themselves.
func (t *Timestamp) UnixNano() int64 {
	if t == nil {
		return 0
	}

	return t.Seconds*int64(time.Second) + int64(t.Nanos)
}

func (t *Timestamp) Time() time.Time {
	if t == nil {
		return time.Time{}
	}

	return time.Unix(t.Seconds, int64(t.Nanos)).UTC()
}

func (t *Timestamp) String() string {
	if t == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%d.%09d", t.Seconds, t.Nanos)
}

// Compare orders timestamps by seconds then nanos without converting to
// nanoseconds, nil sorts as the zero timestamp.
func (t *Timestamp) Compare(other *Timestamp) int {
	var left, right Timestamp
	if t != nil {
		left = *t
	}
	if other != nil {
		right = *other
	}

	if c := cmp.Compare(left.Seconds, right.Seconds); c != 0 {
		return c
	}
	return cmp.Compare(left.Nanos, right.Nanos)
}

func (t *Timestamp) Equal(other *Timestamp) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.Seconds == other.Seconds && t.Nanos == other.Nanos
}

//
/// Identifiers
//

func (a *AccountID) String() string {
	if a == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d.%d.%d", a.ShardNum, a.RealmNum, a.AccountNum)
}

func (c *ContractID) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d.%d.%d", c.ShardNum, c.RealmNum, c.ContractNum)
}

// AsAccountID returns the account backing the contract, both share the same
// entity number.
func (c *ContractID) AsAccountID() *AccountID {
	if c == nil {
		return nil
	}
	return &AccountID{ShardNum: c.ShardNum, RealmNum: c.RealmNum, AccountNum: c.ContractNum}
}

func (t *TokenID) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d.%d.%d", t.ShardNum, t.RealmNum, t.TokenNum)
}

func (t *TopicID) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d.%d.%d", t.ShardNum, t.RealmNum, t.TopicNum)
}

func (s *ScheduleID) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d.%d.%d", s.ShardNum, s.RealmNum, s.ScheduleNum)
}

func (f *FileID) String() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d.%d.%d", f.ShardNum, f.RealmNum, f.FileNum)
}

// String renders the transaction id the way explorers do,
// `<payer>-<seconds>-<nanos>`.
func (t *TransactionID) String() string {
	if t == nil {
		return "<nil>"
	}

	validStart := t.TransactionValidStart
	if validStart == nil {
		validStart = &Timestamp{}
	}

	out := fmt.Sprintf("%s-%d-%09d", t.AccountID, validStart.Seconds, validStart.Nanos)
	if t.Scheduled {
		out += "?scheduled"
	}
	if t.Nonce != 0 {
		out += fmt.Sprintf("/%d", t.Nonce)
	}
	return out
}

//
/// Transaction body
//

func (k TransactionKind) String() string {
	if name, found := TransactionKind_name[k]; found {
		return name
	}
	return fmt.Sprintf("TransactionKind(%d)", k)
}

// Kind derives the discriminator from the populated kind specific field.
func (b *TransactionBody) Kind() TransactionKind {
	switch {
	case b == nil:
		return TransactionKind_UNKNOWN
	case b.CryptoTransfer != nil:
		return TransactionKind_CRYPTO_TRANSFER
	case b.CryptoCreate != nil:
		return TransactionKind_CRYPTO_CREATE
	case b.ContractCall != nil:
		return TransactionKind_CONTRACT_CALL
	case b.ContractCreate != nil:
		return TransactionKind_CONTRACT_CREATE
	case b.ContractUpdate != nil:
		return TransactionKind_CONTRACT_UPDATE
	case b.ContractDelete != nil:
		return TransactionKind_CONTRACT_DELETE
	case b.EthereumTransaction != nil:
		return TransactionKind_ETHEREUM_TRANSACTION
	case b.ScheduleCreate != nil:
		return TransactionKind_SCHEDULE_CREATE
	case b.ScheduleSign != nil:
		return TransactionKind_SCHEDULE_SIGN
	case b.ScheduleDelete != nil:
		return TransactionKind_SCHEDULE_DELETE
	case b.TokenCreate != nil:
		return TransactionKind_TOKEN_CREATE
	case b.TokenMint != nil:
		return TransactionKind_TOKEN_MINT
	case b.TokenBurn != nil:
		return TransactionKind_TOKEN_BURN
	case b.TokenWipe != nil:
		return TransactionKind_TOKEN_WIPE
	case b.TokenAirdrop != nil:
		return TransactionKind_TOKEN_AIRDROP
	case b.ConsensusCreateTopic != nil:
		return TransactionKind_CONSENSUS_CREATE_TOPIC
	case b.ConsensusSubmitMessage != nil:
		return TransactionKind_CONSENSUS_SUBMIT_MESSAGE
	case b.FileCreate != nil:
		return TransactionKind_FILE_CREATE
	case b.NodeCreate != nil:
		return TransactionKind_NODE_CREATE
	case b.UtilPrng != nil:
		return TransactionKind_UTIL_PRNG
	}

	return TransactionKind_UNKNOWN
}

//
/// Receipt & record
//

func (c ResponseCode) String() string {
	if name, found := ResponseCode_name[c]; found {
		return name
	}
	return fmt.Sprintf("ResponseCode(%d)", c)
}

// IsSuccess reports whether the status denotes an applied transaction.
func (c ResponseCode) IsSuccess() bool {
	switch c {
	case ResponseCode_SUCCESS, ResponseCode_FEE_SCHEDULE_FILE_PART_UPLOADED, ResponseCode_SUCCESS_BUT_MISSING_EXPECTED_OPERATION:
		return true
	}
	return false
}

func (r *TransactionRecord) Status() ResponseCode {
	if r == nil || r.Receipt == nil {
		return ResponseCode_OK
	}
	return r.Receipt.Status
}

// FunctionResult returns whichever EVM result the record carries, preferring
// the call result.
func (r *TransactionRecord) FunctionResult() (result *ContractFunctionResult, isCreate bool) {
	if r == nil {
		return nil, false
	}
	if r.ContractCallResult != nil {
		return r.ContractCallResult, false
	}
	if r.ContractCreateResult != nil {
		return r.ContractCreateResult, true
	}
	return nil, false
}

func (b *RecordBlock) Num() uint64 {
	return b.Number
}

func (b *RecordBlock) String() string {
	return fmt.Sprintf("#%d (%d items)", b.Number, len(b.Items))
}

//
/// Outputs
//

func (o *TransactionOutput) Kind() OutputKind {
	switch {
	case o == nil:
		return OutputKind_NONE
	case o.ContractCall != nil:
		return OutputKind_CONTRACT_CALL
	case o.ContractCreate != nil:
		return OutputKind_CONTRACT_CREATE
	case o.Ethereum != nil && o.Ethereum.EvmCreateResult != nil:
		return OutputKind_ETHEREUM_CREATE
	case o.Ethereum != nil:
		return OutputKind_ETHEREUM_CALL
	case o.CreateSchedule != nil:
		return OutputKind_CREATE_SCHEDULE
	case o.SignSchedule != nil:
		return OutputKind_SIGN_SCHEDULE
	case o.UtilPrng != nil:
		return OutputKind_UTIL_PRNG
	case o.AccountCreate != nil:
		return OutputKind_ACCOUNT_CREATE
	}
	return OutputKind_NONE
}

//
/// State changes
//

func (s StateIdentifier) String() string {
	if name, found := StateIdentifier_name[s]; found {
		return name
	}
	return fmt.Sprintf("StateIdentifier(%d)", s)
}

func (c *StateChange) IsDelete() bool {
	return c.MapDelete != nil
}

// Key returns the key of the change whatever its operation.
func (c *StateChange) Key() *MapChangeKey {
	switch {
	case c.MapUpdate != nil:
		return c.MapUpdate.Key
	case c.MapDelete != nil:
		return c.MapDelete.Key
	}
	return nil
}

func (c *StateChange) Value() *MapChangeValue {
	if c.MapUpdate == nil {
		return nil
	}
	return c.MapUpdate.Value
}

func (b *ProjectedBlock) Num() uint64 {
	return b.Number
}

// Previous resolves the predecessor of the transaction at index, nil for the
// first transaction of the block.
func (b *ProjectedBlock) Previous(index int) *ProjectedTransaction {
	if index < 0 || index >= len(b.Transactions) {
		return nil
	}

	previous := b.Transactions[index].PreviousIndex
	if previous == NoPrevious {
		return nil
	}
	return &b.Transactions[previous]
}

func (t *ProjectedTransaction) IsSuccess() bool {
	return t.Result != nil && t.Result.Status.IsSuccess()
}
