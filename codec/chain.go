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

// Chain threads the projected transactions of one block. Entries live in an
// arena and point to their predecessor by index, there is no forward link.
type Chain struct {
	transactions []pbcodec.ProjectedTransaction
}

func NewChain(capacity int) *Chain {
	return &Chain{transactions: make([]pbcodec.ProjectedTransaction, 0, capacity)}
}

// Append links the transaction after the last one and returns its index.
func (c *Chain) Append(trx pbcodec.ProjectedTransaction) int {
	trx.PreviousIndex = int32(len(c.transactions)) - 1
	c.transactions = append(c.transactions, trx)

	return len(c.transactions) - 1
}

func (c *Chain) Len() int {
	return len(c.transactions)
}

func (c *Chain) Get(index int) *pbcodec.ProjectedTransaction {
	if index < 0 || index >= len(c.transactions) {
		return nil
	}
	return &c.transactions[index]
}

// Last returns the tail of the chain, nil while it is empty.
func (c *Chain) Last() *pbcodec.ProjectedTransaction {
	return c.Get(len(c.transactions) - 1)
}

// Previous resolves the predecessor of the entry at index.
func (c *Chain) Previous(index int) *pbcodec.ProjectedTransaction {
	entry := c.Get(index)
	if entry == nil || entry.PreviousIndex == pbcodec.NoPrevious {
		return nil
	}
	return c.Get(int(entry.PreviousIndex))
}

// Finalize hands the linked transactions over, the chain must not be used
// afterwards.
func (c *Chain) Finalize() []pbcodec.ProjectedTransaction {
	out := c.transactions
	c.transactions = nil
	return out
}
