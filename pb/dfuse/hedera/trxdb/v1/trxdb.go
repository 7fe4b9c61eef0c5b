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

package pbtrxdb

import (
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
)

// BlockRow is the stored header of a projected block, its transactions are
// stored on their own rows and referenced by consensus timestamp.
type BlockRow struct {
	Number                uint64             `cramberry:"1"`
	Hash                  []byte             `cramberry:"2"`
	PreviousHash          []byte             `cramberry:"3"`
	ConsensusEnd          *pbcodec.Timestamp `cramberry:"4"`
	TransactionTimestamps []int64            `cramberry:"5"`
}

type TransactionRow struct {
	BlockNum    uint64                        `cramberry:"1"`
	Index       uint32                        `cramberry:"2"`
	Transaction *pbcodec.ProjectedTransaction `cramberry:"3"`
}
