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
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// RowEncoder serializes rows with cramberry and compresses them with zstd.
// It is safe for concurrent use.
type RowEncoder struct {
	zstdEncoder *zstd.Encoder
}

func NewRowEncoder() *RowEncoder {
	zstdEncoder, err := zstd.NewWriter(nil)
	if err != nil {
		panic(fmt.Sprintf("zstd encoder: %s", err))
	}

	return &RowEncoder{zstdEncoder: zstdEncoder}
}

func (e *RowEncoder) Encode(row interface{}) ([]byte, error) {
	data, err := cramberry.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode row %T: %w", row, err)
	}

	out := e.zstdEncoder.EncodeAll(data, nil)
	if traceEnabled {
		zlog.Debug("encoded row", zap.String("type", fmt.Sprintf("%T", row)), zap.Int("raw", len(data)), zap.Int("compressed", len(out)))
	}

	return out, nil
}

// RowDecoder is the counterpart of RowEncoder, safe for concurrent use.
type RowDecoder struct {
	zstdDecoder *zstd.Decoder
}

func NewRowDecoder() *RowDecoder {
	zstdDecoder, err := zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("zstd decoder: %s", err))
	}

	return &RowDecoder{zstdDecoder: zstdDecoder}
}

func (d *RowDecoder) Into(cnt []byte, row interface{}) error {
	data, err := d.zstdDecoder.DecodeAll(cnt, nil)
	if err != nil {
		return fmt.Errorf("decompress row %T: %w", row, err)
	}

	if err := cramberry.Unmarshal(data, row); err != nil {
		return fmt.Errorf("decode row %T: %w", row, err)
	}

	return nil
}
