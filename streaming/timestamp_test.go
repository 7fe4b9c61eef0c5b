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

package streaming

import (
	"math"
	"testing"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/stretchr/testify/assert"
)

func TestToNanosClamped(t *testing.T) {
	tests := []struct {
		name     string
		in       *pbcodec.Timestamp
		expected int64
	}{
		{"nil", nil, 0},
		{"zero", &pbcodec.Timestamp{}, 0},
		{"regular", &pbcodec.Timestamp{Seconds: 1568411616, Nanos: 12}, 1568411616_000_000_012},
		{"last safe second", &pbcodec.Timestamp{Seconds: 9223372034, Nanos: 999_999_999}, 9223372034_999_999_999},
		{"first clamped second", &pbcodec.Timestamp{Seconds: 9223372035}, math.MaxInt64},
		{"far future", &pbcodec.Timestamp{Seconds: 9223372036, Nanos: 1}, math.MaxInt64},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ToNanosClamped(test.in))
		})
	}
}
