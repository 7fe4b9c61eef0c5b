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

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
)

// maxSafeSeconds is the first second count whose conversion to nanoseconds
// may overflow an int64.
const maxSafeSeconds = 9223372035

// ToNanosClamped converts the timestamp to nanoseconds since epoch, clamping
// to math.MaxInt64 instead of overflowing. A nil timestamp is 0.
func ToNanosClamped(ts *pbcodec.Timestamp) int64 {
	if ts == nil {
		return 0
	}

	if ts.Seconds >= maxSafeSeconds {
		return math.MaxInt64
	}

	return ts.Seconds*1_000_000_000 + int64(ts.Nanos)
}
