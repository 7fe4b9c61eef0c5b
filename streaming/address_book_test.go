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
	"testing"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/stretchr/testify/assert"
)

func TestAddressBookEntryToNodeAddress(t *testing.T) {
	stake := int64(50_000)
	entry := &pbcodec.AddressBookEntry{
		NodeID:        3,
		NodeAccountID: &pbcodec.AccountID{AccountNum: 6},
		Description:   "node 3",
		Memo:          "0.0.6",
		NodeCertHash:  []byte("certhash"),
		PublicKey:     "308201a2",
		Stake:         &stake,
		ServiceEndpoints: []pbcodec.AddressBookServiceEndpoint{
			{IPAddressV4: "10.0.0.1", Port: 50211},
			{DomainName: "node3.example.com", Port: 50212},
		},
	}

	assert.Equal(t, &pbcodec.NodeAddress{
		NodeID:        3,
		NodeAccountID: &pbcodec.AccountID{AccountNum: 6},
		Description:   "node 3",
		Memo:          []byte("0.0.6"),
		NodeCertHash:  []byte("certhash"),
		RSAPubKey:     "308201a2",
		Stake:         50_000,
		ServiceEndpoints: []pbcodec.ServiceEndpoint{
			{IPAddressV4: []byte{10, 0, 0, 1}, Port: 50211},
			{DomainName: "node3.example.com", Port: 50212},
		},
	}, AddressBookEntryToNodeAddress(entry))
}

func TestAddressBookEntryToNodeAddress_Optionals(t *testing.T) {
	out := AddressBookEntryToNodeAddress(&pbcodec.AddressBookEntry{NodeID: 1})

	assert.Nil(t, out.Memo)
	assert.Equal(t, int64(0), out.Stake)
	assert.Empty(t, out.ServiceEndpoints)
}

func TestParseIPv4(t *testing.T) {
	tests := []struct {
		in       string
		expected []byte
	}{
		{"10.0.0.1", []byte{10, 0, 0, 1}},
		{"127.0.0.1", []byte{127, 0, 0, 1}},
		{"", nil},
		{"localhost", nil},
		{"10.0.0", nil},
		{"::1", nil},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			assert.Equal(t, test.expected, ParseIPv4(test.in))
		})
	}
}
