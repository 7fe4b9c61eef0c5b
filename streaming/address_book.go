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
	"net"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
)

func AddressBookEntryToNodeAddress(entry *pbcodec.AddressBookEntry) *pbcodec.NodeAddress {
	out := &pbcodec.NodeAddress{
		NodeID:        entry.NodeID,
		NodeAccountID: entry.NodeAccountID,
		Description:   entry.Description,
		NodeCertHash:  entry.NodeCertHash,
		RSAPubKey:     entry.PublicKey,
	}

	if entry.Memo != "" {
		out.Memo = []byte(entry.Memo)
	}

	if entry.Stake != nil {
		out.Stake = *entry.Stake
	}

	for _, endpoint := range entry.ServiceEndpoints {
		out.ServiceEndpoints = append(out.ServiceEndpoints, pbcodec.ServiceEndpoint{
			DomainName:  endpoint.DomainName,
			IPAddressV4: ParseIPv4(endpoint.IPAddressV4),
			Port:        endpoint.Port,
		})
	}

	return out
}

// ParseIPv4 returns the 4 bytes of a dotted IPv4 literal. Host names, IPv6
// and blank values give nil.
func ParseIPv4(in string) []byte {
	if in == "" {
		return nil
	}

	ip := net.ParseIP(in).To4()
	if ip == nil {
		return nil
	}

	return []byte(ip)
}
