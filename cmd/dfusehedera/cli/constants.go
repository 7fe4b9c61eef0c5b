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

package cli

const (
	RecordsStoreURL string = "file://{dfuse-data-dir}/storage/records"
	TrxDBDSN        string = "badger://{dfuse-data-dir}/storage/trxdb-v1?createTables=true"

	// Ports
	StreamerGRPCServingAddr string = ":13040"
	MetricsListenAddr       string = ":9102"

	HubBufferSize        int = 1000
	TransactionCacheSize int = 10000
)
