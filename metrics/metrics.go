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

package metrics

import (
	"github.com/streamingfast/dmetrics"
)

var MetricSet = dmetrics.NewSet()

var HeadBlockNumber = MetricSet.NewHeadBlockNumber("loader")
var HeadTimeDrift = MetricSet.NewHeadTimeDrift("loader")

var ProjectedBlocks = MetricSet.NewCounter("projected_blocks", "Number of record blocks projected and written")
var ProjectedTransactions = MetricSet.NewCounter("projected_transactions", "Number of transactions projected and written")
var SynthesizedStateChanges = MetricSet.NewCounter("synthesized_state_changes", "Number of state changes synthesized from transactions")
var PublishedTopicMessages = MetricSet.NewCounter("published_topic_messages", "Number of topic messages handed to the live hub")

var ActiveTopicSubscriptions = MetricSet.NewGauge("active_topic_subscriptions", "Number of SubscribeTopic streams currently open")
var StreamedTopicMessages = MetricSet.NewCounter("streamed_topic_messages", "Number of topic messages sent to subscribers")
var StreamedNodes = MetricSet.NewCounter("streamed_nodes", "Number of node addresses sent to GetNodes callers")
var DroppedTopicSubscriptions = MetricSet.NewCounter("dropped_topic_subscriptions", "Number of subscriptions dropped for being too slow")
