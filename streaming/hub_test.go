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
	"time"

	ct "github.com/dfuse-io/dfuse-hedera/codec/testing"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicMessage(topic int64, sequence int64) *pbcodec.TopicMessage {
	return &pbcodec.TopicMessage{
		ConsensusTimestamp: 1568411616_000_000_000 + sequence,
		TopicID:            ct.Topic(topic),
		SequenceNumber:     sequence,
	}
}

func TestNewHub_Invalid(t *testing.T) {
	_, err := NewHub(0)
	assert.Error(t, err)
}

func TestHub_Publish(t *testing.T) {
	hub, err := NewHub(10)
	require.NoError(t, err)

	sub := hub.Subscribe(ct.Topic(1001))
	other := hub.Subscribe(ct.Topic(1002))
	defer sub.Close()
	defer other.Close()

	hub.Publish(topicMessage(1001, 1), topicMessage(1002, 1), topicMessage(1001, 2))

	assert.Equal(t, int64(1), (<-sub.Messages()).SequenceNumber)
	assert.Equal(t, int64(2), (<-sub.Messages()).SequenceNumber)
	assert.Equal(t, int64(1), (<-other.Messages()).SequenceNumber)
	assert.Len(t, sub.Messages(), 0)
	assert.Len(t, other.Messages(), 0)
	assert.Len(t, sub.Gaps(), 0)

	assert.Equal(t, uint64(3), hub.PublishedCount())
}

func TestHub_MessageWithoutTopic(t *testing.T) {
	hub, err := NewHub(10)
	require.NoError(t, err)

	hub.Publish(&pbcodec.TopicMessage{SequenceNumber: 1})
	assert.Equal(t, uint64(0), hub.PublishedCount())
}

func TestHub_Close(t *testing.T) {
	hub, err := NewHub(10)
	require.NoError(t, err)

	sub := hub.Subscribe(ct.Topic(1001))
	assert.Equal(t, 1, hub.SubscriberCount())

	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount())
	assert.NoError(t, sub.Err())

	hub.Publish(topicMessage(1001, 1))
	assert.Len(t, sub.Messages(), 0)
}

func TestHub_OverflowWhileCatchingUp(t *testing.T) {
	hub, err := NewHub(2)
	require.NoError(t, err)

	sub := hub.Subscribe(ct.Topic(1001))
	defer sub.Close()

	hub.Publish(topicMessage(1001, 1), topicMessage(1001, 2), topicMessage(1001, 3))
	hub.Publish(topicMessage(1001, 4))
	hub.Publish(topicMessage(1001, 5))

	assert.False(t, sub.IsTerminating())
	assert.Len(t, sub.Gaps(), 1)
	assert.Len(t, sub.Messages(), 2)
	assert.False(t, sub.GoLive())

	sub.CatchUp()
	assert.Len(t, sub.Gaps(), 0)
	assert.Len(t, sub.Messages(), 0)
	require.True(t, sub.GoLive())

	hub.Publish(topicMessage(1001, 6))
	assert.Equal(t, int64(6), (<-sub.Messages()).SequenceNumber)
	assert.Equal(t, uint64(0), hub.DroppedCount())
}

func TestHub_LiveBurstLeavesGap(t *testing.T) {
	hub, err := NewHub(2)
	require.NoError(t, err)

	sub := hub.Subscribe(ct.Topic(1001))
	defer sub.Close()
	require.True(t, sub.GoLive())

	hub.Publish(topicMessage(1001, 1), topicMessage(1001, 2), topicMessage(1001, 3), topicMessage(1001, 4))

	assert.False(t, sub.IsTerminating())
	assert.Len(t, sub.Gaps(), 1)
	assert.Len(t, sub.Messages(), 2)
	assert.Equal(t, uint64(0), hub.DroppedCount())
}

func TestHub_SlowSubscriber(t *testing.T) {
	hub, err := NewHub(2)
	require.NoError(t, err)

	slow := hub.Subscribe(ct.Topic(1001))
	fast := hub.Subscribe(ct.Topic(1001))
	defer fast.Close()
	require.True(t, slow.GoLive())
	require.True(t, fast.GoLive())

	hub.Publish(topicMessage(1001, 1), topicMessage(1001, 2))
	<-fast.Messages()
	<-fast.Messages()

	hub.Publish(topicMessage(1001, 3))
	assert.False(t, slow.IsTerminating())

	<-fast.Messages()
	hub.Publish(topicMessage(1001, 4))

	select {
	case <-slow.Terminating():
	case <-time.After(time.Second):
		require.FailNow(t, "slow subscriber should have been shut down")
	}

	assert.Equal(t, ErrSlowSubscriber, slow.Err())
	assert.Equal(t, uint64(1), hub.DroppedCount())
	assert.Equal(t, 1, hub.SubscriberCount())

	assert.Equal(t, int64(4), (<-fast.Messages()).SequenceNumber)
	assert.False(t, fast.IsTerminating())
}
