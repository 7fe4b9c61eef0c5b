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
	"errors"
	"fmt"
	"sync"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/streamingfast/shutter"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var ErrSlowSubscriber = errors.New("subscriber is too slow to keep up with live messages")

// Hub fans live topic messages out to subscribers of the topic. Publishing
// never blocks. A subscriber whose buffer is full gets a gap instead of the
// message, the messages it missed are read back from storage. A live
// subscriber still holding an unfilled gap on the next publish is shut down
// with ErrSlowSubscriber.
type Hub struct {
	bufferSize int

	lock        sync.RWMutex
	subscribers map[pbcodec.TopicID]map[*Subscription]struct{}

	publishedCount *atomic.Uint64
	droppedCount   *atomic.Uint64
}

func NewHub(bufferSize int) (*Hub, error) {
	if bufferSize <= 0 {
		return nil, fmt.Errorf("subscriber buffer size must be positive, got %d", bufferSize)
	}

	return &Hub{
		bufferSize:     bufferSize,
		subscribers:    map[pbcodec.TopicID]map[*Subscription]struct{}{},
		publishedCount: atomic.NewUint64(0),
		droppedCount:   atomic.NewUint64(0),
	}, nil
}

// Subscribe registers a subscription to the topic. It starts catching up,
// see Subscription.GoLive.
func (h *Hub) Subscribe(topicID *pbcodec.TopicID) *Subscription {
	sub := &Subscription{
		Shutter:  shutter.New(),
		topicID:  *topicID,
		messages: make(chan *pbcodec.TopicMessage, h.bufferSize),
		gaps:     make(chan struct{}, 1),
	}

	h.lock.Lock()
	subs := h.subscribers[sub.topicID]
	if subs == nil {
		subs = map[*Subscription]struct{}{}
		h.subscribers[sub.topicID] = subs
	}
	subs[sub] = struct{}{}
	h.lock.Unlock()

	sub.OnTerminating(func(_ error) {
		h.unsubscribe(sub)
	})

	zlog.Debug("topic subscription added", zap.Stringer("topic_id", topicID))
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.lock.Lock()
	defer h.lock.Unlock()

	subs := h.subscribers[sub.topicID]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.topicID)
	}
}

// Publish hands the messages, in order, to every subscriber of their topic.
// Messages must be readable from storage before being published.
func (h *Hub) Publish(msgs ...*pbcodec.TopicMessage) {
	var slow []*Subscription
	var gapped map[*Subscription]bool

	h.lock.RLock()
	for _, msg := range msgs {
		if msg.TopicID == nil {
			continue
		}

		h.publishedCount.Inc()

		for sub := range h.subscribers[*msg.TopicID] {
			if gapped[sub] || sub.IsTerminating() {
				continue
			}

			switch sub.deliver(msg) {
			case deliveryGap:
				if gapped == nil {
					gapped = map[*Subscription]bool{}
				}
				gapped[sub] = true
			case deliverySlow:
				slow = append(slow, sub)
			}
		}
	}
	h.lock.RUnlock()

	for _, sub := range slow {
		if sub.IsTerminating() {
			continue
		}

		h.droppedCount.Inc()
		zlog.Info("dropping slow topic subscriber", zap.Stringer("topic_id", &sub.topicID))
		sub.Shutdown(ErrSlowSubscriber)
	}
}

func (h *Hub) SubscriberCount() int {
	h.lock.RLock()
	defer h.lock.RUnlock()

	count := 0
	for _, subs := range h.subscribers {
		count += len(subs)
	}
	return count
}

func (h *Hub) PublishedCount() uint64 { return h.publishedCount.Load() }
func (h *Hub) DroppedCount() uint64   { return h.droppedCount.Load() }

type delivery int

const (
	delivered delivery = iota
	deliveryGap
	deliverySlow
)

// Subscription receives the live messages of one topic until shut down.
//
// A subscription is either catching up, reading from storage while messages
// are buffered, or live. Messages not fitting the buffer leave a gap, signaled
// on Gaps, and nothing is buffered until the gap is filled by catching up
// again.
type Subscription struct {
	*shutter.Shutter

	topicID  pbcodec.TopicID
	messages chan *pbcodec.TopicMessage
	gaps     chan struct{}

	lock   sync.Mutex
	live   bool
	gapped bool
}

func (s *Subscription) Messages() <-chan *pbcodec.TopicMessage {
	return s.messages
}

// Gaps receives a value when messages were skipped, they must be read back
// from storage after calling CatchUp.
func (s *Subscription) Gaps() <-chan struct{} {
	return s.gaps
}

// CatchUp clears the gap and the buffered messages, the caller reads storage
// from its last received message before calling GoLive.
func (s *Subscription) CatchUp() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.live = false
	s.gapped = false

	for {
		select {
		case <-s.messages:
		case <-s.gaps:
		default:
			return
		}
	}
}

// GoLive switches to live mode, it fails when a gap appeared since the last
// CatchUp.
func (s *Subscription) GoLive() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.gapped {
		return false
	}

	s.live = true
	return true
}

func (s *Subscription) deliver(msg *pbcodec.TopicMessage) delivery {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.gapped {
		// Pending gap from a previous publish, storage holds the message.
		if s.live {
			return deliverySlow
		}
		return deliveryGap
	}

	select {
	case s.messages <- msg:
		return delivered
	default:
	}

	s.gapped = true
	select {
	case s.gaps <- struct{}{}:
	default:
	}

	return deliveryGap
}

func (s *Subscription) Close() {
	s.Shutdown(nil)
}
