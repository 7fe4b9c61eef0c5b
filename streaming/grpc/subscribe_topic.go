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

package grpc

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/dfuse-io/dfuse-hedera/metrics"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/dfuse-io/dfuse-hedera/streaming"
	"github.com/streamingfast/derr"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

// errStreamDone stops the historical scan once limit or end time is reached.
var errStreamDone = errors.New("stream done")

func (s *Server) SubscribeTopic(query *pbcodec.ConsensusTopicQuery, stream grpc.ServerStream) error {
	ctx := stream.Context()
	logger := logging.Logger(ctx, zlog)

	if query.TopicID == nil {
		return derr.Status(codes.InvalidArgument, "topic id is required")
	}

	start := streaming.ToNanosClamped(query.ConsensusStartTime)
	end := int64(math.MaxInt64)
	if query.ConsensusEndTime != nil {
		end = streaming.ToNanosClamped(query.ConsensusEndTime)
	}

	if end < start {
		return derr.Statusf(codes.InvalidArgument, "consensus end time %s is before start time %s", query.ConsensusEndTime, query.ConsensusStartTime)
	}

	logger.Debug("subscribing to topic",
		zap.Stringer("topic_id", query.TopicID),
		zap.Int64("start", start),
		zap.Int64("end", end),
		zap.Uint64("limit", query.Limit),
	)

	metrics.ActiveTopicSubscriptions.Inc()
	defer metrics.ActiveTopicSubscriptions.Dec()

	// Subscribing before the historical scan so nothing published in between
	// is missed, overlaps are removed by sequence number.
	var sub *streaming.Subscription
	if s.hub != nil {
		sub = s.hub.Subscribe(query.TopicID)
		defer sub.Close()
	}

	sender := &topicSender{stream: stream, start: start, end: end, limit: query.Limit}

	err := s.streamHistory(ctx, query.TopicID, sender)
	if err == nil && !sender.done && sub != nil && !historyIsComplete(query) {
		err = s.streamLive(ctx, query.TopicID, sub, sender)
	}

	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// streamHistory sends the stored messages following the last one sent.
func (s *Server) streamHistory(ctx context.Context, topicID *pbcodec.TopicID, sender *topicSender) error {
	err := s.db.ScanTopicMessages(ctx, topicID, sender.resumeAt(), sender.end, sender.remaining(), sender.send)
	if err != nil && !errors.Is(err, errStreamDone) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return derr.Statusf(codes.Unknown, "unable to stream topic messages: %s", err)
	}

	return nil
}

// streamLive forwards published messages. Messages the subscription could
// not buffer are read back from storage before going live again.
func (s *Server) streamLive(ctx context.Context, topicID *pbcodec.TopicID, sub *streaming.Subscription, sender *topicSender) error {
	for {
		if !sub.GoLive() {
			if err := s.catchUp(ctx, topicID, sub, sender); err != nil || sender.done {
				return err
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil

		case <-s.Terminating():
			return derr.Status(codes.Unavailable, "server is shutting down")

		case <-sub.Terminating():
			if errors.Is(sub.Err(), streaming.ErrSlowSubscriber) {
				metrics.DroppedTopicSubscriptions.Inc()
				return derr.Status(codes.ResourceExhausted, sub.Err().Error())
			}
			return nil

		case <-sub.Gaps():
			if err := s.catchUp(ctx, topicID, sub, sender); err != nil || sender.done {
				return err
			}

		case msg := <-sub.Messages():
			if err := sender.send(msg); err != nil {
				if errors.Is(err, errStreamDone) {
					return nil
				}
				return err
			}
		}
	}
}

func (s *Server) catchUp(ctx context.Context, topicID *pbcodec.TopicID, sub *streaming.Subscription, sender *topicSender) error {
	logging.Logger(ctx, zlog).Debug("catching up topic subscription from storage",
		zap.Stringer("topic_id", topicID),
		zap.Int64("last_sequence", sender.lastSequence),
	)

	sub.CatchUp()
	return s.streamHistory(ctx, topicID, sender)
}

// historyIsComplete is true when the requested range closes before now, the
// stored messages then hold everything the subscriber can receive.
func historyIsComplete(query *pbcodec.ConsensusTopicQuery) bool {
	if query.ConsensusEndTime == nil {
		return false
	}

	return streaming.ToNanosClamped(query.ConsensusEndTime) <= time.Now().UnixNano()
}

type topicSender struct {
	stream grpc.ServerStream
	start  int64
	end    int64
	limit  uint64

	sent          uint64
	lastSequence  int64
	lastTimestamp int64
	done          bool
}

// resumeAt is the first consensus timestamp not yet sent.
func (t *topicSender) resumeAt() int64 {
	if t.sent == 0 || t.lastTimestamp < t.start {
		return t.start
	}
	return t.lastTimestamp + 1
}

// remaining is the number of messages left to send, 0 when unlimited.
func (t *topicSender) remaining() uint64 {
	if t.limit == 0 {
		return 0
	}
	return t.limit - t.sent
}

func (t *topicSender) send(msg *pbcodec.TopicMessage) error {
	if t.done {
		return errStreamDone
	}

	if msg.SequenceNumber <= t.lastSequence || msg.ConsensusTimestamp < t.start {
		return nil
	}

	if msg.ConsensusTimestamp >= t.end {
		t.done = true
		return errStreamDone
	}

	if err := t.stream.SendMsg(streaming.TopicMessageToResponse(msg)); err != nil {
		return err
	}

	metrics.StreamedTopicMessages.Inc()
	t.lastSequence = msg.SequenceNumber
	t.lastTimestamp = msg.ConsensusTimestamp
	t.sent++

	if t.limit > 0 && t.sent >= t.limit {
		t.done = true
		return errStreamDone
	}

	return nil
}
