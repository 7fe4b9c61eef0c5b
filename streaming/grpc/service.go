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
	"fmt"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"google.golang.org/grpc"
)

const serviceName = "dfuse.hedera.streaming.v1.Streaming"

type StreamingServer interface {
	SubscribeTopic(*pbcodec.ConsensusTopicQuery, grpc.ServerStream) error
	GetNodes(*pbcodec.AddressBookQuery, grpc.ServerStream) error
	GetTransaction(context.Context, *pbcodec.TransactionQuery) (*pbcodec.TransactionResponse, error)
	GetBlock(context.Context, *pbcodec.BlockQuery) (*pbcodec.ProjectedBlock, error)
}

func RegisterStreamingServer(s *grpc.Server, srv StreamingServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handlerSubscribeTopic(srv any, stream grpc.ServerStream) error {
	req := new(pbcodec.ConsensusTopicQuery)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(StreamingServer).SubscribeTopic(req, stream)
}

func handlerGetNodes(srv any, stream grpc.ServerStream) error {
	req := new(pbcodec.AddressBookQuery)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(StreamingServer).GetNodes(req, stream)
}

func handlerGetTransaction(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(pbcodec.TransactionQuery)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(StreamingServer).GetTransaction(ctx, req)
}

func handlerGetBlock(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(pbcodec.BlockQuery)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(StreamingServer).GetBlock(ctx, req)
}

func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*StreamingServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetTransaction",
			Handler:    handlerGetTransaction,
		},
		{
			MethodName: "GetBlock",
			Handler:    handlerGetBlock,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeTopic",
			Handler:       handlerSubscribeTopic,
			ServerStreams: true,
		},
		{
			StreamName:    "GetNodes",
			Handler:       handlerGetNodes,
			ServerStreams: true,
		},
	},
	Metadata: "dfuse/hedera/streaming/v1/streaming.cram",
}
