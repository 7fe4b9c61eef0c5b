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
	"io"

	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"google.golang.org/grpc"
)

// Client consumes the streaming service of a remote server.
type Client struct {
	cc *grpc.ClientConn
}

func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(grpc.ForceCodec(CramberryCodec{})))

	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// SubscribeTopic calls fn for each response until the server ends the
// stream, fn returning an error cancels the subscription.
func (c *Client) SubscribeTopic(ctx context.Context, query *pbcodec.ConsensusTopicQuery, fn func(*pbcodec.ConsensusTopicResponse) error) error {
	return c.serverStream(ctx, "SubscribeTopic", query, func(recv func(any) error) error {
		resp := new(pbcodec.ConsensusTopicResponse)
		if err := recv(resp); err != nil {
			return err
		}
		return fn(resp)
	})
}

func (c *Client) GetNodes(ctx context.Context, query *pbcodec.AddressBookQuery) (out []*pbcodec.NodeAddress, err error) {
	err = c.serverStream(ctx, "GetNodes", query, func(recv func(any) error) error {
		node := new(pbcodec.NodeAddress)
		if err := recv(node); err != nil {
			return err
		}
		out = append(out, node)
		return nil
	})
	return
}

func (c *Client) GetTransaction(ctx context.Context, query *pbcodec.TransactionQuery) (*pbcodec.TransactionResponse, error) {
	resp := new(pbcodec.TransactionResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetTransaction"), query, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetBlock(ctx context.Context, query *pbcodec.BlockQuery) (*pbcodec.ProjectedBlock, error) {
	blk := new(pbcodec.ProjectedBlock)
	if err := c.cc.Invoke(ctx, fullMethod("GetBlock"), query, blk); err != nil {
		return nil, err
	}
	return blk, nil
}

func (c *Client) serverStream(ctx context.Context, method string, req any, next func(recv func(any) error) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := c.cc.NewStream(ctx, &grpc.StreamDesc{
		StreamName:    method,
		ServerStreams: true,
	}, fullMethod(method))
	if err != nil {
		return err
	}

	if err := stream.SendMsg(req); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}

	for {
		err := next(stream.RecvMsg)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
