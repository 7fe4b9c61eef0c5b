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
	"fmt"
	"net"
	"time"

	"github.com/dfuse-io/dfuse-hedera/streaming"
	"github.com/dfuse-io/dfuse-hedera/trxdb"
	"github.com/streamingfast/dgrpc"
	"github.com/streamingfast/shutter"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

type Server struct {
	*shutter.Shutter

	grpcAddr string
	server   *grpc.Server
	db       trxdb.DBReader
	hub      *streaming.Hub
}

// New creates the streaming server, hub may be nil in which case topic
// subscriptions only see stored messages.
func New(grpcAddr string, db trxdb.DBReader, hub *streaming.Hub) *Server {
	return &Server{
		Shutter:  shutter.New(),
		grpcAddr: grpcAddr,
		db:       db,
		hub:      hub,
		server:   dgrpc.NewServer(dgrpc.WithLogger(zlog)),
	}
}

func (s *Server) Serve() {
	RegisterStreamingServer(s.server, s)

	zlog.Info("listening for streaming", zap.String("addr", s.grpcAddr))
	lis, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		s.Shutdown(fmt.Errorf("failed listening grpc %q: %w", s.grpcAddr, err))
		return
	}

	if err := s.server.Serve(lis); err != nil {
		s.Shutdown(fmt.Errorf("error on grpcServer.Serve: %w", err))
		return
	}
}

func (s *Server) Terminate(err error) {
	if s.server == nil {
		return
	}

	stopped := make(chan bool)
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-time.After(30 * time.Second):
		zlog.Info("gRPC server did not terminate gracefully within allowed time, forcing shutdown")
		s.server.Stop()
	case <-stopped:
		zlog.Info("gRPC server terminated gracefully")
	}
}
