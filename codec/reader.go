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

package codec

import (
	"fmt"
	"io"

	"github.com/blockberries/cramberry/pkg/cramberry"
	pbcodec "github.com/dfuse-io/dfuse-hedera/pb/dfuse/hedera/codec/v1"
	"github.com/streamingfast/dbin"
)

const (
	RecordFileContentType = "HRB"
	RecordFileVersion     = 1
)

// RecordBlockReader reads the dbin format where each element is assumed to be
// an encoded `pbcodec.RecordBlock`.
type RecordBlockReader struct {
	src *dbin.Reader
}

func NewRecordBlockReader(reader io.Reader) (out *RecordBlockReader, err error) {
	dbinReader := dbin.NewReader(reader)
	contentType, version, err := dbinReader.ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("unable to read file header: %s", err)
	}

	if contentType != RecordFileContentType || version != RecordFileVersion {
		return nil, fmt.Errorf("reader only knows about %s records at version %d, got %s at version %d", RecordFileContentType, RecordFileVersion, contentType, version)
	}

	return &RecordBlockReader{
		src: dbinReader,
	}, nil
}

func (l *RecordBlockReader) Read() (*pbcodec.RecordBlock, error) {
	message, err := l.src.ReadMessage()
	if len(message) > 0 {
		blk := new(pbcodec.RecordBlock)
		if err := cramberry.Unmarshal(message, blk); err != nil {
			return nil, fmt.Errorf("unable to decode record block: %w", err)
		}

		return blk, nil
	}

	if err == io.EOF {
		return nil, err
	}

	// In all other cases, we are in an error path
	return nil, fmt.Errorf("failed reading next dbin message: %s", err)
}

// RecordBlockWriter is the counterpart of RecordBlockReader.
type RecordBlockWriter struct {
	src *dbin.Writer
}

func NewRecordBlockWriter(writer io.Writer) (*RecordBlockWriter, error) {
	dbinWriter := dbin.NewWriter(writer)
	err := dbinWriter.WriteHeader(RecordFileContentType, RecordFileVersion)
	if err != nil {
		return nil, fmt.Errorf("unable to write file header: %s", err)
	}

	return &RecordBlockWriter{
		src: dbinWriter,
	}, nil
}

func (w *RecordBlockWriter) Write(blk *pbcodec.RecordBlock) error {
	bytes, err := cramberry.Marshal(blk)
	if err != nil {
		return fmt.Errorf("unable to encode record block: %w", err)
	}

	return w.src.WriteMessage(bytes)
}
