package launcher

import (
	"github.com/dfuse-io/dfuse-hedera/streaming"
)

// Runtime holds what apps of the same process share.
type Runtime struct {
	AbsDataDir string

	// TopicHub links the loader, which publishes topic messages, to the
	// streamer serving them live.
	TopicHub *streaming.Hub
}
