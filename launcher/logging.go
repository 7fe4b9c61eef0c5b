package launcher

import (
	zapbox "github.com/dfuse-io/dfuse-hedera/zap-box"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
)

var userLog = zapbox.NewUserLogger(zap.NewNop())

func init() {
	logging.Register("github.com/dfuse-io/dfuse-hedera/launcher", userLog.Reference())
}

func UserLog() *zapbox.UserLogger {
	return userLog
}
