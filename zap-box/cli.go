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

package zapbox

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var banner = strings.Repeat("#", 64)

// UserLogger is the console voice of the binary: printf style messages for
// operators plus a few structured levels. The wrapped logger is swapped in
// place when logging is configured, hence Reference.
type UserLogger struct {
	base *zap.Logger
}

func NewUserLogger(base *zap.Logger) *UserLogger {
	return &UserLogger{base: base}
}

// Reference is the slot handed to logging.Register.
func (l *UserLogger) Reference() **zap.Logger {
	return &l.base
}

// SkipWrapperFrame makes reported callers point at our callers, to be called
// once the final logger is in place.
func (l *UserLogger) SkipWrapperFrame() {
	l.base = l.base.WithOptions(zap.AddCallerSkip(1))
}

func (l *UserLogger) Printf(template string, args ...interface{}) {
	if ce := l.base.Check(zap.InfoLevel, ""); ce != nil {
		ce.Message = fmt.Sprintf(template, args...)
		ce.Write()
	}
}

func (l *UserLogger) Debug(msg string, fields ...zapcore.Field) {
	if ce := l.base.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l *UserLogger) Warn(msg string, fields ...zapcore.Field) {
	if ce := l.base.Check(zap.WarnLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l *UserLogger) Error(msg string, fields ...zapcore.Field) {
	if ce := l.base.Check(zap.ErrorLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

// AppFailed reports the error that brought an app down, framed so it stands
// out of the console noise that follows during shutdown.
func (l *UserLogger) AppFailed(appID string, err error) {
	msg := fmt.Sprintf("\n%s\nApp %s failed:\n\n%s\n%s\n", banner, appID, err, banner)
	if ce := l.base.Check(zap.ErrorLevel, msg); ce != nil {
		ce.Write(zap.String("app", appID))
	}
}
