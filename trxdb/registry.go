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

package trxdb

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var registry = make(map[string]DriverFactory)

type DriverFactory func(dsn string) (DB, error)

// Register registers a storage backend for the given DSN scheme.
func Register(schemeName string, factory DriverFactory) {
	schemeName = strings.ToLower(schemeName)

	if _, ok := registry[schemeName]; ok {
		panic(errors.Errorf("%s is already registered", schemeName))
	}

	registry[schemeName] = factory
}

func IsRegistered(schemeName string) bool {
	_, isRegistered := registry[strings.ToLower(schemeName)]
	return isRegistered
}

func RegisteredSchemes() (out []string) {
	for scheme := range registry {
		out = append(out, scheme)
	}
	sort.Strings(out)
	return
}

// New opens the DB backing the DSN, the scheme picks the driver.
func New(dsn string, opts ...Option) (DB, error) {
	zlog.Debug("new trxdb from dsn", zap.String("dsn", dsn))
	factory, err := driverFactory(dsn)
	if err != nil {
		return nil, fmt.Errorf("dsn is not valid: %w", err)
	}

	driver, err := factory(dsn)
	if err != nil {
		return nil, err
	}

	zlog.Debug("configuring trxdb instance with options",
		zap.Stringer("type", reflect.TypeOf(driver)),
		zap.Int("opts_count", len(opts)),
	)

	for _, opt := range opts {
		if err := opt(driver); err != nil {
			return nil, fmt.Errorf("unable to apply option: %w", err)
		}
	}

	return driver, nil
}

func driverFactory(dsn string) (DriverFactory, error) {
	if strings.Contains(strings.TrimSpace(dsn), " ") {
		return nil, fmt.Errorf("trxdb does not support splitting across multiple DSNs")
	}

	parts := strings.SplitN(dsn, "://", 2)
	if len(parts) < 2 || parts[0] == "" {
		return nil, fmt.Errorf("missing :// in DSN")
	}

	factory := registry[strings.ToLower(parts[0])]
	if factory == nil {
		return nil, fmt.Errorf("unregistered driver for scheme %q, have you '_ import'ed the package?", parts[0])
	}

	return factory, nil
}
