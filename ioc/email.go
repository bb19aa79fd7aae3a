// Copyright 2025 lapviet
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ioc

import (
	"time"

	"github.com/lapviet/lapstore/internal/email"
	"github.com/lapviet/lapstore/internal/email/directmail"
	retrysvc "github.com/lapviet/lapstore/internal/email/retry"

	"github.com/ecodeclub/ekit/retry"
	"github.com/gotomicro/ego/core/econf"
)

func InitEmailService() email.Service {
	type Config struct {
		Provider   string            `yaml:"provider"`
		DirectMail directmail.Config `yaml:"directmail"`
	}
	var cfg Config
	err := econf.UnmarshalKey("email", &cfg)
	if err != nil {
		panic(err)
	}
	// 本地开发没配发信渠道就只记日志
	if cfg.Provider != "directmail" {
		return email.NoOpService{}
	}
	svc, err := directmail.NewService(cfg.DirectMail)
	if err != nil {
		panic(err)
	}
	return retrysvc.NewRetryEmailService(svc, func() retry.Strategy {
		strategy, err1 := retry.NewFixedIntervalRetryStrategy(time.Second, 3)
		if err1 != nil {
			panic(err1)
		}
		return strategy
	})
}
