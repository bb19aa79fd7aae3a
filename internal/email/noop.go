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

package email

import (
	"context"

	"github.com/gotomicro/ego/core/elog"
)

// NoOpService 本地开发用, 只记日志不真发
type NoOpService struct{}

func (n NoOpService) Send(_ context.Context, subject, to string, _ []byte) error {
	elog.DefaultLogger.Info("跳过邮件发送",
		elog.String("subject", subject), elog.String("to", to))
	return nil
}
