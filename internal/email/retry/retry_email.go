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

package retry

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/retry"

	"github.com/lapviet/lapstore/internal/email"
)

var ErrOverRetryTimes = errors.New("超过最大重试次数")

// Service 失败重试装饰器。每次发送用工厂新建策略, 重试计数互不串扰
type Service struct {
	svc       email.Service
	retryFunc func() retry.Strategy
}

func NewRetryEmailService(svc email.Service, fac func() retry.Strategy) *Service {
	return &Service{
		svc:       svc,
		retryFunc: fac,
	}
}

func (s *Service) Send(ctx context.Context, subject, to string, content []byte) error {
	var timer *time.Timer
	strategy := s.retryFunc()
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		err := s.svc.Send(ctx, subject, to, content)
		if err == nil {
			return nil
		}
		// 调用方已经超时或者取消, 重试没有意义
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
		interval, ok := strategy.Next()
		if !ok {
			return ErrOverRetryTimes
		}
		if timer == nil {
			timer = time.NewTimer(interval)
		} else {
			timer.Reset(interval)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
