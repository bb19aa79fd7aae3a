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
	"testing"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmail struct {
	errs  []error
	calls int
}

func (s *stubEmail) Send(_ context.Context, _, _ string, _ []byte) error {
	defer func() { s.calls++ }()
	if s.calls < len(s.errs) {
		return s.errs[s.calls]
	}
	return nil
}

func fixedStrategy(t *testing.T, maxTimes int32) func() retry.Strategy {
	t.Helper()
	return func() retry.Strategy {
		strategy, err := retry.NewFixedIntervalRetryStrategy(time.Millisecond, maxTimes)
		require.NoError(t, err)
		return strategy
	}
}

func TestRetryEmailService_Send(t *testing.T) {
	t.Parallel()
	t.Run("第一次就成功", func(t *testing.T) {
		t.Parallel()
		stub := &stubEmail{}
		svc := NewRetryEmailService(stub, fixedStrategy(t, 3))
		require.NoError(t, svc.Send(context.Background(), "主题", "a@example.com", []byte("内容")))
		assert.Equal(t, 1, stub.calls)
	})
	t.Run("失败两次后成功", func(t *testing.T) {
		t.Parallel()
		stub := &stubEmail{errs: []error{errors.New("网络抖动"), errors.New("网络抖动")}}
		svc := NewRetryEmailService(stub, fixedStrategy(t, 3))
		require.NoError(t, svc.Send(context.Background(), "主题", "a@example.com", []byte("内容")))
		assert.Equal(t, 3, stub.calls)
	})
	t.Run("超过最大重试次数", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("下游持续失败")
		stub := &stubEmail{errs: []error{boom, boom, boom, boom}}
		svc := NewRetryEmailService(stub, fixedStrategy(t, 2))
		err := svc.Send(context.Background(), "主题", "a@example.com", []byte("内容"))
		assert.ErrorIs(t, err, ErrOverRetryTimes)
	})
	t.Run("调用方取消不再重试", func(t *testing.T) {
		t.Parallel()
		stub := &stubEmail{errs: []error{context.Canceled}}
		svc := NewRetryEmailService(stub, fixedStrategy(t, 3))
		err := svc.Send(context.Background(), "主题", "a@example.com", []byte("内容"))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, stub.calls)
	})
}
