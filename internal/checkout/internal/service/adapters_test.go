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

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/ecache/memory/lru"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
	"github.com/lapviet/lapstore/internal/order"
)

type stubOrderService struct {
	order.Service
	createFn func(cmd order.CreateOrderCmd) (order.Order, error)
}

func (s *stubOrderService) CreateOrder(_ context.Context, cmd order.CreateOrderCmd) (order.Order, error) {
	return s.createFn(cmd)
}

func TestOrderAdapter_RequestIDDedupe(t *testing.T) {
	t.Parallel()
	svc := &stubOrderService{createFn: func(cmd order.CreateOrderCmd) (order.Order, error) {
		return order.Order{SN: "OD100", PaymentMethod: cmd.PaymentMethod}, nil
	}}
	client := NewOrderClient(svc, lru.NewCache(16))

	cmd := CreateCmd{UID: 1, RequestID: "req-dup", Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}}}
	res, err := client.Create(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "OD100", res.OrderSN)

	// 同一个请求ID下单成功后再来一次要被拦下
	_, err = client.Create(context.Background(), cmd)
	assert.ErrorIs(t, err, ErrDuplicateSubmit)
}

func TestOrderAdapter_FailedCreateAllowsRetry(t *testing.T) {
	t.Parallel()
	var calls int
	svc := &stubOrderService{createFn: func(cmd order.CreateOrderCmd) (order.Order, error) {
		calls++
		if calls == 1 {
			return order.Order{}, errors.New("库存预占失败")
		}
		return order.Order{SN: "OD101"}, nil
	}}
	client := NewOrderClient(svc, lru.NewCache(16))

	cmd := CreateCmd{UID: 1, RequestID: "req-retry", Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}}}
	_, err := client.Create(context.Background(), cmd)
	require.Error(t, err)

	// 第一次没下成, 占位要被归还, 同一个请求ID重试必须放行
	res, err := client.Create(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "OD101", res.OrderSN)
	assert.Equal(t, 2, calls)
}
