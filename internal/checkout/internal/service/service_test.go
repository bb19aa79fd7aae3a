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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
)

func TestService_HandleGatewayReturn(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name        string
		pending     *domain.PendingCheckout
		success     bool
		wantSN      string
		wantRemoved [][]int64
	}{
		{
			name:        "支付成功_执行被推迟的购物车清理",
			pending:     &domain.PendingCheckout{OrderSN: "ORD-A", CartItemIDs: []int64{11, 12}},
			success:     true,
			wantSN:      "ORD-A",
			wantRemoved: [][]int64{{11, 12}},
		},
		{
			name:    "支付失败_购物车保持原样",
			pending: &domain.PendingCheckout{OrderSN: "ORD-B", CartItemIDs: []int64{11}},
			success: false,
			wantSN:  "ORD-B",
		},
		{
			name:    "没有断点_静默返回",
			pending: nil,
			success: true,
			wantSN:  "",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cart := &fakeCart{}
			pending := &fakePending{cur: tc.pending}
			svc := NewService(Deps{Cart: cart, Pending: pending}, Config{})

			sn, err := svc.HandleGatewayReturn(context.Background(), 1, tc.success)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSN, sn)
			assert.Equal(t, tc.wantRemoved, cart.removedBatches())
			// 无论成败断点都被清掉
			_, err = pending.Load(context.Background(), 1)
			assert.ErrorIs(t, err, ErrNoPendingCheckout)
		})
	}
}

func TestService_AddressChange(t *testing.T) {
	t.Parallel()
	newSvc := func(oldFee, newFee int64) (*Service, *fakeOrders) {
		orders := &fakeOrders{info: OrderInfo{Subtotal: 25_000_000, ShippingFee: oldFee}}
		quotes := &fakeQuotes{fn: func(provinceID, wardID, subtotal int64) (domain.Quote, error) {
			return domain.Quote{Fee: newFee, Reason: "STANDARD"}, nil
		}}
		return NewService(Deps{Orders: orders, Quotes: quotes}, Config{}), orders
	}
	address := AddressInput{ProvinceID: 1, WardID: 40, Street: "5 Trang Tien",
		ReceiverName: "Nguyen Van A", Phone: "0901234567"}

	t.Run("运费有差额_未确认时拒绝提交", func(t *testing.T) {
		t.Parallel()
		svc, orders := newSvc(0, 30_000)
		proposal, err := svc.PrepareAddressChange(context.Background(), 1, "ORD-A", address)
		require.NoError(t, err)
		assert.Equal(t, int64(30_000), proposal.Delta)
		assert.True(t, proposal.NeedsConfirmation())

		err = svc.CommitAddressChange(context.Background(), 1, proposal, false)
		assert.ErrorIs(t, err, ErrFeeDeltaPending)
		// 拒绝不触碰订单
		assert.Empty(t, orders.updated)
	})

	t.Run("运费有差额_确认后提交", func(t *testing.T) {
		t.Parallel()
		svc, orders := newSvc(30_000, 0)
		proposal, err := svc.PrepareAddressChange(context.Background(), 1, "ORD-A", address)
		require.NoError(t, err)
		assert.Equal(t, int64(-30_000), proposal.Delta)

		require.NoError(t, svc.CommitAddressChange(context.Background(), 1, proposal, true))
		require.Len(t, orders.updated, 1)
		assert.Equal(t, address, orders.updated[0])
	})

	t.Run("运费没变_无需确认直接提交", func(t *testing.T) {
		t.Parallel()
		svc, orders := newSvc(30_000, 30_000)
		proposal, err := svc.PrepareAddressChange(context.Background(), 1, "ORD-A", address)
		require.NoError(t, err)
		assert.False(t, proposal.NeedsConfirmation())

		require.NoError(t, svc.CommitAddressChange(context.Background(), 1, proposal, false))
		assert.Len(t, orders.updated, 1)
	})
}
