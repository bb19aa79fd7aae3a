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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lapviet/lapstore/internal/order/internal/domain"
	"github.com/lapviet/lapstore/internal/payment"
)

func TestCanCancel(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		method    string
		status    domain.Status
		pmtStatus payment.Status
		want      bool
	}{
		{
			name:      "在线支付_待支付_未付款_可取消",
			method:    string(payment.MethodVNPAY),
			status:    domain.StatusAwaitingPayment,
			pmtStatus: payment.StatusPending,
			want:      true,
		},
		{
			name:      "货到付款_备货中_未付款_可取消",
			method:    string(payment.MethodCOD),
			status:    domain.StatusProcessing,
			pmtStatus: payment.StatusPending,
			want:      true,
		},
		{
			name:      "在线支付_备货中_已付款_可取消",
			method:    string(payment.MethodVNPAY),
			status:    domain.StatusProcessing,
			pmtStatus: payment.StatusCompleted,
			want:      true,
		},
		{
			name:      "在线支付_已发货_已付款_不可取消",
			method:    string(payment.MethodVNPAY),
			status:    domain.StatusShipping,
			pmtStatus: payment.StatusCompleted,
			want:      false,
		},
		{
			name:      "货到付款_已发货_未付款_不可取消",
			method:    string(payment.MethodCOD),
			status:    domain.StatusShipping,
			pmtStatus: payment.StatusPending,
			want:      false,
		},
		{
			name:      "在线支付_已取消_不可重复取消",
			method:    string(payment.MethodVNPAY),
			status:    domain.StatusCancelled,
			pmtStatus: payment.StatusFailed,
			want:      false,
		},
		{
			name:      "在线支付_待支付_支付已失败_不可取消",
			method:    string(payment.MethodVNPAY),
			status:    domain.StatusAwaitingPayment,
			pmtStatus: payment.StatusFailed,
			want:      false,
		},
		{
			name:      "货到付款_已送达_不可取消",
			method:    string(payment.MethodCOD),
			status:    domain.StatusDelivered,
			pmtStatus: payment.StatusCompleted,
			want:      false,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			order := domain.Order{
				PaymentMethod: tc.method,
				Status:        tc.status,
			}
			pmt := payment.Payment{Status: tc.pmtStatus}
			assert.Equal(t, tc.want, CanCancel(order, pmt))
		})
	}
}
