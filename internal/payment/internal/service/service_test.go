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
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapviet/lapstore/internal/payment/internal/domain"
	"github.com/lapviet/lapstore/internal/payment/internal/event"
	"github.com/lapviet/lapstore/internal/payment/internal/repository"
	"github.com/lapviet/lapstore/internal/payment/internal/repository/dao"
	"github.com/lapviet/lapstore/internal/payment/internal/service/vnpay"
)

const testHashSecret = "test-secret"

type fakePaymentRepo struct {
	repository.PaymentRepository

	payment    domain.Payment
	findErr    error
	paidCalls  int
	paidRows   int64
	failedRefs []string
}

func (f *fakePaymentRepo) FindByTxnRef(_ context.Context, _ string) (domain.Payment, error) {
	if f.findErr != nil {
		return domain.Payment{}, f.findErr
	}
	return f.payment, nil
}

func (f *fakePaymentRepo) MarkPaid(_ context.Context, _, _ string, _ int64) (int64, error) {
	f.paidCalls++
	return f.paidRows, nil
}

func (f *fakePaymentRepo) MarkFailedByTxnRef(_ context.Context, txnRef string) error {
	f.failedRefs = append(f.failedRefs, txnRef)
	return nil
}

type fakeEventProducer struct {
	events []event.PaymentEvent
}

func (f *fakeEventProducer) ProducePaymentEvent(_ context.Context, evt event.PaymentEvent) error {
	f.events = append(f.events, evt)
	return nil
}

// signParams 按网关规则给回调参数补上签名
func signParams(params map[string]string) map[string]string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}
	mac := hmac.New(sha512.New, []byte(testHashSecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	signed := make(map[string]string, len(params)+1)
	for k, v := range params {
		signed[k] = v
	}
	signed["vnp_SecureHash"] = hex.EncodeToString(mac.Sum(nil))
	return signed
}

func ipnService(repo repository.PaymentRepository, producer event.Producer) Service {
	gateway := vnpay.NewClient(vnpay.Config{
		TmnCode:    "TESTTMN",
		HashSecret: testHashSecret,
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://lapstore.vn/checkout/return",
	})
	return NewService(repo, gateway, nil, producer)
}

func TestService_HandleIPN(t *testing.T) {
	t.Parallel()
	pending := domain.Payment{
		ID: 1, OrderSN: "OD100", UID: 1,
		Method: domain.MethodVNPAY, Amount: 25_030_000,
		TxnRef: "TXN100", Status: domain.StatusPending,
	}
	okParams := func() map[string]string {
		return map[string]string{
			"vnp_TxnRef":        "TXN100",
			"vnp_Amount":        "2503000000",
			"vnp_ResponseCode":  "00",
			"vnp_TransactionNo": "14226112",
		}
	}

	testCases := []struct {
		name   string
		repo   *fakePaymentRepo
		params func() map[string]string

		wantCode   string
		wantEvents []event.PaymentEvent
		wantFailed []string
	}{
		{
			name: "签名不合法",
			repo: &fakePaymentRepo{payment: pending, paidRows: 1},
			params: func() map[string]string {
				params := signParams(okParams())
				params["vnp_SecureHash"] = "deadbeef"
				return params
			},
			wantCode: "97",
		},
		{
			name: "支付单不存在",
			repo: &fakePaymentRepo{findErr: dao.ErrPaymentNotFound},
			params: func() map[string]string {
				return signParams(okParams())
			},
			wantCode: "01",
		},
		{
			name: "金额不一致按失败关单",
			repo: &fakePaymentRepo{payment: pending},
			params: func() map[string]string {
				params := okParams()
				params["vnp_Amount"] = "100"
				return signParams(params)
			},
			wantCode:   "04",
			wantFailed: []string{"TXN100"},
			wantEvents: []event.PaymentEvent{
				{OrderSN: "OD100", TxnRef: "TXN100", Status: event.PaymentStatusFailed},
			},
		},
		{
			name: "重复通知幂等返回已确认",
			repo: &fakePaymentRepo{payment: func() domain.Payment {
				p := pending
				p.Status = domain.StatusCompleted
				return p
			}()},
			params: func() map[string]string {
				return signParams(okParams())
			},
			wantCode: "02",
		},
		{
			name: "网关侧支付失败",
			repo: &fakePaymentRepo{payment: pending},
			params: func() map[string]string {
				params := okParams()
				params["vnp_ResponseCode"] = "24"
				return signParams(params)
			},
			wantCode:   "00",
			wantFailed: []string{"TXN100"},
			wantEvents: []event.PaymentEvent{
				{OrderSN: "OD100", TxnRef: "TXN100", Status: event.PaymentStatusFailed},
			},
		},
		{
			name: "支付成功",
			repo: &fakePaymentRepo{payment: pending, paidRows: 1},
			params: func() map[string]string {
				return signParams(okParams())
			},
			wantCode: "00",
			wantEvents: []event.PaymentEvent{
				{OrderSN: "OD100", TxnRef: "TXN100", Status: event.PaymentStatusPaid},
			},
		},
		{
			name: "迟到的成功通知撞上已关单的支付单",
			repo: &fakePaymentRepo{payment: pending, paidRows: 0},
			params: func() map[string]string {
				return signParams(okParams())
			},
			// 更新零行说明支付单已是终态, 不能再发PAID事件复活订单
			wantCode: "02",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			producer := &fakeEventProducer{}
			svc := ipnService(tc.repo, producer)
			resp := svc.HandleIPN(context.Background(), tc.params())
			assert.Equal(t, tc.wantCode, resp.RspCode)
			assert.Equal(t, tc.wantEvents, producer.events)
			assert.Equal(t, tc.wantFailed, tc.repo.failedRefs)
		})
	}
}

func TestService_HandleIPN_SuccessMarksExactlyOnce(t *testing.T) {
	t.Parallel()
	repo := &fakePaymentRepo{
		payment: domain.Payment{
			ID: 1, OrderSN: "OD100",
			Method: domain.MethodVNPAY, Amount: 25_030_000,
			TxnRef: "TXN100", Status: domain.StatusPending,
		},
		paidRows: 1,
	}
	producer := &fakeEventProducer{}
	svc := ipnService(repo, producer)
	resp := svc.HandleIPN(context.Background(), signParams(map[string]string{
		"vnp_TxnRef":        "TXN100",
		"vnp_Amount":        "2503000000",
		"vnp_ResponseCode":  "00",
		"vnp_TransactionNo": "14226112",
	}))
	require.Equal(t, "00", resp.RspCode)
	assert.Equal(t, 1, repo.paidCalls)
	require.Len(t, producer.events, 1)
	assert.Equal(t, event.PaymentStatusPaid, producer.events[0].Status)
}
