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

package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	c := NewClient(Config{
		TmnCode:    "LAPVIET1",
		HashSecret: "SECRETSECRETSECRETSECRETSECRET12",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://lapviet.vn/thanh-toan/ket-qua",
	})
	c.now = func() time.Time {
		return time.Date(2025, 8, 30, 10, 30, 0, 0, time.UTC)
	}
	return c
}

func TestClient_BuildPaymentURL(t *testing.T) {
	t.Parallel()
	c := newTestClient()
	rawURL := c.BuildPaymentURL(PaymentParams{
		TxnRef:    "1234567890",
		Amount:    25_000_000,
		OrderInfo: "Thanh toan don hang ORD-ABC123-XYZ9",
		BankCode:  "VNBANK",
		IPAddr:    "203.113.131.1",
	})

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	q := parsed.Query()
	// 金额按协议要求乘100
	assert.Equal(t, "2500000000", q.Get("vnp_Amount"))
	assert.Equal(t, "2.1.0", q.Get("vnp_Version"))
	assert.Equal(t, "pay", q.Get("vnp_Command"))
	assert.Equal(t, "VND", q.Get("vnp_CurrCode"))
	assert.Equal(t, "VNBANK", q.Get("vnp_BankCode"))
	assert.Equal(t, "1234567890", q.Get("vnp_TxnRef"))
	assert.Equal(t, "203.113.131.1", q.Get("vnp_IpAddr"))
	// 创建时间按越南时区格式化
	assert.Equal(t, "20250830173000", q.Get("vnp_CreateDate"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))

	// 回传同样的参数应当验签通过
	params := make(map[string]string, len(q))
	for k := range q {
		params[k] = q.Get(k)
	}
	assert.True(t, c.VerifyCallback(params))
}

func TestClient_BuildPaymentURL_SortedParams(t *testing.T) {
	t.Parallel()
	c := newTestClient()
	rawURL := c.BuildPaymentURL(PaymentParams{
		TxnRef:    "42",
		Amount:    100_000,
		OrderInfo: "don hang 42",
		IPAddr:    "::1",
	})
	query := rawURL[strings.Index(rawURL, "?")+1:]
	pairs := strings.Split(query, "&")
	// 末尾是签名字段, 其余按键名字典序
	keys := make([]string, 0, len(pairs)-1)
	for _, p := range pairs[:len(pairs)-1] {
		keys = append(keys, p[:strings.Index(p, "=")])
	}
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
	// IPv6回环地址被归一化
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", parsed.Query().Get("vnp_IpAddr"))
}

func TestClient_VerifyCallback(t *testing.T) {
	t.Parallel()
	c := newTestClient()

	base := map[string]string{
		"vnp_TxnRef":        "1234567890",
		"vnp_Amount":        "2500000000",
		"vnp_ResponseCode":  "00",
		"vnp_TransactionNo": "14226112",
	}
	query := signedQuery(base)
	signed := make(map[string]string, len(base)+1)
	for k, v := range base {
		signed[k] = v
	}
	signed["vnp_SecureHash"] = c.sign(query)

	t.Run("签名正确", func(t *testing.T) {
		assert.True(t, c.VerifyCallback(signed))
	})
	t.Run("金额被篡改", func(t *testing.T) {
		tampered := make(map[string]string, len(signed))
		for k, v := range signed {
			tampered[k] = v
		}
		tampered["vnp_Amount"] = "100"
		assert.False(t, c.VerifyCallback(tampered))
	})
	t.Run("缺少签名字段", func(t *testing.T) {
		assert.False(t, c.VerifyCallback(base))
	})
}
