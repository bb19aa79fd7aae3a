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

// Package vnpay 实现VNPAY网关的跳转链接构造与回调验签。
// 签名规则: 参数按键名字典序排列, 键和值都按表单规则URL编码(空格编码为+),
// 对拼接后的查询串做HMAC-SHA512, 密钥为商户HashSecret。
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	version = "2.1.0"
	command = "pay"

	// 时区固定为越南, vnp_CreateDate按此时区格式化
	timeLayout = "20060102150405"
)

type Config struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

type Client struct {
	cfg Config
	loc *time.Location
	now func() time.Time
}

func NewClient(cfg Config) *Client {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		loc = time.FixedZone("ICT", 7*3600)
	}
	return &Client{cfg: cfg, loc: loc, now: time.Now}
}

// PaymentParams 构造跳转链接所需的业务参数
type PaymentParams struct {
	// TxnRef 商户侧唯一对账号
	TxnRef string
	// Amount 单位为VND, 发给网关时按协议要求乘100
	Amount    int64
	OrderInfo string
	BankCode  string
	IPAddr    string
	// ExpireAt 支付链接过期时刻, 零值表示不传
	ExpireAt time.Time
}

// BuildPaymentURL 生成带签名的收银台跳转链接
func (c *Client) BuildPaymentURL(p PaymentParams) string {
	now := c.now().In(c.loc)
	params := map[string]string{
		"vnp_Version":    version,
		"vnp_Command":    command,
		"vnp_TmnCode":    c.cfg.TmnCode,
		"vnp_Locale":     "vn",
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     p.TxnRef,
		"vnp_OrderInfo":  p.OrderInfo,
		"vnp_OrderType":  "other",
		"vnp_Amount":     strconv.FormatInt(p.Amount*100, 10),
		"vnp_ReturnUrl":  c.cfg.ReturnURL,
		"vnp_IpAddr":     normalizeIP(p.IPAddr),
		"vnp_CreateDate": now.Format(timeLayout),
	}
	if p.BankCode != "" {
		params["vnp_BankCode"] = p.BankCode
	}
	if !p.ExpireAt.IsZero() {
		params["vnp_ExpireDate"] = p.ExpireAt.In(c.loc).Format(timeLayout)
	}
	query := signedQuery(params)
	hash := c.sign(query)
	return fmt.Sprintf("%s?%s&vnp_SecureHash=%s", c.cfg.PayURL, query, hash)
}

// VerifyCallback 校验IPN或Return回调的签名。
// params为回调携带的全部查询参数, 校验时剔除签名字段本身。
func (c *Client) VerifyCallback(params map[string]string) bool {
	got, ok := params["vnp_SecureHash"]
	if !ok {
		return false
	}
	filtered := make(map[string]string, len(params))
	for k, v := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		filtered[k] = v
	}
	want := c.sign(signedQuery(filtered))
	return hmac.Equal([]byte(strings.ToLower(got)), []byte(want))
}

func (c *Client) sign(query string) string {
	mac := hmac.New(sha512.New, []byte(c.cfg.HashSecret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

// signedQuery 按键名排序后拼接, 键和值都按表单规则编码
func signedQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}
	return strings.Join(pairs, "&")
}

// normalizeIP 网关不接受IPv6地址, 本地回环和IPv6一律按127.0.0.1上报
func normalizeIP(ip string) string {
	if ip == "" || strings.Contains(ip, ":") {
		return "127.0.0.1"
	}
	return ip
}
