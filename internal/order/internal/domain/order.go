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

package domain

type Status string

const (
	// StatusAwaitingPayment 在线支付下单后等待网关回调的状态, 带库存预占期限
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusProcessing      Status = "PROCESSING"
	StatusShipping        Status = "SHIPPING"
	StatusDelivered       Status = "DELIVERED"
	StatusCancelled       Status = "CANCELLED"
	StatusFailed          Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

type Order struct {
	ID  int64
	SN  string
	UID int64

	Items []Item

	// Subtotal 商品小计, ShippingFee 运费, Total 应付合计, 单位都是VND
	Subtotal    int64
	ShippingFee int64
	Total       int64

	PaymentMethod string
	Address       Address
	// Note 用户随单留言, 比如指定送达时段
	Note string

	Status Status
	// ReserveExpiresAt 库存预占截止时间, 只有在线支付的待支付订单才有
	ReserveExpiresAt int64
	PaidAt           int64
	Ctime            int64
	Utime            int64

	// PaymentURL VNPAY收银台跳转链接, 下单时临时生成, 不落库
	PaymentURL string
}

type Item struct {
	VariationID int64
	Name        string
	Image       string
	// Price 下单时的原价, RealPrice 下单时的成交价
	Price     int64
	RealPrice int64
	Quantity  int64
	Subtotal  int64
}

type Address struct {
	ProvinceID   int64
	ProvinceName string
	WardID       int64
	WardName     string
	Street       string
	ReceiverName string
	Phone        string
	Lat          float64
	Lng          float64
}

// Preview 下单前的服务端报价, 不落库
type Preview struct {
	Items       []Item
	Subtotal    int64
	ShippingFee int64
	// ShippingReason 运费来源说明, 同shipping模块的Reason
	ShippingReason string
	Total          int64
	// StockWarnings 超出现有库存的条目, 报价不报错, 由前端拦截提交
	StockWarnings []StockWarning
}

type StockWarning struct {
	VariationID int64
	Requested   int64
	Available   int64
}
