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

	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
)

// 结算编排器对外部协作方的依赖口径, 单测用假实现替换

//go:generate mockgen -source=./ports.go -package=checkoutmocks -destination=../../mocks/ports.mock.go -typed
type QuoteClient interface {
	Quote(ctx context.Context, provinceID, wardID, subtotal int64) (domain.Quote, error)
}

type PreviewClient interface {
	Preview(ctx context.Context, items []domain.IntentItem, provinceID, wardID int64) (domain.Preview, error)
}

type Geocoder interface {
	Forward(ctx context.Context, query string) (domain.Point, error)
}

// CreateCmd 提交订单的完整载荷。Items只带variation_id和quantity,
// 金额一律由服务端重算
type CreateCmd struct {
	UID       int64
	RequestID string
	Items     []domain.IntentItem

	ProvinceID   int64
	ProvinceName string
	WardID       int64
	WardName     string
	Street       string
	ReceiverName string
	Phone        string
	Lat          float64
	Lng          float64

	PaymentMethod string
	BankCode      string
	Note          string
	// CartItemIDs 创建成功后要移除的购物车条目, 立即购买模式为空
	CartItemIDs []int64
	ClientIP    string
}

// AddressInput 改址输入, 字段与下单载荷里的地址部分一致
type AddressInput struct {
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

// OrderInfo 改址流程需要的订单现状
type OrderInfo struct {
	SN          string
	Subtotal    int64
	ShippingFee int64
	Total       int64
}

type OrderClient interface {
	Create(ctx context.Context, cmd CreateCmd) (domain.SubmitResult, error)
	Find(ctx context.Context, uid int64, sn string) (OrderInfo, error)
	UpdateAddress(ctx context.Context, uid int64, sn string, address AddressInput) error
}

type CartClient interface {
	Lines(ctx context.Context, uid int64) ([]domain.CartLine, error)
	RemoveItems(ctx context.Context, uid int64, itemIDs []int64) error
}

// PendingCheckouts 网关跳转断点的存取口径, 生产实现见PendingStore
type PendingCheckouts interface {
	Save(ctx context.Context, uid int64, pending domain.PendingCheckout) error
	Load(ctx context.Context, uid int64) (domain.PendingCheckout, error)
	Clear(ctx context.Context, uid int64) error
}
