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

import "github.com/ecodeclub/ekit/slice"

type Mode uint8

const (
	// ModeCart 从购物车结算, 下单成功后按条目ID精确移除
	ModeCart Mode = 1
	// ModeBuyNow 立即购买, 全程不碰购物车
	ModeBuyNow Mode = 2
)

// Intent 结算意图, 进入结算页时创建, 提交后即弃
type Intent struct {
	Mode  Mode
	Items []IntentItem
}

type IntentItem struct {
	VariationID int64
	Quantity    int64
}

// ViewItem 展示用条目, 从购物车快照补全显示信息。
// 不携带定价权, 金额一律以服务端报价为准
type ViewItem struct {
	VariationID int64
	Quantity    int64
	// CartItemID 购物车条目ID, 仅来自购物车的条目才有,
	// 下单成功后按它做精确移除
	CartItemID int64
	Name       string
	Image      string
	// LivePrice 购物车快照里的当前售价, 只用于降级估算
	LivePrice int64
	Stock     int64
	// InCart 立即购买跳过购物车时为false, 展示层要兜住缺失信息
	InCart bool
}

// CartLine 购物车快照里的一行, 由cart模块的数据映射而来
type CartLine struct {
	ID          int64
	VariationID int64
	Name        string
	Image       string
	LivePrice   int64
	Stock       int64
}

// BuildViewItems 纯函数: 按variation_id把结算意图和购物车快照对齐。
// 不发请求, 不改购物车
func BuildViewItems(items []IntentItem, cartLines []CartLine) []ViewItem {
	byVariation := make(map[int64]CartLine, len(cartLines))
	for _, line := range cartLines {
		byVariation[line.VariationID] = line
	}
	return slice.Map(items, func(idx int, src IntentItem) ViewItem {
		view := ViewItem{
			VariationID: src.VariationID,
			Quantity:    src.Quantity,
		}
		if line, ok := byVariation[src.VariationID]; ok {
			view.CartItemID = line.ID
			view.Name = line.Name
			view.Image = line.Image
			view.LivePrice = line.LivePrice
			view.Stock = line.Stock
			view.InCart = true
		}
		return view
	})
}

// EstimateSubtotal 降级估算: 只能基于购物车快照价, 缓存里没有的条目算不了,
// 返回false表示估算不完整
func EstimateSubtotal(items []ViewItem) (int64, bool) {
	var subtotal int64
	complete := true
	for _, item := range items {
		if !item.InCart {
			complete = false
			continue
		}
		subtotal += item.LivePrice * item.Quantity
	}
	return subtotal, complete
}

type Point struct {
	Lat float64
	Lng float64
}

// GateState 位置确认门, 坐标必须经用户显式确认才能用于下单
type GateState uint8

const (
	GateUnset GateState = iota
	GateCandidate
	GateConfirmed
)

// Destination 收货目的地, 任何字段变更都会把确认门打回候选态
type Destination struct {
	ProvinceID   int64
	ProvinceName string
	WardID       int64
	WardName     string
	Street       string
	Point        *Point
}

type Contact struct {
	Name  string
	Phone string
	Email string
}

// PricingSource 标记当前展示金额的来源
type PricingSource uint8

const (
	// PricingNone 尚无任何报价
	PricingNone PricingSource = iota
	// PricingEstimated 服务端报价未就绪或失败时的本地估算
	PricingEstimated
	// PricingAuthoritative 服务端权威报价
	PricingAuthoritative
)

// Quote 运费报价结果
type Quote struct {
	Fee    int64
	Reason string
}

// Preview 服务端权威报价, 展示金额的唯一事实来源
type Preview struct {
	Subtotal       int64
	ShippingFee    int64
	ShippingReason string
	Total          int64
	Items          []PreviewItem
	StockWarnings  []StockWarning
}

type PreviewItem struct {
	VariationID int64
	Name        string
	Price       int64
	RealPrice   int64
	Quantity    int64
	Subtotal    int64
}

// StockWarning 库存冲突预警, 存在任何一条都要拦截提交
type StockWarning struct {
	VariationID int64
	Requested   int64
	Available   int64
}

// SubmitResult 提交结果, RedirectURL非空表示要跳转网关收银台
type SubmitResult struct {
	OrderSN     string
	RedirectURL string
}

// PendingCheckout 网关跳转前落的断点, 回跳后据此做购物车清理
type PendingCheckout struct {
	OrderSN     string  `json:"orderSN"`
	CartItemIDs []int64 `json:"cartItemIds"`
	Timestamp   int64   `json:"timestamp"`
}
