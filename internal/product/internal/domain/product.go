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

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusOffShelf Status = 1 // 下架
	StatusOnShelf  Status = 2 // 上架
)

// Product 商品SPU, 一款笔记本
type Product struct {
	ID         int64
	SN         string
	Name       string
	Desc       string
	Brand      string
	Category   string
	Status     Status
	Variations []Variation
}

// Variation 商品SKU, 同款笔记本的一种配置
type Variation struct {
	ID        int64
	ProductID int64
	SN        string
	Name      string

	// 单位为VND
	Price         int64
	DiscountPrice int64
	Stock         int64

	// Attrs 配置属性, JSON格式, 如CPU/内存/硬盘/屏幕
	Attrs  string
	Image  string
	Status Status
}

// SellingPrice 有折扣价时以折扣价成交
func (v Variation) SellingPrice() int64 {
	if v.DiscountPrice > 0 && v.DiscountPrice < v.Price {
		return v.DiscountPrice
	}
	return v.Price
}

// StockReservation 下单时的库存预占
type StockReservation struct {
	VariationID int64
	Quantity    int64
}
