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

// Item 购物车中的一项, 价格以加购时的快照为准展示,
// 实际成交价在下单时以最新价格重新计算
type Item struct {
	ID          int64
	UID         int64
	VariationID int64
	Quantity    int64

	// PriceAtAdd 加购时的成交价快照, 单位为VND
	PriceAtAdd int64

	// 以下字段从商品模块实时冗余, 不落库
	VariationName string
	Image         string
	LivePrice     int64
	Stock         int64

	Ctime int64
	Utime int64
}

// SubtotalSnapshot 按加购时价格计算的小计
func (i Item) SubtotalSnapshot() int64 {
	return i.PriceAtAdd * i.Quantity
}

// SubtotalLive 按当前价格计算的小计
func (i Item) SubtotalLive() int64 {
	return i.LivePrice * i.Quantity
}

type Cart struct {
	UID   int64
	Items []Item
}

func (c Cart) TotalSnapshot() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.SubtotalSnapshot()
	}
	return total
}

func (c Cart) TotalLive() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.SubtotalLive()
	}
	return total
}
