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

package web

import (
	"github.com/ecodeclub/ekit/slice"

	"github.com/lapviet/lapstore/internal/cart/internal/domain"
)

type AddItemReq struct {
	VariationID int64 `json:"variationId"`
	Quantity    int64 `json:"quantity"`
}

type AddItemResp struct {
	ItemID int64 `json:"itemId"`
}

type SetQuantityReq struct {
	ItemID   int64 `json:"itemId"`
	Quantity int64 `json:"quantity"`
}

type RemoveItemsReq struct {
	ItemIDs []int64 `json:"itemIds"`
}

type CartResp struct {
	Items []Item `json:"items"`
	// TotalSnapshot 按加购价计算的合计, TotalLive 按当前价计算的合计
	TotalSnapshot int64 `json:"totalSnapshot"`
	TotalLive     int64 `json:"totalLive"`
}

type Item struct {
	ID               int64  `json:"id"`
	VariationID      int64  `json:"variationId"`
	VariationName    string `json:"variationName"`
	Image            string `json:"image"`
	Quantity         int64  `json:"quantity"`
	PriceAtAdd       int64  `json:"priceAtAdd"`
	LivePrice        int64  `json:"livePrice"`
	Stock            int64  `json:"stock"`
	SubtotalSnapshot int64  `json:"subtotalSnapshot"`
	SubtotalLive     int64  `json:"subtotalLive"`
}

func newCartResp(cart domain.Cart) CartResp {
	return CartResp{
		Items: slice.Map(cart.Items, func(idx int, src domain.Item) Item {
			return Item{
				ID:               src.ID,
				VariationID:      src.VariationID,
				VariationName:    src.VariationName,
				Image:            src.Image,
				Quantity:         src.Quantity,
				PriceAtAdd:       src.PriceAtAdd,
				LivePrice:        src.LivePrice,
				Stock:            src.Stock,
				SubtotalSnapshot: src.SubtotalSnapshot(),
				SubtotalLive:     src.SubtotalLive(),
			}
		}),
		TotalSnapshot: cart.TotalSnapshot(),
		TotalLive:     cart.TotalLive(),
	}
}
