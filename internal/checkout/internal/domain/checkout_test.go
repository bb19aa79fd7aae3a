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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildViewItems(t *testing.T) {
	t.Parallel()
	lines := []CartLine{
		{ID: 11, VariationID: 100, Name: "ThinkPad X1", Image: "x1.jpg", LivePrice: 25_000_000, Stock: 5},
		{ID: 12, VariationID: 200, Name: "MacBook Air", Image: "air.jpg", LivePrice: 28_000_000, Stock: 2},
	}
	testCases := []struct {
		name  string
		items []IntentItem
		lines []CartLine
		want  []ViewItem
	}{
		{
			name:  "全部命中购物车",
			items: []IntentItem{{VariationID: 100, Quantity: 2}, {VariationID: 200, Quantity: 1}},
			lines: lines,
			want: []ViewItem{
				{VariationID: 100, Quantity: 2, CartItemID: 11, Name: "ThinkPad X1", Image: "x1.jpg", LivePrice: 25_000_000, Stock: 5, InCart: true},
				{VariationID: 200, Quantity: 1, CartItemID: 12, Name: "MacBook Air", Image: "air.jpg", LivePrice: 28_000_000, Stock: 2, InCart: true},
			},
		},
		{
			name:  "立即购买_购物车未命中_按最小信息展示",
			items: []IntentItem{{VariationID: 300, Quantity: 1}},
			lines: lines,
			want:  []ViewItem{{VariationID: 300, Quantity: 1}},
		},
		{
			name:  "部分命中",
			items: []IntentItem{{VariationID: 100, Quantity: 1}, {VariationID: 999, Quantity: 3}},
			lines: lines,
			want: []ViewItem{
				{VariationID: 100, Quantity: 1, CartItemID: 11, Name: "ThinkPad X1", Image: "x1.jpg", LivePrice: 25_000_000, Stock: 5, InCart: true},
				{VariationID: 999, Quantity: 3},
			},
		},
		{
			name:  "空购物车",
			items: []IntentItem{{VariationID: 100, Quantity: 1}},
			lines: nil,
			want:  []ViewItem{{VariationID: 100, Quantity: 1}},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, BuildViewItems(tc.items, tc.lines))
		})
	}
}

func TestEstimateSubtotal(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		items        []ViewItem
		wantSubtotal int64
		wantComplete bool
	}{
		{
			name: "全部有快照价",
			items: []ViewItem{
				{VariationID: 100, Quantity: 2, LivePrice: 25_000_000, InCart: true},
				{VariationID: 200, Quantity: 1, LivePrice: 28_000_000, InCart: true},
			},
			wantSubtotal: 78_000_000,
			wantComplete: true,
		},
		{
			name: "缺快照价的条目跳过_估算不完整",
			items: []ViewItem{
				{VariationID: 100, Quantity: 2, LivePrice: 25_000_000, InCart: true},
				{VariationID: 300, Quantity: 1},
			},
			wantSubtotal: 50_000_000,
			wantComplete: false,
		},
		{
			name:         "空条目",
			items:        nil,
			wantSubtotal: 0,
			wantComplete: true,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			subtotal, complete := EstimateSubtotal(tc.items)
			assert.Equal(t, tc.wantSubtotal, subtotal)
			assert.Equal(t, tc.wantComplete, complete)
		})
	}
}
