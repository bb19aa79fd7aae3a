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

func TestCart_Totals(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name          string
		cart          Cart
		wantTotalSnap int64
		wantTotalLive int64
	}{
		{
			name:          "空购物车",
			cart:          Cart{UID: 1},
			wantTotalSnap: 0,
			wantTotalLive: 0,
		},
		{
			name: "快照价与实时价一致",
			cart: Cart{UID: 1, Items: []Item{
				{Quantity: 2, PriceAtAdd: 15_000_000, LivePrice: 15_000_000},
			}},
			wantTotalSnap: 30_000_000,
			wantTotalLive: 30_000_000,
		},
		{
			name: "加购后降价",
			cart: Cart{UID: 1, Items: []Item{
				{Quantity: 1, PriceAtAdd: 20_000_000, LivePrice: 18_000_000},
				{Quantity: 3, PriceAtAdd: 5_000_000, LivePrice: 5_000_000},
			}},
			wantTotalSnap: 35_000_000,
			wantTotalLive: 33_000_000,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantTotalSnap, tc.cart.TotalSnapshot())
			assert.Equal(t, tc.wantTotalLive, tc.cart.TotalLive())
		})
	}
}
