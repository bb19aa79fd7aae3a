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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapviet/lapstore/internal/order/internal/domain"
	"github.com/lapviet/lapstore/internal/product"
	"github.com/lapviet/lapstore/internal/shipping"
)

type stubProductService struct {
	product.Service
	variations []product.Variation
}

func (s *stubProductService) FindVariationsByIDs(_ context.Context, _ []int64) ([]product.Variation, error) {
	return s.variations, nil
}

type stubShippingService struct {
	shipping.Service
	quote shipping.Quote
}

func (s *stubShippingService) Quote(_ context.Context, _, _, _ int64) (shipping.Quote, error) {
	return s.quote, nil
}

func previewService(variations []product.Variation, quote shipping.Quote) Service {
	return NewService(nil, nil,
		&stubProductService{variations: variations},
		&stubShippingService{quote: quote},
		nil, nil, nil)
}

func TestService_Preview(t *testing.T) {
	t.Parallel()
	variations := []product.Variation{
		{ID: 100, Name: "ThinkPad X1", Price: 25_000_000, Stock: 5},
		{ID: 200, Name: "MacBook Air", Price: 30_000_000, DiscountPrice: 28_000_000, Stock: 2},
	}
	testCases := []struct {
		name  string
		items []domain.Item
		quote shipping.Quote

		wantSubtotal int64
		wantTotal    int64
		wantWarnings []domain.StockWarning
	}{
		{
			name: "原价加折扣价混合",
			items: []domain.Item{
				{VariationID: 100, Quantity: 2},
				{VariationID: 200, Quantity: 1},
			},
			quote:        shipping.Quote{Fee: 30_000, Reason: shipping.ReasonStandard},
			wantSubtotal: 78_000_000,
			wantTotal:    78_030_000,
		},
		{
			name: "免运费",
			items: []domain.Item{
				{VariationID: 200, Quantity: 1},
			},
			quote:        shipping.Quote{Fee: 0, Reason: shipping.ReasonHCMSubtotalFree},
			wantSubtotal: 28_000_000,
			wantTotal:    28_000_000,
		},
		{
			name: "超出库存只预警不报错",
			items: []domain.Item{
				{VariationID: 200, Quantity: 3},
			},
			quote:        shipping.Quote{Fee: 30_000, Reason: shipping.ReasonStandard},
			wantSubtotal: 84_000_000,
			wantTotal:    84_030_000,
			wantWarnings: []domain.StockWarning{
				{VariationID: 200, Requested: 3, Available: 2},
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := previewService(variations, tc.quote)
			preview, err := svc.Preview(context.Background(), tc.items, 79, 26734)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSubtotal, preview.Subtotal)
			assert.Equal(t, tc.quote.Fee, preview.ShippingFee)
			assert.Equal(t, string(tc.quote.Reason), preview.ShippingReason)
			assert.Equal(t, tc.wantTotal, preview.Total)
			assert.Equal(t, tc.wantWarnings, preview.StockWarnings)
		})
	}
}

func TestService_Preview_UnknownVariation(t *testing.T) {
	t.Parallel()
	svc := previewService([]product.Variation{{ID: 100, Price: 25_000_000, Stock: 5}}, shipping.Quote{})
	_, err := svc.Preview(context.Background(), []domain.Item{{VariationID: 999, Quantity: 1}}, 79, 26734)
	assert.ErrorIs(t, err, ErrVariationNotFound)
}
