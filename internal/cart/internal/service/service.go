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
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"

	"github.com/lapviet/lapstore/internal/cart/internal/domain"
	"github.com/lapviet/lapstore/internal/cart/internal/repository"
	"github.com/lapviet/lapstore/internal/product"
)

var ErrInvalidQuantity = errors.New("商品数量非法")

//go:generate mockgen -source=./service.go -package=cartmocks -destination=../../mocks/cart.mock.go -typed Service
type Service interface {
	AddItem(ctx context.Context, uid, variationID, quantity int64) (int64, error)
	SetQuantity(ctx context.Context, uid, itemID, quantity int64) error
	RemoveItems(ctx context.Context, uid int64, itemIDs []int64) error
	Clear(ctx context.Context, uid int64) error
	RetrieveCart(ctx context.Context, uid int64) (domain.Cart, error)
}

func NewService(repo repository.CartRepository, productSvc product.Service) Service {
	return &service{repo: repo, productSvc: productSvc}
}

type service struct {
	repo       repository.CartRepository
	productSvc product.Service
}

func (s *service) AddItem(ctx context.Context, uid, variationID, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	variation, err := s.productSvc.FindVariationByID(ctx, variationID)
	if err != nil {
		return 0, fmt.Errorf("查找商品SKU失败: %w", err)
	}
	return s.repo.Upsert(ctx, domain.Item{
		UID:         uid,
		VariationID: variationID,
		Quantity:    quantity,
		PriceAtAdd:  variation.SellingPrice(),
	})
}

func (s *service) SetQuantity(ctx context.Context, uid, itemID, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, uid, itemID, quantity)
}

func (s *service) RemoveItems(ctx context.Context, uid int64, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return s.repo.Delete(ctx, uid, itemIDs)
}

func (s *service) Clear(ctx context.Context, uid int64) error {
	return s.repo.DeleteAll(ctx, uid)
}

// RetrieveCart 返回购物车并以最新商品信息冗余每一项,
// 快照价和实时价同时给出, 价格变动由前端展示
func (s *service) RetrieveCart(ctx context.Context, uid int64) (domain.Cart, error) {
	items, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		return domain.Cart{}, err
	}
	if len(items) == 0 {
		return domain.Cart{UID: uid}, nil
	}
	ids := slice.Map(items, func(idx int, src domain.Item) int64 {
		return src.VariationID
	})
	variations, err := s.productSvc.FindVariationsByIDs(ctx, ids)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("查找商品SKU失败: %w", err)
	}
	byID := make(map[int64]product.Variation, len(variations))
	for _, v := range variations {
		byID[v.ID] = v
	}
	for i := range items {
		v, ok := byID[items[i].VariationID]
		if !ok {
			continue
		}
		items[i].VariationName = v.Name
		items[i].Image = v.Image
		items[i].LivePrice = v.SellingPrice()
		items[i].Stock = v.Stock
	}
	return domain.Cart{UID: uid, Items: items}, nil
}
