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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"

	"github.com/lapviet/lapstore/internal/cart/internal/domain"
	"github.com/lapviet/lapstore/internal/cart/internal/repository/dao"
)

type CartRepository interface {
	Upsert(ctx context.Context, item domain.Item) (int64, error)
	UpdateQuantity(ctx context.Context, uid, id, quantity int64) error
	Delete(ctx context.Context, uid int64, ids []int64) error
	DeleteAll(ctx context.Context, uid int64) error
	FindByUID(ctx context.Context, uid int64) ([]domain.Item, error)
	FindByID(ctx context.Context, uid, id int64) (domain.Item, error)
}

func NewCartRepository(d dao.CartDAO) CartRepository {
	return &cartRepository{dao: d}
}

type cartRepository struct {
	dao dao.CartDAO
}

func (c *cartRepository) Upsert(ctx context.Context, item domain.Item) (int64, error) {
	return c.dao.Upsert(ctx, dao.CartItem{
		Uid:         item.UID,
		VariationID: item.VariationID,
		Quantity:    item.Quantity,
		PriceAtAdd:  item.PriceAtAdd,
	})
}

func (c *cartRepository) UpdateQuantity(ctx context.Context, uid, id, quantity int64) error {
	return c.dao.UpdateQuantity(ctx, uid, id, quantity)
}

func (c *cartRepository) Delete(ctx context.Context, uid int64, ids []int64) error {
	return c.dao.Delete(ctx, uid, ids)
}

func (c *cartRepository) DeleteAll(ctx context.Context, uid int64) error {
	return c.dao.DeleteAll(ctx, uid)
}

func (c *cartRepository) FindByUID(ctx context.Context, uid int64) ([]domain.Item, error) {
	items, err := c.dao.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(items, func(idx int, src dao.CartItem) domain.Item {
		return c.toDomain(src)
	}), nil
}

func (c *cartRepository) FindByID(ctx context.Context, uid, id int64) (domain.Item, error) {
	item, err := c.dao.FindByID(ctx, uid, id)
	if err != nil {
		return domain.Item{}, err
	}
	return c.toDomain(item), nil
}

func (c *cartRepository) toDomain(item dao.CartItem) domain.Item {
	return domain.Item{
		ID:          item.Id,
		UID:         item.Uid,
		VariationID: item.VariationID,
		Quantity:    item.Quantity,
		PriceAtAdd:  item.PriceAtAdd,
		Ctime:       item.Ctime,
		Utime:       item.Utime,
	}
}
