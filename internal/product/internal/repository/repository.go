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
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"

	"github.com/lapviet/lapstore/internal/product/internal/domain"
	"github.com/lapviet/lapstore/internal/product/internal/repository/dao"
)

var (
	ErrStockNotEnough  = dao.ErrStockNotEnough
	ErrRowLockConflict = dao.ErrRowLockConflict
)

type ProductRepository interface {
	FindBySN(ctx context.Context, sn string) (domain.Product, error)
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindVariationByID(ctx context.Context, id int64) (domain.Variation, error)
	FindVariationsByIDs(ctx context.Context, ids []int64) ([]domain.Variation, error)
	List(ctx context.Context, category string, offset, limit int) (int64, []domain.Product, error)
	Search(ctx context.Context, keywords string, offset, limit int) ([]domain.Product, error)
	Save(ctx context.Context, product domain.Product) (int64, error)
	ReserveStock(ctx context.Context, reservations []domain.StockReservation) error
	ReleaseStock(ctx context.Context, reservations []domain.StockReservation) error
}

func NewProductRepository(d dao.ProductDAO, searchDAO dao.SearchDAO) ProductRepository {
	return &productRepository{
		dao:       d,
		searchDAO: searchDAO,
		logger:    elog.DefaultLogger,
	}
}

type productRepository struct {
	dao       dao.ProductDAO
	searchDAO dao.SearchDAO
	logger    *elog.Component
}

func (p *productRepository) FindBySN(ctx context.Context, sn string) (domain.Product, error) {
	product, err := p.dao.FindProductBySN(ctx, sn)
	if err != nil {
		return domain.Product{}, err
	}
	variations, err := p.dao.FindVariationsByProductID(ctx, product.Id)
	if err != nil {
		return domain.Product{}, err
	}
	return p.toDomain(product, variations), nil
}

func (p *productRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	product, err := p.dao.FindProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	variations, err := p.dao.FindVariationsByProductID(ctx, product.Id)
	if err != nil {
		return domain.Product{}, err
	}
	return p.toDomain(product, variations), nil
}

func (p *productRepository) FindVariationByID(ctx context.Context, id int64) (domain.Variation, error) {
	v, err := p.dao.FindVariationByID(ctx, id)
	if err != nil {
		return domain.Variation{}, err
	}
	return p.toDomainVariation(v), nil
}

func (p *productRepository) FindVariationsByIDs(ctx context.Context, ids []int64) ([]domain.Variation, error) {
	vs, err := p.dao.FindVariationsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(vs, func(idx int, src dao.Variation) domain.Variation {
		return p.toDomainVariation(src)
	}), nil
}

func (p *productRepository) List(ctx context.Context, category string, offset, limit int) (int64, []domain.Product, error) {
	var eg errgroup.Group
	var count int64
	var products []dao.Product
	eg.Go(func() error {
		var err error
		products, err = p.dao.FindProducts(ctx, category, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		count, err = p.dao.CountProducts(ctx, category)
		return err
	})
	if err := eg.Wait(); err != nil {
		return 0, nil, err
	}
	res := make([]domain.Product, 0, len(products))
	for _, product := range products {
		variations, err := p.dao.FindVariationsByProductID(ctx, product.Id)
		if err != nil {
			return 0, nil, err
		}
		res = append(res, p.toDomain(product, variations))
	}
	return count, res, nil
}

func (p *productRepository) Search(ctx context.Context, keywords string, offset, limit int) ([]domain.Product, error) {
	docs, err := p.searchDAO.SearchProducts(ctx, keywords, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := p.FindByID(ctx, doc.Id)
		if err != nil {
			// ES中的文档可能落后于数据库, 跳过已下架的
			p.logger.Warn("检索到的商品在数据库中不可用",
				elog.Int64("id", doc.Id), elog.FieldErr(err))
			continue
		}
		res = append(res, product)
	}
	return res, nil
}

func (p *productRepository) Save(ctx context.Context, product domain.Product) (int64, error) {
	productEntity, variationEntities := p.toEntity(product)
	id, err := p.dao.SaveProduct(ctx, productEntity, variationEntities)
	if err != nil {
		return 0, err
	}
	err = p.searchDAO.InputProduct(ctx, dao.ProductDoc{
		Id:       id,
		SN:       productEntity.SN,
		Name:     productEntity.Name,
		Desc:     productEntity.Description,
		Brand:    productEntity.Brand,
		Category: productEntity.Category,
		Attrs:    joinAttrs(variationEntities),
		Status:   productEntity.Status,
		Utime:    productEntity.Utime,
	})
	if err != nil {
		// 写ES失败不影响落库结果
		p.logger.Error("同步商品到ES失败", elog.Int64("id", id), elog.FieldErr(err))
	}
	return id, nil
}

func (p *productRepository) ReserveStock(ctx context.Context, reservations []domain.StockReservation) error {
	return p.dao.ReserveStock(ctx, reservations)
}

func (p *productRepository) ReleaseStock(ctx context.Context, reservations []domain.StockReservation) error {
	return p.dao.ReleaseStock(ctx, reservations)
}

func (p *productRepository) toDomain(product dao.Product, variations []dao.Variation) domain.Product {
	return domain.Product{
		ID:       product.Id,
		SN:       product.SN,
		Name:     product.Name,
		Desc:     product.Description,
		Brand:    product.Brand,
		Category: product.Category,
		Status:   domain.Status(product.Status),
		Variations: slice.Map(variations, func(idx int, src dao.Variation) domain.Variation {
			return p.toDomainVariation(src)
		}),
	}
}

func (p *productRepository) toDomainVariation(v dao.Variation) domain.Variation {
	return domain.Variation{
		ID:            v.Id,
		ProductID:     v.ProductID,
		SN:            v.SN,
		Name:          v.Name,
		Price:         v.Price,
		DiscountPrice: v.DiscountPrice,
		Stock:         v.Stock,
		Attrs:         v.Attrs.String,
		Image:         v.Image,
		Status:        domain.Status(v.Status),
	}
}

func (p *productRepository) toEntity(product domain.Product) (dao.Product, []dao.Variation) {
	productEntity := dao.Product{
		Id:          product.ID,
		SN:          product.SN,
		Name:        product.Name,
		Description: product.Desc,
		Brand:       product.Brand,
		Category:    product.Category,
		Status:      product.Status.ToUint8(),
	}
	if productEntity.SN == "" {
		productEntity.SN = p.genSN()
	}
	variations := make([]dao.Variation, 0, len(product.Variations))
	for _, v := range product.Variations {
		entity := dao.Variation{
			Id:            v.ID,
			SN:            v.SN,
			ProductID:     v.ProductID,
			Name:          v.Name,
			Price:         v.Price,
			DiscountPrice: v.DiscountPrice,
			Stock:         v.Stock,
			Attrs:         sqlx.NewNullString(v.Attrs),
			Image:         v.Image,
			Status:        v.Status.ToUint8(),
		}
		if entity.SN == "" {
			entity.SN = p.genSN()
		}
		variations = append(variations, entity)
	}
	return productEntity, variations
}

func (p *productRepository) genSN() string {
	return shortuuid.New()
}

func joinAttrs(variations []dao.Variation) string {
	res := ""
	for _, v := range variations {
		if v.Attrs.Valid {
			if res != "" {
				res += " "
			}
			res += v.Attrs.String
		}
	}
	return res
}
