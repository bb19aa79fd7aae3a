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

	"github.com/lapviet/lapstore/internal/product/internal/domain"
	"github.com/lapviet/lapstore/internal/product/internal/repository"
)

var (
	ErrStockNotEnough  = repository.ErrStockNotEnough
	ErrRowLockConflict = repository.ErrRowLockConflict
)

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go -typed Service
type Service interface {
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

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ProductRepository
}

func (s *service) FindBySN(ctx context.Context, sn string) (domain.Product, error) {
	return s.repo.FindBySN(ctx, sn)
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindVariationByID(ctx context.Context, id int64) (domain.Variation, error) {
	return s.repo.FindVariationByID(ctx, id)
}

func (s *service) FindVariationsByIDs(ctx context.Context, ids []int64) ([]domain.Variation, error) {
	return s.repo.FindVariationsByIDs(ctx, ids)
}

func (s *service) List(ctx context.Context, category string, offset, limit int) (int64, []domain.Product, error) {
	return s.repo.List(ctx, category, offset, limit)
}

func (s *service) Search(ctx context.Context, keywords string, offset, limit int) ([]domain.Product, error) {
	return s.repo.Search(ctx, keywords, offset, limit)
}

func (s *service) Save(ctx context.Context, product domain.Product) (int64, error) {
	return s.repo.Save(ctx, product)
}

func (s *service) ReserveStock(ctx context.Context, reservations []domain.StockReservation) error {
	return s.repo.ReserveStock(ctx, reservations)
}

func (s *service) ReleaseStock(ctx context.Context, reservations []domain.StockReservation) error {
	return s.repo.ReleaseStock(ctx, reservations)
}
