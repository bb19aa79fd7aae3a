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

package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lapviet/lapstore/internal/pkg/database"
	"github.com/lapviet/lapstore/internal/product/internal/domain"
)

var (
	ErrStockNotEnough  = errors.New("库存不足")
	ErrRecordNotFound  = gorm.ErrRecordNotFound
	ErrRowLockConflict = errors.New("库存行锁竞争失败")
)

type ProductDAO interface {
	FindProductByID(ctx context.Context, id int64) (Product, error)
	FindProductBySN(ctx context.Context, sn string) (Product, error)
	FindProducts(ctx context.Context, category string, offset, limit int) ([]Product, error)
	CountProducts(ctx context.Context, category string) (int64, error)
	FindVariationsByProductID(ctx context.Context, productID int64) ([]Variation, error)
	FindVariationByID(ctx context.Context, id int64) (Variation, error)
	FindVariationsByIDs(ctx context.Context, ids []int64) ([]Variation, error)
	SaveProduct(ctx context.Context, product Product, variations []Variation) (int64, error)
	ReserveStock(ctx context.Context, reservations []domain.StockReservation) error
	ReleaseStock(ctx context.Context, reservations []domain.StockReservation) error
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) FindProductByID(ctx context.Context, id int64) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("id = ? AND status = ?", id, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindProductBySN(ctx context.Context, sn string) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("sn = ? AND status = ?", sn, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindProducts(ctx context.Context, category string, offset, limit int) ([]Product, error) {
	var res []Product
	query := d.db.WithContext(ctx).Where("status = ?", domain.StatusOnShelf.ToUint8())
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("ctime DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) CountProducts(ctx context.Context, category string) (int64, error) {
	var count int64
	query := d.db.WithContext(ctx).Model(&Product{}).Where("status = ?", domain.StatusOnShelf.ToUint8())
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Count(&count).Error
	return count, err
}

func (d *ProductGORMDAO) FindVariationsByProductID(ctx context.Context, productID int64) ([]Variation, error) {
	var res []Variation
	err := d.db.WithContext(ctx).Where("product_id = ? AND status = ?", productID, domain.StatusOnShelf.ToUint8()).
		Order("price ASC").
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindVariationByID(ctx context.Context, id int64) (Variation, error) {
	var res Variation
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindVariationsByIDs(ctx context.Context, ids []int64) ([]Variation, error) {
	var res []Variation
	err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) SaveProduct(ctx context.Context, product Product, variations []Variation) (int64, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		product.Utime = now
		if product.Id == 0 {
			product.Ctime = now
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "brand", "category", "status", "utime"}),
		}).Create(&product).Error; err != nil {
			return err
		}
		for i := range variations {
			variations[i].ProductID = product.Id
			variations[i].Utime = now
			if variations[i].Id == 0 {
				variations[i].Ctime = now
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "price", "discount_price", "stock", "attrs", "image", "status", "utime"}),
			}).Create(&variations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return product.Id, err
}

// ReserveStock 在单个事务内对所有涉及的SKU行加锁并扣减库存。
// 用SKIP LOCKED避免抢购时在行锁上排队, 拿不到锁直接视为竞争失败。
func (d *ProductGORMDAO) ReserveStock(ctx context.Context, reservations []domain.StockReservation) error {
	// 跑在下单事务里时这儿是SAVEPOINT, 跟订单和支付记录一起提交或回滚
	return database.FromContext(ctx, d.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range reservations {
			var v Variation
			err := tx.Clauses(clause.Locking{
				Strength: clause.LockingStrengthUpdate,
				Options:  clause.LockingOptionsSkipLocked,
			}).Where("id = ?", r.VariationID).First(&v).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 行存在但被别的事务锁住时也会查不到
				var count int64
				if cerr := tx.Model(&Variation{}).Where("id = ?", r.VariationID).Count(&count).Error; cerr != nil {
					return cerr
				}
				if count > 0 {
					return fmt.Errorf("%w: variation %d", ErrRowLockConflict, r.VariationID)
				}
				return fmt.Errorf("商品SKU未找到: %w", err)
			}
			if err != nil {
				return err
			}
			if v.Stock < r.Quantity {
				return fmt.Errorf("%w: variation %d, 剩余 %d, 需要 %d", ErrStockNotEnough, r.VariationID, v.Stock, r.Quantity)
			}
			res := tx.Model(&Variation{}).Where("id = ?", r.VariationID).
				Updates(map[string]any{
					"stock": gorm.Expr("stock - ?", r.Quantity),
					"utime": time.Now().UnixMilli(),
				})
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}

// ReleaseStock 回补库存, 用于取消订单和预占过期
func (d *ProductGORMDAO) ReleaseStock(ctx context.Context, reservations []domain.StockReservation) error {
	return database.FromContext(ctx, d.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range reservations {
			err := tx.Model(&Variation{}).Where("id = ?", r.VariationID).
				Updates(map[string]any{
					"stock": gorm.Expr("stock + ?", r.Quantity),
					"utime": time.Now().UnixMilli(),
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

type Product struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_sn;comment:商品序列号"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description string `gorm:"not null;comment:商品描述"`
	Brand       string `gorm:"type:varchar(64);not null;index:idx_brand;comment:品牌"`
	Category    string `gorm:"type:varchar(64);not null;index:idx_category;comment:分类"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}

type Variation struct {
	Id            int64          `gorm:"primaryKey;autoIncrement;comment:商品SKU自增ID"`
	SN            string         `gorm:"type:varchar(255);not null;uniqueIndex:uniq_variation_sn;comment:SKU序列号"`
	ProductID     int64          `gorm:"column:product_id;not null;index:idx_product_id;comment:商品自增ID"`
	Name          string         `gorm:"type:varchar(255);not null;comment:SKU名称"`
	Price         int64          `gorm:"not null;comment:原价"`
	DiscountPrice int64          `gorm:"not null;default:0;comment:折扣价;0表示无折扣"`
	Stock         int64          `gorm:"not null;comment:库存数量"`
	Attrs         sql.NullString `gorm:"comment:配置属性,JSON格式"`
	Image         string         `gorm:"type:varchar(512);not null;comment:商品缩略图,CDN绝对路径"`
	Status        uint8          `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime         int64
	Utime         int64
}
