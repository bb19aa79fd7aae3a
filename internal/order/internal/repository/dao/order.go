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
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"

	"github.com/lapviet/lapstore/internal/order/internal/domain"
	"github.com/lapviet/lapstore/internal/pkg/database"
)

var ErrOrderNotFound = gorm.ErrRecordNotFound

// releaseLockName 释放过期预占的跨实例互斥锁
const releaseLockName = "lapstore:order:release_reservations"

type OrderDAO interface {
	CreateOrder(ctx context.Context, order Order, items []OrderItem) (int64, error)
	FindBySN(ctx context.Context, sn string) (Order, []OrderItem, error)
	FindBySNAndUID(ctx context.Context, sn string, uid int64) (Order, []OrderItem, error)
	FindByUID(ctx context.Context, uid int64, status string, offset, limit int) ([]Order, error)
	CountByUID(ctx context.Context, uid int64, status string) (int64, error)
	FindAll(ctx context.Context, status string, offset, limit int) ([]Order, error)
	CountAll(ctx context.Context, status string) (int64, error)
	FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error)
	UpdateStatus(ctx context.Context, sn string, status string) error
	MarkPaid(ctx context.Context, sn string, paidAt int64) (int64, error)
	UpdateMethodStatusAndDeadline(ctx context.Context, sn string, method string, status string, deadline int64) error
	CloseAndClearDeadline(ctx context.Context, sn string, status string) error
	UpdateAddressAndFee(ctx context.Context, sn string, order Order) error
	FindExpiredAwaiting(ctx context.Context, deadline int64, limit int) ([]Order, error)
	WithReleaseLock(ctx context.Context, fn func(ctx context.Context) error) error
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

// conn 优先用context里由下单流程开启的跨模块事务
func (d *OrderGORMDAO) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, d.db).WithContext(ctx)
}

func (d *OrderGORMDAO) CreateOrder(ctx context.Context, order Order, items []OrderItem) (int64, error) {
	err := d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		order.Ctime, order.Utime = now, now
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("创建订单主记录失败: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("创建订单条目失败: %w", err)
		}
		return nil
	})
	return order.Id, err
}

func (d *OrderGORMDAO) FindBySN(ctx context.Context, sn string) (Order, []OrderItem, error) {
	var order Order
	if err := d.conn(ctx).Where("sn = ?", sn).First(&order).Error; err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	err := d.conn(ctx).Where("order_id = ?", order.Id).Find(&items).Error
	return order, items, err
}

func (d *OrderGORMDAO) FindBySNAndUID(ctx context.Context, sn string, uid int64) (Order, []OrderItem, error) {
	var order Order
	if err := d.conn(ctx).Where("sn = ? AND uid = ?", sn, uid).First(&order).Error; err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	err := d.conn(ctx).Where("order_id = ?", order.Id).Find(&items).Error
	return order, items, err
}

func (d *OrderGORMDAO) FindByUID(ctx context.Context, uid int64, status string, offset, limit int) ([]Order, error) {
	var res []Order
	query := d.conn(ctx).Where("uid = ?", uid)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("ctime DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) CountByUID(ctx context.Context, uid int64, status string) (int64, error) {
	var count int64
	query := d.conn(ctx).Model(&Order{}).Where("uid = ?", uid)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (d *OrderGORMDAO) FindAll(ctx context.Context, status string, offset, limit int) ([]Order, error) {
	var res []Order
	query := d.conn(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("ctime DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) CountAll(ctx context.Context, status string) (int64, error) {
	var count int64
	query := d.conn(ctx).Model(&Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (d *OrderGORMDAO) FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error) {
	var items []OrderItem
	if err := d.conn(ctx).Where("order_id IN ?", orderIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	res := make(map[int64][]OrderItem, len(orderIDs))
	for _, item := range items {
		res[item.OrderID] = append(res[item.OrderID], item)
	}
	return res, nil
}

func (d *OrderGORMDAO) UpdateStatus(ctx context.Context, sn string, status string) error {
	return d.conn(ctx).Model(&Order{}).Where("sn = ?", sn).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

// MarkPaid 只推进还在待支付的订单。迟到的支付通知撞上已被
// 释放任务取消的订单时更新零行, 不能把终态订单改活
func (d *OrderGORMDAO) MarkPaid(ctx context.Context, sn string, paidAt int64) (int64, error) {
	res := d.conn(ctx).Model(&Order{}).
		Where("sn = ? AND status = ?", sn, domain.StatusAwaitingPayment.String()).
		Updates(map[string]any{
			"status":             domain.StatusProcessing.String(),
			"paid_at":            paidAt,
			"reserve_expires_at": 0,
			"utime":              time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

// UpdateMethodStatusAndDeadline 切换支付方式时一并改写订单状态和预占期限
func (d *OrderGORMDAO) UpdateMethodStatusAndDeadline(ctx context.Context, sn string, method string, status string, deadline int64) error {
	return d.conn(ctx).Model(&Order{}).Where("sn = ?", sn).
		Updates(map[string]any{
			"payment_method":     method,
			"status":             status,
			"reserve_expires_at": deadline,
			"utime":              time.Now().UnixMilli(),
		}).Error
}

// CloseAndClearDeadline 订单进入终态的同时清掉预占截止时间,
// 避免释放任务再次扫到
func (d *OrderGORMDAO) CloseAndClearDeadline(ctx context.Context, sn string, status string) error {
	return d.conn(ctx).Model(&Order{}).Where("sn = ?", sn).
		Updates(map[string]any{
			"status":             status,
			"reserve_expires_at": 0,
			"utime":              time.Now().UnixMilli(),
		}).Error
}

func (d *OrderGORMDAO) UpdateAddressAndFee(ctx context.Context, sn string, order Order) error {
	return d.conn(ctx).Model(&Order{}).Where("sn = ?", sn).
		Updates(map[string]any{
			"province_id":   order.ProvinceID,
			"province_name": order.ProvinceName,
			"ward_id":       order.WardID,
			"ward_name":     order.WardName,
			"street":        order.Street,
			"receiver_name": order.ReceiverName,
			"phone":         order.Phone,
			"lat":           order.Lat,
			"lng":           order.Lng,
			"shipping_fee":  order.ShippingFee,
			"total":         order.Total,
			"utime":         time.Now().UnixMilli(),
		}).Error
}

func (d *OrderGORMDAO) FindExpiredAwaiting(ctx context.Context, deadline int64, limit int) ([]Order, error) {
	var res []Order
	err := d.conn(ctx).
		Where("status = ? AND reserve_expires_at > 0 AND reserve_expires_at <= ?",
			domain.StatusAwaitingPayment.String(), deadline).
		Limit(limit).Find(&res).Error
	return res, err
}

// WithReleaseLock 借助MySQL命名锁保证多实例下只有一个释放任务在跑
func (d *OrderGORMDAO) WithReleaseLock(ctx context.Context, fn func(ctx context.Context) error) error {
	var acquired int
	if err := d.db.WithContext(ctx).Raw("SELECT GET_LOCK(?, 0)", releaseLockName).Scan(&acquired).Error; err != nil {
		return fmt.Errorf("获取释放锁失败: %w", err)
	}
	if acquired != 1 {
		// 其他实例正在释放, 直接跳过
		return nil
	}
	defer func() {
		var released int
		_ = d.db.WithContext(ctx).Raw("SELECT RELEASE_LOCK(?)", releaseLockName).Scan(&released).Error
	}()
	return fn(ctx)
}

type Order struct {
	Id  int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN  string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	Uid int64  `gorm:"not null;index:idx_uid;comment:用户ID"`

	Subtotal    int64 `gorm:"not null;comment:商品小计"`
	ShippingFee int64 `gorm:"not null;default:0;comment:运费"`
	Total       int64 `gorm:"not null;comment:应付合计"`

	PaymentMethod string `gorm:"type:varchar(16);not null;comment:支付方式 COD/VNPAY"`
	Note          string `gorm:"type:varchar(512);not null;default:'';comment:用户随单留言"`

	ProvinceID   int64   `gorm:"column:province_id;not null;comment:省份ID"`
	ProvinceName string  `gorm:"type:varchar(128);not null;comment:省份名称"`
	WardID       int64   `gorm:"column:ward_id;not null;comment:坊/乡ID"`
	WardName     string  `gorm:"type:varchar(128);not null;comment:坊/乡名称"`
	Street       string  `gorm:"type:varchar(255);not null;comment:街道详细地址"`
	ReceiverName string  `gorm:"type:varchar(128);not null;comment:收件人"`
	Phone        string  `gorm:"type:varchar(32);not null;comment:联系电话"`
	Lat          float64 `gorm:"not null;comment:纬度"`
	Lng          float64 `gorm:"not null;comment:经度"`

	Status           string `gorm:"type:varchar(32);not null;index:idx_status_expire,priority:1;comment:订单状态"`
	ReserveExpiresAt int64  `gorm:"not null;default:0;index:idx_status_expire,priority:2;comment:库存预占截止时间"`
	PaidAt           int64  `gorm:"not null;default:0;comment:支付完成时间"`
	Ctime            int64
	Utime            int64
}

type OrderItem struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:订单条目自增ID"`
	OrderID     int64  `gorm:"column:order_id;not null;index:idx_order_id;comment:订单自增ID"`
	VariationID int64  `gorm:"column:variation_id;not null;comment:商品SKU自增ID"`
	Name        string `gorm:"type:varchar(255);not null;comment:下单时的SKU名称"`
	Image       string `gorm:"type:varchar(512);not null;comment:下单时的商品缩略图"`
	Price       int64  `gorm:"not null;comment:下单时原价"`
	RealPrice   int64  `gorm:"not null;comment:下单时成交价"`
	Quantity    int64  `gorm:"not null;comment:数量"`
	Subtotal    int64  `gorm:"not null;comment:条目小计"`
	Ctime       int64
	Utime       int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{})
}
