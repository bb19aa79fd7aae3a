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
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"

	"github.com/lapviet/lapstore/internal/payment/internal/domain"
	"github.com/lapviet/lapstore/internal/pkg/database"
)

var ErrPaymentNotFound = gorm.ErrRecordNotFound

type PaymentDAO interface {
	Insert(ctx context.Context, pmt Payment) (int64, error)
	FindByOrderSN(ctx context.Context, orderSN string) (Payment, error)
	FindByTxnRef(ctx context.Context, txnRef string) (Payment, error)
	UpdateByTxnRef(ctx context.Context, txnRef string, transactionNo string, paidAt int64, status uint8) (int64, error)
	UpdateStatusByOrderSN(ctx context.Context, orderSN string, status uint8) error
	UpdateMethodByOrderSN(ctx context.Context, orderSN string, method string, bankCode string, txnRef string) error
	UpdateAmountByOrderSN(ctx context.Context, orderSN string, amount int64) error
}

type PaymentGORMDAO struct {
	db *egorm.Component
}

func NewPaymentGORMDAO(db *egorm.Component) PaymentDAO {
	return &PaymentGORMDAO{db: db}
}

// conn 优先用context里由下单流程开启的跨模块事务
func (d *PaymentGORMDAO) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, d.db).WithContext(ctx)
}

func (d *PaymentGORMDAO) Insert(ctx context.Context, pmt Payment) (int64, error) {
	now := time.Now().UnixMilli()
	pmt.Ctime, pmt.Utime = now, now
	err := d.conn(ctx).Create(&pmt).Error
	return pmt.Id, err
}

func (d *PaymentGORMDAO) FindByOrderSN(ctx context.Context, orderSN string) (Payment, error) {
	var res Payment
	err := d.conn(ctx).Where("order_sn = ?", orderSN).First(&res).Error
	return res, err
}

func (d *PaymentGORMDAO) FindByTxnRef(ctx context.Context, txnRef string) (Payment, error) {
	var res Payment
	err := d.conn(ctx).Where("txn_ref = ?", txnRef).First(&res).Error
	return res, err
}

// UpdateByTxnRef 只允许从待支付推进, 迟到的网关通知撞上
// 已被关单的支付单时更新零行, 不会把终态记录改活
func (d *PaymentGORMDAO) UpdateByTxnRef(ctx context.Context, txnRef string, transactionNo string, paidAt int64, status uint8) (int64, error) {
	res := d.conn(ctx).Model(&Payment{}).
		Where("txn_ref = ? AND status = ?", txnRef, domain.StatusPending.ToUint8()).
		Updates(map[string]any{
			"transaction_no": transactionNo,
			"paid_at":        paidAt,
			"status":         status,
			"utime":          time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

func (d *PaymentGORMDAO) UpdateStatusByOrderSN(ctx context.Context, orderSN string, status uint8) error {
	return d.conn(ctx).Model(&Payment{}).Where("order_sn = ?", orderSN).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

func (d *PaymentGORMDAO) UpdateMethodByOrderSN(ctx context.Context, orderSN string, method string, bankCode string, txnRef string) error {
	updates := map[string]any{
		"method":    method,
		"bank_code": bankCode,
		"utime":     time.Now().UnixMilli(),
	}
	if txnRef != "" {
		updates["txn_ref"] = sql.NullString{String: txnRef, Valid: true}
	} else {
		updates["txn_ref"] = sql.NullString{}
	}
	return d.conn(ctx).Model(&Payment{}).Where("order_sn = ?", orderSN).
		Updates(updates).Error
}

func (d *PaymentGORMDAO) UpdateAmountByOrderSN(ctx context.Context, orderSN string, amount int64) error {
	return d.conn(ctx).Model(&Payment{}).Where("order_sn = ?", orderSN).
		Updates(map[string]any{
			"amount": amount,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

type Payment struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:支付自增ID"`
	SN      string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_payment_sn;comment:支付序列号"`
	OrderID int64  `gorm:"column:order_id;not null;index:idx_order_id;comment:订单自增ID"`
	OrderSN string `gorm:"type:varchar(255);not null;index:idx_order_sn;comment:订单序列号"`
	Uid     int64  `gorm:"not null;index:idx_uid;comment:用户ID"`

	Method   string `gorm:"type:varchar(16);not null;comment:支付方式 COD/VNPAY"`
	BankCode string `gorm:"type:varchar(16);not null;default:'';comment:VNPAY子渠道"`
	Amount   int64  `gorm:"not null;comment:应付金额"`

	TxnRef        sql.NullString `gorm:"type:varchar(64);uniqueIndex:uniq_txn_ref;comment:VNPAY对账号,COD为NULL"`
	TransactionNo string         `gorm:"type:varchar(64);not null;default:'';comment:网关交易流水号"`

	PaidAt int64 `gorm:"not null;default:0;comment:支付完成时间"`
	Status uint8 `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=待支付 2=已完成 3=已失败 4=已退款"`
	Ctime  int64
	Utime  int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Payment{})
}
