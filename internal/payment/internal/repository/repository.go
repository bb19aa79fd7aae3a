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
	"database/sql"

	"github.com/lapviet/lapstore/internal/payment/internal/domain"
	"github.com/lapviet/lapstore/internal/payment/internal/repository/dao"
)

type PaymentRepository interface {
	Save(ctx context.Context, pmt domain.Payment) (int64, error)
	FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	FindByTxnRef(ctx context.Context, txnRef string) (domain.Payment, error)
	// MarkPaid 返回推进的行数, 零表示支付单已不在待支付
	MarkPaid(ctx context.Context, txnRef, transactionNo string, paidAt int64) (int64, error)
	MarkFailedByTxnRef(ctx context.Context, txnRef string) error
	UpdateStatusByOrderSN(ctx context.Context, orderSN string, status domain.Status) error
	UpdateMethodByOrderSN(ctx context.Context, orderSN string, method domain.Method, bankCode, txnRef string) error
	UpdateAmountByOrderSN(ctx context.Context, orderSN string, amount int64) error
}

func NewPaymentRepository(d dao.PaymentDAO) PaymentRepository {
	return &paymentRepository{dao: d}
}

type paymentRepository struct {
	dao dao.PaymentDAO
}

func (p *paymentRepository) Save(ctx context.Context, pmt domain.Payment) (int64, error) {
	return p.dao.Insert(ctx, p.toEntity(pmt))
}

func (p *paymentRepository) FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	pmt, err := p.dao.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return domain.Payment{}, err
	}
	return p.toDomain(pmt), nil
}

func (p *paymentRepository) FindByTxnRef(ctx context.Context, txnRef string) (domain.Payment, error) {
	pmt, err := p.dao.FindByTxnRef(ctx, txnRef)
	if err != nil {
		return domain.Payment{}, err
	}
	return p.toDomain(pmt), nil
}

func (p *paymentRepository) MarkPaid(ctx context.Context, txnRef, transactionNo string, paidAt int64) (int64, error) {
	return p.dao.UpdateByTxnRef(ctx, txnRef, transactionNo, paidAt, domain.StatusCompleted.ToUint8())
}

func (p *paymentRepository) MarkFailedByTxnRef(ctx context.Context, txnRef string) error {
	_, err := p.dao.UpdateByTxnRef(ctx, txnRef, "", 0, domain.StatusFailed.ToUint8())
	return err
}

func (p *paymentRepository) UpdateStatusByOrderSN(ctx context.Context, orderSN string, status domain.Status) error {
	return p.dao.UpdateStatusByOrderSN(ctx, orderSN, status.ToUint8())
}

func (p *paymentRepository) UpdateMethodByOrderSN(ctx context.Context, orderSN string, method domain.Method, bankCode, txnRef string) error {
	return p.dao.UpdateMethodByOrderSN(ctx, orderSN, string(method), bankCode, txnRef)
}

func (p *paymentRepository) UpdateAmountByOrderSN(ctx context.Context, orderSN string, amount int64) error {
	return p.dao.UpdateAmountByOrderSN(ctx, orderSN, amount)
}

func (p *paymentRepository) toEntity(pmt domain.Payment) dao.Payment {
	entity := dao.Payment{
		Id:            pmt.ID,
		SN:            pmt.SN,
		OrderID:       pmt.OrderID,
		OrderSN:       pmt.OrderSN,
		Uid:           pmt.UID,
		Method:        string(pmt.Method),
		BankCode:      pmt.BankCode,
		Amount:        pmt.Amount,
		TransactionNo: pmt.TransactionNo,
		PaidAt:        pmt.PaidAt,
		Status:        pmt.Status.ToUint8(),
	}
	if pmt.TxnRef != "" {
		entity.TxnRef = sql.NullString{String: pmt.TxnRef, Valid: true}
	}
	return entity
}

func (p *paymentRepository) toDomain(pmt dao.Payment) domain.Payment {
	return domain.Payment{
		ID:            pmt.Id,
		SN:            pmt.SN,
		OrderID:       pmt.OrderID,
		OrderSN:       pmt.OrderSN,
		UID:           pmt.Uid,
		Method:        domain.Method(pmt.Method),
		BankCode:      pmt.BankCode,
		Amount:        pmt.Amount,
		TxnRef:        pmt.TxnRef.String,
		TransactionNo: pmt.TransactionNo,
		PaidAt:        pmt.PaidAt,
		Status:        domain.Status(pmt.Status),
		Ctime:         pmt.Ctime,
		Utime:         pmt.Utime,
	}
}
