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
	"strconv"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"

	"github.com/lapviet/lapstore/internal/payment/internal/domain"
	"github.com/lapviet/lapstore/internal/payment/internal/event"
	"github.com/lapviet/lapstore/internal/payment/internal/repository"
	"github.com/lapviet/lapstore/internal/payment/internal/service/vnpay"
	"github.com/lapviet/lapstore/internal/pkg/snowflake"
)

var (
	ErrInvalidMethod  = errors.New("支付方式非法")
	ErrPaymentNotPaid = errors.New("支付未处于待支付状态")
)

// IPNResponse 按VNPAY协议回给网关的确认结果
type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

//go:generate mockgen -source=./service.go -package=paymentmocks -destination=../../mocks/payment.mock.go -typed Service
type Service interface {
	// CreatePayment 为订单落一条待支付记录, VNPAY支付同时分配对账号
	CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	// PaymentURL 生成VNPAY收银台跳转链接
	PaymentURL(ctx context.Context, orderSN, ipAddr string) (string, error)
	// HandleIPN 处理网关服务器对服务器的支付结果通知,
	// 无论内部结果如何都要按协议回包
	HandleIPN(ctx context.Context, params map[string]string) IPNResponse
	MarkFailedByOrderSN(ctx context.Context, orderSN string) error
	MarkRefundedByOrderSN(ctx context.Context, orderSN string) error
	// UpdateMethod 在未支付前切换支付方式
	UpdateMethod(ctx context.Context, orderSN string, method domain.Method, bankCode string) (domain.Payment, error)
	// UpdateAmount 在未支付前同步应付金额, 订单改址引起运费变化时调用
	UpdateAmount(ctx context.Context, orderSN string, amount int64) error
}

func NewService(repo repository.PaymentRepository,
	gateway *vnpay.Client,
	txnRefGenerator *snowflake.TxnRefGenerator,
	producer event.Producer) Service {
	return &service{
		repo:            repo,
		gateway:         gateway,
		txnRefGenerator: txnRefGenerator,
		producer:        producer,
		logger:          elog.DefaultLogger,
	}
}

type service struct {
	repo            repository.PaymentRepository
	gateway         *vnpay.Client
	txnRefGenerator *snowflake.TxnRefGenerator
	producer        event.Producer
	logger          *elog.Component
}

func (s *service) CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	if !domain.ValidMethod(pmt.Method, pmt.BankCode) {
		return domain.Payment{}, fmt.Errorf("%w: method=%s bankCode=%s", ErrInvalidMethod, pmt.Method, pmt.BankCode)
	}
	pmt.SN = shortuuid.New()
	pmt.Status = domain.StatusPending
	if pmt.Method == domain.MethodVNPAY {
		pmt.TxnRef = s.txnRefGenerator.Generate()
	}
	id, err := s.repo.Save(ctx, pmt)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("创建支付记录失败: %w", err)
	}
	pmt.ID = id
	return pmt, nil
}

func (s *service) FindByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	return s.repo.FindByOrderSN(ctx, orderSN)
}

func (s *service) PaymentURL(ctx context.Context, orderSN, ipAddr string) (string, error) {
	pmt, err := s.repo.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return "", fmt.Errorf("查找支付记录失败: %w", err)
	}
	if pmt.Method != domain.MethodVNPAY {
		return "", fmt.Errorf("%w: 只有VNPAY支付需要跳转链接", ErrInvalidMethod)
	}
	if pmt.Status != domain.StatusPending {
		return "", ErrPaymentNotPaid
	}
	return s.gateway.BuildPaymentURL(vnpay.PaymentParams{
		TxnRef:    pmt.TxnRef,
		Amount:    pmt.Amount,
		OrderInfo: fmt.Sprintf("Thanh toan don hang %s", pmt.OrderSN),
		BankCode:  pmt.BankCode,
		IPAddr:    ipAddr,
		ExpireAt:  time.Now().Add(15 * time.Minute),
	}), nil
}

func (s *service) HandleIPN(ctx context.Context, params map[string]string) IPNResponse {
	if !s.gateway.VerifyCallback(params) {
		return IPNResponse{RspCode: "97", Message: "Checksum failed"}
	}
	txnRef := params["vnp_TxnRef"]
	pmt, err := s.repo.FindByTxnRef(ctx, txnRef)
	if err != nil {
		return IPNResponse{RspCode: "01", Message: "Order not found"}
	}
	amount, err := strconv.ParseInt(params["vnp_Amount"], 10, 64)
	if err != nil || amount != pmt.Amount*100 {
		// 金额对不上按失败处理, 避免订单以错误金额完成支付
		s.failPayment(ctx, pmt)
		return IPNResponse{RspCode: "04", Message: "Invalid amount"}
	}
	if pmt.Status == domain.StatusCompleted {
		// 网关会重发通知, 幂等返回已确认
		return IPNResponse{RspCode: "02", Message: "Order already confirmed"}
	}
	if params["vnp_ResponseCode"] != "00" {
		s.failPayment(ctx, pmt)
		return IPNResponse{RspCode: "00", Message: "Confirm Success"}
	}
	affected, err := s.repo.MarkPaid(ctx, txnRef, params["vnp_TransactionNo"], time.Now().UnixMilli())
	if err != nil {
		s.logger.Error("更新支付状态失败",
			elog.String("txnRef", txnRef), elog.FieldErr(err))
		return IPNResponse{RspCode: "99", Message: "Unknown error"}
	}
	if affected == 0 {
		// 支付单在读取后被超时关单任务抢先改成终态, 不能再推进订单
		return IPNResponse{RspCode: "02", Message: "Order already confirmed"}
	}
	s.producePaymentEvent(ctx, pmt, event.PaymentStatusPaid)
	return IPNResponse{RspCode: "00", Message: "Confirm Success"}
}

func (s *service) MarkFailedByOrderSN(ctx context.Context, orderSN string) error {
	return s.repo.UpdateStatusByOrderSN(ctx, orderSN, domain.StatusFailed)
}

func (s *service) MarkRefundedByOrderSN(ctx context.Context, orderSN string) error {
	return s.repo.UpdateStatusByOrderSN(ctx, orderSN, domain.StatusRefunded)
}

func (s *service) UpdateAmount(ctx context.Context, orderSN string, amount int64) error {
	pmt, err := s.repo.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return fmt.Errorf("查找支付记录失败: %w", err)
	}
	if pmt.Status != domain.StatusPending {
		return ErrPaymentNotPaid
	}
	return s.repo.UpdateAmountByOrderSN(ctx, orderSN, amount)
}

func (s *service) UpdateMethod(ctx context.Context, orderSN string, method domain.Method, bankCode string) (domain.Payment, error) {
	if !domain.ValidMethod(method, bankCode) {
		return domain.Payment{}, fmt.Errorf("%w: method=%s bankCode=%s", ErrInvalidMethod, method, bankCode)
	}
	pmt, err := s.repo.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("查找支付记录失败: %w", err)
	}
	if pmt.Status != domain.StatusPending {
		return domain.Payment{}, ErrPaymentNotPaid
	}
	txnRef := pmt.TxnRef
	if method == domain.MethodVNPAY && txnRef == "" {
		txnRef = s.txnRefGenerator.Generate()
	}
	if method == domain.MethodCOD {
		txnRef = ""
	}
	if err = s.repo.UpdateMethodByOrderSN(ctx, orderSN, method, bankCode, txnRef); err != nil {
		return domain.Payment{}, fmt.Errorf("更新支付方式失败: %w", err)
	}
	pmt.Method, pmt.BankCode, pmt.TxnRef = method, bankCode, txnRef
	return pmt, nil
}

func (s *service) failPayment(ctx context.Context, pmt domain.Payment) {
	if err := s.repo.MarkFailedByTxnRef(ctx, pmt.TxnRef); err != nil {
		s.logger.Error("标记支付失败出错",
			elog.String("txnRef", pmt.TxnRef), elog.FieldErr(err))
	}
	s.producePaymentEvent(ctx, pmt, event.PaymentStatusFailed)
}

func (s *service) producePaymentEvent(ctx context.Context, pmt domain.Payment, status string) {
	evt := event.PaymentEvent{
		OrderSN: pmt.OrderSN,
		TxnRef:  pmt.TxnRef,
		Status:  status,
	}
	if err := s.producer.ProducePaymentEvent(ctx, evt); err != nil {
		s.logger.Error("发送支付事件失败",
			elog.String("orderSN", pmt.OrderSN), elog.FieldErr(err))
	}
}
