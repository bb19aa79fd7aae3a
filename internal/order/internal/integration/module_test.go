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

//go:build e2e

package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lapviet/lapstore/internal/order"
	"github.com/lapviet/lapstore/internal/order/internal/repository/dao"
	"github.com/lapviet/lapstore/internal/order/internal/web"
	"github.com/lapviet/lapstore/internal/payment"
	"github.com/lapviet/lapstore/internal/product"
	"github.com/lapviet/lapstore/internal/shipping"
	"github.com/lapviet/lapstore/internal/test"
	testioc "github.com/lapviet/lapstore/internal/test/ioc"
)

const testUID = int64(234)

type fakeProductService struct {
	product.Service
	variations []product.Variation
	reserved   atomic.Int64
	released   atomic.Int64
}

func (f *fakeProductService) FindVariationsByIDs(_ context.Context, _ []int64) ([]product.Variation, error) {
	return f.variations, nil
}

func (f *fakeProductService) ReserveStock(_ context.Context, _ []product.StockReservation) error {
	f.reserved.Add(1)
	return nil
}

func (f *fakeProductService) ReleaseStock(_ context.Context, _ []product.StockReservation) error {
	f.released.Add(1)
	return nil
}

type fakeShippingService struct {
	shipping.Service
}

func (f *fakeShippingService) Quote(_ context.Context, _, _, _ int64) (shipping.Quote, error) {
	return shipping.Quote{Fee: 30_000, Reason: shipping.ReasonStandard}, nil
}

type fakePaymentService struct {
	payment.Service
	createFails atomic.Bool
}

func (f *fakePaymentService) CreatePayment(_ context.Context, pmt payment.Payment) (payment.Payment, error) {
	if f.createFails.Load() {
		return payment.Payment{}, fmt.Errorf("支付网关不可用")
	}
	pmt.ID = 1
	pmt.SN = "PMT-" + pmt.OrderSN
	pmt.Status = payment.StatusPending
	return pmt, nil
}

func (f *fakePaymentService) PaymentURL(_ context.Context, orderSN, _ string) (string, error) {
	return "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?vnp_TxnRef=" + orderSN, nil
}

func (f *fakePaymentService) FindByOrderSN(_ context.Context, orderSN string) (payment.Payment, error) {
	return payment.Payment{OrderSN: orderSN, Method: payment.MethodVNPAY, Status: payment.StatusPending}, nil
}

func (f *fakePaymentService) MarkFailedByOrderSN(_ context.Context, _ string) error {
	return nil
}

func TestOrderModule(t *testing.T) {
	suite.Run(t, new(OrderModuleTestSuite))
}

type OrderModuleTestSuite struct {
	suite.Suite
	server     *egin.Component
	db         *egorm.Component
	mq         mq.MQ
	dao        dao.OrderDAO
	cache      ecache.Cache
	svc        order.Service
	paymentSvc *fakePaymentService
	productSvc *fakeProductService
}

func (s *OrderModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.mq = testioc.InitMQ()
	s.cache = testioc.InitCache()
	s.productSvc = &fakeProductService{
		variations: []product.Variation{
			{ID: 100, Name: "ThinkPad X1", Price: 25_000_000, Stock: 5},
			{ID: 200, Name: "MacBook Air", Price: 30_000_000, DiscountPrice: 28_000_000, Stock: 2},
		},
	}
	s.paymentSvc = &fakePaymentService{}
	mod := order.InitModule(s.db, s.mq, s.cache,
		&product.Module{Svc: s.productSvc},
		&shipping.Module{Svc: &fakeShippingService{}},
		&payment.Module{Svc: s.paymentSvc})
	s.svc = mod.Svc
	s.dao = dao.NewOrderGORMDAO(s.db)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: testUID,
		}))
	})
	mod.Hdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *OrderModuleTestSuite) TearDownSuite() {
	err := s.db.Exec("DROP TABLE `orders`").Error
	require.NoError(s.T(), err)
	err = s.db.Exec("DROP TABLE `order_items`").Error
	require.NoError(s.T(), err)
}

func (s *OrderModuleTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `orders`").Error
	require.NoError(s.T(), err)
	err = s.db.Exec("TRUNCATE TABLE `order_items`").Error
	require.NoError(s.T(), err)
}

func (s *OrderModuleTestSuite) createReq(requestID string) web.CreateOrderReq {
	return web.CreateOrderReq{
		RequestID: requestID,
		Items: []web.ItemReq{
			{VariationID: 100, Quantity: 1},
		},
		Address: web.AddressReq{
			ProvinceID:   79,
			ProvinceName: "TP. Hồ Chí Minh",
			WardID:       26734,
			WardName:     "Phường Bến Nghé",
			Street:       "123 Lê Lợi",
			ReceiverName: "Nguyễn Văn A",
			Phone:        "0901234567",
			Lat:          10.77,
			Lng:          106.70,
		},
		Note:          "Giao giờ hành chính",
		PaymentMethod: "VNPAY",
	}
}

func (s *OrderModuleTestSuite) postCreate(t *testing.T, req web.CreateOrderReq) (int, test.Result[web.CreateOrderResp]) {
	t.Helper()
	httpReq, err := http.NewRequest(http.MethodPost,
		"/order/create", iox.NewJSONReader(req))
	httpReq.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.CreateOrderResp]()
	s.server.ServeHTTP(recorder, httpReq)
	return recorder.Code, recorder.MustScan()
}

func (s *OrderModuleTestSuite) TestHandler_Preview() {
	t := s.T()
	req, err := http.NewRequest(http.MethodPost,
		"/order/preview", iox.NewJSONReader(web.PreviewReq{
			Items: []web.ItemReq{
				{VariationID: 100, Quantity: 2},
				{VariationID: 200, Quantity: 3},
			},
			ProvinceID: 79,
			WardID:     26734,
		}))
	req.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.PreviewResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	resp := recorder.MustScan().Data
	assert.Equal(t, int64(134_000_000), resp.Subtotal)
	assert.Equal(t, int64(30_000), resp.ShippingFee)
	assert.Equal(t, int64(134_030_000), resp.Total)
	// 超出库存的条目要随报价一起回给前端
	assert.Equal(t, []web.StockWarning{
		{VariationID: 200, Requested: 3, Available: 2},
	}, resp.StockWarnings)
}

func (s *OrderModuleTestSuite) TestHandler_CreateOrder() {
	t := s.T()
	req := s.createReq("requestID-create-01")
	code, result := s.postCreate(t, req)
	require.Equal(t, 200, code)
	require.NotZero(t, result.Data.OrderSN)
	assert.Contains(t, result.Data.PaymentURL, result.Data.OrderSN)

	ord, _, err := s.dao.FindBySN(context.Background(), result.Data.OrderSN)
	require.NoError(t, err)
	assert.Equal(t, "AWAITING_PAYMENT", ord.Status)
	assert.Equal(t, "Giao giờ hành chính", ord.Note)
	assert.Equal(t, int64(25_030_000), ord.Total)

	// 同一个请求ID下单成功后再提交要被拦下
	code, result2 := s.postCreate(t, req)
	require.Equal(t, 200, code)
	assert.Equal(t, 507006, result2.Code)

	_, err = s.cache.Delete(context.Background(), fmt.Sprintf("order:create:%s", req.RequestID))
	require.NoError(t, err)
}

func (s *OrderModuleTestSuite) TestHandler_CreateOrderPaymentFailureLeavesNothing() {
	t := s.T()
	req := s.createReq("requestID-create-02")

	s.paymentSvc.createFails.Store(true)
	code, result := s.postCreate(t, req)
	require.Equal(t, 200, code)
	assert.Equal(t, 507001, result.Code)

	// 支付记录创建失败时整个下单事务回滚, 不能留下订单行
	count, err := s.dao.CountByUID(context.Background(), testUID, "")
	require.NoError(t, err)
	assert.Zero(t, count)

	// 占位也要归还, 同一个请求ID修复后重试必须放行
	s.paymentSvc.createFails.Store(false)
	code, result = s.postCreate(t, req)
	require.Equal(t, 200, code)
	assert.Zero(t, result.Code)
	require.NotZero(t, result.Data.OrderSN)

	_, err = s.cache.Delete(context.Background(), fmt.Sprintf("order:create:%s", req.RequestID))
	require.NoError(t, err)
}

func (s *OrderModuleTestSuite) TestHandler_ListOrdersWithStatusFilter() {
	t := s.T()
	statuses := []string{"AWAITING_PAYMENT", "PROCESSING", "PROCESSING"}
	for idx, status := range statuses {
		_, err := s.dao.CreateOrder(context.Background(), dao.Order{
			SN:            fmt.Sprintf("OD-list-%d", idx),
			Uid:           testUID,
			Subtotal:      25_000_000,
			Total:         25_030_000,
			PaymentMethod: "VNPAY",
			ProvinceID:    79,
			WardID:        26734,
			Status:        status,
		}, []dao.OrderItem{
			{VariationID: 100, Name: "ThinkPad X1", Price: 25_000_000, RealPrice: 25_000_000, Quantity: 1, Subtotal: 25_000_000},
		})
		require.NoError(t, err)
	}

	req, err := http.NewRequest(http.MethodPost,
		"/order/list", iox.NewJSONReader(web.ListOrdersReq{
			Status: "PROCESSING",
			Offset: 0,
			Limit:  10,
		}))
	req.Header.Set("content-type", "application/json")
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.ListOrdersResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	resp := recorder.MustScan().Data
	assert.Equal(t, int64(2), resp.Total)
	for _, ord := range resp.Orders {
		assert.Equal(t, "PROCESSING", ord.Status)
	}
}

func (s *OrderModuleTestSuite) TestLatePaymentCannotResurrectCancelledOrder() {
	t := s.T()
	sn := "OD-late-ipn"
	_, err := s.dao.CreateOrder(context.Background(), dao.Order{
		SN:            sn,
		Uid:           testUID,
		Subtotal:      25_000_000,
		Total:         25_030_000,
		PaymentMethod: "VNPAY",
		ProvinceID:    79,
		WardID:        26734,
		Status:        "AWAITING_PAYMENT",
		ReserveExpiresAt: time.Now().Add(-time.Minute).UnixMilli(),
	}, []dao.OrderItem{
		{VariationID: 100, Name: "ThinkPad X1", Price: 25_000_000, RealPrice: 25_000_000, Quantity: 1, Subtotal: 25_000_000},
	})
	require.NoError(t, err)

	// 预占超时, 释放任务已经取消订单
	require.NoError(t, s.dao.CloseAndClearDeadline(context.Background(), sn, "CANCELLED"))

	// 网关通知才到, 不能把已取消的订单改活
	require.NoError(t, s.svc.MarkPaidBySN(context.Background(), sn))
	ord, _, err := s.dao.FindBySN(context.Background(), sn)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", ord.Status)
	assert.Zero(t, ord.PaidAt)
}
