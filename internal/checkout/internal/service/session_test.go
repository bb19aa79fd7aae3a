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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
)

type fakeQuotes struct {
	mu    sync.Mutex
	calls int
	fn    func(provinceID, wardID, subtotal int64) (domain.Quote, error)
}

func (f *fakeQuotes) Quote(_ context.Context, provinceID, wardID, subtotal int64) (domain.Quote, error) {
	f.mu.Lock()
	f.calls++
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return domain.Quote{}, nil
	}
	return fn(provinceID, wardID, subtotal)
}

func (f *fakeQuotes) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePreviews struct {
	mu sync.Mutex
	fn func(items []domain.IntentItem, provinceID, wardID int64) (domain.Preview, error)
}

func (f *fakePreviews) Preview(_ context.Context, items []domain.IntentItem, provinceID, wardID int64) (domain.Preview, error) {
	f.mu.Lock()
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return domain.Preview{}, errors.New("报价未配置")
	}
	return fn(items, provinceID, wardID)
}

type fakeGeo struct {
	mu sync.Mutex
	fn func(query string) (domain.Point, error)
}

func (f *fakeGeo) Forward(_ context.Context, query string) (domain.Point, error) {
	f.mu.Lock()
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return domain.Point{}, errors.New("定位未配置")
	}
	return fn(query)
}

type fakeOrders struct {
	mu   sync.Mutex
	cmds []CreateCmd
	fn   func(cmd CreateCmd) (domain.SubmitResult, error)

	info      OrderInfo
	updated   []AddressInput
	updateErr error
}

func (f *fakeOrders) Create(_ context.Context, cmd CreateCmd) (domain.SubmitResult, error) {
	f.mu.Lock()
	f.cmds = append(f.cmds, cmd)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return domain.SubmitResult{OrderSN: "ORD-TEST"}, nil
	}
	return fn(cmd)
}

func (f *fakeOrders) Find(_ context.Context, _ int64, sn string) (OrderInfo, error) {
	info := f.info
	info.SN = sn
	return info, nil
}

func (f *fakeOrders) UpdateAddress(_ context.Context, _ int64, _ string, address AddressInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, address)
	return f.updateErr
}

func (f *fakeOrders) lastCmd(t *testing.T) CreateCmd {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.cmds)
	return f.cmds[len(f.cmds)-1]
}

type fakeCart struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	removed [][]int64
}

func (f *fakeCart) Lines(_ context.Context, _ int64) ([]domain.CartLine, error) {
	return f.lines, nil
}

func (f *fakeCart) RemoveItems(_ context.Context, _ int64, itemIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, itemIDs)
	return nil
}

func (f *fakeCart) removedBatches() [][]int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removed
}

type fakePending struct {
	mu    sync.Mutex
	saved []domain.PendingCheckout
	cur   *domain.PendingCheckout
}

func (f *fakePending) Save(_ context.Context, _ int64, pending domain.PendingCheckout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, pending)
	f.cur = &pending
	return nil
}

func (f *fakePending) Load(_ context.Context, _ int64) (domain.PendingCheckout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cur == nil {
		return domain.PendingCheckout{}, ErrNoPendingCheckout
	}
	return *f.cur, nil
}

func (f *fakePending) Clear(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cur = nil
	return nil
}

func (f *fakePending) savedEntries() []domain.PendingCheckout {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved
}

func testDeps(orders *fakeOrders, cart *fakeCart, pending *fakePending) Deps {
	return Deps{
		Quotes:   &fakeQuotes{},
		Previews: &fakePreviews{},
		Geo: &fakeGeo{fn: func(query string) (domain.Point, error) {
			return domain.Point{Lat: 10.77, Lng: 106.70}, nil
		}},
		Orders:  orders,
		Cart:    cart,
		Pending: pending,
	}
}

func testConfig() Config {
	return Config{QuoteDebounce: time.Millisecond, PreviewDebounce: time.Millisecond}
}

var testLines = []domain.CartLine{
	{ID: 11, VariationID: 100, Name: "ThinkPad X1", LivePrice: 25_000_000, Stock: 5},
	{ID: 12, VariationID: 200, Name: "MacBook Air", LivePrice: 28_000_000, Stock: 2},
}

// makeReady 选好省坊、填好联系人并确认图钉, 把会话推进到可提交状态
func makeReady(t *testing.T, s *Session) {
	t.Helper()
	s.SetProvince(79, "")
	s.SetWard(26734, "")
	s.SetContact(domain.Contact{Name: "Nguyen Van A", Phone: "0901234567", Email: "a@example.com"})
	s.PlacePin(domain.Point{Lat: 10.77, Lng: 106.70})
	require.NoError(t, s.ConfirmLocation())
}

func TestSession_LocationGate(t *testing.T) {
	t.Parallel()
	orders := &fakeOrders{}
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, testDeps(orders, &fakeCart{}, &fakePending{}), testConfig())
	s.SetProvince(79, "")
	s.SetWard(26734, "")
	s.SetContact(domain.Contact{Name: "Nguyen Van A", Phone: "0901234567", Email: "a@example.com"})

	// 未确认坐标时不可提交
	_, err := s.Submit(context.Background(), "127.0.0.1")
	assert.ErrorIs(t, err, ErrNotConfirmed)

	// 没有候选坐标时不能确认
	assert.ErrorIs(t, s.ConfirmLocation(), ErrNotConfirmed)

	s.PlacePin(domain.Point{Lat: 10.77, Lng: 106.70})
	assert.Equal(t, domain.GateCandidate, s.View().Gate)
	require.NoError(t, s.ConfirmLocation())
	assert.Equal(t, domain.GateConfirmed, s.View().Gate)

	// 确认后改地址, 确认门要打回候选态
	s.SetStreet("123 Le Loi")
	assert.Equal(t, domain.GateCandidate, s.View().Gate)
	_, err = s.Submit(context.Background(), "127.0.0.1")
	assert.ErrorIs(t, err, ErrNotConfirmed)

	require.NoError(t, s.ConfirmLocation())
	_, err = s.Submit(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Len(t, orders.cmds, 1)
}

func TestSession_Submit_ValidatesPreconditions(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		items   []domain.IntentItem
		setup   func(t *testing.T, s *Session)
		wantErr error
	}{
		{
			name:  "条目为空",
			items: nil,
			setup: func(t *testing.T, s *Session) {
				makeReady(t, s)
			},
			wantErr: ErrEmptyIntent,
		},
		{
			name:  "联系信息缺失",
			items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
			setup: func(t *testing.T, s *Session) {
				makeReady(t, s)
				s.SetContact(domain.Contact{Name: "Nguyen Van A", Phone: "0901234567"})
			},
			wantErr: ErrMissingContact,
		},
		{
			name:  "坊乡未选择",
			items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
			setup: func(t *testing.T, s *Session) {
				makeReady(t, s)
				s.SetProvince(79, "")
				s.PlacePin(domain.Point{Lat: 10.77, Lng: 106.70})
				require.NoError(t, s.ConfirmLocation())
			},
			wantErr: ErrMissingDest,
		},
		{
			name:  "购物车快照可见的库存冲突",
			items: []domain.IntentItem{{VariationID: 200, Quantity: 3}},
			setup: func(t *testing.T, s *Session) {
				// 库存只有2件
				makeReady(t, s)
			},
			wantErr: ErrStockConflict,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			orders := &fakeOrders{}
			s := NewSession(1, domain.Intent{Mode: domain.ModeCart, Items: tc.items},
				testLines, testDeps(orders, &fakeCart{}, &fakePending{}), testConfig())
			tc.setup(t, s)
			_, err := s.Submit(context.Background(), "127.0.0.1")
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, orders.cmds)
		})
	}
}

func TestSession_Submit_BuyNowNeverTouchesCart(t *testing.T) {
	t.Parallel()
	orders := &fakeOrders{}
	cart := &fakeCart{lines: testLines}
	pending := &fakePending{}
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeBuyNow,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, testDeps(orders, cart, pending), testConfig())
	makeReady(t, s)

	res, err := s.Submit(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-TEST", res.OrderSN)

	cmd := orders.lastCmd(t)
	// 提交载荷只带variation_id和quantity, 金额由服务端重算
	assert.Equal(t, []domain.IntentItem{{VariationID: 100, Quantity: 1}}, cmd.Items)
	assert.Empty(t, cmd.CartItemIDs)
	assert.Empty(t, cart.removedBatches())
	assert.Empty(t, pending.savedEntries())
}

func TestSession_Submit_CartModeRemovesExactItems(t *testing.T) {
	t.Parallel()
	orders := &fakeOrders{}
	cart := &fakeCart{lines: testLines}
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}, {VariationID: 200, Quantity: 1}},
	}, testLines, testDeps(orders, cart, &fakePending{}), testConfig())
	makeReady(t, s)

	_, err := s.Submit(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	// 按购物车条目ID精确移除
	assert.Equal(t, [][]int64{{11, 12}}, cart.removedBatches())
}

func TestSession_Submit_RedirectDefersCartCleanup(t *testing.T) {
	t.Parallel()
	orders := &fakeOrders{fn: func(cmd CreateCmd) (domain.SubmitResult, error) {
		return domain.SubmitResult{OrderSN: "ORD-VNP", RedirectURL: "https://sandbox.vnpayment.vn/pay"}, nil
	}}
	cart := &fakeCart{lines: testLines}
	pending := &fakePending{}
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, testDeps(orders, cart, pending), testConfig())
	makeReady(t, s)

	res, err := s.Submit(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.vnpayment.vn/pay", res.RedirectURL)

	// 跳转网关前购物车保持原样, 断点里记下待移除的条目
	assert.Empty(t, cart.removedBatches())
	saved := pending.savedEntries()
	require.Len(t, saved, 1)
	assert.Equal(t, "ORD-VNP", saved[0].OrderSN)
	assert.Equal(t, []int64{11}, saved[0].CartItemIDs)
}

func TestSession_Submit_InFlightAndRetry(t *testing.T) {
	t.Parallel()
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	orders := &fakeOrders{fn: func(cmd CreateCmd) (domain.SubmitResult, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
			return domain.SubmitResult{}, errors.New("下游超时")
		}
		return domain.SubmitResult{OrderSN: "ORD-RETRY"}, nil
	}}
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeBuyNow,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, testDeps(orders, &fakeCart{}, &fakePending{}), testConfig())
	makeReady(t, s)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "127.0.0.1")
		errCh <- err
	}()
	<-entered

	// 在途期间重复提交被拒
	_, err := s.Submit(context.Background(), "127.0.0.1")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.Error(t, <-errCh)

	// 失败后在途标记被清掉, 允许手动重试
	res, err := s.Submit(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-RETRY", res.OrderSN)
}

func TestSession_QuoteStaleDiscard(t *testing.T) {
	t.Parallel()
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	quotes := &fakeQuotes{}
	quotes.fn = func(provinceID, wardID, subtotal int64) (domain.Quote, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
			// 过期结果, 到达时必须被丢弃
			return domain.Quote{Fee: 99_000, Reason: "STANDARD"}, nil
		}
		return domain.Quote{Fee: 30_000, Reason: "STANDARD"}, nil
	}
	deps := testDeps(&fakeOrders{}, &fakeCart{}, &fakePending{})
	deps.Quotes = quotes
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, deps, testConfig())

	s.SetProvince(79, "")
	<-entered
	// 第一次报价还挂着的时候触发新一轮
	s.SetQuantity(100, 2)
	require.Eventually(t, func() bool {
		v := s.View()
		return v.QuoteReady && v.Quote.Fee == 30_000
	}, time.Second, time.Millisecond)

	close(release)
	// 给过期结果留够到达时间, 最新报价不能被覆盖
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(30_000), s.View().Quote.Fee)
}

func TestSession_QuotePreconditions(t *testing.T) {
	t.Parallel()
	quotes := &fakeQuotes{}
	deps := testDeps(&fakeOrders{}, &fakeCart{}, &fakePending{})
	deps.Quotes = quotes
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, deps, testConfig())

	// 没选省份时改数量不触发报价请求
	s.SetQuantity(100, 2)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, quotes.callCount())
	assert.False(t, s.View().QuoteReady)
}

func TestSession_PricingSource(t *testing.T) {
	t.Parallel()
	previews := &fakePreviews{}
	blocked := make(chan struct{})
	previews.fn = func(items []domain.IntentItem, provinceID, wardID int64) (domain.Preview, error) {
		<-blocked
		return domain.Preview{Subtotal: 25_000_000, ShippingFee: 30_000, Total: 25_030_000}, nil
	}
	deps := testDeps(&fakeOrders{}, &fakeCart{}, &fakePending{})
	deps.Previews = previews
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, deps, testConfig())

	// 权威报价未就绪时用购物车快照价做降级估算
	v := s.View()
	assert.Equal(t, domain.PricingEstimated, v.PricingSource)
	assert.Equal(t, int64(25_000_000), v.EstimatedTotal)

	s.SetProvince(79, "")
	close(blocked)
	// 权威报价一到, 估算立即作废
	require.Eventually(t, func() bool {
		return s.View().PricingSource == domain.PricingAuthoritative
	}, time.Second, time.Millisecond)
	assert.Equal(t, int64(25_030_000), s.View().Preview.Total)
}

func TestSession_PreviewFailureKeepsEstimate(t *testing.T) {
	t.Parallel()
	previews := &fakePreviews{fn: func(items []domain.IntentItem, provinceID, wardID int64) (domain.Preview, error) {
		return domain.Preview{}, errors.New("下游不可用")
	}}
	deps := testDeps(&fakeOrders{}, &fakeCart{}, &fakePending{})
	deps.Previews = previews
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, deps, testConfig())

	s.SetProvince(79, "")
	require.Eventually(t, func() bool {
		return s.View().PreviewFailed
	}, time.Second, time.Millisecond)
	v := s.View()
	assert.Nil(t, v.Preview)
	assert.Equal(t, domain.PricingEstimated, v.PricingSource)
}

func TestSession_WardChangeRefreshesPreview(t *testing.T) {
	t.Parallel()
	previews := &fakePreviews{}
	var mu sync.Mutex
	wardFees := map[int64]int64{0: 50_000, 26734: 30_000}
	previews.fn = func(items []domain.IntentItem, provinceID, wardID int64) (domain.Preview, error) {
		mu.Lock()
		fee := wardFees[wardID]
		mu.Unlock()
		return domain.Preview{Subtotal: 25_000_000, ShippingFee: fee, Total: 25_000_000 + fee}, nil
	}
	deps := testDeps(&fakeOrders{}, &fakeCart{}, &fakePending{})
	deps.Previews = previews
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, deps, testConfig())

	s.SetProvince(79, "")
	require.Eventually(t, func() bool {
		v := s.View()
		return v.Preview != nil && v.Preview.ShippingFee == 50_000
	}, time.Second, time.Millisecond)

	// 换坊之后合计必须跟着运费一起变, 不能停留在旧报价
	s.SetWard(26734, "")
	require.Eventually(t, func() bool {
		v := s.View()
		return v.Preview != nil && v.Preview.ShippingFee == 30_000
	}, time.Second, time.Millisecond)
	assert.Equal(t, int64(25_030_000), s.View().Preview.Total)
}

func TestSession_Submit_CarriesNote(t *testing.T) {
	t.Parallel()
	orders := &fakeOrders{}
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeBuyNow,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, testDeps(orders, &fakeCart{}, &fakePending{}), testConfig())
	makeReady(t, s)
	s.SetNote("Giao gio hanh chinh")

	_, err := s.Submit(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "Giao gio hanh chinh", orders.lastCmd(t).Note)
}

func TestSession_GeocodeStaleDiscard(t *testing.T) {
	t.Parallel()
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	geo := &fakeGeo{}
	geo.fn = func(query string) (domain.Point, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
			return domain.Point{Lat: 21.02, Lng: 105.85}, nil
		}
		return domain.Point{Lat: 10.77, Lng: 106.70}, nil
	}
	deps := testDeps(&fakeOrders{}, &fakeCart{}, &fakePending{})
	deps.Geo = geo
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, deps, testConfig())

	s.SetProvince(1, "Ha Noi")
	<-entered
	s.SetProvince(79, "Ho Chi Minh")
	require.Eventually(t, func() bool {
		v := s.View()
		return v.Point != nil && v.Point.Lat == 10.77
	}, time.Second, time.Millisecond)

	close(release)
	time.Sleep(20 * time.Millisecond)
	// 只应用最高代的定位结果
	assert.Equal(t, 10.77, s.View().Point.Lat)
}

func TestSession_GeocodeFailureIsAdvisory(t *testing.T) {
	t.Parallel()
	geo := &fakeGeo{fn: func(query string) (domain.Point, error) {
		return domain.Point{}, errors.New("没有匹配结果")
	}}
	deps := testDeps(&fakeOrders{}, &fakeCart{}, &fakePending{})
	deps.Geo = geo
	s := NewSession(1, domain.Intent{
		Mode:  domain.ModeCart,
		Items: []domain.IntentItem{{VariationID: 100, Quantity: 1}},
	}, testLines, deps, testConfig())

	s.SetProvince(79, "Ho Chi Minh")
	require.Eventually(t, func() bool {
		return s.View().GeocodeAdvisory
	}, time.Second, time.Millisecond)

	// 手动放针消除降级提示并进入候选态
	s.PlacePin(domain.Point{Lat: 10.77, Lng: 106.70})
	v := s.View()
	assert.False(t, v.GeocodeAdvisory)
	assert.Equal(t, domain.GateCandidate, v.Gate)
}
