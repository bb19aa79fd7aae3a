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
	"strings"
	"sync"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"

	"github.com/lapviet/lapstore/internal/checkout/internal/domain"
)

var (
	ErrSubmitInFlight  = errors.New("订单正在提交中")
	ErrStockConflict   = errors.New("存在库存冲突的条目")
	ErrNotConfirmed    = errors.New("收货位置未确认")
	ErrFeeDeltaPending = errors.New("运费变化未确认")
	ErrMissingContact  = errors.New("联系信息不完整")
	ErrMissingDest     = errors.New("省份或坊/乡未选择")
	ErrEmptyIntent     = errors.New("结算条目为空")
)

const (
	defaultQuoteDebounce   = 300 * time.Millisecond
	defaultPreviewDebounce = 500 * time.Millisecond
)

// Config 去抖时长, 零值取默认。单测用短时长
type Config struct {
	QuoteDebounce   time.Duration
	PreviewDebounce time.Duration
}

func (c Config) quoteDebounce() time.Duration {
	if c.QuoteDebounce > 0 {
		return c.QuoteDebounce
	}
	return defaultQuoteDebounce
}

func (c Config) previewDebounce() time.Duration {
	if c.PreviewDebounce > 0 {
		return c.PreviewDebounce
	}
	return defaultPreviewDebounce
}

// Deps 编排器的外部协作方
type Deps struct {
	Quotes   QuoteClient
	Previews PreviewClient
	Geo      Geocoder
	Orders   OrderClient
	Cart     CartClient
	Pending  PendingCheckouts
}

// Session 单用户结算会话。去抖定时器的回调和调用方并发进入,
// 全部状态由互斥锁串行化。过期结果靠代数比对丢弃, 从不合并
type Session struct {
	mu sync.Mutex

	uid     int64
	intent  domain.Intent
	views   []domain.ViewItem
	dest    domain.Destination
	contact domain.Contact
	gate    domain.GateState

	paymentMethod string
	bankCode      string

	quote       domain.Quote
	quoteReady  bool
	quoteFailed bool

	preview       *domain.Preview
	previewFailed bool

	// geocodeAdvisory 提示用户手动放置图钉的降级态
	geocodeAdvisory bool

	quoteGen   uint64
	previewGen uint64
	geocodeGen uint64

	quoteTimer   *time.Timer
	previewTimer *time.Timer

	submitting bool
	note       string
	// requestID 每个结算意图一个幂等令牌, 服务端据此去重
	requestID string

	deps   Deps
	cfg    Config
	logger *elog.Component
}

func NewSession(uid int64, intent domain.Intent, cartLines []domain.CartLine, deps Deps, cfg Config) *Session {
	return &Session{
		uid:       uid,
		intent:    intent,
		views:     domain.BuildViewItems(intent.Items, cartLines),
		deps:      deps,
		cfg:       cfg,
		requestID: shortuuid.New(),
		logger:    elog.DefaultLogger,
	}
}

// View 当前会话状态的一致性快照
type View struct {
	Items   []domain.ViewItem
	Gate    domain.GateState
	Point   *domain.Point
	Contact domain.Contact

	Quote       domain.Quote
	QuoteReady  bool
	QuoteFailed bool

	Preview       *domain.Preview
	PreviewFailed bool
	// PricingSource 区分权威报价和降级估算
	PricingSource domain.PricingSource
	// EstimatedTotal 降级估算合计, 只在PricingSource为估算时有意义
	EstimatedTotal int64

	GeocodeAdvisory bool
	Submitting      bool
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		Items:           append([]domain.ViewItem(nil), s.views...),
		Gate:            s.gate,
		Point:           s.dest.Point,
		Contact:         s.contact,
		Quote:           s.quote,
		QuoteReady:      s.quoteReady,
		QuoteFailed:     s.quoteFailed,
		Preview:         s.preview,
		PreviewFailed:   s.previewFailed,
		GeocodeAdvisory: s.geocodeAdvisory,
		Submitting:      s.submitting,
	}
	switch {
	case s.preview != nil:
		v.PricingSource = domain.PricingAuthoritative
	default:
		subtotal, _ := domain.EstimateSubtotal(s.views)
		if subtotal > 0 {
			v.PricingSource = domain.PricingEstimated
			v.EstimatedTotal = subtotal
			if s.quoteReady {
				v.EstimatedTotal += s.quote.Fee
			}
		}
	}
	return v
}

// SetProvince 切换省份会打回位置确认门, 未选坊时顺带按省份重新定位
func (s *Session) SetProvince(id int64, name string) {
	s.mu.Lock()
	s.dest.ProvinceID, s.dest.ProvinceName = id, name
	s.dest.WardID, s.dest.WardName = 0, ""
	s.demoteGate()
	query := name
	s.mu.Unlock()
	s.scheduleQuote()
	s.schedulePreview()
	if query != "" {
		s.geocode(query)
	}
}

// SetWard 换坊同时刷新运费和合计, 两边的快照要一起变
func (s *Session) SetWard(id int64, name string) {
	s.mu.Lock()
	s.dest.WardID, s.dest.WardName = id, name
	s.demoteGate()
	query := joinQuery(name, s.dest.ProvinceName)
	s.mu.Unlock()
	s.scheduleQuote()
	s.schedulePreview()
	if query != "" {
		s.geocode(query)
	}
}

func (s *Session) SetStreet(street string) {
	s.mu.Lock()
	s.dest.Street = street
	s.demoteGate()
	s.mu.Unlock()
}

// CommitStreet 地址输入完成(失焦)时按完整地址重新定位
func (s *Session) CommitStreet() {
	s.mu.Lock()
	query := joinQuery(s.dest.Street, s.dest.WardName, s.dest.ProvinceName)
	s.mu.Unlock()
	if query != "" {
		s.geocode(query)
	}
}

func (s *Session) SetContact(contact domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contact = contact
}

func (s *Session) SetPaymentMethod(method, bankCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethod, s.bankCode = method, bankCode
}

// SetNote 随单留言, 原样带进订单
func (s *Session) SetNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = note
}

// SetQuantity 改数量会触发重新报价
func (s *Session) SetQuantity(variationID, quantity int64) {
	s.mu.Lock()
	for i := range s.views {
		if s.views[i].VariationID == variationID {
			s.views[i].Quantity = quantity
		}
	}
	for i := range s.intent.Items {
		if s.intent.Items[i].VariationID == variationID {
			s.intent.Items[i].Quantity = quantity
		}
	}
	s.mu.Unlock()
	s.scheduleQuote()
	s.schedulePreview()
}

// PlacePin 手动放置或拖动图钉
func (s *Session) PlacePin(point domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dest.Point = &point
	s.geocodeAdvisory = false
	// 手动放针同样要走显式确认
	s.gate = domain.GateCandidate
}

// ConfirmLocation 显式确认当前坐标, 提交的硬前置
func (s *Session) ConfirmLocation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dest.Point == nil || s.gate != domain.GateCandidate {
		return ErrNotConfirmed
	}
	s.gate = domain.GateConfirmed
	return nil
}

// demoteGate 目的地发生任何变更后回到候选态, 调用方需持有锁
func (s *Session) demoteGate() {
	if s.gate == domain.GateConfirmed {
		s.gate = domain.GateCandidate
	}
}

func (s *Session) geocode(query string) {
	s.mu.Lock()
	s.geocodeGen++
	gen := s.geocodeGen
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		point, err := s.deps.Geo.Forward(ctx, query)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.geocodeGen {
			// 已被更新的触发取代
			return
		}
		if err != nil {
			s.geocodeAdvisory = true
			return
		}
		s.dest.Point = &point
		s.geocodeAdvisory = false
		s.gate = domain.GateCandidate
	}()
}

func (s *Session) scheduleQuote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quoteGen++
	gen := s.quoteGen
	if s.quoteTimer != nil {
		s.quoteTimer.Stop()
	}
	s.quoteTimer = time.AfterFunc(s.cfg.quoteDebounce(), func() {
		s.fetchQuote(gen)
	})
}

func (s *Session) fetchQuote(gen uint64) {
	s.mu.Lock()
	if gen != s.quoteGen {
		s.mu.Unlock()
		return
	}
	provinceID, wardID := s.dest.ProvinceID, s.dest.WardID
	subtotal, _ := domain.EstimateSubtotal(s.views)
	if provinceID == 0 || subtotal == 0 {
		// 前置不满足, 回到空闲态
		s.quoteReady, s.quoteFailed = false, false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	quote, err := s.deps.Quotes.Quote(ctx, provinceID, wardID, subtotal)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.quoteGen {
		return
	}
	if err != nil {
		s.quoteReady, s.quoteFailed = false, true
		return
	}
	s.quote, s.quoteReady, s.quoteFailed = quote, true, false
}

func (s *Session) schedulePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previewGen++
	gen := s.previewGen
	if s.previewTimer != nil {
		s.previewTimer.Stop()
	}
	s.previewTimer = time.AfterFunc(s.cfg.previewDebounce(), func() {
		s.fetchPreview(gen)
	})
}

func (s *Session) fetchPreview(gen uint64) {
	s.mu.Lock()
	if gen != s.previewGen {
		s.mu.Unlock()
		return
	}
	provinceID, wardID := s.dest.ProvinceID, s.dest.WardID
	items := append([]domain.IntentItem(nil), s.intent.Items...)
	if provinceID == 0 || len(items) == 0 {
		s.preview, s.previewFailed = nil, false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	preview, err := s.deps.Previews.Preview(ctx, items, provinceID, wardID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.previewGen {
		return
	}
	if err != nil {
		s.previewFailed = true
		return
	}
	s.preview, s.previewFailed = &preview, false
}

// Submit 提交订单。所有前置条件在提交时重新校验, 而不是只在渲染时。
// 返回的RedirectURL非空表示要跳转网关, 此时购物车保持原样,
// 清理推迟到回跳处理
func (s *Session) Submit(ctx context.Context, clientIP string) (domain.SubmitResult, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return domain.SubmitResult{}, ErrSubmitInFlight
	}
	if err := s.validateLocked(); err != nil {
		s.mu.Unlock()
		return domain.SubmitResult{}, err
	}
	s.submitting = true
	cmd := s.buildCmdLocked(clientIP)
	mode := s.intent.Mode
	cartItemIDs := cmd.CartItemIDs
	s.mu.Unlock()

	res, err := s.deps.Orders.Create(ctx, cmd)

	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
	if err != nil {
		// 清掉在途标记, 允许用户手动重试
		return domain.SubmitResult{}, fmt.Errorf("提交订单失败: %w", err)
	}

	if res.RedirectURL != "" {
		// 网关路径: 落断点, 回跳后再做购物车清理
		if mode == domain.ModeCart && len(cartItemIDs) > 0 {
			if er := s.deps.Pending.Save(ctx, s.uid, domain.PendingCheckout{
				OrderSN:     res.OrderSN,
				CartItemIDs: cartItemIDs,
			}); er != nil {
				s.logger.Error("保存结算断点失败",
					elog.String("orderSN", res.OrderSN), elog.FieldErr(er))
			}
		}
		return res, nil
	}

	if mode == domain.ModeCart && len(cartItemIDs) > 0 {
		// 按条目ID精确移除, 不按variation, 防止误删下单后另加的同款
		if er := s.deps.Cart.RemoveItems(ctx, s.uid, cartItemIDs); er != nil {
			s.logger.Warn("下单后清理购物车失败",
				elog.String("orderSN", res.OrderSN), elog.FieldErr(er))
		}
	}
	return res, nil
}

func (s *Session) validateLocked() error {
	if len(s.intent.Items) == 0 {
		return ErrEmptyIntent
	}
	if s.contact.Name == "" || s.contact.Phone == "" || s.contact.Email == "" {
		return ErrMissingContact
	}
	if s.dest.ProvinceID == 0 || s.dest.WardID == 0 {
		return ErrMissingDest
	}
	if s.dest.Point == nil || s.gate != domain.GateConfirmed {
		return ErrNotConfirmed
	}
	if s.preview != nil && len(s.preview.StockWarnings) > 0 {
		return fmt.Errorf("%w: %d条", ErrStockConflict, len(s.preview.StockWarnings))
	}
	for _, item := range s.views {
		// 购物车快照可见的库存冲突也要拦下
		if item.InCart && item.Quantity > item.Stock {
			return fmt.Errorf("%w: variation %d", ErrStockConflict, item.VariationID)
		}
	}
	return nil
}

func (s *Session) buildCmdLocked(clientIP string) CreateCmd {
	cmd := CreateCmd{
		UID:           s.uid,
		RequestID:     s.requestID,
		Items:         append([]domain.IntentItem(nil), s.intent.Items...),
		ProvinceID:    s.dest.ProvinceID,
		ProvinceName:  s.dest.ProvinceName,
		WardID:        s.dest.WardID,
		WardName:      s.dest.WardName,
		Street:        s.dest.Street,
		ReceiverName:  s.contact.Name,
		Phone:         s.contact.Phone,
		Lat:           s.dest.Point.Lat,
		Lng:           s.dest.Point.Lng,
		PaymentMethod: s.paymentMethod,
		BankCode:      s.bankCode,
		Note:          s.note,
		ClientIP:      clientIP,
	}
	if s.intent.Mode == domain.ModeCart {
		for _, item := range s.views {
			if item.InCart {
				cmd.CartItemIDs = append(cmd.CartItemIDs, item.CartItemID)
			}
		}
	}
	return cmd
}

func joinQuery(parts ...string) string {
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			res = append(res, p)
		}
	}
	return strings.Join(res, ", ")
}
