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

package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// OrderStatusUpdater 订单状态推进的最小依赖面,
// 由订单service实现, 避免事件包反向引用service包
type OrderStatusUpdater interface {
	MarkPaidBySN(ctx context.Context, sn string) error
	FailBySN(ctx context.Context, sn string) error
}

// PaymentEventConsumer 消费支付结果事件, 推进或关闭对应订单
type PaymentEventConsumer struct {
	svc      OrderStatusUpdater
	consumer mq.Consumer
	logger   *elog.Component
}

func NewPaymentEventConsumer(svc OrderStatusUpdater, q mq.MQ) (*PaymentEventConsumer, error) {
	const groupID = "order"
	consumer, err := q.Consumer(PaymentEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &PaymentEventConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *PaymentEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费支付事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *PaymentEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt PaymentEvent
	if err = json.Unmarshal(msg.Value, &evt); err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	switch evt.Status {
	case PaymentStatusPaid:
		err = c.svc.MarkPaidBySN(ctx, evt.OrderSN)
	case PaymentStatusFailed:
		err = c.svc.FailBySN(ctx, evt.OrderSN)
	default:
		c.logger.Warn("未知的支付事件状态",
			elog.String("order_sn", evt.OrderSN),
			elog.String("status", evt.Status))
		return nil
	}
	if err != nil {
		c.logger.Error("处理支付事件失败",
			elog.FieldErr(err),
			elog.String("order_sn", evt.OrderSN),
			elog.String("status", evt.Status))
	}
	return err
}
