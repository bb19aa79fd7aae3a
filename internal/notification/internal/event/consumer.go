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

	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"

	"github.com/lapviet/lapstore/internal/notification/internal/service"
)

type OrderCreatedEventConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewOrderCreatedEventConsumer(svc service.Service, q mq.MQ) (*OrderCreatedEventConsumer, error) {
	groupID := "notification"
	consumer, err := q.Consumer(OrderCreatedEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &OrderCreatedEventConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

// Start 后面要考虑借助 ctx 来优雅退出
func (c *OrderCreatedEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费订单创建事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *OrderCreatedEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return err
	}
	var evt OrderCreatedEvent
	if err = json.Unmarshal(msg.Value, &evt); err != nil {
		return err
	}
	return c.svc.SendOrderConfirmation(ctx, evt.OrderSN, evt.UID, evt.Total, evt.PaymentMethod)
}
