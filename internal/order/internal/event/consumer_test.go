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
	"testing"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusUpdater struct {
	paid   []string
	failed []string
}

func (f *fakeStatusUpdater) MarkPaidBySN(_ context.Context, sn string) error {
	f.paid = append(f.paid, sn)
	return nil
}

func (f *fakeStatusUpdater) FailBySN(_ context.Context, sn string) error {
	f.failed = append(f.failed, sn)
	return nil
}

func TestPaymentEventConsumer_Consume(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		evt  PaymentEvent

		wantPaid   []string
		wantFailed []string
	}{
		{
			name:     "支付成功推进订单",
			evt:      PaymentEvent{OrderSN: "OD100", Status: PaymentStatusPaid},
			wantPaid: []string{"OD100"},
		},
		{
			name:       "支付失败关闭订单",
			evt:        PaymentEvent{OrderSN: "OD101", Status: PaymentStatusFailed},
			wantFailed: []string{"OD101"},
		},
		{
			name: "未知状态忽略",
			evt:  PaymentEvent{OrderSN: "OD102", Status: "REFUNDING"},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q := memory.NewMQ()
			require.NoError(t, q.CreateTopic(context.Background(), PaymentEventName, 1))
			updater := &fakeStatusUpdater{}
			consumer, err := NewPaymentEventConsumer(updater, q)
			require.NoError(t, err)

			producer, err := q.Producer(PaymentEventName)
			require.NoError(t, err)
			body, err := json.Marshal(tc.evt)
			require.NoError(t, err)
			_, err = producer.Produce(context.Background(), &mq.Message{
				Key:   []byte(tc.evt.OrderSN),
				Value: body,
			})
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, consumer.Consume(ctx))
			assert.Equal(t, tc.wantPaid, updater.paid)
			assert.Equal(t, tc.wantFailed, updater.failed)
		})
	}
}
