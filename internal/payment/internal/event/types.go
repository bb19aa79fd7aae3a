package event

const PaymentEventName = "payment_events"

const (
	// PaymentStatusPaid 和 PaymentStatusFailed 是事件里的终态语义,
	// 订单模块据此推进或取消订单
	PaymentStatusPaid   = "PAID"
	PaymentStatusFailed = "FAILED"
)

type PaymentEvent struct {
	OrderSN string `json:"orderSN"`
	TxnRef  string `json:"txnRef"`
	Status  string `json:"status"`
}
