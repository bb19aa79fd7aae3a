package web

type PaymentURLReq struct {
	OrderSN string `json:"orderSN"`
}

type PaymentURLResp struct {
	URL string `json:"url"`
}
