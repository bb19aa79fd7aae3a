package ioc

import (
	"net/http"
	"strings"

	"github.com/lapviet/lapstore/internal/cart"
	"github.com/lapviet/lapstore/internal/checkout"
	"github.com/lapviet/lapstore/internal/geo"
	"github.com/lapviet/lapstore/internal/order"
	"github.com/lapviet/lapstore/internal/payment"
	"github.com/lapviet/lapstore/internal/pkg/middleware"
	"github.com/lapviet/lapstore/internal/product"
	"github.com/lapviet/lapstore/internal/shipping"
	"github.com/lapviet/lapstore/internal/user"

	"github.com/gin-gonic/gin"

	"github.com/ecodeclub/ginx/session"
	"github.com/gin-contrib/cors"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(sp session.Provider,
	userHdl *user.Handler,
	productHdl *product.Handler,
	shippingHdl *shipping.Handler,
	geoHdl *geo.Handler,
	paymentHdl *payment.Handler,
	cartHdl *cart.Handler,
	orderHdl *order.Handler,
	checkoutHdl *checkout.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许我的域名过来的
			return strings.Contains(origin, "lapviet.vn")
		},
	}))
	res.Use(middleware.NewMetricsBuilder().Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	userHdl.PublicRoutes(res.Engine)
	productHdl.PublicRoutes(res.Engine)
	shippingHdl.PublicRoutes(res.Engine)
	geoHdl.PublicRoutes(res.Engine)
	// VNPAY的IPN回调不能挂登录校验
	paymentHdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	userHdl.PrivateRoutes(res.Engine)
	cartHdl.PrivateRoutes(res.Engine)
	orderHdl.PrivateRoutes(res.Engine)
	paymentHdl.PrivateRoutes(res.Engine)
	checkoutHdl.PrivateRoutes(res.Engine)
	return res
}
