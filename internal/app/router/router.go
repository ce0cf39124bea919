package router

import (
	authhandler "quant_backend/internal/feature/auth/transport/handler"
	tshandler "quant_backend/internal/feature/timeseries/transport/handler"
	"quant_backend/internal/platform/http/handler"
	jwtmw "quant_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(auth *authhandler.AuthHandler, series *tshandler.SeriesHandler,
	returns *tshandler.ReturnsHandler, runs *tshandler.RunsHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// ログイン（JWT 発行）
	r.POST("/login", auth.Login)

	// 認証必須のルート（読み取り専用サーフェス）
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired())
	{
		protected.GET("/series", series.List)
		protected.GET("/series/:provider/:symbol/observations", series.Observations)
		protected.GET("/returns/:provider/:symbol", returns.Get)
		protected.GET("/runs", runs.List)
	}

	return r
}
