package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"skillserver/docs"
	"skillserver/server/middleware"
)

// middlewareChain общий набор middleware сервера
func middlewareChain() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.GinRequestIDMiddleware(),
		middleware.GinCORSMiddleware(),
		middleware.GinGzipMiddleware(),
		middleware.GinLoggerMiddleware(),
		middleware.GinRecoveryMiddleware(),
	}
}

// RegisterSwaggerRoutes регистрирует маршруты Swagger в Gin роутере
func RegisterSwaggerRoutes(router *gin.Engine) {
	docs.SwaggerInfo.Host = "localhost:9999"
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}
