// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// Health は /healthz エンドポイントを処理します。読み取りAPIと
// 取り込みジョブの監視からの導通確認に使います。認証は不要です。
func Health(c *gin.Context) {
	// 監視側が古い結果を見ないよう明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	// メソッドに応じて200または204を返す
	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
