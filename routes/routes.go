package routes

import (
	"net/http"

	"slights/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, kvHandler *handlers.KVHandler, roomHandler *handlers.RoomHandler, configHandler *handlers.ConfigHandler) {
	api := router.Group("/api")
	{
		api.GET("/client-config", configHandler.Get)

		// Browser-safe proxy endpoints over the key-value store.
		store := api.Group("/kv")
		{
			store.GET("/get", kvHandler.Get)
			store.POST("/set", kvHandler.Set)
			store.POST("/del", kvHandler.Delete)
		}

		// Game actions, one route per room-state operation.
		rooms := api.Group("/rooms")
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("/:code", roomHandler.GetRoom)
			rooms.POST("/:code/join", roomHandler.JoinRoom)
			rooms.POST("/:code/submit", roomHandler.SubmitCurse)
			rooms.POST("/:code/redraw", roomHandler.RedrawHand)
			rooms.POST("/:code/winner", roomHandler.PickWinner)
			rooms.GET("/:code/winner", roomHandler.GetLastWinner)
			rooms.DELETE("/:code/winner", roomHandler.ClearLastWinner)
			rooms.GET("/:code/qr", roomHandler.JoinQR)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
