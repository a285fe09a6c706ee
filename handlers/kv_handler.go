package handlers

import (
	"errors"
	"net/http"

	"slights/kv"

	"github.com/gin-gonic/gin"
)

// KVHandler exposes the browser-safe proxy endpoints over the key-value
// store, so clients never hold store credentials. The contract mirrors the
// store itself: reads answer {result: value|null}, writes and deletes fail
// loudly with an error body.
type KVHandler struct {
	store kv.Store
}

func NewKVHandler(store kv.Store) *KVHandler {
	return &KVHandler{store: store}
}

type setRequest struct {
	Key   string  `json:"key" binding:"required"`
	Value *string `json:"value" binding:"required"`
}

type delRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *KVHandler) Get(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key query parameter is required"})
		return
	}

	value, err := h.store.Get(c.Request.Context(), key)
	if errors.Is(err, kv.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"result": nil})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": value})
}

func (h *KVHandler) Set(c *gin.Context) {
	var req setRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key and value are required"})
		return
	}

	if err := h.store.Set(c.Request.Context(), req.Key, *req.Value); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

func (h *KVHandler) Delete(c *gin.Context) {
	var req delRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), req.Key)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": deleted})
}
