package handlers

import (
	"errors"
	"net/http"
	"strings"

	"slights/services"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

// RoomHandler maps the game actions onto HTTP so any polling client can play
// a room through this server. The handlers are thin: each performs the same
// key-value sequences a browser client would, with no extra coordination, so
// the same cross-client races apply. Nothing here verifies that the caller
// picking a winner is actually the judge; that gate lives in the view layer.
type RoomHandler struct {
	svc *services.RoomService
}

func NewRoomHandler(svc *services.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

type createRoomRequest struct {
	RoomCode string `json:"room_code" binding:"required"`
	Alias    string `json:"alias" binding:"required"`
}

type joinRoomRequest struct {
	Alias string `json:"alias" binding:"required"`
}

type submitCurseRequest struct {
	Player string `json:"player" binding:"required"`
	Curse  string `json:"curse" binding:"required"`
}

type redrawRequest struct {
	Player string `json:"player" binding:"required"`
}

type pickWinnerRequest struct {
	Player string `json:"player" binding:"required"`
	Winner string `json:"winner" binding:"required"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.svc.CreateRoom(c.Request.Context(), req.RoomCode, req.Alias)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room_code": code})
}

func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.svc.JoinRoom(c.Request.Context(), c.Param("code"), req.Alias)
	if errors.Is(err, services.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_code": code})
}

// GetRoom returns the room snapshot as seen by the player named in the
// optional player query parameter; only that player's hand is included.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.svc.LoadRoom(c.Request.Context(), c.Param("code"), c.Query("player"))
	if errors.Is(err, services.ErrIncompleteRoom) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) SubmitCurse(c *gin.Context) {
	var req submitCurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SubmitCurse(c.Request.Context(), c.Param("code"), req.Player, req.Curse); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "curse submitted"})
}

func (h *RoomHandler) RedrawHand(c *gin.Context) {
	var req redrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.RedrawHand(c.Request.Context(), c.Param("code"), req.Player); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "hand redrawn"})
}

// PickWinner loads the room as the acting player's snapshot and settles the
// round from it, exactly as a browser client would from its own cached state.
func (h *RoomHandler) PickWinner(c *gin.Context) {
	var req pickWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.svc.LoadRoom(c.Request.Context(), c.Param("code"), req.Player)
	if errors.Is(err, services.ErrIncompleteRoom) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.PickWinner(c.Request.Context(), c.Param("code"), room, req.Winner); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "winner picked"})
}

// GetLastWinner serves the transient reveal record for overlay polling.
func (h *RoomHandler) GetLastWinner(c *gin.Context) {
	record := h.svc.LastWinner(c.Request.Context(), c.Param("code"))
	if record == nil {
		c.JSON(http.StatusOK, gin.H{"result": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": record})
}

// ClearLastWinner removes the reveal record; called by the judge's client
// when the scoreboard is dismissed.
func (h *RoomHandler) ClearLastWinner(c *gin.Context) {
	if err := h.svc.ClearLastWinner(c.Request.Context(), c.Param("code")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "winner record cleared"})
}

// JoinQR renders a PNG QR code pointing at the room's game page, for passing
// a join link around a table.
func (h *RoomHandler) JoinQR(c *gin.Context) {
	code := services.NormalizeCode(c.Param("code"))

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	joinURL := scheme + "://" + c.Request.Host + "/game/" + code

	const qrSize = 320
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+strings.ToLower(code)+`.png"`)
	c.Data(http.StatusOK, "image/png", png)
}
