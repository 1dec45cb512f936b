package token

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openwork-hackathon/team-roast-royale/domain"
)

// Handler exposes the RSTR shop over REST.
type Handler struct {
	ledger *Ledger
}

func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// Register mounts the token routes on a router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/token/info", h.InfoHandler)
	rg.GET("/token/balance/:playerId", h.BalanceHandler)
	rg.POST("/token/register", h.RegisterAddressHandler)
	rg.POST("/token/buy", h.BuyHandler)
	rg.POST("/token/sell", h.SellHandler)
}

func (h *Handler) InfoHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.ledger.Price())
}

func (h *Handler) BalanceHandler(ctx *gin.Context) {
	playerId := ctx.Param("playerId")
	ctx.JSON(http.StatusOK, gin.H{
		"playerId": playerId,
		"balance":  h.ledger.InitParticipant(playerId),
	})
}

func (h *Handler) RegisterAddressHandler(ctx *gin.Context) {
	var body struct {
		PlayerId string `json:"playerId"`
		Address  string `json:"walletAddress"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerId == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}
	h.ledger.InitParticipant(body.PlayerId)
	h.ledger.RegisterAddress(body.PlayerId, body.Address)
	ctx.Status(http.StatusOK)
}

func (h *Handler) BuyHandler(ctx *gin.Context) {
	var body struct {
		PlayerId string  `json:"playerId"`
		Amount   float64 `json:"amount"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerId == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}

	h.ledger.InitParticipant(body.PlayerId)
	result, err := h.ledger.Buy(body.PlayerId, body.Amount)
	if err != nil {
		ctx.AbortWithStatusJSON(shopStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (h *Handler) SellHandler(ctx *gin.Context) {
	var body struct {
		PlayerId string  `json:"playerId"`
		Amount   float64 `json:"amount"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.PlayerId == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}

	result, err := h.ledger.Sell(body.PlayerId, body.Amount)
	if err != nil {
		ctx.AbortWithStatusJSON(shopStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func shopStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
