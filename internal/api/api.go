package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"github.com/williamzujkowski/fantasy-merchant/internal/catalog"
	"github.com/williamzujkowski/fantasy-merchant/internal/player"
	"github.com/williamzujkowski/fantasy-merchant/internal/trading"
	"github.com/williamzujkowski/fantasy-merchant/internal/websocket"
)

const (
	sessionName        = "fantasy_merchant_session"
	sessionKeyPlayerID = "player_id"
	contextKeyAccount  = "account"
)

type APIHandler struct {
	store    catalog.Store
	engine   *trading.Engine
	registry *player.Registry
	sessions sessions.Store
	hub      *websocket.Hub
}

func SetupRoutes(r *gin.Engine, store catalog.Store, engine *trading.Engine, registry *player.Registry, sessionStore sessions.Store, hub *websocket.Hub) {
	handler := &APIHandler{
		store:    store,
		engine:   engine,
		registry: registry,
		sessions: sessionStore,
		hub:      hub,
	}

	r.Use(handler.SessionMiddleware)

	r.GET("/", handler.Welcome)
	r.GET("/health", handler.Health)

	r.GET("/items", handler.GetItems)
	r.GET("/items/:id/history", handler.GetPriceHistory)
	r.POST("/items/:id/buy", handler.BuyItem)
	r.POST("/items/:id/sell", handler.SellItem)

	r.GET("/gold", handler.GetGold)
	r.GET("/inventory", handler.GetInventory)

	if hub != nil {
		r.GET("/ws", hub.Serve)
	}
}

// SessionMiddleware resolves the player account for the request, seeding a
// new session cookie and account on first contact.
func (h *APIHandler) SessionMiddleware(c *gin.Context) {
	session, _ := h.sessions.Get(c.Request, sessionName)

	playerID, ok := session.Values[sessionKeyPlayerID].(string)
	if !ok || playerID == "" {
		playerID = uuid.NewString()
		session.Values[sessionKeyPlayerID] = playerID
		if err := session.Save(c.Request, c.Writer); err != nil {
			logrus.WithError(err).Warn("Failed to save session")
		}
	}

	c.Set(contextKeyAccount, h.registry.GetOrCreate(playerID))
	c.Next()
}

func (h *APIHandler) account(c *gin.Context) *player.Account {
	return c.MustGet(contextKeyAccount).(*player.Account)
}

func (h *APIHandler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Hello, welcome to the Fantasy Merchant API!")
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Market handlers
func (h *APIHandler) GetItems(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *APIHandler) GetPriceHistory(c *gin.Context) {
	id := c.Param("id")

	history, err := h.store.History(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"item_id": id,
		"history": history,
	})
}

// Player handlers
func (h *APIHandler) GetGold(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"gold": h.account(c).Gold()})
}

func (h *APIHandler) GetInventory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"inventory": h.account(c).Inventory()})
}

type tradeRequest struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// Trading handlers
func (h *APIHandler) BuyItem(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, err := h.engine.Buy(h.account(c), c.Param("id"), req.Name, req.Price, req.Quantity)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, trading.ErrInsufficientGold):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient gold to buy the item"})
	case errors.Is(err, trading.ErrInvalidQuantity), errors.Is(err, trading.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		internalError(c, err)
	}
}

func (h *APIHandler) SellItem(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, err := h.engine.Sell(h.account(c), c.Param("id"), req.Name, req.Price, req.Quantity)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, trading.ErrItemNotInInventory):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Item not found in inventory"})
	case errors.Is(err, trading.ErrInvalidQuantity), errors.Is(err, trading.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		internalError(c, err)
	}
}

func internalError(c *gin.Context, err error) {
	logrus.WithError(err).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}
