package handler

import (
	"net/http"
	"strconv"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/config"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/middleware"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CartHandler exposes the /cart surface. The session id comes from the
// session middleware, the language from the lang query param.
type CartHandler struct {
	uc  *usecase.CartUsecase
	cfg config.Config
}

func NewCartHandler(uc *usecase.CartUsecase, cfg config.Config) *CartHandler {
	return &CartHandler{uc: uc, cfg: cfg}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")
	g.Use(middleware.Session())
	g.Use(middleware.OptionalAuthJWT(h.cfg))

	g.GET("", h.getCart)
	g.POST("/create", h.createCart)
	g.PATCH("", h.updateCart)
	g.PUT("/details/:id", h.updateDetails)
	g.POST("/add-item", h.addItems)
	g.PATCH("/cart-item/amount", h.updateItemAmount)
	g.PATCH("/cart-item/comment", h.updateItemComment)
	g.DELETE("/delete-item/:id", h.deleteItem)
	g.DELETE("/clear/items", h.clearItems)
	g.DELETE("/:id", h.deleteCart)
	g.PATCH("/delivery-time", h.updateDeliveryTime)
	g.GET("/recommended-products", h.recommendedProducts)
	g.GET("/unavailable-items", h.unavailableItems)
	g.POST("/replace-item", h.replaceItem)
	g.PATCH("/update-user", h.updateUser)
}

func (h *CartHandler) lang(c echo.Context) string {
	if v := c.QueryParam("lang"); v != "" {
		return v
	}
	return h.cfg.DefaultLang
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.GetCart(c.Request().Context(), middleware.SessionID(c), h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) createCart(c echo.Context) error {
	var userID *int64
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	out, err := h.uc.CreateCart(c.Request().Context(), middleware.SessionID(c), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) updateCart(c echo.Context) error {
	var req usecase.UpdateCartInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.UpdateCart(c.Request().Context(), middleware.SessionID(c), req, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateDetails(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	var req usecase.CartDetailsInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.UpdateCartDetails(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItems(c echo.Context) error {
	var req []usecase.AddItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.AddItems(c.Request().Context(), middleware.SessionID(c), req, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateItemAmountRequest struct {
	ID     int64  `json:"id"`
	Amount string `json:"amount"`
}

func (h *CartHandler) updateItemAmount(c echo.Context) error {
	var req updateItemAmountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.UpdateItemAmount(c.Request().Context(), middleware.SessionID(c), req.ID, req.Amount, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateItemCommentRequest struct {
	ID      int64  `json:"id"`
	Comment string `json:"comment"`
}

func (h *CartHandler) updateItemComment(c echo.Context) error {
	var req updateItemCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.UpdateItemComment(c.Request().Context(), middleware.SessionID(c), req.ID, req.Comment, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	out, err := h.uc.DeleteItem(c.Request().Context(), middleware.SessionID(c), id, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clearItems(c echo.Context) error {
	out, err := h.uc.ClearCart(c.Request().Context(), middleware.SessionID(c), h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteCart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	if err := h.uc.DeleteCart(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) updateDeliveryTime(c echo.Context) error {
	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.UpdateDeliveryTime(c.Request().Context(), middleware.SessionID(c), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) recommendedProducts(c echo.Context) error {
	out, err := h.uc.RecommendedProducts(c.Request().Context(), middleware.SessionID(c), h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) unavailableItems(c echo.Context) error {
	out, err := h.uc.UnavailableItems(c.Request().Context(), middleware.SessionID(c), h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type replaceItemRequest struct {
	UnavailableItemID    int64 `json:"unavailable_item_id"`
	ReplacementProductID int64 `json:"replacement_product_id"`
}

func (h *CartHandler) replaceItem(c echo.Context) error {
	var req replaceItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.ReplaceUnavailableItem(c.Request().Context(), middleware.SessionID(c),
		req.UnavailableItemID, req.ReplacementProductID, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateUserRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *CartHandler) updateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	// An authenticated caller attaches itself; the explicit id covers the
	// login-migration flow driven by the auth service.
	userID := req.UserID
	if id, ok := middleware.UserID(c); ok && userID == 0 {
		userID = id
	}

	out, err := h.uc.UpdateUserOfCart(c.Request().Context(), middleware.SessionID(c), userID, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
