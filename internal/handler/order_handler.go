package handler

import (
	"net/http"
	"strconv"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/config"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/middleware"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc        *usecase.OrderUsecase
	lifecycle *usecase.OrderLifecycleUsecase
	cfg       config.Config
}

func NewOrderHandler(uc *usecase.OrderUsecase, lifecycle *usecase.OrderLifecycleUsecase, cfg config.Config) *OrderHandler {
	return &OrderHandler{uc: uc, lifecycle: lifecycle, cfg: cfg}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/order")
	g.Use(middleware.Session())
	g.Use(middleware.OptionalAuthJWT(h.cfg))

	g.GET("", h.listOrders)
	g.GET("/search", h.searchOrders)
	g.GET("/list/user/:id", h.listUserOrders)
	g.GET("/user-product-purchase/:productId", h.userProductPurchase, middleware.RequireUser())
	g.GET("/:id", h.getOrder)
	g.POST("/create", h.createOrder)
	g.POST("/direct-create", h.directCreateOrder)
	g.POST("/add-item", h.addOrderItem)
	g.POST("/remove-item", h.removeOrderItem)
	g.PATCH("/status/:id", h.updateStatus)
	g.PATCH("/details/:id", h.updateDetails)
	g.DELETE("/:id", h.deleteOrder)
}

func (h *OrderHandler) lang(c echo.Context) string {
	if v := c.QueryParam("lang"); v != "" {
		return v
	}
	return h.cfg.DefaultLang
}

func (h *OrderHandler) listOrders(c echo.Context) error {
	in := usecase.ListOrdersInput{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
		Status:   c.QueryParam("status"),
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
	}
	if v := c.QueryParam("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_USER_ID"})
		}
		in.UserID = &id
	}

	out, err := h.lifecycle.ListOrders(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) searchOrders(c echo.Context) error {
	out, err := h.lifecycle.SearchOrders(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listUserOrders(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	out, err := h.lifecycle.ListUserOrders(c.Request().Context(), userID,
		queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) userProductPurchase(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}
	userID, _ := middleware.UserID(c)

	out, err := h.lifecycle.CheckUserProductPurchase(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) getOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	out, err := h.lifecycle.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) createOrder(c echo.Context) error {
	var req usecase.CreateOrderInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), middleware.SessionID(c), req, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) directCreateOrder(c echo.Context) error {
	var req usecase.DirectCreateOrderInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.DirectCreateOrder(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) addOrderItem(c echo.Context) error {
	var req usecase.AddOrderItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.AddOrderItem(c.Request().Context(), req, h.lang(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) removeOrderItem(c echo.Context) error {
	var req usecase.RemoveOrderItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.RemoveOrderItem(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.lifecycle.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateDetails(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	var req usecase.UpdateOrderDetailsInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.lifecycle.UpdateOrderDetails(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) deleteOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	if err := h.lifecycle.DeleteOrder(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
