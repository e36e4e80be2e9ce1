package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/domain"
)

type ItemService interface {
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type ItemHandler struct {
	svc ItemService
}

func NewItemHandler(svc ItemService) *ItemHandler {
	return &ItemHandler{
		svc: svc,
	}
}

// HandleCreateItem godoc
// @Summary      Create an item
// @Description  Stores a new item. Numeric fields that cannot be read as numbers are stored as 0.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateItemRequest  true  "item attributes"
// @Success      200      {object}  domain.Item
// @Failure      500      {object}  response.Err
// @Router       /api/items [post]
func (h *ItemHandler) HandleCreateItem(ctx *gin.Context) {
	var req request.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zap.L().Debug("unreadable item body, storing empty attributes", zap.Error(err))
		req = request.CreateItemRequest{}
	}

	item, err := h.svc.CreateItem(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateItem -> h.svc.CreateItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleListItems godoc
// @Summary      List items
// @Description  Returns every stored item.
// @Tags         items
// @Produce      json
// @Success      200  {array}   domain.Item
// @Failure      500  {object}  response.Err
// @Router       /api/items [get]
func (h *ItemHandler) HandleListItems(ctx *gin.Context) {
	items, err := h.svc.ListItems(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListItems -> h.svc.ListItems -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleDeleteItem godoc
// @Summary      Delete an item
// @Description  Removes the item if it exists. The response is the same whether or not it did.
// @Tags         items
// @Produce      json
// @Param        itemID  path      string  true  "Item ID"
// @Success      200     {object}  response.Message
// @Failure      500     {object}  response.Err
// @Router       /api/items/{itemID} [delete]
func (h *ItemHandler) HandleDeleteItem(ctx *gin.Context) {
	if err := h.svc.DeleteItem(ctx.Request.Context(), ctx.Param("itemID")); err != nil {
		err = fmt.Errorf("v1.HandleDeleteItem -> h.svc.DeleteItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: response.ItemDeletedMessage})
}
