package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"merchant-api/internal/models"
	"merchant-api/internal/repository"
	"merchant-api/internal/search"
	"merchant-api/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemsHandler serves the item endpoints.
type ItemsHandler struct {
	logger *zap.Logger
	store  repository.Store
}

func NewItemsHandler(logger *zap.Logger, store repository.Store) *ItemsHandler {
	return &ItemsHandler{logger: logger, store: store}
}

// itemPayload is the create/update request body. unit_price is kept raw so
// malformed values can be reported as a field validation failure instead of
// a bind error.
type itemPayload struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	UnitPrice   json.RawMessage `json:"unit_price"`
	MerchantID  *int64          `json:"merchant_id"`
}

func (p *itemPayload) hasUnitPrice() bool {
	return len(p.UnitPrice) > 0 && !bytes.Equal(p.UnitPrice, []byte("null"))
}

func (p *itemPayload) parseUnitPrice() (decimal.Decimal, bool) {
	raw := bytes.Trim(p.UnitPrice, `"`)
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func abortWithError(c *gin.Context, err *apierrors.RequestError) {
	c.Error(err)
	c.Abort()
}

func parseID(c *gin.Context) (int64, string) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, raw
	}
	return id, raw
}

// ListItems handles GET /api/v1/items
// @Summary      List items
// @Tags         items
// @Produce      json
// @Success      200  {object}  ItemListResponse
// @Router       /items [get]
func (h *ItemsHandler) ListItems(c *gin.Context) {
	items, err := h.store.ListItems(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list items", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newItemList(items))
}

// GetItem handles GET /api/v1/items/:id
// @Summary      Show an item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  ItemResponse
// @Failure      404  {object}  apierrors.Envelope
// @Router       /items/{id} [get]
func (h *ItemsHandler) GetItem(c *gin.Context) {
	id, raw := parseID(c)

	item, err := h.store.FindItem(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrItemNotFound {
			abortWithError(c, apierrors.NewNotFound("Item", raw))
			return
		}
		h.logger.Error("Failed to find item", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ItemResponse{Data: newItemData(*item)})
}

// CreateItem handles POST /api/v1/items
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        item  body      ItemAttributes  true  "Item fields"
// @Success      201   {object}  ItemResponse
// @Failure      404   {object}  apierrors.Envelope  "merchant_id missing or unknown"
// @Failure      422   {object}  apierrors.Envelope  "aggregated field errors"
// @Router       /items [post]
func (h *ItemsHandler) CreateItem(c *gin.Context) {
	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, apierrors.NewBadRequest("Request body is not valid JSON"))
		return
	}

	// The merchant reference is checked before field validation; a write
	// naming no merchant or a dead merchant is a 404, not a 422.
	if payload.MerchantID == nil {
		abortWithError(c, apierrors.NewNotFoundWithoutID("Merchant"))
		return
	}
	if _, err := h.store.FindMerchant(c.Request.Context(), *payload.MerchantID); err != nil {
		if err == repository.ErrMerchantNotFound {
			abortWithError(c, apierrors.NewNotFound("Merchant", strconv.FormatInt(*payload.MerchantID, 10)))
			return
		}
		h.logger.Error("Failed to find merchant", zap.Error(err))
		c.Error(err)
		return
	}

	item := models.Item{MerchantID: *payload.MerchantID}
	var failures []string

	if payload.Name == nil || *payload.Name == "" {
		failures = append(failures, "Name can't be blank")
	} else {
		item.Name = *payload.Name
	}
	if payload.Description == nil || *payload.Description == "" {
		failures = append(failures, "Description can't be blank")
	} else {
		item.Description = *payload.Description
	}
	if !payload.hasUnitPrice() {
		failures = append(failures, "Unit price can't be blank")
	} else if price, ok := payload.parseUnitPrice(); !ok {
		failures = append(failures, "Unit price is not a number")
	} else if price.IsNegative() {
		failures = append(failures, "Unit price must be greater than or equal to 0")
	} else {
		item.UnitPrice = price
	}

	if len(failures) > 0 {
		abortWithError(c, apierrors.NewValidationFailed(failures))
		return
	}

	if err := h.store.CreateItem(c.Request.Context(), &item); err != nil {
		h.logger.Error("Failed to create item", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ItemResponse{Data: newItemData(item)})
}

// UpdateItem handles PUT /api/v1/items/:id. Fields omitted from the request
// keep their previous values.
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Item id"
// @Param        item  body      ItemAttributes  true  "Partial item fields"
// @Success      200   {object}  ItemResponse
// @Failure      404   {object}  apierrors.Envelope  "item or new merchant unknown"
// @Failure      422   {object}  apierrors.Envelope
// @Router       /items/{id} [put]
func (h *ItemsHandler) UpdateItem(c *gin.Context) {
	id, raw := parseID(c)

	item, err := h.store.FindItem(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrItemNotFound {
			abortWithError(c, apierrors.NewNotFound("Item", raw))
			return
		}
		h.logger.Error("Failed to find item", zap.Error(err))
		c.Error(err)
		return
	}

	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, apierrors.NewBadRequest("Request body is not valid JSON"))
		return
	}

	if payload.MerchantID != nil {
		if _, err := h.store.FindMerchant(c.Request.Context(), *payload.MerchantID); err != nil {
			if err == repository.ErrMerchantNotFound {
				abortWithError(c, apierrors.NewNotFound("Merchant", strconv.FormatInt(*payload.MerchantID, 10)))
				return
			}
			h.logger.Error("Failed to find merchant", zap.Error(err))
			c.Error(err)
			return
		}
		item.MerchantID = *payload.MerchantID
	}

	var failures []string

	if payload.Name != nil {
		if *payload.Name == "" {
			failures = append(failures, "Name can't be blank")
		} else {
			item.Name = *payload.Name
		}
	}
	if payload.Description != nil {
		if *payload.Description == "" {
			failures = append(failures, "Description can't be blank")
		} else {
			item.Description = *payload.Description
		}
	}
	if payload.hasUnitPrice() {
		if price, ok := payload.parseUnitPrice(); !ok {
			failures = append(failures, "Unit price is not a number")
		} else if price.IsNegative() {
			failures = append(failures, "Unit price must be greater than or equal to 0")
		} else {
			item.UnitPrice = price
		}
	}

	if len(failures) > 0 {
		abortWithError(c, apierrors.NewValidationFailed(failures))
		return
	}

	if err := h.store.UpdateItem(c.Request.Context(), item); err != nil {
		h.logger.Error("Failed to update item", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ItemResponse{Data: newItemData(*item)})
}

// DeleteItem handles DELETE /api/v1/items/:id. The delete cascades: the
// item's invoice lines are removed, and invoices left with zero lines go
// with them.
// @Summary      Delete an item
// @Tags         items
// @Param        id  path  int  true  "Item id"
// @Success      204
// @Failure      404  {object}  apierrors.Envelope
// @Router       /items/{id} [delete]
func (h *ItemsHandler) DeleteItem(c *gin.Context) {
	id, raw := parseID(c)

	if err := h.store.DeleteItem(c.Request.Context(), id); err != nil {
		if err == repository.ErrItemNotFound {
			abortWithError(c, apierrors.NewNotFound("Item", raw))
			return
		}
		h.logger.Error("Failed to delete item", zap.Error(err))
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetItemMerchant handles GET /api/v1/items/:id/merchant
// @Summary      Show the merchant owning an item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  MerchantResponse
// @Failure      404  {object}  apierrors.Envelope
// @Router       /items/{id}/merchant [get]
func (h *ItemsHandler) GetItemMerchant(c *gin.Context) {
	id, raw := parseID(c)

	item, err := h.store.FindItem(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrItemNotFound {
			abortWithError(c, apierrors.NewNotFound("Item", raw))
			return
		}
		h.logger.Error("Failed to find item", zap.Error(err))
		c.Error(err)
		return
	}

	merchant, err := h.store.FindMerchant(c.Request.Context(), item.MerchantID)
	if err != nil {
		h.logger.Error("Failed to find merchant", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MerchantResponse{Data: newMerchantData(*merchant)})
}

// FindItem handles GET /api/v1/items/find. A valid query that matches
// nothing is a success carrying the soft "not found" payload, not an error.
// @Summary      Find one item by name or price range
// @Tags         items
// @Produce      json
// @Param        name       query     string  false  "Name fragment, case-insensitive"
// @Param        min_price  query     number  false  "Minimum unit price"
// @Param        max_price  query     number  false  "Maximum unit price"
// @Success      200  {object}  ItemResponse  "matching item, or the soft not-found payload"
// @Failure      400  {object}  apierrors.Envelope
// @Router       /items/find [get]
func (h *ItemsHandler) FindItem(c *gin.Context) {
	query := search.ParseItemQuery(c.Request.URL.Query())
	if qerr := query.Validate(); qerr != nil {
		abortWithError(c, apierrors.NewBadRequest(qerr.Message))
		return
	}

	item, err := search.ResolveItem(c.Request.Context(), h.store, query)
	if err != nil {
		if err == repository.ErrItemNotFound {
			c.JSON(http.StatusOK, newSoftMiss("Item not found"))
			return
		}
		h.logger.Error("Failed to search items", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ItemResponse{Data: newItemData(*item)})
}
