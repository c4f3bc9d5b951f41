package handlers

import (
	"net/http"

	"merchant-api/internal/repository"
	"merchant-api/internal/search"
	"merchant-api/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MerchantsHandler serves the merchant endpoints.
type MerchantsHandler struct {
	logger *zap.Logger
	store  repository.Store
}

func NewMerchantsHandler(logger *zap.Logger, store repository.Store) *MerchantsHandler {
	return &MerchantsHandler{logger: logger, store: store}
}

// ListMerchants handles GET /api/v1/merchants
// @Summary      List merchants
// @Tags         merchants
// @Produce      json
// @Success      200  {object}  MerchantListResponse
// @Router       /merchants [get]
func (h *MerchantsHandler) ListMerchants(c *gin.Context) {
	merchants, err := h.store.ListMerchants(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list merchants", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newMerchantList(merchants))
}

// GetMerchant handles GET /api/v1/merchants/:id
// @Summary      Show a merchant
// @Tags         merchants
// @Produce      json
// @Param        id   path      int  true  "Merchant id"
// @Success      200  {object}  MerchantResponse
// @Failure      404  {object}  apierrors.Envelope
// @Router       /merchants/{id} [get]
func (h *MerchantsHandler) GetMerchant(c *gin.Context) {
	id, raw := parseID(c)

	merchant, err := h.store.FindMerchant(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrMerchantNotFound {
			abortWithError(c, apierrors.NewNotFound("Merchant", raw))
			return
		}
		h.logger.Error("Failed to find merchant", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MerchantResponse{Data: newMerchantData(*merchant)})
}

// GetMerchantItems handles GET /api/v1/merchants/:id/items
// @Summary      List a merchant's items
// @Tags         merchants
// @Produce      json
// @Param        id   path      int  true  "Merchant id"
// @Success      200  {object}  ItemListResponse
// @Failure      404  {object}  apierrors.Envelope
// @Router       /merchants/{id}/items [get]
func (h *MerchantsHandler) GetMerchantItems(c *gin.Context) {
	id, raw := parseID(c)

	items, err := h.store.ListMerchantItems(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrMerchantNotFound {
			abortWithError(c, apierrors.NewNotFound("Merchant", raw))
			return
		}
		h.logger.Error("Failed to list merchant items", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newItemList(items))
}

// FindAllMerchants handles GET /api/v1/merchants/find_all. No parameter or
// no match yields an empty sequence; this endpoint has no error path for
// missing parameters.
// @Summary      Find all merchants by name
// @Tags         merchants
// @Produce      json
// @Param        name  query     string  false  "Name fragment, case-insensitive"
// @Success      200   {object}  MerchantListResponse
// @Router       /merchants/find_all [get]
func (h *MerchantsHandler) FindAllMerchants(c *gin.Context) {
	merchants, err := search.ResolveMerchants(c.Request.Context(), h.store, c.Request.URL.Query())
	if err != nil {
		h.logger.Error("Failed to search merchants", zap.Error(err))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newMerchantList(merchants))
}
