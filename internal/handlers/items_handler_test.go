package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"merchant-api/internal/models"
	"merchant-api/internal/repository"
	"merchant-api/pkg/apierrors"
	"merchant-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStore is a mock implementation of repository.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListMerchants(ctx context.Context) ([]models.Merchant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Merchant), args.Error(1)
}

func (m *MockStore) FindMerchant(ctx context.Context, id int64) (*models.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Merchant), args.Error(1)
}

func (m *MockStore) SearchMerchants(ctx context.Context, name string) ([]models.Merchant, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Merchant), args.Error(1)
}

func (m *MockStore) ListMerchantItems(ctx context.Context, merchantID int64) ([]models.Item, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockStore) ListItems(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockStore) FindItem(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockStore) CreateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStore) UpdateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStore) DeleteItem(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) FirstItemByName(ctx context.Context, name string) (*models.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockStore) FirstItemInPriceRange(ctx context.Context, min, max *decimal.Decimal) (*models.Item, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func setupTestRouter(store repository.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))

	itemsHandler := NewItemsHandler(logger, store)
	merchantsHandler := NewMerchantsHandler(logger, store)

	v1 := router.Group("/api/v1")
	{
		items := v1.Group("/items")
		{
			items.GET("", itemsHandler.ListItems)
			items.GET("/find", itemsHandler.FindItem)
			items.GET("/:id", itemsHandler.GetItem)
			items.POST("", itemsHandler.CreateItem)
			items.PUT("/:id", itemsHandler.UpdateItem)
			items.DELETE("/:id", itemsHandler.DeleteItem)
			items.GET("/:id/merchant", itemsHandler.GetItemMerchant)
		}

		merchants := v1.Group("/merchants")
		{
			merchants.GET("", merchantsHandler.ListMerchants)
			merchants.GET("/find_all", merchantsHandler.FindAllMerchants)
			merchants.GET("/:id", merchantsHandler.GetMerchant)
			merchants.GET("/:id/items", merchantsHandler.GetMerchantItems)
		}
	}

	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) apierrors.Envelope {
	t.Helper()
	var envelope apierrors.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Errors)
	return envelope
}

func testItem() *models.Item {
	return &models.Item{
		ID:          1,
		Name:        "Hersheys Chocolate",
		Description: "Candy",
		UnitPrice:   decimal.RequireFromString("3.99"),
		MerchantID:  1,
	}
}

func TestGetItem_Success(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindItem", mock.Anything, int64(1)).Return(testItem(), nil)

	w := performRequest(router, "GET", "/api/v1/items/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "1", response.Data.ID)
	assert.Equal(t, "item", response.Data.Type)
	assert.Equal(t, "Hersheys Chocolate", response.Data.Attributes.Name)
	assert.Equal(t, "Candy", response.Data.Attributes.Description)
	assert.Equal(t, 3.99, response.Data.Attributes.UnitPrice)
	assert.Equal(t, int64(1), response.Data.Attributes.MerchantID)

	store.AssertExpectations(t)
}

func TestGetItem_NotFound(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindItem", mock.Anything, int64(1)).Return(nil, repository.ErrItemNotFound)

	w := performRequest(router, "GET", "/api/v1/items/1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "404", envelope.Errors[0].Status)
	assert.Equal(t, "Couldn't find Item with 'id'=1", envelope.Errors[0].Title)
}

func TestListItems_Empty(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("ListItems", mock.Anything).Return([]models.Item{}, nil)

	w := performRequest(router, "GET", "/api/v1/items", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ItemListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response.Data)
	assert.Empty(t, response.Data)
}

func TestCreateItem_Success(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindMerchant", mock.Anything, int64(1)).Return(&models.Merchant{ID: 1, Name: "Merchant"}, nil)
	store.On("CreateItem", mock.Anything, mock.AnythingOfType("*models.Item")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Item).ID = 7
		}).
		Return(nil)

	body := map[string]interface{}{
		"name":        "Ben & Jerrys",
		"description": "Ice Cream",
		"unit_price":  4.99,
		"merchant_id": 1,
	}
	w := performRequest(router, "POST", "/api/v1/items", body)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "7", response.Data.ID)
	assert.Equal(t, "Ben & Jerrys", response.Data.Attributes.Name)
	assert.Equal(t, 4.99, response.Data.Attributes.UnitPrice)

	store.AssertExpectations(t)
}

func TestCreateItem_MissingMerchantID(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	body := map[string]interface{}{
		"name":        "Ben & Jerrys",
		"description": "Ice Cream",
		"unit_price":  4.99,
	}
	w := performRequest(router, "POST", "/api/v1/items", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "404", envelope.Errors[0].Status)
	assert.Equal(t, "Couldn't find Merchant without an ID", envelope.Errors[0].Title)

	store.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestCreateItem_UnknownMerchant(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindMerchant", mock.Anything, int64(999999)).Return(nil, repository.ErrMerchantNotFound)

	body := map[string]interface{}{
		"name":        "Ben & Jerrys",
		"description": "Ice Cream",
		"unit_price":  4.99,
		"merchant_id": 999999,
	}
	w := performRequest(router, "POST", "/api/v1/items", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "Couldn't find Merchant with 'id'=999999", envelope.Errors[0].Title)
}

func TestCreateItem_MissingDescription(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindMerchant", mock.Anything, int64(1)).Return(&models.Merchant{ID: 1, Name: "Merchant"}, nil)

	body := map[string]interface{}{
		"name":        "Ben & Jerrys",
		"unit_price":  4.99,
		"merchant_id": 1,
	}
	w := performRequest(router, "POST", "/api/v1/items", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "422", envelope.Errors[0].Status)
	assert.Equal(t, "Validation failed: Description can't be blank", envelope.Errors[0].Title)
}

func TestCreateItem_AggregatesFieldErrors(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindMerchant", mock.Anything, int64(1)).Return(&models.Merchant{ID: 1, Name: "Merchant"}, nil)

	body := map[string]interface{}{
		"merchant_id": 1,
	}
	w := performRequest(router, "POST", "/api/v1/items", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t,
		"Validation failed: Name can't be blank, Description can't be blank, Unit price can't be blank",
		envelope.Errors[0].Title)
}

func TestCreateItem_MalformedUnitPrice(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindMerchant", mock.Anything, int64(1)).Return(&models.Merchant{ID: 1, Name: "Merchant"}, nil)

	body := map[string]interface{}{
		"name":        "Ben & Jerrys",
		"description": "Ice Cream",
		"unit_price":  "four dollars",
		"merchant_id": 1,
	}
	w := performRequest(router, "POST", "/api/v1/items", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "Validation failed: Unit price is not a number", envelope.Errors[0].Title)
}

func TestUpdateItem_PartialUpdate(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	existing := &models.Item{
		ID:          1,
		Name:        "Ben & Jerrys",
		Description: "Ice Cream",
		UnitPrice:   decimal.RequireFromString("4.99"),
		MerchantID:  1,
	}
	store.On("FindItem", mock.Anything, int64(1)).Return(existing, nil)
	store.On("UpdateItem", mock.Anything, mock.AnythingOfType("*models.Item")).Return(nil)

	body := map[string]interface{}{
		"name":        "Crowbar",
		"description": "Packaging Tool",
	}
	w := performRequest(router, "PUT", "/api/v1/items/1", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Crowbar", response.Data.Attributes.Name)
	assert.Equal(t, "Packaging Tool", response.Data.Attributes.Description)
	// Omitted fields keep their previous values.
	assert.Equal(t, 4.99, response.Data.Attributes.UnitPrice)
	assert.Equal(t, int64(1), response.Data.Attributes.MerchantID)

	store.AssertExpectations(t)
}

func TestUpdateItem_UnknownMerchant(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindItem", mock.Anything, int64(1)).Return(testItem(), nil)
	store.On("FindMerchant", mock.Anything, int64(999999)).Return(nil, repository.ErrMerchantNotFound)

	body := map[string]interface{}{
		"name":        "Crowbar",
		"merchant_id": 999999,
	}
	w := performRequest(router, "PUT", "/api/v1/items/1", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "Couldn't find Merchant with 'id'=999999", envelope.Errors[0].Title)

	store.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
}

func TestUpdateItem_NotFound(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindItem", mock.Anything, int64(999999)).Return(nil, repository.ErrItemNotFound)

	w := performRequest(router, "PUT", "/api/v1/items/999999", map[string]interface{}{"name": "Crowbar"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "Couldn't find Item with 'id'=999999", envelope.Errors[0].Title)
}

func TestDeleteItem_Success(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("DeleteItem", mock.Anything, int64(2)).Return(nil)

	w := performRequest(router, "DELETE", "/api/v1/items/2", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
	store.AssertExpectations(t)
}

func TestDeleteItem_NotFound(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("DeleteItem", mock.Anything, int64(999999)).Return(repository.ErrItemNotFound)

	w := performRequest(router, "DELETE", "/api/v1/items/999999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "Couldn't find Item with 'id'=999999", envelope.Errors[0].Title)
}

func TestGetItemMerchant_Success(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindItem", mock.Anything, int64(1)).Return(testItem(), nil)
	store.On("FindMerchant", mock.Anything, int64(1)).Return(&models.Merchant{ID: 1, Name: "Merchant"}, nil)

	w := performRequest(router, "GET", "/api/v1/items/1/merchant", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response MerchantResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "merchant", response.Data.Type)
	assert.Equal(t, "Merchant", response.Data.Attributes.Name)
}

func TestGetItemMerchant_ItemNotFound(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FindItem", mock.Anything, int64(1)).Return(nil, repository.ErrItemNotFound)

	w := performRequest(router, "GET", "/api/v1/items/1/merchant", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeErrors(t, w)
	assert.Equal(t, "Couldn't find Item with 'id'=1", envelope.Errors[0].Title)
}

func TestFindItem_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		query string
		title string
	}{
		{"no parameters", "", "Must have either name or price range"},
		{"name with price", "?name=ring&min_price=50", "Cannot have name and price range at the same time"},
		{"negative min", "?min_price=-50", "Minimum price cannot be negative"},
		{"negative max", "?max_price=-50", "Maximum price cannot be negative"},
		{"inverted range", "?max_price=50&min_price=51", "Price range cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			router := setupTestRouter(store)

			w := performRequest(router, "GET", "/api/v1/items/find"+tt.query, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			envelope := decodeErrors(t, w)
			assert.Equal(t, "400", envelope.Errors[0].Status)
			assert.Equal(t, tt.title, envelope.Errors[0].Title)

			store.AssertNotCalled(t, "FirstItemByName", mock.Anything, mock.Anything)
			store.AssertNotCalled(t, "FirstItemInPriceRange", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestFindItem_ByName(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FirstItemByName", mock.Anything, "choco").Return(testItem(), nil)

	w := performRequest(router, "GET", "/api/v1/items/find?name=choco", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Hersheys Chocolate", response.Data.Attributes.Name)
	store.AssertExpectations(t)
}

func TestFindItem_SoftMiss(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	store.On("FirstItemByName", mock.Anything, "").Return(nil, repository.ErrItemNotFound)

	w := performRequest(router, "GET", "/api/v1/items/find?name=", nil)

	// A valid query with no match is a success carrying the soft
	// not-found payload, not a 404.
	assert.Equal(t, http.StatusOK, w.Code)

	var response SoftMissResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data.Errors, 1)
	assert.Equal(t, "200", response.Data.Errors[0].Status)
	assert.Equal(t, "Item not found", response.Data.Errors[0].Title)
}

func TestFindItem_ByPriceRange(t *testing.T) {
	store := new(MockStore)
	router := setupTestRouter(store)

	item := &models.Item{
		ID:          5,
		Name:        "Abba Zabba",
		Description: "Weird",
		UnitPrice:   decimal.RequireFromString("5.99"),
		MerchantID:  3,
	}
	store.On("FirstItemInPriceRange", mock.Anything, mock.Anything, mock.Anything).Return(item, nil)

	w := performRequest(router, "GET", "/api/v1/items/find?min_price=3.99&max_price=6.20", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Abba Zabba", response.Data.Attributes.Name)
	assert.Equal(t, 5.99, response.Data.Attributes.UnitPrice)
}
