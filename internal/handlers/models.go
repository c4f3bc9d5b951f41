package handlers

import (
	"strconv"

	"merchant-api/internal/models"
	"merchant-api/pkg/apierrors"
)

// ItemAttributes is the attributes block of an item payload.
type ItemAttributes struct {
	// Item name
	Name string `json:"name" example:"Hersheys Chocolate"`

	// Item description
	Description string `json:"description" example:"Candy"`

	// Unit price as a decimal number
	UnitPrice float64 `json:"unit_price" example:"3.99"`

	// Owning merchant id
	MerchantID int64 `json:"merchant_id" example:"1"`
}

// ItemData is a single item record in the data envelope.
type ItemData struct {
	ID         string         `json:"id" example:"1"`
	Type       string         `json:"type" example:"item"`
	Attributes ItemAttributes `json:"attributes"`
}

// ItemResponse wraps one item record.
type ItemResponse struct {
	Data ItemData `json:"data"`
}

// ItemListResponse wraps a sequence of item records.
type ItemListResponse struct {
	Data []ItemData `json:"data"`
}

// MerchantAttributes is the attributes block of a merchant payload.
type MerchantAttributes struct {
	// Merchant name
	Name string `json:"name" example:"Amazon"`
}

// MerchantData is a single merchant record in the data envelope.
type MerchantData struct {
	ID         string             `json:"id" example:"1"`
	Type       string             `json:"type" example:"merchant"`
	Attributes MerchantAttributes `json:"attributes"`
}

// MerchantResponse wraps one merchant record.
type MerchantResponse struct {
	Data MerchantData `json:"data"`
}

// MerchantListResponse wraps a sequence of merchant records.
type MerchantListResponse struct {
	Data []MerchantData `json:"data"`
}

// SoftMissResponse is the single-item search "no match" payload: the error
// envelope nested under a success envelope with status "200". This shape is
// a documented compatibility special case for GET /items/find only.
type SoftMissResponse struct {
	Data apierrors.Envelope `json:"data"`
}

func newSoftMiss(title string) SoftMissResponse {
	return SoftMissResponse{
		Data: apierrors.Envelope{
			Errors: []apierrors.RequestError{{Status: "200", Title: title}},
		},
	}
}

func newItemData(item models.Item) ItemData {
	return ItemData{
		ID:   strconv.FormatInt(item.ID, 10),
		Type: "item",
		Attributes: ItemAttributes{
			Name:        item.Name,
			Description: item.Description,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			MerchantID:  item.MerchantID,
		},
	}
}

func newItemList(items []models.Item) ItemListResponse {
	data := make([]ItemData, len(items))
	for i, item := range items {
		data[i] = newItemData(item)
	}
	return ItemListResponse{Data: data}
}

func newMerchantData(merchant models.Merchant) MerchantData {
	return MerchantData{
		ID:   strconv.FormatInt(merchant.ID, 10),
		Type: "merchant",
		Attributes: MerchantAttributes{
			Name: merchant.Name,
		},
	}
}

func newMerchantList(merchants []models.Merchant) MerchantListResponse {
	data := make([]MerchantData, len(merchants))
	for i, merchant := range merchants {
		data[i] = newMerchantData(merchant)
	}
	return MerchantListResponse{Data: data}
}
