package model

// WarrantyType specifies coverage level of the product warranty
type WarrantyType string

const (
	WarrantyStandard WarrantyType = "standard"
	WarrantyExtended WarrantyType = "extended"
	WarrantyPremium  WarrantyType = "premium"
)

// WarrantyStatus is derived bucket of the warranty end date relative to today
type WarrantyStatus string

const (
	WarrantyValid        WarrantyStatus = "valid"
	WarrantyExpiringSoon WarrantyStatus = "expiring soon"
	WarrantyExpired      WarrantyStatus = "expired"
)

// Product is single purchased unit identified by serial number
type Product struct {
	ProductID       string       `json:"product_id"`
	SerialNumber    string       `json:"serial_number"`
	ProductName     string       `json:"product_name"`
	CustomerID      string       `json:"customer_id"`
	PurchaseDate    Date         `json:"purchase_date"`
	WarrantyEndDate Date         `json:"warranty_end_date"`
	WarrantyType    WarrantyType `json:"warranty_type"`
	Status          string       `json:"status"`
}

// WarrantyResponse is read-only projection of product warranty
type WarrantyResponse struct {
	ProductName     string         `json:"product_name"`
	SerialNumber    string         `json:"serial_number"`
	CustomerName    string         `json:"customer_name"`
	PurchaseDate    Date           `json:"purchase_date"`
	WarrantyEndDate Date           `json:"warranty_end_date"`
	WarrantyType    WarrantyType   `json:"warranty_type"`
	StatusText      WarrantyStatus `json:"status_text"`
}
