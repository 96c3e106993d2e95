package tools

import (
	"net/http"

	"github.com/invopop/jsonschema"
	"github.com/umalmyha/crm/internal/dto"
	"github.com/umalmyha/crm/internal/validation"
)

// Definition describes single CRM operation exposed as agent tool
type Definition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Method      string             `json:"method"`
	Path        string             `json:"path"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
	Body        *jsonschema.Schema `json:"body,omitempty"`
}

// GenerateSchema derives JSON Schema from T
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	var v T
	return reflector.Reflect(v)
}

func warrantyQuerySchema() *jsonschema.Schema {
	s := GenerateSchema[dto.WarrantyQuery]()
	if prop, ok := s.Properties.Get("serial_number"); ok {
		prop.Pattern = validation.SerialNumberPattern
	}
	return s
}

// Catalog returns definitions of all CRM tools
func Catalog() []Definition {
	return []Definition{
		{
			Name:        "get_customer_info",
			Description: "Get customer profile by customer id.",
			Method:      http.MethodGet,
			Path:        "/customers/{customer_id}",
			Parameters:  GenerateSchema[dto.CustomerID](),
		},
		{
			Name:        "get_customer_purchases",
			Description: "List products purchased by the customer.",
			Method:      http.MethodGet,
			Path:        "/customers/{customer_id}/purchases",
			Parameters:  GenerateSchema[dto.CustomerID](),
		},
		{
			Name:        "query_warranty",
			Description: "Query warranty status of the product by serial number, optionally verifying owner email.",
			Method:      http.MethodPost,
			Path:        "/warranty/query",
			Body:        warrantyQuerySchema(),
		},
		{
			Name:        "create_service_record",
			Description: "Schedule repair or service for the product.",
			Method:      http.MethodPost,
			Path:        "/service/records",
			Body:        GenerateSchema[dto.NewServiceRecord](),
		},
		{
			Name:        "get_service_records",
			Description: "List service records matching all supplied filters.",
			Method:      http.MethodGet,
			Path:        "/service/records",
			Parameters:  GenerateSchema[dto.ServiceRecordQuery](),
		},
		{
			Name:        "update_service_record",
			Description: "Reschedule, cancel or complete service record. Only supplied fields are changed.",
			Method:      http.MethodPut,
			Path:        "/service/records/{record_id}",
			Parameters:  GenerateSchema[dto.RecordID](),
			Body:        GenerateSchema[dto.UpdateServiceRecord](),
		},
		{
			Name:        "delete_service_record",
			Description: "Delete service record.",
			Method:      http.MethodDelete,
			Path:        "/service/records/{record_id}",
			Parameters:  GenerateSchema[dto.RecordID](),
		},
	}
}
