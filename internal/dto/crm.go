package dto

import (
	"time"

	"github.com/umalmyha/crm/internal/model"
)

// CustomerID identifies customer
type CustomerID struct {
	CustomerID string `json:"customer_id" param:"customer_id" validate:"required" jsonschema_description:"Customer identifier, e.g. CUST001."`
}

// RecordID identifies service record
type RecordID struct {
	RecordID string `json:"record_id" param:"record_id" validate:"required" jsonschema_description:"Service record identifier, e.g. SRV001."`
}

// WarrantyQuery is warranty lookup request
type WarrantyQuery struct {
	SerialNumber  string  `json:"serial_number" validate:"required,serialnumber" jsonschema_description:"Product serial number, 8-20 uppercase letters or digits."`
	CustomerEmail *string `json:"customer_email,omitempty" validate:"omitempty,email" jsonschema_description:"Owner email, when supplied it must match the product owner."`
}

// NewServiceRecord is service record creation request
type NewServiceRecord struct {
	SerialNumber      string    `json:"serial_number" validate:"required" jsonschema_description:"Serial number of the product to service."`
	ServiceType       string    `json:"service_type" validate:"required" jsonschema_description:"Kind of service, e.g. screen repair."`
	Description       string    `json:"description" validate:"required" jsonschema_description:"Problem description."`
	Technician        string    `json:"technician" validate:"required" jsonschema_description:"Assigned technician."`
	ServiceDate       time.Time `json:"service_date" validate:"required" jsonschema_description:"Scheduled service date and time (RFC 3339)."`
	EstimatedDuration int       `json:"estimated_duration" validate:"required,gt=0" jsonschema_description:"Estimated duration in minutes."`
}

// Draft converts request to service record draft
func (r *NewServiceRecord) Draft() model.ServiceRecordDraft {
	return model.ServiceRecordDraft{
		SerialNumber:      r.SerialNumber,
		ServiceType:       r.ServiceType,
		Description:       r.Description,
		Technician:        r.Technician,
		ServiceDate:       r.ServiceDate,
		EstimatedDuration: r.EstimatedDuration,
	}
}

// ServiceRecordQuery holds optional service record filters, empty value matches everything
type ServiceRecordQuery struct {
	SerialNumber string `json:"serial_number,omitempty" query:"serial_number" jsonschema_description:"Only records of this product."`
	CustomerID   string `json:"customer_id,omitempty" query:"customer_id" jsonschema_description:"Only records of this customer."`
	Status       string `json:"status,omitempty" query:"status" validate:"omitempty,oneof=scheduled completed cancelled" jsonschema:"enum=scheduled,enum=completed,enum=cancelled" jsonschema_description:"Only records in this status."`
}

// Filter converts query to service record filter
func (q *ServiceRecordQuery) Filter() model.ServiceRecordFilter {
	var f model.ServiceRecordFilter
	if q.SerialNumber != "" {
		f.SerialNumber = &q.SerialNumber
	}
	if q.CustomerID != "" {
		f.CustomerID = &q.CustomerID
	}
	if q.Status != "" {
		status := model.ServiceStatus(q.Status)
		f.Status = &status
	}
	return f
}

// UpdateServiceRecord is partial service record update, absent fields are left untouched
type UpdateServiceRecord struct {
	RecordID       string               `json:"-" param:"record_id" validate:"required"`
	ServiceDate    *time.Time           `json:"service_date,omitempty" jsonschema_description:"New service date and time (RFC 3339)."`
	Status         *model.ServiceStatus `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled" jsonschema:"enum=scheduled,enum=completed,enum=cancelled" jsonschema_description:"New status."`
	ActualDuration *int                 `json:"actual_duration,omitempty" validate:"omitempty,gte=0" jsonschema_description:"Actual duration in minutes."`
	Notes          *string              `json:"notes,omitempty" jsonschema_description:"Technician notes."`
}

// Patch converts request to service record patch
func (r *UpdateServiceRecord) Patch() model.ServiceRecordPatch {
	return model.ServiceRecordPatch{
		ServiceDate:    r.ServiceDate,
		Status:         r.Status,
		ActualDuration: r.ActualDuration,
		Notes:          r.Notes,
	}
}
