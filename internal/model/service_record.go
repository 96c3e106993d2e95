package model

import "time"

// ServiceStatus is lifecycle status of service record
type ServiceStatus string

const (
	ServiceScheduled ServiceStatus = "scheduled"
	ServiceCompleted ServiceStatus = "completed"
	ServiceCancelled ServiceStatus = "cancelled"
)

// ServiceRecord is single repair/service event of the product
type ServiceRecord struct {
	RecordID          string        `json:"record_id"`
	SerialNumber      string        `json:"serial_number"`
	CustomerID        string        `json:"customer_id"`
	ServiceDate       time.Time     `json:"service_date"`
	ServiceType       string        `json:"service_type"`
	Description       string        `json:"description"`
	Technician        string        `json:"technician"`
	Status            ServiceStatus `json:"status"`
	EstimatedDuration int           `json:"estimated_duration"`
	ActualDuration    *int          `json:"actual_duration"`
	Notes             *string       `json:"notes"`
}

// ServiceRecordDraft holds data for new service record
type ServiceRecordDraft struct {
	SerialNumber      string
	ServiceType       string
	Description       string
	Technician        string
	ServiceDate       time.Time
	EstimatedDuration int
}

// ServiceRecordPatch holds fields for partial update, nil fields are left untouched
type ServiceRecordPatch struct {
	ServiceDate    *time.Time
	Status         *ServiceStatus
	ActualDuration *int
	Notes          *string
}

// ServiceRecordFilter narrows listing, nil fields match everything
type ServiceRecordFilter struct {
	SerialNumber *string
	CustomerID   *string
	Status       *ServiceStatus
}

// Match reports whether record satisfies every supplied filter
func (f ServiceRecordFilter) Match(r *ServiceRecord) bool {
	if f.SerialNumber != nil && r.SerialNumber != *f.SerialNumber {
		return false
	}
	if f.CustomerID != nil && r.CustomerID != *f.CustomerID {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	return true
}
