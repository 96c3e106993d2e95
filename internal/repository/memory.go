package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/umalmyha/crm/internal/model"
)

const serviceRecordIDPrefix = "SRV"

// CustomerRepository provides access to customers
type CustomerRepository interface {
	FindCustomerByID(context.Context, string) (*model.Customer, error)
}

// ProductRepository provides access to purchased products
type ProductRepository interface {
	FindProductBySerialNumber(context.Context, string) (*model.Product, error)
	FindProductsByCustomerID(context.Context, string) ([]model.Product, error)
}

// ServiceRecordRepository provides access to service records
type ServiceRecordRepository interface {
	FindServiceRecordByID(context.Context, string) (*model.ServiceRecord, error)
	FindServiceRecords(context.Context, model.ServiceRecordFilter) ([]model.ServiceRecord, error)
	CreateServiceRecord(context.Context, model.ServiceRecordDraft) (*model.ServiceRecord, error)
	UpdateServiceRecord(context.Context, string, model.ServiceRecordPatch) (*model.ServiceRecord, error)
	DeleteServiceRecord(context.Context, string) (bool, error)
}

// CRMRepository groups all CRM collections
type CRMRepository interface {
	CustomerRepository
	ProductRepository
	ServiceRecordRepository
}

// MemoryStore keeps customers, products and service records in memory.
// Single lock guards all collections, stored values never leave the store by reference.
type MemoryStore struct {
	mu sync.RWMutex

	customers map[string]*model.Customer

	products      map[string]*model.Product
	productsOrder []string

	records      map[string]*model.ServiceRecord
	recordsOrder []string
	recordSeq    int
}

// NewMemoryStore builds store populated with seed, seed must satisfy referential integrity
func NewMemoryStore(seed Seed) (*MemoryStore, error) {
	s := &MemoryStore{
		customers:     make(map[string]*model.Customer, len(seed.Customers)),
		products:      make(map[string]*model.Product, len(seed.Products)),
		productsOrder: make([]string, 0, len(seed.Products)),
		records:       make(map[string]*model.ServiceRecord, len(seed.ServiceRecords)),
		recordsOrder:  make([]string, 0, len(seed.ServiceRecords)),
	}

	for i := range seed.Customers {
		c := cloneCustomer(&seed.Customers[i])
		if _, ok := s.customers[c.CustomerID]; ok {
			return nil, fmt.Errorf("duplicate customer %s in seed", c.CustomerID)
		}
		s.customers[c.CustomerID] = c
	}

	for i := range seed.Products {
		p := seed.Products[i]
		if _, ok := s.products[p.SerialNumber]; ok {
			return nil, fmt.Errorf("duplicate product serial number %s in seed", p.SerialNumber)
		}
		if _, ok := s.customers[p.CustomerID]; !ok {
			return nil, fmt.Errorf("product %s references unknown customer %s", p.SerialNumber, p.CustomerID)
		}
		if p.WarrantyEndDate.Before(p.PurchaseDate) {
			return nil, fmt.Errorf("product %s warranty ends before purchase date", p.SerialNumber)
		}
		s.products[p.SerialNumber] = &p
		s.productsOrder = append(s.productsOrder, p.SerialNumber)
	}

	for i := range seed.ServiceRecords {
		r := cloneServiceRecord(&seed.ServiceRecords[i])
		if _, ok := s.records[r.RecordID]; ok {
			return nil, fmt.Errorf("duplicate service record %s in seed", r.RecordID)
		}
		if _, ok := s.products[r.SerialNumber]; !ok {
			return nil, fmt.Errorf("service record %s references unknown product %s", r.RecordID, r.SerialNumber)
		}
		if seq, ok := recordSequence(r.RecordID); ok && seq > s.recordSeq {
			s.recordSeq = seq
		}
		s.records[r.RecordID] = r
		s.recordsOrder = append(s.recordsOrder, r.RecordID)
	}

	return s, nil
}

func (s *MemoryStore) FindCustomerByID(_ context.Context, id string) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

func (s *MemoryStore) FindProductBySerialNumber(_ context.Context, sn string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[sn]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) FindProductsByCustomerID(_ context.Context, customerID string) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0)
	for _, sn := range s.productsOrder {
		if p := s.products[sn]; p.CustomerID == customerID {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (s *MemoryStore) FindServiceRecordByID(_ context.Context, id string) (*model.ServiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return cloneServiceRecord(r), nil
}

func (s *MemoryStore) FindServiceRecords(_ context.Context, filter model.ServiceRecordFilter) ([]model.ServiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.ServiceRecord, 0)
	for _, id := range s.recordsOrder {
		if r := s.records[id]; filter.Match(r) {
			records = append(records, *cloneServiceRecord(r))
		}
	}
	return records, nil
}

// CreateServiceRecord inserts scheduled record for existing product, returns nil if product is unknown
func (s *MemoryStore) CreateServiceRecord(_ context.Context, d model.ServiceRecordDraft) (*model.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[d.SerialNumber]
	if !ok {
		return nil, nil
	}

	s.recordSeq++
	r := &model.ServiceRecord{
		RecordID:          formatRecordID(s.recordSeq),
		SerialNumber:      p.SerialNumber,
		CustomerID:        p.CustomerID,
		ServiceDate:       d.ServiceDate,
		ServiceType:       d.ServiceType,
		Description:       d.Description,
		Technician:        d.Technician,
		Status:            model.ServiceScheduled,
		EstimatedDuration: d.EstimatedDuration,
	}

	s.records[r.RecordID] = r
	s.recordsOrder = append(s.recordsOrder, r.RecordID)

	return cloneServiceRecord(r), nil
}

// UpdateServiceRecord applies supplied patch fields, returns nil if record is unknown
func (s *MemoryStore) UpdateServiceRecord(_ context.Context, id string, patch model.ServiceRecordPatch) (*model.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return nil, nil
	}

	if patch.ServiceDate != nil {
		r.ServiceDate = *patch.ServiceDate
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.ActualDuration != nil {
		d := *patch.ActualDuration
		r.ActualDuration = &d
	}
	if patch.Notes != nil {
		n := *patch.Notes
		r.Notes = &n
	}

	return cloneServiceRecord(r), nil
}

func (s *MemoryStore) DeleteServiceRecord(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)

	for i, recID := range s.recordsOrder {
		if recID == id {
			s.recordsOrder = append(s.recordsOrder[:i], s.recordsOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

func formatRecordID(seq int) string {
	return fmt.Sprintf("%s%03d", serviceRecordIDPrefix, seq)
}

func recordSequence(id string) (int, bool) {
	if !strings.HasPrefix(id, serviceRecordIDPrefix) {
		return 0, false
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(id, serviceRecordIDPrefix))
	if err != nil {
		return 0, false
	}
	return seq, true
}

func cloneCustomer(c *model.Customer) *model.Customer {
	cp := *c
	if c.DateOfBirth != nil {
		dob := *c.DateOfBirth
		cp.DateOfBirth = &dob
	}
	if c.Notes != nil {
		n := *c.Notes
		cp.Notes = &n
	}
	if c.CommunicationPreferences != nil {
		cp.CommunicationPreferences = append(make([]string, 0, len(c.CommunicationPreferences)), c.CommunicationPreferences...)
	}
	return &cp
}

func cloneServiceRecord(r *model.ServiceRecord) *model.ServiceRecord {
	cp := *r
	if r.ActualDuration != nil {
		d := *r.ActualDuration
		cp.ActualDuration = &d
	}
	if r.Notes != nil {
		n := *r.Notes
		cp.Notes = &n
	}
	return &cp
}
