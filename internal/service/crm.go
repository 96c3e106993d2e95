package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/auth"
	crmErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/journal"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

// ExpiringSoonDays is how many days before warranty end it is reported as expiring soon
const ExpiringSoonDays = 30

const (
	customerNotFoundMsg      = "customer not found"
	purchasesNotFoundMsg     = "no purchases found for this customer"
	productNotFoundMsg       = "product not found"
	recordNotFoundMsg        = "service record not found"
	emailVerificationFailMsg = "customer email verification failed"
)

// CRMService is CRM domain service
type CRMService interface {
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
	GetCustomerPurchases(ctx context.Context, customerID string) ([]model.Product, error)
	QueryWarranty(ctx context.Context, serialNumber string, customerEmail *string) (*model.WarrantyResponse, error)
	CreateServiceRecord(ctx context.Context, draft model.ServiceRecordDraft) (*model.ServiceRecord, error)
	UpdateServiceRecord(ctx context.Context, recordID string, patch model.ServiceRecordPatch) (*model.ServiceRecord, error)
	ListServiceRecords(ctx context.Context, filter model.ServiceRecordFilter) ([]model.ServiceRecord, error)
	DeleteServiceRecord(ctx context.Context, recordID string) error
}

// Option configures crmService
type Option func(*crmService)

// WithJournal appends every service record mutation to j
func WithJournal(j journal.Journal) Option {
	return func(s *crmService) {
		s.journal = j
	}
}

// WithClock overrides source of current time
func WithClock(now func() time.Time) Option {
	return func(s *crmService) {
		s.now = now
	}
}

type crmService struct {
	repo    repository.CRMRepository
	journal journal.Journal
	now     func() time.Time
}

// NewCRMService builds CRMService
func NewCRMService(repo repository.CRMRepository, opts ...Option) CRMService {
	s := &crmService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *crmService) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	c, err := s.repo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, crmErrors.NewEntryNotFoundErr(customerNotFoundMsg)
	}
	return c, nil
}

// GetCustomerPurchases treats customer without purchases the same way as unknown customer
func (s *crmService) GetCustomerPurchases(ctx context.Context, customerID string) ([]model.Product, error) {
	products, err := s.repo.FindProductsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, crmErrors.NewEntryNotFoundErr(purchasesNotFoundMsg)
	}
	return products, nil
}

func (s *crmService) QueryWarranty(ctx context.Context, serialNumber string, customerEmail *string) (*model.WarrantyResponse, error) {
	p, err := s.repo.FindProductBySerialNumber(ctx, serialNumber)
	if err != nil {
		return nil, err
	}

	if p == nil {
		return nil, crmErrors.NewEntryNotFoundErr(productNotFoundMsg)
	}

	owner, err := s.repo.FindCustomerByID(ctx, p.CustomerID)
	if err != nil {
		return nil, err
	}

	if customerEmail != nil && (owner == nil || owner.Email != *customerEmail) {
		return nil, crmErrors.NewForbiddenErr(emailVerificationFailMsg)
	}

	if owner == nil {
		return nil, crmErrors.NewEntryNotFoundErr(customerNotFoundMsg)
	}

	return &model.WarrantyResponse{
		ProductName:     p.ProductName,
		SerialNumber:    p.SerialNumber,
		CustomerName:    owner.Name,
		PurchaseDate:    p.PurchaseDate,
		WarrantyEndDate: p.WarrantyEndDate,
		WarrantyType:    p.WarrantyType,
		StatusText:      WarrantyStatus(p.WarrantyEndDate, model.DateOf(s.now())),
	}, nil
}

// WarrantyStatus buckets warranty end date relative to today
func WarrantyStatus(warrantyEnd, today model.Date) model.WarrantyStatus {
	if warrantyEnd.Before(today) {
		return model.WarrantyExpired
	}

	if today.DaysUntil(warrantyEnd) <= ExpiringSoonDays {
		return model.WarrantyExpiringSoon
	}
	return model.WarrantyValid
}

func (s *crmService) CreateServiceRecord(ctx context.Context, draft model.ServiceRecordDraft) (*model.ServiceRecord, error) {
	r, err := s.repo.CreateServiceRecord(ctx, draft)
	if err != nil {
		return nil, err
	}

	if r == nil {
		return nil, crmErrors.NewEntryNotFoundErr(productNotFoundMsg)
	}

	s.record(ctx, journal.ActionCreated, r.RecordID, r)
	return r, nil
}

// UpdateServiceRecord permits any status transition
func (s *crmService) UpdateServiceRecord(ctx context.Context, recordID string, patch model.ServiceRecordPatch) (*model.ServiceRecord, error) {
	r, err := s.repo.UpdateServiceRecord(ctx, recordID, patch)
	if err != nil {
		return nil, err
	}

	if r == nil {
		return nil, crmErrors.NewEntryNotFoundErr(recordNotFoundMsg)
	}

	s.record(ctx, journal.ActionUpdated, r.RecordID, r)
	return r, nil
}

func (s *crmService) ListServiceRecords(ctx context.Context, filter model.ServiceRecordFilter) ([]model.ServiceRecord, error) {
	return s.repo.FindServiceRecords(ctx, filter)
}

func (s *crmService) DeleteServiceRecord(ctx context.Context, recordID string) error {
	deleted, err := s.repo.DeleteServiceRecord(ctx, recordID)
	if err != nil {
		return err
	}

	if !deleted {
		return crmErrors.NewEntryNotFoundErr(recordNotFoundMsg)
	}

	s.record(ctx, journal.ActionDeleted, recordID, nil)
	return nil
}

// store mutation is already applied, so journal failure is only logged
func (s *crmService) record(ctx context.Context, action journal.Action, recordID string, r *model.ServiceRecord) {
	if s.journal == nil {
		return
	}

	var actor string
	if identity := auth.IdentityFromContext(ctx); identity != nil {
		actor = identity.Subject
	}

	err := s.journal.Append(ctx, journal.Entry{
		RecordID: recordID,
		Action:   action,
		Record:   r,
		Actor:    actor,
		At:       s.now(),
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"record_id": recordID,
			"action":    action,
		}).Errorf("failed to append service record mutation to journal - %v", err)
	}
}
