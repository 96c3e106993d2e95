package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/dto"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/tools"
	"github.com/umalmyha/crm/internal/validation"
)

const pingResponse = "Ping healthcheck"

// CustomerHTTPHandler is http handler for customers endpoint
type CustomerHTTPHandler struct {
	crmSvc service.CRMService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(crmSvc service.CRMService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{crmSvc: crmSvc}
}

// Get gets customer
// @Summary     Get single customer by id
// @Description Returns customer profile with provided id
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       customer_id path     string true "Customer id"
// @Success     200         {object} model.Customer
// @Failure     400         {object} errors.Message
// @Failure     404         {object} errors.Message
// @Router      /customers/{customer_id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	id := dto.CustomerID{CustomerID: c.Param("customer_id")}
	if err := c.Validate(&id); err != nil {
		return err
	}

	customer, err := h.crmSvc.GetCustomer(c.Request().Context(), id.CustomerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

// Purchases gets customer purchases
// @Summary     Customer purchases
// @Description Returns products purchased by customer, 404 if there are none
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       customer_id path     string true "Customer id"
// @Success     200         {array}  model.Product
// @Failure     400         {object} errors.Message
// @Failure     404         {object} errors.Message
// @Router      /customers/{customer_id}/purchases [get]
func (h *CustomerHTTPHandler) Purchases(c echo.Context) error {
	id := dto.CustomerID{CustomerID: c.Param("customer_id")}
	if err := c.Validate(&id); err != nil {
		return err
	}

	products, err := h.crmSvc.GetCustomerPurchases(c.Request().Context(), id.CustomerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

// WarrantyHTTPHandler is http handler for warranty endpoint
type WarrantyHTTPHandler struct {
	crmSvc service.CRMService
}

// NewWarrantyHTTPHandler builds new WarrantyHTTPHandler
func NewWarrantyHTTPHandler(crmSvc service.CRMService) *WarrantyHTTPHandler {
	return &WarrantyHTTPHandler{crmSvc: crmSvc}
}

// Query queries product warranty
// @Summary     Query warranty
// @Description Returns warranty of the product with derived status, verifies owner email if provided
// @Tags        warranty
// @Security	ApiKeyAuth
// @Accept      json
// @Produce     json
// @Param       query body     dto.WarrantyQuery true "Serial number and optional owner email"
// @Success     200   {object} model.WarrantyResponse
// @Failure     400   {object} errors.Message
// @Failure     403   {object} errors.Message
// @Failure     404   {object} errors.Message
// @Failure     422   {object} validation.PayloadError
// @Router      /warranty/query [post]
func (h *WarrantyHTTPHandler) Query(c echo.Context) error {
	var q dto.WarrantyQuery
	if err := c.Bind(&q); err != nil {
		return validation.BindError(err)
	}

	if err := c.Validate(&q); err != nil {
		return err
	}

	warranty, err := h.crmSvc.QueryWarranty(c.Request().Context(), q.SerialNumber, q.CustomerEmail)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, warranty)
}

// ServiceRecordHTTPHandler is http handler for service records endpoint
type ServiceRecordHTTPHandler struct {
	crmSvc service.CRMService
}

// NewServiceRecordHTTPHandler builds new ServiceRecordHTTPHandler
func NewServiceRecordHTTPHandler(crmSvc service.CRMService) *ServiceRecordHTTPHandler {
	return &ServiceRecordHTTPHandler{crmSvc: crmSvc}
}

// Post creates service record
// @Summary     New service record
// @Description Schedules service for the product
// @Tags        service
// @Security	ApiKeyAuth
// @Accept      json
// @Produce     json
// @Param       newServiceRecord body     dto.NewServiceRecord true "Service record data"
// @Success     200              {object} model.ServiceRecord
// @Failure     400              {object} errors.Message
// @Failure     404              {object} errors.Message
// @Failure     422              {object} validation.PayloadError
// @Router      /service/records [post]
func (h *ServiceRecordHTTPHandler) Post(c echo.Context) error {
	var nr dto.NewServiceRecord
	if err := c.Bind(&nr); err != nil {
		return validation.BindError(err)
	}

	if err := c.Validate(&nr); err != nil {
		return err
	}

	record, err := h.crmSvc.CreateServiceRecord(c.Request().Context(), nr.Draft())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

// GetAll lists service records
// @Summary     List service records
// @Description Returns service records matching all supplied filters, possibly empty
// @Tags        service
// @Security	ApiKeyAuth
// @Produce     json
// @Param       serial_number query    string false "Product serial number"
// @Param       customer_id   query    string false "Customer id"
// @Param       status        query    string false "Status" Enums(scheduled, completed, cancelled)
// @Success     200           {array}  model.ServiceRecord
// @Failure     400           {object} errors.Message
// @Failure     422           {object} validation.PayloadError
// @Router      /service/records [get]
func (h *ServiceRecordHTTPHandler) GetAll(c echo.Context) error {
	var q dto.ServiceRecordQuery
	if err := c.Bind(&q); err != nil {
		return validation.BindError(err)
	}

	if err := c.Validate(&q); err != nil {
		return err
	}

	records, err := h.crmSvc.ListServiceRecords(c.Request().Context(), q.Filter())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, records)
}

// Put updates service record
// @Summary     Update service record
// @Description Applies only supplied fields, any status transition is allowed
// @Tags        service
// @Security	ApiKeyAuth
// @Accept      json
// @Produce     json
// @Param       record_id           path     string                  true "Service record id"
// @Param       updateServiceRecord body     dto.UpdateServiceRecord true "Fields to change"
// @Success     200                 {object} model.ServiceRecord
// @Failure     400                 {object} errors.Message
// @Failure     404                 {object} errors.Message
// @Failure     422                 {object} validation.PayloadError
// @Router      /service/records/{record_id} [put]
func (h *ServiceRecordHTTPHandler) Put(c echo.Context) error {
	var ur dto.UpdateServiceRecord
	if err := c.Bind(&ur); err != nil {
		return validation.BindError(err)
	}

	if err := c.Validate(&ur); err != nil {
		return err
	}

	record, err := h.crmSvc.UpdateServiceRecord(c.Request().Context(), ur.RecordID, ur.Patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteByID deletes service record
// @Summary     Delete service record
// @Description Deletes service record with provided id
// @Tags        service
// @Security	ApiKeyAuth
// @Param       record_id path string true "Service record id"
// @Success     204       "Successful status code"
// @Failure     400       {object} errors.Message
// @Failure     404       {object} errors.Message
// @Router      /service/records/{record_id} [delete]
func (h *ServiceRecordHTTPHandler) DeleteByID(c echo.Context) error {
	id := dto.RecordID{RecordID: c.Param("record_id")}
	if err := c.Validate(&id); err != nil {
		return err
	}

	if err := h.crmSvc.DeleteServiceRecord(c.Request().Context(), id.RecordID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SystemHTTPHandler serves health check and tool catalog
type SystemHTTPHandler struct {
	catalog []tools.Definition
}

// NewSystemHTTPHandler builds new SystemHTTPHandler
func NewSystemHTTPHandler(catalog []tools.Definition) *SystemHTTPHandler {
	return &SystemHTTPHandler{catalog: catalog}
}

// Ping is health check
// @Summary     Ping
// @Tags        system
// @Produce     json
// @Success     200 {string} string "Ping healthcheck"
// @Router      /v1/ping [get]
func (h *SystemHTTPHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, pingResponse)
}

// Tools lists CRM operations in agent tool format
// @Summary     Tool catalog
// @Description Returns CRM operations with JSON schemas of their inputs
// @Tags        system
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200 {array}  tools.Definition
// @Failure     400 {object} errors.Message
// @Router      /v1/tools [get]
func (h *SystemHTTPHandler) Tools(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog)
}
