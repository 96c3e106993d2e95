package tools

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/crm/internal/validation"
)

type catalogTestSuite struct {
	suite.Suite
	catalog map[string]Definition
}

func (s *catalogTestSuite) SetupSuite() {
	s.catalog = make(map[string]Definition)
	for _, d := range Catalog() {
		_, dup := s.catalog[d.Name]
		s.Require().False(dup, "tool %s is defined twice", d.Name)
		s.catalog[d.Name] = d
	}
}

func (s *catalogTestSuite) TestEveryOperationIsListed() {
	expected := map[string]string{
		"get_customer_info":      http.MethodGet,
		"get_customer_purchases": http.MethodGet,
		"query_warranty":         http.MethodPost,
		"create_service_record":  http.MethodPost,
		"get_service_records":    http.MethodGet,
		"update_service_record":  http.MethodPut,
		"delete_service_record":  http.MethodDelete,
	}

	s.Require().Len(s.catalog, len(expected))
	for name, method := range expected {
		d, ok := s.catalog[name]
		s.Require().True(ok, "tool %s must be listed", name)
		s.Assert().Equal(method, d.Method, name)
		s.Assert().NotEmpty(d.Description, name)
		s.Assert().True(d.Parameters != nil || d.Body != nil, "tool %s must describe its input", name)
	}
}

func (s *catalogTestSuite) TestWarrantySchema() {
	body := s.catalog["query_warranty"].Body
	s.Require().NotNil(body)
	s.Assert().Equal([]string{"serial_number"}, body.Required, "email must be optional")

	sn, ok := body.Properties.Get("serial_number")
	s.Require().True(ok)
	s.Assert().Equal(validation.SerialNumberPattern, sn.Pattern)
	s.Assert().NotEmpty(sn.Description)
}

func (s *catalogTestSuite) TestCreateServiceRecordSchema() {
	body := s.catalog["create_service_record"].Body
	s.Require().NotNil(body)
	s.Assert().ElementsMatch(
		[]string{"serial_number", "service_type", "description", "technician", "service_date", "estimated_duration"},
		body.Required,
	)

	date, ok := body.Properties.Get("service_date")
	s.Require().True(ok)
	s.Assert().Equal("date-time", date.Format)
}

func (s *catalogTestSuite) TestUpdateServiceRecordSchema() {
	d := s.catalog["update_service_record"]

	_, ok := d.Body.Properties.Get("record_id")
	s.Assert().False(ok, "record id is path parameter, not body field")

	status, ok := d.Body.Properties.Get("status")
	s.Require().True(ok)
	s.Assert().ElementsMatch([]any{"scheduled", "completed", "cancelled"}, status.Enum)

	_, ok = d.Parameters.Properties.Get("record_id")
	s.Assert().True(ok)
}

func (s *catalogTestSuite) TestCatalogIsSerializable() {
	encoded, err := json.Marshal(Catalog())
	s.Require().NoError(err)
	s.Assert().Contains(string(encoded), `"name":"get_customer_info"`)
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(catalogTestSuite))
}
