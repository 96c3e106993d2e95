package infra

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/auth"
	crmErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/handlers"
	"github.com/umalmyha/crm/internal/middleware"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/tools"
	"github.com/umalmyha/crm/internal/validation"
)

const internalServerErrorMsg = "internal server error"

// Router builds echo app with every CRM route registered
func Router(crmSvc service.CRMService, provider auth.IdentityProvider, authTimeout time.Duration) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = HTTPErrorHandler

	v, err := validation.New()
	if err != nil {
		return nil, err
	}
	e.Validator = v

	e.Use(echoMw.Recover())
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			// error handler runs after logger, so status has to be derived from error
			status := v.Status
			if v.Error != nil {
				status, _ = errorResponse(v.Error)
			}

			fields := logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			}
			if identity := middleware.IdentityFrom(c); identity != nil {
				fields["subject"] = identity.Subject
			}
			logrus.WithFields(fields).Info("request")
			return nil
		},
	}))

	// Middleware
	authenticateMw := middleware.Authenticate(provider, authTimeout)

	// Handlers
	customerHandler := handlers.NewCustomerHTTPHandler(crmSvc)
	warrantyHandler := handlers.NewWarrantyHTTPHandler(crmSvc)
	recordHandler := handlers.NewServiceRecordHTTPHandler(crmSvc)
	systemHandler := handlers.NewSystemHTTPHandler(tools.Catalog())

	// system
	e.GET("/v1/ping", systemHandler.Ping)
	e.GET("/v1/tools", systemHandler.Tools, authenticateMw)

	// customers
	customersAPI := e.Group("/customers", authenticateMw)
	customersAPI.GET("/:customer_id", customerHandler.Get)
	customersAPI.GET("/:customer_id/purchases", customerHandler.Purchases)

	// warranty
	warrantyAPI := e.Group("/warranty", authenticateMw)
	warrantyAPI.POST("/query", warrantyHandler.Query)

	// service records
	recordsAPI := e.Group("/service/records", authenticateMw)
	recordsAPI.GET("", recordHandler.GetAll)
	recordsAPI.POST("", recordHandler.Post)
	recordsAPI.PUT("/:record_id", recordHandler.Put)
	recordsAPI.DELETE("/:record_id", recordHandler.DeleteByID)

	return e, nil
}

// HTTPErrorHandler maps errors to fixed status codes, internal details are only logged
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)

	entry := logrus.WithFields(logrus.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Errorf("request failed - %v", err)
	} else {
		entry.Debugf("request rejected - %v", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logrus.Errorf("failed to write error response - %v", err)
	}
}

func errorResponse(err error) (int, any) {
	var pldErr *validation.PayloadError
	if errors.As(err, &pldErr) {
		return pldErr.StatusCode(), pldErr
	}

	var coded crmErrors.StatusCoder
	if errors.As(err, &coded) {
		return coded.StatusCode(), &crmErrors.Message{Message: coded.Error()}
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code >= http.StatusInternalServerError {
			return echoErr.Code, &crmErrors.Message{Message: internalServerErrorMsg}
		}
		return echoErr.Code, &crmErrors.Message{Message: httpErrorMessage(echoErr)}
	}

	return http.StatusInternalServerError, &crmErrors.Message{Message: internalServerErrorMsg}
}

func httpErrorMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return http.StatusText(err.Code)
}
