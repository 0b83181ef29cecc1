package handlers

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// LoadOpenAPI parses and validates the embedded API document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document, err: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document, err: %w", err)
	}
	// No servers: requests are matched on path only, whatever host the registry listens on.
	doc.Servers = nil
	return doc, nil
}

// NewRequestValidator returns echo middleware that validates requests against doc before the
// handler runs. Failures become 400 errors carrying the openapi3filter.RequestError, which
// service.HTTPErrorHandler reports as bad_parameter. Routes absent from doc pass through.
func NewRequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router, err: %w", err)
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return validateRequest(c, next, router, options)
		}
	}, nil
}

func validateRequest(c echo.Context, next echo.HandlerFunc, router routers.Router, options *openapi3filter.Options) error {
	req := c.Request()
	route, pathParams, err := router.FindRoute(req)
	if err != nil {
		return next(c)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: pathParams,
		Route:      route,
		Options:    options,
	}
	if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return next(c)
}
