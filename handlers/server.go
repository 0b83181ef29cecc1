package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers of the registry API (handlers/openapi.yaml).
type ServerInterface interface {
	// (GET /)
	Home(ctx echo.Context) error
	// (POST /api/v1/register)
	RegisterProbe(ctx echo.Context) error
	// (GET /api/v1/list)
	ListProbes(ctx echo.Context) error
	// (GET /api/v1/probes/{id})
	GetProbe(ctx echo.Context, id string) error
	// (POST /api/v1/unregister/{id})
	UnregisterProbe(ctx echo.Context, id string) error
	// (GET /api/v1/mirror)
	ListMirroredProbes(ctx echo.Context) error
	// (GET /api/v1/my_ip_address)
	MyIPAddress(ctx echo.Context) error
	// (GET /metrics)
	GetMetrics(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// Home converts echo context to params.
func (w *ServerInterfaceWrapper) Home(ctx echo.Context) error {
	return w.Handler.Home(ctx)
}

// RegisterProbe converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterProbe(ctx echo.Context) error {
	return w.Handler.RegisterProbe(ctx)
}

// ListProbes converts echo context to params.
func (w *ServerInterfaceWrapper) ListProbes(ctx echo.Context) error {
	return w.Handler.ListProbes(ctx)
}

// GetProbe converts echo context to params.
func (w *ServerInterfaceWrapper) GetProbe(ctx echo.Context) error {
	id, err := bindProbeID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetProbe(ctx, id)
}

// UnregisterProbe converts echo context to params.
func (w *ServerInterfaceWrapper) UnregisterProbe(ctx echo.Context) error {
	id, err := bindProbeID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UnregisterProbe(ctx, id)
}

// ListMirroredProbes converts echo context to params.
func (w *ServerInterfaceWrapper) ListMirroredProbes(ctx echo.Context) error {
	return w.Handler.ListMirroredProbes(ctx)
}

// MyIPAddress converts echo context to params.
func (w *ServerInterfaceWrapper) MyIPAddress(ctx echo.Context) error {
	return w.Handler.MyIPAddress(ctx)
}

// GetMetrics converts echo context to params.
func (w *ServerInterfaceWrapper) GetMetrics(ctx echo.Context) error {
	return w.Handler.GetMetrics(ctx)
}

func bindProbeID(ctx echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err)).SetInternal(err)
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, prepending baseURL to the paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/", wrapper.Home)
	router.POST(baseURL+"/api/v1/register", wrapper.RegisterProbe)
	router.GET(baseURL+"/api/v1/list", wrapper.ListProbes)
	router.GET(baseURL+"/api/v1/probes/:id", wrapper.GetProbe)
	router.POST(baseURL+"/api/v1/unregister/:id", wrapper.UnregisterProbe)
	router.GET(baseURL+"/api/v1/mirror", wrapper.ListMirroredProbes)
	router.GET(baseURL+"/api/v1/my_ip_address", wrapper.MyIPAddress)
	router.GET(baseURL+"/metrics", wrapper.GetMetrics)
}
