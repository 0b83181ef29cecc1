package service

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// jsonAPI is the sonic configuration shared by the HTTP layer and the mirror codec.
// ConfigStd keeps encoding/json semantics (sorted map keys, HTML escaping).
var jsonAPI = sonic.ConfigStd

// SonicJSONSerializer implements echo.JSONSerializer on top of sonic.
type SonicJSONSerializer struct{}

// Serialize encodes i into the response body.
func (SonicJSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsonAPI.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize decodes the request body into i. Decode failures become 400 errors.
func (SonicJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsonAPI.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err)).SetInternal(err)
	}
	return nil
}

// MarshalJSON encodes v with the shared sonic configuration.
func MarshalJSON[T any](v T) ([]byte, error) {
	return jsonAPI.Marshal(v)
}

// UnmarshalJSON decodes data into a new T with the shared sonic configuration.
func UnmarshalJSON[T any](data []byte) (T, error) {
	var out T
	err := jsonAPI.Unmarshal(data, &out)
	return out, err
}
