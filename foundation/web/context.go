package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the gin context plus the request context that handlers and
// repositories must pass along to the storage layer.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs map[string]string
	queryErrs map[string]string
}

// BindFunc binds the request body (json or form) into obj and checks that the
// named struct fields were actually provided.
func (c *Context) BindFunc(obj interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(obj); err != nil {
		return &Error{
			Err:    errors.Wrap(err, "binding request"),
			Status: http.StatusBadRequest,
		}
	}

	fields := map[string]string{}

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	for _, name := range requiredFields {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				fields[name] = "required field"
			}
			continue
		}
		if f.IsZero() {
			fields[name] = "required field"
		}
	}

	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetParam reads a path parameter converted to the given kind. Conversion
// failures are collected and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.setParamErr(name, "expected integer")
			return 0
		}
		return v
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.setParamErr(name, "expected boolean")
			return false
		}
		return v
	default:
		return value
	}
}

// GetQueryFunc reads an optional query parameter. It returns a typed pointer,
// or a typed nil when the parameter is absent.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			c.setQueryErr(name, "expected integer")
			return (*int)(nil)
		}
		return &v
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.setQueryErr(name, "expected boolean")
			return (*bool)(nil)
		}
		return &v
	default:
		if !ok {
			return (*string)(nil)
		}
		return &value
	}
}

func (c *Context) setParamErr(name, message string) {
	if c.paramErrs == nil {
		c.paramErrs = map[string]string{}
	}
	c.paramErrs[name] = message
}

func (c *Context) setQueryErr(name, message string) {
	if c.queryErrs == nil {
		c.queryErrs = map[string]string{}
	}
	c.queryErrs[name] = message
}

// ValidParam reports path parameter conversion errors collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid path parameters"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrs,
	}
}

// ValidQuery reports query parameter conversion errors collected by GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid query parameters"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrs,
	}
}

// Respond sends a JSON response with the given status code.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError converts an application error into a client response. Request
// errors keep their status and message; anything else becomes a 500 with the
// cause tucked into a details field, never the raw error itself.
func (c *Context) RespondError(err error) error {
	if webErr := GetRequestError(err); webErr != nil {
		body := map[string]interface{}{
			"status": false,
			"error":  webErr.Err.Error(),
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}
		c.JSON(webErr.Status, body)
		return nil
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"error":   "internal server error",
		"details": fmt.Sprintf("%v", err),
	})
	return nil
}
