package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crudexample/internal/domain"
	"crudexample/internal/pipeline"
)

// Argument names shared by binders and handlers.
const (
	ArgID      = "id"
	ArgPayload = "payload"
	ArgEmail   = "email"
)

// Binder copies request values from gin into the handler arguments.
type Binder func(gc *gin.Context, args pipeline.Args) error

// Binds runs binders in order and stops at the first error.
func Binds(binders ...Binder) Binder {
	return func(gc *gin.Context, args pipeline.Args) error {
		for _, b := range binders {
			if err := b(gc, args); err != nil {
				return err
			}
		}
		return nil
	}
}

// BindQuery copies the named query parameters that are present.
func BindQuery(keys ...string) Binder {
	return func(gc *gin.Context, args pipeline.Args) error {
		for _, k := range keys {
			if v, ok := gc.GetQuery(k); ok {
				args[k] = v
			}
		}
		return nil
	}
}

// BindID parses the :id path parameter as *uuid.UUID.
func BindID(gc *gin.Context, args pipeline.Args) error {
	raw := gc.Param(ArgID)
	id, err := uuid.Parse(raw)
	if err != nil {
		return domain.ValidationError{Field: ArgID, Msg: fmt.Sprintf("%q is not a valid id", raw), Err: err}
	}
	args[ArgID] = &id
	return nil
}

// BindJSON decodes the body into a new *T stored under ArgPayload.
func BindJSON[T any]() Binder {
	return func(gc *gin.Context, args pipeline.Args) error {
		dst := new(T)
		if err := gc.ShouldBindJSON(dst); err != nil {
			if errors.Is(err, io.EOF) {
				return domain.ValidationError{Field: ArgPayload, Msg: "body is required", Err: err}
			}
			return domain.ValidationError{Field: ArgPayload, Msg: "malformed JSON", Err: err}
		}
		args[ArgPayload] = dst
		return nil
	}
}

func idArg(c *pipeline.Context) *uuid.UUID {
	id, _ := c.Args[ArgID].(*uuid.UUID)
	return id
}

func payload[T any](c *pipeline.Context) *T {
	v, _ := c.Args[ArgPayload].(*T)
	return v
}
