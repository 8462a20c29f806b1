package pipeline

import (
	"context"
	"log/slog"
	"net/http"
)

// Outcome is the terminal state of one Run.
type Outcome int

const (
	Completed Outcome = iota
	ShortCircuited
	Faulted
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case ShortCircuited:
		return "short_circuited"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Response is what a handler or stage produces and what the transport
// flushes after Run returns.
type Response struct {
	Status int
	Body   any
	// View marks a presentation result: the body is the model and the
	// request's view data travels with it.
	View        bool
	ContentType string
	Location    string

	// Filled by Run.
	ViewData map[string]any
	Header   http.Header
	Cookies  []*http.Cookie
	Outcome  Outcome
	// Err is the fault or denial behind a non-completed outcome. It is for
	// logging only and never sent to the client.
	Err error
}

func StatusCode(code int) *Response {
	return &Response{Status: code}
}

func JSON(code int, body any) *Response {
	return &Response{Status: code, Body: body}
}

// View returns a 200 presentation result for model.
func View(model any) *Response {
	return &Response{Status: http.StatusOK, Body: model, View: true}
}

func Redirect(location string) *Response {
	return &Response{Status: http.StatusFound, Location: location}
}

func Data(contentType string, body []byte) *Response {
	return &Response{Status: http.StatusOK, Body: body, ContentType: contentType}
}

// InternalServerError is the fixed body for unhandled faults.
func InternalServerError() *Response {
	return JSON(http.StatusInternalServerError, map[string]any{"error": "internal server error"})
}

// Handler is the business call at the centre of the pipeline.
type Handler func(c *Context) (*Response, error)

// Context is the state of one request as it moves through the stages. It is
// created by Run and owned by the calling goroutine.
type Context struct {
	ctx        context.Context
	Request    *http.Request
	Descriptor *Descriptor
	Args       Args
	Items      *Items
	ViewData   map[string]any

	// Result short-circuits when set by an Authorizer, ResourceWrapper or
	// ActionBefore, and holds the handler's response afterwards.
	Result *Response
	// Err is the fault raised by binding, an action stage or the handler.
	Err error
	// ExceptionHandled is set by an ExceptionHandler that produced Result.
	ExceptionHandled bool

	bind      func(Args) error
	header    http.Header
	cookies   []*http.Cookie
	committed bool
	logger    *slog.Logger
}

func newContext(ctx context.Context, req Request, d *Descriptor, logger *slog.Logger) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		ctx:        ctx,
		Request:    req.HTTP,
		Descriptor: d,
		Args:       Args{},
		Items:      newItems(),
		ViewData:   map[string]any{},
		bind:       req.Bind,
		header:     http.Header{},
		logger:     logger,
	}
}

// Context returns the request's context.Context.
func (c *Context) Context() context.Context { return c.ctx }

func (c *Context) Logger() *slog.Logger { return c.logger }

// SetHeader sets a response header. It reports false once the response has
// been committed.
func (c *Context) SetHeader(key, value string) bool {
	if c.committed {
		c.logger.Warn("header dropped after commit", slog.String("header", key))
		return false
	}
	c.header.Set(key, value)
	return true
}

// SetCookie appends a response cookie. It reports false once the response
// has been committed.
func (c *Context) SetCookie(cookie *http.Cookie) bool {
	if c.committed {
		c.logger.Warn("cookie dropped after commit", slog.String("cookie", cookie.Name))
		return false
	}
	c.cookies = append(c.cookies, cookie)
	return true
}

// Cookie reads a request cookie value.
func (c *Context) Cookie(name string) (string, bool) {
	if c.Request == nil {
		return "", false
	}
	ck, err := c.Request.Cookie(name)
	if err != nil {
		return "", false
	}
	return ck.Value, true
}

func (c *Context) finish(res *Response, outcome Outcome, err error) *Response {
	c.committed = true
	if res == nil {
		res = StatusCode(http.StatusNoContent)
	}
	out := *res
	out.Outcome = outcome
	out.Err = err
	out.Header = res.Header.Clone()
	if out.Header == nil {
		out.Header = http.Header{}
	}
	for k, vs := range c.header {
		for _, v := range vs {
			out.Header.Add(k, v)
		}
	}
	out.Cookies = append(append([]*http.Cookie(nil), res.Cookies...), c.cookies...)
	if res.View {
		out.ViewData = c.ViewData
	}
	return &out
}
