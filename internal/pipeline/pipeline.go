// Package pipeline runs a handler inside an ordered chain of stages:
// authorization, resource wrapping, argument binding, action before/after
// hooks, exception handling and result wrapping.
//
// Authorizers, action hooks and exception handlers are flat lists run in
// ascending order. Resource and result wrappers nest, lowest order
// outermost.
package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"

	"crudexample/internal/domain"
)

// ErrFrozen is returned by Register once the pipeline has started serving.
var ErrFrozen = errors.New("pipeline: stages are frozen")

// Request is the transport input for one Run.
type Request struct {
	HTTP *http.Request
	// Bind fills the handler arguments. It runs after resource wrappers and
	// before action stages; an error is treated as a handler fault.
	Bind func(Args) error
}

// Pipeline holds the process-wide stage list. Stages are registered during
// startup; after Freeze the list is read-only and Run is safe for concurrent
// use.
type Pipeline struct {
	logger *slog.Logger

	mu     sync.Mutex
	regs   []Registration
	frozen atomic.Bool
}

func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// Register adds a global stage at order.
func (p *Pipeline) Register(stage Stage, order int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frozen.Load() {
		return ErrFrozen
	}
	p.regs = append(p.regs, Registration{Stage: stage, Order: order})
	return nil
}

// Freeze closes registration. Run calls it implicitly.
func (p *Pipeline) Freeze() {
	if p.frozen.Load() {
		return
	}
	p.mu.Lock()
	p.frozen.Store(true)
	p.mu.Unlock()
}

type plan struct {
	authorizers []Authorizer
	resources   []ResourceWrapper
	actions     []Stage
	exceptions  []ExceptionHandler
	results     []ResultWrapper
}

func (p *Pipeline) plan(d *Descriptor) plan {
	regs := make([]Registration, 0, len(p.regs)+len(d.Stages))
	regs = append(regs, p.regs...)
	regs = append(regs, d.Stages...)
	slices.SortStableFunc(regs, func(a, b Registration) int { return cmp.Compare(a.Order, b.Order) })

	var pl plan
	for _, r := range regs {
		if s, ok := r.Stage.(Authorizer); ok {
			pl.authorizers = append(pl.authorizers, s)
		}
		if s, ok := r.Stage.(ResourceWrapper); ok {
			pl.resources = append(pl.resources, s)
		}
		_, before := r.Stage.(ActionBefore)
		_, after := r.Stage.(ActionAfter)
		if before || after {
			pl.actions = append(pl.actions, r.Stage)
		}
		if s, ok := r.Stage.(ExceptionHandler); ok {
			pl.exceptions = append(pl.exceptions, s)
		}
		if s, ok := r.Stage.(ResultWrapper); ok {
			pl.results = append(pl.results, s)
		}
	}
	return pl
}

// Run threads one request through the registered stages and h. It always
// returns a response; faults never escape.
func (p *Pipeline) Run(ctx context.Context, req Request, d *Descriptor, h Handler) (resp *Response) {
	p.Freeze()
	if d == nil {
		d = &Descriptor{}
	}
	pl := p.plan(d)
	c := newContext(ctx, req, d, p.logger.With(slog.String("handler", d.Name)))

	defer func() {
		if r := recover(); r != nil {
			err := panicError(r)
			c.logger.Error("fault outside exception boundary", slog.Any("error", err))
			resp = c.finish(InternalServerError(), Faulted, err)
		}
	}()

	if !d.SkipAuthorization {
		for _, s := range pl.authorizers {
			s.OnAuthorization(c)
			if c.Result != nil {
				c.logger.Info("request short-circuited", slog.String("stage", s.Name()), slog.Int("status", c.Result.Status))
				return c.finish(c.Result, ShortCircuited, domain.ErrAuthorizationDenied)
			}
		}
	}

	var (
		out     *Response
		invoked bool
	)
	var wrap func(i int)
	wrap = func(i int) {
		if i < len(pl.resources) {
			pl.resources[i].OnResourceExecution(c, func() { wrap(i + 1) })
			return
		}
		if invoked {
			return
		}
		invoked = true
		out = p.execute(c, pl, h)
	}
	wrap(0)

	if !invoked {
		status := http.StatusNoContent
		if c.Result != nil {
			status = c.Result.Status
		}
		c.logger.Info("request short-circuited by resource stage", slog.Int("status", status))
		return c.finish(c.Result, ShortCircuited, nil)
	}
	return out
}

func (p *Pipeline) execute(c *Context, pl plan, h Handler) *Response {
	if c.bind != nil {
		c.Err = guard(func() error { return c.bind(c.Args) })
	}

	ran := 0
	if c.Err == nil {
		for _, s := range pl.actions {
			ran++
			before, ok := s.(ActionBefore)
			if !ok {
				continue
			}
			if err := guard(func() error { before.OnActionExecuting(c); return nil }); err != nil {
				c.Err = err
				break
			}
			if c.Result != nil {
				break
			}
		}
	}

	if c.Err == nil && c.Result == nil {
		var res *Response
		err := guard(func() error {
			var herr error
			res, herr = h(c)
			return herr
		})
		if err != nil {
			c.Err = err
		} else if res == nil {
			res = StatusCode(http.StatusNoContent)
		}
		c.Result = res
	}

	for _, s := range pl.actions[:ran] {
		after, ok := s.(ActionAfter)
		if !ok {
			continue
		}
		if err := guard(func() error { after.OnActionExecuted(c); return nil }); err != nil {
			c.Err = errors.Join(c.Err, err)
		}
	}

	if c.Err != nil {
		return p.handleFault(c, pl)
	}

	var emit func(i int)
	emit = func(i int) {
		if i < len(pl.results) {
			pl.results[i].OnResultExecution(c, func() { emit(i + 1) })
			return
		}
		c.committed = true
	}
	emit(0)
	return c.finish(c.Result, Completed, nil)
}

func (p *Pipeline) handleFault(c *Context, pl plan) *Response {
	c.Result = nil
	for _, s := range pl.exceptions {
		if err := guard(func() error { s.OnException(c); return nil }); err != nil {
			c.logger.Error("exception stage failed", slog.String("stage", s.Name()), slog.Any("error", err))
			break
		}
		if c.ExceptionHandled {
			break
		}
	}
	if !c.ExceptionHandled || c.Result == nil {
		c.logger.Error("unhandled fault", slog.Any("error", c.Err))
		c.Result = InternalServerError()
	}
	return c.finish(c.Result, Faulted, c.Err)
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return fn()
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return domain.InternalError{Msg: "panic", Err: err}
	}
	return domain.InternalError{Msg: "panic", Err: fmt.Errorf("%v", r)}
}
