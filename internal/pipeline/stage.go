package pipeline

// Stage is a unit of cross-cutting request logic. What a stage does is
// decided by which of the capability interfaces below it implements; one
// stage may implement several.
type Stage interface {
	Name() string
}

// Authorizer runs first. Setting c.Result short-circuits the request.
type Authorizer interface {
	Stage
	OnAuthorization(c *Context)
}

// ResourceWrapper nests around everything after authorization. Not calling
// next short-circuits the request with c.Result.
type ResourceWrapper interface {
	Stage
	OnResourceExecution(c *Context, next func())
}

// ActionBefore runs after argument binding, before the handler. It may rewrite
// c.Args, write to c.Items, or set c.Result to skip the handler.
type ActionBefore interface {
	Stage
	OnActionExecuting(c *Context)
}

// ActionAfter runs after the handler, in the same ascending order as the
// before hooks. c.Err holds the handler fault, if any.
type ActionAfter interface {
	Stage
	OnActionExecuted(c *Context)
}

// ExceptionHandler converts c.Err into c.Result and sets c.ExceptionHandled.
type ExceptionHandler interface {
	Stage
	OnException(c *Context)
}

// ResultWrapper nests around response commit. Header and cookie writes must
// happen before calling next; writes after it are dropped.
type ResultWrapper interface {
	Stage
	OnResultExecution(c *Context, next func())
}

// Registration pairs a stage with its run order. Lower orders run first;
// equal orders keep registration order.
type Registration struct {
	Stage Stage
	Order int
}

// Descriptor is the per-handler configuration the executor consults.
type Descriptor struct {
	Name string
	// SkipAuthorization waives every Authorizer for this handler.
	SkipAuthorization bool
	// Stages apply to this handler only. They sort after global stages with
	// the same order.
	Stages []Registration
}

// Use returns a copy of d with stage added at order.
func (d Descriptor) Use(stage Stage, order int) Descriptor {
	stages := make([]Registration, 0, len(d.Stages)+1)
	stages = append(stages, d.Stages...)
	d.Stages = append(stages, Registration{Stage: stage, Order: order})
	return d
}

// SkipAuth returns a copy of d with authorization waived.
func (d Descriptor) SkipAuth() Descriptor {
	d.SkipAuthorization = true
	return d
}
