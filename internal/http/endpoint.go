package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"crudexample/internal/http/handlers"
	"crudexample/internal/pipeline"
)

// Endpoint runs h through p for every request on the route and writes the
// committed response.
func Endpoint(p *pipeline.Pipeline, d pipeline.Descriptor, bind handlers.Binder, h pipeline.Handler) gin.HandlerFunc {
	return func(gc *gin.Context) {
		req := pipeline.Request{HTTP: gc.Request}
		if bind != nil {
			req.Bind = func(args pipeline.Args) error { return bind(gc, args) }
		}
		res := p.Run(gc.Request.Context(), req, &d, h)
		write(gc, res)
	}
}

func write(gc *gin.Context, res *pipeline.Response) {
	for k, vs := range res.Header {
		for _, v := range vs {
			gc.Writer.Header().Add(k, v)
		}
	}
	for _, ck := range res.Cookies {
		stdhttp.SetCookie(gc.Writer, ck)
	}

	if res.View {
		gc.JSON(res.Status, gin.H{"model": res.Body, "view_data": res.ViewData})
		return
	}

	switch body := res.Body.(type) {
	case nil:
		if res.Location != "" && res.Status >= 300 && res.Status < 400 {
			gc.Redirect(res.Status, res.Location)
			return
		}
		gc.Status(res.Status)
		gc.Writer.WriteHeaderNow()
	case []byte:
		contentType := res.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		gc.Data(res.Status, contentType, body)
	default:
		gc.JSON(res.Status, body)
	}
}
