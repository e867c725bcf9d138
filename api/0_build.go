package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/fulldump/box/boxopenapi"

	"github.com/fulldump/stagedb/api/apitablev1"
	"github.com/fulldump/stagedb/service"
)

func Build(s service.Servicer, version string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")

	cursors := apitablev1.NewCursorRegistry()

	apitablev1.BuildV1Table(v1, s).
		WithInterceptors(
			injectServicer(s),
			injectCursorRegistry(cursors),
		)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}))

	spec := boxopenapi.Spec(b)
	spec.Info.Title = "StageDB"
	spec.Info.Description = "A staged, transactional, in-memory table store."
	b.Handle("GET", "/openapi.json", func(r *http.Request) any {

		spec.Servers = []boxopenapi.Server{
			{
				Url: "http://" + r.Host,
			},
		}

		return spec
	})

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apitablev1.SetServicer(ctx, s))
		}
	}
}

func injectCursorRegistry(c *apitablev1.CursorRegistry) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apitablev1.SetCursorRegistry(ctx, c))
		}
	}
}
