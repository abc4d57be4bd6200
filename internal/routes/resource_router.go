package routes

import (
	"inventory-system/internal/controllers"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/types"

	"go.uber.org/zap"
)

// parentRoute - GET /<ресурс>/by-<path>/:id, фильтр по column.
type parentRoute struct {
	path   string
	column string
}

func runResourceRouter[T types.Entity](
	w resourceWiring,
	name string,
	repo repositories.ResourceRepositoryInterface[T],
	resource services.Resource[T],
	parents ...parentRoute,
) {
	logger := w.logger.With(zap.String("resource", name))
	svc := services.NewResourceService(repo, w.lookup, w.validate, resource, logger)
	ctrl := controllers.NewResourceController[T](svc, "/api/"+name, logger)

	base := "/" + name
	read := w.authMW.RequireRead()
	write := w.authMW.RequireWrite()

	w.group.GET(base, ctrl.List, read)
	w.group.GET(base+"/:id", ctrl.Get, read)
	w.group.GET(base+"/:id/check-relations", ctrl.CheckRelations, read)
	for _, p := range parents {
		w.group.GET(base+"/by-"+p.path+"/:id", ctrl.ByParent(p.column), read)
	}

	w.group.POST(base, ctrl.Create, write)
	w.group.PUT(base+"/:id", ctrl.Update, write)
	w.group.DELETE(base+"/:id", ctrl.Delete, write)
}
