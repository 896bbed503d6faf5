package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/learner"
)

type learnerApi struct {
	svc      *learner.Service
	validate *validator.Validate
}

func registerLearnerAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := learnerApi{
		svc:      deps.LearnerSvc,
		validate: deps.Validate,
	}

	lg := g.Group("/learners", jwt)
	lg.POST("", api.create, scopeMiddleware(access.ScopeAddLearner))
	lg.GET("", api.query, scopeMiddleware(access.ScopeGetLearner))
	lg.GET("/:id", api.retrieve, scopeMiddleware(access.ScopeGetLearner))
	lg.GET("/:id/image", api.image, scopeMiddleware(access.ScopeGetLearnerImage))
	lg.DELETE("/:id", api.destroy, scopeMiddleware(access.ScopeDeleteLearner))
}

// Handlers

func (api *learnerApi) create(ctx echo.Context) error {
	var data learner.NewLearner
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLearner")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	l, err := api.svc.Create(ctx.Request().Context(), role, data)
	if err != nil {
		return errors.Wrap(err, "creating learner")
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *learnerApi) query(ctx echo.Context) error {
	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	learners, err := api.svc.QueryAll(ctx.Request().Context(), role)
	if err != nil {
		return errors.Wrap(err, "querying learners")
	}
	if learners == nil {
		learners = []learner.Learner{}
	}
	return ctx.JSON(http.StatusOK, learners)
}

func (api *learnerApi) retrieve(ctx echo.Context) error {
	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	l, err := api.svc.Get(ctx.Request().Context(), role, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding learner by id")
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *learnerApi) image(ctx echo.Context) error {
	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	img, err := api.svc.Image(ctx.Request().Context(), role, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting learner image")
	}
	if len(img) == 0 {
		return errHttpNotFound
	}
	return ctx.Blob(http.StatusOK, http.DetectContentType(img), img)
}

func (api *learnerApi) destroy(ctx echo.Context) error {
	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), role, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting learner")
	}
	return ctx.NoContent(http.StatusNoContent)
}
