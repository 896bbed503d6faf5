package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/staff"
)

type staffApi struct {
	svc      *staff.Service
	conf     *core.Config
	validate *validator.Validate
}

func registerStaffAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := staffApi{
		svc:      deps.StaffSvc,
		conf:     deps.Conf,
		validate: deps.Validate,
	}

	sg := g.Group("/staff")

	// un-authed endpoints
	sg.POST("/login", api.login)

	// authed endpoints
	ag := sg.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.GET("/me", api.me, scopeMiddleware(access.ScopeSelf))
	ag.POST("", api.create, scopeMiddleware(access.ScopeAddStaff))
	ag.GET("", api.query, scopeMiddleware(access.ScopeGetStaff))
	ag.GET("/:username", api.retrieve, scopeMiddleware(access.ScopeGetStaff))
	ag.GET("/:username/image", api.image, scopeMiddleware(access.ScopeGetStaffImage))
	ag.PUT("/:username/active", api.setActive, scopeMiddleware(access.ScopeUpdateStaff))
	ag.DELETE("/:username", api.destroy, scopeMiddleware(access.ScopeDeleteStaff))
}

// Handlers

func (api *staffApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx, data.Username, data.Password, api.svc, api.conf)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *staffApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc, api.conf)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *staffApi) me(ctx echo.Context) error {
	stf, err := getContextStaff(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context staff")
	}
	return ctx.JSON(http.StatusOK, stf)
}

func (api *staffApi) create(ctx echo.Context) error {
	var data staff.NewStaff
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStaff")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	stf, err := api.svc.Create(ctx.Request().Context(), role, data)
	if err != nil {
		return errors.Wrap(err, "creating staff")
	}
	return ctx.JSON(http.StatusCreated, stf)
}

func (api *staffApi) query(ctx echo.Context) error {
	members, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying staff")
	}
	if members == nil {
		members = []staff.Staff{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	stf, err := api.svc.GetByUsername(ctx.Request().Context(), ctx.Param("username"))
	if err != nil {
		return errors.Wrap(err, "finding staff by username")
	}
	return ctx.JSON(http.StatusOK, stf)
}

func (api *staffApi) image(ctx echo.Context) error {
	actor, err := getContextStaff(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context staff")
	}

	img, err := api.svc.Image(ctx.Request().Context(), actor, ctx.Param("username"))
	if err != nil {
		return errors.Wrap(err, "getting staff image")
	}
	if len(img) == 0 {
		return errHttpNotFound
	}
	return ctx.Blob(http.StatusOK, http.DetectContentType(img), img)
}

func (api *staffApi) setActive(ctx echo.Context) error {
	var data SetActiveRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetActiveRequest")
	}
	if data.Active == nil {
		return core.NewValidationError(nil, core.FieldError{Field: "active", Error: "this field is required"})
	}

	if err := api.svc.SetActive(ctx.Request().Context(), ctx.Param("username"), *data.Active); err != nil {
		return errors.Wrap(err, "setting staff active")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *staffApi) destroy(ctx echo.Context) error {
	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	// Say No to Suicide! callers cannot delete themselves
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if claims.Username == ctx.Param("username") {
		return errHttpForbidden
	}

	if err := api.svc.Delete(ctx.Request().Context(), role, ctx.Param("username")); err != nil {
		return errors.Wrap(err, "deleting staff")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type SetActiveRequest struct {
	Active *bool `json:"active"`
}
