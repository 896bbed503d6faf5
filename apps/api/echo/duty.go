package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/duty"
)

type dutyApi struct {
	svc      *duty.Service
	validate *validator.Validate
}

func registerDutyAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := dutyApi{
		svc:      deps.DutySvc,
		validate: deps.Validate,
	}

	dg := g.Group("/duties", jwt)
	dg.POST("", api.create, scopeMiddleware(access.ScopeAddDuty))
	dg.GET("", api.query, scopeMiddleware(access.ScopeGetDuty))

	// assignment endpoints before the :name routes so they are not shadowed
	ag := dg.Group("/assigned")
	ag.POST("/run", api.runAssignment, scopeMiddleware(access.ScopeAssignDuties))
	ag.POST("/adhoc", api.assignAdHoc, scopeMiddleware(access.ScopeAssignSpecialDuties))
	ag.GET("", api.queryAssigned, scopeMiddleware(access.ScopeGetAssignedDuties))
	ag.PUT("/completed", api.markCompleted, scopeMiddleware(access.ScopeMarkDuty))

	dg.GET("/:name", api.retrieve, scopeMiddleware(access.ScopeGetDuty))
	dg.PUT("/:name", api.update, scopeMiddleware(access.ScopeUpdateDuty))
	dg.DELETE("/:name", api.destroy, scopeMiddleware(access.ScopeDeleteDuty))
}

// Handlers

func (api *dutyApi) create(ctx echo.Context) error {
	var data duty.NewDuty
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDuty")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	d, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating duty")
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (api *dutyApi) query(ctx echo.Context) error {
	duties, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying duties")
	}
	if duties == nil {
		duties = []duty.Duty{}
	}
	return ctx.JSON(http.StatusOK, duties)
}

func (api *dutyApi) retrieve(ctx echo.Context) error {
	d, err := api.svc.Get(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return errors.Wrap(err, "finding duty by name")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *dutyApi) update(ctx echo.Context) error {
	var data duty.UpdateDuty
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateDuty")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	d, err := api.svc.Update(ctx.Request().Context(), ctx.Param("name"), data)
	if err != nil {
		return errors.Wrap(err, "updating duty")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *dutyApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("name")); err != nil {
		return errors.Wrap(err, "deleting duty")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *dutyApi) runAssignment(ctx echo.Context) error {
	records, err := api.svc.Run(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "running duty assignment")
	}
	if records == nil {
		return ctx.JSON(http.StatusOK, SuccessResponse{
			Success: "Assignment skipped: some learners are away. It will run on the next schedule.",
		})
	}
	return ctx.JSON(http.StatusCreated, records)
}

func (api *dutyApi) assignAdHoc(ctx echo.Context) error {
	var data AdHocAssignRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdHocAssignRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	records, err := api.svc.AssignAdHoc(ctx.Request().Context(), data.LearnerIDs, data.Duties)
	if err != nil {
		return errors.Wrap(err, "assigning ad-hoc duties")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *dutyApi) queryAssigned(ctx echo.Context) error {
	var query AssignedQuery
	if err := ctx.Bind(&query); err != nil {
		return ctx.JSON(http.StatusOK, []duty.AssignedDuty{})
	}

	records, err := api.svc.QueryAssigned(ctx.Request().Context(), query.filter())
	if err != nil {
		return errors.Wrap(err, "querying assigned duties")
	}
	if records == nil {
		records = []duty.AssignedDuty{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *dutyApi) markCompleted(ctx echo.Context) error {
	var data MarkCompletedRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkCompletedRequest")
	}
	if len(data.LearnerIDs) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "learner_ids", Error: "this field is required"})
	}

	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	marked, failed, err := api.svc.MarkCompleted(ctx.Request().Context(), role, data.LearnerIDs)
	if err != nil {
		return errors.Wrap(err, "marking duties completed")
	}
	return ctx.JSON(http.StatusOK, MarkCompletedResponse{Marked: marked, Failed: failed})
}

type (
	AdHocAssignRequest struct {
		LearnerIDs []string       `json:"learner_ids" validate:"required,min=1"`
		Duties     []duty.NewDuty `json:"duties" validate:"required,min=1,dive"`
	}

	AssignedQuery struct {
		Duty      string `query:"duty"`
		LearnerID string `query:"learner"`
		Day       int    `query:"day"`
		Month     int    `query:"month"`
		Year      int    `query:"year"`
	}

	MarkCompletedRequest struct {
		LearnerIDs []string `json:"learner_ids"`
	}

	MarkCompletedResponse struct {
		Marked []string `json:"marked"`
		Failed []string `json:"failed"`
	}
)

func (r *AdHocAssignRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (q AssignedQuery) filter() duty.AssignedFilter {
	filter := duty.AssignedFilter{Duty: q.Duty, LearnerID: q.LearnerID}
	if q.Day != 0 || q.Month != 0 || q.Year != 0 {
		filter.Date = &core.Date{Day: q.Day, Month: q.Month, Year: q.Year}
	}
	return filter
}
