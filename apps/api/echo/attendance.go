package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/attendance"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := attendanceApi{
		svc:      deps.AttendanceSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/attendance", jwt)
	ag.PUT("", api.mark, scopeMiddleware(access.ScopeMarkAttendance))
	ag.GET("", api.query, scopeMiddleware(access.ScopeGetAttendance))
}

// Handlers

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data MarkAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendanceRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	activity := attendance.Activity(data.Activity)
	if err := api.svc.Reconcile(ctx.Request().Context(), role, activity, time.Now(), data.Present, data.Absent); err != nil {
		return errors.Wrap(err, "reconciling attendance")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Attendance recorded."})
}

func (api *attendanceApi) query(ctx echo.Context) error {
	var query AttendanceQuery
	if err := ctx.Bind(&query); err != nil {
		return ctx.JSON(http.StatusOK, []attendance.Attendance{})
	}

	role, err := contextRole(ctx)
	if err != nil {
		return err
	}

	records, err := api.svc.Query(ctx.Request().Context(), role, query.filter())
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return ctx.JSON(http.StatusOK, records)
}

type (
	MarkAttendanceRequest struct {
		Activity string   `json:"activity" validate:"required,activity"`
		Present  []string `json:"present"`
		Absent   []string `json:"absent"`
	}

	AttendanceQuery struct {
		Activity string `query:"activity"`
		Day      int    `query:"day"`
		WeekDay  *int   `query:"week_day"`
		Month    int    `query:"month"`
		Year     int    `query:"year"`
	}
)

func (r *MarkAttendanceRequest) Validate(validate *validator.Validate) error {
	r.Activity = core.CleanString(r.Activity, true /* lower */)
	if len(r.Present) == 0 && len(r.Absent) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "present", Error: "at least one learner id is required"})
	}
	return validate.Struct(r)
}

func (q AttendanceQuery) filter() attendance.QueryFilter {
	return attendance.QueryFilter{
		Activity: attendance.Activity(q.Activity),
		Day:      q.Day,
		WeekDay:  q.WeekDay,
		Month:    q.Month,
		Year:     q.Year,
	}
}
