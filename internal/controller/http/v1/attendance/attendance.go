package attendance

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/pkg/errors"

	"ems/backend/foundation/web"
	"ems/backend/internal/repository/postgres/attendance"
	"ems/backend/internal/service"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

func (uc Controller) CheckIn(c *web.Context) error {
	var request attendance.CheckInRequest

	if err := c.BindFunc(&request, "EmployeeID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.CheckIn(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) CheckOut(c *web.Context) error {
	var request attendance.CheckOutRequest

	if err := c.BindFunc(&request, "EmployeeID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.CheckOut(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) MarkAbsent(c *web.Context) error {
	var request attendance.MarkAbsentRequest

	if err := c.BindFunc(&request, "EmployeeID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.MarkAbsent(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) GetToday(c *web.Context) error {
	employeeID := c.GetParam(reflect.Int, "employee_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.GetToday(c.Ctx, employeeID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetListByEmployee(c *web.Context) error {
	employeeID := c.GetParam(reflect.Int, "employee_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetListByEmployee(c.Ctx, employeeID, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) WorkStats(c *web.Context) error {
	employeeID := c.GetParam(reflect.Int, "employee_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	month, year, err := uc.period(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.AggregateWorkStats(c.Ctx, employeeID, month, year)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) MonthlyReportExcel(c *web.Context) error {
	month, year, err := uc.period(c)
	if err != nil {
		return c.RespondError(err)
	}

	report, err := uc.attendance.GetMonthlyReport(c.Ctx, month, year)
	if err != nil {
		return c.RespondError(err)
	}

	buffer, err := service.AttendanceReportExcel(report, month, year)
	if err != nil {
		return c.RespondError(err)
	}

	fileName := fmt.Sprintf("attendance_%d_%02d.xlsx", year, month)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buffer.Bytes())

	return nil
}

func (uc Controller) filter(c *web.Context) (attendance.Filter, error) {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}

	if err := c.ValidQuery(); err != nil {
		return attendance.Filter{}, err
	}

	return filter, nil
}

// period reads the month/year query pair, defaulting to the current month.
func (uc Controller) period(c *web.Context) (int, int, error) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if m, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok && m != nil {
		month = *m
	}
	if y, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok && y != nil {
		year = *y
	}

	if err := c.ValidQuery(); err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 {
		return 0, 0, web.NewRequestError(errors.New("month must be between 1 and 12"), http.StatusBadRequest)
	}

	return month, year, nil
}
