package salary

import (
	"fmt"
	"net/http"
	"reflect"

	"ems/backend/foundation/web"
	"ems/backend/internal/repository/postgres/salary"
	"ems/backend/internal/service"
)

type Controller struct {
	salary Salary
}

func NewController(salary Salary) *Controller {
	return &Controller{salary}
}

func (uc Controller) Create(c *web.Context) error {
	var request salary.CreateRequest

	if err := c.BindFunc(&request, "EmployeeID", "Month", "Year", "BaseAmount", "TotalAmount"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.salary.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) UpdateStatus(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request salary.UpdateStatusRequest

	if err := c.BindFunc(&request, "Status"); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	response, err := uc.salary.UpdateStatus(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.salary.GetList(c.Ctx, filter)
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

func (uc Controller) GetListByEmployee(c *web.Context) error {
	employeeID := c.GetParam(reflect.Int, "employee_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.salary.GetListByEmployee(c.Ctx, employeeID, filter)
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

func (uc Controller) Slip(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	data, err := uc.salary.GetSlip(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	buffer, err := service.SalarySlipPDF(data)
	if err != nil {
		return c.RespondError(err)
	}

	fileName := fmt.Sprintf("salary_slip_%d_%02d.pdf", data.Year, data.Month)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, "application/pdf", buffer.Bytes())

	return nil
}

func (uc Controller) filter(c *web.Context) (salary.Filter, error) {
	var filter salary.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if month, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok {
		filter.Month = month
	}
	if year, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		filter.Year = year
	}

	if err := c.ValidQuery(); err != nil {
		return salary.Filter{}, err
	}

	return filter, nil
}
