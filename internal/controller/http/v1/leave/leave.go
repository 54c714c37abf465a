package leave

import (
	"net/http"
	"reflect"

	"ems/backend/foundation/web"
	"ems/backend/internal/repository/postgres/leave"
)

type Controller struct {
	leave Leave
}

func NewController(leave Leave) *Controller {
	return &Controller{leave}
}

func (uc Controller) Create(c *web.Context) error {
	var request leave.CreateRequest

	if err := c.BindFunc(&request, "EmployeeID", "StartDate", "EndDate", "Reason"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.leave.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) Decide(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request leave.DecideRequest

	if err := c.BindFunc(&request, "Status"); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	response, err := uc.leave.Decide(c.Ctx, request)
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

	list, count, err := uc.leave.GetList(c.Ctx, filter)
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

	list, count, err := uc.leave.GetListByEmployee(c.Ctx, employeeID, filter)
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

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.leave.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) filter(c *web.Context) (leave.Filter, error) {
	var filter leave.Filter

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

	if err := c.ValidQuery(); err != nil {
		return leave.Filter{}, err
	}

	return filter, nil
}
