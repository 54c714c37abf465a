package employee

import (
	"fmt"
	"net/http"
	"reflect"

	"ems/backend/foundation/web"
	"ems/backend/internal/repository/postgres/employee"
	"ems/backend/internal/service"
)

type Controller struct {
	employee Employee
}

func NewController(employee Employee) *Controller {
	return &Controller{employee}
}

func (uc Controller) Create(c *web.Context) error {
	var request employee.CreateRequest

	if err := c.BindFunc(&request, "Username", "Password", "Role", "FirstName", "LastName", "Email",
		"Position", "Department", "JoiningDate", "BaseSalary"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) Update(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request employee.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	if err := uc.employee.Update(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter employee.Filter

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
	if department, ok := c.GetQueryFunc(reflect.String, "department").(*string); ok {
		filter.Department = department
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.employee.GetList(c.Ctx, filter)
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

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.employee.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) BadgeQR(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	fullName := ""
	if detail.FirstName != nil {
		fullName = *detail.FirstName
	}
	if detail.LastName != nil {
		fullName += " " + *detail.LastName
	}
	email := ""
	if detail.Email != nil {
		email = *detail.Email
	}

	png, err := service.EmployeeBadgeQR(detail.ID, fullName, email)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="employee_%d.png"`, detail.ID))
	c.Data(http.StatusOK, "image/png", png)

	return nil
}
