package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/middleware"
	"ems/backend/internal/pkg/config"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/repository/postgres/attendance"
	"ems/backend/internal/repository/postgres/employee"
	"ems/backend/internal/repository/postgres/leave"
	"ems/backend/internal/repository/postgres/notification"
	"ems/backend/internal/repository/postgres/salary"
	"ems/backend/internal/repository/postgres/user"

	attendance_controller "ems/backend/internal/controller/http/v1/attendance"
	auth_controller "ems/backend/internal/controller/http/v1/auth"
	employee_controller "ems/backend/internal/controller/http/v1/employee"
	leave_controller "ems/backend/internal/controller/http/v1/leave"
	notification_controller "ems/backend/internal/controller/http/v1/notification"
	salary_controller "ems/backend/internal/controller/http/v1/salary"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	port       string
	auth       *auth.Auth
	logger     *logrus.Logger
	cfg        *config.Config
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	logger *logrus.Logger,
	cfg *config.Config,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		logger,
		cfg,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware())

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	employeePostgres := employee.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, r.redisDB)
	notificationPostgres := notification.NewRepository(r.postgresDB)
	leavePostgres := leave.NewRepository(r.postgresDB, attendancePostgres, notificationPostgres, r.logger,
		leave.Options{OverlapCheck: r.cfg.LeaveOverlapCheck})
	salaryPostgres := salary.NewRepository(r.postgresDB, attendancePostgres,
		salary.Options{EnforceTotal: r.cfg.EnforceSalaryTotal})

	// controller
	authController := auth_controller.NewController(userPostgres, r.cfg.JWTKey)
	employeeController := employee_controller.NewController(employeePostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres)
	leaveController := leave_controller.NewController(leavePostgres)
	salaryController := salary_controller.NewController(salaryPostgres)
	notificationController := notification_controller.NewController(notificationPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #employee
	r.Get("/api/v1/employee/list", employeeController.GetList, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))
	r.Get("/api/v1/employee/:id", employeeController.GetDetailById, middleware.Authenticate(r.auth))
	r.Get("/api/v1/employee/:id/qrcode", employeeController.BadgeQR, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/employee/create", employeeController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/employee/:id", employeeController.Update, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/employee/:id", employeeController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/checkin", attendanceController.CheckIn, middleware.Authenticate(r.auth))
	r.Put("/api/v1/attendance/checkout", attendanceController.CheckOut, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/absent", attendanceController.MarkAbsent, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/today/:employee_id", attendanceController.GetToday, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))
	r.Get("/api/v1/attendance/employee/:employee_id", attendanceController.GetListByEmployee, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/workstats/:employee_id", attendanceController.WorkStats, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/export", attendanceController.MonthlyReportExcel, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))

	// #leave
	r.Post("/api/v1/leave/create", leaveController.Create, middleware.Authenticate(r.auth))
	r.Put("/api/v1/leave/:id", leaveController.Decide, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))
	r.Get("/api/v1/leave/list", leaveController.GetList, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))
	r.Get("/api/v1/leave/employee/:employee_id", leaveController.GetListByEmployee, middleware.Authenticate(r.auth))
	r.Delete("/api/v1/leave/:id", leaveController.Delete, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))

	// #salary
	r.Post("/api/v1/salary/create", salaryController.Create, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))
	r.Put("/api/v1/salary/:id/status", salaryController.UpdateStatus, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))
	r.Get("/api/v1/salary/list", salaryController.GetList, middleware.Authenticate(r.auth, auth.RoleManager, auth.RoleAdmin))
	r.Get("/api/v1/salary/employee/:employee_id", salaryController.GetListByEmployee, middleware.Authenticate(r.auth))
	r.Get("/api/v1/salary/:id/slip", salaryController.Slip, middleware.Authenticate(r.auth))

	// #notification
	r.Get("/api/v1/notification/list", notificationController.GetList, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/notification/:id/read", notificationController.MarkRead, middleware.Authenticate(r.auth))

	return r.Run(r.port)
}
