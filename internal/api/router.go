package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/carepoint/appointment-portal/docs"
	"github.com/carepoint/appointment-portal/internal/api/handler"
	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/infrastructure/http/handlers"
)

// Options are the router's collaborators. Sessions and Limiter are owned by
// main, which also runs their background loops.
type Options struct {
	Storage  ports.StorageProvider
	Sessions *middleware.Registry
	Limiter  *middleware.RateLimiter
	Cookie   middleware.CookieOptions
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Health probes and tooling (no session) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(map[string]handlers.Pinger{
		"storage": opts.Storage,
	})

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is client storage up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(opts.Sessions)
	shellHandler := handler.NewShellHandler()
	patientHandler := handler.NewPatientHandler()
	doctorHandler := handler.NewDoctorHandler()
	adminHandler := handler.NewAdminHandler()

	s := e.Group("", middleware.Sessions(opts.Sessions, opts.Cookie))
	s.GET("/shell", shellHandler.Shell)

	// --- Auth routes ---
	limited := middleware.RateLimit(opts.Limiter)
	auth := s.Group("/auth")
	auth.POST("/login", authHandler.Login, limited)
	auth.POST("/register", authHandler.Register, limited)
	auth.POST("/forgot-password", authHandler.ForgotPassword, limited)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/logout", authHandler.Logout)

	// --- Any signed-in user ---
	in := s.Group("", middleware.Auth())
	in.GET("/dashboard", shellHandler.Dashboard)
	in.GET("/profile", shellHandler.GetProfile)
	in.PUT("/profile", shellHandler.UpdateProfile)
	in.GET("/doctor-search", patientHandler.SearchDoctors)
	in.GET("/my-appointments", patientHandler.MyAppointments)
	in.PUT("/my-appointments/:id/cancel", patientHandler.CancelAppointment)
	in.PUT("/my-appointments/:id/reschedule", patientHandler.RescheduleAppointment)
	in.GET("/doctor-dashboard", doctorHandler.Dashboard)
	in.GET("/doctor/upcoming", doctorHandler.Upcoming)
	in.PUT("/doctor/upcoming/:id/confirm", doctorHandler.Confirm)
	in.PUT("/doctor/upcoming/:id/decline", doctorHandler.Decline)
	in.PUT("/doctor/upcoming/:id/complete", doctorHandler.Complete)

	// --- Patients ---
	book := in.Group("/book", middleware.RBAC(domain.RolePatient))
	book.POST("/waitlist", patientHandler.JoinWaitlist)
	book.GET("/:doctorId/:date/:startTime", patientHandler.OpenBooking)
	book.POST("/:doctorId/:date/:startTime", patientHandler.Book)

	// --- Doctors ---
	doc := in.Group("/doctor", middleware.RBAC(domain.RoleDoctor))
	doc.GET("/history", doctorHandler.History)
	doc.POST("/history/:id/notes", doctorHandler.AddNote)
	doc.GET("/waitlist", doctorHandler.Waitlist)
	doc.PUT("/profile", doctorHandler.UpdateProfile)

	// --- Admins ---
	admin := in.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.Users)
	admin.POST("/users/:id/block", adminHandler.BlockUser)
	admin.POST("/users/:id/unblock", adminHandler.UnblockUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/doctors", adminHandler.Doctors)
	admin.GET("/doctors/:id", adminHandler.DoctorDetails)
	admin.GET("/logs", adminHandler.SystemLogs)
	admin.GET("/analytics", adminHandler.Analytics)
	admin.POST("/announcements", adminHandler.Announce)

	return e
}
