package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"project-hub.com/project-hub/internal/constants"
	middleware "project-hub.com/project-hub/internal/http/middlewares"
	"project-hub.com/project-hub/internal/http/validators"
)

type RouteOptions struct {
	RateLimitPerMinute int
	CORSOrigins        []string
	Development        bool
}

func Register(e *echo.Echo, h *Handler, opts RouteOptions, log zerolog.Logger) {
	e.Validator = validators.New()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics)
	e.Use(middleware.SecureHeaders(opts.Development))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/health", h.Health)

	authn := middleware.Authenticate(h.auth)
	member := middleware.RequireProject(h.memberships, constants.AccessMember)
	admin := middleware.RequireProject(h.memberships, constants.AccessAdmin)
	owner := middleware.RequireProject(h.memberships, constants.AccessOwner)

	a := api.Group("/auth")
	a.POST("/register", h.Register)
	a.POST("/login", h.Login)
	a.POST("/logout", h.Logout)
	a.POST("/reset", h.ForgotPassword)
	a.PUT("/reset", h.ResetPassword)
	a.POST("/change-password", h.ChangePassword, authn)
	a.GET("/google", h.GoogleLogin)
	a.GET("/google/callback", h.GoogleCallback)

	p := api.Group("/projects", authn)
	p.GET("", h.ListProjects)
	p.POST("/new-project", h.CreateProject)
	p.GET("/:projectId", h.GetProject, member)
	p.PUT("/update/:projectId", h.UpdateProject, admin)
	p.PATCH("/update-status/:projectId", h.UpdateProjectStatus, admin)
	p.DELETE("/delete/:projectId", h.DeleteProject, owner)
	p.GET("/:projectId/progress", h.ProjectProgress, member)
	p.GET("/:projectId/invite-link", h.InviteLink, admin)
	p.POST("/:projectId/invite-link/regenerate", h.RegenerateInviteLink, owner)
	p.POST("/:projectId/invite/:inviteToken", h.AcceptInvite)

	p.GET("/:projectId/members", h.ListMembers, member)
	p.PATCH("/:projectId/new-admin/:memberId", h.PromoteAdmin, owner)
	p.POST("/:projectId/members/add-member", h.AddMember, admin)
	p.DELETE("/:projectId/members/delete/:memberId", h.RemoveMember, admin)
	p.POST("/:projectId/members/send-reminder/:memberId", h.SendReminder, admin)

	p.GET("/:projectId/tasks", h.ListTasks, member)
	p.GET("/:projectId/tasks/submitted", h.SubmittedTasks, admin)
	p.GET("/:projectId/tasks/members/:memberId", h.MemberTasks, member)
	p.POST("/:projectId/tasks/assign/:memberId", h.AssignTask, admin)
	p.GET("/:projectId/tasks/:taskId", h.GetTask, member)
	p.PUT("/:projectId/tasks/update/:taskId", h.UpdateTask, admin)
	p.DELETE("/:projectId/tasks/delete/:taskId", h.DeleteTask, admin)
	p.PATCH("/:projectId/tasks/:taskId/submit-task", h.SubmitTask, member)
	p.PATCH("/:projectId/tasks/:taskId/approve-task", h.ApproveTask, admin)
	p.PATCH("/:projectId/tasks/:taskId/reject-task", h.RejectTask, admin)

	p.GET("/:projectId/tasks/:taskId/comments", h.ListComments, member)
	p.POST("/:projectId/tasks/:taskId/comments", h.CreateComment, member)
	p.POST("/:projectId/tasks/:taskId/comments/:commentId/reply", h.ReplyComment, member)
	p.DELETE("/:projectId/tasks/:taskId/comments/:commentId", h.DeleteComment, member)

	u := api.Group("/users", authn)
	u.GET("", h.ListUsers)
	u.GET("/:userId", h.GetUser)
	u.PUT("/:userId/profile", h.UpdateProfile, middleware.SelfOnly)
	u.DELETE("/:userId", h.DeleteUser, middleware.SelfOnly)
	u.GET("/:userId/projects", h.UserProjects, middleware.SelfOnly)
	u.GET("/:userId/tasks", h.UserTasks, middleware.SelfOnly)
	u.GET("/:userId/reminders", h.UserReminders, middleware.SelfOnly)
	u.DELETE("/:userId/reminders/:reminderId", h.DeleteReminder, middleware.SelfOnly)
}
