package main

import (
	"github.com/gin-gonic/gin"
	"projecthub.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	teamHandler    *handlers.TeamHandler
	projectHandler *handlers.ProjectHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/profile", d.authMiddleware, d.authHandler.GetProfile)
		}

		// Team routes. Auto-join is deliberately public: the visitor proves
		// membership eligibility with the team code and a registered email,
		// not with a session.
		team := api.Group("/team")
		{
			team.POST("/auto-join/:teamCode", d.teamHandler.AutoJoin)
			team.GET("/:projectId", d.teamHandler.GetTeamByProject)
			team.DELETE("/:projectId/members/:userId", d.authMiddleware, d.teamHandler.LeaveTeam)
		}

		// Project routes (public read)
		project := api.Group("/project")
		{
			project.GET("", d.projectHandler.ListProjects)
			project.GET("/:projectId", d.projectHandler.GetProject)
		}
	}
}
