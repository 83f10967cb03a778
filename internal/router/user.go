package router

import (
	"github.com/edustack/academy-api/internal/model"
	"github.com/gin-gonic/gin"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		// Operator-only resource routes: listing by role and course
		// allocation are worker operations
		users.Use(r.authMw.RequireAuth(), r.authMw.RequireRole(model.RoleWorker))
		{
			users.GET("", r.userHandler.ListByRole)
			users.POST("/:id/courses", r.userHandler.AllocateCourse)
		}
	}
}
