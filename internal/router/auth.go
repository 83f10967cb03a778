package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/verify-otp", r.authHandler.VerifyOTP)
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/forgot-password", r.authHandler.ForgotPassword)
		auth.POST("/reset-password", r.authHandler.ResetPassword)

		// Logout skips the revocation rejection so logging out twice with
		// the same token succeeds both times
		auth.POST("/logout", r.authMw.RequireSignedToken(), r.authHandler.Logout)

		// Protected routes (bearer token required)
		protected := auth.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.GET("/me", r.userHandler.Me)
			protected.PUT("/me", r.userHandler.UpdateMe)
		}
	}
}
