package routes

import (
	"net/http"

	"blogapi/config"
	"blogapi/controllers"
	"blogapi/handlers"
	"blogapi/middleware"
	"blogapi/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Post     *controllers.PostController
	Category *controllers.CategoryController
	Comment  *controllers.CommentController
	WS       *handlers.WebSocketHandler
}

// NewEngine wires services, controllers and middleware onto a fresh engine.
func NewEngine(cfg *config.Config, db *gorm.DB, hubService *services.HubService, mailer services.Mailer) *gin.Engine {
	authService := services.NewAuthService(db, cfg, mailer)
	userService := services.NewUserService(db)

	ctrls := Controllers{
		Auth:     controllers.NewAuthController(authService, userService),
		User:     controllers.NewUserController(userService),
		Post:     controllers.NewPostController(services.NewPostService(db), services.NewExportService(db), hubService),
		Category: controllers.NewCategoryController(services.NewCategoryService(db)),
		Comment:  controllers.NewCommentController(services.NewCommentService(db), hubService),
		WS:       handlers.NewWebSocketHandler(hubService, cfg.CORSAllowedOrigins),
	}

	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	SetupRoutes(r, authService, ctrls)
	return r
}

func SetupRoutes(r *gin.Engine, authService *services.AuthService, ctrls Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthRequired(authService)
	verified := middleware.VerifiedRequired()

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctrls.Auth.Register)
			auth.POST("/login", ctrls.Auth.Login)
			auth.POST("/verify-otp", ctrls.Auth.VerifyOTP)
			auth.POST("/resend-verification", ctrls.Auth.ResendVerification)
			auth.POST("/logout", authRequired, ctrls.Auth.Logout)
			auth.GET("/profile", authRequired, ctrls.Auth.Profile)
			auth.GET("/ws", authRequired, ctrls.WS.HandleWebSocket)
		}

		api.GET("/user", authRequired, ctrls.Auth.Profile)

		users := api.Group("/users")
		{
			users.GET("/:id", ctrls.User.GetUser)
			users.PUT("/:id", authRequired, ctrls.User.UpdateUser)
			users.DELETE("/:id", authRequired, ctrls.User.DeleteUser)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", ctrls.Post.GetPosts)
			posts.GET("/:slug", middleware.OptionalAuth(authService), ctrls.Post.GetPost)
			posts.POST("", authRequired, verified, ctrls.Post.CreatePost)
			posts.PUT("/:slug", authRequired, verified, ctrls.Post.UpdatePost)
			posts.DELETE("/:slug", authRequired, verified, ctrls.Post.DeletePost)

			posts.GET("/:slug/comments", ctrls.Comment.GetComments)
			posts.POST("/:slug/comments", authRequired, verified, ctrls.Comment.CreateComment)
		}

		me := api.Group("/me")
		me.Use(authRequired)
		{
			me.GET("/posts", ctrls.Post.GetMyPosts)
			me.GET("/posts/export", ctrls.Post.ExportMyPosts)
		}

		trash := api.Group("/trash")
		trash.Use(authRequired)
		{
			trash.GET("", ctrls.Post.GetTrash)
			trash.POST("/:slug/restore", ctrls.Post.RestorePost)
			trash.DELETE("/:slug", ctrls.Post.ForceDeletePost)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", ctrls.Category.GetCategories)
			categories.GET("/:slug", ctrls.Category.GetCategory)
			categories.POST("", authRequired, verified, ctrls.Category.CreateCategory)
			categories.PUT("/:slug", authRequired, verified, ctrls.Category.UpdateCategory)
			categories.DELETE("/:slug", authRequired, verified, ctrls.Category.DeleteCategory)
		}

		comments := api.Group("/comments")
		comments.Use(authRequired)
		{
			comments.PUT("/:id", ctrls.Comment.UpdateComment)
			comments.DELETE("/:id", ctrls.Comment.DeleteComment)
		}
	}
}
