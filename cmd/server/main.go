package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/openmapcollab/mapping-api/internal/config"
	"github.com/openmapcollab/mapping-api/internal/constants"
	"github.com/openmapcollab/mapping-api/internal/database"
	"github.com/openmapcollab/mapping-api/internal/handlers"
	"github.com/openmapcollab/mapping-api/internal/middleware"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"github.com/openmapcollab/mapping-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database; the pool is owned here and closed on the way out
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(db); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	orgRepo := repository.NewOrganisationRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, roleRepo, orgRepo, cfg.InactiveUserDays)
	projectService := services.NewProjectService(projectRepo, roleRepo, userRepo)
	taskService := services.NewTaskService(taskRepo)
	authService := services.NewAuthService(userRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db)

	// Health check endpoint
	r.GET("/health", healthHandler.Check)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User routes (registration and reads public, writes protected)
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/usernames", userHandler.ListUsernames)
			users.GET("/user-role-options", userHandler.GetRoleOptions)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", middleware.RequireAuth(), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAuth(), userHandler.DeleteUser)
			users.POST("/process-inactive-users", middleware.RequireAuth(), userHandler.ProcessInactiveUsers)
		}

		// Project routes
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", middleware.RequireAuth(), projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", middleware.RequireAuth(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireAuth(), projectHandler.DeleteProject)
			projects.GET("/:id/users", projectHandler.ListProjectUsers)
			projects.POST("/:id/users/:user_id", middleware.RequireAuth(), projectHandler.AssignProjectRole)
		}

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", middleware.RequireAuth(), taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireAuth(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireAuth(), taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
