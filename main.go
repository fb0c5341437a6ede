package main

import (
	"log"
	"time"

	"skillsync/internal/config"
	"skillsync/internal/db"
	"skillsync/internal/event"
	"skillsync/internal/handlers"
	"skillsync/internal/middleware"
	"skillsync/internal/repository"
	"skillsync/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	db.InitMongo(cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	defer db.Close()

	// RabbitMQ event publisher (optional)
	var publisher *event.EventPublisher
	if cfg.RabbitMQ.URI != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, goal events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.MongoDB.Database)

	planRepo := repository.NewPlanRepository(database)
	userRepo := repository.NewUserRepository(database)

	locks := service.NewPlanLocks()
	planService := service.NewPlanService(planRepo, userRepo, locks)
	taskService := service.NewTaskService(planRepo, locks)

	goalHandler := handlers.NewGoalHandler(planService, taskService)

	// Public routes
	publicGoals := r.Group("/public/goals")
	{
		publicGoals.GET("/templates", goalHandler.GetTemplates)
	}

	// Protected routes: identity comes from the gateway-injected user header.
	protectedGoals := r.Group("/protected/goals")
	protectedGoals.Use(middleware.RequireUser())

	// Redis-backed rate limiting (optional)
	if cfg.Redis.Address != "" && cfg.Redis.RateLimit > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		protectedGoals.Use(middleware.RateLimit(rdb, cfg.Redis.RateLimit))
	} else {
		log.Println("Redis not configured, rate limiting disabled")
	}

	{
		protectedGoals.POST("/start", func(c *gin.Context) {
			goalHandler.StartGoal(c)
			if publisher != nil {
				publisher.Publish("goal.started", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		protectedGoals.GET("/my", func(c *gin.Context) {
			goalHandler.GetMyPlan(c)
			if publisher != nil {
				publisher.Publish("plan.synced", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		protectedGoals.GET("/progress", goalHandler.GetProgress)
		protectedGoals.GET("/discipline", goalHandler.GetDisciplineStatus)

		protectedGoals.PATCH("/tasks/:taskId/complete", func(c *gin.Context) {
			goalHandler.CompleteTask(c)
			if publisher != nil {
				publisher.Publish("task.completed", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"task_id":   c.Param("taskId"),
					"timestamp": time.Now(),
				})
			}
		})

		protectedGoals.POST("/tasks/:taskId/quiz/start", func(c *gin.Context) {
			goalHandler.StartTaskQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.started", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"task_id":   c.Param("taskId"),
					"timestamp": time.Now(),
				})
			}
		})

		protectedGoals.POST("/tasks/:taskId/quiz/submit", func(c *gin.Context) {
			goalHandler.SubmitTaskQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.submitted", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"task_id":   c.Param("taskId"),
					"timestamp": time.Now(),
				})
			}
		})

		protectedGoals.PATCH("/notifications/read", func(c *gin.Context) {
			goalHandler.MarkNotificationsRead(c)
			if publisher != nil {
				publisher.Publish("notifications.read", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		protectedGoals.DELETE("/reset", func(c *gin.Context) {
			goalHandler.ResetGoal(c)
			if publisher != nil {
				publisher.Publish("goal.reset", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
	}

	r.Run(":" + cfg.Server.Port)
}
