package main

import (
	"log"
	"net/http"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/config"
	"github.com/jugal-ahir/ByteHackage/internal/database"
	"github.com/jugal-ahir/ByteHackage/internal/email"
	"github.com/jugal-ahir/ByteHackage/internal/events"
	"github.com/jugal-ahir/ByteHackage/internal/handlers"
	"github.com/jugal-ahir/ByteHackage/internal/middleware"
	"github.com/jugal-ahir/ByteHackage/internal/services"
	"github.com/jugal-ahir/ByteHackage/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	database.SeedClassrooms(db)

	hub := ws.NewHub()
	dispatcher := events.NewDispatcher(hub)

	mailer := email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	authService := services.NewAuthService(db, cfg.JWTSecret, dispatcher)
	classroomService := services.NewClassroomService(db, dispatcher)
	attendanceService := services.NewAttendanceService(db, dispatcher)
	gateEntryService := services.NewGateEntryService(db, dispatcher)
	teamService := services.NewTeamService(db)
	issueService := services.NewIssueService(db, dispatcher)
	emergencyService := services.NewEmergencyService(db, dispatcher, mailer, cfg.OrganizerContacts)

	authHandler := handlers.NewAuthHandler(authService)
	classroomHandler := handlers.NewClassroomHandler(classroomService, gateEntryService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	teamHandler := handlers.NewTeamHandler(teamService)
	issueHandler := handlers.NewIssueHandler(issueService)
	emergencyHandler := handlers.NewEmergencyHandler(emergencyService)
	adminHandler := handlers.NewAdminHandler(teamService)
	wsHandler := handlers.NewWSHandler(hub, authService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws", wsHandler.HandleWebSocket)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	loginLimiter := middleware.NewTokenBucket(10, 10)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
			auth.GET("/me", middleware.JWTAuth(authService), authHandler.Me)
			auth.POST("/select-room", middleware.JWTAuth(authService), authHandler.SelectRoom)
		}

		classrooms := api.Group("/classrooms")
		classrooms.Use(middleware.JWTAuth(authService))
		{
			classrooms.GET("", classroomHandler.ListClassrooms)
			classrooms.GET("/:roomNumber", classroomHandler.GetClassroom)
			classrooms.POST("/:roomNumber/status", classroomHandler.UpdateStatus)
			classrooms.PUT("/:roomNumber/teams/:teamId/gate-entry", classroomHandler.SetTeamGateEntry)
			classrooms.PUT("/:roomNumber/teams/:teamId/members/:memberId/gate-entry", classroomHandler.SetMemberGateEntry)
			classrooms.PUT("/:roomNumber/teams/:teamId/finalize-entry", classroomHandler.FinalizeTeamEntry)
		}

		attendance := api.Group("/attendance")
		attendance.Use(middleware.JWTAuth(authService))
		{
			attendance.POST("/update", attendanceHandler.Update)
			attendance.POST("/bulk-update", attendanceHandler.BulkUpdate)
		}

		teams := api.Group("/teams")
		teams.Use(middleware.JWTAuth(authService))
		{
			teams.GET("/classroom/:roomNumber", teamHandler.ListByClassroom)
		}

		issues := api.Group("/issues")
		issues.Use(middleware.JWTAuth(authService))
		{
			issues.POST("", issueHandler.Create)
			issues.GET("", issueHandler.List)
			issues.PATCH("/:id", middleware.RequireCoordinator(), issueHandler.UpdateStatus)
			issues.DELETE("/:id", middleware.RequireOrganizer(), issueHandler.Delete)
		}

		emergency := api.Group("/emergency")
		emergency.Use(middleware.JWTAuth(authService))
		{
			emergency.POST("", emergencyHandler.Create)
			emergency.GET("", emergencyHandler.List)
			emergency.PATCH("/:id/acknowledge", middleware.RequireCoordinator(), emergencyHandler.Acknowledge)
			emergency.DELETE("/:id", middleware.RequireOrganizer(), emergencyHandler.Delete)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService), middleware.RequireOrganizer())
		{
			admin.POST("/rooms/:roomNumber/teams", adminHandler.CreateTeam)
			admin.DELETE("/teams/:teamId", adminHandler.DeleteTeam)
			admin.POST("/teams/:teamId/members", adminHandler.AddMember)
			admin.DELETE("/members/:memberId", adminHandler.DeleteMember)
		}
	}

	log.Printf("server running on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
