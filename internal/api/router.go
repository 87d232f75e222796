package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/open-academy/academy-back/docs"
	"github.com/open-academy/academy-back/internal/auth"
	"github.com/open-academy/academy-back/internal/config"
	"github.com/open-academy/academy-back/internal/db"
	"github.com/open-academy/academy-back/internal/models"
	"github.com/open-academy/academy-back/internal/storage"
)

// @title           Academy API
// @version         1.0
// @description     Backend for the academy management app: faculties, classrooms, attendance and homework.
// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(cfg *config.Config, store storage.Storage) *gin.Engine {
	auth.InitGoogle(cfg)

	r := gin.Default()

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		if err := db.PingDB(); err != nil {
			c.JSON(500, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/register", auth.RegisterHandler(cfg))
	r.POST("/auth/login", auth.LoginHandler(cfg))
	r.POST("/auth/refresh", auth.RefreshHandler(cfg))
	r.GET("/auth/google/login", auth.GoogleLoginHandler())
	r.GET("/auth/google/callback", auth.GoogleCallbackHandler(cfg))

	// Authenticated, any role
	authed := r.Group("/")
	authed.Use(auth.AuthMiddleware(cfg))
	{
		authed.GET("/me", GetMe)
		authed.GET("/subjects", ListSubjects)
		authed.GET("/faculties", ListFaculties)
		authed.GET("/faculties/:id", GetFaculty)
		authed.GET("/classrooms/:id/calendar", ListCalendar)
		authed.GET("/classrooms/:id/homework", ListHomework)
		authed.GET("/classrooms/:id/syllabus", DownloadSyllabus(store))
	}

	student := r.Group("/student")
	student.Use(auth.AuthMiddleware(cfg), auth.RequireRole(models.RoleStudent))
	{
		student.POST("/faculty", SelectFaculty(cfg))
		student.GET("/faculty", CurrentFaculty)
		student.GET("/classrooms", MyClassrooms)
		student.GET("/classrooms/available", AvailableClassrooms)
		student.POST("/classrooms/:id/join", JoinClassroom)
		student.POST("/homework/:id/submit", SubmitHomework)
		student.GET("/homework/todo", HomeworkTodo)
	}

	lecturer := r.Group("/lecturer")
	lecturer.Use(auth.AuthMiddleware(cfg), auth.RequireRole(models.RoleLecturer))
	{
		lecturer.POST("/classrooms", CreateClassroom(cfg, store))
		lecturer.GET("/classrooms", OwnedClassrooms)
		lecturer.POST("/classrooms/:id/calendar", DefineCalendar(cfg))
		lecturer.POST("/classrooms/:id/homework", PublishHomework)
		lecturer.GET("/classrooms/:id/attendance.xlsx", ExportRegister)
		lecturer.POST("/sessions/:id/attendance", RecordAttendance)
		lecturer.GET("/sessions/:id/attendance", SessionAttendance)
	}

	admin := r.Group("/admin")
	admin.Use(auth.AuthMiddleware(cfg), auth.RequireRole(models.RoleAdmin))
	{
		admin.PATCH("/users/:id/authorize", AuthorizeUser)
		admin.POST("/subjects", CreateSubject)
		admin.POST("/faculties", CreateFaculty)
	}

	return r
}
