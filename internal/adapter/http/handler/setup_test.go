package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	. "taskapi/pkg/test"

	"taskapi/internal/adapter/database/sqlite"
	"taskapi/internal/adapter/database/sqlite/repository"
	"taskapi/internal/adapter/http/handler"
	"taskapi/internal/adapter/http/middleware"
	"taskapi/internal/core/dispatch"
	"taskapi/internal/core/port"
	"taskapi/internal/core/service"
	"taskapi/internal/core/telemetry"
	"taskapi/internal/core/util"
	"taskapi/pkg/auth"
)

const signingKey = "0123456789abcdef0123456789abcdef"

type testApp struct {
	DB       *sqlite.DB
	Router   *gin.Engine
	Tokens   *auth.TokenService
	TaskRepo port.TaskRepository
	UserRepo port.UserRepository
}

func newTestApp() *testApp {
	gin.SetMode(gin.TestMode)

	db := InitTestDB()
	probe := telemetry.NewNoOpProbe()

	tokens, err := auth.NewTokenService(auth.Config{SigningKey: signingKey, TTL: time.Hour})

	if err != nil {
		panic(err)
	}

	userRepo := repository.NewUserRepository(db, probe)
	taskRepo := repository.NewTaskRepository(db, probe)

	d := dispatch.New(probe)
	authSvc := service.NewAuthService(userRepo, util.NewBcryptHasher(bcrypt.MinCost), tokens, probe)
	taskSvc := service.NewTaskService(taskRepo, probe)

	if err := service.Register(d, authSvc, taskSvc); err != nil {
		panic(err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CurrentMiddleware())

	health := handler.NewHealthHandler(db, "sqlite")
	router.GET("/health", health.Health)

	authHandler := handler.NewAuthHandler(d)
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)

	taskHandler := handler.NewTaskHandler(d)
	protected := router.Group("/api/tasks")
	protected.Use(auth.GinJwtMiddleware(tokens))
	{
		protected.GET("", taskHandler.GetAllTasks)
		protected.POST("", taskHandler.CreateTask)
		protected.GET("/:id", taskHandler.GetTask)
		protected.PUT("/:id", taskHandler.UpdateTask)
		protected.PATCH("/:id", taskHandler.UpdateTask)
		protected.DELETE("/:id", taskHandler.DeleteTask)
	}

	return &testApp{
		DB:       db,
		Router:   router,
		Tokens:   tokens,
		TaskRepo: taskRepo,
		UserRepo: userRepo,
	}
}

func (a *testApp) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	return rr
}

func decode[T any](rr *httptest.ResponseRecorder) T {
	var out T
	_ = json.Unmarshal(rr.Body.Bytes(), &out)

	return out
}

type envelope[T any] struct {
	Data T `json:"data"`
}

