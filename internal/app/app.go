// Package app wires repositories, services and handlers into a gin engine.
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"equiptrack/internal/cache"
	"equiptrack/internal/domain/auth"
	"equiptrack/internal/domain/equipment"
	"equiptrack/internal/domain/history"
	"equiptrack/internal/domain/reservation"
	"equiptrack/internal/domain/status"
	"equiptrack/internal/middleware"
	"equiptrack/internal/pkg/jwt"
)

type Options struct {
	DB          *gorm.DB
	Tokens      *jwt.Service
	Logger      *zap.Logger
	BusySlots   cache.BusySlots
	CORSOrigins []string
}

func NewRouter(opts Options) *gin.Engine {
	db, log := opts.DB, opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	statuses := status.NewDictionary(db)
	userRepo := auth.NewRepository(db)
	equipmentRepo := equipment.NewRepository(db)
	historyRepo := history.NewRepository(db)
	recorder := history.NewRecorder(historyRepo, statuses)

	authHandler := auth.NewHandler(auth.NewService(userRepo, opts.Tokens, log))
	equipmentHandler := equipment.NewHandler(equipment.NewService(db, equipmentRepo, statuses, log))
	historyHandler := history.NewHandler(history.NewService(db, historyRepo, recorder, equipmentRepo, userRepo, statuses, log))
	reservationHandler := reservation.NewHandler(reservation.NewCoordinator(db, reservation.Deps{
		Repo:      reservation.NewRepository(db),
		Checker:   reservation.NewChecker(db),
		Equipment: equipmentRepo,
		Users:     userRepo,
		Statuses:  statuses,
		Recorder:  recorder,
		Busy:      opts.BusySlots,
		Logger:    log,
	}))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(opts.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(opts.Tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			equipmentHandler.RegisterRoutes(protected, middleware.RequireCapability(auth.ManageEquipment))
			historyHandler.RegisterRoutes(protected, middleware.RequireCapability(auth.RecordHistory))
			reservationHandler.RegisterRoutes(protected)
		}
	}

	return r
}
