package routes

import (
	"context"
	"errors"
	"net/http"

	"SmartCampus/internal/admin"
	"SmartCampus/internal/auth"
	"SmartCampus/internal/chat"
	"SmartCampus/internal/config"
	"SmartCampus/internal/contact"
	"SmartCampus/internal/notification"
	"SmartCampus/internal/room"
	"SmartCampus/internal/subject"
	"SmartCampus/internal/web"
	"SmartCampus/pkg/middleware"
	"SmartCampus/pkg/validate"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var EchoModules = fx.Module("echo",
	fx.Provide(config.Load),
	fx.Provide(config.NewLogger),
	fx.Provide(config.NewMongoDatabase),
	fx.Provide(NewSigner),
	fx.Provide(middleware.NewEnforcer),
	fx.Provide(web.NewRenderer),
	fx.Provide(NewEchoServer),
	fx.Provide(fx.Annotate(config.NewResendMailer, fx.As(new(config.Mailer)))),
	fx.Provide(fx.Annotate(chat.NewClient, fx.As(new(chat.Asker)))),

	fx.Provide(fx.Annotate(notification.NewMongoRepository, fx.As(new(notification.Repository)))),
	fx.Provide(notification.NewNotificationService),
	fx.Provide(notification.NewNotificationHandler),

	fx.Provide(fx.Annotate(room.NewMongoRepository, fx.As(new(room.Repository)))),
	fx.Provide(room.NewRoomHandler),

	fx.Provide(fx.Annotate(subject.NewMongoRepository, fx.As(new(subject.Repository)))),
	fx.Provide(subject.NewSubjectHandler),

	fx.Provide(fx.Annotate(admin.NewMongoRepository, fx.As(new(admin.Repository)))),
	fx.Provide(admin.NewService),
	fx.Provide(admin.NewAdminHandler),

	fx.Provide(contact.NewService),
	fx.Provide(contact.NewHandler),
	fx.Provide(chat.NewHandler),
	fx.Provide(web.NewHandler),

	fx.Invoke(EnsureIndexes),
	fx.Invoke(RegisterRoutes))

func NewSigner(cfg *config.Config) *auth.Signer {
	return auth.NewSigner([]byte(cfg.JWTSecret), cfg.JWTTTL)
}

func NewEchoServer(lc fx.Lifecycle, cfg *config.Config, renderer *web.Renderer, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validate.New()
	e.Renderer = renderer
	middleware.SetupMiddleware(e, cfg.AllowedOrigins, logger)

	addr := ":" + cfg.Port
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("server running", zap.String("addr", "http://localhost"+addr))
			go func() {
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start the server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

// EnsureIndexes creates the collection indexes before the server accepts
// requests.
func EnsureIndexes(lc fx.Lifecycle, db *mongo.Database) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, r := range []interface{ EnsureIndexes(context.Context) error }{
				notification.NewMongoRepository(db),
				room.NewMongoRepository(db),
				subject.NewMongoRepository(db),
				admin.NewMongoRepository(db),
			} {
				if err := r.EnsureIndexes(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

type Handlers struct {
	fx.In

	Notification *notification.NotificationHandler
	Room         *room.RoomHandler
	Subject      *subject.SubjectHandler
	Admin        *admin.AdminHandler
	Contact      *contact.Handler
	Chat         *chat.Handler
	Web          *web.Handler
}

func RegisterRoutes(e *echo.Echo, cfg *config.Config, signer *auth.Signer, enforcer *casbin.Enforcer, logger *zap.Logger, h Handlers) {
	h.Web.Register(e, middleware.Guard(middleware.DefaultGuardConfig))
	// Browser forms cannot send the API key; these answer with redirects.
	e.POST(admin.LoginPage, h.Admin.LoginForm)
	e.POST("/logout", h.Admin.LogoutForm)

	api := e.Group("/api", middleware.APIKey(cfg.APIKey))
	api.POST("/auth/login", h.Admin.Login)
	api.POST("/auth/logout", h.Admin.Logout)
	api.GET("/rooms", h.Room.List)
	api.GET("/rooms/:id", h.Room.Get)
	api.GET("/subjects", h.Subject.List)
	api.GET("/subjects/:id", h.Subject.Get)
	api.POST("/contact", h.Contact.Submit)
	api.POST("/chat", h.Chat.Chat)

	protected := api.Group("", middleware.JWT(signer), middleware.RBAC(enforcer, logger))
	protected.GET("/auth/me", h.Admin.Me)

	protected.GET("/notifications", h.Notification.List)
	protected.POST("/notifications", h.Notification.Create)
	protected.PUT("/notifications/read-all", h.Notification.MarkAllRead)
	protected.PUT("/notifications/:id/read", h.Notification.MarkRead)

	protected.POST("/rooms", h.Room.Create)
	protected.PUT("/rooms/:id", h.Room.Update)
	protected.DELETE("/rooms/:id", h.Room.Delete)

	protected.POST("/subjects", h.Subject.Create)
	protected.PUT("/subjects/:id", h.Subject.Update)
	protected.DELETE("/subjects/:id", h.Subject.Delete)

	protected.GET("/admins", h.Admin.List)
	protected.POST("/admins", h.Admin.Create)
}
