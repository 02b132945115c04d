package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/rs/cors"

	"github.com/campusbot/UniBotAPI/internal/adapter/utils"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/handlers"
	"github.com/campusbot/UniBotAPI/internal/middleware"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string, h *handlers.Handler, corsOrigins []string) {
	_logger = logger_i.NewLogger("Server")

	rc := utils.GetRouter()
	registerRoutes(rc, h)

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Trace-Id"},
		AllowCredentials: true,
	})

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      c.Handler(rc.Router),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func registerRoutes(rc utils.RouterClient, h *handlers.Handler) {
	r := rc.Router

	// public
	r.Get("/", middleware.Public(h.Root))
	r.Get("/health", middleware.Public(h.Health))
	r.Get("/health/detailed", middleware.Public(h.HealthDetailed))
	r.Post("/register", middleware.Public(h.Register))
	r.Post("/login", middleware.Public(h.Login))
	r.Post("/query", middleware.OptionalAuth(h.Query))
	r.Get("/faqs", middleware.Public(h.ListFAQs))
	r.Post("/collect-query", middleware.OptionalAuth(h.CollectQuery))
	r.Get("/reviews", middleware.Public(h.ListReviews))
	r.Get("/reviews/stats", middleware.Public(h.ReviewStats))
	r.Post("/analytics/log-query", middleware.Public(h.LogQuery))

	// authenticated
	r.Post("/validate-token", middleware.Authed(h.ValidateToken))
	r.Post("/logout", middleware.Authed(h.Logout))
	r.Get("/protected-test", middleware.Authed(h.ProtectedTest))
	r.Post("/reviews", middleware.Authed(h.CreateReview))
	r.Get("/reviews/my-review", middleware.Authed(h.MyReview))
	r.Put("/reviews/my-review", middleware.Authed(h.UpdateMyReview))
	r.Delete("/reviews/{id}", middleware.Authed(h.DeleteReview))
	r.Post("/questionnaire", middleware.Authed(h.SubmitQuestionnaire))
	r.Get("/my-questionnaires", middleware.Authed(h.MyQuestionnaires))
	r.Put("/questionnaires/{id}/mark-read", middleware.Authed(h.MarkQuestionnaireRead))
	r.Delete("/questionnaires/{id}", middleware.Authed(h.DeleteQuestionnaire))
	r.Get("/questionnaire-stats", middleware.Authed(h.QuestionnaireStats))
	r.Get("/user/unread-answers-count", middleware.Authed(h.UnreadAnswersCount))
	r.Get("/analytics/overview", middleware.Authed(h.AnalyticsOverview))
	r.Get("/analytics/top-faqs", middleware.Authed(h.TopFAQs))
	r.Get("/analytics/user-activity", middleware.Authed(h.UserActivity))
	r.Post("/analytics/convert-to-faq", middleware.Authed(h.ConvertToFAQ))
	r.Delete("/analytics/dismiss-failed-query", middleware.Authed(h.DismissFailedQuery))

	// admin
	r.Post("/faqs", middleware.Admin(h.CreateFAQ))
	r.Delete("/faqs/{id}", middleware.Admin(h.DeleteFAQ))
	r.Post("/retrain", middleware.Admin(h.Retrain))
	r.Get("/retrain/status", middleware.Admin(h.RetrainStatus))
	r.Get("/users", middleware.Admin(h.ListUsers))
	r.Get("/users/count", middleware.Admin(h.UserCount))
	r.Get("/admin/collected-queries", middleware.Admin(h.ListCollectedQueries))
	r.Put("/admin/collected-queries/{id}/mark-used", middleware.Admin(h.MarkQueryUsed))
	r.Delete("/admin/collected-queries/{id}", middleware.Admin(h.DeleteCollectedQuery))
	r.Get("/admin/collected-queries/export", middleware.Admin(h.ExportCollectedQueries))
	r.Get("/admin/collected-queries/stats", middleware.Admin(h.CollectedQueryStats))
	r.Post("/admin/collected-queries/{id}/reply-and-add-faq", middleware.Admin(h.ReplyAndAddFAQ))
	r.Get("/admin/questionnaires", middleware.Admin(h.AdminListQuestionnaires))
	r.Post("/admin/questionnaires/{id}/reply", middleware.Admin(h.ReplyToQuestionnaire))
	r.Get("/admin/unread-questionnaires-count", middleware.Admin(h.AdminUnreadQuestionnairesCount))
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Graceful shutdown complete")
	case <-ctx.Done():
		_logger.Info("Force shut down")
		os.Exit(1)
	}
}
