package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yusufkecer/fittrack-backend/internal/handler"
	"github.com/yusufkecer/fittrack-backend/internal/metrics"
	"github.com/yusufkecer/fittrack-backend/internal/middleware"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type routes struct {
	log            *zap.Logger
	metrics        *metrics.Metrics
	tokens         middleware.TokenParser
	accounts       middleware.AccountChecker
	proxies        middleware.TrustedProxies
	apiKey         string
	allowedOrigins []string
	loginLimiter   *middleware.RateLimiter
	forgotLimiter  *middleware.RateLimiter
	resetLimiter   *middleware.RateLimiter

	health       *handler.HealthHandler
	auth         *handler.AuthHandler
	workouts     *handler.WorkoutHandler
	goals        *handler.GoalHandler
	reminders    *handler.ReminderHandler
	measurements *handler.MeasurementHandler
	gallery      *handler.GalleryHandler
	timers       *handler.TimerHandler
	shopping     *handler.ShoppingHandler
	settings     *handler.SettingsHandler
	dashboard    *handler.DashboardHandler
	ai           *handler.AIHandler
}

// newRouter builds the full API. CORS wraps the router itself so preflight
// requests are answered even for paths mux would not match.
func newRouter(rt routes) http.Handler {
	r := mux.NewRouter()
	r.Use(rt.metrics.Instrument)

	r.Handle("/metrics", rt.metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/health", rt.health.Check).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.APIKey(rt.apiKey))

	// Public auth
	api.HandleFunc("/auth/register", rt.auth.Register).Methods(http.MethodPost)
	api.Handle("/auth/login", rt.loginLimiter.Middleware(http.HandlerFunc(rt.auth.Login))).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", rt.auth.Refresh).Methods(http.MethodPost)
	api.Handle("/auth/forgot-password", rt.forgotLimiter.Middleware(http.HandlerFunc(rt.auth.ForgotPassword))).Methods(http.MethodPost)
	api.Handle("/auth/reset-password", rt.resetLimiter.Middleware(http.HandlerFunc(rt.auth.ResetPassword))).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthRequired(rt.tokens, rt.accounts))

	protected.HandleFunc("/auth/logout", rt.auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", rt.auth.Me).Methods(http.MethodGet)
	protected.HandleFunc("/auth/change-password", rt.auth.ChangePassword).Methods(http.MethodPut)
	protected.HandleFunc("/auth/deactivate", rt.auth.Deactivate).Methods(http.MethodDelete)

	protected.HandleFunc("/workouts", rt.workouts.List).Methods(http.MethodGet)
	protected.HandleFunc("/workouts", rt.workouts.Create).Methods(http.MethodPost)
	protected.HandleFunc("/workouts/stats", rt.workouts.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/workouts/{id:[0-9]+}", rt.workouts.Get).Methods(http.MethodGet)
	protected.HandleFunc("/workouts/{id:[0-9]+}", rt.workouts.Update).Methods(http.MethodPut)
	protected.HandleFunc("/workouts/{id:[0-9]+}", rt.workouts.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/goals/reminders", rt.reminders.List).Methods(http.MethodGet)
	protected.HandleFunc("/goals/reminders", rt.reminders.Create).Methods(http.MethodPost)
	protected.HandleFunc("/goals/reminders/{id:[0-9]+}", rt.reminders.Update).Methods(http.MethodPut)
	protected.HandleFunc("/goals/reminders/{id:[0-9]+}", rt.reminders.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/goals/reminders/{id:[0-9]+}/toggle", rt.reminders.Toggle).Methods(http.MethodPatch)
	protected.HandleFunc("/goals", rt.goals.List).Methods(http.MethodGet)
	protected.HandleFunc("/goals", rt.goals.Create).Methods(http.MethodPost)
	protected.HandleFunc("/goals/{id:[0-9]+}", rt.goals.Get).Methods(http.MethodGet)
	protected.HandleFunc("/goals/{id:[0-9]+}", rt.goals.Update).Methods(http.MethodPut)
	protected.HandleFunc("/goals/{id:[0-9]+}", rt.goals.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/goals/{id:[0-9]+}/progress", rt.goals.UpdateProgress).Methods(http.MethodPatch)

	protected.HandleFunc("/measurements", rt.measurements.List).Methods(http.MethodGet)
	protected.HandleFunc("/measurements", rt.measurements.Create).Methods(http.MethodPost)
	protected.HandleFunc("/measurements/latest", rt.measurements.Latest).Methods(http.MethodGet)
	protected.HandleFunc("/measurements/profile", rt.measurements.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/measurements/profile", rt.measurements.PutProfile).Methods(http.MethodPut)
	protected.HandleFunc("/measurements/{id:[0-9]+}", rt.measurements.Get).Methods(http.MethodGet)
	protected.HandleFunc("/measurements/{id:[0-9]+}", rt.measurements.Update).Methods(http.MethodPut)
	protected.HandleFunc("/measurements/{id:[0-9]+}", rt.measurements.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/gallery", rt.gallery.ListPhotos).Methods(http.MethodGet)
	protected.HandleFunc("/gallery", rt.gallery.CreatePhoto).Methods(http.MethodPost)
	protected.HandleFunc("/gallery/comparisons", rt.gallery.ListComparisons).Methods(http.MethodGet)
	protected.HandleFunc("/gallery/comparisons", rt.gallery.CreateComparison).Methods(http.MethodPost)
	protected.HandleFunc("/gallery/comparisons/{id:[0-9]+}", rt.gallery.GetComparison).Methods(http.MethodGet)
	protected.HandleFunc("/gallery/comparisons/{id:[0-9]+}", rt.gallery.UpdateComparison).Methods(http.MethodPut)
	protected.HandleFunc("/gallery/comparisons/{id:[0-9]+}", rt.gallery.DeleteComparison).Methods(http.MethodDelete)
	protected.HandleFunc("/gallery/{id:[0-9]+}", rt.gallery.GetPhoto).Methods(http.MethodGet)
	protected.HandleFunc("/gallery/{id:[0-9]+}", rt.gallery.UpdatePhoto).Methods(http.MethodPut)
	protected.HandleFunc("/gallery/{id:[0-9]+}", rt.gallery.DeletePhoto).Methods(http.MethodDelete)

	protected.HandleFunc("/timer", rt.timers.List).Methods(http.MethodGet)
	protected.HandleFunc("/timer", rt.timers.Create).Methods(http.MethodPost)
	protected.HandleFunc("/timer/{id:[0-9]+}", rt.timers.Get).Methods(http.MethodGet)
	protected.HandleFunc("/timer/{id:[0-9]+}", rt.timers.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/timer/{id:[0-9]+}/start", rt.timers.Start).Methods(http.MethodPost)
	protected.HandleFunc("/timer/{id:[0-9]+}/pause", rt.timers.Pause).Methods(http.MethodPost)
	protected.HandleFunc("/timer/{id:[0-9]+}/resume", rt.timers.Resume).Methods(http.MethodPost)
	protected.HandleFunc("/timer/{id:[0-9]+}/finish", rt.timers.Finish).Methods(http.MethodPost)
	protected.HandleFunc("/timer/{id:[0-9]+}/exercises", rt.timers.UpdateExercises).Methods(http.MethodPut)

	protected.HandleFunc("/shopping", rt.shopping.List).Methods(http.MethodGet)
	protected.HandleFunc("/shopping", rt.shopping.Create).Methods(http.MethodPost)
	protected.HandleFunc("/shopping/{id:[0-9]+}", rt.shopping.Get).Methods(http.MethodGet)
	protected.HandleFunc("/shopping/{id:[0-9]+}", rt.shopping.Update).Methods(http.MethodPut)
	protected.HandleFunc("/shopping/{id:[0-9]+}", rt.shopping.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/shopping/{id:[0-9]+}/items", rt.shopping.AddItem).Methods(http.MethodPost)
	protected.HandleFunc("/shopping/{id:[0-9]+}/items/{index:[0-9]+}/toggle", rt.shopping.ToggleItem).Methods(http.MethodPatch)
	protected.HandleFunc("/shopping/{id:[0-9]+}/items/{index:[0-9]+}", rt.shopping.RemoveItem).Methods(http.MethodDelete)

	protected.HandleFunc("/settings", rt.settings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/settings", rt.settings.Put).Methods(http.MethodPut)
	protected.HandleFunc("/settings/reset", rt.settings.Reset).Methods(http.MethodPost)

	protected.HandleFunc("/dashboard/stats", rt.dashboard.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/history", rt.dashboard.History).Methods(http.MethodGet)

	protected.HandleFunc("/ai/chat", rt.ai.Chat).Methods(http.MethodPost)
	protected.HandleFunc("/ai/workout-plan", rt.ai.WorkoutPlan).Methods(http.MethodPost)
	protected.HandleFunc("/ai/nutrition", rt.ai.Nutrition).Methods(http.MethodPost)
	protected.HandleFunc("/ai/motivation", rt.ai.Motivation).Methods(http.MethodGet)

	var h http.Handler = r
	h = middleware.MaxBytes(maxBodyBytes)(h)
	h = middleware.SecurityHeaders(h)
	h = middleware.RequestLogger(rt.log)(h)
	h = middleware.RealIP(rt.proxies)(h)
	h = middleware.CORS(rt.allowedOrigins)(h)
	return h
}
