package router

import (
	"net/http"

	"github.com/BerylCAtieno/contract-analysis-api/internal/handlers"
	"github.com/BerylCAtieno/contract-analysis-api/internal/middleware"
	"github.com/BerylCAtieno/contract-analysis-api/internal/services"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"

	"github.com/gorilla/mux"
)

type Options struct {
	Services      *services.Services
	Authenticator *middleware.Authenticator
	HealthChecks  map[string]middleware.HealthChecker
	CORSOrigins   []string
	MaxFileSize   int64
	Logger        *utils.Logger
}

func NewRouter(opts Options) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Recovery(opts.Logger))

	docHandler := handlers.NewDocumentHandler(opts.Services.Documents, opts.MaxFileSize, opts.Logger)
	analysisHandler := handlers.NewAnalysisHandler(opts.Services.Analyses, opts.MaxFileSize, opts.Logger)
	reportHandler := handlers.NewReportHandler(opts.Services.Reports, opts.Logger)
	notificationHandler := handlers.NewNotificationHandler(opts.Services.Notifications, opts.Logger)
	userHandler := handlers.NewUserHandler(opts.Logger)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", middleware.HealthHandler(opts.HealthChecks)).Methods(http.MethodGet)

	// Anonymous reports are accepted; a token, when sent, must be valid.
	api.Handle("/reports", opts.Authenticator.Optional(http.HandlerFunc(reportHandler.CreateReport))).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(opts.Authenticator.Required)

	authed.HandleFunc("/me", userHandler.Me).Methods(http.MethodGet)

	// Documents and analyses
	authed.HandleFunc("/documents/upload", docHandler.UploadDocument).Methods(http.MethodPost)
	authed.HandleFunc("/documents", docHandler.ListDocuments).Methods(http.MethodGet)
	authed.HandleFunc("/documents/{id}", docHandler.GetDocument).Methods(http.MethodGet)
	authed.HandleFunc("/documents/{id}/file", docHandler.DownloadDocument).Methods(http.MethodGet)
	authed.HandleFunc("/documents/{id}/analyze", docHandler.AnalyzeDocument).Methods(http.MethodPost)
	authed.HandleFunc("/analyze-text", analysisHandler.AnalyzeText).Methods(http.MethodPost)
	authed.HandleFunc("/analyze", analysisHandler.AnalyzeFile).Methods(http.MethodPost)
	authed.HandleFunc("/analyses", analysisHandler.ListAnalyses).Methods(http.MethodGet)

	// Reports and notifications
	authed.HandleFunc("/reports", reportHandler.ListReports).Methods(http.MethodGet)
	authed.HandleFunc("/reports/{id}", reportHandler.GetReport).Methods(http.MethodGet)
	authed.Handle("/reports/{id}", middleware.RequireStaff(http.HandlerFunc(reportHandler.UpdateReport))).Methods(http.MethodPatch)
	authed.HandleFunc("/notifications", notificationHandler.CreateNotification).Methods(http.MethodPost)
	authed.HandleFunc("/notifications", notificationHandler.ListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods(http.MethodPatch)

	// CORS wraps the router so preflight requests are answered before route matching.
	return middleware.CORS(opts.CORSOrigins)(r)
}
