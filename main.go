package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zenflowAPI/handlers"
	"zenflowAPI/internal/mailer"
	"zenflowAPI/internal/mongodb"
	"zenflowAPI/internal/notification"
	"zenflowAPI/internal/store"
	"zenflowAPI/middleware"
	"zenflowAPI/services"

	_ "net/http/pprof"
)

var (
	memStore            *store.Store
	mongoClient         *mongodb.Client
	authService         *services.AuthService
	userService         *services.UserService
	routineService      *services.RoutineService
	progressService     *services.ProgressService
	notificationService *services.NotificationService
	reminderScheduler   *services.ReminderScheduler
	fcmService          *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	memStore = store.New()
	log.Println("In-memory store initialized with seeded routine catalog")

	if mongoURI := os.Getenv("MONGO_URI"); mongoURI != "" {
		dbName := os.Getenv("MONGO_DB")
		if dbName == "" {
			dbName = "zenflow"
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		mongoClient, err = mongodb.Connect(ctx, mongoURI, dbName)
		if err != nil {
			log.Printf("Warning: MongoDB mirror unavailable: %v", err)
			mongoClient = nil
		} else {
			log.Println("Successfully connected to MongoDB mirror")
		}
	} else {
		log.Println("MONGO_URI not set, document mirroring disabled")
	}

	var m mailer.Mailer
	m, err := mailer.NewSMTPMailer()
	if err != nil {
		log.Printf("Warning: SMTP not configured (%v), falling back to mock mailer", err)
		m = &mailer.MockMailer{}
	}

	notificationService = services.NewNotificationService(m)
	authService = services.NewAuthService(memStore, mongoClient, notificationService)
	userService = services.NewUserService(memStore, mongoClient)
	routineService = services.NewRoutineService(memStore)
	progressService = services.NewProgressService(memStore, mongoClient, notificationService)
	reminderScheduler = services.NewReminderScheduler(memStore, notificationService)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		notificationService.Stop()
		reminderScheduler.Stop()
		if mongoClient != nil {
			log.Println("Closing MongoDB connection...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Close(ctx); err != nil {
				log.Printf("MongoDB close error: %v", err)
			}
		}
	}()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	routineHandler := handlers.NewRoutineHandler(routineService)
	progressHandler := handlers.NewProgressHandler(progressService)
	notificationHandler := handlers.NewNotificationHandler(userService, notificationService)
	docsHandler := handlers.NewDocsHandler()

	reminderScheduler.Start()

	r := mux.NewRouter()

	standardRouter := r.PathPrefix("/").Subrouter()

	go middleware.CleanupVisitors()

	standardRouter.Use(middleware.RateLimitMiddleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	assetsDir := "./assets"
	fs := http.FileServer(http.Dir(assetsDir))
	standardRouter.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", fs))
	log.Printf("Serving static files from %s at /assets/", assetsDir)

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "zenflow-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := standardRouter.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/verify-otp", authHandler.VerifyOTP).Methods("POST")
	api.HandleFunc("/auth/resend-otp", authHandler.ResendOTP).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/privacy-policy", docsHandler.ServePrivacyPolicy).Methods("GET")
	api.HandleFunc("/terms-of-services", docsHandler.ServeTermsOfServices).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")
	protected.HandleFunc("/user/stats", userHandler.GetUserStats).Methods("GET")

	protected.HandleFunc("/routines", routineHandler.GetCatalog).Methods("GET")
	protected.HandleFunc("/routines/{id}", routineHandler.GetRoutine).Methods("GET")

	protected.HandleFunc("/progress/complete", progressHandler.RecordCompletion).Methods("POST")
	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/progress/calendar", progressHandler.GetCalendar).Methods("GET")
	protected.HandleFunc("/progress/daily", progressHandler.GetDailyProgress).Methods("GET")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")
	protected.HandleFunc("/notifications/test", notificationHandler.SendTestNotification).Methods("POST")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
