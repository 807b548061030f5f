// File: telecare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telecare/config"
	"telecare/cron"
	"telecare/database"
	chatRepoPkg "telecare/database/repository/chatmessage"
	consultationRepoPkg "telecare/database/repository/consultation"
	paiementRepoPkg "telecare/database/repository/paiement"
	rendezvousRepoPkg "telecare/database/repository/rendezvous"
	userRepoPkg "telecare/database/repository/user"
	"telecare/handlers"
	"telecare/routes"
	"telecare/services/chat"
	"telecare/services/notification"
	"telecare/services/payment"
	"telecare/services/session"
	"telecare/services/storage"
	"telecare/services/tasks"
	"telecare/signaling"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	stripe.Key = config.AppConfig.StripeKey

	documentStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize document storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	rdvRepo := rendezvousRepoPkg.NewMongoRendezVousRepo()
	consRepo := consultationRepoPkg.NewMongoConsultationRepo()
	payRepo := paiementRepoPkg.NewMongoPaiementRepo()
	msgRepo := chatRepoPkg.NewMongoChatMessageRepo()
	usrRepo := userRepoPkg.NewCachedUserRepo(
		userRepoPkg.NewMongoUserRepo(),
		utils.GetCacheClient(),
		10*time.Minute,
	)

	// reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := &tasks.AsynqReminderScheduler{Client: asynqClient, Logger: logger}
	cron.InitReminderWorker(&notification.LogNotificationService{Logger: logger})

	// services.
	sessionService := &session.DefaultSessionService{
		RdvRepo:   rdvRepo,
		ConsRepo:  consRepo,
		Reminders: reminderScheduler,
		Logger:    logger,
	}

	// signaling relay.
	hub := signaling.NewHub(sessionService, logger)
	go hub.Run()

	paymentService := &payment.DefaultPaymentService{
		Sessions:     sessionService,
		RdvRepo:      rdvRepo,
		ConsRepo:     consRepo,
		PaiementRepo: payRepo,
		UserRepo:     usrRepo,
		Checkout: payment.NewStripeCheckoutProvider(
			config.AppConfig.Currency,
			config.AppConfig.StripeSuccessURL,
			config.AppConfig.StripeCancelURL,
		),
		DefaultPrice: config.AppConfig.DefaultSessionPrice,
		Logger:       logger,
	}

	chatService := &chat.DefaultChatService{
		Repo:      msgRepo,
		UserRepo:  usrRepo,
		Broadcast: hub,
		Logger:    logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		RendezVous: &handlers.RendezVousHandler{
			Repo:         rdvRepo,
			Sessions:     sessionService,
			DefaultPrice: config.AppConfig.DefaultSessionPrice,
		},
		Consultation: &handlers.ConsultationHandler{Repo: consRepo, Storage: documentStorage},
		Paiement:     &handlers.PaiementHandler{Repo: payRepo, Payments: paymentService},
		Session:      &handlers.SessionHandler{Sessions: sessionService, Payments: paymentService},
		Chat:         &handlers.ChatHandler{Chat: chatService},
		User:         &handlers.UserHandler{Repo: usrRepo},
	}

	routes.RegisterRoutes(router, handlerBundle, hub)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
