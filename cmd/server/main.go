package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"

	"github.com/carevantage/staffing-service/internal/app"
	"github.com/carevantage/staffing-service/internal/config"
	"github.com/carevantage/staffing-service/internal/controllers"
	"github.com/carevantage/staffing-service/internal/middleware"
	"github.com/carevantage/staffing-service/internal/repositories"
	"github.com/carevantage/staffing-service/internal/routes"
	"github.com/carevantage/staffing-service/internal/services"
	"github.com/carevantage/staffing-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize staffing-service:", err)
	}
	defer application.Close()

	workerRepo := repositories.NewWorkerRepository(application.DB)
	credRepo := repositories.NewCredentialRepository(application.DB)
	catalogRepo := repositories.NewRequiredCatalogRepository(application.DB)
	shiftRepo := repositories.NewShiftRepository(application.DB)

	var sgClient *sendgrid.Client
	if cfg.SendGridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	var twClient *twilio.RestClient
	if cfg.TwilioAccountSID != "" {
		twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	notifier := services.NewNotificationService(sgClient, twClient, cfg.FromEmail, cfg.FromPhone)

	complianceService := services.NewComplianceService(workerRepo, credRepo, catalogRepo)
	bookingGate := services.NewBookingGate(shiftRepo, complianceService)
	credentialService := services.NewCredentialService(credRepo)
	shiftService := services.NewShiftService(shiftRepo, workerRepo, bookingGate, notifier)

	if cfg.SeedTestData {
		if err := app.SeedTestData(
			context.Background(),
			application.DB,
			workerRepo,
			credentialService,
			shiftService,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	expiryScheduler := services.NewExpirySchedulerService(credRepo, workerRepo, notifier)
	if cfg.RunExpirySweep {
		if err := expiryScheduler.Start(); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to start expiry sweep")
		}
		defer expiryScheduler.Stop()
	}

	credentialsController := controllers.NewCredentialsController(credentialService)
	complianceController := controllers.NewComplianceController(complianceService, bookingGate)
	shiftsController := controllers.NewShiftsController(shiftService)
	agencyController := controllers.NewAgencyShiftsController(shiftService)
	healthController := controllers.NewHealthController()

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.CredentialsBase, credentialsController.ListCredentialsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CredentialsBase, credentialsController.UploadCredentialHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.CredentialsProgress, credentialsController.UpdateProgressHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.CredentialsRenew, credentialsController.StartRenewalHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Compliance, complianceController.GetOwnVerdictHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.ShiftsOpen, shiftsController.ListOpenShiftsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ShiftsMy, shiftsController.ListMyShiftsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ShiftsApply, shiftsController.ApplyToShiftHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ShiftsCanBook, complianceController.CanBookHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.AgencyShifts, agencyController.PostShiftHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AgencyShifts, agencyController.ListAgencyShiftsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AgencyShiftsDecide, agencyController.DecideApplicationHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AgencyShiftsComplete, agencyController.CompleteShiftHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AgencyShiftsCancel, agencyController.CancelShiftHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AgencyWorkerCompliance, complianceController.GetWorkerVerdictHandler).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(router)

	addr := ":" + cfg.AppPort
	utils.Logger.Infof("%s listening on %s", config.AppName, addr)
	if err := http.ListenAndServe(addr, corsHandler); err != nil {
		utils.Logger.Fatal("Server exited:", err)
	}
}
