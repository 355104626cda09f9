package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/med-directory/internal/audit"
	"github.com/BruksfildServices01/med-directory/internal/config"
	domainResource "github.com/BruksfildServices01/med-directory/internal/domain/resource"
	"github.com/BruksfildServices01/med-directory/internal/handlers"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	infraRepo "github.com/BruksfildServices01/med-directory/internal/infra/repository"
	"github.com/BruksfildServices01/med-directory/internal/mail"
	"github.com/BruksfildServices01/med-directory/internal/middleware"
	"github.com/BruksfildServices01/med-directory/internal/models"
	"github.com/BruksfildServices01/med-directory/internal/otp"
	"github.com/BruksfildServices01/med-directory/internal/storage"
	ucAppointment "github.com/BruksfildServices01/med-directory/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/med-directory/internal/usecase/auth"
	ucMedia "github.com/BruksfildServices01/med-directory/internal/usecase/media"
	ucResource "github.com/BruksfildServices01/med-directory/internal/usecase/resource"
	ucReview "github.com/BruksfildServices01/med-directory/internal/usecase/review"
	"github.com/BruksfildServices01/med-directory/internal/validators"
)

// Deps are the process-wide collaborators built in main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	OTP     otp.Store
	Mailer  mail.Sender
	Storage storage.ObjectStore
	Audit   *audit.Dispatcher
}

func newService[T any](
	db *gorm.DB,
	def domainResource.Definition,
	opts ...ucResource.Option[T],
) *ucResource.Service[T] {
	return ucResource.NewService[T](infraRepo.NewGormResource[T](db, def), opts...)
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db, cfg := d.DB, d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	// ======================================================
	// SERVICES
	// ======================================================
	regions := newService[models.Region](db, infraRepo.RegionDefinition,
		ucResource.WithNaturalKey(ucResource.RegionKey, httperr.KindBadRequest))
	specialties := newService[models.Specialty](db, infraRepo.SpecialtyDefinition,
		ucResource.WithNaturalKey(ucResource.SpecialtyKey, httperr.KindConflict))
	services := newService[models.Service](db, infraRepo.ServiceDefinition)
	clinicServices := newService[models.ClinicService](db, infraRepo.ClinicServiceDefinition,
		ucResource.WithNaturalKey(ucResource.ClinicServiceKey, httperr.KindConflict),
		ucResource.WithValidator(ucResource.ClinicServiceRefs(db)))

	clinicRepo := infraRepo.NewGormResource[models.Clinic](db, infraRepo.ClinicDefinition)
	clinics := ucResource.NewService[models.Clinic](clinicRepo,
		ucResource.WithNaturalKey(ucResource.ClinicKey, httperr.KindBadRequest))
	doctors := newService[models.Doctor](db, infraRepo.DoctorDefinition,
		ucResource.WithNaturalKey(ucResource.DoctorKey, httperr.KindBadRequest),
		ucResource.WithValidator(ucResource.DoctorRefs(db)))
	users := newService[models.User](db, infraRepo.UserDefinition,
		ucResource.WithNaturalKey(ucResource.UserKey, httperr.KindConflict))
	reviews := newService[models.Review](db, infraRepo.ReviewDefinition)
	appointments := newService[models.Appointment](db, infraRepo.AppointmentDefinition)

	medicationCategories := newService[models.MedicationCategory](db, infraRepo.MedicationCategoryDefinition,
		ucResource.WithNaturalKey(ucResource.MedicationCategoryKey, httperr.KindConflict))
	medicationRepo := infraRepo.NewGormResource[models.Medication](db, infraRepo.MedicationDefinition)
	medications := ucResource.NewService[models.Medication](medicationRepo,
		ucResource.WithNaturalKey(ucResource.MedicationKey, httperr.KindConflict))
	medicationPrices := newService[models.MedicationPrice](db, infraRepo.MedicationPriceDefinition,
		ucResource.WithNaturalKey(ucResource.MedicationPriceKey, httperr.KindConflict),
		ucResource.WithValidator(ucResource.MedicationPriceRefs(db)))
	medicationFAQs := newService[models.MedicationFAQ](db, infraRepo.MedicationFAQDefinition,
		ucResource.WithValidator(ucResource.MedicationFAQRefs(db)))
	pharmacies := newService[models.Pharmacy](db, infraRepo.PharmacyDefinition,
		ucResource.WithNaturalKey(ucResource.PharmacyKey, httperr.KindConflict))

	articles := newService[models.Article](db, infraRepo.ArticleDefinition,
		ucResource.WithNaturalKey(ucResource.ArticleKey, httperr.KindBadRequest))
	promotions := newService[models.Promotion](db, infraRepo.PromotionDefinition,
		ucResource.WithNaturalKey(ucResource.PromotionKey, httperr.KindConflict))
	banners := newService[models.Banner](db, infraRepo.BannerDefinition)
	faqs := newService[models.FAQ](db, infraRepo.FAQDefinition)
	contacts := newService[models.Contact](db, infraRepo.ContactDefinition,
		ucResource.WithNaturalKey(ucResource.ContactKey, httperr.KindBadRequest))

	// ======================================================
	// USE CASES
	// ======================================================
	var domainCheck func(string) bool
	if cfg.ValidateEmailDomain {
		domainCheck = validators.IsEmailDomainValid
	}

	registerUC := ucAuth.NewRegister(userRepo, cfg.BcryptCost, domainCheck)
	loginUC := ucAuth.NewLogin(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	sendOTPUC := ucAuth.NewSendOTP(userRepo, d.OTP, d.Mailer, cfg.OTPTTL)
	verifyOTPUC := ucAuth.NewVerifyOTP(userRepo, d.OTP)

	aggregator := ucReview.NewAggregator(reviewRepo, d.Audit)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit)
	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(appointmentRepo, d.Audit, cfg.Timezone)
	scheduleUC := ucAppointment.NewListDoctorSchedule(appointmentRepo, cfg.Timezone)

	imagesUC := ucMedia.NewImages(d.Storage, clinicRepo, medicationRepo, d.Audit, cfg.ImageMaxWidth)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentFilters := []handlers.ListFilter{
		handlers.EqFilter("status", "status"),
		handlers.EqFilter("user_id", "user_id"),
		handlers.EqFilter("clinic_id", "clinic_id"),
		handlers.EqFilter("doctor_id", "doctor_id"),
		handlers.DayFilter("date", "appointment_date", cfg.Timezone),
	}

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, sendOTPUC, verifyOTPUC)
	meHandler := handlers.NewMeHandler(users, appointments, appointmentFilters...)
	reviewHandler := handlers.NewReviewHandler(reviews, aggregator,
		handlers.IntFilter("rating", "rating", "="),
		handlers.EqFilter("user_id", "user_id"),
		handlers.EqFilter("clinic_id", "clinic_id"),
		handlers.EqFilter("doctor_id", "doctor_id"),
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		appointments,
		createAppointmentUC,
		updateAppointmentUC,
		transitionAppointmentUC,
		scheduleUC,
		appointmentFilters...,
	)
	mediaHandler := handlers.NewMediaHandler(imagesUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// GROUPS
	// ======================================================
	public := r.Group("/")

	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))

	admin := r.Group("/")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.RequireRoles(models.RoleAdmin),
	)

	// ------------------------------
	// AUTH
	// ------------------------------
	public.POST("/auth/register", middleware.OptionalAuth(cfg), authHandler.Register)
	public.POST("/auth/login", authHandler.Login)
	public.POST("/auth/send-otp", authHandler.SendOTP)
	public.POST("/auth/verify-otp", authHandler.VerifyOTP)

	// ------------------------------
	// ME
	// ------------------------------
	secured.GET("/me", meHandler.GetMe)
	secured.PATCH("/me", meHandler.UpdateMe)
	secured.GET("/me/appointments", meHandler.MyAppointments)

	// ------------------------------
	// DIRECTORY
	// ------------------------------
	handlers.NewResourceHandler[models.Region, handlers.RegionRequest](regions).
		Register("/regions", public, admin)
	handlers.NewResourceHandler[models.Specialty, handlers.SpecialtyRequest](specialties).
		Register("/specialties", public, admin)
	handlers.NewResourceHandler[models.Service, handlers.ServiceRequest](services,
		handlers.EqFilter("category", "category"),
	).Register("/services", public, admin)
	handlers.NewResourceHandler[models.ClinicService, handlers.ClinicServiceRequest](clinicServices,
		handlers.EqFilter("clinic_id", "clinic_id"),
		handlers.EqFilter("service_id", "service_id"),
		handlers.FloatFilter("min_price", "price", ">="),
		handlers.FloatFilter("max_price", "price", "<="),
		handlers.IntFilter("duration", "duration_minutes", "="),
	).Register("/clinic-services", public, admin)
	handlers.NewResourceHandler[models.Clinic, handlers.ClinicRequest](clinics,
		handlers.EqFilter("type", "type"),
		handlers.EqFilter("region_id", "region_id"),
	).Register("/clinics", public, admin)
	handlers.NewResourceHandler[models.Doctor, handlers.DoctorRequest](doctors,
		handlers.EqFilter("clinic_id", "clinic_id"),
		handlers.EqFilter("specialty_id", "specialty_id"),
		handlers.IntFilter("min_experience", "experience_years", ">="),
		handlers.FloatFilter("min_rating", "rating", ">="),
	).Register("/doctors", public, admin)

	admin.PATCH("/clinics/:id/image", mediaHandler.ClinicLogo())
	admin.PATCH("/clinics/:id/additional-image", mediaHandler.ClinicAdditional())
	admin.DELETE("/clinics/:id/additional-image", mediaHandler.RemoveClinicAdditional)
	admin.GET("/doctors/:id/schedule", appointmentHandler.DoctorSchedule)

	// ------------------------------
	// USERS (admin)
	// ------------------------------
	userHandler := handlers.NewResourceHandler[models.User, handlers.UserRequest](users,
		handlers.EqFilter("role", "role"),
		handlers.EqFilter("region_id", "region_id"),
	)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.PATCH("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", reviewHandler.DeleteUser)

	// ------------------------------
	// REVIEWS
	// ------------------------------
	public.GET("/reviews", reviewHandler.List)
	public.GET("/reviews/:id", reviewHandler.Get)
	secured.POST("/reviews", reviewHandler.Create)
	admin.PATCH("/reviews/:id", reviewHandler.Update)
	admin.DELETE("/reviews/:id", reviewHandler.Delete)

	// ------------------------------
	// APPOINTMENTS
	// ------------------------------
	secured.POST("/appointments", appointmentHandler.Create)
	admin.GET("/appointments", appointmentHandler.List)
	admin.GET("/appointments/:id", appointmentHandler.Get)
	admin.PATCH("/appointments/:id", appointmentHandler.Update)
	admin.DELETE("/appointments/:id", appointmentHandler.Delete)
	admin.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm())
	admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel())
	admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete())

	// ------------------------------
	// PHARMACY
	// ------------------------------
	handlers.NewResourceHandler[models.MedicationCategory, handlers.MedicationCategoryRequest](medicationCategories).
		Register("/medication-categories", public, admin)
	handlers.NewResourceHandler[models.Medication, handlers.MedicationRequest](medications,
		handlers.EqFilter("category_id", "category_id"),
		handlers.BoolFilter("prescription_required", "prescription_required"),
	).Register("/medications", public, admin)
	handlers.NewResourceHandler[models.MedicationPrice, handlers.MedicationPriceRequest](medicationPrices,
		handlers.EqFilter("medication_id", "medication_id"),
		handlers.EqFilter("pharmacy_id", "pharmacy_id"),
		handlers.BoolFilter("available", "available"),
	).Register("/medication-prices", public, admin)
	handlers.NewResourceHandler[models.MedicationFAQ, handlers.MedicationFAQRequest](medicationFAQs,
		handlers.EqFilter("medication_id", "medication_id"),
	).Register("/medication-faqs", public, admin)
	handlers.NewResourceHandler[models.Pharmacy, handlers.PharmacyRequest](pharmacies).
		Register("/pharmacies", public, admin)

	admin.PATCH("/medications/:id/image", mediaHandler.MedicationImage)

	// ------------------------------
	// CONTENT
	// ------------------------------
	handlers.NewResourceHandler[models.Article, handlers.ArticleRequest](articles,
		handlers.EqFilter("user_id", "user_id"),
	).Register("/articles", public, admin)
	handlers.NewResourceHandler[models.Promotion, handlers.PromotionRequest](promotions,
		handlers.EqFilter("clinic_id", "clinic_id"),
	).Register("/promotions", public, admin)
	handlers.NewResourceHandler[models.Banner, handlers.BannerRequest](banners,
		handlers.IntFilter("position", "position", "="),
	).Register("/banners", public, admin)
	handlers.NewResourceHandler[models.FAQ, handlers.FAQRequest](faqs).
		Register("/faq", public, admin)

	// Contact form: anyone may write, only admins read and manage.
	contactHandler := handlers.NewResourceHandler[models.Contact, handlers.ContactRequest](contacts)
	public.POST("/contacts", contactHandler.Create)
	admin.GET("/contacts", contactHandler.List)
	admin.GET("/contacts/:id", contactHandler.Get)
	admin.PATCH("/contacts/:id", contactHandler.Update)
	admin.DELETE("/contacts/:id", contactHandler.Delete)

	// ------------------------------
	// AUDIT
	// ------------------------------
	admin.GET("/audit-logs", auditLogsHandler.List)
}
