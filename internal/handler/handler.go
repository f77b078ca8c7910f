package handler

import (
	"github.com/faresld99/medical-appointment-app/internal/config"
	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/faresld99/medical-appointment-app/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		// 医生目录和时段查询对两种角色都开放
		r.Route("/practitioners", func(r chi.Router) {
			r.Get("/", h.GetPractitioners)
			r.Get("/specialties", h.GetSpecialties)
			r.Get("/locations", h.GetLocations)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.practitionerInfo)
				r.Get("/", h.GetPractitioner)
				r.Get("/slots", h.GetAvailableSlots)
				r.Get("/availability-windows", h.GetAvailabilityWindows)
			})
		})

		// 出诊时间的管理只有医生本人有权限
		r.Route("/availability-windows", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RolePractitioner}))
			r.Use(h.myInfo)
			r.Use(h.myPractitionerProfile)
			r.Post("/", h.CreateAvailabilityWindow)
			r.Delete("/{id}", h.DeleteAvailabilityWindow)
			r.Post("/weekly", h.ApplyWeeklyTemplate)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RolePatient})).Post("/", h.BookAppointment)
			r.Get("/", h.GetMyAppointments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.appointmentInfo)
				r.Post("/confirm", h.ConfirmAppointment)
				r.Post("/cancel", h.CancelAppointment)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyNotifications)
			r.Patch("/{id}/read", h.MarkNotificationAsRead)
		})
	})
}
