package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"machineshop/internal/mw"
	"machineshop/internal/service"
)

type Services struct {
	Auth     *service.AuthService
	Clients  *service.ClientService
	Machines *service.MachineService
	Orders   *service.OrderService
	Tokens   *service.TokenIssuer
}

func NewRouter(svc Services, uploadsDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Server is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", LoginHandler(svc.Auth, svc.Tokens))
		r.Post("/register", RegisterHandler(svc.Auth))
		r.With(mw.AuthMiddleware(svc.Tokens)).Get("/me", MeHandler(svc.Clients))
	})

	r.Route("/api/clients", func(r chi.Router) {
		r.Get("/", ListClientsHandler(svc.Clients))
		r.Post("/register", RegisterHandler(svc.Auth))
		r.Delete("/{id}", DeleteClientHandler(svc.Clients))
	})

	r.Route("/api/machines", func(r chi.Router) {
		r.Get("/", ListMachinesHandler(svc.Machines))
		r.Post("/", CreateMachineHandler(svc.Machines))
		r.Put("/{id}", UpdateMachineHandler(svc.Machines))
		r.Delete("/{id}", DeleteMachineHandler(svc.Machines))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", ListOrdersHandler(svc.Orders))
		r.Post("/", PlaceOrderHandler(svc.Orders))
		r.Get("/client/{email}", OrdersByClientEmailHandler(svc.Orders))
		r.Get("/mobile/{mobileNumber}", OrdersByMobileHandler(svc.Orders))
	})

	return r
}
