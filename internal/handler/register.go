package handler

import (
	"log/slog"
	"net/http"

	"machineshop/internal/model"
	"machineshop/internal/service"
)

type registerResponse struct {
	Message string              `json:"message"`
	Client  model.ClientSummary `json:"client"`
}

func RegisterHandler(authSvc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.RegisterInput
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		client, err := authSvc.Register(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		slog.Info("client registered", "client_id", client.ID)
		writeJSON(w, http.StatusCreated, registerResponse{
			Message: "Client registered successfully",
			Client:  client.Summary(),
		})
	}
}
