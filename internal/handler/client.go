package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"machineshop/internal/model"
	"machineshop/internal/service"
)

type deleteClientResponse struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	DeletedClient model.ClientSummary `json:"deletedClient"`
}

func ListClientsHandler(clientSvc *service.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := clientSvc.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, clients)
	}
}

func DeleteClientHandler(clientSvc *service.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := clientSvc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, deleteClientResponse{
			Success:       true,
			Message:       "Client deleted successfully",
			DeletedClient: client.Summary(),
		})
	}
}
