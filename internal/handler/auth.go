package handler

import (
	"net/http"

	"machineshop/internal/model"
	"machineshop/internal/mw"
	"machineshop/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string              `json:"message"`
	Token   string              `json:"token"`
	Client  model.ClientSummary `json:"client"`
}

func LoginHandler(authSvc *service.AuthService, tokens *service.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		client, err := authSvc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		token, err := tokens.Issue(client)
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Authorization", "Bearer "+token)
		writeJSON(w, http.StatusOK, loginResponse{
			Message: "Login successful",
			Token:   token,
			Client:  client.Summary(),
		})
	}
}

func MeHandler(clientSvc *service.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, ok := mw.ClientID(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "unauthorized"})
			return
		}

		client, err := clientSvc.Get(r.Context(), clientID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, client.Summary())
	}
}
