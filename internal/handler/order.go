package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"machineshop/internal/model"
	"machineshop/internal/service"
)

type placeOrderResponse struct {
	Message string       `json:"message"`
	Order   *model.Order `json:"order"`
}

func PlaceOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.OrderInput
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		order, err := orderSvc.Place(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, placeOrderResponse{Message: "Order placed successfully", Order: order})
	}
}

func ListOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		sort := strings.ToLower(q.Get("sort"))

		orders, err := orderSvc.List(r.Context(), service.OrderFilter{
			ClientName:   q.Get("clientName"),
			MobileNumber: q.Get("mobileNumber"),
			Email:        q.Get("email"),
			Newest:       sort == "desc" || sort == "newest",
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func OrdersByClientEmailHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, err := url.PathUnescape(chi.URLParam(r, "email"))
		if err != nil {
			writeError(w, r, &service.ValidationError{Field: "email", Message: "Invalid email format"})
			return
		}

		orders, err := orderSvc.ByClientEmail(r.Context(), email)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func OrdersByMobileHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.ByMobile(r.Context(), chi.URLParam(r, "mobileNumber"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}
