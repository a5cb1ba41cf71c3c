package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"machineshop/internal/service"
)

func ListMachinesHandler(machineSvc *service.MachineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		machines, err := machineSvc.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, machines)
	}
}

func CreateMachineHandler(machineSvc *service.MachineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.MachineInput
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		machine, err := machineSvc.Create(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, machine)
	}
}

func UpdateMachineHandler(machineSvc *service.MachineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.MachineInput
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		machine, err := machineSvc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, machine)
	}
}

func DeleteMachineHandler(machineSvc *service.MachineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := machineSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Machine deleted"})
	}
}
