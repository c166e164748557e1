package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"zenflowAPI/internal/routine"
	"zenflowAPI/services"
)

type RoutineHandler struct {
	routineService *services.RoutineService
}

func NewRoutineHandler(routineService *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		routineService: routineService,
	}
}

func (h *RoutineHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category := r.URL.Query().Get("category")
	difficulty := routine.Difficulty(r.URL.Query().Get("difficulty"))

	routines, err := h.routineService.GetCatalog(ctx, category, difficulty)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, routines)
}

func (h *RoutineHandler) GetRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := mux.Vars(r)["id"]
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "routine id is required")
		return
	}

	found, err := h.routineService.GetRoutine(ctx, id)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Routine not found")
		return
	}

	respondWithJSON(w, http.StatusOK, found)
}
