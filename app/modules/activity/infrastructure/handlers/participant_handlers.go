package activityhandlers

import (
	"net/http"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AddParticipants handles POST /activities/{activityID}/participants.
func (h *ActivityHandlers) AddParticipants(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	var req addParticipantsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	participants, err := h.service.AddParticipants(r.Context(), actor, activityID, activitydomain.AddParticipantsInput{
		AccountIDs:  req.AccountIDs,
		DefaultRole: activitydomain.Role(req.DefaultRole),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, participants)
}

// RemoveParticipant handles DELETE /activities/{activityID}/participants/{accountID}.
func (h *ActivityHandlers) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := h.service.RemoveParticipant(r.Context(), actor, activityID, accountID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

// Attest handles POST /activities/{activityID}/attest.
func (h *ActivityHandlers) Attest(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	var req attestRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	participant, err := h.service.Attest(r.Context(), actor, activityID, activitydomain.AttestationStatus(req.Status))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, participant)
}
