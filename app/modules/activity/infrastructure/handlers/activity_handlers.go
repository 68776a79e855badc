package activityhandlers

import (
	"net/http"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateActivity handles POST /activities.
func (h *ActivityHandlers) CreateActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createActivityRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := h.service.CreateActivity(r.Context(), actor, activitydomain.CreateActivityInput{
		Type:        activitydomain.ActivityType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Visibility:  activitydomain.Visibility(req.Visibility),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, detail)
}

// ListActivities handles GET /activities.
func (h *ActivityHandlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	actor, ok := AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	activities, err := h.service.ListActivities(r.Context(), actor)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, activities)
}

// GetActivity handles GET /activities/{activityID}.
func (h *ActivityHandlers) GetActivity(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	detail, err := h.service.GetActivityDetail(r.Context(), actor, activityID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, detail)
}

// UpdateActivity handles PATCH /activities/{activityID}.
func (h *ActivityHandlers) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	var req updateActivityRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	input := activitydomain.UpdateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	}
	if req.Visibility != nil {
		v := activitydomain.Visibility(*req.Visibility)
		input.Visibility = &v
	}
	if req.Status != nil {
		s := activitydomain.ActivityStatus(*req.Status)
		input.Status = &s
	}

	activity, err := h.service.UpdateActivity(r.Context(), actor, activityID, input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, activity)
}

// DeleteActivity handles DELETE /activities/{activityID}.
func (h *ActivityHandlers) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteActivity(r.Context(), actor, activityID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

// AddMedia handles POST /activities/{activityID}/media.
func (h *ActivityHandlers) AddMedia(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	var req addMediaRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	media, err := h.service.AddMedia(r.Context(), actor, activityID, activitydomain.AddMediaInput{
		URL:       req.URL,
		MediaType: req.MediaType,
		Position:  req.Position,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, media)
}

// RemoveMedia handles DELETE /activities/{activityID}/media/{mediaID}.
func (h *ActivityHandlers) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	mediaID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	if err := h.service.RemoveMedia(r.Context(), actor, activityID, mediaID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

// Publish handles POST /activities/{activityID}/publish.
func (h *ActivityHandlers) Publish(w http.ResponseWriter, r *http.Request) {
	actor, activityID, ok := h.actorAndActivity(w, r)
	if !ok {
		return
	}

	summaryRef, err := h.service.Publish(r.Context(), actor, activityID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, publishResponse{SummaryRef: summaryRef})
}

// actorAndActivity pulls the authenticated actor and the activity id path
// param; on failure the response is already written.
func (h *ActivityHandlers) actorAndActivity(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	actor, ok := AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	activityID, err := uuid.Parse(chi.URLParam(r, "activityID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid activity id")
		return uuid.Nil, uuid.Nil, false
	}

	return actor, activityID, true
}
