package activityhandlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	activityservice "github.com/fairway-collective/roundhouse/app/modules/activity/application"
	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// WriteDetailRecord handles PUT /headers/{headerID}/records/{ordinal}.
// Lost header locks are retried a bounded number of times before the
// conflict is reported to the client.
func (h *ActivityHandlers) WriteDetailRecord(w http.ResponseWriter, r *http.Request) {
	actor, headerID, ordinal, ok := h.recordScope(w, r)
	if !ok {
		return
	}

	var req writeDetailRecordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	input := activitydomain.WriteDetailRecordInput{
		Ordinal:        ordinal,
		PrimaryCount:   req.PrimaryCount,
		SecondaryCount: req.SecondaryCount,
		Flag:           req.Flag,
	}

	header, err := h.withContentionRetry(r, "WriteDetailRecord", func() (*activitydomain.ContributionHeader, error) {
		return h.service.WriteDetailRecord(r.Context(), actor, headerID, input)
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, header)
}

// DeleteDetailRecord handles DELETE /headers/{headerID}/records/{ordinal}.
func (h *ActivityHandlers) DeleteDetailRecord(w http.ResponseWriter, r *http.Request) {
	actor, headerID, ordinal, ok := h.recordScope(w, r)
	if !ok {
		return
	}

	header, err := h.withContentionRetry(r, "DeleteDetailRecord", func() (*activitydomain.ContributionHeader, error) {
		return h.service.DeleteDetailRecord(r.Context(), actor, headerID, ordinal)
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, header)
}

// ConfirmContribution handles POST /headers/{headerID}/confirm.
func (h *ActivityHandlers) ConfirmContribution(w http.ResponseWriter, r *http.Request) {
	actor, ok := AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	headerID, err := uuid.Parse(chi.URLParam(r, "headerID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid header id")
		return
	}

	if err := h.service.ConfirmContribution(r.Context(), actor, headerID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

// withContentionRetry re-runs op while it loses the header lock, backing off
// briefly between attempts.
func (h *ActivityHandlers) withContentionRetry(r *http.Request, operation string, op func() (*activitydomain.ContributionHeader, error)) (*activitydomain.ContributionHeader, error) {
	var header *activitydomain.ContributionHeader
	var err error
	for attempt := 0; attempt <= h.retries; attempt++ {
		if attempt > 0 {
			h.metrics.RecordContentionRetry(r.Context(), operation)
			select {
			case <-r.Context().Done():
				return nil, r.Context().Err()
			case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
			}
		}
		header, err = op()
		if !errors.Is(err, activityservice.ErrContention) {
			return header, err
		}
	}
	return nil, err
}

func (h *ActivityHandlers) recordScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, int, bool) {
	actor, ok := AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, 0, false
	}

	headerID, err := uuid.Parse(chi.URLParam(r, "headerID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid header id")
		return uuid.Nil, uuid.Nil, 0, false
	}

	ordinal, err := strconv.Atoi(chi.URLParam(r, "ordinal"))
	if err != nil || ordinal < 1 {
		h.respondError(w, http.StatusBadRequest, "invalid ordinal")
		return uuid.Nil, uuid.Nil, 0, false
	}

	return actor, headerID, ordinal, true
}
