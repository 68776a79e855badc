package activityservice

import (
	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
)

func toDomainActivity(a *activitydb.Activity) activitydomain.Activity {
	return activitydomain.Activity{
		ID:          a.ID,
		CreatedBy:   a.CreatedBy,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		Location:    a.Location,
		Visibility:  a.Visibility,
		Status:      a.Status,
		SummaryRef:  a.SummaryRef,
	}
}

func toDomainParticipant(p *activitydb.Participant) activitydomain.Participant {
	return activitydomain.Participant{
		ID:                 p.ID,
		ActivityID:         p.ActivityID,
		AccountID:          p.AccountID,
		Status:             p.Status,
		RespondedAt:        p.RespondedAt,
		Role:               p.Role,
		HasContributed:     p.HasContributed,
		LastContributionAt: p.LastContributionAt,
	}
}

func toDomainHeader(h *activitydb.ContributionHeader) activitydomain.ContributionHeader {
	return activitydomain.ContributionHeader{
		ID:             h.ID,
		ParticipantID:  h.ParticipantID,
		EnteredBy:      h.EnteredBy,
		Confirmed:      h.Confirmed,
		Total:          h.Total,
		UnitsCompleted: h.UnitsCompleted,
		Delta:          h.Delta,
	}
}

func toDomainRecord(r *activitydb.DetailRecord) activitydomain.DetailRecord {
	return activitydomain.DetailRecord{
		ID:             r.ID,
		HeaderID:       r.HeaderID,
		Ordinal:        r.Ordinal,
		PrimaryCount:   r.PrimaryCount,
		SecondaryCount: r.SecondaryCount,
		Flag:           r.Flag,
		EnteredBy:      r.EnteredBy,
	}
}

func toDomainMedia(m *activitydb.Media) activitydomain.Media {
	return activitydomain.Media{
		ID:         m.ID,
		ActivityID: m.ActivityID,
		URL:        m.URL,
		MediaType:  m.MediaType,
		Position:   m.Position,
	}
}

func toDomainRecords(rs []*activitydb.DetailRecord) []activitydomain.DetailRecord {
	out := make([]activitydomain.DetailRecord, 0, len(rs))
	for _, r := range rs {
		out = append(out, toDomainRecord(r))
	}
	return out
}
