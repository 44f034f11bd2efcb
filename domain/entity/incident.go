package entity

import "time"

// Incident はインシデントチャンネルと発端チャンネルの対応を保持する
type Incident struct {
	ChannelID      string    `json:"channel_id" dynamo:"channel_id,hash"`
	CallingChannel string    `json:"calling_channel" dynamo:"calling_channel"`
	Title          string    `json:"title" dynamo:"title"`
	Service        string    `json:"service" dynamo:"service"`
	DeclaredUserID string    `json:"declared_user_id" dynamo:"declared_user_id"`
	StartedAt      time.Time `json:"started_at" dynamo:"started_at"`
	ClosedAt       time.Time `json:"closed_at" dynamo:"closed_at"`
}

type IncidentRequest struct {
	Title          string `validate:"required"`
	Description    string
	Service        string `validate:"required"`
	Priority       string `validate:"required"`
	CommsLead      string
	TechLead       string
	SupportLead    string
	DeclaredUserID string
	CallingChannel string
}

// Leads は指定済みのリード(comms, tech, supportの順)のみ返す
func (r *IncidentRequest) Leads() []string {
	var leads []string
	for _, lead := range []string{r.CommsLead, r.TechLead, r.SupportLead} {
		if lead != "" {
			leads = append(leads, lead)
		}
	}
	return leads
}

// IncidentUpdateRequest の各フィールドはnilなら「変更なし」
type IncidentUpdateRequest struct {
	Description *string
	Priority    *string
	CommsLead   *string
	TechLead    *string
	SupportLead *string
}

func (r *IncidentUpdateRequest) IsEmpty() bool {
	return r.Description == nil &&
		r.Priority == nil &&
		r.CommsLead == nil &&
		r.TechLead == nil &&
		r.SupportLead == nil
}
