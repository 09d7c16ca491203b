package models

import "github.com/google/uuid"

// TeamMember is a roster entry used for availability-weighted profit sharing
type TeamMember struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Availability float64 `json:"availability"`
}

// ProfitShare assigns part of total revenue to one team member.
// Amount normally follows (Percentage/100) x revenue but manual overrides
// are allowed, so the pair is stored rather than derived.
type ProfitShare struct {
	SetID      uuid.UUID `json:"set_id"`
	ProjectID  int64     `json:"project_id"`
	MemberID   int64     `json:"member_id"`
	MemberName string    `json:"member_name"`
	Percentage float64   `json:"percentage"`
	Amount     float64   `json:"amount"`
}
