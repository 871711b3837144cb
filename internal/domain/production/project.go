// Package production holds the project side of the workflow domain: typed
// project records, normalization from raw API payloads, and the owned/shared
// reconciliation that merges the two project collections into one view.
package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus represents the lifecycle state of a production project.
type ProjectStatus string

const (
	ProjectStatusDraft       ProjectStatus = "draft"
	ProjectStatusInReview    ProjectStatus = "in_review"
	ProjectStatusCorrections ProjectStatus = "corrections"
	ProjectStatusPending     ProjectStatus = "pending"
	ProjectStatusInProgress  ProjectStatus = "in_progress"
	ProjectStatusApproved    ProjectStatus = "approved"
	ProjectStatusCompleted   ProjectStatus = "completed"
)

// IsValid checks if the status is a known project status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusInReview, ProjectStatusCorrections,
		ProjectStatusPending, ProjectStatusInProgress, ProjectStatusApproved,
		ProjectStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation
func (s ProjectStatus) String() string {
	return string(s)
}

// Project is one production project. EditorFee and ClientFee are the
// role-specific rates; Fee is the legacy single rate kept as a fallback when
// a role-specific one was never set.
type Project struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	CreatedBy       string          `json:"created_by"`
	EditorFee       decimal.Decimal `json:"editor_fee"`
	ClientFee       decimal.Decimal `json:"client_fee"`
	Fee             decimal.Decimal `json:"fee"`
	Status          ProjectStatus   `json:"status"`
	IsSubproject    bool            `json:"is_subproject"`
	ParentProjectID string          `json:"parent_project_id,omitempty"`
	AssignedDate    *time.Time      `json:"assigned_date"`
	Deadline        *time.Time      `json:"deadline"`
	CreatedAt       *time.Time      `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at"`

	// Sharing flags, populated by reconciliation.
	IsShared   bool   `json:"is_shared,omitempty"`
	AlsoShared bool   `json:"also_shared,omitempty"`
	ShareToken string `json:"share_token,omitempty"`

	// Warnings lists field names whose values were present but not
	// interpretable during normalization.
	Warnings []string `json:"-"`
}

// SharedProject is a project arriving from the sharing subsystem rather than
// the owned collection. Same identity space as Project.
type SharedProject struct {
	Project
	ShareInfo ShareInfo `json:"share_info"`
}

// ShareInfo carries the sharing metadata attached to a shared project.
type ShareInfo struct {
	ShareToken string `json:"share_token"`
}

// EditorRate returns the editor-side rate for the project, falling back to
// the legacy fee when no editor fee was set.
func (p Project) EditorRate() decimal.Decimal {
	if !p.EditorFee.IsZero() {
		return p.EditorFee
	}
	return p.Fee
}

// ClientRate returns the client-side rate for the project, falling back to
// the legacy fee when no client fee was set.
func (p Project) ClientRate() decimal.Decimal {
	if !p.ClientFee.IsZero() {
		return p.ClientFee
	}
	return p.Fee
}

// DisplayRate returns the rate shown on role-agnostic listings: the client
// fee when set, otherwise the editor fee, otherwise the legacy fee. A project
// carrying any rate at all never sorts as free.
func (p Project) DisplayRate() decimal.Decimal {
	if !p.ClientFee.IsZero() {
		return p.ClientFee
	}
	if !p.EditorFee.IsZero() {
		return p.EditorFee
	}
	return p.Fee
}
