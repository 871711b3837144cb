package production

import (
	"github.com/reelworks/backend/internal/domain/shared/rawrecord"
	"github.com/shopspring/decimal"
)

// NormalizeProject coerces a raw project record into a typed Project.
// Numeric fields that are absent or null become zero; present-but-garbage
// numeric values also become zero but are recorded in Warnings so callers can
// log them instead of silently summing bad data. A missing status defaults
// to draft.
func NormalizeProject(raw rawrecord.Record) Project {
	p := Project{
		ID:              raw.String("id"),
		Name:            raw.String("name"),
		CreatedBy:       raw.String("created_by"),
		Status:          ProjectStatus(raw.StringOr("status", string(ProjectStatusDraft))),
		IsSubproject:    raw.Bool("is_subproject"),
		ParentProjectID: raw.String("parent_project_id"),
		AssignedDate:    raw.Time("assigned_date"),
		Deadline:        raw.Time("deadline"),
		CreatedAt:       raw.Time("created_at"),
		UpdatedAt:       raw.Time("updated_at"),
	}
	p.EditorFee = amount(raw, "editor_fee", &p.Warnings)
	p.ClientFee = amount(raw, "client_fee", &p.Warnings)
	p.Fee = amount(raw, "fee", &p.Warnings)
	return p
}

// NormalizeSharedProject coerces a raw shared-project record, including the
// nested share_info object.
func NormalizeSharedProject(raw rawrecord.Record) SharedProject {
	sp := SharedProject{Project: NormalizeProject(raw)}
	if info := raw.Child("share_info"); info != nil {
		sp.ShareInfo.ShareToken = info.String("share_token")
	}
	sp.ShareToken = sp.ShareInfo.ShareToken
	sp.IsShared = true
	return sp
}

func amount(raw rawrecord.Record, key string, warnings *[]string) decimal.Decimal {
	d, ok := raw.Decimal(key)
	if !ok {
		*warnings = append(*warnings, key)
	}
	return d
}
