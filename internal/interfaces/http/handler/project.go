package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reelworks/backend/internal/application/dashboard"
	"github.com/reelworks/backend/internal/domain/production"
)

// ProjectHandler exposes the reconciled project list.
type ProjectHandler struct {
	BaseHandler
	service *dashboard.Service
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(service *dashboard.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjectsRequest carries the project list controls.
type ListProjectsRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=name deadline fee created_at"`
	OrderBy string `form:"order_by" binding:"omitempty,oneof=asc desc"`
}

// ProjectResponse is one project row of the reconciled owned/shared view.
type ProjectResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CreatedBy       string  `json:"created_by"`
	EditorFee       float64 `json:"editor_fee"`
	ClientFee       float64 `json:"client_fee"`
	Fee             float64 `json:"fee"`
	Status          string  `json:"status"`
	IsSubproject    bool    `json:"is_subproject"`
	ParentProjectID string  `json:"parent_project_id,omitempty"`
	AssignedDate    string  `json:"assigned_date,omitempty"`
	Deadline        string  `json:"deadline,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	IsShared        bool    `json:"is_shared"`
	AlsoShared      bool    `json:"also_shared"`
	ShareToken      string  `json:"share_token,omitempty"`
}

func toProjectResponse(p production.Project) ProjectResponse {
	return ProjectResponse{
		ID:              p.ID,
		Name:            p.Name,
		CreatedBy:       p.CreatedBy,
		EditorFee:       p.EditorFee.InexactFloat64(),
		ClientFee:       p.ClientFee.InexactFloat64(),
		Fee:             p.Fee.InexactFloat64(),
		Status:          p.Status.String(),
		IsSubproject:    p.IsSubproject,
		ParentProjectID: p.ParentProjectID,
		AssignedDate:    formatTime(p.AssignedDate),
		Deadline:        formatTime(p.Deadline),
		CreatedAt:       formatTime(p.CreatedAt),
		IsShared:        p.IsShared,
		AlsoShared:      p.AlsoShared,
		ShareToken:      p.ShareToken,
	}
}

// formatTime renders an optional timestamp as RFC 3339, empty when unset.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// List returns the reconciled, filtered, sorted project list.
// GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	projects, err := h.service.Projects(dashboard.ListQuery{
		Search:  req.Search,
		Status:  req.Status,
		SortBy:  req.SortBy,
		OrderBy: req.OrderBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	total := len(projects)
	if total > maxListRows {
		projects = projects[:maxListRows]
	}
	rows := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		rows[i] = toProjectResponse(p)
	}
	h.ListResponse(c, rows, total)
}
