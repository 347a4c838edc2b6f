package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

type IssuesHandler struct {
	dbClient       *supabase.DatabaseClient
	realtimeClient *supabase.RealtimeClient
}

func NewIssuesHandler(dbClient *supabase.DatabaseClient, realtimeClient *supabase.RealtimeClient) *IssuesHandler {
	return &IssuesHandler{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
	}
}

func issueToResponse(issue *models.Issue) models.IssueResponse {
	resp := models.IssueResponse{
		ID:             issue.ID.String(),
		ShootID:        issue.ShootID.String(),
		Title:          issue.Title,
		Description:    issue.Description,
		Status:         string(issue.Status),
		Severity:       issue.Status.Severity(),
		AssignedToRole: string(issue.AssignedToRole),
		RaisedByID:     issue.RaisedByID.String(),
		RaisedByRole:   string(issue.RaisedByRole),
		CreatedAt:      issue.CreatedAt,
		UpdatedAt:      issue.UpdatedAt,
	}
	if issue.MediaFileID.Valid {
		resp.MediaID = issue.MediaFileID.UUID.String()
	}
	if issue.MediaFilename.Valid {
		resp.MediaFilename = issue.MediaFilename.String
	}
	if issue.AssignedToUserID.Valid {
		resp.AssignedToUserID = issue.AssignedToUserID.UUID.String()
	}
	return resp
}

// ListIssues godoc
// @Summary     List a shoot's issues
// @Description Lists issues visible to the caller: admins see all, clients
// @Description only issues they raised, editors and photographers only issues
// @Description assigned to their role.
// @Tags        issues
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Success     200 {object} models.IssuesResponse
// @Router      /shoots/{shoot_id}/issues [get]
func (h *IssuesHandler) ListIssues(c *gin.Context) {
	shoot, userID, role, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}

	issues, err := h.dbClient.ListShootIssues(shoot.ID, role, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list issues", Message: err.Error()})
		return
	}

	resp := models.IssuesResponse{Issues: make([]models.IssueResponse, len(issues))}
	for i := range issues {
		resp.Issues[i] = issueToResponse(&issues[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreateIssue godoc
// @Summary     Raise an issue on a shoot
// @Description Opens an issue, optionally pinned to a media file. New issues
// @Description start open.
// @Tags        issues
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       body body models.CreateIssueRequest true "Issue"
// @Success     201 {object} models.IssueResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/issues [post]
func (h *IssuesHandler) CreateIssue(c *gin.Context) {
	shoot, userID, role, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}
	shootID := shoot.ID

	var req models.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	assignedRole, err := workflow.ParseRole(req.AssignedToRole)
	if err != nil || (assignedRole != workflow.RoleEditor && assignedRole != workflow.RolePhotographer) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid assigned_to_role",
			Message: "issues are assigned to editor or photographer",
		})
		return
	}

	issue := &models.Issue{
		ShootID:        shootID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         workflow.IssueOpen,
		AssignedToRole: assignedRole,
		RaisedByID:     userID,
		RaisedByRole:   role,
	}
	if req.MediaID != "" {
		mediaID, err := uuid.Parse(req.MediaID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid media id"})
			return
		}
		file, err := h.dbClient.GetMediaFile(mediaID)
		if err != nil || file.ShootID != shootID {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "media file does not belong to shoot"})
			return
		}
		issue.MediaFileID = uuid.NullUUID{UUID: mediaID, Valid: true}
	}

	if err := h.dbClient.CreateIssue(issue); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create issue", Message: err.Error()})
		return
	}

	h.realtimeClient.PublishShootEvent(shootID, "issue_raised",
		supabase.IssueRaisedPayload(shootID, issue.ID, string(assignedRole)))

	c.JSON(http.StatusCreated, issueToResponse(issue))
}

// UpdateIssue godoc
// @Summary     Move an issue through its lifecycle
// @Description Allowed moves are open to in-progress, open to resolved and
// @Description in-progress to resolved. Resolved issues stay resolved.
// @Tags        issues
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       issue_id path string true "Issue ID (UUID)"
// @Param       body body models.UpdateIssueRequest true "New status"
// @Success     200 {object} models.IssueResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /issues/{issue_id} [patch]
func (h *IssuesHandler) UpdateIssue(c *gin.Context) {
	userID, role, ok := viewer(c)
	if !ok {
		return
	}
	issueID, ok := pathUUID(c, "issue_id")
	if !ok {
		return
	}

	var req models.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	target, err := workflow.ParseIssueStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown issue status", Message: err.Error()})
		return
	}

	issue, err := h.dbClient.GetIssue(issueID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "issue not found", Message: err.Error()})
		return
	}
	if !workflow.IssueVisibleTo(role, userID, issue.AssignedToRole, issue.RaisedByID) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "issue not found"})
		return
	}

	// Clients raise issues but the assigned talent or an admin works them.
	if role == workflow.RoleClient {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "clients may not change issue status"})
		return
	}

	if !workflow.ValidIssueTransition(issue.Status, target) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "invalid issue transition",
			Message: fmt.Sprintf("cannot move issue from %s to %s", issue.Status, target),
		})
		return
	}

	if err := h.dbClient.UpdateIssueStatus(issueID, target); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update issue", Message: err.Error()})
		return
	}

	h.realtimeClient.PublishShootEvent(issue.ShootID, "issue_updated",
		supabase.IssueUpdatedPayload(issue.ShootID, issueID, string(target)))

	issue.Status = target
	c.JSON(http.StatusOK, issueToResponse(issue))
}

// AssignIssue godoc
// @Summary     Reassign an issue
// @Description Points an issue at the editor or photographer role, optionally
// @Description naming a specific user. Admin only.
// @Tags        issues
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       issue_id path string true "Issue ID (UUID)"
// @Param       body body models.AssignIssueRequest true "Assignment"
// @Success     200 {object} models.IssueResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /issues/{issue_id}/assign [post]
func (h *IssuesHandler) AssignIssue(c *gin.Context) {
	issueID, ok := pathUUID(c, "issue_id")
	if !ok {
		return
	}

	var req models.AssignIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	assignedRole, err := workflow.ParseRole(req.Role)
	if err != nil || (assignedRole != workflow.RoleEditor && assignedRole != workflow.RolePhotographer) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid role",
			Message: "issues are assigned to editor or photographer",
		})
		return
	}

	var assignedUser uuid.NullUUID
	if req.UserID != "" {
		assigneeID, err := uuid.Parse(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
			return
		}
		user, err := h.dbClient.GetUser(assigneeID)
		if err != nil || user.Role != assignedRole {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "assignee role mismatch",
				Message: fmt.Sprintf("user is not a %s", assignedRole),
			})
			return
		}
		assignedUser = uuid.NullUUID{UUID: assigneeID, Valid: true}
	}

	if err := h.dbClient.AssignIssue(issueID, assignedRole, assignedUser); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "issue not found", Message: err.Error()})
		return
	}

	issue, err := h.dbClient.GetIssue(issueID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "issue not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, issueToResponse(issue))
}
