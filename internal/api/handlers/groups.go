package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/validation"
)

// GroupHandler handles HTTP requests for stock groups.
type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// GroupsPerPortfolio lists the groups of a portfolio in creation order.
//
// Endpoint: GET /api/portfolio/{uuid}/groups
func (h *GroupHandler) GroupsPerPortfolio(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.GetGroups(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveGroups.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, groups)
}

// CreateGroup adds a group to a portfolio.
//
// Endpoint: POST /api/portfolio/{uuid}/groups
// Request Body: CreateGroupRequest (name)
// Response: 201 Created with model.Group
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateGroupRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateGroup(req); err != nil {
		respondValidationError(w, err)
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to create group")
		return
	}

	response.RespondJSON(w, http.StatusCreated, group)
}

// DeleteGroup removes a group; its stocks stay and become ungrouped.
//
// Endpoint: DELETE /api/group/{uuid}
// Response: 204 No Content
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.DeleteGroup(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete group")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
