package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/gin-gonic/gin"
)

// leadHandler handles HTTP requests related to leads.
type leadHandler struct {
	leadService portssvc.LeadSvcFacade
	loc         *time.Location
}

func newLeadHandler(ls portssvc.LeadSvcFacade, loc *time.Location) *leadHandler {
	return &leadHandler{leadService: ls, loc: loc}
}

// registerLeadRoutes registers all lead-related routes. Date-only follow-up
// values are read as midnight in loc.
func registerLeadRoutes(rg *gin.RouterGroup, leadService portssvc.LeadSvcFacade, loc *time.Location) {
	h := newLeadHandler(leadService, loc)

	leads := rg.Group("/leads")
	{
		leads.POST("", h.createLead)
		leads.GET("", h.listLeads)
		leads.GET("/:leadID", h.getLead)
		leads.PUT("/:leadID/status", h.updateLeadStatus)
		leads.PUT("/:leadID/followup", h.updateFollowUp)
		leads.POST("/:leadID/notes", h.addNote)
	}
}

// createLead godoc
// @Summary Create a lead
// @Tags leads
// @Accept  json
// @Produce  json
// @Param   lead body dto.CreateLeadRequest true "Lead details"
// @Success 201 {object} domain.Lead
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /leads [post]
func (h *leadHandler) createLead(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	lead, err := h.leadService.CreateLead(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err, "create lead")
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// listLeads godoc
// @Summary List leads
// @Description Lists leads newest first with token pagination.
// @Tags leads
// @Produce  json
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLeadsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads [get]
func (h *leadHandler) listLeads(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListLeadsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	leads, next, err := h.leadService.ListLeads(c.Request.Context(), identity, params)
	if err != nil {
		respondError(c, err, "list leads")
		return
	}
	c.JSON(http.StatusOK, dto.ListLeadsResponse{Leads: leads, NextToken: next})
}

// getLead godoc
// @Summary Get a lead
// @Tags leads
// @Produce  json
// @Param   leadID path string true "Lead ID"
// @Success 200 {object} domain.Lead
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads/{leadID} [get]
func (h *leadHandler) getLead(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	lead, err := h.leadService.GetLead(c.Request.Context(), identity, c.Param("leadID"))
	if err != nil {
		respondError(c, err, "get lead")
		return
	}
	c.JSON(http.StatusOK, lead)
}

// updateLeadStatus godoc
// @Summary Change a lead's status
// @Tags leads
// @Accept  json
// @Produce  json
// @Param   leadID path string true "Lead ID"
// @Param   status body dto.UpdateLeadStatusRequest true "New status"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads/{leadID}/status [put]
func (h *leadHandler) updateLeadStatus(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	lead, err := h.leadService.UpdateLeadStatus(c.Request.Context(), identity, c.Param("leadID"), domain.LeadStatus(req.Status))
	if err != nil {
		respondError(c, err, "update lead status")
		return
	}
	c.JSON(http.StatusOK, lead)
}

// updateFollowUp godoc
// @Summary Set or clear a lead's follow-up date
// @Description A null followUpDate clears the reminder.
// @Tags leads
// @Accept  json
// @Produce  json
// @Param   leadID path string true "Lead ID"
// @Param   followup body dto.UpdateFollowUpRequest true "Follow-up date"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads/{leadID}/followup [put]
func (h *leadHandler) updateFollowUp(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var followUp *time.Time
	if req.FollowUpDate != nil {
		at := req.FollowUpDate.In(h.loc)
		followUp = &at
	}

	lead, err := h.leadService.UpdateFollowUpDate(c.Request.Context(), identity, c.Param("leadID"), followUp)
	if err != nil {
		respondError(c, err, "update follow-up date")
		return
	}
	c.JSON(http.StatusOK, lead)
}

// addNote godoc
// @Summary Add a note to a lead
// @Tags leads
// @Accept  json
// @Produce  json
// @Param   leadID path string true "Lead ID"
// @Param   note body dto.AddLeadNoteRequest true "Note"
// @Success 201 {object} domain.Lead
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /leads/{leadID}/notes [post]
func (h *leadHandler) addNote(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.AddLeadNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	lead, err := h.leadService.AddNote(c.Request.Context(), identity, c.Param("leadID"), req.Note)
	if err != nil {
		respondError(c, err, "add note")
		return
	}
	c.JSON(http.StatusCreated, lead)
}
