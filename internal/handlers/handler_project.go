package handlers

import (
	"net/http"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	portssvc "github.com/SscSPs/builder_crm/internal/core/ports/services"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/gin-gonic/gin"
)

// projectHandler handles projects together with their units and expenses.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
	unitService    portssvc.UnitSvcFacade
	expenseService portssvc.ExpenseSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade, us portssvc.UnitSvcFacade, es portssvc.ExpenseSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps, unitService: us, expenseService: es}
}

// registerProjectRoutes registers project, unit and expense routes.
func registerProjectRoutes(rg *gin.RouterGroup, ps portssvc.ProjectSvcFacade, us portssvc.UnitSvcFacade, es portssvc.ExpenseSvcFacade) {
	h := newProjectHandler(ps, us, es)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:projectID", h.getProject)
		projects.GET("/:projectID/units", h.listUnits)
		projects.GET("/:projectID/expenses", h.listExpenses)
	}

	units := rg.Group("/units")
	{
		units.POST("", h.createUnit)
		units.PUT("/:unitID/status", h.updateUnitStatus)
	}

	rg.POST("/expenses", h.recordExpense)
}

// createProject godoc
// @Summary Create a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} domain.Project
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err, "create project")
		return
	}
	c.JSON(http.StatusCreated, project)
}

// listProjects godoc
// @Summary List projects
// @Description Lists the projects of the caller's company, newest first.
// @Tags projects
// @Produce  json
// @Success 200 {array} domain.Project
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	projects, err := h.projectService.ListProjects(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "list projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

// getProject godoc
// @Summary Get a project
// @Tags projects
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {object} domain.Project
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	project, err := h.projectService.GetProject(c.Request.Context(), identity, c.Param("projectID"))
	if err != nil {
		respondError(c, err, "get project")
		return
	}
	c.JSON(http.StatusOK, project)
}

// listUnits godoc
// @Summary List units of a project
// @Tags units
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {array} domain.Unit
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/units [get]
func (h *projectHandler) listUnits(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	units, err := h.unitService.ListUnitsByProject(c.Request.Context(), identity, c.Param("projectID"))
	if err != nil {
		respondError(c, err, "list units")
		return
	}
	c.JSON(http.StatusOK, units)
}

// createUnit godoc
// @Summary Create a unit
// @Description Adds a unit to a project. New units start Available unless Hold is given.
// @Tags units
// @Accept  json
// @Produce  json
// @Param   unit body dto.CreateUnitRequest true "Unit details"
// @Success 201 {object} domain.Unit
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 409 {object} ErrorResponse "Unit number already used in the project"
// @Security BearerAuth
// @Router /units [post]
func (h *projectHandler) createUnit(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err, "create unit")
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// updateUnitStatus godoc
// @Summary Change a unit's status
// @Description Manual changes between Available and Hold. Sold units are rejected.
// @Tags units
// @Accept  json
// @Produce  json
// @Param   unitID path string true "Unit ID"
// @Param   status body dto.UpdateUnitStatusRequest true "New status"
// @Success 200 {object} domain.Unit
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Unit is sold"
// @Security BearerAuth
// @Router /units/{unitID}/status [put]
func (h *projectHandler) updateUnitStatus(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateUnitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	unit, err := h.unitService.UpdateUnitStatus(c.Request.Context(), identity, c.Param("unitID"), domain.UnitStatus(req.Status))
	if err != nil {
		respondError(c, err, "update unit status")
		return
	}
	c.JSON(http.StatusOK, unit)
}

// listExpenses godoc
// @Summary List expenses of a project
// @Tags expenses
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {array} domain.Expense
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/expenses [get]
func (h *projectHandler) listExpenses(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	expenses, err := h.expenseService.ListExpensesByProject(c.Request.Context(), identity, c.Param("projectID"))
	if err != nil {
		respondError(c, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// recordExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /expenses [post]
func (h *projectHandler) recordExpense(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	expense, err := h.expenseService.RecordExpense(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err, "record expense")
		return
	}
	c.JSON(http.StatusCreated, expense)
}
