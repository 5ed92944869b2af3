package ui

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"switchscope/domain/core"
	"switchscope/domain/investigation"
	apperrors "switchscope/internal/errors"
)

func (s *Server) handleHCPSummary(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	overview, err := s.dashboards.Overview(c.Request.Context(), id, s.product(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview.Summary)
}

func (s *Server) handleOverview(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	overview, err := s.dashboards.Overview(c.Request.Context(), id, s.product(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (s *Server) handleStart(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	session, summary, err := s.investigations.Start(c.Request.Context(), id, s.product(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId":     session.ID,
		"stage":         session.Stage,
		"signalSummary": summary,
	})
}

func (s *Server) handleAdvance(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	session, err := s.investigations.AdvanceToInvestigating(ctx, id)
	if errors.Is(err, core.ErrInvalidTransition) {
		session, err = s.investigations.AdvanceToSynthesizing(ctx, id)
	}
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"stage":     session.Stage,
	})
}

func (s *Server) handleActivity(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	feed, err := s.investigations.Activity(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// handleInvestigate is the one-shot wire-compatible route: it starts a new
// session and runs it forward to synthesis, returning the full result shape
// ready for reviewer confirmation.
func (s *Server) handleInvestigate(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, _, err := s.investigations.Start(ctx, id, s.product(c)); err != nil {
		s.renderError(c, err)
		return
	}
	if _, err := s.investigations.AdvanceToInvestigating(ctx, id); err != nil {
		s.renderError(c, err)
		return
	}
	if _, err := s.investigations.AdvanceToSynthesizing(ctx, id); err != nil {
		s.renderError(c, err)
		return
	}

	results, err := s.investigations.Results(ctx, id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleResults(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	results, err := s.investigations.Results(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultsResponse(results))
}

type confirmRequest struct {
	ConfirmedHypotheses []core.HypothesisID `json:"confirmedHypotheses"`
	SMENotes            string              `json:"smeNotes"`
}

func (s *Server) handleConfirm(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, apperrors.ValidationError("malformed confirmation body"))
		return
	}

	record, err := s.investigations.Confirm(c.Request.Context(), id, req.ConfirmedHypotheses, req.SMENotes)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmedCount": len(record.Selected)})
}

func (s *Server) handleStrategies(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	strategies, err := s.investigations.Strategies(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategies": renderStrategies(strategies)})
}

// hcpID validates the path parameter; a blank id is rejected before any
// upstream call.
func (s *Server) hcpID(c *gin.Context) (core.HCPID, bool) {
	id, err := core.ParseHCPID(c.Param("id"))
	if err != nil {
		s.renderError(c, apperrors.ValidationError(err.Error()))
		return "", false
	}
	return id, true
}

func (s *Server) product(c *gin.Context) string {
	if p := c.Query("product"); p != "" {
		return p
	}
	return s.defaultProduct
}

// renderError maps the error taxonomy onto HTTP statuses. An incomplete
// workflow is an expected state and carries guidance for the next step, not a
// bare failure.
func (s *Server) renderError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)

	switch {
	case code == apperrors.CodeIncompleteWorkflow:
		c.JSON(http.StatusConflict, gin.H{
			"code":     code,
			"guidance": err.Error(),
		})
		return
	case code == apperrors.CodeFetchFailure:
		c.JSON(http.StatusBadGateway, gin.H{"code": code, "error": err.Error()})
		return
	case code == apperrors.CodeValidationError || code == apperrors.CodeInvalidSelection:
		c.JSON(http.StatusBadRequest, gin.H{"code": code, "error": err.Error()})
		return
	}

	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"code": apperrors.CodeNotFound, "error": err.Error()})
	case core.IsInvalidSelection(err):
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeInvalidSelection, "error": err.Error()})
	case errors.Is(err, core.ErrInvalidTransition), errors.Is(err, core.ErrStageGuardNotMet):
		c.JSON(http.StatusConflict, gin.H{"code": apperrors.CodeIncompleteWorkflow, "error": err.Error()})
	default:
		s.log.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": apperrors.CodeInternalError, "error": "internal error"})
	}
}

func (s *Server) handleReport(c *gin.Context) {
	id, ok := s.hcpID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	overview, err := s.dashboards.Overview(ctx, id, s.product(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	results, err := s.investigations.Results(ctx, id)
	if err != nil {
		s.renderError(c, err)
		return
	}

	writeReport(c, overview, results)
}

// resultsResponse decorates the wire shape with rendered SME notes and the
// strategy-gate verdict, computed fresh from the serialized state.
func resultsResponse(results investigation.Results) gin.H {
	return gin.H{
		"hasInvestigation":    results.HasInvestigation,
		"allHypotheses":       results.AllHypotheses,
		"provenHypotheses":    results.Proven,
		"confirmedHypotheses": results.Confirmed,
		"isConfirmed":         results.IsConfirmed,
		"smeNotes":            results.SMENotes,
		"smeNotesHtml":        renderMarkdown(results.SMENotes),
		"strategiesUnlocked":  investigation.GateFromResults(results),
	}
}
