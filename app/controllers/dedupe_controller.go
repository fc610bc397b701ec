// Package controllers holds the Gin handlers fronting the dedupe
// service, mirroring the teacher's AddressController/AdminController
// layering.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/corpresolve/corpmatch/app/requests"
	"github.com/corpresolve/corpmatch/app/responses"
	"github.com/corpresolve/corpmatch/app/services"
)

// DedupeController exposes the public API operations (spec §6) over
// HTTP.
type DedupeController struct {
	dedupe *services.DedupeService
	logger *zap.Logger
}

// NewDedupeController builds a controller over an already-wired
// DedupeService.
func NewDedupeController(dedupe *services.DedupeService, logger *zap.Logger) *DedupeController {
	return &DedupeController{dedupe: dedupe, logger: logger}
}

// MatchNames scores one pair of company names (spec §6
// match_corporate_names).
func (dc *DedupeController) MatchNames(c *gin.Context) {
	var req requests.MatchNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	score, ok, err := dc.dedupe.MatchNames(c.Request.Context(), req.Name1, req.Name2, req.Country1, req.Country2)
	if err != nil {
		dc.logger.Error("match names failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "MATCH_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.MatchNamesResponse{Score: score, HasOpinion: ok})
}

// SubmitDuplicateJob submits a batch of names for asynchronous
// duplicate detection (spec §4.6 find_duplicates).
func (dc *DedupeController) SubmitDuplicateJob(c *gin.Context) {
	var req requests.FindDuplicatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	job := dc.dedupe.SubmitDedupeJob(req.Names)
	c.JSON(http.StatusAccepted, responses.FindDuplicatesResponse{
		JobID:      job.ID,
		TotalNames: job.TotalNames,
		Message:    "duplicate-detection job accepted",
	})
}

// GetJobStatus reports a submitted batch job's status and results.
func (dc *DedupeController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("jobID")
	job, ok := dc.dedupe.GetJob(jobID)
	if !ok {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "JOB_NOT_FOUND", Message: "no job with id " + jobID})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:      job.ID,
		Status:     job.Status,
		TotalNames: job.TotalNames,
		PairsFound: len(job.Pairs),
		Error:      job.Error,
		Pairs:      job.Pairs,
	})
}

// RetrieveLegalForm reports the legal form recognized in a name (spec
// §6 retrieve_legal_form).
func (dc *DedupeController) RetrieveLegalForm(c *gin.Context) {
	var req requests.LegalFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	form, found := dc.dedupe.RetrieveLegalForm(req.Name, req.Country)
	c.JSON(http.StatusOK, responses.LegalFormResponse{LegalForm: form, Found: found})
}

// RemoveLegalForm strips the recognized legal-form suffix from a name
// (spec §6 company_name_without_legal_form).
func (dc *DedupeController) RemoveLegalForm(c *gin.Context) {
	var req requests.LegalFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.CleanNameResponse{Cleaned: dc.dedupe.CompanyNameWithoutLegalForm(req.Name, req.Country)})
}

// CleanName applies the static cleaner (spec §6 clean_company_name).
func (dc *DedupeController) CleanName(c *gin.Context) {
	var req requests.CleanNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.CleanNameResponse{Cleaned: dc.dedupe.CleanCompanyName(req.Name)})
}

// CleanNameAndRemoveLegalForm applies the catalog-wide cleaner (spec §6
// clean_company_name_and_remove_legal_form).
func (dc *DedupeController) CleanNameAndRemoveLegalForm(c *gin.Context) {
	var req requests.CleanNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.CleanNameResponse{Cleaned: dc.dedupe.CleanCompanyNameAndRemoveLegalForm(req.Name)})
}

// HealthCheck reports service health.
func (dc *DedupeController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:  "healthy",
		Version: "1.0.0",
	})
}
