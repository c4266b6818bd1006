package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtharvaKhot17/QuickHireAI/internal/services"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

const MaxCandidateFileBytes = 5 << 20

// InterviewHandler serves the company dashboard: interview definitions,
// invited candidates, reports and transcripts.
type InterviewHandler struct {
	interviews services.InterviewService
	candidates services.CandidateService
	reports    services.ReportService    // optional
	logs       services.AnswerLogService // optional
}

func NewInterviewHandler(
	interviews services.InterviewService,
	candidates services.CandidateService,
	reports services.ReportService,
	logs services.AnswerLogService,
) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, candidates: candidates, reports: reports, logs: logs}
}

func (h *InterviewHandler) Create(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	var req services.InterviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Create", "invalid request body", err))
		return
	}

	iv, err := h.interviews.Create(c.Request.Context(), companyID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, iv)
}

func (h *InterviewHandler) List(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	out, err := h.interviews.List(c.Request.Context(), companyID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	iv, err := h.interviews.Get(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *InterviewHandler) Update(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	var req services.InterviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Update", "invalid request body", err))
		return
	}

	iv, err := h.interviews.Update(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *InterviewHandler) Delete(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	if err := h.interviews.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadCandidates imports a .xlsx or .csv candidate list sent as the
// multipart field "file".
func (h *InterviewHandler) UploadCandidates(c *gin.Context) {
	const op = "InterviewHandler.UploadCandidates"

	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxCandidateFileBytes+1<<20)
	data, fh, err := readUpload(c, op, "file", MaxCandidateFileBytes)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.candidates.Import(c.Request.Context(), companyID, c.Param("id"), fh.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (h *InterviewHandler) ListCandidates(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	out, err := h.candidates.List(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *InterviewHandler) ListReports(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	if h.reports == nil {
		writeError(c, utils.E(utils.CodeUnavailable, "InterviewHandler.ListReports", "reports are not enabled", nil))
		return
	}

	out, err := h.reports.ListByInterview(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *InterviewHandler) Transcript(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	if h.logs == nil {
		writeError(c, utils.E(utils.CodeUnavailable, "InterviewHandler.Transcript", "transcripts are not enabled", nil))
		return
	}

	out, err := h.logs.ListByCode(c.Request.Context(), companyID, c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
