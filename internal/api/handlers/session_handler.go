package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/services"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

// SessionHandler serves the candidate-facing interview routes.
type SessionHandler struct {
	svc   services.SessionService
	audio services.AudioService // optional
}

func NewSessionHandler(svc services.SessionService, audio services.AudioService) *SessionHandler {
	return &SessionHandler{svc: svc, audio: audio}
}

type StartRequest struct {
	Code           string   `json:"code"`
	InterviewCode  string   `json:"interviewCode"`
	Skills         []string `json:"skills"`
	TotalQuestions int      `json:"totalQuestions"`
}

func (r StartRequest) input() services.StartInput {
	code := r.Code
	if code == "" {
		code = r.InterviewCode
	}
	return services.StartInput{Code: code, Skills: r.Skills, TotalQuestions: r.TotalQuestions}
}

type SessionResponse struct {
	Session *models.InterviewSession `json:"session"`
}

// Start creates the session for a code, replacing any earlier one.
func (h *SessionHandler) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Start", "invalid request body", err))
		return
	}

	sess, err := h.svc.Reset(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: sess})
}

// Create is the strict variant of Start: an existing session is a conflict.
func (h *SessionHandler) Create(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Create", "invalid request body", err))
		return
	}

	sess, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{Session: sess})
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: sess})
}

func (h *SessionHandler) Questions(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Questions)
}

type SubmitRequest struct {
	QuestionIndex *int     `json:"questionIndex"`
	Transcript    string   `json:"transcript"`
	Answer        string   `json:"answer"`
	Skip          bool     `json:"skip"`
	Confidence    *float64 `json:"confidence"`
}

func (h *SessionHandler) Submit(c *gin.Context) {
	const op = "SessionHandler.Submit"

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	if req.QuestionIndex == nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "questionIndex is required", nil))
		return
	}
	transcript := req.Transcript
	if transcript == "" {
		transcript = req.Answer
	}

	res, err := h.svc.Submit(c.Request.Context(), services.SubmitInput{
		Code:          c.Param("code"),
		QuestionIndex: *req.QuestionIndex,
		Transcript:    transcript,
		Skipped:       req.Skip,
		Confidence:    req.Confidence,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type AudioAnswerResponse struct {
	*services.SubmitResult
	Transcript string `json:"transcript"`
	AudioURI   string `json:"audioUri,omitempty"`
}

// SubmitAudio transcribes a recorded answer and submits it like a typed one.
func (h *SessionHandler) SubmitAudio(c *gin.Context) {
	const op = "SessionHandler.SubmitAudio"

	if h.audio == nil {
		writeError(c, utils.E(utils.CodeUnavailable, op, "audio answers are not enabled", nil))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxAudioBytes+1<<20)
	idx, err := strconv.Atoi(strings.TrimSpace(c.PostForm("questionIndex")))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "questionIndex is required", err))
		return
	}
	var confidence *float64
	if v := strings.TrimSpace(c.PostForm("confidence")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "confidence must be a number", err))
			return
		}
		confidence = &f
	}

	data, fh, err := readUpload(c, op, "audio", services.MaxAudioBytes)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	code := c.Param("code")
	tr, err := h.audio.Transcribe(ctx, services.AudioInput{
		Code:          code,
		QuestionIndex: idx,
		Data:          data,
		ContentType:   fh.Header.Get("Content-Type"),
		Language:      c.PostForm("language"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if confidence == nil {
		confidence = &tr.Confidence
	}

	res, err := h.svc.Submit(ctx, services.SubmitInput{
		Code:          code,
		QuestionIndex: idx,
		Transcript:    tr.Text,
		Confidence:    confidence,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AudioAnswerResponse{SubmitResult: res, Transcript: tr.Text, AudioURI: tr.AudioURI})
}

type EvaluateRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type EvaluateResponse struct {
	Evaluation   models.Evaluation `json:"evaluation"`
	NextQuestion *models.Question  `json:"nextQuestion"`
}

func (h *SessionHandler) EvaluateAnswer(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.EvaluateAnswer", "invalid request body", err))
		return
	}

	eval, err := h.svc.EvaluateAnswer(c.Request.Context(), strings.TrimSpace(req.Question), req.Answer)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, EvaluateResponse{Evaluation: eval})
}

// FinalizeAnswer accepts both the stored answer shape and the {question,
// answer, evaluation} shape sent by the browser client.
type FinalizeAnswer struct {
	Question   string            `json:"question"`
	Skill      string            `json:"skill"`
	Transcript string            `json:"transcript"`
	Answer     string            `json:"answer"`
	Skipped    bool              `json:"skipped"`
	Confidence *float64          `json:"confidence"`
	Evaluation models.Evaluation `json:"evaluation"`
}

type FinalizeRequest struct {
	Answers []FinalizeAnswer `json:"answers"`
}

type FinalEvaluationResponse struct {
	Evaluation *models.FinalEvaluation `json:"evaluation"`
}

func (h *SessionHandler) Finalize(c *gin.Context) {
	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Finalize", "invalid request body", err))
		return
	}

	answers := make([]models.Answer, 0, len(req.Answers))
	for i, a := range req.Answers {
		transcript := a.Transcript
		if transcript == "" {
			transcript = a.Answer
		}
		answers = append(answers, models.Answer{
			QuestionIndex: i,
			Question:      a.Question,
			Skill:         a.Skill,
			Transcript:    transcript,
			Skipped:       a.Skipped,
			Confidence:    a.Confidence,
			Evaluation:    a.Evaluation,
		})
	}

	out, err := h.svc.Finalize(c.Request.Context(), answers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, FinalEvaluationResponse{Evaluation: out})
}

// End returns the final evaluation of the answers stored for a code.
func (h *SessionHandler) End(c *gin.Context) {
	out, err := h.svc.End(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, FinalEvaluationResponse{Evaluation: out})
}
