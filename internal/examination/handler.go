package examination

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fikshb/LSPLMS-sub000/internal/auth"
	"github.com/fikshb/LSPLMS-sub000/internal/config"
	"github.com/fikshb/LSPLMS-sub000/internal/question"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, ErrExamNotFound),
		errors.Is(err, ErrTemplateNotFound),
		errors.Is(err, ErrQuestionNotInExam),
		errors.Is(err, question.ErrQuestionNotFound):
		config.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidStateTransition):
		config.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInsufficientQuestions):
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotManuallyGradable), errors.As(err, &verr):
		config.Error(w, http.StatusBadRequest, err.Error())
	default:
		config.WithContext(r.Context()).WithError(err).Errorf("Failed to %s", action)
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func examID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// redactAnswerKeys hides the correct answers from takers. Assessors and
// administrators see the full snapshot.
func redactAnswerKeys(r *http.Request, exam *Examination) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil || claims.Role != auth.RoleApplicant {
		return
	}
	for i := range exam.Questions {
		exam.Questions[i].CorrectAnswer = ""
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateExaminationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.TemplateID == uuid.Nil || dto.ApplicationID == uuid.Nil {
		config.Error(w, http.StatusBadRequest, "template_id and application_id are required")
		return
	}

	exam, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeServiceError(w, r, err, "create examination")
		return
	}

	redactAnswerKeys(r, exam)
	config.JSON(w, http.StatusCreated, exam)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := examID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	exam, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "fetch examination")
		return
	}

	redactAnswerKeys(r, exam)
	config.JSON(w, http.StatusOK, exam)
}

func (h *Handler) ListByApplication(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("applicationId")
	if v == "" {
		config.Error(w, http.StatusBadRequest, "applicationId is required")
		return
	}
	applicationID, err := uuid.Parse(v)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid applicationId")
		return
	}

	exams, err := h.service.ListByApplication(r.Context(), applicationID)
	if err != nil {
		writeServiceError(w, r, err, "list examinations")
		return
	}

	config.JSON(w, http.StatusOK, exams)
}

func (h *Handler) AttachQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := examID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto AttachQuestionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(dto.QuestionIDs) == 0 {
		config.Error(w, http.StatusBadRequest, "question_ids must be a non-empty array")
		return
	}

	exam, err := h.service.AttachQuestions(r.Context(), id, dto.QuestionIDs)
	if err != nil {
		writeServiceError(w, r, err, "attach questions")
		return
	}

	config.JSON(w, http.StatusOK, exam)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	id, err := examID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	exam, err := h.service.Start(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "start examination")
		return
	}

	redactAnswerKeys(r, exam)
	config.JSON(w, http.StatusOK, exam)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := examID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.Answers == nil {
		config.Error(w, http.StatusBadRequest, "answers must be an array")
		return
	}

	exam, err := h.service.Submit(r.Context(), id, *dto.Answers)
	if err != nil {
		writeServiceError(w, r, err, "submit examination")
		return
	}

	redactAnswerKeys(r, exam)
	config.JSON(w, http.StatusOK, exam)
}

func (h *Handler) GradeQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := examID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	questionID, err := uuid.Parse(chi.URLParam(r, "questionID"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid question id")
		return
	}

	var dto GradeQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.IsCorrect == nil {
		config.Error(w, http.StatusBadRequest, "is_correct is required")
		return
	}

	link, err := h.service.GradeQuestion(r.Context(), id, questionID, *dto.IsCorrect)
	if err != nil {
		writeServiceError(w, r, err, "grade examination question")
		return
	}

	config.JSON(w, http.StatusOK, link)
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("Evaluation attempted without authentication")
		config.Error(w, http.StatusUnauthorized, "missing credentials")
		return
	}
	evaluatorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "invalid evaluator identity")
		return
	}

	id, err := examID(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	exam, err := h.service.Evaluate(r.Context(), id, evaluatorID)
	if err != nil {
		writeServiceError(w, r, err, "evaluate examination")
		return
	}

	config.JSON(w, http.StatusOK, exam)
}
