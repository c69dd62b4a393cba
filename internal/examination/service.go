package examination

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fikshb/LSPLMS-sub000/internal/config"
	"github.com/fikshb/LSPLMS-sub000/internal/examtemplate"
	"github.com/fikshb/LSPLMS-sub000/internal/question"
)

var (
	ErrExamNotFound           = errors.New("examination not found")
	ErrTemplateNotFound       = examtemplate.ErrTemplateNotFound
	ErrQuestionNotInExam      = errors.New("question is not part of this examination")
	ErrInvalidStateTransition = errors.New("invalid examination state transition")
	ErrNotManuallyGradable    = errors.New("only free-text questions accept manual grading")
)

type Service interface {
	Create(ctx context.Context, dto CreateExaminationDTO) (*Examination, error)
	Get(ctx context.Context, id uuid.UUID) (*Examination, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Examination, error)
	AttachQuestions(ctx context.Context, id uuid.UUID, questionIDs []uuid.UUID) (*Examination, error)
	Start(ctx context.Context, id uuid.UUID) (*Examination, error)
	Submit(ctx context.Context, id uuid.UUID, answers []SubmittedAnswer) (*Examination, error)
	GradeQuestion(ctx context.Context, id, questionID uuid.UUID, isCorrect bool) (*ExamQuestion, error)
	Evaluate(ctx context.Context, id, evaluatorID uuid.UUID) (*Examination, error)
}

type service struct {
	repo      Repository
	templates examtemplate.Repository
	questions question.Repository
	sampler   *Sampler
}

func NewService(repo Repository, templates examtemplate.Repository, questions question.Repository, sampler *Sampler) Service {
	return &service{
		repo:      repo,
		templates: templates,
		questions: questions,
		sampler:   sampler,
	}
}

func snapshotLink(examinationID uuid.UUID, q *question.Question, order int) *ExamQuestion {
	return &ExamQuestion{
		ID:            uuid.New(),
		ExaminationID: examinationID,
		QuestionID:    q.ID,
		DisplayOrder:  order,
		QuestionText:  q.Text,
		QuestionType:  q.Type,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
	}
}

// Create builds a new examination from a template. With randomization on, the
// scheme's active question pool is shuffled and the first TotalQuestions items
// are snapshotted into links ordered 1..n; without it, links are attached
// later through AttachQuestions while the examination is still pending.
func (s *service) Create(ctx context.Context, dto CreateExaminationDTO) (*Examination, error) {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	tpl, err := s.templates.FindByID(dto.TemplateID)
	if err != nil {
		log.WithError(err).Error("Failed to load template for examination")
		return nil, err
	}
	if tpl == nil || !tpl.IsActive {
		return nil, ErrTemplateNotFound
	}

	exam := &Examination{
		ID:              uuid.New(),
		TemplateID:      tpl.ID,
		ApplicationID:   dto.ApplicationID,
		DurationMinutes: tpl.DurationMinutes,
		TotalQuestions:  tpl.TotalQuestions,
		Status:          PENDING,
	}

	var links []*ExamQuestion
	if tpl.RandomizeQuestions {
		pool, err := s.questions.FindActiveByScheme(tpl.SchemeID)
		if err != nil {
			log.WithError(err).Error("Failed to load question pool")
			return nil, err
		}

		selected, err := s.sampler.Sample(pool, tpl.TotalQuestions)
		if err != nil {
			log.WithFields(logrus.Fields{
				"template_id": tpl.ID,
				"pool_size":   len(pool),
				"requested":   tpl.TotalQuestions,
			}).Warn("Question pool too small for template")
			return nil, err
		}

		links = make([]*ExamQuestion, len(selected))
		for i := range selected {
			links[i] = snapshotLink(exam.ID, &selected[i], i+1)
		}
	}

	if err := s.repo.CreateWithQuestions(exam, links); err != nil {
		log.WithError(err).Error("Failed to create examination")
		return nil, err
	}
	exam.Questions = make([]ExamQuestion, len(links))
	for i, link := range links {
		exam.Questions[i] = *link
	}

	log.WithFields(logrus.Fields{
		"examination_id": exam.ID,
		"template_id":    tpl.ID,
		"application_id": dto.ApplicationID,
		"question_count": len(links),
	}).Info("Examination created")
	return exam, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Examination, error) {
	exam, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}
	return exam, nil
}

func (s *service) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Examination, error) {
	return s.repo.FindAllByApplication(applicationID)
}

// AttachQuestions is the explicit-selection path for templates that do not
// randomize: an administrator picks the questions while the examination is
// still pending. Orders continue after any links already attached.
func (s *service) AttachQuestions(ctx context.Context, id uuid.UUID, questionIDs []uuid.UUID) (*Examination, error) {
	log := config.WithContext(ctx)

	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != PENDING {
		return nil, fmt.Errorf("%w: cannot attach questions in status %s", ErrInvalidStateTransition, exam.Status)
	}

	attached := make(map[uuid.UUID]bool, len(exam.Questions))
	for _, link := range exam.Questions {
		attached[link.QuestionID] = true
	}

	var links []*ExamQuestion
	order := len(exam.Questions)
	for _, qid := range questionIDs {
		if attached[qid] {
			continue
		}
		q, err := s.questions.FindByID(qid)
		if err != nil {
			return nil, err
		}
		if q == nil || !q.IsActive {
			return nil, fmt.Errorf("%w: %s", question.ErrQuestionNotFound, qid)
		}
		attached[qid] = true
		order++
		links = append(links, snapshotLink(exam.ID, q, order))
	}

	if err := s.repo.AttachQuestions(links); err != nil {
		log.WithError(err).Error("Failed to attach questions to examination")
		return nil, err
	}

	return s.Get(ctx, id)
}

// Start moves a pending examination to IN_PROGRESS and stamps the single
// authoritative start time. The transition is a conditional update, so a
// second start cannot overwrite the first timestamp.
func (s *service) Start(ctx context.Context, id uuid.UUID) (*Examination, error) {
	log := config.WithContext(ctx)

	now := time.Now()
	ok, err := s.repo.TransitionStatus(id, PENDING, IN_PROGRESS, map[string]interface{}{
		"start_time": now,
	})
	if err != nil {
		log.WithError(err).Error("Failed to start examination")
		return nil, err
	}
	if !ok {
		exam, err := s.repo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if exam == nil {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("%w: cannot start examination in status %s", ErrInvalidStateTransition, exam.Status)
	}

	log.WithField("examination_id", id).Info("Examination started")
	return s.Get(ctx, id)
}

// Submit records the taker's answers and completes the examination. Answers
// for questions outside the instance are ignored. Single-choice and
// true-false answers are graded by exact, case-sensitive token comparison;
// free-text answers stay ungraded until manual grading.
func (s *service) Submit(ctx context.Context, id uuid.UUID, answers []SubmittedAnswer) (*Examination, error) {
	log := config.WithContext(ctx)

	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != IN_PROGRESS {
		return nil, fmt.Errorf("%w: cannot submit examination in status %s", ErrInvalidStateTransition, exam.Status)
	}

	links, err := s.repo.ListQuestions(id)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[uuid.UUID]*ExamQuestion, len(links))
	for _, link := range links {
		byQuestion[link.QuestionID] = link
	}

	now := time.Now()
	var answered []*ExamQuestion
	for _, a := range answers {
		link, ok := byQuestion[a.QuestionID]
		if !ok {
			log.WithField("question_id", a.QuestionID).Debug("Ignoring answer for question outside examination")
			continue
		}

		answer := a.Answer
		answeredAt := now
		link.UserAnswer = &answer
		link.AnsweredAt = &answeredAt
		if link.QuestionType.AutoGradable() {
			correct := answer == link.CorrectAnswer
			link.IsCorrect = &correct
		}
		answered = append(answered, link)
	}

	ok, err := s.repo.SubmitAnswers(id, IN_PROGRESS, COMPLETED, map[string]interface{}{
		"end_time": now,
	}, answered)
	if err != nil {
		log.WithError(err).Error("Failed to submit examination")
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: examination was no longer in progress", ErrInvalidStateTransition)
	}

	log.WithFields(logrus.Fields{
		"examination_id": id,
		"answered":       len(answered),
	}).Info("Examination submitted")
	return s.Get(ctx, id)
}

// GradeQuestion lets an assessor set the correctness of a free-text answer in
// the window between submission and evaluation. Auto-graded types are not
// overridable; their correctness is a pure function of the answer token.
func (s *service) GradeQuestion(ctx context.Context, id, questionID uuid.UUID, isCorrect bool) (*ExamQuestion, error) {
	log := config.WithContext(ctx)

	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != COMPLETED {
		return nil, fmt.Errorf("%w: can only grade a completed examination, status is %s", ErrInvalidStateTransition, exam.Status)
	}

	link, err := s.repo.FindQuestionLink(id, questionID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrQuestionNotInExam
	}
	if link.QuestionType.AutoGradable() {
		return nil, ErrNotManuallyGradable
	}

	link.IsCorrect = &isCorrect
	if err := s.repo.UpdateQuestion(link); err != nil {
		log.WithError(err).Error("Failed to grade examination question")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"examination_id": id,
		"question_id":    questionID,
		"is_correct":     isCorrect,
	}).Info("Examination question graded manually")
	return link, nil
}

// Evaluate finalizes a completed examination: counts correct links, computes
// the rounded percentage score (math.Round, so .5 rounds up), compares it to
// the template's passing score and stamps the evaluator. The result is an
// immutable audit record; an evaluated examination cannot be re-evaluated.
func (s *service) Evaluate(ctx context.Context, id, evaluatorID uuid.UUID) (*Examination, error) {
	log := config.WithContext(ctx)

	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != COMPLETED {
		return nil, fmt.Errorf("%w: cannot evaluate examination in status %s", ErrInvalidStateTransition, exam.Status)
	}

	links, err := s.repo.ListQuestions(id)
	if err != nil {
		return nil, err
	}

	total := len(links)
	correct := 0
	for _, link := range links {
		if link.IsCorrect != nil && *link.IsCorrect {
			correct++
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	passingScore := examtemplate.DefaultPassingScore
	if tpl, err := s.templates.FindByID(exam.TemplateID); err == nil && tpl != nil {
		passingScore = tpl.PassingScore
	} else {
		log.WithField("template_id", exam.TemplateID).Warn("Template unavailable during evaluation, using default passing score")
	}
	passed := score >= passingScore

	now := time.Now()
	ok, err := s.repo.TransitionStatus(id, COMPLETED, EVALUATED, map[string]interface{}{
		"total_questions": total,
		"correct_count":   correct,
		"score":           score,
		"passed":          passed,
		"evaluated_by":    evaluatorID,
		"evaluated_at":    now,
	})
	if err != nil {
		log.WithError(err).Error("Failed to evaluate examination")
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: examination was no longer completed", ErrInvalidStateTransition)
	}

	log.WithFields(logrus.Fields{
		"examination_id": id,
		"score":          score,
		"passed":         passed,
		"evaluated_by":   evaluatorID,
	}).Info("Examination evaluated")
	return s.Get(ctx, id)
}
