package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fikshb/LSPLMS-sub000/internal/config"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidType      = errors.New("invalid question type")
	ErrInvalidAnswerKey = errors.New("invalid answer key")
)

type Service interface {
	Create(ctx context.Context, dto CreateQuestionDTO) (*Question, error)
	Get(ctx context.Context, id uuid.UUID) (*Question, error)
	List(ctx context.Context, filter ListFilter) ([]Question, error)
	// ListActivePool returns the active questions of a scheme, the pool
	// exam instances sample from.
	ListActivePool(ctx context.Context, schemeID uuid.UUID) ([]Question, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateQuestionDTO) (*Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validateAnswerKey enforces the per-type invariants of the answer key:
// a single-choice key must name one of the option codes, a true-false key
// must be one of the two fixed tokens, and a free-text key is a reference
// answer for manual grading with no structural constraint.
func validateAnswerKey(t QuestionType, options []Option, correctAnswer string) error {
	switch t {
	case SINGLE_CHOICE:
		if len(options) == 0 {
			return fmt.Errorf("%w: single-choice question needs at least one option", ErrInvalidAnswerKey)
		}
		for _, opt := range options {
			if opt.Code == correctAnswer {
				return nil
			}
		}
		return fmt.Errorf("%w: correct answer %q does not match any option code", ErrInvalidAnswerKey, correctAnswer)
	case TRUE_FALSE:
		if correctAnswer != TokenTrue && correctAnswer != TokenFalse {
			return fmt.Errorf("%w: true-false answer must be %s or %s", ErrInvalidAnswerKey, TokenTrue, TokenFalse)
		}
		return nil
	case FREE_TEXT:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidType, t)
	}
}

func marshalJSON(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}

func (s *service) Create(ctx context.Context, dto CreateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}
	if !dto.Type.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, dto.Type)
	}
	if err := validateAnswerKey(dto.Type, dto.Options, dto.CorrectAnswer); err != nil {
		return nil, err
	}

	difficulty := dto.Difficulty
	if difficulty == "" {
		difficulty = MEDIUM
	}
	if !difficulty.IsValid() {
		return nil, fmt.Errorf("invalid difficulty: %s", difficulty)
	}

	points := 1
	if dto.Points != nil {
		points = *dto.Points
	}

	q := Question{
		ID:            uuid.New(),
		SchemeID:      dto.SchemeID,
		UnitID:        dto.UnitID,
		Text:          dto.Text,
		Type:          dto.Type,
		CorrectAnswer: dto.CorrectAnswer,
		Explanation:   dto.Explanation,
		Difficulty:    difficulty,
		Points:        points,
		IsActive:      true,
	}
	if len(dto.Options) > 0 {
		q.Options = marshalJSON(dto.Options)
	}
	if len(dto.Tags) > 0 {
		q.Tags = marshalJSON(dto.Tags)
	}

	if err := s.repo.Create(&q); err != nil {
		log.WithError(err).Error("Failed to create question")
		return nil, err
	}

	log.WithField("question_id", q.ID).Info("Question created")
	return &q, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Question, error) {
	q, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Question, error) {
	return s.repo.FindAll(filter)
}

func (s *service) ListActivePool(ctx context.Context, schemeID uuid.UUID) ([]Question, error) {
	return s.repo.FindActiveByScheme(schemeID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	if err := validate.Struct(dto); err != nil {
		return nil, err
	}

	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Text != nil {
		q.Text = *dto.Text
	}
	options, err := q.OptionList()
	if err != nil {
		return nil, err
	}
	if dto.Options != nil {
		options = dto.Options
		q.Options = marshalJSON(dto.Options)
	}
	if dto.CorrectAnswer != nil {
		q.CorrectAnswer = *dto.CorrectAnswer
	}
	if err := validateAnswerKey(q.Type, options, q.CorrectAnswer); err != nil {
		return nil, err
	}
	if dto.Explanation != nil {
		q.Explanation = dto.Explanation
	}
	if dto.Difficulty != nil {
		if !dto.Difficulty.IsValid() {
			return nil, fmt.Errorf("invalid difficulty: %s", *dto.Difficulty)
		}
		q.Difficulty = *dto.Difficulty
	}
	if dto.Tags != nil {
		q.Tags = marshalJSON(dto.Tags)
	}
	if dto.Points != nil {
		q.Points = *dto.Points
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(q); err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, err
	}
	return q, nil
}

// Delete removes a question from the bank. A question already snapshotted
// into an exam is soft-disabled instead, so historical exams stay intact.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	q, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	refs, err := s.repo.CountExamReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		q.IsActive = false
		if err := s.repo.Update(q); err != nil {
			log.WithError(err).Error("Failed to disable referenced question")
			return err
		}
		log.WithField("question_id", id).Info("Question disabled instead of deleted (referenced by exams)")
		return nil
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete question")
		return err
	}
	return nil
}
