package examination_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/fikshb/LSPLMS-sub000/internal/examination"
	"github.com/fikshb/LSPLMS-sub000/internal/examtemplate"
	"github.com/fikshb/LSPLMS-sub000/internal/question"
)

type testEnv struct {
	service   examination.Service
	exams     *fakeExamRepo
	templates *fakeTemplateRepo
	questions *fakeQuestionRepo
}

func newTestEnv(seed int64) *testEnv {
	exams := newFakeExamRepo()
	templates := newFakeTemplateRepo()
	questions := newFakeQuestionRepo()
	sampler := examination.NewSampler(rand.New(rand.NewSource(seed)))

	return &testEnv{
		service:   examination.NewService(exams, templates, questions, sampler),
		exams:     exams,
		templates: templates,
		questions: questions,
	}
}

func (env *testEnv) seedTemplate(t *testing.T, schemeID uuid.UUID, total, passing int, randomize bool) *examtemplate.Template {
	t.Helper()
	tpl := &examtemplate.Template{
		ID:                 uuid.New(),
		SchemeID:           schemeID,
		Name:               "Competency exam",
		DurationMinutes:    60,
		TotalQuestions:     total,
		PassingScore:       passing,
		RandomizeQuestions: randomize,
		IsActive:           true,
	}
	if err := env.templates.Create(tpl); err != nil {
		t.Fatalf("seed template: %v", err)
	}
	return tpl
}

func (env *testEnv) seedChoiceQuestion(t *testing.T, schemeID uuid.UUID, text, correct string) *question.Question {
	t.Helper()
	q := &question.Question{
		ID:            uuid.New(),
		SchemeID:      schemeID,
		Text:          text,
		Type:          question.SINGLE_CHOICE,
		Options:       []byte(`[{"code":"A","text":"first"},{"code":"B","text":"second"}]`),
		CorrectAnswer: correct,
		Difficulty:    question.MEDIUM,
		Points:        1,
		IsActive:      true,
	}
	if err := env.questions.Create(q); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return q
}

func (env *testEnv) seedFreeTextQuestion(t *testing.T, schemeID uuid.UUID, text string) *question.Question {
	t.Helper()
	q := &question.Question{
		ID:            uuid.New(),
		SchemeID:      schemeID,
		Text:          text,
		Type:          question.FREE_TEXT,
		CorrectAnswer: "reference answer for the assessor",
		Difficulty:    question.MEDIUM,
		Points:        1,
		IsActive:      true,
	}
	if err := env.questions.Create(q); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return q
}

// createManual builds a pending exam from a non-randomized template and
// attaches the given questions explicitly.
func (env *testEnv) createManual(t *testing.T, tpl *examtemplate.Template, ids []uuid.UUID) *examination.Examination {
	t.Helper()
	ctx := context.Background()

	exam, err := env.service.Create(ctx, examination.CreateExaminationDTO{
		TemplateID:    tpl.ID,
		ApplicationID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("create examination: %v", err)
	}
	if len(ids) > 0 {
		exam, err = env.service.AttachQuestions(ctx, exam.ID, ids)
		if err != nil {
			t.Fatalf("attach questions: %v", err)
		}
	}
	return exam
}

func TestCreateRandomizedExamination(t *testing.T) {
	ctx := context.Background()

	t.Run("SamplesWithoutReplacement", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		poolIDs := map[uuid.UUID]bool{}
		for i := 0; i < 5; i++ {
			q := env.seedChoiceQuestion(t, schemeID, fmt.Sprintf("question %d", i), "A")
			poolIDs[q.ID] = true
		}
		tpl := env.seedTemplate(t, schemeID, 3, 70, true)

		exam, err := env.service.Create(ctx, examination.CreateExaminationDTO{
			TemplateID:    tpl.ID,
			ApplicationID: uuid.New(),
		})
		if err != nil {
			t.Fatalf("create examination: %v", err)
		}

		if exam.Status != examination.PENDING {
			t.Errorf("expected status PENDING, got %s", exam.Status)
		}
		if exam.TotalQuestions != 3 {
			t.Errorf("expected snapshotted total 3, got %d", exam.TotalQuestions)
		}
		if len(exam.Questions) != 3 {
			t.Fatalf("expected 3 links, got %d", len(exam.Questions))
		}

		seen := map[uuid.UUID]bool{}
		for i, link := range exam.Questions {
			if link.DisplayOrder != i+1 {
				t.Errorf("expected contiguous order %d, got %d", i+1, link.DisplayOrder)
			}
			if seen[link.QuestionID] {
				t.Errorf("question %s sampled twice", link.QuestionID)
			}
			if !poolIDs[link.QuestionID] {
				t.Errorf("question %s is not from the pool", link.QuestionID)
			}
			if link.CorrectAnswer != "A" {
				t.Errorf("expected snapshotted answer key, got %q", link.CorrectAnswer)
			}
			seen[link.QuestionID] = true
		}
	})

	t.Run("PoolTooSmall", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		env.seedChoiceQuestion(t, schemeID, "only one", "A")
		tpl := env.seedTemplate(t, schemeID, 3, 70, true)

		_, err := env.service.Create(ctx, examination.CreateExaminationDTO{
			TemplateID:    tpl.ID,
			ApplicationID: uuid.New(),
		})
		if !errors.Is(err, examination.ErrInsufficientQuestions) {
			t.Fatalf("expected ErrInsufficientQuestions, got %v", err)
		}
		if len(env.exams.exams) != 0 {
			t.Error("no examination should be persisted when the pool is too small")
		}
	})

	t.Run("InactiveQuestionsExcluded", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		for i := 0; i < 3; i++ {
			env.seedChoiceQuestion(t, schemeID, fmt.Sprintf("active %d", i), "A")
		}
		disabled := env.seedChoiceQuestion(t, schemeID, "disabled", "A")
		disabled.IsActive = false
		if err := env.questions.Update(disabled); err != nil {
			t.Fatal(err)
		}
		tpl := env.seedTemplate(t, schemeID, 3, 70, true)

		exam, err := env.service.Create(ctx, examination.CreateExaminationDTO{
			TemplateID:    tpl.ID,
			ApplicationID: uuid.New(),
		})
		if err != nil {
			t.Fatalf("create examination: %v", err)
		}
		for _, link := range exam.Questions {
			if link.QuestionID == disabled.ID {
				t.Error("disabled question must not enter the sample")
			}
		}
	})

	t.Run("TemplateMissing", func(t *testing.T) {
		env := newTestEnv(1)
		_, err := env.service.Create(ctx, examination.CreateExaminationDTO{
			TemplateID:    uuid.New(),
			ApplicationID: uuid.New(),
		})
		if !errors.Is(err, examination.ErrTemplateNotFound) {
			t.Fatalf("expected ErrTemplateNotFound, got %v", err)
		}
	})
}

func TestStartExamination(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(1)
	schemeID := uuid.New()
	tpl := env.seedTemplate(t, schemeID, 1, 70, false)
	q := env.seedChoiceQuestion(t, schemeID, "q", "A")
	exam := env.createManual(t, tpl, []uuid.UUID{q.ID})

	started, err := env.service.Start(ctx, exam.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != examination.IN_PROGRESS {
		t.Errorf("expected IN_PROGRESS, got %s", started.Status)
	}
	if started.StartTime == nil {
		t.Fatal("start time must be set")
	}
	firstStart := *started.StartTime

	t.Run("SecondStartRejected", func(t *testing.T) {
		_, err := env.service.Start(ctx, exam.ID)
		if !errors.Is(err, examination.ErrInvalidStateTransition) {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}

		current, err := env.service.Get(ctx, exam.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !current.StartTime.Equal(firstStart) {
			t.Error("a rejected second start must not overwrite the start time")
		}
	})

	t.Run("UnknownExamination", func(t *testing.T) {
		_, err := env.service.Start(ctx, uuid.New())
		if !errors.Is(err, examination.ErrExamNotFound) {
			t.Fatalf("expected ErrExamNotFound, got %v", err)
		}
	})
}

func TestSubmitExamination(t *testing.T) {
	ctx := context.Background()

	t.Run("GradesAutoGradableTypes", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 2, 70, false)
		right := env.seedChoiceQuestion(t, schemeID, "right one", "B")
		wrong := env.seedChoiceQuestion(t, schemeID, "wrong one", "B")
		exam := env.createManual(t, tpl, []uuid.UUID{right.ID, wrong.ID})

		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}

		submitted, err := env.service.Submit(ctx, exam.ID, []examination.SubmittedAnswer{
			{QuestionID: right.ID, Answer: "B"},
			{QuestionID: wrong.ID, Answer: "A"},
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if submitted.Status != examination.COMPLETED {
			t.Errorf("expected COMPLETED, got %s", submitted.Status)
		}
		if submitted.EndTime == nil {
			t.Error("end time must be set")
		}

		links, _ := env.exams.ListQuestions(exam.ID)
		for _, link := range links {
			if link.IsCorrect == nil {
				t.Fatalf("auto-gradable link %s must be graded at submit", link.QuestionID)
			}
			want := link.QuestionID == right.ID
			if *link.IsCorrect != want {
				t.Errorf("link %s: expected is_correct=%v, got %v", link.QuestionID, want, *link.IsCorrect)
			}
			if link.AnsweredAt == nil {
				t.Error("answered_at must be set")
			}
		}
	})

	t.Run("GradingIsCaseSensitive", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 1, 70, false)
		q := env.seedChoiceQuestion(t, schemeID, "case", "B")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})
		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}

		if _, err := env.service.Submit(ctx, exam.ID, []examination.SubmittedAnswer{
			{QuestionID: q.ID, Answer: "b"},
		}); err != nil {
			t.Fatal(err)
		}

		links, _ := env.exams.ListQuestions(exam.ID)
		if links[0].IsCorrect == nil || *links[0].IsCorrect {
			t.Error(`lowercase "b" must not match answer key "B"`)
		}
	})

	t.Run("FreeTextLeftUngraded", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 1, 70, false)
		q := env.seedFreeTextQuestion(t, schemeID, "essay")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})
		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}

		if _, err := env.service.Submit(ctx, exam.ID, []examination.SubmittedAnswer{
			{QuestionID: q.ID, Answer: "reference answer for the assessor"},
		}); err != nil {
			t.Fatal(err)
		}

		links, _ := env.exams.ListQuestions(exam.ID)
		if links[0].IsCorrect != nil {
			t.Error("free-text answers must not be auto-graded, even on exact match")
		}
		if links[0].UserAnswer == nil {
			t.Error("the free-text answer itself must be recorded")
		}
	})

	t.Run("StrayAnswersIgnored", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 1, 70, false)
		q := env.seedChoiceQuestion(t, schemeID, "q", "A")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})
		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}

		if _, err := env.service.Submit(ctx, exam.ID, []examination.SubmittedAnswer{
			{QuestionID: uuid.New(), Answer: "A"},
		}); err != nil {
			t.Fatalf("stray answers must not fail the submission: %v", err)
		}

		links, _ := env.exams.ListQuestions(exam.ID)
		if links[0].UserAnswer != nil {
			t.Error("the real link must stay unanswered")
		}
	})

	t.Run("SubmitBeforeStartRejected", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 1, 70, false)
		q := env.seedChoiceQuestion(t, schemeID, "q", "A")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})

		_, err := env.service.Submit(ctx, exam.ID, nil)
		if !errors.Is(err, examination.ErrInvalidStateTransition) {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})

	t.Run("SecondSubmitRejected", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 1, 70, false)
		q := env.seedChoiceQuestion(t, schemeID, "q", "A")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})
		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := env.service.Submit(ctx, exam.ID, nil); err != nil {
			t.Fatal(err)
		}

		_, err := env.service.Submit(ctx, exam.ID, nil)
		if !errors.Is(err, examination.ErrInvalidStateTransition) {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})
}

// runExam drives an exam with n questions through start and submit, answering
// the first `correct` of them correctly and the rest wrong.
func runExam(t *testing.T, env *testEnv, tpl *examtemplate.Template, n, correct int) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	schemeID := tpl.SchemeID

	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		ids[i] = env.seedChoiceQuestion(t, schemeID, fmt.Sprintf("tpl %s q%d", tpl.ID, i), "A").ID
	}
	exam := env.createManual(t, tpl, ids)
	if _, err := env.service.Start(ctx, exam.ID); err != nil {
		t.Fatal(err)
	}

	answers := make([]examination.SubmittedAnswer, n)
	for i := 0; i < n; i++ {
		answer := "A"
		if i >= correct {
			answer = "B"
		}
		answers[i] = examination.SubmittedAnswer{QuestionID: ids[i], Answer: answer}
	}
	if _, err := env.service.Submit(ctx, exam.ID, answers); err != nil {
		t.Fatal(err)
	}
	return exam.ID
}

func TestEvaluateExamination(t *testing.T) {
	ctx := context.Background()

	t.Run("ScoreAndPassThreshold", func(t *testing.T) {
		cases := []struct {
			name         string
			passingScore int
			wantPassed   bool
		}{
			{name: "SeventyPassesAtSeventy", passingScore: 70, wantPassed: true},
			{name: "SeventyFailsAtSeventyOne", passingScore: 71, wantPassed: false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				env := newTestEnv(1)
				tpl := env.seedTemplate(t, uuid.New(), 10, tc.passingScore, false)
				examID := runExam(t, env, tpl, 10, 7)

				evaluated, err := env.service.Evaluate(ctx, examID, uuid.New())
				if err != nil {
					t.Fatalf("evaluate: %v", err)
				}
				if evaluated.Status != examination.EVALUATED {
					t.Errorf("expected EVALUATED, got %s", evaluated.Status)
				}
				if evaluated.CorrectCount == nil || *evaluated.CorrectCount != 7 {
					t.Errorf("expected 7 correct, got %v", evaluated.CorrectCount)
				}
				if evaluated.Score == nil || *evaluated.Score != 70 {
					t.Errorf("expected score 70, got %v", evaluated.Score)
				}
				if evaluated.Passed == nil || *evaluated.Passed != tc.wantPassed {
					t.Errorf("expected passed=%v, got %v", tc.wantPassed, evaluated.Passed)
				}
			})
		}
	})

	t.Run("ZeroQuestionsScoresZero", func(t *testing.T) {
		env := newTestEnv(1)
		tpl := env.seedTemplate(t, uuid.New(), 5, 70, false)
		exam := env.createManual(t, tpl, nil)
		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := env.service.Submit(ctx, exam.ID, nil); err != nil {
			t.Fatal(err)
		}

		evaluated, err := env.service.Evaluate(ctx, exam.ID, uuid.New())
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if evaluated.Score == nil || *evaluated.Score != 0 {
			t.Errorf("expected score 0, got %v", evaluated.Score)
		}
		if evaluated.Passed == nil || *evaluated.Passed {
			t.Error("a zero-question examination cannot pass")
		}
	})

	t.Run("StampsEvaluator", func(t *testing.T) {
		env := newTestEnv(1)
		tpl := env.seedTemplate(t, uuid.New(), 1, 70, false)
		examID := runExam(t, env, tpl, 1, 1)
		evaluatorID := uuid.New()

		evaluated, err := env.service.Evaluate(ctx, examID, evaluatorID)
		if err != nil {
			t.Fatal(err)
		}
		if evaluated.EvaluatedBy == nil || *evaluated.EvaluatedBy != evaluatorID {
			t.Errorf("expected evaluator %s, got %v", evaluatorID, evaluated.EvaluatedBy)
		}
		if evaluated.EvaluatedAt == nil {
			t.Error("evaluation timestamp must be set")
		}
	})

	t.Run("EvaluateBeforeSubmitRejected", func(t *testing.T) {
		env := newTestEnv(1)
		tpl := env.seedTemplate(t, uuid.New(), 1, 70, false)
		q := env.seedChoiceQuestion(t, tpl.SchemeID, "q", "A")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})
		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}

		_, err := env.service.Evaluate(ctx, exam.ID, uuid.New())
		if !errors.Is(err, examination.ErrInvalidStateTransition) {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})

	t.Run("SecondEvaluationRejected", func(t *testing.T) {
		env := newTestEnv(1)
		tpl := env.seedTemplate(t, uuid.New(), 1, 70, false)
		examID := runExam(t, env, tpl, 1, 1)

		if _, err := env.service.Evaluate(ctx, examID, uuid.New()); err != nil {
			t.Fatal(err)
		}
		_, err := env.service.Evaluate(ctx, examID, uuid.New())
		if !errors.Is(err, examination.ErrInvalidStateTransition) {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})
}

func TestGradeQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("FreeTextOverrideCountsAtEvaluation", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 1, 70, false)
		q := env.seedFreeTextQuestion(t, schemeID, "essay")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})
		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := env.service.Submit(ctx, exam.ID, []examination.SubmittedAnswer{
			{QuestionID: q.ID, Answer: "a thorough essay"},
		}); err != nil {
			t.Fatal(err)
		}

		link, err := env.service.GradeQuestion(ctx, exam.ID, q.ID, true)
		if err != nil {
			t.Fatalf("grade: %v", err)
		}
		if link.IsCorrect == nil || !*link.IsCorrect {
			t.Fatal("manual grade must be recorded")
		}

		evaluated, err := env.service.Evaluate(ctx, exam.ID, uuid.New())
		if err != nil {
			t.Fatal(err)
		}
		if evaluated.Score == nil || *evaluated.Score != 100 {
			t.Errorf("expected score 100 after manual grade, got %v", evaluated.Score)
		}
	})

	t.Run("AutoGradableNotOverridable", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 1, 70, false)
		q := env.seedChoiceQuestion(t, schemeID, "q", "A")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})
		if _, err := env.service.Start(ctx, exam.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := env.service.Submit(ctx, exam.ID, nil); err != nil {
			t.Fatal(err)
		}

		_, err := env.service.GradeQuestion(ctx, exam.ID, q.ID, true)
		if !errors.Is(err, examination.ErrNotManuallyGradable) {
			t.Fatalf("expected ErrNotManuallyGradable, got %v", err)
		}
	})

	t.Run("OnlyWhileCompleted", func(t *testing.T) {
		env := newTestEnv(1)
		schemeID := uuid.New()
		tpl := env.seedTemplate(t, schemeID, 1, 70, false)
		q := env.seedFreeTextQuestion(t, schemeID, "essay")
		exam := env.createManual(t, tpl, []uuid.UUID{q.ID})

		_, err := env.service.GradeQuestion(ctx, exam.ID, q.ID, true)
		if !errors.Is(err, examination.ErrInvalidStateTransition) {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
	})
}

// TestCertificationScenario walks one application through the whole flow:
// a randomized 3-question exam over a 5-question pool, two answers right,
// one wrong, evaluated against a 70% threshold.
func TestCertificationScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(7)
	schemeID := uuid.New()

	for i := 0; i < 5; i++ {
		env.seedChoiceQuestion(t, schemeID, fmt.Sprintf("pool question %d", i), "A")
	}
	tpl := env.seedTemplate(t, schemeID, 3, 70, true)

	exam, err := env.service.Create(ctx, examination.CreateExaminationDTO{
		TemplateID:    tpl.ID,
		ApplicationID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(exam.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(exam.Questions))
	}

	if _, err := env.service.Start(ctx, exam.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	answers := []examination.SubmittedAnswer{
		{QuestionID: exam.Questions[0].QuestionID, Answer: "A"},
		{QuestionID: exam.Questions[1].QuestionID, Answer: "A"},
		{QuestionID: exam.Questions[2].QuestionID, Answer: "B"},
	}
	if _, err := env.service.Submit(ctx, exam.ID, answers); err != nil {
		t.Fatalf("submit: %v", err)
	}

	evaluated, err := env.service.Evaluate(ctx, exam.ID, uuid.New())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if *evaluated.CorrectCount != 2 {
		t.Errorf("expected 2 correct, got %d", *evaluated.CorrectCount)
	}
	if *evaluated.Score != 67 {
		t.Errorf("expected score 67 (rounded from 66.67), got %d", *evaluated.Score)
	}
	if *evaluated.Passed {
		t.Error("67 must not pass a 70 percent threshold")
	}
}
