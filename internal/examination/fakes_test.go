package examination_test

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fikshb/LSPLMS-sub000/internal/examination"
	"github.com/fikshb/LSPLMS-sub000/internal/examtemplate"
	"github.com/fikshb/LSPLMS-sub000/internal/question"
)

// In-memory repository fakes so the service logic runs without a database.

type fakeExamRepo struct {
	exams map[uuid.UUID]*examination.Examination
	links map[uuid.UUID][]*examination.ExamQuestion
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{
		exams: map[uuid.UUID]*examination.Examination{},
		links: map[uuid.UUID][]*examination.ExamQuestion{},
	}
}

func (r *fakeExamRepo) CreateWithQuestions(e *examination.Examination, links []*examination.ExamQuestion) error {
	stored := *e
	r.exams[e.ID] = &stored
	r.links[e.ID] = append(r.links[e.ID], links...)
	return nil
}

func (r *fakeExamRepo) FindByID(id uuid.UUID) (*examination.Examination, error) {
	e, ok := r.exams[id]
	if !ok {
		return nil, nil
	}
	out := *e
	links := r.links[id]
	sorted := make([]*examination.ExamQuestion, len(links))
	copy(sorted, links)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	out.Questions = make([]examination.ExamQuestion, len(sorted))
	for i, link := range sorted {
		out.Questions[i] = *link
	}
	return &out, nil
}

func (r *fakeExamRepo) FindAllByApplication(applicationID uuid.UUID) ([]examination.Examination, error) {
	var out []examination.Examination
	for _, e := range r.exams {
		if e.ApplicationID == applicationID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExamRepo) ListQuestions(examinationID uuid.UUID) ([]*examination.ExamQuestion, error) {
	links := r.links[examinationID]
	sorted := make([]*examination.ExamQuestion, len(links))
	copy(sorted, links)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	return sorted, nil
}

func (r *fakeExamRepo) FindQuestionLink(examinationID, questionID uuid.UUID) (*examination.ExamQuestion, error) {
	for _, link := range r.links[examinationID] {
		if link.QuestionID == questionID {
			return link, nil
		}
	}
	return nil, nil
}

func (r *fakeExamRepo) applyUpdates(e *examination.Examination, updates map[string]interface{}) {
	for key, value := range updates {
		switch key {
		case "status":
			e.Status = value.(examination.Status)
		case "start_time":
			t := value.(time.Time)
			e.StartTime = &t
		case "end_time":
			t := value.(time.Time)
			e.EndTime = &t
		case "total_questions":
			e.TotalQuestions = value.(int)
		case "correct_count":
			n := value.(int)
			e.CorrectCount = &n
		case "score":
			n := value.(int)
			e.Score = &n
		case "passed":
			b := value.(bool)
			e.Passed = &b
		case "evaluated_by":
			id := value.(uuid.UUID)
			e.EvaluatedBy = &id
		case "evaluated_at":
			t := value.(time.Time)
			e.EvaluatedAt = &t
		}
	}
}

func (r *fakeExamRepo) TransitionStatus(id uuid.UUID, from, to examination.Status, updates map[string]interface{}) (bool, error) {
	e, ok := r.exams[id]
	if !ok || e.Status != from {
		return false, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to
	r.applyUpdates(e, updates)
	return true, nil
}

func (r *fakeExamRepo) SubmitAnswers(id uuid.UUID, from, to examination.Status, updates map[string]interface{}, links []*examination.ExamQuestion) (bool, error) {
	return r.TransitionStatus(id, from, to, updates)
}

func (r *fakeExamRepo) AttachQuestions(links []*examination.ExamQuestion) error {
	for _, link := range links {
		r.links[link.ExaminationID] = append(r.links[link.ExaminationID], link)
	}
	return nil
}

func (r *fakeExamRepo) UpdateQuestion(link *examination.ExamQuestion) error {
	for i, stored := range r.links[link.ExaminationID] {
		if stored.ID == link.ID {
			r.links[link.ExaminationID][i] = link
			return nil
		}
	}
	return nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*examtemplate.Template
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[uuid.UUID]*examtemplate.Template{}}
}

func (r *fakeTemplateRepo) Create(t *examtemplate.Template) error {
	stored := *t
	r.templates[t.ID] = &stored
	return nil
}

func (r *fakeTemplateRepo) FindByID(id uuid.UUID) (*examtemplate.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	out := *t
	return &out, nil
}

func (r *fakeTemplateRepo) FindAll(schemeID *uuid.UUID) ([]examtemplate.Template, error) {
	var out []examtemplate.Template
	for _, t := range r.templates {
		if schemeID == nil || t.SchemeID == *schemeID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(t *examtemplate.Template) error {
	stored := *t
	r.templates[t.ID] = &stored
	return nil
}

func (r *fakeTemplateRepo) Delete(id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) CountExamReferences(id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*question.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[uuid.UUID]*question.Question{}}
}

func (r *fakeQuestionRepo) Create(q *question.Question) error {
	stored := *q
	r.questions[q.ID] = &stored
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uuid.UUID) (*question.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	out := *q
	return &out, nil
}

func (r *fakeQuestionRepo) FindAll(filter question.ListFilter) ([]question.Question, error) {
	var out []question.Question
	for _, q := range r.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindActiveByScheme(schemeID uuid.UUID) ([]question.Question, error) {
	var out []question.Question
	for _, q := range r.questions {
		if q.SchemeID == schemeID && q.IsActive {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Text < out[j].Text
	})
	return out, nil
}

func (r *fakeQuestionRepo) Update(q *question.Question) error {
	stored := *q
	r.questions[q.ID] = &stored
	return nil
}

func (r *fakeQuestionRepo) Delete(id uuid.UUID) error {
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) CountExamReferences(id uuid.UUID) (int64, error) {
	return 0, nil
}
