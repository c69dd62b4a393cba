package questiongen

import "github.com/google/uuid"

// DraftOption mirrors question.Option so drafts can be pasted straight into
// the bank's create endpoint after review.
type DraftOption struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type DraftQuestion struct {
	Text          string        `json:"text"`
	Type          string        `json:"type"`
	Options       []DraftOption `json:"options"`
	CorrectAnswer string        `json:"correct_answer"`
	Explanation   string        `json:"explanation"`
	Difficulty    string        `json:"difficulty"`
}

type DraftRequest struct {
	SchemeID   uuid.UUID `json:"scheme_id"`
	Topic      string    `json:"topic"`
	Difficulty string    `json:"difficulty"`
	Count      int       `json:"count"`
}

type DraftResponse struct {
	SchemeID  uuid.UUID       `json:"scheme_id"`
	Questions []DraftQuestion `json:"questions"`
}
