package questiongen

import "fmt"

const systemPrompt = `
You generate draft exam questions for a professional competency certification body.

Rules:
1. Every question tests one competency topic supplied by the administrator.
2. Each question has exactly one correct answer.
3. Use type "SINGLE_CHOICE" with four options coded "A" through "D", or type "TRUE_FALSE" with correct answer "TRUE" or "FALSE".
4. Classify difficulty as "EASY", "MEDIUM" or "HARD".
5. Distractors must be plausible; never make the correct option obviously longer or more technical.
6. Return pure, valid JSON, no text outside the JSON.

Expected JSON format:

[
  {
    "text": "<question statement>",
    "type": "SINGLE_CHOICE",
    "options": [
      {"code": "A", "text": "..."},
      {"code": "B", "text": "..."},
      {"code": "C", "text": "..."},
      {"code": "D", "text": "..."}
    ],
    "correct_answer": "C",
    "explanation": "<short explanation of the correct answer>",
    "difficulty": "MEDIUM"
  }
]
`

func BuildUserPrompt(req DraftRequest) string {
	count := req.Count
	if count <= 0 {
		count = 3
	}
	if count > 10 {
		count = 10
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "MEDIUM"
	}

	return fmt.Sprintf(
		"Generate %d draft questions on the topic %q with difficulty %q. "+
			"Follow the JSON format from the system prompt exactly, including the explanation field. "+
			"These are drafts for human review, so keep statements self-contained and unambiguous.",
		count, req.Topic, difficulty,
	)
}
