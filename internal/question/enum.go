package question

type QuestionType string

const (
	SINGLE_CHOICE QuestionType = "SINGLE_CHOICE"
	TRUE_FALSE    QuestionType = "TRUE_FALSE"
	FREE_TEXT     QuestionType = "FREE_TEXT"
)

var AllTypes = []QuestionType{
	SINGLE_CHOICE,
	TRUE_FALSE,
	FREE_TEXT,
}

func (t QuestionType) IsValid() bool {
	for _, v := range AllTypes {
		if t == v {
			return true
		}
	}
	return false
}

// AutoGradable reports whether an answer of this type can be graded by
// comparing tokens. Free-text answers always require manual grading.
func (t QuestionType) AutoGradable() bool {
	return t == SINGLE_CHOICE || t == TRUE_FALSE
}

const (
	TokenTrue  = "TRUE"
	TokenFalse = "FALSE"
)

type Difficulty string

const (
	EASY   Difficulty = "EASY"
	MEDIUM Difficulty = "MEDIUM"
	HARD   Difficulty = "HARD"
)

var AllDifficulties = []Difficulty{
	EASY,
	MEDIUM,
	HARD,
}

func (d Difficulty) IsValid() bool {
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}
