package config

const (
	quizNoTimeLimitVar = "QUIZ_NO_TIME_LIMIT"
	quizEasyVar        = "QUIZ_EASY"
)

// QuizSettings is the quiz play configuration handed to the rendering layer.
type QuizSettings struct {
	NoTimeLimit bool `json:"noTimeLimit"`
	Easy        bool `json:"easy"`
}

type QuizConfig interface {
	GetQuizSettings() QuizSettings
}

type Quiz struct{}

var _ QuizConfig = Quiz{}

func (Quiz) GetQuizSettings() QuizSettings {
	return QuizSettings{
		NoTimeLimit: GetBool(quizNoTimeLimitVar, true),
		Easy:        GetBool(quizEasyVar, true),
	}
}
