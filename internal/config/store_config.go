package config

import "time"

const (
	questionStoreVar        = "QUESTION_STORE"
	questionsWebhookURLVar  = "QUESTIONS_WEBHOOK_URL"
	questionStoreTimeoutVar = "QUESTION_STORE_TIMEOUT"
	databaseURLVar          = "DATABASE_URL"
	sessionStoreVar         = "SESSION_STORE"
	redisAddrVar            = "REDIS_ADDR"
	redisPasswordVar        = "REDIS_PASSWORD"
)

// Question store backends.
const (
	QuestionStoreWebhook  = "webhook"
	QuestionStorePostgres = "postgres"
	QuestionStoreMemory   = "memory"
)

// Session registry backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type StoreConfig interface {
	GetQuestionStore() string
	GetQuestionsWebhookURL() string
	GetQuestionStoreTimeout() time.Duration
	GetDatabaseURL() string
	GetSessionStore() string
	GetRedisAddr() string
	GetRedisPassword() string
}

type Stores struct{}

var _ StoreConfig = Stores{}

func (Stores) GetQuestionStore() string {
	return GetEnv(questionStoreVar, QuestionStoreWebhook)
}

func (Stores) GetQuestionsWebhookURL() string {
	return GetEnv(questionsWebhookURLVar, "")
}

func (Stores) GetQuestionStoreTimeout() time.Duration {
	return GetDuration(questionStoreTimeoutVar, 5*time.Second)
}

func (Stores) GetDatabaseURL() string {
	return GetEnv(databaseURLVar, "")
}

func (Stores) GetSessionStore() string {
	return GetEnv(sessionStoreVar, SessionStoreMemory)
}

func (Stores) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (Stores) GetRedisPassword() string {
	return GetEnv(redisPasswordVar, "")
}
