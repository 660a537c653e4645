package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Job statuses reported by the ingestion status endpoint.
const (
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusUnknown   = "unknown"
)

const DefaultCollectionName = "default"

// ChatHistoryLimit is the number of prior messages included in the prompt.
const ChatHistoryLimit = 10

const (
	AnswerTemperature = 0.7
	AnswerMaxTokens   = 1024
)

// NoRelevantInfoMessage is returned without calling the completion
// endpoint when retrieval produces no context.
const NoRelevantInfoMessage = "I couldn't find any relevant information in the documents."

// GenericAnswerErrorMessage is the only error surface the query caller
// ever sees. Internal detail goes to the logs.
const GenericAnswerErrorMessage = "I encountered an error processing your search."

const QASystemPrompt = `You are a helpful Q&A assistant for a knowledge base. Your role is to answer questions based on the provided context from documents.

Guidelines:
1. Answer questions based ONLY on the provided document context.
2. If there is previous conversation history, use it to understand follow-up questions and maintain context.
3. If the answer is not in the provided context, say you don't know.
4. Be concise but thorough in your responses.
5. When referencing information, be clear about what you're basing your answer on.`
