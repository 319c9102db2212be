package chat

const (
	ChatMessageRoleSystem    = "system"
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// ChatCompletionMessage is the vendor-neutral message handed to AI plugins.
type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
}

func NewSystemMessage(content string) *ChatCompletionMessage {
	return &ChatCompletionMessage{Role: ChatMessageRoleSystem, Content: content}
}

func NewUserMessage(content string) *ChatCompletionMessage {
	return &ChatCompletionMessage{Role: ChatMessageRoleUser, Content: content}
}
