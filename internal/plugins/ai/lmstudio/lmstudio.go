package lmstudio

import (
	"github.com/noteweaver/noteweaver/internal/plugins/ai/openai"
	openaiapi "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultBaseURL = "http://localhost:1234/v1"

// NewClient builds the LM Studio vendor on top of its OpenAI-compatible server.
// LM Studio ignores the API key, so none is asked for.
func NewClient() (ret *Client) {
	ret = &Client{}
	ret.Client = openai.NewClientCompatibleNoSetupQuestions("LM Studio", ret.configure)
	ret.SetSchemaProvider("lmstudio")
	ret.ApiBaseURL = ret.AddSetupQuestion("API URL", true)
	ret.ApiBaseURL.Value = DefaultBaseURL
	return
}

type Client struct {
	*openai.Client
}

func (c *Client) configure() error {
	client := openaiapi.NewClient(
		option.WithBaseURL(c.ApiBaseURL.Value),
		option.WithAPIKey("lm-studio"),
	)
	c.ApiClient = &client
	return nil
}
