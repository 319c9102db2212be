// Package azureaigateway talks to language models published behind an Azure API
// Management gateway. The gateway fronts one of several backends (AWS Bedrock,
// Azure OpenAI, Google Vertex AI) and only the request and response shapes differ.
package azureaigateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/ai"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

const (
	providerName   = "AzureAIGateway"
	gatewayTimeout = 300 * time.Second
	maxErrorBody   = 200
)

var _ ai.Vendor = (*Client)(nil)

// Backend is what one gateway backend contributes: its path, auth header and wire format.
type Backend interface {
	ListModels() ([]string, error)
	BuildEndpoint(baseURL, model string) string
	// AuthHeader returns the header carrying the subscription key.
	AuthHeader() (name, value string)
	// PrepareRequest encodes msgs, embedding opts.SchemaContent when structured output is requested.
	PrepareRequest(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) ([]byte, error)
	ParseResponse(body []byte) (string, error)
}

type Client struct {
	*plugins.PluginBase
	BackendType     *plugins.SetupQuestion
	GatewayURL      *plugins.SetupQuestion
	SubscriptionKey *plugins.SetupQuestion

	backend    Backend
	httpClient *http.Client
}

func NewClient() *Client {
	c := &Client{}
	c.PluginBase = &plugins.PluginBase{
		Name:            providerName,
		EnvNamePrefix:   plugins.BuildEnvVariablePrefix(providerName),
		ConfigureCustom: c.configure,
	}
	c.BackendType = c.AddSetupQuestionCustom("backend", false,
		"Select backend type (bedrock, azure-openai, vertex-ai)")
	c.GatewayURL = c.AddSetupQuestionCustom("gateway_url", true,
		"Enter your Azure APIM Gateway base URL, e.g. https://gateway.company.com")
	c.SubscriptionKey = c.AddSetupQuestionCustom("subscription_key", true,
		"Enter your Azure APIM subscription key")
	return c
}

func (c *Client) configure() error {
	parsed, err := url.Parse(c.GatewayURL.Value)
	if err != nil {
		return fmt.Errorf("invalid gateway URL: %w", err)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("gateway URL must use HTTPS scheme, got %q", parsed.Scheme)
	}

	backendType := strings.ToLower(strings.TrimSpace(c.BackendType.Value))
	if backendType == "" {
		backendType = "bedrock"
		c.BackendType.Value = backendType
	}
	backend, err := NewBackend(backendType, c.SubscriptionKey.Value)
	if err != nil {
		return err
	}
	c.backend = backend
	c.httpClient = &http.Client{Timeout: gatewayTimeout}
	return nil
}

// NewBackend picks the backend implementation by its configured name.
func NewBackend(backendType, subscriptionKey string) (Backend, error) {
	switch backendType {
	case "bedrock":
		return NewBedrockBackend(subscriptionKey), nil
	case "azure-openai":
		return NewAzureOpenAIBackend(subscriptionKey), nil
	case "vertex-ai":
		return NewVertexAIBackend(subscriptionKey), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s (valid options: bedrock, azure-openai, vertex-ai)", backendType)
	}
}

func (c *Client) SchemaProvider() string {
	return "azureaigateway"
}

func (c *Client) ListModels() ([]string, error) {
	if c.backend == nil {
		return nil, fmt.Errorf(i18n.T("vendor_not_configured"), providerName)
	}
	return c.backend.ListModels()
}

func (c *Client) Send(ctx context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (string, error) {
	if c.backend == nil {
		return "", fmt.Errorf(i18n.T("vendor_not_configured"), providerName)
	}

	body, err := c.backend.PrepareRequest(msgs, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", providerName, err)
	}

	endpoint := c.backend.BuildEndpoint(c.GatewayURL.Value, opts.Model)
	debuglog.Debug(debuglog.Detailed, "%s request to %s", providerName, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: failed to create request: %w", providerName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	headerName, headerValue := c.backend.AuthHeader()
	req.Header.Set(headerName, headerValue)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: HTTP request failed: %w", providerName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read response: %w", providerName, err)
	}
	debuglog.Debug(debuglog.Detailed, "%s response status: %d", providerName, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		errMsg := string(respBody)
		if len(errMsg) > maxErrorBody {
			errMsg = errMsg[:maxErrorBody] + "... (truncated)"
		}
		return "", fmt.Errorf("%s: HTTP %d: %s", providerName, resp.StatusCode, errMsg)
	}

	text, err := c.backend.ParseResponse(respBody)
	if err != nil {
		return "", err
	}
	return schema.Default().HandleResponseParsing(c.SchemaProvider(), text)
}

// splitSystem separates system prompts from the conversation and drops blank messages.
func splitSystem(msgs []*chat.ChatCompletionMessage) (system string, rest []*chat.ChatCompletionMessage) {
	var systemParts []string
	for _, msg := range msgs {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		if msg.Role == chat.ChatMessageRoleSystem {
			systemParts = append(systemParts, msg.Content)
			continue
		}
		rest = append(rest, msg)
	}
	return strings.Join(systemParts, "\n\n"), rest
}
