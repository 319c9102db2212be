package azure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/openai"
	openaiapi "github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

const (
	AuthAPIKey = "apikey"
	AuthEntra  = "entra"
)

// NewClient builds the Azure OpenAI vendor. AZURE_AUTH=entra switches from API
// key authentication to Microsoft Entra ID through the default Azure credential chain.
func NewClient() (ret *Client) {
	ret = &Client{}
	ret.Client = openai.NewClientCompatibleNoSetupQuestions("Azure", ret.configure)
	ret.SetSchemaProvider("azure")

	ret.ApiKey = ret.AddSetupQuestion("API Key", false)
	ret.ApiBaseURL = ret.AddSetupQuestionCustom("API Base URL", true,
		"Enter your Azure OpenAI resource endpoint, e.g. https://my-resource.openai.azure.com")
	ret.ApiDeployments = ret.AddSetupQuestionCustom("deployments", true,
		"Enter your Azure deployments as a comma-separated list")
	ret.ApiVersion = ret.AddSetupQuestionCustom("API Version", false,
		"Enter the Azure OpenAI API version")
	ret.Auth = ret.AddSetupQuestionCustom("Auth", false,
		"Enter the authentication mode: apikey or entra")

	return
}

type Client struct {
	*openai.Client
	ApiDeployments *plugins.SetupQuestion
	ApiVersion     *plugins.SetupQuestion
	Auth           *plugins.SetupQuestion

	apiDeployments []string
}

func (oi *Client) configure() error {
	oi.apiDeployments = ParseDeployments(oi.ApiDeployments.Value)
	if len(oi.apiDeployments) == 0 {
		return errors.New("at least one Azure deployment is required")
	}

	baseURL := strings.TrimSpace(oi.ApiBaseURL.Value)
	if baseURL == "" {
		return errors.New("the Azure API base URL is required")
	}

	apiVersion := strings.TrimSpace(oi.ApiVersion.Value)
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
		oi.ApiVersion.Value = apiVersion
	}

	authOption, err := oi.authOption()
	if err != nil {
		return err
	}

	client := openaiapi.NewClient(
		authOption,
		option.WithBaseURL(BuildEndpoint(baseURL)),
		option.WithQueryAdd("api-version", apiVersion),
		option.WithMiddleware(DeploymentMiddleware),
	)
	oi.ApiClient = &client
	return nil
}

func (oi *Client) authOption() (option.RequestOption, error) {
	switch mode := strings.ToLower(strings.TrimSpace(oi.Auth.Value)); mode {
	case "", AuthAPIKey:
		apiKey := strings.TrimSpace(oi.ApiKey.Value)
		if apiKey == "" {
			return nil, errors.New("the Azure API key is required unless AZURE_AUTH=entra")
		}
		return azure.WithAPIKey(apiKey), nil
	case AuthEntra:
		credential, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %w", err)
		}
		return azure.WithTokenCredential(credential), nil
	default:
		return nil, fmt.Errorf("unknown Azure auth mode %q", mode)
	}
}

func (oi *Client) ListModels() (ret []string, err error) {
	ret = oi.apiDeployments
	return
}
