package azure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/openai/openai-go/option"
)

// DefaultAPIVersion is the default Azure OpenAI API version.
const DefaultAPIVersion = "2025-04-01-preview"

// deploymentRoutes are the API paths that need the deployment name injected.
var deploymentRoutes = map[string]bool{
	"/chat/completions": true,
	"/responses":        true,
}

// ParseDeployments splits a comma-separated deployment string into a slice,
// trimming whitespace and discarding empty entries.
func ParseDeployments(value string) []string {
	var deployments []string
	for _, part := range strings.Split(value, ",") {
		if deployment := strings.TrimSpace(part); deployment != "" {
			deployments = append(deployments, deployment)
		}
	}
	return deployments
}

// BuildEndpoint appends the /openai/ suffix to the given base URL.
func BuildEndpoint(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/openai/"
}

// DeploymentMiddleware rewrites /chat/completions into
// /openai/deployments/{model}/chat/completions, which is the path Azure expects.
func DeploymentMiddleware(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	trimmedPath := strings.TrimPrefix(req.URL.Path, "/openai")
	if !strings.HasPrefix(trimmedPath, "/") {
		trimmedPath = "/" + trimmedPath
	}

	if deploymentRoutes[trimmedPath] {
		deploymentName, err := ExtractDeploymentFromBody(req)
		if err != nil {
			return nil, fmt.Errorf("failed to extract deployment name: %w", err)
		}
		req.URL.Path = "/openai/deployments/" + url.PathEscape(deploymentName) + trimmedPath
		req.URL.RawPath = ""
	}

	return next(req)
}

// ExtractDeploymentFromBody reads the model field from the JSON request body
// and restores the body for subsequent use.
func ExtractDeploymentFromBody(req *http.Request) (string, error) {
	if req.Body == nil {
		return "", errors.New("request body is nil")
	}

	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		return "", err
	}
	req.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var payload struct {
		Model string `json:"model"`
	}
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return "", err
	}
	if payload.Model == "" {
		return "", errors.New("model field is empty")
	}
	return payload.Model, nil
}
