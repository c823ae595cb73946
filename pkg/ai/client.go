package ai

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"storefront.dev/shop/pkg/global"
)

var client *openai.Client
var deploymentName string
var isInitialized bool

// InitializeAIService initializes the Azure OpenAI client from cfg. Without
// an endpoint and key the service stays disabled and reports carry raw data only.
func InitializeAIService(cfg *global.Config) {
	if cfg.AzureOpenAIEndpoint == "" || cfg.AzureOpenAIKey == "" {
		global.Log.Info("AI service disabled - Azure OpenAI credentials not provided")
		isInitialized = false
		return
	}

	clientValue := openai.NewClient(
		option.WithBaseURL(cfg.AzureOpenAIEndpoint),
		option.WithAPIKey(cfg.AzureOpenAIKey),
	)
	client = &clientValue
	deploymentName = cfg.AzureOpenAIDeployment

	isInitialized = true
	global.Log.WithField("deployment", deploymentName).Info("AI service initialized with Azure OpenAI")
}

// IsEnabled returns whether the AI service is properly initialized
func IsEnabled() bool {
	return isInitialized && client != nil
}

func generateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if !IsEnabled() {
		return "", &AIError{Message: "AI service is not enabled"}
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(deploymentName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemMessage),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userMessage),
					},
				},
			},
		},
		MaxTokens:   openai.Int(1000),
		Temperature: openai.Float(0.5),
	})
	if err != nil {
		global.Log.WithError(err).Error("AI completion failed")
		return "", &AIError{Message: "Failed to generate AI response", Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{Message: "AI returned empty response"}
	}

	return resp.Choices[0].Message.Content, nil
}

type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AIError) Unwrap() error {
	return e.Cause
}
