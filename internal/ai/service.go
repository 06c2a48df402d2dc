package ai

import (
	"context"
	"fmt"
	"strings"

	"resumelab/internal/config"
	"resumelab/internal/errors"
	"resumelab/internal/types"
)

// Service handles AI operations for resume processing
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIUnavailable,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// NewServiceWithProvider wires an existing provider, used by tests and by
// callers that share one provider across operations.
func NewServiceWithProvider(provider AIProvider, cfg *config.OperationAIConfig, logger *errors.Logger) *Service {
	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}
}

// ImproveResume rewrites a resume according to the requested action. The
// input is validated before any external call is made: an invalid request
// never reaches the AI service.
func (s *Service) ImproveResume(ctx context.Context, input types.ImproveResumeInput) (types.ImproveResumeOutput, *TokenUsage, error) {
	if err := validateImproveInput(input); err != nil {
		return types.ImproveResumeOutput{}, nil, err
	}

	systemPrompt, userPrompt := s.getPromptsForImprove(input)

	text, tokenUsage, err := s.generate(ctx, userPrompt, systemPrompt)
	if err != nil {
		return types.ImproveResumeOutput{}, nil, err
	}

	improved := normalizeResumeText(text)
	if improved == "" {
		return types.ImproveResumeOutput{}, nil, errors.NewAIError(errors.ErrCodeMalformedResponse,
			"AI response contained no resume text after normalization", nil)
	}

	return types.ImproveResumeOutput{
		ImprovedText: improved,
		Message:      improveMessage(input.Action),
	}, tokenUsage, nil
}

// AnalyzeResume scores a resume against a target role and returns
// structured findings parsed from the model's JSON response.
func (s *Service) AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (*types.AnalysisResult, *TokenUsage, error) {
	if err := validateAnalyzeInput(input); err != nil {
		return nil, nil, err
	}

	systemPrompt, userPrompt := s.getPromptsForAnalyze(input)

	text, tokenUsage, err := s.generate(ctx, userPrompt, systemPrompt)
	if err != nil {
		return nil, nil, err
	}

	result, err := parseAnalysisResult(text)
	if err != nil {
		s.logger.LogError(err, "Failed to parse analysis response",
			"response_length", len(text))
		return nil, nil, err
	}

	return result, tokenUsage, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

// Close shuts down the underlying provider
func (s *Service) Close() error {
	return s.Provider.Close()
}

func (s *Service) generate(ctx context.Context, userPrompt, systemPrompt string) (string, *TokenUsage, error) {
	params := GenerateParams{}
	if s.config.Temperature != nil {
		params.Temperature = *s.config.Temperature
	}
	if s.config.MaxOutputTokens != nil {
		params.MaxOutputTokens = *s.config.MaxOutputTokens
	}
	if s.config.UseSystemPrompts != nil && *s.config.UseSystemPrompts {
		params.SystemPrompt = systemPrompt
	}

	return s.Provider.Generate(ctx, s.config.Model, userPrompt, params)
}

func validateImproveInput(input types.ImproveResumeInput) error {
	if strings.TrimSpace(input.ResumeText) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume text is required", nil)
	}

	switch input.Action {
	case types.ActionAutoImprove:
		// nothing beyond resume text
	case types.ActionChatCommand:
		if strings.TrimSpace(input.Command) == "" {
			return errors.NewValidationError(errors.ErrCodeInvalidRequest,
				"Command is required for chat-command improvements", nil)
		}
	default:
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Unknown improve action: %q", input.Action), nil)
	}

	return nil
}

func validateAnalyzeInput(input types.AnalyzeResumeInput) error {
	if strings.TrimSpace(input.ResumeText) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume text is required", nil)
	}
	if strings.TrimSpace(input.TargetRole) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Target role is required for analysis", nil)
	}
	return nil
}

// getPromptsForImprove returns system and user prompts for the improve operation
func (s *Service) getPromptsForImprove(input types.ImproveResumeInput) (string, string) {
	loadedPrompts := config.GetPromptsForOperation("improve")
	systemPrompt := resolvePrompt(
		loadedPrompts.SystemPrompts.ImproveResume,
		s.config.CustomPrompts.SystemPrompts.ImproveResume,
		DefaultSystemPrompts.ImproveResume,
	)

	var userPrompt string
	switch input.Action {
	case types.ActionChatCommand:
		template := resolvePrompt(
			loadedPrompts.UserPrompts.ChatCommand,
			s.config.CustomPrompts.UserPrompts.ChatCommand,
			DefaultUserPrompts.ChatCommand,
		)
		userPrompt = fmt.Sprintf(template, input.Command, input.ResumeText)
	default:
		template := resolvePrompt(
			loadedPrompts.UserPrompts.AutoImprove,
			s.config.CustomPrompts.UserPrompts.AutoImprove,
			DefaultUserPrompts.AutoImprove,
		)
		userPrompt = fmt.Sprintf(template, targetRoleOrGeneral(input.TargetRole), areaSuffix(input.TargetArea), input.ResumeText)
	}

	return systemPrompt, userPrompt
}

// getPromptsForAnalyze returns system and user prompts for the analyze operation
func (s *Service) getPromptsForAnalyze(input types.AnalyzeResumeInput) (string, string) {
	loadedPrompts := config.GetPromptsForOperation("analyze")
	systemPrompt := resolvePrompt(
		loadedPrompts.SystemPrompts.AnalyzeResume,
		s.config.CustomPrompts.SystemPrompts.AnalyzeResume,
		DefaultSystemPrompts.AnalyzeResume,
	)

	template := resolvePrompt(
		loadedPrompts.UserPrompts.AnalyzeResume,
		s.config.CustomPrompts.UserPrompts.AnalyzeResume,
		DefaultUserPrompts.AnalyzeResume,
	)
	userPrompt := fmt.Sprintf(template, targetRoleOrGeneral(input.TargetRole), areaSuffix(input.TargetArea), input.ResumeText)

	return systemPrompt, userPrompt
}

// resolvePrompt implements prompt priority: file > config > default
func resolvePrompt(filePrompt, configPrompt, defaultPrompt string) string {
	if filePrompt != "" {
		return filePrompt
	}
	if configPrompt != "" {
		return configPrompt
	}
	return defaultPrompt
}

func targetRoleOrGeneral(role string) string {
	if strings.TrimSpace(role) == "" {
		return "general professional"
	}
	return role
}

func areaSuffix(area string) string {
	if strings.TrimSpace(area) == "" {
		return ""
	}
	return fmt.Sprintf(" in the %s area", area)
}

func improveMessage(action types.ImproveAction) string {
	if action == types.ActionChatCommand {
		return "Resume updated according to your command"
	}
	return "Resume improved automatically"
}
