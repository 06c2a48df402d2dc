package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	if opCfg.MaxOutputTokens == nil {
		opCfg.MaxOutputTokens = &c.AI.MaxOutputTokens
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetImproveConfig returns the AI configuration for improve operations with fallback to global config
func (c *Config) GetImproveConfig() OperationAIConfig {
	config := c.AI.Improve

	c.applyOperationDefaults(&config)

	// Apply improve-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ImproveResume == "" {
		config.CustomPrompts.SystemPrompts.ImproveResume = c.AI.CustomPrompts.SystemPrompts.ImproveResume
	}
	if config.CustomPrompts.UserPrompts.AutoImprove == "" {
		config.CustomPrompts.UserPrompts.AutoImprove = c.AI.CustomPrompts.UserPrompts.AutoImprove
	}
	if config.CustomPrompts.UserPrompts.ChatCommand == "" {
		config.CustomPrompts.UserPrompts.ChatCommand = c.AI.CustomPrompts.UserPrompts.ChatCommand
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ImproveResumeFile == "" {
		config.CustomPrompts.SystemPrompts.ImproveResumeFile = c.AI.CustomPrompts.SystemPrompts.ImproveResumeFile
	}
	if config.CustomPrompts.UserPrompts.AutoImproveFile == "" {
		config.CustomPrompts.UserPrompts.AutoImproveFile = c.AI.CustomPrompts.UserPrompts.AutoImproveFile
	}
	if config.CustomPrompts.UserPrompts.ChatCommandFile == "" {
		config.CustomPrompts.UserPrompts.ChatCommandFile = c.AI.CustomPrompts.UserPrompts.ChatCommandFile
	}

	return config
}

// GetAnalyzeConfig returns the AI configuration for analyze operations with fallback to global config
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze

	c.applyOperationDefaults(&config)

	// Apply analyze-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.AnalyzeResume == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResume = c.AI.CustomPrompts.SystemPrompts.AnalyzeResume
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResume == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResume = c.AI.CustomPrompts.UserPrompts.AnalyzeResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.SystemPrompts.AnalyzeResumeFile
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.UserPrompts.AnalyzeResumeFile
	}

	return config
}
