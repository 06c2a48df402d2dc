package server

import (
	"fmt"
	"time"

	"resumelab/internal/config"
	resumelabErrors "resumelab/internal/errors"
	"resumelab/internal/keywords"
	"resumelab/internal/store"
	"resumelab/internal/suggest"
)

// ImproveRequest represents the request body for the improve endpoint
type ImproveRequest struct {
	ResumeText string `json:"resumeText"`
	TargetRole string `json:"targetRole"`
	TargetArea string `json:"targetArea,omitempty"`
	Action     string `json:"action"`
	Command    string `json:"command,omitempty"`
}

// AnalyzeRequest represents the request body for the analyze endpoint
type AnalyzeRequest struct {
	ResumeText string `json:"resumeText"`
	TargetRole string `json:"targetRole"`
	TargetArea string `json:"targetArea,omitempty"`
}

// SuggestRequest represents the request body for the suggest endpoint
type SuggestRequest struct {
	ResumeText string `json:"resumeText"`
	TargetRole string `json:"targetRole,omitempty"`
	TargetArea string `json:"targetArea,omitempty"`
	Section    string `json:"section,omitempty"`
}

// SaveResumeRequest represents the request body for creating a resume record
type SaveResumeRequest struct {
	Name       string `json:"name,omitempty"`
	Text       string `json:"text"`
	TargetRole string `json:"targetRole,omitempty"`
	TargetArea string `json:"targetArea,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Resume persistence
	Store store.Store

	// Heuristic suggestion engine and its keyword profiles
	Keywords       *keywords.Registry
	KeywordWatcher *keywords.Watcher
	Suggest        *suggest.Engine

	// Logger
	Logger *resumelabErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct.
// The resume store and keyword registry are built from the application
// configuration so the caller only decides transport-level settings.
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *resumelabErrors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	resumeStore, err := newStoreFromConfig(appCfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume store: %w", err)
	}

	registry := keywords.NewRegistry()
	engine := suggest.NewEngine(registry)

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Store:          resumeStore,
		Keywords:       registry,
		Suggest:        engine,
		Logger:         logger,
	}, nil
}

// newStoreFromConfig selects the resume store backend
func newStoreFromConfig(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return store.NewSQLiteStore(cfg.Path)
	case "memory", "":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
