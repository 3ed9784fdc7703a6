package internal

import "github.com/starford/ansuz/internal/ai"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config      *Config
	transcriber ai.Transcriber
	summarizer  ai.Summarizer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithTranscriber overrides the transcription service. Used in tests.
func WithTranscriber(t ai.Transcriber) Option {
	return func(a *application) {
		a.transcriber = t
	}
}

// WithSummarizer overrides the summarization service. Used in tests.
func WithSummarizer(s ai.Summarizer) Option {
	return func(a *application) {
		a.summarizer = s
	}
}
