// Package app assembles the newsroom services and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/deusflow/newsroom/internal/cache"
	"github.com/deusflow/newsroom/internal/config"
	"github.com/deusflow/newsroom/internal/credentials"
	"github.com/deusflow/newsroom/internal/llm"
	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/metrics"
	"github.com/deusflow/newsroom/internal/ratelimit"
	"github.com/deusflow/newsroom/internal/rss"
	"github.com/deusflow/newsroom/internal/scraper"
	"github.com/deusflow/newsroom/internal/server"
	"github.com/deusflow/newsroom/internal/speech"
	"github.com/deusflow/newsroom/internal/summary"
	"github.com/deusflow/newsroom/internal/topics"
	"github.com/deusflow/newsroom/internal/translate"
	"github.com/deusflow/newsroom/internal/writer"
)

const shutdownTimeout = 10 * time.Second

const (
	providerOpenAI = "openai"
	providerGemini = "gemini"
)

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	limiter := newLimiter(cfg)
	completer, closeLLM, err := newCompleter(ctx, cfg, limiter)
	if err != nil {
		return err
	}
	defer closeLLM()

	deps, closeSpeech := newSpeech(ctx)
	defer closeSpeech()

	fetcher := scraper.NewFetcher(cfg.FetchTimeout)
	static := scraper.NewStaticRenderer(fetcher)
	var renderer scraper.Renderer = static

	articleStages := []scraper.Stage{scraper.NewReadability(fetcher)}
	var pageStages []scraper.Stage
	if cfg.BrowserEnabled {
		renderer = scraper.NewChrome(cfg.BrowserTimeout, cfg.BrowserWait)
		articleStages = append(articleStages, scraper.NewBrowser(renderer))
		vnBrowser := scraper.NewBrowser(renderer)
		vnBrowser.OnlyVietnamese = true
		pageStages = append(pageStages, vnBrowser)
	} else {
		logger.Info("headless browser disabled, using static extraction only")
	}
	articleStages = append(articleStages, scraper.NewSelectors(fetcher))
	pageStages = append(pageStages, scraper.NewSelectors(fetcher))

	articles := scraper.NewWaterfall(scraper.ArticleThreshold, articleStages...).OnAccept(metrics.Global.IncrementStageWin)
	pages := scraper.NewWaterfall(scraper.TranslateThreshold, pageStages...).OnAccept(metrics.Global.IncrementStageWin)

	feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		logger.Warn("feeds not loaded, news topics use the curated table", "path", cfg.FeedsConfigPath, "error", err)
	}

	digestCache := cache.New[summary.DigestResult](cfg.CacheTTL)
	ttsCache := cache.New[speech.TTSResult](cfg.CacheTTL)
	go digestCache.Run(ctx, cfg.CacheCleanupInterval)
	go ttsCache.Run(ctx, cfg.CacheCleanupInterval)

	deps.Writer = writer.New(completer)
	deps.Topics = topics.NewService(completer, rss.NewReader(cfg.FetchTimeout), feeds)
	deps.Translate = translate.NewService(completer, pages)
	deps.Summary = summary.NewService(completer, scraper.NewLinkFinder(renderer), articles)
	deps.Digest = summary.NewDigester(completer, scraper.NewLinkFinder(static), articles, digestCache)
	deps.TTS = speech.NewTTS(deps.synth, ttsCache)
	deps.STT = speech.NewSTT(deps.rec)
	deps.Limiter = limiter
	deps.Metrics = metrics.Global
	deps.RequestTimeout = cfg.RequestTimeout

	srv := server.New(deps.Deps)
	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("newsroom server starting", "addr", cfg.BindAddr, "llm", cfg.LLMProvider, "llm_ready", completer != nil, "tts_demo", deps.TTS.Demo(), "browser", cfg.BrowserEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newLimiter(cfg *config.Config) *ratelimit.AILimiter {
	limiter := ratelimit.NewAILimiter(cfg.MaxAIRequestsPerDay, cfg.AIRequestsPerSecond, cfg.AIRequestsBurst)
	limiter.SetProviderLimit(providerOpenAI, cfg.MaxOpenAIRequestsPerDay)
	limiter.SetProviderLimit(providerGemini, cfg.MaxGeminiRequestsPerDay)
	return limiter
}

// newCompleter returns a nil Completer when the chosen provider has no key;
// the AI endpoints then answer with a configuration error.
func newCompleter(ctx context.Context, cfg *config.Config, limiter *ratelimit.AILimiter) (llm.Completer, func(), error) {
	switch cfg.LLMProvider {
	case providerGemini:
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY not set, AI endpoints disabled")
			return nil, func() {}, nil
		}
		g, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return llm.Limited(g, limiter, providerGemini), g.Close, nil
	default:
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("OPENAI_API_KEY not set, AI endpoints disabled")
			return nil, func() {}, nil
		}
		return llm.Limited(llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), limiter, providerOpenAI), func() {}, nil
	}
}

// services collects the server dependencies while they are being built.
type services struct {
	server.Deps
	synth speech.Synthesizer
	rec   speech.Recognizer
}

// newSpeech creates the Google clients when a service account is available.
// Any failure leaves the matching service in demo mode.
func newSpeech(ctx context.Context) (*services, func()) {
	d := &services{}
	closers := []func() error{}
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("close speech client", "error", err)
			}
		}
	}

	sa, err := credentials.Load(os.Getenv)
	if err != nil {
		logger.Warn("Google Cloud credentials not found, speech runs in demo mode", "error", err)
		return d, closeAll
	}
	logger.Info("Google Cloud credentials loaded", "source", sa.Source, "project", sa.ProjectID)

	tts, err := speech.NewGoogleTTS(ctx, sa)
	if err != nil {
		logger.Error("TTS client init failed, using demo mode", "error", err)
		d.TTSInitErr = err
	} else {
		d.synth = tts
		d.TTSProbe = tts
		closers = append(closers, tts.Close)
	}

	stt, err := speech.NewGoogleSTT(ctx, sa)
	if err != nil {
		logger.Error("STT client init failed, using demo mode", "error", err)
	} else {
		d.rec = stt
		closers = append(closers, stt.Close)
	}
	return d, closeAll
}
