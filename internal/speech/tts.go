package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deusflow/newsroom/internal/cache"
	"github.com/deusflow/newsroom/internal/logger"
)

// Synthesizer turns text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, in SynthesisInput) ([]byte, error)
}

type SynthesisInput struct {
	Text     string
	Language string
	Voice    string
	// Rate is already clamped to the range the API accepts.
	Rate float64
}

type TTSRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Voice    string  `json:"voice"`
	Speed    float64 `json:"speed"`
}

type TTSResult struct {
	Success        bool   `json:"success"`
	AudioURL       string `json:"audioUrl"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	VoiceUsed      string `json:"voiceUsed"`
	Quality        string `json:"quality"`
	ProcessingTime string `json:"processingTime,omitempty"`
	FromCache      bool   `json:"fromCache"`
	CacheAge       string `json:"cacheAge,omitempty"`
	DemoMode       bool   `json:"demoMode,omitempty"`
	Note           string `json:"note,omitempty"`
}

// TTS answers synthesis requests, from cache when it can. A nil Synthesizer
// puts it in demo mode.
type TTS struct {
	synth Synthesizer
	cache *cache.Cache[TTSResult]
}

func NewTTS(synth Synthesizer, c *cache.Cache[TTSResult]) *TTS {
	return &TTS{synth: synth, cache: c}
}

func (t *TTS) Demo() bool {
	return t.synth == nil
}

func (t *TTS) Health(now time.Time) Health {
	if t.Demo() {
		return Health{
			Success:            true,
			Message:            "Demo Text-to-Speech API is working",
			Version:            "1.0.0-demo",
			Mode:               ModeDemo,
			Note:               "This is a demo endpoint. Real TTS requires Google Cloud credentials.",
			SupportedLanguages: demoLanguageNames,
			Features:           []string{"Demo audio generation", "Speed simulation", "Voice options"},
			Timestamp:          now.UTC().Format(time.RFC3339),
		}
	}
	return Health{
		Success:            true,
		Message:            "Google Cloud Text-to-Speech API is working",
		Version:            "1.0.0",
		Mode:               ModeProduction,
		SupportedLanguages: languageNames,
		Features:           []string{"Multiple voices", "Speed control", "High quality audio", "MP3 output"},
		Status:             "Connected",
		Timestamp:          now.UTC().Format(time.RFC3339),
	}
}

func ttsCacheKey(req TTSRequest) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(req.Text))
	if len(encoded) > 50 {
		encoded = encoded[:50]
	}
	return fmt.Sprintf("%s_%s_%s_%s", req.Language, req.Voice, formatFloat(req.Speed), encoded)
}

func cacheAge(age time.Duration) string {
	return fmt.Sprintf("%d minutes", int(math.Round(age.Minutes())))
}

// Speak synthesises req.Text. Invalid input yields *InputError and upstream
// failures *ServiceError.
func (t *TTS) Speak(ctx context.Context, req TTSRequest) (*TTSResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &InputError{Message: "Text is required"}
	}
	if utf8.RuneCountInString(req.Text) > MaxTextLength {
		return nil, &InputError{Message: fmt.Sprintf("Text too long. Maximum %d characters allowed.", MaxTextLength)}
	}
	if req.Language == "" {
		req.Language = DefaultLanguage
	}
	if req.Speed <= 0 {
		req.Speed = 1.0
	}

	key := ttsCacheKey(req)
	if t.Demo() {
		key = "demo_" + key
	}
	if cached, age, ok := t.cache.Get(key); ok {
		logger.Debug("serving TTS from cache", "key", key)
		cached.FromCache = true
		cached.CacheAge = cacheAge(age)
		cached.ProcessingTime = ""
		return &cached, nil
	}

	voice := req.Voice
	if voice == "" {
		voice = DefaultVoice(req.Language)
	}

	var result TTSResult
	if t.Demo() {
		result = t.demo(req, voice)
	} else {
		if !ValidVoice(voice, req.Language) {
			return nil, &InputError{Message: fmt.Sprintf("Invalid voice %q for language %q", voice, req.Language)}
		}
		start := time.Now()
		audio, err := t.synth.Synthesize(ctx, SynthesisInput{
			Text:     strings.TrimSpace(req.Text),
			Language: req.Language,
			Voice:    voice,
			Rate:     math.Max(0.25, math.Min(4.0, req.Speed)),
		})
		if err != nil {
			logger.Error("TTS failed", "language", req.Language, "voice", voice, "error", err)
			return nil, ttsError(err)
		}
		result = TTSResult{
			Success:        true,
			AudioURL:       "data:audio/mp3;base64," + base64.StdEncoding.EncodeToString(audio),
			Duration:       EstimateDuration(req.Text, req.Speed),
			Size:           FormatAudioSize(float64(len(audio))),
			VoiceUsed:      voice,
			Quality:        quality(voice, ""),
			ProcessingTime: fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
		}
	}

	t.cache.Set(key, result)
	logger.Info("audio generated", "size", result.Size, "duration", result.Duration, "quality", result.Quality, "demo", result.DemoMode)
	return &result, nil
}

func quality(voice, suffix string) string {
	if strings.Contains(voice, "Wavenet") {
		return "High (WaveNet)" + suffix
	}
	return "Standard" + suffix
}

func (t *TTS) demo(req TTSRequest, voice string) TTSResult {
	start := time.Now()
	wav := DemoWAV(req.Text, req.Language, req.Voice)
	return TTSResult{
		Success:        true,
		AudioURL:       "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav),
		Duration:       EstimateDuration(req.Text, req.Speed),
		Size:           FormatAudioSize(float64(utf8.RuneCountInString(req.Text)) * 0.8),
		VoiceUsed:      voice,
		Quality:        quality(voice, " - Demo"),
		ProcessingTime: fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
		DemoMode:       true,
		Note:           "This is demo audio. For real TTS, set up Google Cloud credentials.",
	}
}
