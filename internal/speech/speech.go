// Package speech serves text-to-speech and speech-to-text through Google
// Cloud, with a demo mode used when no service account is configured.
package speech

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DefaultLanguage = "vi-VN"
	MaxTextLength   = 5000

	ModeProduction = "Production Mode"
	ModeDemo       = "Demo/Fallback Mode"
)

// InputError is a request the caller must fix.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// ServiceError is an upstream failure translated into a user-facing message.
type ServiceError struct {
	Message string
	// Code is the gRPC status code, zero when the failure carried none.
	Code codes.Code
	Err  error
}

func (e *ServiceError) Error() string { return e.Message }
func (e *ServiceError) Unwrap() error { return e.Err }

// ErrorCode returns the numeric gRPC code, if the upstream sent one.
func (e *ServiceError) ErrorCode() (int, bool) {
	if e.Code == codes.OK {
		return 0, false
	}
	return int(e.Code), true
}

var ttsMessages = map[codes.Code]string{
	codes.InvalidArgument:   "Invalid TTS parameters. Please check voice and language settings.",
	codes.PermissionDenied:  "Google Cloud TTS permission denied. Please check API credentials.",
	codes.ResourceExhausted: "TTS quota exceeded. Please try again later.",
	codes.Unavailable:       "Google Cloud TTS service temporarily unavailable.",
}

var sttMessages = map[codes.Code]string{
	codes.InvalidArgument:   "Định dạng audio không hợp lệ hoặc file bị lỗi",
	codes.PermissionDenied:  "Không có quyền truy cập Speech-to-Text API",
	codes.ResourceExhausted: "Đã vượt quá giới hạn API quota",
	codes.Unavailable:       "Dịch vụ Google Cloud STT tạm thời không khả dụng",
}

func grpcCode(err error) codes.Code {
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		return se.GRPCStatus().Code()
	}
	return codes.OK
}

func ttsError(err error) *ServiceError {
	code := grpcCode(err)
	msg, ok := ttsMessages[code]
	if !ok {
		msg = err.Error()
	}
	if msg == "" {
		msg = "Internal server error during TTS processing"
	}
	return &ServiceError{Message: msg, Code: code, Err: err}
}

func sttError(err error) *ServiceError {
	code := grpcCode(err)
	msg, ok := sttMessages[code]
	if !ok {
		if strings.Contains(err.Error(), "audio") {
			msg = "Lỗi xử lý file audio. Vui lòng thử định dạng khác."
		} else {
			msg = "Lỗi không xác định khi xử lý audio"
		}
	}
	return &ServiceError{Message: msg, Code: code, Err: err}
}

// Health is the GET answer of both endpoints.
type Health struct {
	Success            bool              `json:"success"`
	Message            string            `json:"message"`
	Version            string            `json:"version"`
	Mode               string            `json:"mode"`
	Note               string            `json:"note,omitempty"`
	SupportedLanguages map[string]string `json:"supportedLanguages"`
	Features           []string          `json:"features"`
	Status             string            `json:"status,omitempty"`
	Timestamp          string            `json:"timestamp"`
}

var languageNames = map[string]string{
	"vi-VN": "Vietnamese",
	"en-US": "English (US)",
	"en-GB": "English (UK)",
	"ja-JP": "Japanese",
	"ko-KR": "Korean",
}

var demoLanguageNames = map[string]string{
	"vi-VN": "Vietnamese (Demo)",
	"en-US": "English (US) - Demo",
	"en-GB": "English (UK) - Demo",
	"ja-JP": "Japanese (Demo)",
	"ko-KR": "Korean (Demo)",
}

var defaultVoices = map[string]string{
	"vi-VN": "vi-VN-Standard-A",
	"en-US": "en-US-Standard-A",
	"en-GB": "en-GB-Standard-A",
	"ja-JP": "ja-JP-Standard-A",
	"ko-KR": "ko-KR-Standard-A",
}

// DefaultVoice picks the standard voice for language, Vietnamese otherwise.
func DefaultVoice(language string) string {
	if v, ok := defaultVoices[language]; ok {
		return v
	}
	return defaultVoices[DefaultLanguage]
}

// ValidVoice reports whether voice belongs to language.
func ValidVoice(voice, language string) bool {
	return strings.HasPrefix(voice, language)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sizeIndex(bytes float64, units int) int {
	i := int(math.Floor(math.Log(bytes) / math.Log(1024)))
	return max(0, min(i, units-1))
}

// FormatAudioSize renders a byte count with one decimal, B to MB.
func FormatAudioSize(bytes float64) string {
	if bytes <= 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB"}
	i := sizeIndex(bytes, len(units))
	v := math.Round(bytes/math.Pow(1024, float64(i))*10) / 10
	return formatFloat(v) + " " + units[i]
}

// FormatUploadSize renders a byte count with two decimals, Bytes to GB.
func FormatUploadSize(bytes int) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := sizeIndex(float64(bytes), len(units))
	v := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return formatFloat(v) + " " + units[i]
}

// EstimateDuration assumes 150 words per minute scaled by speed.
func EstimateDuration(text string, speed float64) string {
	if speed <= 0 {
		speed = 1
	}
	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	seconds := int(math.Round(float64(words) / (150 * speed) * 60))
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
