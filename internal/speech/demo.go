package speech

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	demoSampleRate  = 22050
	demoMaxSeconds  = 30
	demoAmplitude   = 0.1
	defaultBaseFreq = 220.0
)

var languageFrequencies = map[string]float64{
	"vi-VN": 220,
	"en-US": 261.63,
	"en-GB": 246.94,
	"ja-JP": 293.66,
	"ko-KR": 329.63,
}

func voiceOffset(voice string) float64 {
	switch {
	case voice == "":
		return 0
	case strings.Contains(voice, "-A"):
		return 0
	case strings.Contains(voice, "-B"):
		return 20
	case strings.Contains(voice, "-C"):
		return -10
	case strings.Contains(voice, "-D"):
		return 15
	case strings.Contains(voice, "Wavenet"):
		return 5
	}
	return 0
}

// DemoWAV renders a quiet sine tone, 0.1 s per character up to 30 s, as a
// mono 16-bit PCM WAV file. The pitch varies with language and voice.
func DemoWAV(text, language, voice string) []byte {
	seconds := math.Min(float64(utf8.RuneCountInString(text))*0.1, demoMaxSeconds)
	samples := int(seconds * demoSampleRate)

	freq, ok := languageFrequencies[language]
	if !ok {
		freq = defaultBaseFreq
	}
	freq += voiceOffset(voice)

	dataLen := uint32(samples * 2)
	var buf bytes.Buffer
	buf.Grow(44 + samples*2)

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(&buf, binary.LittleEndian, uint32(demoSampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(demoSampleRate*2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataLen)

	sample := make([]byte, 2)
	for i := 0; i < samples; i++ {
		v := math.Sin(2*math.Pi*freq*float64(i)/demoSampleRate) * demoAmplitude
		binary.LittleEndian.PutUint16(sample, uint16(int16(v*math.MaxInt16)))
		buf.Write(sample)
	}
	return buf.Bytes()
}

var demoTranscripts = map[string]string{
	"vi-VN": "Đây là kết quả demo cho Speech-to-Text tiếng Việt. Nội dung thực tế sẽ được chuyển đổi khi có Google Cloud credentials.",
	"en-US": "This is a demo result for English Speech-to-Text. Real content will be transcribed when Google Cloud credentials are configured.",
	"en-GB": "This is a demo result for British English Speech-to-Text.",
	"ja-JP": "これは日本語音声テキスト変換のデモ結果です。",
	"ko-KR": "이것은 한국어 음성-텍스트 변환의 데모 결과입니다.",
}

func demoTranscript(language string) string {
	if t, ok := demoTranscripts[language]; ok {
		return t
	}
	return demoTranscripts[DefaultLanguage]
}
