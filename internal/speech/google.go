package speech

import (
	"context"
	"fmt"

	gspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/deusflow/newsroom/internal/credentials"
)

// GoogleTTS synthesises MP3 audio with Cloud Text-to-Speech.
type GoogleTTS struct {
	client *texttospeech.Client
}

func NewGoogleTTS(ctx context.Context, sa *credentials.ServiceAccount) (*GoogleTTS, error) {
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsJSON(sa.JSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}
	return &GoogleTTS{client: client}, nil
}

func (g *GoogleTTS) Close() error {
	return g.client.Close()
}

func (g *GoogleTTS) Synthesize(ctx context.Context, in SynthesisInput) ([]byte, error) {
	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: in.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: in.Language,
			Name:         in.Voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  in.Rate,
			Pitch:         0,
			VolumeGainDb:  0,
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.GetAudioContent(), nil
}

// Probe makes one short synthesis call to prove the key can reach the API.
func (g *GoogleTTS) Probe(ctx context.Context) error {
	_, err := g.Synthesize(ctx, SynthesisInput{
		Text:     "Test API call",
		Language: DefaultLanguage,
		Voice:    DefaultVoice(DefaultLanguage),
		Rate:     1,
	})
	return err
}

// GoogleSTT transcribes audio with Cloud Speech-to-Text.
type GoogleSTT struct {
	client *gspeech.Client
}

func NewGoogleSTT(ctx context.Context, sa *credentials.ServiceAccount) (*GoogleSTT, error) {
	client, err := gspeech.NewClient(ctx, option.WithCredentialsJSON(sa.JSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create STT client: %w", err)
	}
	return &GoogleSTT{client: client}, nil
}

func (g *GoogleSTT) Close() error {
	return g.client.Close()
}

func (g *GoogleSTT) Recognize(ctx context.Context, in RecognitionInput) ([]Alternative, error) {
	enc, ok := speechpb.RecognitionConfig_AudioEncoding_value[in.Encoding]
	if !ok {
		return nil, &InputError{Message: fmt.Sprintf("Unsupported audio encoding %q", in.Encoding)}
	}

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_AudioEncoding(enc),
			SampleRateHertz:            int32(in.SampleRate),
			LanguageCode:               in.Language,
			EnableAutomaticPunctuation: true,
			Model:                      "latest_long",
			UseEnhanced:                true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: in.Audio},
		},
	})
	if err != nil {
		return nil, err
	}

	var alts []Alternative
	for _, r := range resp.GetResults() {
		if len(r.GetAlternatives()) == 0 {
			continue
		}
		top := r.GetAlternatives()[0]
		alts = append(alts, Alternative{Transcript: top.GetTranscript(), Confidence: top.GetConfidence()})
	}
	return alts, nil
}
