/**
* Name: 			stt.go
* Description: 		Google Speech-to-Text 연결
* Workflow: 		클라이언트 생성, 녹음 파일 전송, 텍스트 수신
 */

package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const DefaultLanguage = "en-US"

var ErrNoSpeech = errors.New("no speech recognized")

type Transcriber struct {
	client   *speech.Client
	language string
	logger   *zap.Logger
}

// NewTranscriber uses credentialsFile when set, otherwise application default credentials.
func NewTranscriber(ctx context.Context, credentialsFile, language string, logger *zap.Logger) (*Transcriber, error) {
	client, err := speech.NewClient(ctx, clientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("NewTranscriber(): failed to create speech client: %w", err)
	}
	if language == "" {
		language = DefaultLanguage
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcriber{client: client, language: language, logger: logger}, nil
}

// Transcribe recognizes a short browser recording (WEBM/Opus).
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrNoSpeech
	}
	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_WEBM_OPUS,
			SampleRateHertz:            48000,
			AudioChannelCount:          1,
			LanguageCode:               t.language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		t.logger.Error("Transcribe(): Recognize failed", zap.Error(err))
		return "", fmt.Errorf("Transcribe(): %w", err)
	}

	text := joinTranscripts(resp.GetResults())
	if text == "" {
		return "", ErrNoSpeech
	}
	t.logger.Debug("Transcribe(): recognized", zap.Int("chars", len(text)))
	return text, nil
}

func joinTranscripts(results []*speechpb.SpeechRecognitionResult) string {
	var parts []string
	for _, r := range results {
		if alts := r.GetAlternatives(); len(alts) > 0 {
			if s := strings.TrimSpace(alts[0].GetTranscript()); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, " ")
}

func (t *Transcriber) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

func clientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}
