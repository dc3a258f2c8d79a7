/**
* Name: 			tts.go
* Description: 		Google Text-to-Speech 연결
* Workflow: 		튜터 답변 정리, 음성 합성, MP3 반환
 */

package voice

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
)

// 합성 요청 한도(5000 bytes)보다 여유 있게 자름
const maxSpeakableBytes = 4800

type Narrator struct {
	client   *texttospeech.Client
	language string
	logger   *zap.Logger
}

func NewNarrator(ctx context.Context, credentialsFile, language string, logger *zap.Logger) (*Narrator, error) {
	client, err := texttospeech.NewClient(ctx, clientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("NewNarrator(): failed to create TTS client: %w", err)
	}
	if language == "" {
		language = DefaultLanguage
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Narrator{client: client, language: language, logger: logger}, nil
}

// Narrate reads a tutor answer aloud and returns MP3 audio.
func (n *Narrator) Narrate(ctx context.Context, text string) ([]byte, error) {
	speakable := SpeakableText(text)
	if speakable == "" {
		return nil, fmt.Errorf("Narrate(): nothing to read")
	}
	resp, err := n.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: speakable},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: n.language,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		n.logger.Error("Narrate(): SynthesizeSpeech failed", zap.Error(err))
		return nil, fmt.Errorf("Narrate(): %w", err)
	}
	n.logger.Debug("Narrate(): synthesized", zap.Int("bytes", len(resp.GetAudioContent())))
	return resp.GetAudioContent(), nil
}

func (n *Narrator) Close() error {
	if n.client != nil {
		return n.client.Close()
	}
	return nil
}

var (
	svgFence     = regexp.MustCompile("(?s)```svg.*?```")
	svgElement   = regexp.MustCompile(`(?is)<svg.*?</svg>`)
	codeFence    = regexp.MustCompile("```[a-zA-Z]*")
	latexDelims  = regexp.MustCompile(`\$\$|\\\(|\\\)|\\\[|\\\]|\$`)
	mdDecoration = regexp.MustCompile(`\*\*|__|^#+\s*`)
	spaces       = regexp.MustCompile(`[ \t]+`)
	blankLines   = regexp.MustCompile(`\n{3,}`)
)

// SpeakableText drops drawings and formatting marks a voice cannot read.
func SpeakableText(text string) string {
	s := svgFence.ReplaceAllString(text, "")
	s = svgElement.ReplaceAllString(s, "")
	s = codeFence.ReplaceAllString(s, "")
	s = latexDelims.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = mdDecoration.ReplaceAllString(line, "")
		lines[i] = strings.TrimSpace(spaces.ReplaceAllString(line, " "))
	}
	s = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	s = strings.TrimSpace(s)

	if len(s) > maxSpeakableBytes {
		s = truncateUTF8(s, maxSpeakableBytes)
	}
	return s
}

func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && (s[n]&0xC0) == 0x80 {
		n--
	}
	return s[:n]
}
