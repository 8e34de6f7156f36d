package speech

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"strings"
)

const whisperEndpoint = "https://api.openai.com"

type whisperResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// whisperTranscriber OpenAI 兼容的 /v1/audio/transcriptions 接口
type whisperTranscriber struct {
	cfg    Config
	client *http.Client
}

func newWhisperTranscriber(cfg Config, client *http.Client) *whisperTranscriber {
	if cfg.Endpoint == "" {
		cfg.Endpoint = whisperEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	return &whisperTranscriber{cfg: cfg, client: client}
}

func (w *whisperTranscriber) Name() string {
	return ProviderWhisper
}

func (w *whisperTranscriber) Transcribe(ctx context.Context, audio *Audio, opts TranscribeOptions) (*Transcript, error) {
	langs := opts.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	filename := audio.Filename
	if filename == "" {
		filename = "audio.wav"
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(audio.Data); err != nil {
		return nil, err
	}
	_ = mw.WriteField("model", w.cfg.Model)
	_ = mw.WriteField("response_format", "verbose_json")
	// 只有一个候选语言时指定语言，否则交给服务自动识别
	if len(langs) == 1 {
		if base := BaseLanguage(langs[0]); base != "" {
			_ = mw.WriteField("language", base)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, w.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(w.cfg.Endpoint, "/")+"/v1/audio/transcriptions", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if w.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.cfg.APIKey)
	}

	var resp whisperResponse
	if err := do(w.client, req, &resp); err != nil {
		return nil, fault(w.Name(), err)
	}

	text := normalize(resp.Text)
	if text == "" {
		return nil, ErrNoSpeech
	}
	lang := matchLanguageName(resp.Language, langs)
	if lang == "" {
		lang = langs[0]
	}
	return &Transcript{Text: text, Language: lang, Confidence: 1}, nil
}

var _ Transcriber = (*whisperTranscriber)(nil)
