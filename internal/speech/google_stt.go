package speech

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
)

const googleSpeechEndpoint = "https://speech.googleapis.com"

// googleMaxAlternativeLanguages v1p1beta1 最多接受 3 个备选语言
const googleMaxAlternativeLanguages = 3

type googleRecognizeRequest struct {
	Config googleRecognitionConfig `json:"config"`
	Audio  googleRecognitionAudio  `json:"audio"`
}

type googleRecognitionConfig struct {
	Encoding                   string   `json:"encoding,omitempty"`
	SampleRateHertz            int      `json:"sampleRateHertz,omitempty"`
	LanguageCode               string   `json:"languageCode"`
	AlternativeLanguageCodes   []string `json:"alternativeLanguageCodes,omitempty"`
	EnableAutomaticPunctuation bool     `json:"enableAutomaticPunctuation"`
}

type googleRecognitionAudio struct {
	Content string `json:"content"`
}

type googleRecognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
		LanguageCode string `json:"languageCode"`
	} `json:"results"`
}

// googleTranscriber Google Cloud Speech-to-Text v1p1beta1 REST
type googleTranscriber struct {
	cfg    Config
	client *http.Client
}

func newGoogleTranscriber(cfg Config, client *http.Client) *googleTranscriber {
	if cfg.Endpoint == "" {
		cfg.Endpoint = googleSpeechEndpoint
	}
	return &googleTranscriber{cfg: cfg, client: client}
}

func (g *googleTranscriber) Name() string {
	return ProviderGoogle
}

// encoding WAV 与 FLAC 的头部自带编码信息，其他格式需要显式声明
func googleEncoding(ext string) string {
	switch ext {
	case "flac":
		return "FLAC"
	case "mp3":
		return "MP3"
	case "ogg", "opus":
		return "OGG_OPUS"
	case "webm":
		return "WEBM_OPUS"
	case "amr":
		return "AMR"
	}
	return ""
}

func (g *googleTranscriber) Transcribe(ctx context.Context, audio *Audio, opts TranscribeOptions) (*Transcript, error) {
	langs := opts.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	alts := langs[1:]
	if len(alts) > googleMaxAlternativeLanguages {
		alts = alts[:googleMaxAlternativeLanguages]
	}

	reqBody := googleRecognizeRequest{
		Config: googleRecognitionConfig{
			Encoding:                   googleEncoding(audio.Ext()),
			LanguageCode:               langs[0],
			AlternativeLanguageCodes:   alts,
			EnableAutomaticPunctuation: true,
		},
		Audio: googleRecognitionAudio{Content: base64.StdEncoding.EncodeToString(audio.Data)},
	}
	if reqBody.Config.Encoding != "" {
		reqBody.Config.SampleRateHertz = g.cfg.SampleRateHertz
	}

	endpoint := strings.TrimRight(g.cfg.Endpoint, "/") + "/v1p1beta1/speech:recognize"
	if g.cfg.APIKey != "" {
		endpoint += "?key=" + url.QueryEscape(g.cfg.APIKey)
	}

	ctx, cancel := withTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	var resp googleRecognizeResponse
	if err := postJSON(ctx, g.client, endpoint, reqBody, &resp); err != nil {
		return nil, fault(g.Name(), err)
	}

	// 多段结果按顺序拼接，语言与置信度取第一段
	var parts []string
	out := &Transcript{}
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		alt := r.Alternatives[0]
		if strings.TrimSpace(alt.Transcript) == "" {
			continue
		}
		if len(parts) == 0 {
			out.Confidence = alt.Confidence
			out.Language = matchLanguageName(r.LanguageCode, langs)
		}
		parts = append(parts, strings.TrimSpace(alt.Transcript))
	}
	if len(parts) == 0 {
		return nil, ErrNoSpeech
	}
	out.Text = normalize(strings.Join(parts, " "))
	if out.Language == "" {
		out.Language = langs[0]
	}
	return out, nil
}

var _ Transcriber = (*googleTranscriber)(nil)
