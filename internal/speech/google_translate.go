package speech

import (
	"context"
	"html"
	"net/http"
	"net/url"
	"strings"
)

const googleTranslateEndpoint = "https://translation.googleapis.com"

type googleTranslateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// googleTranslator Cloud Translation v2 REST
type googleTranslator struct {
	cfg    TranslateConfig
	client *http.Client
}

func newGoogleTranslator(cfg TranslateConfig, client *http.Client) *googleTranslator {
	if cfg.Endpoint == "" {
		cfg.Endpoint = googleTranslateEndpoint
	}
	return &googleTranslator{cfg: cfg, client: client}
}

func (g *googleTranslator) Name() string {
	return ProviderGoogle
}

func (g *googleTranslator) Translate(ctx context.Context, text, target string) (*Translation, error) {
	if strings.TrimSpace(text) == "" {
		return &Translation{Text: "", SourceLanguage: "und"}, nil
	}
	if target == "" {
		target = g.cfg.Target
	}

	endpoint := strings.TrimRight(g.cfg.Endpoint, "/") + "/language/translate/v2"
	if g.cfg.APIKey != "" {
		endpoint += "?key=" + url.QueryEscape(g.cfg.APIKey)
	}

	ctx, cancel := withTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	var resp googleTranslateResponse
	err := postJSON(ctx, g.client, endpoint, googleTranslateRequest{Q: text, Target: target, Format: "text"}, &resp)
	if err != nil {
		return nil, fault(g.Name(), err)
	}
	if len(resp.Data.Translations) == 0 {
		return nil, fault(g.Name(), errEmptyTranslation)
	}

	tr := resp.Data.Translations[0]
	return &Translation{
		Text:           normalize(html.UnescapeString(tr.TranslatedText)),
		SourceLanguage: tr.DetectedSourceLanguage,
	}, nil
}

var _ Translator = (*googleTranslator)(nil)
