package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/haierkeys/voice-note-service/internal/command"
	"github.com/haierkeys/voice-note-service/internal/dto"
	"github.com/haierkeys/voice-note-service/internal/speech"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/logger"

	"go.uber.org/zap"
)

// SpeechService 语音识别、翻译与语音命令流水线
type SpeechService interface {
	// Languages 默认候选语言
	Languages() *dto.LanguagesDTO

	// Transcribe 只做识别，languages 为逗号分隔的候选语言，空表示默认
	Transcribe(ctx context.Context, audio *speech.Audio, languages string) (*speech.Transcript, error)

	// STT 识别并翻译为英文
	STT(ctx context.Context, audio *speech.Audio, languages string) (*dto.STTResult, error)

	// Translate 翻译为英文
	Translate(ctx context.Context, text string) (*dto.TranslateDTO, error)

	// Command 识别、翻译、解析并执行语音命令
	Command(ctx context.Context, uid int64, audio *speech.Audio, languages string) (*dto.SpeechCommandDTO, error)

	// CommandText 对已翻译的文本解析并执行命令
	CommandText(ctx context.Context, uid int64, text string) (*dto.SpeechCommandDTO, error)
}

type speechService struct {
	transcriber speech.Transcriber
	translator  speech.Translator
	commands    CommandService
	logger      *zap.Logger
	config      *ServiceConfig
}

func NewSpeechService(transcriber speech.Transcriber, translator speech.Translator, commands CommandService, logger *zap.Logger, config *ServiceConfig) SpeechService {
	return &speechService{
		transcriber: transcriber,
		translator:  translator,
		commands:    commands,
		logger:      logger,
		config:      config,
	}
}

func (s *speechService) defaultLanguages() []string {
	if s.config != nil && len(s.config.App.Languages) > 0 {
		return s.config.App.Languages
	}
	return speech.DefaultLanguages
}

func (s *speechService) Languages() *dto.LanguagesDTO {
	langs := s.defaultLanguages()
	return &dto.LanguagesDTO{Default: langs, Languages: speech.Describe(langs)}
}

func (s *speechService) candidates(languages string) ([]string, error) {
	list, err := speech.ParseLanguages(languages)
	if err != nil {
		return nil, code.ErrorLanguageNotValid.WithDetails(err.Error())
	}
	if len(list) == 0 {
		return s.defaultLanguages(), nil
	}
	return list, nil
}

// observe 记录外部调用的指标
func observe(kind, provider string, start time.Time, err error) {
	status := "success"
	switch {
	case errors.Is(err, speech.ErrNoSpeech):
		status = "no_speech"
	case err != nil:
		status = "error"
	}
	speechRequestsTotal.WithLabelValues(kind, provider, status).Inc()
	speechDuration.WithLabelValues(kind, provider).Observe(time.Since(start).Seconds())
}

func (s *speechService) Transcribe(ctx context.Context, audio *speech.Audio, languages string) (*speech.Transcript, error) {
	if audio == nil || len(audio.Data) == 0 {
		return nil, code.ErrorAudioMissing
	}
	langs, err := s.candidates(languages)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	transcript, err := s.transcriber.Transcribe(ctx, audio, speech.TranscribeOptions{Languages: langs})
	observe("transcribe", s.transcriber.Name(), start, err)
	if err != nil {
		if errors.Is(err, speech.ErrNoSpeech) {
			return nil, code.ErrorSpeechNotRecognized
		}
		s.logger.Warn("transcribe failed",
			zap.String(logger.FieldProvider, s.transcriber.Name()),
			zap.Strings(logger.FieldLanguage, langs),
			zap.Int(logger.FieldSize, len(audio.Data)),
			zap.Error(err))
		return nil, code.ErrorServiceUnavailable.WithDetails(err.Error())
	}
	return transcript, nil
}

func (s *speechService) translate(ctx context.Context, text string) (*speech.Translation, error) {
	start := time.Now()
	tr, err := s.translator.Translate(ctx, text, s.config.translateTarget())
	observe("translate", s.translator.Name(), start, err)
	if err != nil {
		s.logger.Warn("translate failed", zap.String(logger.FieldProvider, s.translator.Name()), zap.Error(err))
		return nil, code.ErrorServiceUnavailable.WithDetails(err.Error())
	}
	return tr, nil
}

func (s *speechService) STT(ctx context.Context, audio *speech.Audio, languages string) (*dto.STTResult, error) {
	transcript, err := s.Transcribe(ctx, audio, languages)
	if err != nil {
		return nil, err
	}

	tr, err := s.translate(ctx, transcript.Text)
	if err != nil {
		return nil, err
	}

	lang := transcript.Language
	if lang == "" && tr.SourceLanguage != "und" {
		lang = tr.SourceLanguage
	}

	return &dto.STTResult{
		OriginalText: transcript.Text,
		Language:     lang,
		EnglishText:  tr.Text,
		Confidence:   transcript.Confidence,
	}, nil
}

func (s *speechService) Translate(ctx context.Context, text string) (*dto.TranslateDTO, error) {
	tr, err := s.translate(ctx, text)
	if err != nil {
		return nil, err
	}
	return &dto.TranslateDTO{Original: text, Translated: tr.Text, SourceLanguage: tr.SourceLanguage}, nil
}

func (s *speechService) Command(ctx context.Context, uid int64, audio *speech.Audio, languages string) (*dto.SpeechCommandDTO, error) {
	stt, err := s.STT(ctx, audio, languages)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, uid, stt, dto.CommandInput{
		OriginalText:   stt.OriginalText,
		TranslatedText: stt.EnglishText,
		Language:       stt.Language,
	})
}

func (s *speechService) CommandText(ctx context.Context, uid int64, text string) (*dto.SpeechCommandDTO, error) {
	text = strings.TrimSpace(text)
	return s.run(ctx, uid, nil, dto.CommandInput{OriginalText: text, TranslatedText: text})
}

func (s *speechService) run(ctx context.Context, uid int64, stt *dto.STTResult, input dto.CommandInput) (*dto.SpeechCommandDTO, error) {
	cmd := command.Parse(input.TranslatedText)
	result, err := s.commands.Execute(ctx, uid, cmd, input)

	out := &dto.SpeechCommandDTO{Transcript: stt, Command: &cmd, Result: result}
	if err != nil {
		var c *code.Code
		if errors.As(err, &c) {
			return out, c.WithData(out)
		}
		return out, err
	}
	return out, nil
}
