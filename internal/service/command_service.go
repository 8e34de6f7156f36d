package service

import (
	"context"
	"errors"

	"github.com/haierkeys/voice-note-service/internal/command"
	"github.com/haierkeys/voice-note-service/internal/dto"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/logger"

	"go.uber.org/zap"
)

// CommandService 执行解析后的语音命令
type CommandService interface {
	// Execute 在 uid 的笔记上执行命令
	// 失败时同时返回 status=error 的结果与对应的错误码
	Execute(ctx context.Context, uid int64, cmd command.ParsedCommand, input dto.CommandInput) (*dto.CommandResult, error)
}

type commandService struct {
	notes  NoteService
	logger *zap.Logger
}

func NewCommandService(notes NoteService, logger *zap.Logger) CommandService {
	return &commandService{notes: notes, logger: logger}
}

func (s *commandService) Execute(ctx context.Context, uid int64, cmd command.ParsedCommand, input dto.CommandInput) (*dto.CommandResult, error) {
	result, err := s.execute(ctx, uid, cmd, input)
	commandsTotal.WithLabelValues(string(cmd.Action), result.Status).Inc()

	if err != nil {
		s.logger.Info("voice command failed",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldAction, string(cmd.Action)),
			zap.String("message", result.Message))
	}
	return result, err
}

func (s *commandService) execute(ctx context.Context, uid int64, cmd command.ParsedCommand, input dto.CommandInput) (*dto.CommandResult, error) {
	switch cmd.Action {
	case command.ActionCreate:
		translated := cmd.Content
		if translated == "" {
			translated = input.TranslatedText
		}
		original := input.OriginalText
		if original == "" {
			original = input.TranslatedText
		}
		note, err := s.notes.Create(ctx, uid, &dto.NoteCreateRequest{
			OriginalText:   original,
			TranslatedText: translated,
			Language:       input.Language,
		})
		if err != nil {
			return failure(cmd.Action, err), err
		}
		return success(cmd.Action, note.ID), nil

	case command.ActionUpdate:
		if !cmd.HasID() {
			return failure(cmd.Action, code.ErrorCommandMissingID), code.ErrorCommandMissingID
		}
		original := input.OriginalText
		if original == "" {
			original = input.TranslatedText
		}
		note, err := s.notes.UpdateText(ctx, uid, cmd.ID(), original, cmd.Content, input.Language)
		if err != nil {
			return failure(cmd.Action, err), err
		}
		return success(cmd.Action, note.ID), nil

	case command.ActionDelete:
		if !cmd.HasID() {
			return failure(cmd.Action, code.ErrorCommandMissingID), code.ErrorCommandMissingID
		}
		if err := s.notes.Delete(ctx, uid, cmd.ID()); err != nil {
			return failure(cmd.Action, err), err
		}
		return success(cmd.Action, cmd.ID()), nil

	case command.ActionSearch:
		notes, err := s.notes.Search(ctx, uid, cmd.Keyword)
		if err != nil {
			return failure(cmd.Action, err), err
		}
		hits := make([]dto.SearchHit, 0, len(notes))
		for _, n := range notes {
			hits = append(hits, dto.SearchHit{ID: n.ID, TranslatedText: n.TranslatedText})
		}
		return &dto.CommandResult{Status: dto.CommandStatusSuccess, Action: cmd.Action, Results: hits}, nil
	}

	res := &dto.CommandResult{
		Status:  dto.CommandStatusError,
		Action:  command.ActionUnknown,
		Message: code.ErrorCommandUnknown.Msg() + ": " + input.TranslatedText,
	}
	return res, code.ErrorCommandUnknown.WithDetails(input.TranslatedText)
}

func success(action command.Action, id int64) *dto.CommandResult {
	return &dto.CommandResult{Status: dto.CommandStatusSuccess, Action: action, NoteID: &id}
}

func failure(action command.Action, err error) *dto.CommandResult {
	msg := err.Error()
	var c *code.Code
	if errors.As(err, &c) {
		msg = c.Msg()
	}
	return &dto.CommandResult{Status: dto.CommandStatusError, Action: action, Message: msg}
}
