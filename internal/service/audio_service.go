package service

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/voice-note-service/internal/dto"
	"github.com/haierkeys/voice-note-service/internal/speech"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/fileurl"
	"github.com/haierkeys/voice-note-service/pkg/logger"
	"github.com/haierkeys/voice-note-service/pkg/storage"

	"go.uber.org/zap"
)

// DefaultAudioExts 允许上传的音频格式
var DefaultAudioExts = []string{"wav", "mp3", "m4a"}

// AudioService 音频文件上传与转写
type AudioService interface {
	// Upload 保存上传的音频，文件名为 <uuid>.<ext>
	Upload(ctx context.Context, uid int64, filename string, size int64, r io.Reader) (*dto.AudioUploadDTO, error)

	// Transcribe 转写已上传的文件
	Transcribe(ctx context.Context, filename, languages string) (*dto.TranscriptionDTO, error)

	// CleanupOlderThan 删除修改时间早于 age 的本地文件，返回删除数量
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

type audioService struct {
	speech  SpeechService
	storage storage.Storager
	tasks   TaskSubmitter
	logger  *zap.Logger
	config  AudioServiceConfig
}

// NewAudioService 创建音频服务，store 与 tasks 为 nil 时不归档
func NewAudioService(speechSvc SpeechService, store storage.Storager, tasks TaskSubmitter, logger *zap.Logger, config *ServiceConfig) AudioService {
	var cfg AudioServiceConfig
	if config != nil {
		cfg = config.Audio
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "storage/uploads"
	}
	if len(cfg.AllowExts) == 0 {
		cfg.AllowExts = DefaultAudioExts
	}
	return &audioService{speech: speechSvc, storage: store, tasks: tasks, logger: logger, config: cfg}
}

func (s *audioService) Upload(ctx context.Context, uid int64, filename string, size int64, r io.Reader) (*dto.AudioUploadDTO, error) {
	if !fileurl.IsContainExt(filename, s.config.AllowExts) {
		return nil, code.ErrorAudioInvalidFormat.WithDetails(filename)
	}
	if s.config.MaxSize > 0 && size > s.config.MaxSize {
		return nil, code.ErrorAudioTooLarge
	}

	if err := os.MkdirAll(s.config.UploadDir, os.ModePerm); err != nil {
		return nil, code.ErrorAudioSaveFailed.WithDetails(err.Error())
	}

	ext := fileurl.GetFileExt(filename)
	name := fileurl.RandomFileName(ext)
	dst := filepath.Join(s.config.UploadDir, name)

	f, err := os.Create(dst)
	if err != nil {
		return nil, code.ErrorAudioSaveFailed.WithDetails(err.Error())
	}

	src := r
	if s.config.MaxSize > 0 {
		src = io.LimitReader(r, s.config.MaxSize+1)
	}
	written, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return nil, code.ErrorAudioSaveFailed.WithDetails(err.Error())
	}
	// 声明的大小可能不可信
	if s.config.MaxSize > 0 && written > s.config.MaxSize {
		_ = os.Remove(dst)
		return nil, code.ErrorAudioTooLarge
	}

	s.logger.Info("audio uploaded",
		zap.Int64(logger.FieldUID, uid),
		zap.String(logger.FieldFileKey, name),
		zap.Int64(logger.FieldSize, written))

	s.archive(name, dst)

	return &dto.AudioUploadDTO{Filename: name, Path: filepath.ToSlash(dst)}, nil
}

// archive 异步上传到存储后端
func (s *audioService) archive(name, localPath string) {
	if !s.config.ArchiveFile || s.storage == nil || s.tasks == nil {
		return
	}
	contentType := mime.TypeByExtension("." + fileurl.GetFileExt(name))
	err := s.tasks.SubmitAsync(context.Background(), "archive-audio", func(ctx context.Context) error {
		key, err := s.storage.SendFile(ctx, fileurl.GetDatePath("")+name, localPath, contentType)
		if err != nil {
			return code.ErrorStorageUpload.WithDetails(err.Error())
		}
		s.logger.Debug("audio archived", zap.String(logger.FieldFileKey, key))
		return nil
	})
	if err != nil {
		s.logger.Warn("submit audio archive failed", zap.String(logger.FieldFileKey, name), zap.Error(err))
	}
}

func (s *audioService) Transcribe(ctx context.Context, filename, languages string) (*dto.TranscriptionDTO, error) {
	p, ok := fileurl.SafeJoin(s.config.UploadDir, filename)
	if !ok || !fileurl.IsExist(p) || fileurl.IsDir(p) {
		return nil, code.ErrorAudioNotFound
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, code.ErrorAudioNotFound.WithDetails(err.Error())
	}

	transcript, err := s.speech.Transcribe(ctx, &speech.Audio{
		Data:        data,
		Filename:    filename,
		ContentType: mime.TypeByExtension(filepath.Ext(filename)),
	}, languages)
	if err != nil {
		return nil, err
	}
	return &dto.TranscriptionDTO{Transcription: transcript.Text, Language: transcript.Language}, nil
}

func (s *audioService) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	if age <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(s.config.UploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-age)
	removed := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.config.UploadDir, e.Name())); err != nil {
			s.logger.Warn("remove expired audio failed", zap.String(logger.FieldFileKey, e.Name()), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}
