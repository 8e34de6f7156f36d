package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/voice-note-service/internal/command"
	"github.com/haierkeys/voice-note-service/internal/dao"
	"github.com/haierkeys/voice-note-service/internal/dto"
	"github.com/haierkeys/voice-note-service/internal/speech"
	"github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/writequeue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type fakeTranscriber struct {
	text string
	lang string
	err  error
	opts speech.TranscribeOptions
}

func (f *fakeTranscriber) Name() string { return "fake" }

func (f *fakeTranscriber) Transcribe(_ context.Context, _ *speech.Audio, opts speech.TranscribeOptions) (*speech.Transcript, error) {
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &speech.Transcript{Text: f.text, Language: f.lang, Confidence: 0.9}, nil
}

// fakeTranslator 按映射表翻译，未命中时原样返回
type fakeTranslator struct {
	out map[string]string
	err error
}

func (f *fakeTranslator) Name() string { return "fake" }

func (f *fakeTranslator) Translate(_ context.Context, text, _ string) (*speech.Translation, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.out[text]; ok {
		return &speech.Translation{Text: t, SourceLanguage: "ta"}, nil
	}
	return &speech.Translation{Text: text, SourceLanguage: "und"}, nil
}

type recordedEvent struct {
	uid    int64
	action string
	data   any
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeNotifier) PushToUser(uid int64, action string, data any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{uid: uid, action: action, data: data})
}

func (f *fakeNotifier) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.action)
	}
	return out
}

// syncTasks 同步执行提交的任务
type syncTasks struct {
	names []string
	errs  []error
}

func (s *syncTasks) SubmitAsync(ctx context.Context, name string, fn func(context.Context) error) error {
	s.names = append(s.names, name)
	s.errs = append(s.errs, fn(ctx))
	return nil
}

type fakeSender struct {
	sent []*gomail.Message
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return nil
}

type testEnv struct {
	users    UserService
	notes    NoteService
	commands CommandService
	speech   SpeechService
	audio    AudioService

	notifier    *fakeNotifier
	tasks       *syncTasks
	sender      *fakeSender
	transcriber *fakeTranscriber
	translator  *fakeTranslator
	config      *ServiceConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := dao.NewDBEngine(dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		AutoMigrate:  true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	d := dao.New(db, context.Background())
	logger := zap.NewNop()
	cfg := &ServiceConfig{
		User: UserServiceConfig{RegisterIsEnable: true, WelcomeMail: true},
		App:  AppServiceConfig{RevisionKeepVersions: 2},
		Audio: AudioServiceConfig{
			UploadDir: t.TempDir(),
			MaxSize:   1024,
		},
	}

	queue := writequeue.New(nil, logger)
	t.Cleanup(func() { _ = queue.Shutdown(context.Background()) })

	env := &testEnv{
		notifier:    &fakeNotifier{},
		tasks:       &syncTasks{},
		sender:      &fakeSender{},
		transcriber: &fakeTranscriber{text: "புதிய குறிப்பு", lang: "ta-IN"},
		translator:  &fakeTranslator{out: map[string]string{"புதிய குறிப்பு": "create buy milk"}},
		config:      cfg,
	}

	mail := NewMailServiceWithSender(MailConfig{From: "noreply@example.com"}, env.sender, logger)
	tokens := app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"})

	env.users = NewUserService(dao.NewUserRepository(d), tokens, mail, env.tasks, logger, cfg)
	env.notes = NewNoteService(dao.NewNoteRepository(d), dao.NewNoteRevisionRepository(d), queue, env.notifier, logger, cfg)
	env.commands = NewCommandService(env.notes, logger)
	env.speech = NewSpeechService(env.transcriber, env.translator, env.commands, logger, cfg)
	env.audio = NewAudioService(env.speech, nil, env.tasks, logger, cfg)
	return env
}

func (e *testEnv) register(t *testing.T, email string) int64 {
	t.Helper()
	tok, err := e.users.Register(context.Background(), &dto.UserCreateRequest{Name: "Asha", Email: email, Password: "secret123"}, "127.0.0.1")
	require.NoError(t, err)
	return tok.UserID
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tok, err := env.users.Register(ctx, &dto.UserCreateRequest{Name: "Asha", Email: "asha@example.com", Password: "secret123"}, "")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)
	assert.Positive(t, tok.UserID)

	// 欢迎邮件通过任务队列发送
	assert.Equal(t, []string{"welcome-mail"}, env.tasks.names)
	require.Len(t, env.sender.sent, 1)
	require.Len(t, env.sender.sent[0].GetHeader("To"), 1)
	assert.Contains(t, env.sender.sent[0].GetHeader("To")[0], "asha@example.com")

	_, err = env.users.Register(ctx, &dto.UserCreateRequest{Name: "Other", Email: "ASHA@example.com", Password: "secret456"}, "")
	assert.ErrorIs(t, err, code.ErrorUserEmailAlreadyExists)

	login, err := env.users.Login(ctx, &dto.UserLoginRequest{Email: "asha@example.com", Password: "secret123"}, "")
	require.NoError(t, err)
	assert.Equal(t, tok.UserID, login.UserID)

	// 第一个用户不受重复注册影响
	info, err := env.users.GetInfo(ctx, tok.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", info.Name)

	_, err = env.users.Login(ctx, &dto.UserLoginRequest{Email: "asha@example.com", Password: "wrong"}, "")
	assert.ErrorIs(t, err, code.ErrorUserLoginPasswordFailed)

	_, err = env.users.Login(ctx, &dto.UserLoginRequest{Email: "nobody@example.com", Password: "secret123"}, "")
	assert.ErrorIs(t, err, code.ErrorUserLoginPasswordFailed)
}

func TestUserService_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, &dto.UserCreateRequest{Name: "x", Email: "not-an-email", Password: "secret123"}, "")
	assert.ErrorIs(t, err, code.ErrorUserEmailNotValid)

	env.config.User.RegisterIsEnable = false
	_, err = env.users.Register(ctx, &dto.UserCreateRequest{Name: "x", Email: "x@example.com", Password: "secret123"}, "")
	assert.ErrorIs(t, err, code.ErrorUserRegisterIsDisable)
}

func TestUserService_ChangePasswordAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "asha@example.com")

	err := env.users.ChangePassword(ctx, uid, &dto.UserChangePasswordRequest{OldPassword: "bad", Password: "newsecret"})
	assert.ErrorIs(t, err, code.ErrorUserOldPasswordFailed)

	require.NoError(t, env.users.ChangePassword(ctx, uid, &dto.UserChangePasswordRequest{OldPassword: "secret123", Password: "newsecret"}))
	_, err = env.users.Login(ctx, &dto.UserLoginRequest{Email: "asha@example.com", Password: "newsecret"}, "")
	require.NoError(t, err)

	note, err := env.notes.Create(ctx, uid, &dto.NoteCreateRequest{TranslatedText: "keep me"})
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(ctx, uid, &dto.UserDeleteRequest{Password: "newsecret"}))
	_, err = env.users.GetInfo(ctx, uid)
	assert.ErrorIs(t, err, code.ErrorUserNotFound)

	// 笔记随用户删除
	_, err = env.notes.Get(ctx, uid, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_CreateThenGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "asha@example.com")

	created, err := env.notes.Create(ctx, uid, &dto.NoteCreateRequest{
		OriginalText:   "பால் வாங்கு",
		TranslatedText: "Buy milk",
		Category:       "Shopping",
		IsPinned:       true,
	})
	require.NoError(t, err)

	got, err := env.notes.Get(ctx, uid, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "பால் வாங்கு", got.OriginalText)
	assert.Equal(t, "Buy milk", got.TranslatedText)
	assert.Equal(t, "Shopping", got.Category)
	assert.True(t, got.IsPinned)
	assert.Equal(t, uid, got.UserID)

	plain, err := env.notes.Create(ctx, uid, &dto.NoteCreateRequest{TranslatedText: "no category"})
	require.NoError(t, err)
	assert.Equal(t, "General", plain.Category)

	assert.Equal(t, []string{"NoteCreated", "NoteCreated"}, env.notifier.actions())
}

func TestNoteService_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")

	note, err := env.notes.Create(ctx, owner, &dto.NoteCreateRequest{TranslatedText: "private"})
	require.NoError(t, err)

	_, err = env.notes.Get(ctx, other, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	_, err = env.notes.Update(ctx, other, note.ID, &dto.NoteUpdateRequest{NoteCreateRequest: dto.NoteCreateRequest{TranslatedText: "hijack"}})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	assert.ErrorIs(t, env.notes.Delete(ctx, other, note.ID), code.ErrorNoteNotFound)

	list, err := env.notes.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := env.notes.Get(ctx, owner, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.TranslatedText)
}

func TestNoteService_UpdateRecordsRevision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "asha@example.com")

	note, err := env.notes.Create(ctx, uid, &dto.NoteCreateRequest{TranslatedText: "buy milk", Language: "ta-IN"})
	require.NoError(t, err)

	updated, err := env.notes.Update(ctx, uid, note.ID, &dto.NoteUpdateRequest{NoteCreateRequest: dto.NoteCreateRequest{
		TranslatedText: "buy milk and bread",
		IsPinned:       true,
	}})
	require.NoError(t, err)
	assert.Equal(t, "buy milk and bread", updated.TranslatedText)
	assert.Equal(t, "General", updated.Category)
	assert.Equal(t, "ta-IN", updated.Language)
	assert.True(t, updated.IsPinned)

	revs, err := env.notes.Revisions(ctx, uid, note.ID)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "buy milk", revs[0].TranslatedText)
	assert.NotEmpty(t, revs[0].DiffPatch)
	assert.Equal(t, len(" and bread"), revs[0].Inserted)
	assert.Zero(t, revs[0].Deleted)

	// 只改置顶不产生修订
	_, err = env.notes.Update(ctx, uid, note.ID, &dto.NoteUpdateRequest{NoteCreateRequest: dto.NoteCreateRequest{TranslatedText: "buy milk and bread"}})
	require.NoError(t, err)
	revs, err = env.notes.Revisions(ctx, uid, note.ID)
	require.NoError(t, err)
	assert.Len(t, revs, 1)
}

func TestNoteService_PageAndSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "asha@example.com")

	for i := 1; i <= 5; i++ {
		_, err := env.notes.Create(ctx, uid, &dto.NoteCreateRequest{TranslatedText: fmt.Sprintf("Meeting %d", i)})
		require.NoError(t, err)
	}
	_, err := env.notes.Create(ctx, uid, &dto.NoteCreateRequest{TranslatedText: "groceries"})
	require.NoError(t, err)

	page, err := env.notes.Page(ctx, uid, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Notes, 2)

	env.config.App.MaxPageSize = 3
	page, err = env.notes.Page(ctx, uid, 1, 100000000)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Limit)
	assert.Len(t, page.Notes, 3)

	env.config.App.MaxPageSize = 0
	page, err = env.notes.Page(ctx, uid, 1, 100000000)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxPageSize, page.Limit)
	assert.Len(t, page.Notes, 6)

	hits, err := env.notes.Search(ctx, uid, "MEETING")
	require.NoError(t, err)
	assert.Len(t, hits, 5)

	all, err := env.notes.Search(ctx, uid, "")
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestNoteService_PruneRevisions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "asha@example.com")

	note, err := env.notes.Create(ctx, uid, &dto.NoteCreateRequest{TranslatedText: "v0"})
	require.NoError(t, err)
	for i := 1; i <= 4; i++ {
		_, err := env.notes.UpdateText(ctx, uid, note.ID, "", fmt.Sprintf("v%d", i), "")
		require.NoError(t, err)
	}

	n, err := env.notes.PruneRevisions(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	revs, err := env.notes.Revisions(ctx, uid, note.ID)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, "v3", revs[0].TranslatedText)
	assert.Equal(t, "v2", revs[1].TranslatedText)
}

func TestCommandService_Execute(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "asha@example.com")
	other := env.register(t, "other@example.com")

	input := dto.CommandInput{OriginalText: "original", TranslatedText: "please create a new note about groceries"}
	res, err := env.commands.Execute(ctx, uid, command.Parse(input.TranslatedText), input)
	require.NoError(t, err)
	assert.Equal(t, dto.CommandStatusSuccess, res.Status)
	require.NotNil(t, res.NoteID)

	note, err := env.notes.Get(ctx, uid, *res.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "please  a  about groceries", note.TranslatedText)
	assert.Equal(t, "original", note.OriginalText)

	t.Run("update without id", func(t *testing.T) {
		res, err := env.commands.Execute(ctx, uid, command.Parse("update the note"), dto.CommandInput{})
		assert.ErrorIs(t, err, code.ErrorCommandMissingID)
		assert.Equal(t, dto.CommandStatusError, res.Status)
		assert.Equal(t, command.ActionUpdate, res.Action)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("update", func(t *testing.T) {
		text := fmt.Sprintf("update %d buy bread", note.ID)
		res, err := env.commands.Execute(ctx, uid, command.Parse(text), dto.CommandInput{TranslatedText: text})
		require.NoError(t, err)
		assert.Equal(t, note.ID, *res.NoteID)
		got, err := env.notes.Get(ctx, uid, note.ID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d buy bread", note.ID), got.TranslatedText)
	})

	t.Run("delete foreign", func(t *testing.T) {
		res, err := env.commands.Execute(ctx, other, command.Parse(fmt.Sprintf("delete note %d", note.ID)), dto.CommandInput{})
		assert.ErrorIs(t, err, code.ErrorNoteNotFound)
		assert.Equal(t, dto.CommandStatusError, res.Status)
	})

	t.Run("search", func(t *testing.T) {
		res, err := env.commands.Execute(ctx, uid, command.Parse("find BREAD"), dto.CommandInput{})
		require.NoError(t, err)
		hits, ok := res.Results.([]dto.SearchHit)
		require.True(t, ok)
		require.Len(t, hits, 1)
		assert.Equal(t, note.ID, hits[0].ID)

		res, err = env.commands.Execute(ctx, other, command.Parse("search bread"), dto.CommandInput{})
		require.NoError(t, err)
		hits, ok = res.Results.([]dto.SearchHit)
		require.True(t, ok)
		assert.NotNil(t, hits)
		assert.Empty(t, hits)
	})

	t.Run("delete", func(t *testing.T) {
		res, err := env.commands.Execute(ctx, uid, command.Parse(fmt.Sprintf("delete note %d", note.ID)), dto.CommandInput{})
		require.NoError(t, err)
		assert.Equal(t, note.ID, *res.NoteID)
		_, err = env.notes.Get(ctx, uid, note.ID)
		assert.ErrorIs(t, err, code.ErrorNoteNotFound)
	})

	t.Run("unknown", func(t *testing.T) {
		res, err := env.commands.Execute(ctx, uid, command.ParsedCommand{Action: command.ActionUnknown}, dto.CommandInput{TranslatedText: "hmm"})
		assert.ErrorIs(t, err, code.ErrorCommandUnknown)
		assert.Equal(t, command.ActionUnknown, res.Action)
		assert.Contains(t, res.Message, "hmm")
	})
}

func TestSpeechService_STT(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	audio := &speech.Audio{Data: []byte("RIFF"), Filename: "a.wav"}

	res, err := env.speech.STT(ctx, audio, "")
	require.NoError(t, err)
	assert.Equal(t, "புதிய குறிப்பு", res.OriginalText)
	assert.Equal(t, "create buy milk", res.EnglishText)
	assert.Equal(t, "ta-IN", res.Language)
	assert.Equal(t, speech.DefaultLanguages, env.transcriber.opts.Languages)

	_, err = env.speech.STT(ctx, audio, "ta-IN, hi-IN")
	require.NoError(t, err)
	assert.Equal(t, []string{"ta-IN", "hi-IN"}, env.transcriber.opts.Languages)

	_, err = env.speech.STT(ctx, audio, "not a language!")
	assert.ErrorIs(t, err, code.ErrorLanguageNotValid)

	_, err = env.speech.STT(ctx, &speech.Audio{}, "")
	assert.ErrorIs(t, err, code.ErrorAudioMissing)
}

func TestSpeechService_Faults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	audio := &speech.Audio{Data: []byte("RIFF"), Filename: "a.wav"}

	env.transcriber.err = speech.ErrNoSpeech
	_, err := env.speech.STT(ctx, audio, "")
	assert.ErrorIs(t, err, code.ErrorSpeechNotRecognized)

	env.transcriber.err = fmt.Errorf("google: %w: %w", speech.ErrServiceFault, errors.New("503"))
	_, err = env.speech.STT(ctx, audio, "")
	assert.ErrorIs(t, err, code.ErrorServiceUnavailable)

	env.transcriber.err = nil
	env.translator.err = fmt.Errorf("google: %w", speech.ErrServiceFault)
	_, err = env.speech.STT(ctx, audio, "")
	assert.ErrorIs(t, err, code.ErrorServiceUnavailable)

	_, err = env.speech.Translate(ctx, "vanakkam")
	assert.ErrorIs(t, err, code.ErrorServiceUnavailable)
}

func TestSpeechService_Command(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "asha@example.com")

	out, err := env.speech.Command(ctx, uid, &speech.Audio{Data: []byte("RIFF"), Filename: "a.wav"}, "")
	require.NoError(t, err)
	require.NotNil(t, out.Transcript)
	assert.Equal(t, command.ActionCreate, out.Command.Action)
	assert.Equal(t, "buy milk", out.Command.Content)
	require.NotNil(t, out.Result.NoteID)

	note, err := env.notes.Get(ctx, uid, *out.Result.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "புதிய குறிப்பு", note.OriginalText)
	assert.Equal(t, "buy milk", note.TranslatedText)
	assert.Equal(t, "ta-IN", note.Language)

	out, err = env.speech.CommandText(ctx, uid, "delete note")
	require.Error(t, err)
	var c *code.Code
	require.ErrorAs(t, err, &c)
	assert.Equal(t, code.ErrorCommandMissingID.Code(), c.Code())
	assert.Same(t, out, c.Data())
	assert.Nil(t, out.Transcript)
}

func TestAudioService_UploadAndTranscribe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.audio.Upload(ctx, 1, "voice.txt", 4, strings.NewReader("text"))
	assert.ErrorIs(t, err, code.ErrorAudioInvalidFormat)

	_, err = env.audio.Upload(ctx, 1, "voice.wav", 4096, bytes.NewReader(make([]byte, 10)))
	assert.ErrorIs(t, err, code.ErrorAudioTooLarge)

	// 声明的大小偏小时按实际写入量判断
	_, err = env.audio.Upload(ctx, 1, "voice.wav", 10, bytes.NewReader(make([]byte, 2048)))
	assert.ErrorIs(t, err, code.ErrorAudioTooLarge)
	entries, err := os.ReadDir(env.config.Audio.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	up, err := env.audio.Upload(ctx, 1, "Voice.M4A", 4, strings.NewReader("data"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(up.Filename, ".m4a"))
	assert.FileExists(t, filepath.Join(env.config.Audio.UploadDir, up.Filename))

	tr, err := env.audio.Transcribe(ctx, up.Filename, "")
	require.NoError(t, err)
	assert.Equal(t, "புதிய குறிப்பு", tr.Transcription)

	_, err = env.audio.Transcribe(ctx, "missing.wav", "")
	assert.ErrorIs(t, err, code.ErrorAudioNotFound)

	_, err = env.audio.Transcribe(ctx, "../"+up.Filename, "")
	assert.ErrorIs(t, err, code.ErrorAudioNotFound)
}

func TestAudioService_CleanupOlderThan(t *testing.T) {
	env := newTestEnv(t)
	dir := env.config.Audio.UploadDir

	oldFile := filepath.Join(dir, "old.wav")
	newFile := filepath.Join(dir, "new.wav")
	require.NoError(t, os.WriteFile(oldFile, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(newFile, []byte("x"), 0o644))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, past, past))

	n, err := env.audio.CleanupOlderThan(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, newFile)
}
