package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/internal/dao"
	"github.com/haierkeys/voice-note-service/internal/speech"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/validator"

	"github.com/bytedance/sonic"
	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTranscriber struct {
	text string
}

func (s *stubTranscriber) Name() string { return "stub" }

func (s *stubTranscriber) Transcribe(_ context.Context, _ *speech.Audio, _ speech.TranscribeOptions) (*speech.Transcript, error) {
	if s.text == "" {
		return nil, speech.ErrNoSpeech
	}
	return &speech.Transcript{Text: s.text, Language: "ta-IN", Confidence: 0.8}, nil
}

// stubTranslator 按映射表翻译，未命中时原样返回
type stubTranslator struct {
	table map[string]string
}

func (s *stubTranslator) Name() string { return "stub" }

func (s *stubTranslator) Translate(_ context.Context, text, _ string) (*speech.Translation, error) {
	if out, ok := s.table[text]; ok {
		return &speech.Translation{Text: out, SourceLanguage: "ta"}, nil
	}
	return &speech.Translation{Text: text, SourceLanguage: "en"}, nil
}

type testServer struct {
	t           *testing.T
	router      *gin.Engine
	app         *app.App
	transcriber *stubTranscriber
}

type envelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterCustom())

	cfg := &app.AppConfig{}
	require.NoError(t, defaults.Set(cfg))
	cfg.Database = dao.DatabaseConfig{Type: "sqlite", Path: ":memory:", AutoMigrate: true, MaxIdleConns: 1, MaxOpenConns: 1}
	cfg.Audio.UploadSavePath = t.TempDir()
	cfg.Audio.MaxSize = "1KB"
	cfg.Security.AuthRateLimit = 1000

	db, err := dao.NewDBEngine(cfg.Database)
	require.NoError(t, err)

	transcriber := &stubTranscriber{text: "புதிய குறிப்பு"}
	a, err := app.NewApp(cfg, zap.NewNop(), db,
		app.WithTranscriber(transcriber),
		app.WithTranslator(&stubTranslator{table: map[string]string{"புதிய குறிப்பு": "create buy milk"}}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	return &testServer{
		t:           t,
		router:      NewRouter(a, ut.New(en.New(), en.New())),
		app:         a,
		transcriber: transcriber,
	}
}

func (s *testServer) do(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, sonic.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) json(method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(s.t, err)
		buf.Write(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(req, token)
}

func (s *testServer) upload(path, filename string, content []byte, token string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(s.t, err)
	_, _ = fw.Write(content)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req, token)
}

func (s *testServer) register(email string) (string, int64) {
	s.t.Helper()
	w, env := s.json(http.MethodPost, "/auth/register", map[string]string{
		"name": "tester", "email": email, "password": "secret123",
	}, "")
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		UserID      int64  `json:"user_id"`
	}
	require.NoError(s.t, sonic.Unmarshal(env.Data, &token))
	assert.Equal(s.t, "bearer", token.TokenType)
	return token.AccessToken, token.UserID
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

type noteView struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	Category       string `json:"category"`
	IsPinned       bool   `json:"is_pinned"`
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token, uid := s.register("alice@example.com")
	assert.NotEmpty(t, token)
	assert.Greater(t, uid, int64(0))

	w, env := s.json(http.MethodPost, "/auth/register", map[string]string{
		"name": "again", "email": "alice@example.com", "password": "secret123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrorUserEmailAlreadyExists.Code(), env.Code)

	w, _ = s.json(http.MethodPost, "/auth/register", map[string]string{"name": "x", "email": "x@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "password is required")

	w, env = s.json(http.MethodPost, "/auth/login", map[string]string{"email": "alice@example.com", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrorUserLoginPasswordFailed.Code(), env.Code)

	w, _ = s.json(http.MethodPost, "/auth/login", map[string]string{"email": "alice@example.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.json(http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		UID   int64  `json:"user_id"`
		Email string `json:"email"`
	}](t, env)
	assert.Equal(t, uid, me.UID)
	assert.Equal(t, "alice@example.com", me.Email)

	w, _ = s.json(http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = s.json(http.MethodGet, "/auth/me", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNoteCRUD(t *testing.T) {
	s := newTestServer(t)
	token, uid := s.register("bob@example.com")
	other, _ := s.register("eve@example.com")

	w, env := s.json(http.MethodPost, "/notes/", map[string]any{
		"original_text": "பால் வாங்கு", "translated_text": "Buy milk",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[noteView](t, env)
	assert.Equal(t, uid, created.UserID)
	assert.Equal(t, "General", created.Category)

	_, _ = s.json(http.MethodPost, "/notes/", map[string]any{
		"original_text": "call mom", "translated_text": "Call mom", "is_pinned": true,
	}, token)

	_, env = s.json(http.MethodGet, "/notes/", nil, token)
	list := decode[[]noteView](t, env)
	require.Len(t, list, 2)
	assert.True(t, list[0].IsPinned, "pinned first")

	_, env = s.json(http.MethodGet, "/notes/paginated?page=2&limit=1", nil, token)
	page := decode[struct {
		Page  int        `json:"page"`
		Limit int        `json:"limit"`
		Total int64      `json:"total"`
		Notes []noteView `json:"notes"`
	}](t, env)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.Limit)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Notes, 1)
	assert.Equal(t, created.ID, page.Notes[0].ID)

	// 超出上限的 limit 按配置截断
	_, env = s.json(http.MethodGet, "/notes/paginated?limit=100000000", nil, token)
	capped := decode[struct {
		Limit int        `json:"limit"`
		Notes []noteView `json:"notes"`
	}](t, env)
	assert.Equal(t, 100, capped.Limit)
	assert.Len(t, capped.Notes, 2)

	_, env = s.json(http.MethodGet, "/notes/search?q=MILK", nil, token)
	assert.Len(t, decode[[]noteView](t, env), 1)

	path := "/notes/" + strconv.FormatInt(created.ID, 10)
	w, env = s.json(http.MethodGet, path, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, code.ErrorNoteNotFound.Code(), env.Code)

	w, env = s.json(http.MethodPut, path, map[string]any{
		"original_text": "பால் வாங்கு", "translated_text": "Buy milk and bread", "category": "Shopping",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Shopping", decode[noteView](t, env).Category)

	_, env = s.json(http.MethodGet, path+"/revisions", nil, token)
	revs := decode[[]struct {
		TranslatedText string `json:"translated_text"`
		Inserted       int    `json:"inserted"`
	}](t, env)
	require.Len(t, revs, 1)
	assert.Equal(t, "Buy milk", revs[0].TranslatedText)
	assert.Equal(t, len(" and bread"), revs[0].Inserted)

	w, _ = s.json(http.MethodGet, "/notes/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.json(http.MethodDelete, path, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.json(http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.json(http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpeechEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register("carol@example.com")

	w, env := s.upload("/speech/stt", "clip.wav", []byte("RIFF....WAVE"), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stt := decode[struct {
		OriginalText string `json:"original_text"`
		Language     string `json:"language"`
		EnglishText  string `json:"english_text"`
	}](t, env)
	assert.Equal(t, "புதிய குறிப்பு", stt.OriginalText)
	assert.Equal(t, "ta-IN", stt.Language)
	assert.Equal(t, "create buy milk", stt.EnglishText)

	w, env = s.upload("/speech/command", "clip.wav", []byte("RIFF....WAVE"), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cmd := decode[struct {
		Command struct {
			Action  string `json:"action"`
			Content string `json:"content"`
		} `json:"command"`
		Result struct {
			Status string `json:"status"`
			NoteID *int64 `json:"note_id"`
		} `json:"result"`
	}](t, env)
	assert.Equal(t, "CREATE", cmd.Command.Action)
	assert.Equal(t, "buy milk", cmd.Command.Content)
	assert.Equal(t, "success", cmd.Result.Status)
	require.NotNil(t, cmd.Result.NoteID)

	w, env = s.json(http.MethodPost, "/speech/command/text", map[string]string{"text": "search milk"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	hits := decode[struct {
		Result struct {
			Results []struct {
				ID int64 `json:"id"`
			} `json:"results"`
		} `json:"result"`
	}](t, env)
	require.Len(t, hits.Result.Results, 1)
	assert.Equal(t, *cmd.Result.NoteID, hits.Result.Results[0].ID)

	w, env = s.json(http.MethodPost, "/speech/command/text", map[string]string{"text": "sing a song"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, code.ErrorCommandUnknown.Code(), env.Code)
	assert.NotEmpty(t, env.Data, "pipeline output is kept on failure")

	s.transcriber.text = ""
	w, env = s.upload("/speech/stt", "silence.wav", []byte("RIFF"), token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, code.ErrorSpeechNotRecognized.Code(), env.Code)

	w, _ = s.upload("/speech/stt", "big.wav", bytes.Repeat([]byte("a"), 2048), token)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w, env = s.json(http.MethodPost, "/translate/?text=hello", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "hello", decode[struct {
		Translated string `json:"translated"`
	}](t, env).Translated)

	w, _ = s.json(http.MethodPost, "/translate/", map[string]string{"text": "  "}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.json(http.MethodGet, "/speech/languages", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "ta-IN")
}

func TestAudioUploadAndTranscribe(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register("dave@example.com")

	w, env := s.upload("/upload-audio", "memo.mp3", []byte("ID3...."), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	up := decode[struct {
		Filename string `json:"filename"`
		Path     string `json:"path"`
	}](t, env)
	assert.Regexp(t, `^[0-9a-f-]{36}\.mp3$`, up.Filename)

	w, _ = s.upload("/upload-audio", "notes.txt", []byte("text"), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.json(http.MethodPost, "/transcribe?filename="+up.Filename, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "புதிய குறிப்பு", decode[struct {
		Transcription string `json:"transcription"`
	}](t, env).Transcription)

	w, _ = s.json(http.MethodPost, "/transcribe?filename=missing.wav", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.json(http.MethodPost, "/transcribe?filename=../../etc/passwd", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, env := s.json(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	health := decode[struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}](t, env)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)

	w, env = s.json(http.MethodGet, "/version", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, app.Version, decode[struct {
		Version string `json:"version"`
	}](t, env).Version)

	w, _ = s.json(http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	priv := NewPrivateRouter(s.app)
	rec := httptest.NewRecorder()
	priv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	rec = httptest.NewRecorder()
	priv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), app.Name)
}
