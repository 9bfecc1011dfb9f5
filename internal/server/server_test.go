package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	stdimage "image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"

	"github.com/davicano79/tallerai/internal/ai"
	"github.com/davicano79/tallerai/internal/config"
	"github.com/davicano79/tallerai/internal/service/notify"
	"github.com/davicano79/tallerai/internal/settings"
)

type fakeProber struct {
	err    error
	calls  int
	lastFC config.FirebaseConfig
}

func (f *fakeProber) Probe(_ context.Context, fc config.FirebaseConfig) error {
	f.calls++
	f.lastFC = fc
	return f.err
}

type testEnv struct {
	srv      *Server
	prober   *fakeProber
	notifier *notify.Notifier
	saved    []config.FirebaseConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop().Sugar()
	env := &testEnv{
		prober:   &fakeProber{},
		notifier: notify.New(logger, 10),
	}
	stub := ai.NewStubClient()
	env.srv = New(config.ServerConfig{BindAddr: "127.0.0.1:0", BasePath: "/api"}, Deps{
		Notifier:  env.notifier,
		Prober:    env.prober,
		Vehicles:  stub,
		Damages:   stub,
		Assistant: stub,
		Save: func(fc config.FirebaseConfig) error {
			env.saved = append(env.saved, fc)
			return nil
		},
	}, logger)
	return env
}

func (e *testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestConfigTest_Success(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/config/test", configRequest{
		Config: `{apiKey: 'AIza-x', projectId: "taller-demo",}`,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[settings.TestResult](t, rec)
	assert.Equal(t, settings.StatusSuccess, res.Status)

	// Пробный запрос получил уже отремонтированную конфигурацию
	require.Equal(t, 1, env.prober.calls)
	assert.Equal(t, "AIza-x", env.prober.lastFC.APIKey)
	assert.Equal(t, "taller-demo", env.prober.lastFC.ProjectID)

	// Об успехе уведомляем
	notes := env.notifier.Recent()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.LevelSuccess, notes[0].Level)
}

func TestConfigTest_PermissionDenied(t *testing.T) {
	env := newTestEnv(t)
	env.prober.err = &googleapi.Error{Code: http.StatusForbidden, Message: "Missing or insufficient permissions."}

	rec := env.post(t, "/api/config/test", configRequest{
		Config: `{"apiKey": "k", "projectId": "p"}`,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[settings.TestResult](t, rec)
	assert.Equal(t, settings.StatusError, res.Status)
	assert.Equal(t, "Нет доступа к Firestore", res.Message)
	assert.Contains(t, res.Detail, "Правила безопасности")

	notes := env.notifier.Recent()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.LevelError, notes[0].Level)
}

func TestConfigTest_UnrepairableBlob(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/config/test", configRequest{Config: "тут нет конфигурации"})

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[settings.TestResult](t, rec)
	assert.Equal(t, settings.StatusError, res.Status)
	assert.Equal(t, "Валидная конфигурация не найдена", res.Message)
	// До сети не дошли
	assert.Zero(t, env.prober.calls)
}

func TestConfigTest_MissingRequiredField(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/config/test", configRequest{Config: `{"apiKey": "k"}`})

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[settings.TestResult](t, rec)
	assert.Equal(t, settings.StatusError, res.Status)
	assert.Contains(t, res.Detail, "projectId")
	assert.Zero(t, env.prober.calls)
}

func TestConfigSave(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/config/save", configRequest{
		Config: `{apiKey: 'k', projectId: 'p', authDomain: 'p.firebaseapp.com'}`,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.saved, 1)
	assert.Equal(t, "k", env.saved[0].APIKey)
	assert.Equal(t, "p.firebaseapp.com", env.saved[0].AuthDomain)
}

func TestConfigSave_InvalidBlob(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/config/save", configRequest{Config: "{"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.saved)
}

// testPNG маленькое валидное фото для запросов.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIdentify(t *testing.T) {
	env := newTestEnv(t)
	img := base64.StdEncoding.EncodeToString(testPNG(t))
	rec := env.post(t, "/api/vehicle/identify", imageRequest{Image: img})

	require.Equal(t, http.StatusOK, rec.Code)
	info := decodeBody[ai.VehicleInfo](t, rec)
	assert.Equal(t, "Toyota", info.Make)
}

func TestIdentify_DataURL(t *testing.T) {
	env := newTestEnv(t)
	img := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t))
	rec := env.post(t, "/api/vehicle/identify", imageRequest{Image: img})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentify_BadBase64(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/vehicle/identify", imageRequest{Image: "не base64 вовсе!"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentify_NotAnImage(t *testing.T) {
	env := newTestEnv(t)
	img := base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes"))
	rec := env.post(t, "/api/vehicle/identify", imageRequest{Image: img})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssess(t *testing.T) {
	env := newTestEnv(t)
	img := base64.StdEncoding.EncodeToString(testPNG(t))
	rec := env.post(t, "/api/damage/assess", imageRequest{Image: img})

	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeBody[ai.DamageReport](t, rec)
	require.NotEmpty(t, report.Parts)
	assert.Equal(t, "minor", report.Severity)
}

func TestChat(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/chat", chatRequest{Question: "сколько сохнет лак?"})

	require.Equal(t, http.StatusOK, rec.Code)
	answer := decodeBody[ai.ChatAnswer](t, rec)
	assert.Contains(t, answer.Text, "сколько сохнет лак?")
}

func TestChat_EmptyQuestion(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/chat", chatRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestNotifications(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.Info("смена началась")

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	rec := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	notes := decodeBody[[]notify.Notification](t, rec)
	require.Len(t, notes, 1)
	assert.Equal(t, "смена началась", notes[0].Message)
}
