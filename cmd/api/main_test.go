package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"laudoapi/internal/config"
	"laudoapi/internal/docx"
	"laudoapi/internal/report"
	"laudoapi/internal/storage"
)

const examWithNodules = `{
	"idade": 45,
	"sexo": "feminino",
	"medidas_lobo_direito": {"comprimento": 4, "largura": 2, "espessura": 1.5},
	"medidas_lobo_esquerdo": {"comprimento": 4, "largura": 2, "espessura": 1.5},
	"espessura_istmo": 0.3,
	"nodulos": [
		{"local": "direito", "dimensoes_mm": "10x8x6", "composicao": "sólida", "ecogenicidade": "hipoecoica",
		 "margens": "regulares", "calcificacoes": "ausentes", "formato": "oval"},
		{"local": "esquerdo", "dimensoes_mm": "5x4x3", "composicao": "cística", "ecogenicidade": "anecoica",
		 "margens": "regulares", "calcificacoes": "ausentes", "formato": "oval"}
	]
}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderAndTextCmd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "exam.json")
	output := filepath.Join(dir, "laudo.docx")
	require.NoError(t, os.WriteFile(input, []byte(examWithNodules), 0o600))

	out, err := execute(t, "", "render", "--input", input, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "ULTRASSONOGRAFIA DA TIREOIDE")
	assert.Contains(t, out, "• TI-RADS 4")
	assert.Equal(t, 1, strings.Count(out, "Nódulo"), "only the first nodule is narrated by default")

	out, err = execute(t, "", "text", output)
	require.NoError(t, err)

	paragraphs, err := docx.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(paragraphs, "\n")+"\n", out)
}

func TestRenderCmd_StdinAllNodules(t *testing.T) {
	out, err := execute(t, examWithNodules, "render", "--all-nodules")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Nódulo"))
}

func TestRenderCmd_InvalidExam(t *testing.T) {
	_, err := execute(t, `{"idade": 45}`, "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestTextCmd_RequiresFile(t *testing.T) {
	_, err := execute(t, "", "text")
	assert.Error(t, err)
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "tape")

	_, err := execute(t, "", "serve")
	assert.ErrorIs(t, err, config.ErrUnknownBackend)

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "serve")
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestNewStore(t *testing.T) {
	cfg := &config.AppConfig{Storage: config.StorageConfig{Backend: config.BackendLocal, OutputDir: t.TempDir()}}
	store, err := newStore(cfg)
	require.NoError(t, err)
	assert.NotNil(t, store)

	cfg.Storage.OutputDir = filepath.Join(t.TempDir(), "app", "output")
	_, err = newStore(cfg)
	require.NoError(t, err)
	assert.DirExists(t, cfg.Storage.OutputDir)

	cfg.Storage.Backend = "tape"
	_, err = newStore(cfg)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestNewNarrator(t *testing.T) {
	cfg := &config.AppConfig{}
	assert.IsType(t, report.FirstNoduleNarrator{}, newNarrator(cfg))

	cfg.Report.NarrateAllNodules = true
	assert.IsType(t, report.EachNoduleNarrator{}, newNarrator(cfg))
}

func TestNewApp(t *testing.T) {
	store, err := storage.NewLocal(t.TempDir(), docx.ContentType)
	require.NoError(t, err)

	cfg := &config.AppConfig{BodyLimitBytes: 1 << 20}
	app, err := newApp(cfg, store, prometheus.NewRegistry(), zap.NewNop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/gerar-laudo-tireoide", strings.NewReader(examWithNodules))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "http_requests_total")
	assert.Contains(t, body.String(), "go_goroutines")

	_, err = newApp(cfg, nil, prometheus.NewRegistry(), zap.NewNop())
	assert.Error(t, err)
}
