package web

import (
	"bytes"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stbr_web/internal/shared/asset"
)

func TestTemplates_Suggestions(t *testing.T) {
	t.Parallel()

	type match struct{ Symbol, Name string }

	var buf bytes.Buffer
	err := Templates().ExecuteTemplate(&buf, SuggestionsTemplate, []match{
		{Symbol: "AAPL", Name: "Apple Inc"},
		{Symbol: "BTC"},
		{Symbol: "<X>", Name: "esc&aped"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<li data-symbol="AAPL"><strong>AAPL</strong> <span>Apple Inc</span></li>`)
	assert.Contains(t, out, `<li data-symbol="BTC"><strong>BTC</strong></li>`)
	assert.Contains(t, out, `<strong>&lt;X&gt;</strong> <span>esc&amp;aped</span>`)
}

func TestIndex(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.GET("/", Index(IndexPage{DebounceMS: 300, Classes: asset.Classes, DefaultSymbol: "BTC"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-debounce-ms="300"`)
	assert.Contains(t, body, `<option value="crypto">crypto</option>`)
	assert.Contains(t, body, `value="BTC"`)
}

func TestStatic(t *testing.T) {
	t.Parallel()

	_, err := fs.Stat(Static(), "app.js")
	assert.NoError(t, err)
}

// TestStatic_ScriptHandlesFailures は埋め込みスクリプトが失敗応答を描画せず、
// 通信失敗時にエラー状態を表示することを確認します。
func TestStatic_ScriptHandlesFailures(t *testing.T) {
	t.Parallel()

	b, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)
	js := string(b)

	assert.Contains(t, js, "r.ok ? r.text() : ''", "failed suggestion responses must not be rendered as HTML")
	assert.Contains(t, js, "level: 'error'")
	assert.Contains(t, js, "Could not load chart.")
	assert.Contains(t, js, "Could not load portfolio chart.")
	assert.GreaterOrEqual(t, strings.Count(js, ".catch(function"), 3, "suggest, chart and portfolio requests each end in a failure state")
}
