// Package web は画面テンプレートと静的ファイルを埋め込みで提供します。
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"stbr_web/internal/shared/asset"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Template names.
const (
	IndexTemplate       = "index.tmpl"
	SuggestionsTemplate = "suggestions.tmpl"
)

// Templates parses every embedded template. It panics on a malformed template,
// which can only happen at build time.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

// Static returns the embedded static assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// IndexPage is the data the index template renders.
type IndexPage struct {
	DebounceMS    int64
	Classes       []asset.Class
	DefaultSymbol string
}

// Index serves the single page.
func Index(page IndexPage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, IndexTemplate, page)
	}
}
