package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	charthandler "stbr_web/internal/feature/chart/transport/handler"
	portfoliohandler "stbr_web/internal/feature/portfolio/transport/handler"
	searchhandler "stbr_web/internal/feature/search/transport/handler"
	"stbr_web/internal/platform/http/handler"
	"stbr_web/internal/web"
)

// Handlers groups the feature handlers the router mounts.
type Handlers struct {
	Search    *searchhandler.SearchHandler
	Chart     *charthandler.ChartHandler
	Portfolio *portfoliohandler.PortfolioHandler
}

func NewRouter(page web.IndexPage, h Handlers, checks map[string]handler.Check) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(checks))

	// 画面と静的ファイル
	r.GET("/", web.Index(page))
	r.StaticFS("/static", http.FS(web.Static()))

	// 画面から呼ばれる断片・JSON
	ui := r.Group("/ui")
	{
		ui.GET("/suggest", h.Search.Suggest)
		ui.GET("/tickers", h.Search.Tickers)
		ui.POST("/chart", h.Chart.Load)
		ui.POST("/portfolio", h.Portfolio.Analyze)
	}

	return r
}
