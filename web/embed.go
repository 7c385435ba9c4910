package web

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

// IndexView is the template name of the summarizer page.
const IndexView = "templates/index"

//go:embed templates/*.html
var Templates embed.FS

// NewViews returns the Fiber view engine over the embedded templates.
func NewViews() *html.Engine {
	return html.NewFileSystem(http.FS(Templates), ".html")
}
