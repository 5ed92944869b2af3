package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"switchscope/adapters/excel"
	"switchscope/app"
	"switchscope/domain/investigation"
	"switchscope/internal"
	"switchscope/ports"
)

// renderMarkdown converts reviewer-authored or externally generated narrative
// text to HTML for the detail views. The text itself is opaque to the core.
func renderMarkdown(text string) string {
	if text == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(text), p, renderer))
}

// renderedStrategy pairs a strategy with its description rendered to HTML.
type renderedStrategy struct {
	ports.Strategy
	DescriptionHTML string `json:"descriptionHtml"`
}

func renderStrategies(strategies []ports.Strategy) []renderedStrategy {
	out := make([]renderedStrategy, 0, len(strategies))
	for _, st := range strategies {
		out = append(out, renderedStrategy{
			Strategy:        st,
			DescriptionHTML: renderMarkdown(st.Description),
		})
	}
	return out
}

// writeReport streams the investigation workbook as an attachment.
func writeReport(c *gin.Context, overview *app.Overview, results investigation.Results) {
	f, err := excel.BuildReport(overview.Summary, overview.Timeline.Points, results)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="investigation-report.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		internal.DefaultLogger.With("ui").Error("stream report: %v", err)
	}
}
