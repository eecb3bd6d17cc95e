package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schemapress/schemapress/app/database"
)

const (
	fileName   = "sitemap.xml"
	changeFreq = "weekly"
	priority   = "0.8"

	pingTimeout = 10 * time.Second
)

var pingEndpoints = []string{
	"https://www.google.com/ping?sitemap=%s",
	"https://www.bing.com/ping?sitemap=%s",
}

// Generator writes the sitemap for all published, indexable catalog pages.
type Generator struct {
	products   database.ProductRepository
	httpClient *http.Client
	baseURL    string
	publicDir  string
}

func NewGenerator(products database.ProductRepository, httpClient *http.Client, baseURL, publicDir string) *Generator {
	return &Generator{
		products:   products,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicDir:  publicDir,
	}
}

// Generate renders the sitemap and writes it to the public directory,
// returning the number of URLs it contains.
func (g *Generator) Generate() (int, error) {
	refs, err := g.products.ListPublishedRefs()
	if err != nil {
		return 0, fmt.Errorf("failed to list published pages: %w", err)
	}

	data := g.render(refs)

	if err := os.MkdirAll(g.publicDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create public directory: %w", err)
	}

	path := filepath.Join(g.publicDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write sitemap: %w", err)
	}

	// Homepage entry plus one per page.
	return len(refs) + 1, nil
}

func (g *Generator) render(refs []database.PageRef) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	g.writeURL(&buf, g.baseURL+"/", time.Now().UTC())
	for _, ref := range refs {
		g.writeURL(&buf, fmt.Sprintf("%s/products/%s", g.baseURL, ref.Slug), ref.UpdatedAt)
	}

	buf.WriteString("</urlset>\n")
	return buf.Bytes()
}

func (g *Generator) writeURL(buf *bytes.Buffer, loc string, lastmod time.Time) {
	buf.WriteString("  <url>\n")
	buf.WriteString("    <loc>")
	xml.EscapeText(buf, []byte(loc))
	buf.WriteString("</loc>\n")
	fmt.Fprintf(buf, "    <lastmod>%s</lastmod>\n", lastmod.UTC().Format("2006-01-02"))
	fmt.Fprintf(buf, "    <changefreq>%s</changefreq>\n", changeFreq)
	fmt.Fprintf(buf, "    <priority>%s</priority>\n", priority)
	buf.WriteString("  </url>\n")
}

// Ping notifies search engines about the updated sitemap. Failures are
// logged and never propagated.
func (g *Generator) Ping() {
	sitemapURL := url.QueryEscape(g.baseURL + "/" + fileName)

	for _, endpoint := range pingEndpoints {
		pingURL := fmt.Sprintf(endpoint, sitemapURL)

		go func() {
			req, err := http.NewRequest("GET", pingURL, nil)
			if err != nil {
				slog.Warn("Failed to build ping request", "url", pingURL, "error", err)
				return
			}

			client := *g.httpClient
			client.Timeout = pingTimeout

			resp, err := client.Do(req)
			if err != nil {
				slog.Warn("Sitemap ping failed", "url", pingURL, "error", err)
				return
			}
			resp.Body.Close()

			slog.Debug("Sitemap ping sent", "url", pingURL, "status", resp.StatusCode)
		}()
	}
}
