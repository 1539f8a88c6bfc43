// Package sitemap renders sitemap.xml for the portfolio site from its
// static pages and the indexed content URLs.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nikbrunner/folio/internal/model"
)

const (
	xmlnsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xmlnsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLoc    = "http://www.sitemaps.org/schemas/sitemap/0.9 http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd"
)

// Page is one sitemap entry. Path is relative to the site URL.
type Page struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

// StaticPages returns the pages that exist regardless of content.
func StaticPages() []Page {
	return []Page{
		{Path: "/", ChangeFreq: "weekly", Priority: 1.0},
		{Path: "/blog", ChangeFreq: "daily", Priority: 0.9},
		{Path: "/resume", ChangeFreq: "monthly", Priority: 0.8},
	}
}

type urlset struct {
	XMLName        xml.Name `xml:"urlset"`
	Xmlns          string   `xml:"xmlns,attr"`
	XSI            string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	URLs           []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Pages merges the static pages with one page per distinct item URL.
// In-page anchors such as "/#projects" collapse into their page.
func Pages(items []model.SearchableItem) []Page {
	pages := StaticPages()
	seen := make(map[string]bool, len(pages))
	for _, p := range pages {
		seen[p.Path] = true
	}

	for _, item := range items {
		path := item.URL
		if i := strings.IndexByte(path, '#'); i >= 0 {
			path = path[:i]
		}
		if path == "" {
			path = "/"
		}
		if seen[path] {
			continue
		}
		seen[path] = true
		pages = append(pages, Page{Path: path, ChangeFreq: "monthly", Priority: 0.7})
	}
	return pages
}

// Write renders pages under siteURL as sitemap XML, stamping every entry
// with lastMod.
func Write(w io.Writer, siteURL string, pages []Page, lastMod time.Time) error {
	base := strings.TrimRight(siteURL, "/")
	set := urlset{
		Xmlns:          xmlnsSitemap,
		XSI:            xmlnsXSI,
		SchemaLocation: schemaLoc,
	}
	for _, p := range pages {
		set.URLs = append(set.URLs, url{
			Loc:        base + p.Path,
			LastMod:    lastMod.Format("2006-01-02"),
			ChangeFreq: p.ChangeFreq,
			Priority:   fmt.Sprintf("%.1f", p.Priority),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
