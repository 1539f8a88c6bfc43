package content

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/folio/internal/model"
)

// ParseHTMLPost reads an HTML blog post. Metadata comes from
// <meta name="..." content="..."> tags (id, slug, title, excerpt or
// description, category, tags or keywords, published, language); the
// <title> element is the fallback title. Content is the visible text of
// <article>, or <body> when there is no article.
func ParseHTMLPost(r io.Reader) (model.BlogPost, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return model.BlogPost{}, err
	}

	var post model.BlogPost
	var title string
	var article, body *html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "meta":
				applyMeta(&post, strings.ToLower(getAttr(n, "name")), getAttr(n, "content"))
				return
			case "title":
				title = getTextContent(n)
				return
			case "article":
				if article == nil {
					article = n
				}
			case "body":
				body = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if post.Title == "" {
		post.Title = title
	}
	switch {
	case article != nil:
		post.Content = getTextContent(article)
	case body != nil:
		post.Content = getTextContent(body)
	}
	return post, nil
}

func applyMeta(post *model.BlogPost, name, value string) {
	value = strings.TrimSpace(value)
	switch name {
	case "id":
		post.ID = value
	case "slug":
		post.Slug = value
	case "title":
		post.Title = value
	case "excerpt", "description":
		if post.Excerpt == "" || name == "excerpt" {
			post.Excerpt = value
		}
	case "category":
		post.Category = value
	case "tags", "keywords":
		if len(post.Tags) == 0 || name == "tags" {
			post.Tags = splitList(value)
		}
	case "published", "publishedat":
		post.PublishedAt = value
	case "language":
		post.Language = value
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getTextContent returns the visible text of a node with whitespace
// collapsed. Script and style contents are skipped.
func getTextContent(n *html.Node) string {
	var parts []string
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			parts = append(parts, strings.Fields(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(parts, " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
