package scrape

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/askdata-labs/askdata-engine/pkg/models"
)

// selector is a minimal CSS-ish selector: one of tag, class, or id.
type selector struct {
	tag   string
	class string
	id    string
}

// mainSelectors are the candidate containers for the readable content, in
// preference order. The first match wins; <body> is the final fallback.
var mainSelectors = []selector{
	{tag: "main"},
	{tag: "article"},
	{class: "content"},
	{class: "post-content"},
	{class: "entry-content"},
	{id: "content"},
	{class: "main-content"},
}

// Non-content elements dropped before text extraction.
var (
	strippedTags    = map[string]bool{"script": true, "style": true, "nav": true, "header": true, "footer": true}
	strippedClasses = map[string]bool{"nav": true, "header": true, "footer": true, "sidebar": true, "menu": true}
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// extract parses raw HTML and produces the normalized scraped content:
// title, main text, meta-tag metadata, and absolute outbound links.
func extract(url, rawHTML string) (*models.ScrapedContent, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(textOf(find(doc, selector{tag: "title"})))
	if title == "" {
		title = strings.TrimSpace(textOf(find(doc, selector{tag: "h1"})))
	}
	if title == "" {
		title = "Untitled"
	}

	content := ""
	for _, sel := range mainSelectors {
		if node := find(doc, sel); node != nil {
			content = textOf(node)
			break
		}
	}
	if strings.TrimSpace(content) == "" {
		content = textOf(find(doc, selector{tag: "body"}))
	}
	content = strings.TrimSpace(whitespaceRun.ReplaceAllString(content, " "))

	meta := models.ScrapedMetadata{
		Description:   firstOf(metaContent(doc, "name", "description"), metaContent(doc, "property", "og:description")),
		Author:        firstOf(metaContent(doc, "name", "author"), metaContent(doc, "property", "article:author")),
		PublishedDate: firstOf(metaContent(doc, "property", "article:published_time"), timeDatetime(doc)),
		WordCount:     len(strings.Fields(content)),
		Links:         absoluteLinks(doc),
	}

	return &models.ScrapedContent{
		URL:      url,
		Title:    title,
		Content:  content,
		Metadata: meta,
	}, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// stripped reports whether a node is one of the non-content regions
// (scripts, styles, nav/header/footer chrome, class-marked sidebars).
func stripped(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if strippedTags[n.Data] {
		return true
	}
	for _, class := range strings.Fields(attr(n, "class")) {
		if strippedClasses[class] {
			return true
		}
	}
	return false
}

// matches reports whether an element node satisfies the selector.
func matches(n *html.Node, sel selector) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch {
	case sel.tag != "":
		return n.Data == sel.tag
	case sel.id != "":
		return attr(n, "id") == sel.id
	case sel.class != "":
		for _, class := range strings.Fields(attr(n, "class")) {
			if class == sel.class {
				return true
			}
		}
	}
	return false
}

// find returns the first node matching sel in document order, skipping
// stripped regions entirely.
func find(n *html.Node, sel selector) *html.Node {
	if stripped(n) {
		return nil
	}
	if matches(n, sel) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, sel); found != nil {
			return found
		}
	}
	return nil
}

// textOf collects the text content beneath a node, skipping stripped
// regions. Returns "" for a nil node.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if stripped(n) {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// metaContent returns the content attribute of the first <meta> whose
// attrKey attribute equals attrVal.
func metaContent(doc *html.Node, attrKey, attrVal string) string {
	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if result != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" && attr(n, attrKey) == attrVal {
			result = attr(n, "content")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return result
}

// timeDatetime returns the datetime attribute of the first <time> element.
func timeDatetime(doc *html.Node) string {
	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if result != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "time" {
			if dt := attr(n, "datetime"); dt != "" {
				result = dt
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return result
}

// absoluteLinks collects href values of anchors, keeping only absolute
// http(s) URLs.
func absoluteLinks(doc *html.Node) []string {
	links := []string{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attr(n, "href"); strings.HasPrefix(href, "http") {
				links = append(links, href)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}
