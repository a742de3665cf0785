package view

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

const hiddenClass = "hidden"

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title></title>
<style>
.hidden { display: none; }
.data-item { border: 1px solid #ddd; padding: .5rem 1rem; margin: .5rem 0; }
.error { color: #b00020; }
.summary { text-align: center; margin-top: 1rem; font-style: italic; }
</style>
</head>
<body>
<h1 id="page-title"></h1>
<section id="controls"></section>
<div id="loading" class="loading hidden">Loading...</div>
<div id="error" class="error hidden"><p class="error-message"></p></div>
<div id="data-display"></div>
</body>
</html>`

// Control is one trigger shown on the page: a collection fetch, or a lookup with
// its selectable item names.
type Control struct {
	EndpointID string
	Label      string
	Lookup     bool
	Items      []string
}

// Document is a Renderer over an HTML page. Regions are toggled with the
// "hidden" class and content is injected as markup.
type Document struct {
	*Regions
	mu  sync.Mutex
	doc *goquery.Document
}

// NewDocument builds the page with a title and trigger controls.
func NewDocument(title string, controls []Control) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageTemplate))
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	doc.Find("title").SetText(title)
	doc.Find("#page-title").SetText(title)
	doc.Find("#controls").SetHtml(controlsMarkup(controls))

	return &Document{Regions: NewRegions(), doc: doc}, nil
}

func (d *Document) ShowLoading() {
	d.Regions.ShowLoading()
	d.with(func(doc *goquery.Document) { doc.Find("#loading").RemoveClass(hiddenClass) })
}

func (d *Document) HideLoading() {
	d.Regions.HideLoading()
	d.with(func(doc *goquery.Document) { doc.Find("#loading").AddClass(hiddenClass) })
}

func (d *Document) ShowError(message string) {
	d.Regions.ShowError(message)
	d.with(func(doc *goquery.Document) {
		doc.Find("#error .error-message").SetText(message)
		doc.Find("#error").RemoveClass(hiddenClass)
	})
}

func (d *Document) HideError() {
	d.Regions.HideError()
	d.with(func(doc *goquery.Document) { doc.Find("#error").AddClass(hiddenClass) })
}

func (d *Document) ShowContent(body Body) {
	d.Regions.ShowContent(body)
	d.with(func(doc *goquery.Document) { doc.Find("#data-display").SetHtml(bodyMarkup(body)) })
}

func (d *Document) Reset(placeholder string) {
	d.Regions.Reset(placeholder)
	d.with(func(doc *goquery.Document) {
		doc.Find("#data-display").SetHtml(bodyMarkup(Body{Placeholder: placeholder}))
	})
}

// HTML serializes the current page.
func (d *Document) HTML() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Html()
}

func (d *Document) with(fn func(*goquery.Document)) {
	d.mu.Lock()
	fn(d.doc)
	d.mu.Unlock()
}

func bodyMarkup(b Body) string {
	var sb strings.Builder
	esc := html.EscapeString

	if b.Message != "" {
		sb.WriteString(`<p class="result">` + esc(b.Message) + `</p>`)
	}
	if b.Placeholder != "" {
		sb.WriteString(`<p class="placeholder">` + esc(b.Placeholder) + `</p>`)
	}
	for _, rec := range b.Records {
		sb.WriteString(`<div class="data-item">`)
		if rec.Heading != "" {
			sb.WriteString(`<h4>` + esc(rec.Heading) + `</h4>`)
		}
		for _, f := range rec.Fields {
			fmt.Fprintf(&sb, `<p><strong>%s:</strong> %s</p>`, esc(f.Label), esc(f.Value))
		}
		sb.WriteString(`</div>`)
	}
	if b.Summary != "" {
		sb.WriteString(`<p class="summary"><strong>` + esc(b.Summary) + `</strong></p>`)
	}
	return sb.String()
}

func controlsMarkup(controls []Control) string {
	var sb strings.Builder
	esc := html.EscapeString

	for _, c := range controls {
		action := "/fetch/" + esc(c.EndpointID)
		sb.WriteString(`<div class="control" data-endpoint="` + esc(c.EndpointID) + `">`)
		if !c.Lookup {
			sb.WriteString(`<form method="post" action="` + action + `"><button type="submit">Fetch ` + esc(c.Label) + `</button></form>`)
			sb.WriteString(`</div>`)
			continue
		}

		sb.WriteString(`<h3>` + esc(c.Label) + `</h3>`)
		sb.WriteString(`<form method="post" action="` + action + `"><ul class="items">`)
		for _, item := range c.Items {
			sb.WriteString(`<li><button type="submit" name="name" value="` + esc(item) + `">` + esc(item) + `</button></li>`)
		}
		sb.WriteString(`</ul></form>`)
		sb.WriteString(`<form method="post" action="` + action + `"><input type="text" name="name" placeholder="name"><button type="submit">Look up</button></form>`)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`<form method="post" action="/clear"><button type="submit" id="clear-data-btn">Clear</button></form>`)
	return sb.String()
}
