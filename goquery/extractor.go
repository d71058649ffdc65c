// Package goquery provides CSS-selector based structural extraction of
// service records from government portal pages.
package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dalil-app/dalil"
)

// Ensure Extractor implements dalil.Extractor at compile time.
var _ dalil.Extractor = (*Extractor)(nil)

// sectionKeywords map a record field to the heading phrases that introduce
// it on portal pages, in both supported scripts.
var sectionKeywords = map[string][]string{
	"eligibility": {"eligibility", "who can apply", "الشروط", "الفئة المستهدفة", "شروط"},
	"documents":   {"required documents", "documents", "المستندات", "الوثائق المطلوبة"},
	"steps":       {"how to apply", "steps", "procedure", "خطوات", "طريقة التقديم"},
	"fees":        {"fees", "cost", "الرسوم", "التكلفة"},
	"processing":  {"processing time", "service duration", "مدة", "وقت الانجاز"},
}

// feePattern matches a currency-and-amount fee line, e.g. "AED 100.50".
// No \b anchors: Go's word boundary is ASCII-only and never fires before
// the Arabic currency word.
var feePattern = regexp.MustCompile(`(?i)(AED|USD|SAR|درهم)\s*([0-9]+(?:\.[0-9]+)?)`)

// Extractor parses service pages into partial records. Fields not found
// are left at their zero value; completing them is the orchestrator's
// decision, not the extractor's.
type Extractor struct {
	fallback dalil.ContentExtractor
	conv     dalil.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback sets a generic content extractor consulted for title and
// description when the structural pass finds neither.
func WithFallback(ce dalil.ContentExtractor) Option {
	return func(e *Extractor) { e.fallback = ce }
}

// WithConverter sets a converter used to render description HTML as
// Markdown instead of flattened text.
func WithConverter(c dalil.Converter) Option {
	return func(e *Extractor) { e.conv = c }
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractRecord parses raw HTML into a partial service record.
func (e *Extractor) ExtractRecord(rawHTML string, sourceURL string) (*dalil.ServiceRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, dalil.Errorf(dalil.EINVALID, "failed to parse HTML: %v", err)
	}

	record := &dalil.ServiceRecord{URL: sourceURL}

	record.Title = e.title(doc)
	record.Description = e.description(doc)
	record.Authority = authority(doc)
	record.Category = breadcrumbCategory(doc)
	record.Eligibility = sectionList(doc, "eligibility")
	record.Documents = sectionList(doc, "documents")
	record.Steps = sectionList(doc, "steps")
	record.Fees = fees(doc)
	record.ProcessingTime = sectionText(doc, "processing")
	record.Contact = contact(doc)
	record.LastUpdated = lastUpdated(doc)

	if record.Title == "" || record.Description == "" {
		e.fillFromFallback(rawHTML, record)
	}

	return record, nil
}

// fillFromFallback consults the generic content extractor for whatever the
// structural pass missed.
func (e *Extractor) fillFromFallback(rawHTML string, record *dalil.ServiceRecord) {
	if e.fallback == nil {
		return
	}
	content, err := e.fallback.Extract(rawHTML)
	if err != nil {
		return
	}
	if record.Title == "" {
		record.Title = strings.TrimSpace(content.Title)
	}
	if record.Description == "" {
		record.Description = clip(strings.TrimSpace(content.Text), 600)
	}
}

func (e *Extractor) title(doc *goquery.Document) string {
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func (e *Extractor) description(doc *goquery.Document) string {
	if d, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(d) != "" {
		return strings.TrimSpace(d)
	}

	sel := doc.Find(".service-description, .service-about, [itemprop=description]").First()
	if sel.Length() == 0 {
		return ""
	}
	if e.conv != nil {
		if inner, err := sel.Html(); err == nil {
			if md, err := e.conv.Convert(inner); err == nil {
				return strings.TrimSpace(md)
			}
		}
	}
	return collapse(sel.Text())
}

func authority(doc *goquery.Document) dalil.Authority {
	a := dalil.Authority{}
	sel := doc.Find(".authority-name, .service-provider, [itemprop=provider]").First()
	a.Name = collapse(sel.Text())
	if code, ok := sel.Attr("data-code"); ok {
		a.Code = strings.TrimSpace(code)
	}
	return a
}

func breadcrumbCategory(doc *goquery.Document) string {
	items := doc.Find(".breadcrumb li, nav[aria-label=breadcrumb] li")
	// The category is the crumb before the page itself.
	if items.Length() >= 2 {
		return collapse(items.Eq(items.Length() - 2).Text())
	}
	return ""
}

// section returns the heading element introducing a known section.
func section(doc *goquery.Document, name string) *goquery.Selection {
	keywords := sectionKeywords[name]
	var found *goquery.Selection
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		heading := strings.ToLower(collapse(sel.Text()))
		for _, kw := range keywords {
			if strings.Contains(heading, kw) {
				found = sel
				return false
			}
		}
		return true
	})
	return found
}

// sectionList returns the items of the list following a section heading.
func sectionList(doc *goquery.Document, name string) []string {
	heading := section(doc, name)
	if heading == nil {
		return nil
	}
	list := heading.NextAllFiltered("ul, ol").First()
	if list.Length() == 0 {
		list = heading.Parent().Find("ul, ol").First()
	}

	var items []string
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := collapse(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

// sectionText returns the text of the paragraph following a section heading.
func sectionText(doc *goquery.Document, name string) string {
	heading := section(doc, name)
	if heading == nil {
		return ""
	}
	return collapse(heading.NextAllFiltered("p").First().Text())
}

// fees parses fee line items from the fees section, falling back to any
// currency-marked amounts found in a fees table.
func fees(doc *goquery.Document) []dalil.Fee {
	heading := section(doc, "fees")
	if heading == nil {
		return nil
	}

	var out []dalil.Fee
	add := func(text string) {
		m := feePattern.FindStringSubmatch(text)
		if m == nil {
			return
		}
		amount, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return
		}
		currency := strings.ToUpper(m[1])
		if currency == "درهم" {
			currency = "AED"
		}
		out = append(out, dalil.Fee{
			Amount:      amount,
			Currency:    currency,
			Description: collapse(text),
		})
	}

	heading.NextAllFiltered("ul, ol, table").First().
		Find("li, tr").Each(func(_ int, sel *goquery.Selection) {
		add(sel.Text())
	})
	if len(out) == 0 {
		add(heading.NextAllFiltered("p").First().Text())
	}
	return out
}

func contact(doc *goquery.Document) *dalil.Contact {
	c := &dalil.Contact{}
	if href, ok := doc.Find(`a[href^="mailto:"]`).First().Attr("href"); ok {
		c.Email = strings.TrimPrefix(href, "mailto:")
	}
	if href, ok := doc.Find(`a[href^="tel:"]`).First().Attr("href"); ok {
		c.Phone = strings.TrimPrefix(href, "tel:")
	}
	if c.Email == "" && c.Phone == "" {
		return nil
	}
	return c
}

// lastUpdated reads a machine-readable timestamp when the page carries one.
func lastUpdated(doc *goquery.Document) time.Time {
	datetime, ok := doc.Find("time[datetime]").First().Attr("datetime")
	if !ok {
		return time.Time{}
	}
	datetime = strings.TrimSpace(datetime)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, datetime); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// collapse trims text and squeezes internal whitespace runs to one space.
func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// clip truncates text to at most n runes.
func clip(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
