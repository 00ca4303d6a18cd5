package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/exam-dates/internal/exam"
	"golang.org/x/net/html"
)

const (
	UserAgent = "exam-dates/1.0 (github.com/pfrederiksen/exam-dates)"
	Timeout   = 30 * time.Second
)

// Selectors for the exam card markup.
const (
	cardSelector   = "div.card.well.mb-3"
	courseSelector = "h5.card-title"
	typeSelector   = "h6.card-subtitle"
	roomSelector   = "div.romListe.py-2"
	dateLabelStrip = "Dato: "
	rangePrefix    = "Fra "
)

// dateLabels mark a div as carrying date text. Hand-out and hand-in dates of
// home exams usually sit in sibling divs of their own.
var dateLabels = []string{"Dato:", "Utlevering:", "Innlevering:"}

// Scraper handles fetching and parsing exam schedule pages
type Scraper struct {
	client    *http.Client
	userAgent string
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchRecords fetches a schedule page and extracts its exam records
func (s *Scraper) FetchRecords(ctx context.Context, url string) ([]exam.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParseRecords(resp.Body)
}

// ParseFile extracts exam records from a saved HTML page
func ParseFile(path string) ([]exam.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()

	return ParseRecords(f)
}

// ParseRecords extracts one record per exam card, in document order
func ParseRecords(r io.Reader) ([]exam.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	records := make([]exam.RawRecord, 0)
	doc.Find(cardSelector).Each(func(i int, card *goquery.Selection) {
		records = append(records, exam.RawRecord{
			CourseCode: textOrNA(card.Find(courseSelector).First()),
			ExamType:   textOrNA(card.Find(typeSelector).First()),
			DateText:   extractDateText(card),
			Location:   extractRooms(card),
		})
	})

	return records, nil
}

func textOrNA(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return exam.NotAvailable
	}
	return strings.TrimSpace(sel.Text())
}

// extractDateText collects every innermost div carrying date text, in document
// order, one per line. "Dato: " labels are removed; line breaks inside a div
// are kept.
func extractDateText(card *goquery.Selection) string {
	var lines []string
	card.Find("div").Not(roomSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.Find("div").Length() > 0 || !isDateText(sel.Text()) {
			return
		}
		text := strings.TrimSpace(blockText(sel))
		if text = strings.ReplaceAll(text, dateLabelStrip, ""); text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		return exam.NotAvailable
	}
	return strings.Join(lines, "\n")
}

func isDateText(text string) bool {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, rangePrefix) {
		return true
	}
	for _, label := range dateLabels {
		if strings.Contains(text, label) {
			return true
		}
	}
	return false
}

// extractRooms joins the text of every room div, one per line.
func extractRooms(card *goquery.Selection) string {
	var rooms []string
	card.Find(roomSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			rooms = append(rooms, text)
		}
	})

	if len(rooms) == 0 {
		return exam.NotAvailable
	}
	return strings.Join(rooms, "\n")
}

// blockText returns the text of sel with <br> and block-level children rendered
// as line breaks, which goquery's Text drops.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		b.WriteString(n.Data)
		return
	case n.Type == html.ElementNode && n.Data == "br":
		b.WriteString("\n")
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "li") {
		b.WriteString("\n")
	}
}
