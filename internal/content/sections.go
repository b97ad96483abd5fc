package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EditedSections returns the <h2> section titles of an edited transcript in
// document order.
func EditedSections(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse edited transcript: %w", err)
	}

	var titles []string
	doc.Find("h2").Each(func(_ int, sel *goquery.Selection) {
		title := strings.Join(strings.Fields(sel.Text()), " ")
		if title != "" {
			titles = append(titles, title)
		}
	})
	return titles, nil
}
