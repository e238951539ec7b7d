// Package htmlutil extracts structured fields from raw HTML.
package htmlutil

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Title extracts the page title from HTML content.
func Title(htmlContent string) string {
	// Try <title> tag
	if matches := titlePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	// Try og:title meta tag
	if m := MetaProperty(htmlContent, "og:title"); m != "" {
		return m
	}

	// Try h1 tag
	if matches := firstH1Pattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}

	return ""
}

// Description extracts the meta description from HTML content.
func Description(htmlContent string) string {
	if m := MetaName(htmlContent, "description"); m != "" {
		return m
	}
	return MetaProperty(htmlContent, "og:description")
}

// MetaProperty extracts the content of a <meta property="..."> tag.
func MetaProperty(htmlContent, property string) string {
	return metaContent(htmlContent, "property", property)
}

// MetaName extracts the content of a <meta name="..."> tag.
func MetaName(htmlContent, name string) string {
	return metaContent(htmlContent, "name", name)
}

func metaContent(htmlContent, attr, value string) string {
	// Attribute order varies across platforms, so match both. The content
	// capture excludes only its own quote character: a double-quoted value
	// may contain apostrophes and vice versa.
	quoted := regexp.QuoteMeta(value)
	patterns := []string{
		fmt.Sprintf(`(?i)<meta[^>]+%s=["']%s["'][^>]+content="([^"]*)"`, attr, quoted),
		fmt.Sprintf(`(?i)<meta[^>]+%s=["']%s["'][^>]+content='([^']*)'`, attr, quoted),
		fmt.Sprintf(`(?i)<meta[^>]+content="([^"]*)"[^>]+%s=["']%s["']`, attr, quoted),
		fmt.Sprintf(`(?i)<meta[^>]+content='([^']*)'[^>]+%s=["']%s["']`, attr, quoted),
	}
	for _, p := range patterns {
		if matches := regexp.MustCompile(p).FindStringSubmatch(htmlContent); len(matches) > 1 {
			return strings.TrimSpace(html.UnescapeString(matches[1]))
		}
	}
	return ""
}

// JSONLDBlocks returns the contents of all ld+json script blocks.
func JSONLDBlocks(htmlContent string) []string {
	var blocks []string
	for _, m := range jsonLDPattern.FindAllStringSubmatch(htmlContent, -1) {
		if len(m) > 1 && strings.TrimSpace(m[1]) != "" {
			blocks = append(blocks, m[1])
		}
	}
	return blocks
}

// StripTags removes HTML tags and unescapes entities.
func StripTags(htmlContent string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(htmlContent, " ")))
}

// Pre-compiled patterns for extraction.
var (
	titlePattern   = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	firstH1Pattern = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	jsonLDPattern  = regexp.MustCompile(`(?is)<script[^>]+type=["']application/ld\+json["'][^>]*>(.*?)</script>`)
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
)
