package htmlutil

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("storefront.lib.htmlutil")

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText collapses inner whitespace and strips non-printable runes.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Srcset  string `json:"srcset,omitempty"`
	Sizes   string `json:"sizes,omitempty"`
	Loading string `json:"loading,omitempty"`
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// GetImages extracts the image attributes off every node in the
// selection. Nodes without a src are skipped.
func GetImages(ctx context.Context, sel *goquery.Selection) []Image {
	ctx, span := tracer.Start(ctx, "GetImages")
	defer span.End()

	images := []Image{}
	for _, n := range sel.Nodes {
		src := attrValue(n, "src")
		if src == "" {
			continue
		}

		img := Image{
			Src:     src,
			Alt:     CleanText(attrValue(n, "alt")),
			Srcset:  attrValue(n, "srcset"),
			Sizes:   attrValue(n, "sizes"),
			Loading: attrValue(n, "loading"),
		}
		images = append(images, img)
		span.AddEvent("image", trace.WithAttributes(
			attribute.String("src", img.Src),
			attribute.String("alt", img.Alt),
		))
	}

	return images
}
