package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "Cabinet Screw", CleanText("  Cabinet \n\t Screw  "))
	require.Equal(t, "ab", CleanText("a\x00b"))
	require.Equal(t, "", CleanText(" \n "))
}

func TestGetImages(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<main>
			<img src="/a.jpg" alt=" A  image " sizes="100vw">
			<img alt="no src, skipped">
			<img src="/b.jpg">
		</main>`))
	if err != nil {
		t.Fatal(err)
	}

	images := GetImages(context.Background(), doc.Find("main img"))
	require.Equal(t, []Image{
		{Src: "/a.jpg", Alt: "A image", Sizes: "100vw"},
		{Src: "/b.jpg"},
	}, images)
}

func TestGetImagesEmptySelection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<p>no images</p>`))
	if err != nil {
		t.Fatal(err)
	}
	images := GetImages(context.Background(), doc.Find("img"))
	require.Equal(t, []Image{}, images)
}
