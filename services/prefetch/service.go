package prefetch

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"storefront-backend/lib/htmlutil"
	"storefront-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = telemetry.Tracer("storefront.services.prefetch")

type Options struct {
	// BaseUrl is the host rendered pages are fetched from.
	BaseUrl string `json:"base_url"`
}

// Service fetches rendered pages and extracts the images a client
// would need to warm its cache before navigating.
type Service struct {
	client *resty.Client
}

func NewService(options Options) Service {
	client := resty.New().SetBaseURL(options.BaseUrl)
	telemetry.InstrumentResty(client, "storefront.services.prefetch")
	return Service{client: client}
}

// Images returns the image tags under the main content region of the
// page at path. Fetch and parse failures degrade to an empty list;
// the caller always gets a success-shaped result.
func (s Service) Images(ctx context.Context, path string) []htmlutil.Image {
	ctx, span := tracer.Start(ctx, "Images")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	res, err := s.client.R().SetContext(ctx).Get(path)
	if err != nil {
		slog.WarnContext(ctx, "prefetch fetch failed", "path", path, "err", err)
		return []htmlutil.Image{}
	}
	if res.StatusCode() != http.StatusOK {
		slog.WarnContext(ctx, "prefetch got non-ok status", "path", path, "status", res.StatusCode())
		return []htmlutil.Image{}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		slog.WarnContext(ctx, "prefetch parse failed", "path", path, "err", err)
		return []htmlutil.Image{}
	}

	return htmlutil.GetImages(ctx, doc.Find("main img"))
}
