package adaptogen

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"adaptogen-scraper/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const DEFAULT_MAX_PAGES = 100

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	limiter  *rate.Limiter
	maxPages int
}

type ClientOptions struct {
	BaseUrl string
	// minimum spacing between requests, zero disables throttling
	RequestDelay time.Duration
	// hard cap on pages fetched per paginated category, defaults to
	// DEFAULT_MAX_PAGES
	MaxPages int
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DEFAULT_MAX_PAGES
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.RequestDelay), 1)
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeaders(map[string]string{
		"user-agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"accept-language": "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
	})
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	c := &Client{
		BaseUrl:  baseUrl,
		Http:     client,
		limiter:  limiter,
		maxPages: maxPages,
	}
	return c, nil
}

// FetchError reports a page that could not be retrieved, either
// because the transport failed or because the server answered with an
// error status.
type FetchError struct {
	Url    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.Url, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: status %d", e.Url, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchPage retrieves a catalog page and parses it, `target` may be
// absolute or relative to the client's base url.
func (c *Client) FetchPage(ctx context.Context, target string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:FetchPage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, &FetchError{Url: target, Err: err}
	}
	if res.IsError() {
		fetchErr := &FetchError{Url: target, Status: res.StatusCode()}
		span.RecordError(fetchErr)
		span.SetStatus(codes.Error, "server returned an error status")
		return nil, fetchErr
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}
	return doc, nil
}
