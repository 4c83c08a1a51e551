package directory

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"facetcrawl/lib/restyutil"
	"facetcrawl/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultListingUrl = "https://www.medicover.pl/lekarze"
	DefaultFacetsUrl  = "https://www.medicover.pl/API/pl/Cms.Widgets.SearchDoctors.Main/AutocompleteFilters"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DefaultTimeout    = time.Second * 30
)

type Client struct {
	ListingUrl string
	FacetsUrl  string
	Http       *resty.Client
	selectors  Selectors
}

type ClientOptions struct {
	ListingUrl string
	FacetsUrl  string
	// Timeout bounds every single request, defaults to DefaultTimeout.
	Timeout time.Duration
	// Retries is the number of extra attempts made after a transport failure,
	// 0 means every request is attempted exactly once.
	Retries   int
	UserAgent string
	// CloudflareBypass wraps the transport so its TLS and headers look like a browser's.
	CloudflareBypass bool
	Selectors        Selectors
	// DebugOutput receives a dump of every http exchange while debug logging is on.
	DebugOutput restyutil.InstrumentOutput
}

func parseBaseUrl(name, raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%s: '%s' is not an absolute url", name, raw)
	}
	return strings.TrimSuffix(parsed.String(), "/"), nil
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.ListingUrl == "" {
		opts.ListingUrl = DefaultListingUrl
	}
	if opts.FacetsUrl == "" {
		opts.FacetsUrl = DefaultFacetsUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	listingUrl, err := parseBaseUrl("listing url", opts.ListingUrl)
	if err != nil {
		return nil, err
	}
	facetsUrl, err := parseBaseUrl("facets url", opts.FacetsUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	client.SetRetryCount(opts.Retries)
	client.SetRetryWaitTime(time.Millisecond * 500)
	client.SetRetryMaxWaitTime(time.Second * 2)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return res != nil && res.StatusCode() >= http.StatusInternalServerError
	})

	telemetry.InstrumentResty(client, "facetcrawl/scrapers/directory/http")
	restyutil.InstrumentClient(client, opts.DebugOutput)

	return &Client{
		ListingUrl: listingUrl,
		FacetsUrl:  facetsUrl,
		Http:       client,
		selectors:  opts.Selectors.withDefaults(),
	}, nil
}

func (c *Client) Selectors() Selectors {
	return c.selectors
}
