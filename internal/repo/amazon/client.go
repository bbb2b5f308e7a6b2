package amazon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/ragingtiger/amznbot/internal/models"
	"github.com/ragingtiger/amznbot/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// MaxItemsPerLookup is the GetItems limit on ItemIds per request.
const MaxItemsPerLookup = 10

const (
	targetPrefix    = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1."
	getItemsPath    = "/paapi5/getitems"
	searchItemsPath = "/paapi5/searchitems"
	partnerType     = "Associates"
	searchItemCount = 10
)

var ErrTooManyItems = fmt.Errorf("amazon: at most %d item ids per lookup", MaxItemsPerLookup)

var resources = []string{
	"ItemInfo.Title",
	"Offers.Listings.Price",
	"Offers.Listings.Availability.Message",
	"BrowseNodeInfo.WebsiteSalesRank",
}

// APIError is a non-successful PA-API answer.
type APIError struct {
	Operation  string
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amazon: %s returned status %d: %s: %s", e.Operation, e.StatusCode, e.Code, e.Message)
}

// Unwrap reports NoResults answers as models.ErrNotFound.
func (e *APIError) Unwrap() error {
	if e.Code == "NoResults" {
		return models.ErrNotFound
	}
	return nil
}

type Client interface {
	// Lookup returns the products for at most MaxItemsPerLookup ids. Unknown
	// ids are left out of the result.
	Lookup(ctx context.Context, ids []string) ([]models.Product, error)
	Search(ctx context.Context, keywords, searchIndex string) ([]models.Product, error)
}

type Option func(*client)

// WithBaseURL points the client at another endpoint, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.http.SetBaseURL(baseURL)
	}
}

// WithCredentials replaces the enclave backed credentials.
func WithCredentials(provider aws.CredentialsProvider) Option {
	return func(c *client) {
		c.signer.credentials = provider
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *client) {
		c.signer.nowFunc = now
	}
}

type client struct {
	http        *resty.Client
	signer      *requestSigner
	partnerTag  string
	marketplace string
}

func NewClient(conf *config.Config, opts ...Option) (Client, error) {
	c := &client{
		http:        util.NewRestyClient(30 * time.Second).SetBaseURL("https://" + conf.Catalog.Host),
		partnerTag:  conf.Tokens.AWSAssociateTag,
		marketplace: conf.Catalog.Marketplace,
		signer: &requestSigner{
			signer:  v4.NewSigner(),
			region:  conf.Catalog.Region,
			nowFunc: time.Now,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.signer.credentials == nil {
		creds, err := newEnclaveCredentials(conf.Tokens.AWSAccessKeyID, conf.Tokens.AWSSecretKey)
		if err != nil {
			return nil, err
		}
		c.signer.credentials = creds
		// the enclave holds the only copy from here on
		conf.Tokens.AWSSecretKey = ""
	}
	c.http.SetPreRequestHook(c.signer.preRequest)
	return c, nil
}

func (c *client) Lookup(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxItemsPerLookup {
		return nil, ErrTooManyItems
	}

	req := getItemsRequest{
		ItemIDs:     ids,
		ItemIDType:  "ASIN",
		PartnerTag:  c.partnerTag,
		PartnerType: partnerType,
		Marketplace: c.marketplace,
		Resources:   resources,
	}

	var resp getItemsResponse
	if err := c.call(ctx, "GetItems", getItemsPath, req, &resp); err != nil {
		return nil, err
	}

	var items []rawItem
	if resp.ItemsResult != nil {
		items = resp.ItemsResult.Items
	}
	if len(items) == 0 && len(resp.Errors) > 0 {
		return nil, &APIError{
			Operation:  "GetItems",
			StatusCode: http.StatusOK,
			Code:       resp.Errors[0].Code,
			Message:    resp.Errors[0].Message,
		}
	}

	return util.ConvertList(items, toProduct), nil
}

func (c *client) Search(ctx context.Context, keywords, searchIndex string) ([]models.Product, error) {
	req := searchItemsRequest{
		Keywords:    keywords,
		SearchIndex: searchIndex,
		ItemCount:   searchItemCount,
		PartnerTag:  c.partnerTag,
		PartnerType: partnerType,
		Marketplace: c.marketplace,
		Resources:   resources,
	}

	var resp searchItemsResponse
	err := c.call(ctx, "SearchItems", searchItemsPath, req, &resp)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if resp.SearchResult == nil {
		return nil, nil
	}
	return util.ConvertList(resp.SearchResult.Items, toProduct), nil
}

func (c *client) call(ctx context.Context, operation, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	resp, err := c.http.R().
		SetContext(withPayload(ctx, payload)).
		SetHeader("Content-Type", "application/json; charset=utf-8").
		SetHeader("Content-Encoding", "amz-1.0").
		SetHeader("X-Amz-Target", targetPrefix+operation).
		SetBody(payload).
		Post(path)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", operation, err)
	}

	if resp.StatusCode() != http.StatusOK {
		raw := resp.Body()
		return &APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode(),
			Code:       gjson.GetBytes(raw, "Errors.0.Code").String(),
			Message:    gjson.GetBytes(raw, "Errors.0.Message").String(),
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

func toProduct(item rawItem) models.Product {
	p := models.Product{
		ID:        item.ASIN,
		DetailURL: item.DetailPageURL,
	}
	if item.ItemInfo != nil && item.ItemInfo.Title != nil {
		p.Title = item.ItemInfo.Title.DisplayValue
	}
	if item.Offers != nil && len(item.Offers.Listings) > 0 {
		listing := item.Offers.Listings[0]
		if listing.Price != nil {
			p.FormattedPrice = listing.Price.DisplayAmount
			p.Amount = decimal.NewNullDecimal(decimal.NewFromFloat(listing.Price.Amount))
		}
		if listing.Availability != nil {
			p.Availability = listing.Availability.Message
		}
	}
	if item.BrowseNodeInfo != nil && item.BrowseNodeInfo.WebsiteSalesRank != nil && item.BrowseNodeInfo.WebsiteSalesRank.SalesRank > 0 {
		p.SalesRank = util.Ptr(item.BrowseNodeInfo.WebsiteSalesRank.SalesRank)
	}
	return p
}
