package amazon

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/goccy/go-json"
	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/ragingtiger/amznbot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getItemsBody = `{
  "ItemsResult": {
    "Items": [
      {
        "ASIN": "B000000001",
        "DetailPageURL": "https://www.amazon.com/dp/B000000001",
        "ItemInfo": {"Title": {"DisplayValue": "Kettle"}},
        "Offers": {"Listings": [{
          "Price": {"Amount": 9.99, "Currency": "USD", "DisplayAmount": "$9.99"},
          "Availability": {"Message": "In Stock."}
        }]},
        "BrowseNodeInfo": {"WebsiteSalesRank": {"SalesRank": 42}}
      },
      {
        "ASIN": "B000000002",
        "DetailPageURL": "https://www.amazon.com/dp/B000000002",
        "ItemInfo": {"Title": {"DisplayValue": "Mug"}}
      }
    ]
  }
}`

func testConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{
			Marketplace: "www.amazon.com",
			Host:        "webservices.amazon.com",
			Region:      "us-east-1",
		},
		Tokens: config.Tokens{
			AWSAccessKeyID:  "AKIDEXAMPLE",
			AWSSecretKey:    "secret",
			AWSAssociateTag: "tag-20",
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(testConfig(),
		WithBaseURL(srv.URL),
		WithCredentials(credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", "")),
		WithClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }),
	)
	require.NoError(t, err)
	return c
}

func TestLookup(t *testing.T) {
	var got getItemsRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, getItemsPath, r.URL.Path)
		assert.Equal(t, targetPrefix+"GetItems", r.Header.Get("X-Amz-Target"))
		assert.Equal(t, "amz-1.0", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "20240102T030405Z", r.Header.Get("X-Amz-Date"))

		auth := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20240102/us-east-1/ProductAdvertisingAPI/aws4_request"), auth)
		assert.Contains(t, auth, "x-amz-target")

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))

		_, _ = w.Write([]byte(getItemsBody))
	})

	products, err := c.Lookup(context.Background(), []string{"B000000001", "B000000002"})
	require.NoError(t, err)

	assert.Equal(t, []string{"B000000001", "B000000002"}, got.ItemIDs)
	assert.Equal(t, "ASIN", got.ItemIDType)
	assert.Equal(t, "tag-20", got.PartnerTag)
	assert.Equal(t, "Associates", got.PartnerType)
	assert.Equal(t, "www.amazon.com", got.Marketplace)
	assert.Equal(t, resources, got.Resources)

	require.Len(t, products, 2)
	kettle := products[0]
	assert.Equal(t, "B000000001", kettle.ID)
	assert.Equal(t, "Kettle", kettle.Title)
	assert.Equal(t, "$9.99", kettle.FormattedPrice)
	assert.True(t, kettle.Amount.Valid)
	assert.Equal(t, "9.99", kettle.Amount.Decimal.String())
	assert.Equal(t, "In Stock.", kettle.Availability)
	require.NotNil(t, kettle.SalesRank)
	assert.Equal(t, 42, *kettle.SalesRank)
	assert.Equal(t, "https://www.amazon.com/dp/B000000001", kettle.DetailURL)

	mug := products[1]
	assert.Equal(t, "Mug", mug.Title)
	assert.Empty(t, mug.FormattedPrice)
	assert.False(t, mug.Amount.Valid)
	assert.Nil(t, mug.SalesRank)
}

func TestLookupLimits(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{}`))
	})

	products, err := c.Lookup(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, products)

	ids := make([]string, MaxItemsPerLookup+1)
	_, err = c.Lookup(context.Background(), ids)
	assert.ErrorIs(t, err, ErrTooManyItems)

	assert.Zero(t, calls)
}

func TestLookupErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"Errors":[{"Code":"TooManyRequests","Message":"slow down"}]}`))
		})

		_, err := c.Lookup(context.Background(), []string{"B000000001"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.NotErrorIs(t, err, models.ErrNotFound)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, "TooManyRequests", apiErr.Code)
		assert.Equal(t, "slow down", apiErr.Message)
	})

	t.Run("only errors in body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Errors":[{"Code":"InvalidParameterValue","Message":"bad asin"}]}`))
		})

		_, err := c.Lookup(context.Background(), []string{"nope"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "InvalidParameterValue", apiErr.Code)
	})

	t.Run("partial errors keep found items", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ItemsResult":{"Items":[{"ASIN":"B000000001"}]},"Errors":[{"Code":"InvalidParameterValue"}]}`))
		})

		products, err := c.Lookup(context.Background(), []string{"B000000001", "nope"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "B000000001", products[0].ID)
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c, err := NewClient(testConfig(),
			WithBaseURL(srv.URL),
			WithCredentials(credentials.NewStaticCredentialsProvider("a", "b", "")))
		require.NoError(t, err)

		_, err = c.Lookup(context.Background(), []string{"B000000001"})
		assert.ErrorContains(t, err, "failed to call GetItems")
	})
}

func TestSearch(t *testing.T) {
	var got searchItemsRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, searchItemsPath, r.URL.Path)
		assert.Equal(t, targetPrefix+"SearchItems", r.Header.Get("X-Amz-Target"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"SearchResult":{"Items":[{"ASIN":"B0S","ItemInfo":{"Title":{"DisplayValue":"Keyboard"}}}]}}`))
	})

	products, err := c.Search(context.Background(), "mechanical keyboard", "Electronics")
	require.NoError(t, err)

	assert.Equal(t, "mechanical keyboard", got.Keywords)
	assert.Equal(t, "Electronics", got.SearchIndex)
	require.Len(t, products, 1)
	assert.Equal(t, "B0S", products[0].ID)
	assert.Equal(t, "Keyboard", products[0].Title)
}

func TestSearchNoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"Errors":[{"Code":"NoResults","Message":"nothing"}]}`))
	})

	products, err := c.Search(context.Background(), "zzz", "All")
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestNewClientRequiresSecret(t *testing.T) {
	conf := testConfig()
	conf.Tokens.AWSSecretKey = ""
	_, err := NewClient(conf)
	assert.ErrorIs(t, err, errEmptySecret)
}

func TestNewClientSealsSecret(t *testing.T) {
	conf := testConfig()
	c, err := NewClient(conf)
	require.NoError(t, err)
	assert.Empty(t, conf.Tokens.AWSSecretKey)

	creds, err := c.(*client).signer.credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestEnclaveCredentials(t *testing.T) {
	provider, err := newEnclaveCredentials("AKIDEXAMPLE", "top-secret")
	require.NoError(t, err)

	creds, err := provider.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "top-secret", creds.SecretAccessKey)

	again, err := provider.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "top-secret", again.SecretAccessKey)
}
