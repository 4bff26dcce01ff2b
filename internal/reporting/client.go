package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

// Client exposes the marketplace public query API used to build reports.
type Client interface {
	Reputations(ctx context.Context) ([]ReputationEntry, error)
	Products(ctx context.Context) ([]ProductEntry, error)
	ProductSales(ctx context.Context, productID uint64) (uint32, error)
	CategoryStats(ctx context.Context, category string) (*CategoryRollup, error)
	OrdersCount(ctx context.Context, accountID int64) (uint32, error)
}

// ReputationEntry mirrors the marketplace reputation payload.
type ReputationEntry struct {
	Account         int64   `json:"account"`
	AsBuyerCount    uint32  `json:"as_buyer_count"`
	AsBuyerAverage  *uint64 `json:"as_buyer_average"`
	AsSellerCount   uint32  `json:"as_seller_count"`
	AsSellerAverage *uint64 `json:"as_seller_average"`
}

// ProductEntry mirrors the marketplace catalog payload.
type ProductEntry struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type salesPayload struct {
	ProductID uint64 `json:"product_id"`
	Sales     uint32 `json:"sales"`
}

type categoryPayload struct {
	Category      string  `json:"category"`
	Sales         uint32  `json:"sales"`
	RatingCount   uint32  `json:"rating_count"`
	AverageRating *uint64 `json:"average_rating"`
}

type countPayload struct {
	Account int64  `json:"account"`
	Count   uint32 `json:"count"`
}

// HTTPClient implements Client over the marketplace HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates the marketplace query client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse marketplace url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("marketplace url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *HTTPClient) Reputations(ctx context.Context) ([]ReputationEntry, error) {
	var entries []ReputationEntry
	if err := c.get(ctx, "/api/market/reputation", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) Products(ctx context.Context) ([]ProductEntry, error) {
	var entries []ProductEntry
	if err := c.get(ctx, "/api/market/products", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) ProductSales(ctx context.Context, productID uint64) (uint32, error) {
	var payload salesPayload
	endpoint := path.Join("/api/market/products", strconv.FormatUint(productID, 10), "sales")
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return 0, err
	}
	return payload.Sales, nil
}

func (c *HTTPClient) CategoryStats(ctx context.Context, category string) (*CategoryRollup, error) {
	var payload categoryPayload
	if err := c.get(ctx, path.Join("/api/market/categories", category), &payload); err != nil {
		return nil, err
	}
	return &CategoryRollup{
		Category:      payload.Category,
		Sales:         payload.Sales,
		RatingCount:   payload.RatingCount,
		AverageRating: payload.AverageRating,
	}, nil
}

func (c *HTTPClient) OrdersCount(ctx context.Context, accountID int64) (uint32, error) {
	var payload countPayload
	endpoint := path.Join("/api/market/accounts", strconv.FormatInt(accountID, 10), "orders/count")
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, target any) error {
	u := *c.baseURL
	u.Path = path.Join(u.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return json.Unmarshal(body, target)
	case http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("marketplace request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("marketplace error: %s", resp.Status)
	}
}
