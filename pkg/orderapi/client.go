// Package orderapi is the client for the upstream order management system.
// The wizard submits completed sales here; the API is the system of record
// for order numbers it assigns on its side.
package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/pkg/apperror"
)

// OrderRequest is the submission payload. Amounts are cents.
type OrderRequest struct {
	Customer    entity.Customer         `json:"customer"`
	Items       []entity.LineItem       `json:"items"`
	Delivery    entity.DeliveryDetails  `json:"delivery"`
	Payment     entity.PaymentSelection `json:"payment"`
	Subtotal    int64                   `json:"subtotalCents"`
	DeliveryFee int64                   `json:"deliveryFeeCents"`
	Discount    int64                   `json:"discountCents"`
	Total       int64                   `json:"totalCents"`
}

// OrderResponse is the upstream acknowledgement.
type OrderResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber int    `json:"orderNumber"`
	Status      string `json:"status"`
}

// Client talks to the order API over HTTP.
type Client struct {
	http *resty.Client
}

// NewClient creates an order API client. The API key is optional; when set
// it is sent as a bearer token on every request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &Client{http: client}
}

// CreateOrder submits a completed sale. Transport failures and upstream
// rejections come back as submission errors so the caller can distinguish
// "could not reach the order system" from "the order system said no".
func (c *Client) CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/v1/orders")
	if err != nil {
		return nil, networkError("create order", err)
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return nil, serverError("create order", resp)
	}
	return parseOrder(resp.Body())
}

// GetOrder fetches an order by its upstream id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/api/v1/orders/" + orderID)
	if err != nil {
		return nil, networkError("get order", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, apperror.NewNotFoundError("order")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, serverError("get order", resp)
	}
	return parseOrder(resp.Body())
}

// UpdateOrder pushes changed fields for an existing order.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, req *OrderRequest) (*OrderResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Patch("/api/v1/orders/" + orderID)
	if err != nil {
		return nil, networkError("update order", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, serverError("update order", resp)
	}
	return parseOrder(resp.Body())
}

// CancelOrder cancels an order upstream.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post("/api/v1/orders/" + orderID + "/cancel")
	if err != nil {
		return networkError("cancel order", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return serverError("cancel order", resp)
	}
	return nil
}

func parseOrder(body []byte) (*OrderResponse, error) {
	var order OrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, apperror.NewSubmissionError(http.StatusBadGateway,
			"order API returned an unreadable response")
	}
	return &order, nil
}

func networkError(op string, err error) error {
	return apperror.NewSubmissionError(http.StatusBadGateway,
		fmt.Sprintf("%s: could not reach the order system: %v", op, err))
}

func serverError(op string, resp *resty.Response) error {
	return apperror.NewSubmissionError(resp.StatusCode(),
		fmt.Sprintf("%s: order system rejected the request (status %d)", op, resp.StatusCode()))
}
