package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	// ErrAPIUnreachable indicates the API could not be reached at all.
	ErrAPIUnreachable = errors.New("verify: api unreachable")
	// ErrMalformedResponse indicates the API answered with a body that does
	// not match the documented envelope.
	ErrMalformedResponse = errors.New("verify: malformed api response")
	// ErrUnexpectedStatus indicates the API answered with a status code the
	// probe cannot interpret.
	ErrUnexpectedStatus = errors.New("verify: unexpected api status")
)

// Client probes the community API over HTTP. Every call carries a per-request
// timeout so a hung endpoint cannot stall the whole run.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a probe client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type listEnvelope struct {
	Data *listData `json:"data"`
}

type listData struct {
	Content       []PostItem `json:"content"`
	TotalElements int64      `json:"total_elements"`
}

type detailEnvelope struct {
	Data *PostItem `json:"data"`
}

// PostItem is the subset of the post payload the probes inspect.
type PostItem struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Kind     string `json:"kind"`
	IsPublic *bool  `json:"is_public"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PostProbe captures the observable outcome of fetching one post.
type PostProbe struct {
	StatusCode int
	ErrorCode  string
	Post       *PostItem
}

// Visible reports whether the probe observed the post.
func (p PostProbe) Visible() bool {
	return p.StatusCode == http.StatusOK && p.Post != nil
}

// ListPage fetches one page of the post feed as the holder of the given
// token; an empty token probes anonymously.
func (c *Client) ListPage(ctx context.Context, token string, page, size int) ([]PostItem, int64, error) {
	endpoint := fmt.Sprintf("%s/api/community/posts?%s", c.baseURL, url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}.Encode())

	status, body, err := c.get(ctx, endpoint, token)
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusOK {
		return nil, 0, fmt.Errorf("%w: list returned %d", ErrUnexpectedStatus, status)
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Data == nil || envelope.Data.Content == nil {
		return nil, 0, fmt.Errorf("%w: list envelope missing data.content", ErrMalformedResponse)
	}

	return envelope.Data.Content, envelope.Data.TotalElements, nil
}

// GetPost fetches one post by id and reports the observable outcome. Both 403
// and 404 are valid observations, not errors; server errors and unparseable
// bodies are.
func (c *Client) GetPost(ctx context.Context, token string, id int64) (PostProbe, error) {
	endpoint := fmt.Sprintf("%s/api/community/posts/%d", c.baseURL, id)

	status, body, err := c.get(ctx, endpoint, token)
	if err != nil {
		return PostProbe{}, err
	}

	switch {
	case status == http.StatusOK:
		var envelope detailEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return PostProbe{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if envelope.Data == nil {
			return PostProbe{}, fmt.Errorf("%w: detail envelope missing data", ErrMalformedResponse)
		}
		return PostProbe{StatusCode: status, Post: envelope.Data}, nil

	case status == http.StatusForbidden || status == http.StatusNotFound:
		var failure errorBody
		if err := json.Unmarshal(body, &failure); err != nil {
			return PostProbe{StatusCode: status}, nil
		}
		return PostProbe{StatusCode: status, ErrorCode: failure.Code}, nil

	default:
		return PostProbe{}, fmt.Errorf("%w: detail returned %d", ErrUnexpectedStatus, status)
	}
}

func (c *Client) get(ctx context.Context, endpoint, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, fmt.Errorf("%w: %v", ErrAPIUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %v", ErrAPIUnreachable, err)
	}

	return resp.StatusCode, body, nil
}
