package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/client/models"
	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/netx"
)

const requestTimeout = 30 * time.Second

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. http://localhost:3000).
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("bad server address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("bad server address %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/signup", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil, true)
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/user", nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

type updateProfileResponse struct {
	User models.User `json:"user"`
}

// UpdateProfile sends JSON unless an image is attached, in which case the
// fields and the file go out as multipart/form-data.
func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	var resp updateProfileResponse

	if upd.ImagePath == "" {
		body := map[string]any{}
		if upd.FullName != nil {
			body["fullName"] = *upd.FullName
		}
		if upd.Age != nil {
			body["age"] = *upd.Age
		}
		if upd.Bio != nil {
			body["bio"] = *upd.Bio
		}
		if err := c.doJSON(ctx, http.MethodPut, "/api/user/update", body, &resp, true); err != nil {
			return nil, err
		}
		return &resp.User, nil
	}

	f, err := os.Open(upd.ImagePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields := map[string]string{}
	if upd.FullName != nil {
		fields["fullName"] = *upd.FullName
	}
	if upd.Age != nil {
		fields["age"] = strconv.Itoa(*upd.Age)
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}

	name := filepath.Base(upd.ImagePath)
	body, contentType, err := netx.NewMultipart(fields, &netx.FilePart{
		Field:       "image",
		Name:        name,
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		Content:     f,
	})
	if err != nil {
		return nil, err
	}

	if err := c.do(ctx, http.MethodPut, "/api/user/update", body, contentType, &resp, true); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.doJSON(ctx, http.MethodGet, "/api/blogs", nil, &posts, false); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, p models.NewPost) (*models.CreatedPost, error) {
	var post models.CreatedPost
	if err := c.doJSON(ctx, http.MethodPost, "/api/blogs", p, &post, true); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/blogs/"+url.PathEscape(id), nil, nil, true)
}

// Ping checks GET /health.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil, false)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out, auth)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, auth bool) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		if token := c.currentToken(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(b, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
