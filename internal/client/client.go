package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"inventory-system/pkg/types"
)

const DefaultTimeout = 30 * time.Second

// APIError - ответ сервера со status=false. Error() отдает текст сервера как есть.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// IsUnauthorized - сервер отказал по токену или роли.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

var ErrNotAuthenticated = errors.New("вход не выполнен")

type envelope struct {
	Status  bool            `json:"status"`
	Body    json.RawMessage `json:"body,omitempty"`
	Message string          `json:"message"`
}

// ListOptions - search, sortBy, sortOrder и фильтры по колонкам.
type ListOptions struct {
	Search    string
	SortBy    string
	SortOrder string
	Filter    map[string]string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Search != "" {
		v.Set("search", o.Search)
	}
	if o.SortBy != "" {
		v.Set("sortBy", o.SortBy)
	}
	if o.SortOrder != "" {
		v.Set("sortOrder", o.SortOrder)
	}
	for column, value := range o.Filter {
		v.Set("filter["+column+"]", value)
	}
	return v
}

// Client - обертка над API инвентаризации. Токен берется из переданной сессии.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

func New(baseURL string, timeout time.Duration, session *Session) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
	}
}

func (c *Client) Session() *Session { return c.session }

// Login получает токен и сразу забирает снимок всех выпадающих списков.
func (c *Client) Login(ctx context.Context, username, password string) error {
	req := map[string]string{"username": username, "password": password}

	var res struct {
		Token    string `json:"token"`
		Role     string `json:"role"`
		FullName string `json:"full_name"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &res, false); err != nil {
		return err
	}
	c.session.set(res.Token, res.Role, res.FullName)

	return c.RefreshDropdowns(ctx)
}

// Logout очищает сессию даже если сервер недоступен.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	if !c.session.IsAuthenticated() {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil, true)
}

func (c *Client) RefreshDropdowns(ctx context.Context) error {
	lists := make(map[string][]types.DropdownItem)
	if err := c.do(ctx, http.MethodGet, "/api/dropdown", nil, nil, &lists, true); err != nil {
		return err
	}
	c.session.setDropdowns(lists)
	return nil
}

// Dropdown - один список прямо с сервера, без снимка.
func (c *Client) Dropdown(ctx context.Context, name string) ([]types.DropdownItem, error) {
	var items []types.DropdownItem
	if err := c.do(ctx, http.MethodGet, "/api/dropdown/"+url.PathEscape(name), nil, nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

// List декодирует список записей resource в out (обычно *[]T или *[]map[string]any).
func (c *Client) List(ctx context.Context, resource string, opts ListOptions, out interface{}) error {
	return c.do(ctx, http.MethodGet, resourcePath(resource), opts.values(), nil, out, true)
}

func (c *Client) Get(ctx context.Context, resource string, id uint64, out interface{}) error {
	return c.do(ctx, http.MethodGet, resourcePath(resource, id), nil, nil, out, true)
}

// Create отправляет запись и декодирует созданную (с присвоенным id) в out.
func (c *Client) Create(ctx context.Context, resource string, item, out interface{}) error {
	return c.do(ctx, http.MethodPost, resourcePath(resource), nil, item, out, true)
}

func (c *Client) Update(ctx context.Context, resource string, id uint64, item interface{}) error {
	return c.do(ctx, http.MethodPut, resourcePath(resource, id), nil, item, nil, true)
}

func (c *Client) Delete(ctx context.Context, resource string, id uint64) error {
	return c.do(ctx, http.MethodDelete, resourcePath(resource, id), nil, nil, nil, true)
}

func (c *Client) CheckRelations(ctx context.Context, resource string, id uint64) (bool, error) {
	var res struct {
		HasRelations bool `json:"has_relations"`
	}
	if err := c.do(ctx, http.MethodGet, resourcePath(resource, id)+"/check-relations", nil, nil, &res, true); err != nil {
		return false, err
	}
	return res.HasRelations, nil
}

func resourcePath(resource string, id ...uint64) string {
	p := "/api/" + url.PathEscape(resource)
	if len(id) > 0 {
		p += "/" + strconv.FormatUint(id[0], 10)
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}, auth bool) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("сериализация запроса: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token := c.session.token()
		if token == "" {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("чтение ответа: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("разбор ответа: %w", err)
	}
	if !env.Status || resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Body) > 0 {
		if err := json.Unmarshal(env.Body, out); err != nil {
			return fmt.Errorf("разбор тела ответа: %w", err)
		}
	}
	return nil
}

// Raw - обертка для вывода произвольных записей без знания их типа.
type Raw = map[string]interface{}
