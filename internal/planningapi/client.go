package planningapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"planning-bot/internal/metrics"
	"planning-bot/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client - HTTP-клиент REST-бэкенда планирования
type Client struct {
	baseURL string
	anon    *http.Client
	http    *http.Client
	tokens  *tokenStore
	limiter *rate.Limiter
	logger  *logrus.Logger
}

type Option func(*Client)

// WithToken задает bearer-токен
func WithToken(token string) Option {
	return func(c *Client) {
		c.tokens.set(token)
	}
}

// WithRateLimit ограничивает число запросов в секунду; 0 - без ограничения
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithHTTPClient подменяет базовый http.Client (таймаут и транспорт)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.anon = hc
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.anon.Timeout = timeout
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.GetLevel())

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anon:    &http.Client{Timeout: 10 * time.Second},
		tokens:  &tokenStore{},
		logger:  logger,
	}
	c.tokens.set("")

	for _, opt := range opts {
		opt(c)
	}

	base := c.anon.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http = &http.Client{
		Timeout: c.anon.Timeout,
		Transport: &bearerTransport{
			tokens: c.tokens,
			oauth:  &oauth2.Transport{Source: c.tokens, Base: base},
			base:   base,
		},
	}

	return c
}

// SetToken меняет токен для последующих запросов
func (c *Client) SetToken(token string) {
	c.tokens.set(token)
}

// Backend - клиент в виде набора репозиториев
func (c *Client) Backend() *repository.Backend {
	return &repository.Backend{
		Establishments: &EstablishmentAPI{c: c},
		Users:          &UserAPI{c: c},
		Templates:      &TemplateAPI{c: c},
		Shifts:         &ShiftAPI{c: c},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login получает токен по email и паролю и запоминает его
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp tokenResponse
	if err := c.send(c.anon, req, "token", &resp); err != nil {
		c.logger.WithError(err).WithField("email", email).Warn("Login failed")
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", repository.ErrBackendUnavailable)
	}

	c.SetToken(resp.AccessToken)
	c.logger.WithField("email", email).Info("Logged in to planning backend")
	return resp.AccessToken, nil
}

func (c *Client) get(ctx context.Context, resource, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	return c.do(ctx, req, resource, out)
}

func (c *Client) write(ctx context.Context, method, resource, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(ctx, req, resource, out)
}

func (c *Client) do(ctx context.Context, req *http.Request, resource string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", repository.ErrBackendUnavailable, err)
		}
	}
	return c.send(c.http, req, resource, out)
}

// send выполняет запрос и переводит ответ в ошибки бэкенда
func (c *Client) send(hc *http.Client, req *http.Request, resource string, out any) error {
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		metrics.ObserveBackendRequest(req.Method, resource, 0, time.Since(started))
		c.logger.WithFields(logrus.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"request_id": requestID,
		}).WithError(err).Error("Backend request failed")
		return fmt.Errorf("%w: %s %s: %v", repository.ErrBackendUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	metrics.ObserveBackendRequest(req.Method, resource, resp.StatusCode, time.Since(started))
	c.logger.WithFields(logrus.Fields{
		"method":     req.Method,
		"path":       req.URL.Path,
		"status":     resp.StatusCode,
		"request_id": requestID,
	}).Debug("Backend request")

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s %s: http %d", repository.ErrBackendUnavailable, req.Method, req.URL.Path, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return repository.Rejected(resp.StatusCode, readDetail(resp.Body))
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", repository.ErrBackendUnavailable, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", repository.ErrBackendUnavailable, resource, err)
	}
	return nil
}

// readDetail достает поле detail из ответа об ошибке (строка или список ошибок валидации)
func readDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(data))
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			loc := make([]string, 0, len(it.Loc))
			for _, l := range it.Loc {
				loc = append(loc, fmt.Sprint(l))
			}
			msgs = append(msgs, strings.Join(loc, ".")+": "+it.Msg)
		}
		return strings.Join(msgs, "; ")
	}

	return string(payload.Detail)
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

func establishmentQuery(establishmentID uint) url.Values {
	if establishmentID == 0 {
		return nil
	}
	return url.Values{"establishment_id": []string{strconv.FormatUint(uint64(establishmentID), 10)}}
}

type tokenStore struct {
	mu    sync.RWMutex
	token string
	src   oauth2.TokenSource
}

func (s *tokenStore) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src.Token()
}

func (s *tokenStore) has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *tokenStore) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.src = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

// bearerTransport добавляет Authorization только когда токен задан
type bearerTransport struct {
	tokens *tokenStore
	oauth  http.RoundTripper
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.tokens.has() {
		return t.base.RoundTrip(req)
	}
	return t.oauth.RoundTrip(req)
}
