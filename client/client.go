// Package client is the Go binding for the PQR API. It exposes one typed
// service per resource, attaches the session bearer token to authenticated
// calls, and funnels every response through a single door so a 401 from any
// endpoint expires the session uniformly.
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
	"strings"
	"time"
)

// ErrSessionExpired is returned by every call once the server rejects the
// session token. The session is cleared before the error is returned.
var ErrSessionExpired = errors.New("session expired")

// APIError carries the error envelope the server attaches to non-2xx
// responses. Detail, when present, is the operator facing Spanish message.
type APIError struct {
	Status  int
	Code    string
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Detail)
	}
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// UserMessage returns the text an operator should see for this error.
func (e *APIError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return "Ocurrió un error inesperado"
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// Client talks to one PQR API deployment. Construct it with New; the zero
// value is not usable.
type Client struct {
	baseURL string
	hc      *http.Client
	session *Session

	Auth          *AuthService
	Casos         *CasosService
	Pacientes     *PacientesService
	Motivos       *MotivosService
	Usuarios      *UsuariosService
	Interacciones *InteraccionesService
	Alertas       *AlertasService
	Metricas      *MetricasService
	Ubicaciones   *UbicacionesService
	Reportes      *ReportesService
	Embedded      *EmbeddedService
}

// New builds a client for the API at baseURL. session may be nil for purely
// unauthenticated use (the embedded intake view).
func New(baseURL string, session *Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c}
	c.Casos = &CasosService{c}
	c.Pacientes = &PacientesService{c}
	c.Motivos = &MotivosService{c}
	c.Usuarios = &UsuariosService{c}
	c.Interacciones = &InteraccionesService{c}
	c.Alertas = &AlertasService{c}
	c.Metricas = &MetricasService{c}
	c.Ubicaciones = &UbicacionesService{c}
	c.Reportes = &ReportesService{c}
	c.Embedded = &EmbeddedService{c}
	return c
}

// do performs one API request and decodes the JSON response into out when
// out is non-nil. The bearer token is attached unless anonymous is set.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}, anonymous bool) error {
	body, err := c.roundTrip(ctx, method, path, query, in, anonymous)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// roundTrip is the single response door: every request, authenticated or
// not, passes through here so 401 handling cannot be skipped per call site.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, in interface{}, anonymous bool) ([]byte, error) {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if !anonymous && c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.session != nil {
			c.session.expire()
		}
		return nil, ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// decodeAPIError understands both the envelope {ok,error:{...}} and the
// bare {detail} shape older deployments answer with.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Detail = envelope.Error.Detail
		if apiErr.Detail == "" {
			apiErr.Detail = envelope.Detail
		}
	}
	return apiErr
}
