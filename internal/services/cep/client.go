// Package cep queries Banxico's CEP (Comprobante Electrónico de Pago) service
// to confirm that a SPEI transfer exists and to download its receipt.
package cep

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://www.banxico.org.mx/cep"
	maxBodySize    = 10 << 20
)

var (
	notFoundMarkers    = []string{"no encontrada", "no se encontr"}
	maxRequestsMarkers = []string{"ximo de consultas"}
)

// Client talks to the CEP site. Each Validate call opens its own session.
type Client struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
}

type Option func(*Client)

// WithTransport replaces the HTTP transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate asks Banxico whether the transfer described by q exists.
// It returns ErrTransferNotFound when it does not.
func (c *Client) Validate(ctx context.Context, q Query) (*Transfer, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	sess := &session{
		baseURL: c.baseURL,
		http: &http.Client{
			Jar:       jar,
			Timeout:   c.timeout,
			Transport: c.transport,
		},
	}

	body, err := sess.post(ctx, "/valida.do", validationForm(q))
	if err != nil {
		return nil, err
	}
	page := strings.ToLower(string(body))
	if containsAny(page, maxRequestsMarkers) {
		return nil, ErrMaxRequests
	}
	if containsAny(page, notFoundMarkers) {
		return nil, ErrTransferNotFound
	}

	raw, err := sess.download(ctx, FormatXML)
	if err != nil {
		return nil, err
	}
	details, err := parseDetails(raw)
	if err != nil {
		return nil, err
	}

	return &Transfer{details: *details, session: sess}, nil
}

func validationForm(q Query) url.Values {
	receptorParticipante := "0"
	if q.PagoABanco {
		receptorParticipante = "1"
	}
	return url.Values{
		"tipoCriterio":         {"T"},
		"fecha":                {q.Fecha.Format("02-01-2006")},
		"criterio":             {q.ClaveRastreo},
		"emisor":               {q.Emisor},
		"receptor":             {q.Receptor},
		"cuenta":               {q.Cuenta},
		"receptorParticipante": {receptorParticipante},
		"monto":                {formatMonto(q.Monto)},
		"captcha":              {"c"},
		"tipoConsulta":         {"1"},
	}
}

// Transfer is a transfer confirmed by Banxico. It keeps the session that
// confirmed it, which descarga.do requires.
type Transfer struct {
	details Details
	session *session
}

// Details returns the CEP content parsed during validation.
func (t *Transfer) Details() Details {
	return t.details
}

// Download fetches the PDF receipt.
func (t *Transfer) Download(ctx context.Context) ([]byte, error) {
	return t.session.download(ctx, FormatPDF)
}

type session struct {
	baseURL string
	http    *http.Client
}

func (s *session) post(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, path)
}

func (s *session) download(ctx context.Context, format Format) ([]byte, error) {
	path := "/descarga.do"
	u := s.baseURL + path + "?" + url.Values{"formato": {string(format)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	body, err := s.do(req, path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty %s document", ErrUnexpectedCEP, format)
	}
	return body, nil
}

func (s *session) do(req *http.Request, path string) ([]byte, error) {
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("cep %s: read body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnexpectedCEP, path, resp.StatusCode)
	}
	return body, nil
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
