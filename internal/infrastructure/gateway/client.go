// Package gateway es el adaptador REST hacia el backend SINV. Traduce el sobre
// {data, status, error, message} y separa rechazos del servidor de fallos de red.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/sinv-console/internal/application/dto"
	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain/rules"
	"github.com/jhoicas/sinv-console/pkg/logger"
)

const maxBody = 4 << 20

// Client cliente HTTP compartido por los servicios de cada entidad.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenSource
	engine     *rules.Engine
	log        *logger.Logger
}

// Config opciones del cliente.
type Config struct {
	BaseURL string // ej. http://localhost:8080/api
	Timeout time.Duration
}

// NewClient construye el cliente. tokens puede ser nil (solo rutas públicas).
func NewClient(cfg Config, tokens ports.TokenSource, engine *rules.Engine, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if engine == nil {
		engine = rules.NewEngine()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		engine:     engine,
		log:        log,
	}
}

// SetTokenSource conecta la sesión de autenticación después de construir el cliente.
func (c *Client) SetTokenSource(tokens ports.TokenSource) {
	c.tokens = tokens
}

// Users servicio de usuarios.
func (c *Client) Users() *UserService { return &UserService{c: c} }

// Storages servicio de almacenes.
func (c *Client) Storages() *StorageService { return &StorageService{c: c} }

// Categories servicio de categorías.
func (c *Client) Categories() *CategoryService { return &CategoryService{c: c} }

// Articles servicio de artículos.
func (c *Client) Articles() *ArticleService { return &ArticleService{c: c} }

// Auth servicio de autenticación.
func (c *Client) Auth() *AuthService { return &AuthService{c: c} }

// validate comprueba un payload con el motor de reglas antes de enviarlo.
func (c *Client) validate(payload any) error {
	if payload == nil {
		return nil
	}
	if errs := c.engine.Struct(payload); len(errs) > 0 {
		return &PayloadError{Fields: errs}
	}
	return nil
}

// call ejecuta una petición cuyo cuerpo viene en el sobre estándar y decodifica data en out.
func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	raw, status, err := c.roundTrip(ctx, method, path, payload)
	if err != nil {
		return err
	}

	var env dto.APIResponse
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if status >= 200 && status < 300 {
				return fmt.Errorf("gateway: %s %s: respuesta no es JSON: %w", method, path, err)
			}
			return c.reject(method, path, &APIError{StatusCode: status, Message: ""})
		}
	}
	if status < 200 || status >= 300 || env.Error {
		return c.reject(method, path, &APIError{StatusCode: status, Status: env.Status, Message: env.Message})
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("gateway: %s %s: deserializar data: %w", method, path, err)
	}
	return nil
}

// callRaw ejecuta una petición cuyo cuerpo NO usa el sobre (endpoints de contraseña).
func (c *Client) callRaw(ctx context.Context, method, path string, payload, out any) error {
	raw, status, err := c.roundTrip(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(raw, &body)
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		return c.reject(method, path, &APIError{StatusCode: status, Message: msg})
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gateway: %s %s: deserializar respuesta: %w", method, path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	if err := c.validate(payload); err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("payload rechazado antes de enviar")
		return nil, 0, err
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("gateway: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("gateway: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("fallo de red")
		if ctx.Err() != nil {
			return nil, 0, &NetworkError{Op: method + " " + path, Err: ctx.Err()}
		}
		return nil, 0, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, 0, &NetworkError{Op: method + " " + path, Err: err}
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("llamada al backend")
	return raw, resp.StatusCode, nil
}

func (c *Client) reject(method, path string, apiErr *APIError) error {
	c.log.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", apiErr.StatusCode).
		Str("message", apiErr.Message).
		Msg("backend rechazó la petición")
	return apiErr
}

// IsNetwork indica si err es un fallo de transporte (sin respuesta del servidor).
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
