// Package payment implementa el cliente de la pasarela de pagos externa.
// La pasarela solo se consulta (estado de una referencia); los cobros ocurren
// fuera de este sistema.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Distriops-api/internal/application/settlement"
)

var _ settlement.PaymentGateway = (*HTTPGateway)(nil)

// HTTPGateway cliente HTTP de la pasarela.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway construye el cliente. timeout acota cada consulta de estado.
func NewHTTPGateway(baseURL, apiKey string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// statusResponse cuerpo de GET /v1/payments/{ref}.
type statusResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"` // PENDING | COMPLETED | FAILED
}

// GetStatus consulta el estado de una referencia de pago. Normaliza el estado a
// mayúsculas; un estado desconocido se devuelve tal cual (el caller decide).
func (g *HTTPGateway) GetStatus(ctx context.Context, paymentRef string) (string, error) {
	if g.baseURL == "" {
		return "", fmt.Errorf("pasarela no configurada")
	}
	url := fmt.Sprintf("%s/v1/payments/%s", g.baseURL, paymentRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("consultar pasarela: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("referencia de pago %s no existe en la pasarela", paymentRef)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pasarela respondió %d", resp.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decodificar respuesta de la pasarela: %w", err)
	}
	return strings.ToUpper(body.Status), nil
}
