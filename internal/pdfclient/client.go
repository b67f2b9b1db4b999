package pdfclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
)

// Client — HTTP клиент внешнего сервиса рендеринга PDF. Сервис получает
// самодостаточную разметку и опции, возвращает бинарный PDF либо
// структурированную ошибку. Сбой сети или сервиса — восстановимая
// ошибка экспорта, а не падение.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиента рендеринга.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// renderRequest — контракт сервиса рендеринга.
type renderRequest struct {
	HTML       string        `json:"html"`
	TemplateID string        `json:"templateId"`
	Options    renderOptions `json:"options"`
}

type renderOptions struct {
	AddWatermark bool `json:"addWatermark"`
}

type renderError struct {
	Message string `json:"message"`
}

// Render отправляет разметку на рендеринг и возвращает байты PDF.
func (c *Client) Render(ctx context.Context, html, templateID string, addWatermark bool) ([]byte, error) {
	if c.baseURL == "" {
		return nil, apperror.ErrRenderFailed
	}

	body, err := json.Marshal(renderRequest{
		HTML:       html,
		TemplateID: templateID,
		Options:    renderOptions{AddWatermark: addWatermark},
	})
	if err != nil {
		return nil, fmt.Errorf("pdfclient: сериализация запроса: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/api/pdf/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeExport, "сервис рендеринга PDF недоступен")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody renderError
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Message == "" {
			errBody.Message = fmt.Sprintf("код ответа %d", resp.StatusCode)
		}
		return nil, apperror.Wrap(fmt.Errorf("pdfclient: %s", errBody.Message),
			apperror.ErrCodeExport, "рендеринг PDF завершился ошибкой")
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeExport, "не удалось прочитать ответ рендеринга")
	}
	if len(pdf) == 0 {
		return nil, apperror.Wrap(fmt.Errorf("pdfclient: пустой ответ"),
			apperror.ErrCodeExport, "рендеринг PDF вернул пустой документ")
	}
	return pdf, nil
}
