package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
)

// Client — HTTP клиент платёжного провайдера. Создаёт payment intent на
// фиксированную сумму чистого экспорта; подтверждение приходит отдельно
// через webhook (см. webhook.go).
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Intent — созданный провайдером платёж.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// CreateIntent создаёт payment intent на сумму amountCents.
// Провайдер принимает form-encoded тело и ключ в Authorization.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency, receiptEmail string) (*Intent, error) {
	if c.secretKey == "" {
		return nil, apperror.New(apperror.ErrCodePayment, "платёжный провайдер не сконфигурирован")
	}

	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amountCents))
	form.Set("currency", strings.ToLower(currency))
	if receiptEmail != "" {
		form.Set("receipt_email", receiptEmail)
	}

	endpoint := strings.TrimSuffix(c.baseURL, "/") + "/v1/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		bytes.NewReader([]byte(form.Encode())))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePayment, "платёжный провайдер недоступен")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error.Message == "" {
			errBody.Error.Message = fmt.Sprintf("код ответа %d", resp.StatusCode)
		}
		return nil, apperror.Wrap(fmt.Errorf("payment: %s", errBody.Error.Message),
			apperror.ErrCodePayment, "не удалось создать платёж")
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePayment, "неожиданный ответ платёжного провайдера")
	}
	return &intent, nil
}
