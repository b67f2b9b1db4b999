package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
)

// Окно валидности подписи: защищает от повторной отправки старых событий.
const signatureTolerance = 5 * time.Minute

// Event — распакованное webhook-событие провайдера.
type Event struct {
	Type   string `json:"type"`
	Intent struct {
		ID           string `json:"id"`
		AmountCents  int64  `json:"amount"`
		Currency     string `json:"currency"`
		ReceiptEmail string `json:"receipt_email"`
		Status       string `json:"status"`
	} `json:"data"`
}

// Типы событий, которые обрабатывает пайплайн.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// VerifySignature проверяет заголовок подписи формата
// "t=<unix>,v1=<hex hmac-sha256>" над строкой "<t>.<body>".
func VerifySignature(body []byte, header, secret string, now time.Time) error {
	if secret == "" {
		return apperror.New(apperror.ErrCodePayment, "webhook secret не сконфигурирован")
	}

	var timestamp int64
	var signature string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return apperror.ErrBadSignature
			}
			timestamp = ts
		case "v1":
			signature = value
		}
	}
	if timestamp == 0 || signature == "" {
		return apperror.ErrBadSignature
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return apperror.ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.", timestamp)))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apperror.ErrBadSignature
	}
	return nil
}

// ParseEvent распаковывает тело webhook после успешной проверки подписи.
func ParseEvent(body []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePayment, "нечитаемое webhook-событие")
	}
	if event.Type == "" || event.Intent.ID == "" {
		return nil, apperror.New(apperror.ErrCodePayment, "неполное webhook-событие")
	}
	return &event, nil
}
