package mail

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/propozzals/proposal-backend/internal/logger"
	"github.com/propozzals/proposal-backend/internal/models"
)

// Sender шлёт почтовые квитанции об оплате. Отправка fire-and-forget:
// сбой почты логируется и никогда не откатывает уже завершённый экспорт.
type Sender struct {
	client *ses.Client
	from   string
}

// NewSender создаёт SES-отправителя.
func NewSender(ctx context.Context, region, from string) (*Sender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("mail: не удалось загрузить AWS конфигурацию: %w", err)
	}
	return &Sender{client: ses.NewFromConfig(cfg), from: from}, nil
}

// SendReceipt отправляет квитанцию со ссылкой на чистый PDF.
func (s *Sender) SendReceipt(ctx context.Context, receipt models.PaymentReceipt) error {
	if receipt.Email == "" {
		return nil
	}

	subject := "Your proposal PDF is ready"
	body := fmt.Sprintf(
		"Thank you for your purchase!\n\n"+
			"Amount: %.2f %s\n"+
			"Payment reference: %s\n\n"+
			"Download your clean PDF (link valid for a limited time):\n%s\n",
		float64(receipt.AmountCents)/100, receipt.Currency,
		receipt.IntentID, receipt.DownloadURL,
	)

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: &s.from,
		Destination: &types.Destination{
			ToAddresses: []string{receipt.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &body},
			},
		},
	})
	if err != nil {
		logger.WithComponent("mail").Errorf("не удалось отправить квитанцию %s: %v", receipt.IntentID, err)
		return fmt.Errorf("mail: отправка квитанции: %w", err)
	}
	return nil
}
