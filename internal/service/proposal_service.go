package service

import (
	"time"

	"github.com/propozzals/proposal-backend/internal/compose"
	"github.com/propozzals/proposal-backend/internal/document"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
	"github.com/propozzals/proposal-backend/internal/template"
	"github.com/propozzals/proposal-backend/internal/validation"
)

// PreviewResult описывает собранный предпросмотр документа.
type PreviewResult struct {
	TemplateID  string            `json:"templateId"`
	Page        compose.Page      `json:"page"`
	Fingerprint string            `json:"fingerprint"`
	Validation  validation.Result `json:"validation"`
}

// ProposalService собирает страницы и разметку коммерческого предложения.
type ProposalService struct{}

// NewProposalService создаёт сервис сборки документов.
func NewProposalService() *ProposalService {
	return &ProposalService{}
}

// Preview нормализует данные и собирает страницу для предпросмотра.
// Неизвестный идентификатор шаблона откатывается на шаблон по умолчанию.
func (s *ProposalService) Preview(raw models.RawDocument, templateID string, watermark bool) (*PreviewResult, error) {
	desc := template.Resolve(templateID)
	view := document.Normalize(raw)

	fp, err := document.Fingerprint(desc.ID, view)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось вычислить отпечаток документа")
	}

	rc := template.NewRenderContext(time.Now())
	sections := desc.BuildSections(view, rc)

	page := compose.Compose(sections, compose.Options{
		FontFamily: desc.Theme.FontFamily,
		Watermark:  watermark,
	})

	return &PreviewResult{
		TemplateID:  desc.ID,
		Page:        page,
		Fingerprint: fp,
		Validation:  validation.ValidateProposal(raw, desc.Schema),
	}, nil
}

// Markup собирает автономный HTML-документ предложения.
func (s *ProposalService) Markup(raw models.RawDocument, templateID string, watermark bool) (string, string, error) {
	result, err := s.Preview(raw, templateID, watermark)
	if err != nil {
		return "", "", err
	}

	html, err := compose.RenderStandalone(result.Page)
	if err != nil {
		return "", "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось собрать разметку документа")
	}
	return html, result.Fingerprint, nil
}
