package compose

// stylesheet — инлайновые стили самодостаточного документа. Покрывает
// только классы, которые реально порождают билдеры секций; цвета тем
// приходят inline-стилями из самих узлов.
const stylesheet = `
body {
  margin: 0;
  padding: 0;
  font-family: Arial, sans-serif;
  background: white;
  color: #111827;
}
.ppz-pages { }
.ppz-page {
  position: relative;
  min-height: auto;
  background: white;
  box-sizing: border-box;
  margin: 0 auto;
  box-shadow: 0 1px 3px 0 rgba(0, 0, 0, 0.1), 0 1px 2px 0 rgba(0, 0, 0, 0.06);
}
.ppz-section { position: relative; margin-bottom: 1rem; }
.ppz-section-last { margin-bottom: 0; }
.ppz-watermark {
  position: absolute;
  top: 0;
  left: 0;
  right: 0;
  bottom: 0;
  display: flex;
  align-items: center;
  justify-content: center;
  transform: rotate(-45deg);
  opacity: 0.12;
  font-size: 34px;
  font-weight: 300;
  color: #d0d0d0;
  letter-spacing: 3px;
  font-family: Arial, sans-serif;
  pointer-events: none;
  user-select: none;
}
.ppz-empty { padding: 2rem 0; text-align: center; }

.row { display: flex; align-items: center; }
.space-between { justify-content: space-between; }
.gap-3 { gap: 0.75rem; }
.mb-6 { margin-bottom: 1.5rem; }
.text-right { text-align: right; }
.text-left { text-align: left; }
.bold { font-weight: 600; }
.muted { color: #6b7280; font-size: 0.875rem; }

.logo {
  width: 3rem;
  height: 3rem;
  border-radius: 0.5rem;
  object-fit: cover;
}
.logo-initial { display: flex; align-items: center; justify-content: center; }
.logo-letter { color: #ffffff; font-weight: 700; font-size: 1.25rem; }
.company-name { margin: 0; font-size: 1.5rem; font-weight: 700; letter-spacing: -0.025em; }
.tagline { margin: 0; font-size: 0.875rem; color: #4b5563; }
.badge {
  display: inline-block;
  color: #ffffff;
  font-size: 0.75rem;
  font-weight: 600;
  text-transform: uppercase;
  letter-spacing: 0.05em;
  padding: 0.375rem 0.75rem;
  border-radius: 9999px;
}
.proposal-ref { font-size: 0.75rem; color: #6b7280; margin-top: 0.25rem; }
.header-meta {
  display: flex;
  justify-content: space-between;
  align-items: center;
  border: 1px solid #f3f4f6;
  border-radius: 0.5rem;
  padding: 1rem;
}
.meta-label { margin: 0; font-size: 0.75rem; font-weight: 600; color: #374151; }
.meta-value { margin: 0.25rem 0 0; font-size: 1.125rem; font-weight: 600; }

.section-header { display: flex; align-items: center; gap: 0.75rem; margin-bottom: 1rem; }
.accent-bar { height: 1.5rem; width: 0.25rem; border-radius: 9999px; }
.section-title { margin: 0; font-size: 1.25rem; font-weight: 700; }

.paragraph {
  margin: 0 0 0.5rem;
  white-space: pre-wrap;
  line-height: 1.625;
  color: #374151;
  font-size: 1rem;
}
.empty-state { border-radius: 0.5rem; padding: 1.5rem; text-align: center; }
.empty-hint { margin: 0; color: #6b7280; font-size: 0.875rem; }

.panel { border-radius: 0.75rem; padding: 1.5rem; background: #ffffff; }
.panel-shadow { box-shadow: 0 1px 3px 0 rgba(0, 0, 0, 0.1), 0 1px 2px 0 rgba(0, 0, 0, 0.06); }
.panel-outlined { border: 1px solid #e5e7eb; }

.table-wrap { overflow: hidden; border-radius: 0.5rem; border: 1px solid #e5e7eb; }
.pricing-table { width: 100%; border-collapse: collapse; }
.pricing-head { color: #ffffff; }
.pricing-row { border-bottom: 1px solid #f3f4f6; }
.cell { padding: 0.75rem 1.25rem; font-size: 0.9375rem; }
.pricing-footer { margin-top: 1.25rem; }

.detail-grid { display: grid; grid-template-columns: repeat(2, minmax(0, 1fr)); gap: 1.25rem; }
.detail-cell { display: flex; align-items: flex-start; gap: 0.625rem; }
.detail-text { margin: 0; font-size: 0.875rem; color: #4b5563; line-height: 1.625; }
.term-dot { width: 0.5rem; height: 0.5rem; border-radius: 9999px; margin-top: 0.45rem; flex-shrink: 0; }
.term-title { margin: 0 0 0.25rem; font-size: 0.9375rem; font-weight: 600; color: #374151; }
.terms-paragraph { font-size: 0.875rem; }

* {
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
`
