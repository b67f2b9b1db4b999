package models

// DraftVersion — текущая версия формата хранимого черновика.
const DraftVersion = 1

// DraftEnvelope оборачивает сохранённый документ версией формата.
// У исходного приложения версии не было; тег нужен для будущих миграций
// схемы, загрузчик принимает и «голый» legacy-формат (версия 0).
type DraftEnvelope struct {
	Version int         `json:"v"`
	Data    RawDocument `json:"data"`
}

// SaveStatus — статус автосохранения черновика.
// Допустимые переходы: idle → saving → (saved | error) → idle.
type SaveStatus string

const (
	SaveStatusIdle   SaveStatus = "idle"
	SaveStatusSaving SaveStatus = "saving"
	SaveStatusSaved  SaveStatus = "saved"
	SaveStatusError  SaveStatus = "error"
)
