package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// событие о завершении конвертации (DONE или FAILED)
type ConversionCompletedEvent struct {
	EventID        uuid.UUID        `json:"event_id"`                  // Уникальный ID события
	ConversionID   int64            `json:"conversion_id"`             // ID конвертации
	FromCurrency   string           `json:"from_currency"`             // Исходная валюта
	ToCurrency     string           `json:"to_currency"`               // Целевая валюта
	Amount         decimal.Decimal  `json:"amount"`                    // Сумма в исходной валюте
	Status         ConversionStatus `json:"status"`                    // Итоговый статус
	ConversionRate *decimal.Decimal `json:"conversion_rate,omitempty"` // Курс, только для DONE
	Result         *decimal.Decimal `json:"result,omitempty"`          // Результат, только для DONE
	Timestamp      time.Time        `json:"timestamp"`                 // Время завершения
}

func NewConversionCompletedEvent(c *Conversion, at time.Time) ConversionCompletedEvent {
	res := c.ToResult()
	return ConversionCompletedEvent{
		EventID:        uuid.New(),
		ConversionID:   c.ID,
		FromCurrency:   c.FromCurrency,
		ToCurrency:     c.ToCurrency,
		Amount:         c.Amount,
		Status:         c.Status,
		ConversionRate: res.ConversionRate,
		Result:         res.Result,
		Timestamp:      at,
	}
}
