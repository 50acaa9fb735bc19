package models

import (
	"fmt"
	"time"

	"currency-converter/internal/custom_err"

	"github.com/shopspring/decimal"
)

func init() {
	// суммы и курсы отдаются в JSON числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

// ConversionStatus статус заявки на конвертацию
type ConversionStatus string

const (
	StatusPending ConversionStatus = "PENDING"
	StatusDone    ConversionStatus = "DONE"
	StatusFailed  ConversionStatus = "FAILED"
)

func (s ConversionStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

func (s ConversionStatus) IsValid() bool {
	return s == StatusPending || s.IsTerminal()
}

// Conversion представляет сохраненную заявку на конвертацию.
// Rate и Result заполняются только переходом в DONE через MarkDone.
type Conversion struct {
	ID           int64               `db:"id"`
	Amount       decimal.Decimal     `db:"amount"`
	FromCurrency string              `db:"from_currency"`
	ToCurrency   string              `db:"to_currency"`
	Fee          decimal.Decimal     `db:"fee"`
	Status       ConversionStatus    `db:"status"`
	Rate         decimal.NullDecimal `db:"conversion_rate"`
	Result       decimal.NullDecimal `db:"result"`
	CreatedAt    time.Time           `db:"created_at"`
}

func NewPendingConversion(amount decimal.Decimal, from, to string, fee decimal.Decimal, createdAt time.Time) *Conversion {
	return &Conversion{
		Amount:       amount,
		FromCurrency: from,
		ToCurrency:   to,
		Fee:          fee,
		Status:       StatusPending,
		CreatedAt:    createdAt,
	}
}

func (c *Conversion) MarkDone(rate, result decimal.Decimal) error {
	if c.Status != StatusPending {
		return fmt.Errorf("%w: %d is %s", custom_err.ErrInvalidTransition, c.ID, c.Status)
	}
	c.Status = StatusDone
	c.Rate = decimal.NewNullDecimal(rate)
	c.Result = decimal.NewNullDecimal(result)
	return nil
}

func (c *Conversion) MarkFailed() error {
	if c.Status != StatusPending {
		return fmt.Errorf("%w: %d is %s", custom_err.ErrInvalidTransition, c.ID, c.Status)
	}
	c.Status = StatusFailed
	c.Rate = decimal.NullDecimal{}
	c.Result = decimal.NullDecimal{}
	return nil
}

// Outcome возвращает курс и результат только для завершенной успешно заявки.
func (c *Conversion) Outcome() (rate, result decimal.Decimal, ok bool) {
	if c.Status != StatusDone || !c.Rate.Valid || !c.Result.Valid {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	return c.Rate.Decimal, c.Result.Decimal, true
}

// ToResult проецирует запись в ответ API, скрывая курс и результат для не-DONE статусов
func (c *Conversion) ToResult() ConversionResult {
	res := ConversionResult{
		ID:           c.ID,
		Amount:       c.Amount,
		FromCurrency: c.FromCurrency,
		ToCurrency:   c.ToCurrency,
		Fee:          c.Fee,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
	if rate, result, ok := c.Outcome(); ok {
		res.ConversionRate = &rate
		res.Result = &result
	}
	return res
}

// TimeRange включающий фильтр по created_at, nil означает отсутствие границы
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

// ConversionRequest запрос на создание конвертации
type ConversionRequest struct {
	Amount       decimal.Decimal `json:"amount" swaggertype:"number" example:"100.50"`
	FromCurrency string          `json:"fromCurrency" example:"USD"`
	ToCurrency   string          `json:"toCurrency" example:"EUR"`
}

func (r ConversionRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", custom_err.ErrInvalidAmount)
	}
	if !isCurrencyCode(r.FromCurrency) {
		return fmt.Errorf("%w: fromCurrency %q", custom_err.ErrInvalidCurrency, r.FromCurrency)
	}
	if !isCurrencyCode(r.ToCurrency) {
		return fmt.Errorf("%w: toCurrency %q", custom_err.ErrInvalidCurrency, r.ToCurrency)
	}
	return nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// ConversionCreatedResponse ответ на создание конвертации
type ConversionCreatedResponse struct {
	ID int64 `json:"id" example:"42"`
}

// ConversionResult представление конвертации в API
type ConversionResult struct {
	ID             int64            `json:"id" example:"42"`
	Amount         decimal.Decimal  `json:"amount" swaggertype:"number" example:"100"`
	FromCurrency   string           `json:"fromCurrency" example:"USD"`
	ToCurrency     string           `json:"toCurrency" example:"EUR"`
	Fee            decimal.Decimal  `json:"fee" swaggertype:"number" example:"0.01"`
	Status         ConversionStatus `json:"status" example:"DONE"`
	ConversionRate *decimal.Decimal `json:"conversionRate" swaggertype:"number" example:"0.833333"`
	Result         *decimal.Decimal `json:"result" swaggertype:"number" example:"82.499967"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ConversionPage страница списка конвертаций
type ConversionPage struct {
	Conversions   []ConversionResult `json:"conversions"`
	Page          int                `json:"page" example:"0"`
	Size          int                `json:"size" example:"20"`
	TotalElements int64              `json:"totalElements" example:"3"`
	TotalPages    int                `json:"totalPages" example:"1"`
}
