package storage

const (
	// Conversion queries
	InsertConversionQuery = `
		INSERT INTO currency_conversion (amount, from_currency, to_currency, fee, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	GetConversionByIDQuery = `
		SELECT id, amount, from_currency, to_currency, fee, status, conversion_rate, result, created_at
		FROM currency_conversion
		WHERE id = $1
	`

	// Блокировка строки перед сменой статуса
	LockConversionStatusQuery = `
		SELECT status
		FROM currency_conversion
		WHERE id = $1
		FOR UPDATE
	`

	UpdateConversionQuery = `
		UPDATE currency_conversion
		SET status = $1, conversion_rate = $2, result = $3
		WHERE id = $4
	`

	// Границы интервала включительные, NULL означает отсутствие границы
	ListConversionsQuery = `
		SELECT id, amount, from_currency, to_currency, fee, status, conversion_rate, result, created_at
		FROM currency_conversion
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	CountConversionsQuery = `
		SELECT COUNT(*)
		FROM currency_conversion
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
	`
)
