package main

import (
	_ "currency-converter/docs"
	"currency-converter/internal/app"
	"log"
)

// @title           Currency Converter API
// @version         1.0
// @description     Асинхронная конвертация валют по курсам ЕЦБ

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app, err := app.NewApp()
	if err != nil {
		log.Fatalf("Ошибка создания приложения: %v", err)
	}

	app.BuildRatesLayer()
	if err := app.BuildConversionLayer(); err != nil {
		log.Fatalf("Ошибка сборки слоя конвертаций: %v", err)
	}
	if err := app.BuildAdminLayer(); err != nil {
		log.Fatalf("Ошибка сборки админского слоя: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Ошибка при работе приложения: %v", err)
	}
}
