package main

import (
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"stocksim.com/broker"
	"stocksim.com/cron"
	"stocksim.com/db"
	"stocksim.com/quotes"
	"stocksim.com/routes"
	"stocksim.com/types"

	_ "stocksim.com/docs"
)

//	@title			Stock Trading Simulator
//	@version		1.0
//	@description	Simulated share trading over an append-only ledger

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Session token from /login. Example: "Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	if os.Getenv("FINNHUB_API_KEY") == "" && os.Getenv("QUOTE_PROVIDER") != "gateway" {
		panic("FINNHUB_API_KEY not set")
	}

	broker.Connect(os.Getenv("MESSAGE_BROKER_NETWORK"), os.Getenv("MESSAGE_BROKER_HOST"))
	db.Init()

	lookup := quotes.FromEnv()
	cron.StartScheduler(lookup)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		return c.Next()
	})

	routes.Setup(app, lookup)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	port := os.Getenv("LISTEN_PATH")
	if port == "" {
		port = ":3000"
	}
	log.Printf("Swagger UI available at http://localhost%s/swagger/index.html", port)
	log.Fatal(app.Listen(port))
}

// errorHandler renders any unhandled error as a generic rejection carrying
// the error's message and status code.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(types.Response{
		Success: false,
		Error:   err.Error(),
	})
}
