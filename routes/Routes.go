package routes

import (
	"github.com/gofiber/fiber/v2"

	"stocksim.com/controllers"
	"stocksim.com/middlewares"
	"stocksim.com/quotes"
)

func Setup(app *fiber.App, lookup quotes.Lookuper) {
	authController := controllers.NewAuthController()
	portfolioController := controllers.NewPortfolioController(lookup)
	tradeController := controllers.NewTradeController(lookup)
	quoteController := controllers.NewQuoteController(lookup)

	app.Get("/", middlewares.Auth, portfolioController.Index)
	app.Get("/history", middlewares.Auth, portfolioController.History)

	app.Get("/buy", middlewares.Auth, tradeController.BuyPage)
	app.Post("/buy", middlewares.Auth, tradeController.Buy)
	app.Get("/sell", middlewares.Auth, tradeController.SellPage)
	app.Post("/sell", middlewares.Auth, tradeController.Sell)
	app.Get("/dirsell", middlewares.Auth, tradeController.DirSellPage)
	app.Post("/dirsell", middlewares.Auth, tradeController.DirSell)
	app.Get("/confsell", middlewares.Auth, tradeController.ConfSellPage)
	app.Post("/confsell", middlewares.Auth, tradeController.ConfSell)

	app.Get("/quote", middlewares.Auth, quoteController.QuotePage)
	app.Post("/quote", middlewares.Auth, quoteController.Quote)

	app.Get("/login", authController.LoginPage)
	app.Post("/login", authController.Login)
	app.Get("/register", authController.RegisterPage)
	app.Post("/register", authController.Register)
	app.Get("/logout", authController.Logout)

	controllers.InitAuditRoutes(app)
}
