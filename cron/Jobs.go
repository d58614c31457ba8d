package cron

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"

	"stocksim.com/broker"
	"stocksim.com/quotes"
	"stocksim.com/services"
)

// StartScheduler runs the nightly ledger audit and an hourly quote-provider
// health check.
func StartScheduler(lookup quotes.Lookuper) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc("0 59 23 * * *", runLedgerAudit); err != nil {
		log.Errorf("Failed to schedule ledger audit: %v", err)
		return
	}

	if _, err := c.AddFunc("0 0 * * * *", func() {
		checkQuoteProvider(lookup)
	}); err != nil {
		log.Errorf("Failed to schedule quote provider check: %v", err)
		return
	}

	c.Start()
}

func runLedgerAudit() {
	audit := services.NewAuditService()
	drifts, err := audit.ReconcileBalances()
	if err != nil {
		log.Errorf("Nightly ledger audit failed: %v", err)
		return
	}

	if len(drifts) == 0 {
		log.Info("Nightly ledger audit clean")
		return
	}

	for i := range drifts {
		log.Warnf("Balance drift for user %d: expected %s, stored %s",
			drifts[i].UserID, drifts[i].Expected, drifts[i].Actual)
		if err := broker.SendBalanceDrift(&drifts[i]); err != nil {
			log.Warnf("Failed to publish drift for user %d: %v", drifts[i].UserID, err)
		}
	}
}

func checkQuoteProvider(lookup quotes.Lookuper) {
	if _, err := lookup.Lookup("AAPL"); err != nil {
		log.Warnf("Quote provider health check failed: %v", err)
	}
}
