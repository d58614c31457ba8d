package controllers

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"stocksim.com/broker"
	"stocksim.com/middlewares"
	"stocksim.com/services"
	"stocksim.com/types"
)

type AuditController struct {
	audit *services.AuditService
}

func NewAuditController() *AuditController {
	return &AuditController{audit: services.NewAuditService()}
}

// GetDrift godoc
//
//	@Summary		Ledger balance audit
//	@Description	Replays every user's ledger against their starting cash and reports balances that have drifted.
//	@Tags			Audit
//	@Produce		json
//	@Success		200	{object}	types.Response{data=[]dto.BalanceDriftDTO}
//	@Failure		500	{object}	types.Response
//	@Security		BearerAuth
//	@Router			/audit [get]
func (ac *AuditController) GetDrift(c *fiber.Ctx) error {
	drifts, err := ac.audit.ReconcileBalances()
	if err != nil {
		return apology(c, 500, err)
	}

	return c.JSON(types.Response{Success: true, Data: drifts})
}

// RunAuditCronJob schedules a monthly reconciliation sweep that pushes any
// drift it finds to the message broker.
func RunAuditCronJob(ac *AuditController) {
	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(1).Month(1).At("23:59").Do(func() {
		drifts, err := ac.audit.ReconcileBalances()
		if err != nil {
			log.Errorf("Monthly ledger audit failed: %v", err)
			return
		}
		for i := range drifts {
			if err := broker.SendBalanceDrift(&drifts[i]); err != nil {
				log.Warnf("Failed to publish drift for user %d: %v", drifts[i].UserID, err)
			}
		}
		log.Infof("Monthly ledger audit completed, %d drifted balances", len(drifts))
	})
	if err != nil {
		log.Fatalf("Failed to schedule ledger audit: %v", err)
	}

	go scheduler.StartBlocking()
}

func InitAuditRoutes(app *fiber.App) {
	auditController := NewAuditController()

	app.Get("/audit", middlewares.Auth, auditController.GetDrift)

	RunAuditCronJob(auditController)
}
