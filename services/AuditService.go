package services

import (
	"github.com/gofiber/fiber/v2/log"

	"stocksim.com/db"
	"stocksim.com/dto"
	"stocksim.com/types"
)

type AuditService struct {
}

func NewAuditService() *AuditService {
	return &AuditService{}
}

// ReconcileBalances replays every user's ledger against their starting cash
// and reports the ones whose stored balance has drifted. A clean ledger
// returns an empty slice.
func (s *AuditService) ReconcileBalances() ([]dto.BalanceDriftDTO, error) {
	var users []types.User
	if err := db.DB.Find(&users).Error; err != nil {
		return nil, err
	}

	drifts := make([]dto.BalanceDriftDTO, 0)
	for _, user := range users {
		var txns []types.Transaction
		if err := db.DB.Where("user_id = ?", user.ID).Find(&txns).Error; err != nil {
			log.Errorf("Failed to load ledger for user %d: %v", user.ID, err)
			continue
		}

		expected := user.StartingCash
		for _, t := range txns {
			if t.TxType == types.TxSell {
				expected = expected.Add(t.Total)
			} else {
				expected = expected.Sub(t.Total)
			}
		}

		if !expected.Equal(user.Cash) {
			drifts = append(drifts, dto.BalanceDriftDTO{
				UserID:   user.ID,
				Expected: expected.StringFixed(2),
				Actual:   user.Cash.StringFixed(2),
				Drift:    user.Cash.Sub(expected).StringFixed(2),
			})
		}
	}
	return drifts, nil
}
