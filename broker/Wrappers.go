package broker

import "stocksim.com/dto"

func SendTradeExecuted(event *dto.TradeEventDTO) error {
	return sendReliable("trade-executed", event)
}

func SendBalanceDrift(drift *dto.BalanceDriftDTO) error {
	return sendReliable("ledger-drift", drift)
}
