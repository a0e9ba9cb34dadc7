package protocols

type Metrics interface {
	UnitsReserved(quantity int32)
	UnitsReleased(quantity int32)
	ItemSkipped(reason string)
	CheckoutAttempt(accepted bool)
	AdminAuthentication(outcome string)
	ReceiptPublished(outcome string)
}
