package wallet

type PurchaseResult struct {
	NewBalance int64
	ItemName   string
}

type SetPointsResult struct {
	Username       string
	PreviousPoints int64
	NewPoints      int64
}
