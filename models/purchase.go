package models

// VoucherPurchaseRequest starts a hosted checkout for a gift voucher.
// Amount is in minor units and must match a sellable denomination.
type VoucherPurchaseRequest struct {
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	BuyerEmail      string `json:"buyerEmail"`
	RecipientEmail  string `json:"recipientEmail"`
	RecipientName   string `json:"recipientName"`
	PersonalMessage string `json:"personalMessage"`
	Locale          string `json:"locale"`
}

// VoucherPurchaseResult carries the hosted checkout URL plus the freshly
// minted code, so the storefront can show it on the success page.
type VoucherPurchaseResult struct {
	URL         string `json:"url"`
	VoucherCode string `json:"voucherCode"`
}

// AdoptionCheckoutRequest starts a hosted checkout for an annual alpaca
// adoption package.
type AdoptionCheckoutRequest struct {
	Tier   string `json:"tier"`
	Alpaca string `json:"alpaca"`
	Locale string `json:"locale"`
}

// AdoptionCheckoutResult carries the hosted checkout URL.
type AdoptionCheckoutResult struct {
	URL string `json:"url"`
}
