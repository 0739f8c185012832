package request

// StockRequest is the body of both stock creation and stock update.
// An update replaces every field, so omitted optional fields are cleared.
type StockRequest struct {
	Name        string   `json:"name"`
	Symbol      *string  `json:"symbol"`
	ManualPrice *float64 `json:"manualPrice"`
	GroupID     *string  `json:"groupId"`
}
