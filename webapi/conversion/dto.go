package conversion

// UpsertConversionRequest is the body accepted by create and update. Clients
// may send a createdAt alongside; the server assigns the persisted date itself.
type UpsertConversionRequest struct {
	FromCurrency string  `json:"fromCurrency" validate:"required"`
	ToCurrency   string  `json:"toCurrency" validate:"required"`
	FromAmount   float64 `json:"fromAmount" validate:"required,gt=0"`
	ToAmount     float64 `json:"toAmount" validate:"required,gt=0"`
}
