package dto

type TaxRequest struct {
	Income float64 `json:"income"`
}

type TaxResponse struct {
	Income float64 `json:"income"`
	Tax    float64 `json:"tax"`
}
