package request

import (
	"errors"
	"strings"
)

var ErrUnknownStatusAction = errors.New("unknown status action")

// ProductCreateRequest is the administrative payload for creating a payment
// template. Price is optional: omitting it forces callers to supply an amount
// per payment.
type ProductCreateRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Price            *int64 `json:"price"`
	ReturnURL        string `json:"return_url" binding:"required"`
	APIToken         string `json:"api_token" binding:"required"`
	CaptureReference bool   `json:"capture_reference"`
}

// ProductStatusRequest toggles a product between ACTIVE and INACTIVE.
type ProductStatusRequest struct {
	Action string `json:"action" binding:"required"`
}

// ResolveAction normalizes the action field.
func (r ProductStatusRequest) ResolveAction() (string, error) {
	switch strings.ToLower(strings.TrimSpace(r.Action)) {
	case "activate":
		return "activate", nil
	case "deactivate":
		return "deactivate", nil
	}
	return "", ErrUnknownStatusAction
}

// ProductPriceRequest reprices a product. Price is in minor currency units.
type ProductPriceRequest struct {
	Price int64 `json:"price" binding:"required"`
}
