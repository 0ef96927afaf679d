package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/flow"
	"paylink/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrProductNotFound          = errors.New("product not found")
	ErrInvalidProductExternalID = errors.New("invalid product external id")
	ErrInvalidPaymentExternalID = errors.New("invalid payment external id")
	ErrAmountRequired           = errors.New("amount required for product without price")
)

// rejectedGatewayCodes enumerates the gateway error codes that count as a
// business-validation rejection rather than an opaque downstream failure.
// Anything not listed here, including a code-less failure, is opaque.
var rejectedGatewayCodes = map[string]string{
	"P0101": "amount below gateway minimum",
	"P0102": "gateway rejected the request data",
}

// GatewayRejectedError is raised when the gateway returned a well-formed
// error with a recognized business code. The payment row is already persisted
// as ERROR when this is returned.
type GatewayRejectedError struct {
	ProductExternalID string
	HTTPStatus        int
	Code              string
}

func (e *GatewayRejectedError) Error() string {
	return fmt.Sprintf("payment rejected by gateway product=%s status=%d code=%s", e.ProductExternalID, e.HTTPStatus, e.Code)
}

// GatewayFailureError is raised when the gateway call failed without a
// recognized business code: network error, timeout, malformed body or an
// unknown provider code. The payment row is already persisted as ERROR.
type GatewayFailureError struct {
	ProductExternalID string
	HTTPStatus        int
	Code              string
}

func (e *GatewayFailureError) Error() string {
	return fmt.Sprintf("payment gateway failure product=%s status=%d code=%s", e.ProductExternalID, e.HTTPStatus, e.Code)
}

// CreatePaymentInput carries the per-payment overrides a caller may supply.
// Amount is required when the product has no price; Reference is honored only
// when the product captures references.
type CreatePaymentInput struct {
	Amount    *int64
	Reference string
}

// IPaymentUseCase encapsulates payment creation against a product template.
//
// Requested behavior:
//   - Persist a pending payment, call the external gateway outside any store
//     transaction, then reconcile the outcome into a terminal SUCCESS/ERROR row.

type IPaymentUseCase interface {
	CreatePayment(ctx context.Context, productExternalID string, in CreatePaymentInput) (entities.Payment, error)
	GetByExternalID(ctx context.Context, externalID string) (entities.Payment, error)
	ListByProductExternalID(ctx context.Context, productExternalID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	store          interfaces.IPaymentStore
	gateway        interfaces.IPaymentGateway
	runner         *flow.Runner[interfaces.PaymentTx]
	gatewayTimeout time.Duration
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(store interfaces.IPaymentStore, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{
		store:          store,
		gateway:        gateway,
		runner:         flow.NewRunner[interfaces.PaymentTx](store),
		gatewayTimeout: gatewayTimeoutFromEnv(),
	}
}

// Values staged in the flow context between steps. One type per slot keeps
// step ordering honest: a missing slot is a defect, not a default.
type flowProduct struct{ product entities.Product }
type pendingPayment struct{ payment entities.Payment }
type plannedCharge struct{ amount int64 }
type finalPayment struct{ payment entities.Payment }

// gatewayOutcome is staged by the gateway step for both success and failure,
// so reconciliation always runs and the payment row always goes terminal.
type gatewayOutcome struct {
	ok              bool
	remoteID        string
	continuationURL string
	amount          int64
	httpStatus      int
	code            string
	description     string
}

// CreatePayment runs the create-pending / call-gateway / reconcile flow.
//
// The pending row is committed before the gateway is called and survives a
// gateway failure; in that case the row is updated to ERROR and a
// *GatewayRejectedError or *GatewayFailureError is returned instead of a
// payment. ErrProductNotFound aborts before any row is written.
func (u *PaymentUseCase) CreatePayment(ctx context.Context, productExternalID string, in CreatePaymentInput) (entities.Payment, error) {
	productExternalID = strings.TrimSpace(productExternalID)
	log.Printf("[payment][usecase] create start product_external_id=%q", productExternalID)
	if productExternalID == "" {
		return entities.Payment{}, ErrInvalidProductExternalID
	}
	if u.store == nil {
		return entities.Payment{}, errors.New("payment store not configured")
	}
	if u.gateway == nil {
		return entities.Payment{}, errors.New("payment gateway not configured")
	}

	c := flow.NewContext()
	err := u.runner.Execute(ctx, c,
		flow.Durable("lookup-product", u.lookupProductStep(productExternalID, in)),
		flow.External[interfaces.PaymentTx]("call-gateway", u.callGatewayStep()),
		// Detached: a caller abort while the gateway call was in flight must
		// not leave the row stuck in CREATED.
		flow.Durable("reconcile", u.reconcileStep(), flow.Detached()),
	)
	if err != nil {
		log.Printf("[payment][usecase] create flow failed product_external_id=%s err=%v", productExternalID, err)
		return entities.Payment{}, err
	}

	final, err := flow.Get[finalPayment](c)
	if err != nil {
		return entities.Payment{}, err
	}
	p := final.payment
	if p.Status == entities.PaymentStatusError {
		gwErr := classifyGatewayFailure(p, productExternalID)
		log.Printf("[payment][usecase] create reconciled as error product_external_id=%s payment_id=%s err=%v", productExternalID, p.ExternalID, gwErr)
		return entities.Payment{}, gwErr
	}
	log.Printf("[payment][usecase] create success product_external_id=%s payment_id=%s status=%s", productExternalID, p.ExternalID, p.Status)
	return p, nil
}

// lookupProductStep resolves the product and persists the pending payment row
// in the same transaction, so a later gateway failure still leaves an
// auditable row behind.
func (u *PaymentUseCase) lookupProductStep(productExternalID string, in CreatePaymentInput) flow.DurableFunc[interfaces.PaymentTx] {
	return func(ctx context.Context, tx interfaces.PaymentTx, c *flow.Context) error {
		product, err := u.store.FindProductByExternalID(ctx, productExternalID)
		if err != nil {
			return err
		}
		if product.ID == "" || !product.Active() {
			return ErrProductNotFound
		}

		amount, err := resolveAmount(product, in)
		if err != nil {
			return err
		}
		reference := resolveReference(product, in)

		p := entities.Payment{
			ID:                uuid.NewString(),
			ExternalID:        uuid.NewString(),
			ProductID:         product.ID,
			ProductExternalID: product.ExternalID,
			Status:            entities.PaymentStatusCreated,
			ReferenceNumber:   reference,
			CreatedAt:         time.Now().UTC(),
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}
		log.Printf("[payment][usecase] pending payment staged product_external_id=%s payment_id=%s amount=%d", productExternalID, p.ExternalID, amount)

		if err := flow.Put(c, flowProduct{product: product}); err != nil {
			return err
		}
		if err := flow.Put(c, pendingPayment{payment: p}); err != nil {
			return err
		}
		return flow.Put(c, plannedCharge{amount: amount})
	}
}

// callGatewayStep invokes the external gateway with no transaction open. A
// gateway failure is staged, never returned, so reconciliation always runs;
// only context defects abort the flow here.
func (u *PaymentUseCase) callGatewayStep() flow.ExternalFunc {
	return func(ctx context.Context, c *flow.Context) error {
		fp, err := flow.Get[flowProduct](c)
		if err != nil {
			return err
		}
		pending, err := flow.Get[pendingPayment](c)
		if err != nil {
			return err
		}
		charge, err := flow.Get[plannedCharge](c)
		if err != nil {
			return err
		}

		req := interfaces.GatewayRequest{
			Amount:      charge.amount,
			Reference:   pending.payment.ReferenceNumber,
			Description: fp.product.Description,
			ReturnURL:   fp.product.ReturnURL,
		}

		callCtx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
		defer cancel()

		resp, err := u.gateway.CreatePayment(callCtx, fp.product.APIToken, req)
		if err != nil {
			outcome := gatewayOutcome{description: err.Error()}
			var gwErr *interfaces.GatewayError
			if errors.As(err, &gwErr) {
				outcome.httpStatus = gwErr.HTTPStatus
				outcome.code = gwErr.Code
				outcome.description = gwErr.Description
			}
			log.Printf("[payment][usecase] gateway call failed payment_id=%s status=%d code=%s err=%v", pending.payment.ExternalID, outcome.httpStatus, outcome.code, err)
			return flow.Put(c, outcome)
		}

		log.Printf("[payment][usecase] gateway call success payment_id=%s remote_payment_id=%s", pending.payment.ExternalID, resp.RemotePaymentID)
		return flow.Put(c, gatewayOutcome{
			ok:              true,
			remoteID:        resp.RemotePaymentID,
			continuationURL: resp.ContinuationURL,
			amount:          resp.Amount,
		})
	}
}

// reconcileStep moves the payment row to its terminal state and commits.
func (u *PaymentUseCase) reconcileStep() flow.DurableFunc[interfaces.PaymentTx] {
	return func(ctx context.Context, tx interfaces.PaymentTx, c *flow.Context) error {
		pending, err := flow.Get[pendingPayment](c)
		if err != nil {
			return err
		}
		outcome, err := flow.Get[gatewayOutcome](c)
		if err != nil {
			return err
		}

		p := pending.payment
		if outcome.ok {
			remoteID := outcome.remoteID
			amount := outcome.amount
			p.RemotePaymentID = &remoteID
			p.Amount = &amount
			p.ContinuationURL = outcome.continuationURL
			p.Status = entities.PaymentStatusSuccess
		} else {
			p.Status = entities.PaymentStatusError
			p.ErrorHTTPStatus = outcome.httpStatus
			p.ErrorCode = outcome.code
		}

		if err := tx.UpdatePayment(ctx, p); err != nil {
			return err
		}
		log.Printf("[payment][usecase] reconcile committed payment_id=%s status=%s", p.ExternalID, p.Status)
		return flow.Put(c, finalPayment{payment: p})
	}
}

func (u *PaymentUseCase) GetByExternalID(ctx context.Context, externalID string) (entities.Payment, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return entities.Payment{}, ErrInvalidPaymentExternalID
	}

	p, err := u.store.GetPaymentByExternalID(ctx, externalID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByProductExternalID(ctx context.Context, productExternalID string) ([]entities.Payment, error) {
	productExternalID = strings.TrimSpace(productExternalID)
	if productExternalID == "" {
		return nil, ErrInvalidProductExternalID
	}
	return u.store.ListPaymentsByProductExternalID(ctx, productExternalID)
}

func resolveAmount(product entities.Product, in CreatePaymentInput) (int64, error) {
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return 0, ErrAmountRequired
		}
		return *in.Amount, nil
	}
	if product.Price == nil {
		return 0, ErrAmountRequired
	}
	return *product.Price, nil
}

func resolveReference(product entities.Product, in CreatePaymentInput) string {
	if !product.CaptureReference {
		return ""
	}
	if ref := strings.TrimSpace(in.Reference); ref != "" {
		return ref
	}
	return uuid.NewString()
}

func classifyGatewayFailure(p entities.Payment, productExternalID string) error {
	if _, ok := rejectedGatewayCodes[p.ErrorCode]; ok {
		return &GatewayRejectedError{
			ProductExternalID: productExternalID,
			HTTPStatus:        p.ErrorHTTPStatus,
			Code:              p.ErrorCode,
		}
	}
	return &GatewayFailureError{
		ProductExternalID: productExternalID,
		HTTPStatus:        p.ErrorHTTPStatus,
		Code:              p.ErrorCode,
	}
}

func gatewayTimeoutFromEnv() time.Duration {
	if v := strings.TrimSpace(os.Getenv("GATEWAY_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("[payment][usecase] invalid GATEWAY_TIMEOUT=%q, using default", v)
	}
	return 30 * time.Second
}
