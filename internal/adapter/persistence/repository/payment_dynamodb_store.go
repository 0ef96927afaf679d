package repository

import (
	"context"
	"errors"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName      = "payments"
	paymentExternalIDIndex        = "external_id-index"
	paymentProductExternalIDIndex = "product_external_id-index"
)

var errTxFinished = errors.New("transaction already committed or rolled back")

type paymentItem struct {
	ID                string  `dynamodbav:"id"`
	ExternalID        string  `dynamodbav:"external_id"`
	ProductID         string  `dynamodbav:"product_id"`
	ProductExternalID string  `dynamodbav:"product_external_id"`
	RemotePaymentID   *string `dynamodbav:"remote_payment_id,omitempty"`
	ContinuationURL   string  `dynamodbav:"continuation_url,omitempty"`
	Amount            *int64  `dynamodbav:"amount,omitempty"`
	Status            string  `dynamodbav:"status"`
	ReferenceNumber   string  `dynamodbav:"reference_number,omitempty"`
	CreatedAt         string  `dynamodbav:"created_at"`
}

// PaymentDynamoStore persists Payment entities in DynamoDB and provides the
// transaction boundary durable flow steps run inside.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: external_id-index (PK: external_id)
//   - GSI: product_external_id-index (PK: product_external_id)

type PaymentDynamoStore struct {
	ddb           *dynamodb.Client
	paymentsTable string
	productsTable string
	products      *ProductDynamoRepository
}

var _ interfaces.IPaymentStore = (*PaymentDynamoStore)(nil)

func NewPaymentDynamoStore(ddb *dynamodb.Client) *PaymentDynamoStore {
	return &PaymentDynamoStore{
		ddb:           ddb,
		paymentsTable: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
		productsTable: getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
		products:      NewProductDynamoRepository(ddb),
	}
}

// BeginTx opens a write transaction. Writes are staged in memory and applied
// in one atomic TransactWriteItems call on Commit, so nothing is held open on
// the server between steps and rollback is a local discard.
func (s *PaymentDynamoStore) BeginTx(_ context.Context) (interfaces.PaymentTx, error) {
	return &dynamoTx{store: s}, nil
}

// FindProductByExternalID reads through the product repository; reads run
// outside any transaction.
func (s *PaymentDynamoStore) FindProductByExternalID(ctx context.Context, externalID string) (entities.Product, error) {
	return s.products.GetByExternalID(ctx, externalID)
}

func (s *PaymentDynamoStore) GetPaymentByExternalID(ctx context.Context, externalID string) (entities.Payment, error) {
	out, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.paymentsTable),
		IndexName:              aws.String(paymentExternalIDIndex),
		KeyConditionExpression: aws.String("external_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: externalID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (s *PaymentDynamoStore) ListPaymentsByProductExternalID(ctx context.Context, productExternalID string) ([]entities.Payment, error) {
	out, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.paymentsTable),
		IndexName:              aws.String(paymentProductExternalIDIndex),
		KeyConditionExpression: aws.String("product_external_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: productExternalID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

// dynamoTx stages writes for one durable step. It is used by a single
// goroutine for a single step, so it needs no locking.
type dynamoTx struct {
	store  *PaymentDynamoStore
	writes []types.TransactWriteItem
	done   bool
}

var _ interfaces.PaymentTx = (*dynamoTx)(nil)

func (t *dynamoTx) CreatePayment(_ context.Context, p entities.Payment) error {
	if t.done {
		return errTxFinished
	}
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return err
	}
	t.writes = append(t.writes, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(t.store.paymentsTable),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		},
	})
	return nil
}

func (t *dynamoTx) UpdatePayment(_ context.Context, p entities.Payment) error {
	if t.done {
		return errTxFinished
	}
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return err
	}
	// Full-item replace of a row that must already exist.
	t.writes = append(t.writes, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(t.store.paymentsTable),
			Item:                av,
			ConditionExpression: aws.String("attribute_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
		},
	})
	return nil
}

func (t *dynamoTx) Commit(ctx context.Context) error {
	if t.done {
		return errTxFinished
	}
	t.done = true
	if len(t.writes) == 0 {
		return nil
	}
	_, err := t.store.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: t.writes,
	})
	return err
}

func (t *dynamoTx) Rollback(_ context.Context) error {
	if t.done {
		return errTxFinished
	}
	t.done = true
	t.writes = nil
	return nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		ExternalID:        p.ExternalID,
		ProductID:         p.ProductID,
		ProductExternalID: p.ProductExternalID,
		RemotePaymentID:   p.RemotePaymentID,
		ContinuationURL:   p.ContinuationURL,
		Amount:            p.Amount,
		Status:            string(p.Status),
		ReferenceNumber:   p.ReferenceNumber,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Payment{
		ID:                it.ID,
		ExternalID:        it.ExternalID,
		ProductID:         it.ProductID,
		ProductExternalID: it.ProductExternalID,
		RemotePaymentID:   it.RemotePaymentID,
		ContinuationURL:   it.ContinuationURL,
		Amount:            it.Amount,
		Status:            entities.PaymentStatus(it.Status),
		ReferenceNumber:   it.ReferenceNumber,
		CreatedAt:         createdAt,
	}
}
