package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProductsTableName = "products"
	productExternalIDIndex   = "external_id-index"
)

type productItem struct {
	ID               string `dynamodbav:"id"`
	ExternalID       string `dynamodbav:"external_id"`
	Name             string `dynamodbav:"name"`
	Description      string `dynamodbav:"description,omitempty"`
	Price            string `dynamodbav:"price,omitempty"`
	ReturnURL        string `dynamodbav:"return_url"`
	APIToken         string `dynamodbav:"api_token"`
	CaptureReference bool   `dynamodbav:"capture_reference"`
	Status           string `dynamodbav:"status"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

// ProductDynamoRepository persists Product entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: external_id-index (PK: external_id)

type ProductDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProductRepository = (*ProductDynamoRepository)(nil)

func NewProductDynamoRepository(ddb *dynamodb.Client) *ProductDynamoRepository {
	return &ProductDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
	}
}

func (r *ProductDynamoRepository) Create(ctx context.Context, p entities.Product) (entities.Product, error) {
	it := toProductItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Product{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Product{}, err
	}
	return p, nil
}

func (r *ProductDynamoRepository) GetByExternalID(ctx context.Context, externalID string) (entities.Product, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(productExternalIDIndex),
		KeyConditionExpression: aws.String("external_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: externalID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Product{}, err
	}
	if len(out.Items) == 0 {
		return entities.Product{}, nil
	}

	var it productItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Product{}, err
	}
	return fromProductItem(it), nil
}

func (r *ProductDynamoRepository) UpdateStatusByExternalID(ctx context.Context, externalID string, status entities.ProductStatus) (entities.Product, error) {
	return r.update(ctx, externalID, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *ProductDynamoRepository) UpdatePriceByExternalID(ctx context.Context, externalID string, price int64) (entities.Product, error) {
	return r.update(ctx, externalID, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #price = :price, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":price":      &types.AttributeValueMemberS{Value: strconv.FormatInt(price, 10)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#price":      "price",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *ProductDynamoRepository) update(
	ctx context.Context,
	externalID string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Product, error) {
	// The PK is the surrogate id; resolve it through the external-id index first.
	existing, err := r.GetByExternalID(ctx, externalID)
	if err != nil {
		return entities.Product{}, err
	}
	if existing.ID == "" {
		return entities.Product{}, nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: existing.ID},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Product{}, nil
		}
		return entities.Product{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Product{}, nil
	}
	var it productItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Product{}, err
	}
	return fromProductItem(it), nil
}

func toProductItem(p entities.Product) productItem {
	price := ""
	if p.Price != nil {
		price = strconv.FormatInt(*p.Price, 10)
	}
	return productItem{
		ID:               p.ID,
		ExternalID:       p.ExternalID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            price,
		ReturnURL:        p.ReturnURL,
		APIToken:         p.APIToken,
		CaptureReference: p.CaptureReference,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromProductItem(it productItem) entities.Product {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	var price *int64
	if it.Price != "" {
		if v, err := strconv.ParseInt(it.Price, 10, 64); err == nil {
			price = &v
		}
	}
	return entities.Product{
		ID:               it.ID,
		ExternalID:       it.ExternalID,
		Name:             it.Name,
		Description:      it.Description,
		Price:            price,
		ReturnURL:        it.ReturnURL,
		APIToken:         it.APIToken,
		CaptureReference: it.CaptureReference,
		Status:           entities.ProductStatus(it.Status),
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
