package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"daraja_stk/internal/domain/entities"
	"daraja_stk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoItemAPI is the subset of *dynamodb.Client the repository needs.
type DynamoItemAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type idempotencyItem struct {
	Key          string `dynamodbav:"idempotency_key"`
	BodyHash     string `dynamodbav:"body_hash"`
	State        string `dynamodbav:"state"`
	StatusCode   int    `dynamodbav:"status_code"`
	ResponseBody []byte `dynamodbav:"response_body,omitempty"`
	CreatedAt    string `dynamodbav:"created_at"`
	ExpiresAt    int64  `dynamodbav:"expires_at"`
}

// IdempotencyDynamoRepository keeps Idempotency-Key records in DynamoDB.
//
// Table requirements:
//   - PK: idempotency_key (string)
//   - TTL attribute: expires_at
//
// DynamoDB deletes expired items lazily, so reads and conditional writes
// also compare expires_at with the current time.
type IdempotencyDynamoRepository struct {
	ddb       DynamoItemAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IIdempotencyRepository = (*IdempotencyDynamoRepository)(nil)

// NewIdempotencyDynamoRepository stores records in tableName, normally
// config.Config.IdempotencyTable.
func NewIdempotencyDynamoRepository(ddb DynamoItemAPI, tableName string) *IdempotencyDynamoRepository {
	return &IdempotencyDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *IdempotencyDynamoRepository) TableName() string { return r.tableName }

func (r *IdempotencyDynamoRepository) Get(ctx context.Context, key string) (entities.IdempotencyRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            keyAttr(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.IdempotencyRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.IdempotencyRecord{}, nil
	}

	var it idempotencyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.IdempotencyRecord{}, err
	}
	rec := fromIdempotencyItem(it)
	if rec.Expired(r.now()) {
		return entities.IdempotencyRecord{}, nil
	}
	return rec, nil
}

func (r *IdempotencyDynamoRepository) Create(ctx context.Context, rec entities.IdempotencyRecord) error {
	av, err := attributevalue.MarshalMap(toIdempotencyItem(rec))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#key) OR expires_at < :now"),
		ExpressionAttributeNames: map[string]string{
			"#key": "idempotency_key",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(r.now().Unix(), 10)},
		},
	})
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return interfaces.ErrIdempotencyKeyExists
	}
	return err
}

func (r *IdempotencyDynamoRepository) Update(ctx context.Context, rec entities.IdempotencyRecord) error {
	av, err := attributevalue.MarshalMap(toIdempotencyItem(rec))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *IdempotencyDynamoRepository) Delete(ctx context.Context, key string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyAttr(key),
	})
	return err
}

func keyAttr(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"idempotency_key": &types.AttributeValueMemberS{Value: key},
	}
}

func toIdempotencyItem(rec entities.IdempotencyRecord) idempotencyItem {
	return idempotencyItem{
		Key:          rec.Key,
		BodyHash:     rec.BodyHash,
		State:        string(rec.State),
		StatusCode:   rec.StatusCode,
		ResponseBody: rec.ResponseBody,
		CreatedAt:    rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt:    rec.ExpiresAt.Unix(),
	}
}

func fromIdempotencyItem(it idempotencyItem) entities.IdempotencyRecord {
	created, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.IdempotencyRecord{
		Key:          it.Key,
		BodyHash:     it.BodyHash,
		State:        entities.IdempotencyState(it.State),
		StatusCode:   it.StatusCode,
		ResponseBody: it.ResponseBody,
		CreatedAt:    created,
		ExpiresAt:    time.Unix(it.ExpiresAt, 0).UTC(),
	}
}
