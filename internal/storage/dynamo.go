package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const batchWriteMax = 25

// DynamoStore implements EntityStore on DynamoDB. Each kind maps to its own
// table ({prefix}{kind}) keyed by the string attribute "id"; owning-reference
// queries go through a GSI named "{field}-index".
type DynamoStore struct {
	client      *dynamodb.Client
	tablePrefix string
}

// NewDynamoStore creates a DynamoStore with the given table name prefix.
func NewDynamoStore(client *dynamodb.Client, tablePrefix string) *DynamoStore {
	return &DynamoStore{client: client, tablePrefix: tablePrefix}
}

func (s *DynamoStore) table(kind Kind) *string {
	return aws.String(s.tablePrefix + string(kind))
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func (s *DynamoStore) Get(ctx context.Context, kind Kind, id string, out any) error {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: s.table(kind),
		Key:       idKey(id),
	})
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", kind, id, err)
	}
	if result.Item == nil {
		return ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return fmt.Errorf("unmarshal %s/%s: %w", kind, id, err)
	}
	return nil
}

func (s *DynamoStore) Query(ctx context.Context, kind Kind, field, value string, out any) error {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		result, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              s.table(kind),
			IndexName:              aws.String(field + "-index"),
			KeyConditionExpression: aws.String("#f = :v"),
			ExpressionAttributeNames: map[string]string{
				"#f": field,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberS{Value: value},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return fmt.Errorf("query %s by %s: %w", kind, field, err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("unmarshal %s query: %w", kind, err)
	}
	return nil
}

func (s *DynamoStore) List(ctx context.Context, kind Kind, out any) error {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         s.table(kind),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return fmt.Errorf("list %s: %w", kind, err)
		}
		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("unmarshal %s list: %w", kind, err)
	}
	return nil
}

func (s *DynamoStore) Put(ctx context.Context, kind Kind, id string, doc any) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", kind, id, err)
	}
	item["id"] = &types.AttributeValueMemberS{Value: id}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: s.table(kind),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put %s/%s: %w", kind, id, err)
	}
	return nil
}

func (s *DynamoStore) Update(ctx context.Context, kind Kind, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	names := make(map[string]string, len(fields))
	values := make(map[string]types.AttributeValue, len(fields))
	expr := "SET "
	i := 0
	for field, value := range fields {
		attr, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal field %s: %w", field, err)
		}
		nameRef := fmt.Sprintf("#f%d", i)
		valueRef := fmt.Sprintf(":v%d", i)
		if i > 0 {
			expr += ", "
		}
		expr += nameRef + " = " + valueRef
		names[nameRef] = field
		values[valueRef] = attr
		i++
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 s.table(kind),
		Key:                       idKey(id),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return ErrNotFound
		}
		return fmt.Errorf("update %s/%s: %w", kind, id, err)
	}
	return nil
}

func (s *DynamoStore) Delete(ctx context.Context, kind Kind, id string) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: s.table(kind),
		Key:       idKey(id),
	}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", kind, id, err)
	}
	return nil
}

func (s *DynamoStore) BatchDelete(ctx context.Context, kind Kind, ids []string) error {
	for start := 0; start < len(ids); start += batchWriteMax {
		end := start + batchWriteMax
		if end > len(ids) {
			end = len(ids)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, id := range ids[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: idKey(id)},
			})
		}

		pending := map[string][]types.WriteRequest{*s.table(kind): requests}
		for len(pending) > 0 {
			result, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: pending,
			})
			if err != nil {
				return fmt.Errorf("batch delete %s: %w", kind, err)
			}
			if len(result.UnprocessedItems) == 0 {
				break
			}
			pending = result.UnprocessedItems
		}
	}
	return nil
}
