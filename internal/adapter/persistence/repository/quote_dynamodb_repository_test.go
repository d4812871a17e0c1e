package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuote() entities.Quote {
	return entities.Quote{
		ID:          "q1",
		Name:        "Fatou Diop",
		Email:       "f@x.com",
		Phone:       "+221 77 000 00 00",
		ProjectType: "construction",
		Budget:      "10-50M FCFA",
		Message:     "Villa R+1",
		Status:      entities.QuoteStatusPending,
		Comments: []entities.Comment{
			{ID: "c1", Content: "hello", AuthorID: "a1", Mentions: []string{"a2"}, CreatedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)},
		},
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Version:   4,
	}
}

func marshalQuote(t *testing.T, q entities.Quote) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	require.NoError(t, err)
	return av
}

var errConditionFailed = &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}

func TestQuoteDynamoRepository_Create(t *testing.T) {
	t.Run("conditional put with version 1", func(t *testing.T) {
		stub := &stubDynamo{putItem: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			assert.Equal(t, "quotes", aws.ToString(in.TableName))
			assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(in.ConditionExpression))
			assert.Equal(t, &types.AttributeValueMemberS{Value: "quote"}, in.Item["entity"])
			assert.Equal(t, &types.AttributeValueMemberN{Value: "1"}, in.Item["version"])
			return &dynamodb.PutItemOutput{}, nil
		}}
		repo := NewQuoteDynamoRepository(stub, "quotes")

		q, err := repo.Create(context.Background(), sampleQuote())
		require.NoError(t, err)
		assert.EqualValues(t, 1, q.Version)
	})

	t.Run("duplicate id", func(t *testing.T) {
		stub := &stubDynamo{putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, errConditionFailed
		}}
		repo := NewQuoteDynamoRepository(stub, "quotes")

		_, err := repo.Create(context.Background(), sampleQuote())
		assert.ErrorIs(t, err, interfaces.ErrQuoteConflict)
	})
}

func TestQuoteDynamoRepository_GetByID(t *testing.T) {
	t.Run("missing item", func(t *testing.T) {
		repo := NewQuoteDynamoRepository(&stubDynamo{}, "quotes")
		q, err := repo.GetByID(context.Background(), "q1")
		require.NoError(t, err)
		assert.Empty(t, q.ID)
	})

	t.Run("round trips comments", func(t *testing.T) {
		want := sampleQuote()
		stub := &stubDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			assert.True(t, aws.ToBool(in.ConsistentRead))
			return &dynamodb.GetItemOutput{Item: marshalQuote(t, want)}, nil
		}}
		repo := NewQuoteDynamoRepository(stub, "quotes")

		got, err := repo.GetByID(context.Background(), "q1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		cause := errors.New("timeout")
		stub := &stubDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return nil, cause
		}}
		repo := NewQuoteDynamoRepository(stub, "quotes")

		_, err := repo.GetByID(context.Background(), "q1")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "get quotes/q1")
	})
}

func TestQuoteDynamoRepository_ListAllDrainsPages(t *testing.T) {
	first := sampleQuote()
	second := sampleQuote()
	second.ID = "q0"

	calls := 0
	stub := &stubDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		calls++
		assert.Equal(t, EntityCreatedAtIndex, aws.ToString(in.IndexName))
		assert.False(t, aws.ToBool(in.ScanIndexForward))
		if in.ExclusiveStartKey == nil {
			return &dynamodb.QueryOutput{
				Items:            []map[string]types.AttributeValue{marshalQuote(t, first)},
				LastEvaluatedKey: idKey(first.ID),
			}, nil
		}
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{marshalQuote(t, second)}}, nil
	}}
	repo := NewQuoteDynamoRepository(stub, "quotes")

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, list, 2)
	assert.Equal(t, "q1", list[0].ID)
	assert.Equal(t, "q0", list[1].ID)
}

func TestQuoteDynamoRepository_Replace(t *testing.T) {
	t.Run("conditioned on read version", func(t *testing.T) {
		stub := &stubDynamo{putItem: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			assert.Equal(t, "#version = :expected", aws.ToString(in.ConditionExpression))
			assert.Equal(t, &types.AttributeValueMemberN{Value: "4"}, in.ExpressionAttributeValues[":expected"])
			assert.Equal(t, &types.AttributeValueMemberN{Value: "5"}, in.Item["version"])
			return &dynamodb.PutItemOutput{}, nil
		}}
		repo := NewQuoteDynamoRepository(stub, "quotes")

		q, err := repo.Replace(context.Background(), sampleQuote().WithoutComment("c1"))
		require.NoError(t, err)
		assert.EqualValues(t, 5, q.Version)
		assert.Empty(t, q.Comments)
	})

	t.Run("stale version", func(t *testing.T) {
		stub := &stubDynamo{putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, errConditionFailed
		}}
		repo := NewQuoteDynamoRepository(stub, "quotes")

		_, err := repo.Replace(context.Background(), sampleQuote())
		assert.ErrorIs(t, err, interfaces.ErrQuoteConflict)
	})
}

func TestQuoteDynamoRepository_AppendComment(t *testing.T) {
	t.Run("atomic list append", func(t *testing.T) {
		updated := sampleQuote()
		stub := &stubDynamo{updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			assert.True(t, strings.Contains(aws.ToString(in.UpdateExpression), "list_append(if_not_exists(#comments, :empty), :new)"))
			assert.Equal(t, "attribute_exists(#id)", aws.ToString(in.ConditionExpression))
			assert.Equal(t, types.ReturnValueAllNew, in.ReturnValues)
			newList, ok := in.ExpressionAttributeValues[":new"].(*types.AttributeValueMemberL)
			require.True(t, ok)
			assert.Len(t, newList.Value, 1)
			return &dynamodb.UpdateItemOutput{Attributes: marshalQuote(t, updated)}, nil
		}}
		repo := NewQuoteDynamoRepository(stub, "quotes")

		q, err := repo.AppendComment(context.Background(), "q1", entities.Comment{ID: "c1", Content: "hello", AuthorID: "a1"})
		require.NoError(t, err)
		assert.Equal(t, "q1", q.ID)
		assert.Len(t, q.Comments, 1)
	})

	t.Run("missing quote", func(t *testing.T) {
		stub := &stubDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, errConditionFailed
		}}
		repo := NewQuoteDynamoRepository(stub, "quotes")

		q, err := repo.AppendComment(context.Background(), "q1", entities.Comment{ID: "c1"})
		require.NoError(t, err)
		assert.Empty(t, q.ID)
	})
}

func TestQuoteDynamoRepository_UpdateStatusAndDelete(t *testing.T) {
	stub := &stubDynamo{
		updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			assert.Equal(t, "SET #status = :status ADD #version :one", aws.ToString(in.UpdateExpression))
			q := sampleQuote()
			q.Status = entities.QuoteStatusAccepted
			return &dynamodb.UpdateItemOutput{Attributes: marshalQuote(t, q)}, nil
		},
		deleteItem: func(in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			assert.Equal(t, types.ReturnValueAllOld, in.ReturnValues)
			return &dynamodb.DeleteItemOutput{Attributes: idKey("q1")}, nil
		},
	}
	repo := NewQuoteDynamoRepository(stub, "quotes")

	q, err := repo.UpdateStatus(context.Background(), "q1", entities.QuoteStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entities.QuoteStatusAccepted, q.Status)

	existed, err := repo.Delete(context.Background(), "q1")
	require.NoError(t, err)
	assert.True(t, existed)
}
