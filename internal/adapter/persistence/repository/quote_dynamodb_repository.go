package repository

import (
	"context"
	"strconv"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	pkgerrors "github.com/pkg/errors"
)

const quoteEntity = "quote"

type commentItem struct {
	ID        string   `dynamodbav:"id"`
	Content   string   `dynamodbav:"content"`
	AuthorID  string   `dynamodbav:"author_id"`
	Mentions  []string `dynamodbav:"mentions"`
	CreatedAt string   `dynamodbav:"created_at"`
}

type quoteItem struct {
	ID          string        `dynamodbav:"id"`
	Entity      string        `dynamodbav:"entity"`
	Name        string        `dynamodbav:"name"`
	Email       string        `dynamodbav:"email"`
	Phone       string        `dynamodbav:"phone"`
	ProjectType string        `dynamodbav:"project_type"`
	Budget      string        `dynamodbav:"budget"`
	Message     string        `dynamodbav:"message"`
	Status      string        `dynamodbav:"status"`
	Comments    []commentItem `dynamodbav:"comments"`
	CreatedAt   string        `dynamodbav:"created_at"`
	Version     int64         `dynamodbav:"version"`
}

// QuoteDynamoRepository persists Quote aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI entity-created_at-index: entity (hash) + created_at (range)
//
// Comments live inside the quote item. Appends are server-side list_append
// updates; whole-item replaces are conditioned on the version attribute.
type QuoteDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoDBAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	q.Version = 1
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, pkgerrors.Wrap(err, "marshal quote")
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
		if isConditionFailed(err) {
			return entities.Quote{}, interfaces.ErrQuoteConflict
		}
		return entities.Quote{}, pkgerrors.Wrapf(err, "put quote %s", q.ID)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	item, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil {
		return entities.Quote{}, err
	}
	return unmarshalQuote(item)
}

func (r *QuoteDynamoRepository) ListAll(ctx context.Context) ([]entities.Quote, error) {
	items, err := queryEntity(ctx, r.ddb, r.tableName, quoteEntity, true)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Quote, 0, len(items))
	for _, item := range items {
		q, err := unmarshalQuote(item)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *QuoteDynamoRepository) Replace(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	expected := q.Version
	q.Version++
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, pkgerrors.Wrap(err, "marshal quote")
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Quote{}, interfaces.ErrQuoteConflict
		}
		return entities.Quote{}, pkgerrors.Wrapf(err, "replace quote %s", q.ID)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	attrs, err := updateByID(ctx, r.ddb, r.tableName, id,
		"SET #status = :status ADD #version :one",
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
			":one":    &types.AttributeValueMemberN{Value: "1"},
		},
		map[string]string{
			"#status":  "status",
			"#version": "version",
		},
	)
	if err != nil {
		return entities.Quote{}, err
	}
	return unmarshalQuote(attrs)
}

func (r *QuoteDynamoRepository) AppendComment(ctx context.Context, id string, c entities.Comment) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toCommentItem(c))
	if err != nil {
		return entities.Quote{}, pkgerrors.Wrap(err, "marshal comment")
	}

	attrs, err := updateByID(ctx, r.ddb, r.tableName, id,
		"SET #comments = list_append(if_not_exists(#comments, :empty), :new) ADD #version :one",
		map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":new":   &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberM{Value: av}}},
			":one":   &types.AttributeValueMemberN{Value: "1"},
		},
		map[string]string{
			"#comments": "comments",
			"#version":  "version",
		},
	)
	if err != nil {
		return entities.Quote{}, err
	}
	return unmarshalQuote(attrs)
}

func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.ddb, r.tableName, id)
}

func unmarshalQuote(item map[string]types.AttributeValue) (entities.Quote, error) {
	if len(item) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Quote{}, pkgerrors.Wrap(err, "unmarshal quote")
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	comments := make([]commentItem, 0, len(q.Comments))
	for _, c := range q.Comments {
		comments = append(comments, toCommentItem(c))
	}
	return quoteItem{
		ID:          q.ID,
		Entity:      quoteEntity,
		Name:        q.Name,
		Email:       q.Email,
		Phone:       q.Phone,
		ProjectType: q.ProjectType,
		Budget:      q.Budget,
		Message:     q.Message,
		Status:      string(q.Status),
		Comments:    comments,
		CreatedAt:   formatTime(q.CreatedAt),
		Version:     q.Version,
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	comments := make([]entities.Comment, 0, len(it.Comments))
	for _, c := range it.Comments {
		comments = append(comments, fromCommentItem(c))
	}
	return entities.Quote{
		ID:          it.ID,
		Name:        it.Name,
		Email:       it.Email,
		Phone:       it.Phone,
		ProjectType: it.ProjectType,
		Budget:      it.Budget,
		Message:     it.Message,
		Status:      entities.QuoteStatus(it.Status),
		Comments:    comments,
		CreatedAt:   parseTime(it.CreatedAt),
		Version:     it.Version,
	}
}

func toCommentItem(c entities.Comment) commentItem {
	mentions := c.Mentions
	if mentions == nil {
		mentions = []string{}
	}
	return commentItem{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		Mentions:  mentions,
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func fromCommentItem(c commentItem) entities.Comment {
	mentions := c.Mentions
	if mentions == nil {
		mentions = []string{}
	}
	return entities.Comment{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		Mentions:  mentions,
		CreatedAt: parseTime(c.CreatedAt),
	}
}
