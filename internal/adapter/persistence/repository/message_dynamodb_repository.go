package repository

import (
	"context"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	pkgerrors "github.com/pkg/errors"
)

const messageEntity = "message"

type messageItem struct {
	ID        string `dynamodbav:"id"`
	Entity    string `dynamodbav:"entity"`
	Name      string `dynamodbav:"name"`
	Email     string `dynamodbav:"email"`
	Message   string `dynamodbav:"message"`
	IsRead    bool   `dynamodbav:"is_read"`
	CreatedAt string `dynamodbav:"created_at"`
}

// MessageDynamoRepository stores contact messages.
//
// Table requirements: PK id, GSI entity-created_at-index.
type MessageDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IMessageRepository = (*MessageDynamoRepository)(nil)

func NewMessageDynamoRepository(ddb DynamoDBAPI, tableName string) *MessageDynamoRepository {
	return &MessageDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *MessageDynamoRepository) Create(ctx context.Context, m entities.ContactMessage) (entities.ContactMessage, error) {
	av, err := attributevalue.MarshalMap(messageItem{
		ID:        m.ID,
		Entity:    messageEntity,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: formatTime(m.CreatedAt),
	})
	if err != nil {
		return entities.ContactMessage{}, pkgerrors.Wrap(err, "marshal message")
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
		return entities.ContactMessage{}, pkgerrors.Wrapf(err, "put message %s", m.ID)
	}
	return m, nil
}

func (r *MessageDynamoRepository) GetByID(ctx context.Context, id string) (entities.ContactMessage, error) {
	item, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil {
		return entities.ContactMessage{}, err
	}
	return unmarshalMessage(item)
}

func (r *MessageDynamoRepository) List(ctx context.Context) ([]entities.ContactMessage, error) {
	items, err := queryEntity(ctx, r.ddb, r.tableName, messageEntity, true)
	if err != nil {
		return nil, err
	}
	out := make([]entities.ContactMessage, 0, len(items))
	for _, item := range items {
		m, err := unmarshalMessage(item)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MessageDynamoRepository) MarkRead(ctx context.Context, id string) (entities.ContactMessage, error) {
	attrs, err := updateByID(ctx, r.ddb, r.tableName, id,
		"SET #is_read = :true",
		map[string]types.AttributeValue{":true": &types.AttributeValueMemberBOOL{Value: true}},
		map[string]string{"#is_read": "is_read"},
	)
	if err != nil {
		return entities.ContactMessage{}, err
	}
	return unmarshalMessage(attrs)
}

func (r *MessageDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.ddb, r.tableName, id)
}

func unmarshalMessage(item map[string]types.AttributeValue) (entities.ContactMessage, error) {
	if len(item) == 0 {
		return entities.ContactMessage{}, nil
	}
	var it messageItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.ContactMessage{}, pkgerrors.Wrap(err, "unmarshal message")
	}
	return entities.ContactMessage{
		ID:        it.ID,
		Name:      it.Name,
		Email:     it.Email,
		Message:   it.Message,
		IsRead:    it.IsRead,
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}
