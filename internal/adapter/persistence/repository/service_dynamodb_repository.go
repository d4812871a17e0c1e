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

const serviceEntity = "service"

type galleryItem struct {
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description"`
	Image       string `dynamodbav:"image"`
}

type serviceItem struct {
	ID          string        `dynamodbav:"id"`
	Entity      string        `dynamodbav:"entity"`
	Title       string        `dynamodbav:"title"`
	Description string        `dynamodbav:"description"`
	Image       string        `dynamodbav:"image"`
	Features    []string      `dynamodbav:"features"`
	Benefits    []string      `dynamodbav:"benefits"`
	Gallery     []galleryItem `dynamodbav:"gallery"`
	CreatedAt   string        `dynamodbav:"created_at"`
	UpdatedAt   string        `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository stores the services catalog.
//
// Table requirements: PK id, GSI entity-created_at-index.
type ServiceDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb DynamoDBAPI, tableName string) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	av, err := attributevalue.MarshalMap(toServiceItem(s))
	if err != nil {
		return entities.Service{}, pkgerrors.Wrap(err, "marshal service")
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
		return entities.Service{}, pkgerrors.Wrapf(err, "put service %s", s.ID)
	}
	return s, nil
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	item, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil {
		return entities.Service{}, err
	}
	return unmarshalService(item)
}

// List returns the catalog in creation order.
func (r *ServiceDynamoRepository) List(ctx context.Context) ([]entities.Service, error) {
	items, err := queryEntity(ctx, r.ddb, r.tableName, serviceEntity, false)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Service, 0, len(items))
	for _, item := range items {
		s, err := unmarshalService(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Update overwrites the editable fields; created_at is left untouched.
func (r *ServiceDynamoRepository) Update(ctx context.Context, s entities.Service) (entities.Service, error) {
	it := toServiceItem(s)
	features, err := attributevalue.Marshal(it.Features)
	if err != nil {
		return entities.Service{}, pkgerrors.Wrap(err, "marshal features")
	}
	benefits, err := attributevalue.Marshal(it.Benefits)
	if err != nil {
		return entities.Service{}, pkgerrors.Wrap(err, "marshal benefits")
	}
	gallery, err := attributevalue.Marshal(it.Gallery)
	if err != nil {
		return entities.Service{}, pkgerrors.Wrap(err, "marshal gallery")
	}

	attrs, err := updateByID(ctx, r.ddb, r.tableName, s.ID,
		"SET #title = :title, #description = :description, #image = :image, #features = :features, #benefits = :benefits, #gallery = :gallery, #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":title":       &types.AttributeValueMemberS{Value: it.Title},
			":description": &types.AttributeValueMemberS{Value: it.Description},
			":image":       &types.AttributeValueMemberS{Value: it.Image},
			":features":    features,
			":benefits":    benefits,
			":gallery":     gallery,
			":updated_at":  &types.AttributeValueMemberS{Value: it.UpdatedAt},
		},
		map[string]string{
			"#title":       "title",
			"#description": "description",
			"#image":       "image",
			"#features":    "features",
			"#benefits":    "benefits",
			"#gallery":     "gallery",
			"#updated_at":  "updated_at",
		},
	)
	if err != nil {
		return entities.Service{}, err
	}
	return unmarshalService(attrs)
}

func (r *ServiceDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.ddb, r.tableName, id)
}

func unmarshalService(item map[string]types.AttributeValue) (entities.Service, error) {
	if len(item) == 0 {
		return entities.Service{}, nil
	}
	var it serviceItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Service{}, pkgerrors.Wrap(err, "unmarshal service")
	}
	return fromServiceItem(it), nil
}

func toServiceItem(s entities.Service) serviceItem {
	gallery := make([]galleryItem, 0, len(s.Gallery))
	for _, g := range s.Gallery {
		gallery = append(gallery, galleryItem(g))
	}
	return serviceItem{
		ID:          s.ID,
		Entity:      serviceEntity,
		Title:       s.Title,
		Description: s.Description,
		Image:       s.Image,
		Features:    nonNilStrings(s.Features),
		Benefits:    nonNilStrings(s.Benefits),
		Gallery:     gallery,
		CreatedAt:   formatTime(s.CreatedAt),
		UpdatedAt:   formatTime(s.UpdatedAt),
	}
}

func fromServiceItem(it serviceItem) entities.Service {
	gallery := make([]entities.GalleryItem, 0, len(it.Gallery))
	for _, g := range it.Gallery {
		gallery = append(gallery, entities.GalleryItem(g))
	}
	return entities.Service{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Image:       it.Image,
		Features:    nonNilStrings(it.Features),
		Benefits:    nonNilStrings(it.Benefits),
		Gallery:     gallery,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
