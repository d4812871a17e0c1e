package repository

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	pkgerrors "github.com/pkg/errors"
)

const (
	adminKind      = "admin"
	emailGuardKind = "email_guard"

	// BatchGetItem accepts at most 100 keys per request.
	batchGetLimit      = 100
	batchGetMaxRetries = 5
)

type adminItem struct {
	ID           string `dynamodbav:"id"`
	Kind         string `dynamodbav:"kind"`
	Email        string `dynamodbav:"email"`
	PasswordHash string `dynamodbav:"password_hash"`
	CreatedAt    string `dynamodbav:"created_at"`
}

type emailGuardItem struct {
	ID      string `dynamodbav:"id"`
	Kind    string `dynamodbav:"kind"`
	AdminID string `dynamodbav:"admin_id"`
}

// AdminDynamoRepository is the admin directory backed by DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI email-index: email (hash)
//
// Email uniqueness is enforced by writing an "email#<email>" guard item in
// the same transaction as the admin item.
type AdminDynamoRepository struct {
	ddb          DynamoDBAPI
	tableName    string
	retryBackoff time.Duration
}

var _ interfaces.IAdminRepository = (*AdminDynamoRepository)(nil)

func NewAdminDynamoRepository(ddb DynamoDBAPI, tableName string) *AdminDynamoRepository {
	return &AdminDynamoRepository{ddb: ddb, tableName: tableName, retryBackoff: 50 * time.Millisecond}
}

func emailGuardID(email string) string {
	return "email#" + strings.ToLower(email)
}

func (r *AdminDynamoRepository) Create(ctx context.Context, a entities.Admin) (entities.Admin, error) {
	adminAV, err := attributevalue.MarshalMap(adminItem{
		ID:           a.ID,
		Kind:         adminKind,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    formatTime(a.CreatedAt),
	})
	if err != nil {
		return entities.Admin{}, pkgerrors.Wrap(err, "marshal admin")
	}
	guardAV, err := attributevalue.MarshalMap(emailGuardItem{ID: emailGuardID(a.Email), Kind: emailGuardKind, AdminID: a.ID})
	if err != nil {
		return entities.Admin{}, pkgerrors.Wrap(err, "marshal email guard")
	}

	notExists := aws.String("attribute_not_exists(#id)")
	names := map[string]string{"#id": "id"}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: adminAV, ConditionExpression: notExists, ExpressionAttributeNames: names}},
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: guardAV, ConditionExpression: notExists, ExpressionAttributeNames: names}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && hasConditionalFailure(tce.CancellationReasons) {
			return entities.Admin{}, interfaces.ErrAdminEmailTaken
		}
		return entities.Admin{}, pkgerrors.Wrapf(err, "create admin %s", a.Email)
	}
	return a, nil
}

func (r *AdminDynamoRepository) GetByID(ctx context.Context, id string) (entities.Admin, error) {
	item, err := getByID(ctx, r.ddb, r.tableName, id)
	if err != nil {
		return entities.Admin{}, err
	}
	return unmarshalAdmin(item)
}

func (r *AdminDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.Admin, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(EmailIndex),
		KeyConditionExpression: aws.String("#email = :email"),
		ExpressionAttributeNames: map[string]string{
			"#email": "email",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: strings.ToLower(email)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Admin{}, pkgerrors.Wrapf(err, "query admin by email")
	}
	if len(out.Items) == 0 {
		return entities.Admin{}, nil
	}
	return unmarshalAdmin(out.Items[0])
}

// List scans the directory and returns administrators ordered by email.
func (r *AdminDynamoRepository) List(ctx context.Context) ([]entities.Admin, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{
			"#kind": "kind",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: adminKind},
		},
	})

	var out []entities.Admin
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "scan admins")
		}
		for _, item := range page.Items {
			a, err := unmarshalAdmin(item)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b entities.Admin) int { return strings.Compare(a.Email, b.Email) })
	return out, nil
}

// BatchGetByIDs fetches admins in chunks of 100 keys, retrying unprocessed
// keys with a linear backoff.
func (r *AdminDynamoRepository) BatchGetByIDs(ctx context.Context, ids []string) (map[string]entities.Admin, error) {
	unique := slices.Compact(slices.Sorted(slices.Values(ids)))
	out := make(map[string]entities.Admin, len(unique))

	for start := 0; start < len(unique); start += batchGetLimit {
		end := min(start+batchGetLimit, len(unique))
		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range unique[start:end] {
			keys = append(keys, idKey(id))
		}

		request := map[string]types.KeysAndAttributes{
			r.tableName: {Keys: keys, ConsistentRead: aws.Bool(true)},
		}
		for attempt := 0; len(request) > 0; attempt++ {
			if attempt > batchGetMaxRetries {
				return nil, pkgerrors.Errorf("batch get admins: unprocessed keys after %d retries", batchGetMaxRetries)
			}
			if attempt > 0 {
				if err := sleepCtx(ctx, time.Duration(attempt)*r.retryBackoff); err != nil {
					return nil, err
				}
			}

			res, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, pkgerrors.Wrap(err, "batch get admins")
			}
			for _, item := range res.Responses[r.tableName] {
				a, err := unmarshalAdmin(item)
				if err != nil {
					return nil, err
				}
				if a.ID != "" {
					out[a.ID] = a
				}
			}
			request = res.UnprocessedKeys
		}
	}
	return out, nil
}

func unmarshalAdmin(item map[string]types.AttributeValue) (entities.Admin, error) {
	if len(item) == 0 {
		return entities.Admin{}, nil
	}
	var it adminItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Admin{}, pkgerrors.Wrap(err, "unmarshal admin")
	}
	if it.Kind != adminKind {
		return entities.Admin{}, nil
	}
	return entities.Admin{
		ID:           it.ID,
		Email:        it.Email,
		PasswordHash: it.PasswordHash,
		CreatedAt:    parseTime(it.CreatedAt),
	}, nil
}

func hasConditionalFailure(reasons []types.CancellationReason) bool {
	for _, r := range reasons {
		if aws.ToString(r.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
