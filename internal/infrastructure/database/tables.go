package database

import (
	"context"
	"errors"
	"time"

	"github.com/Diilaye/batimo/internal/adapter/persistence/repository"
	appconfig "github.com/Diilaye/batimo/internal/config"
	"github.com/Diilaye/batimo/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	pkgerrors "github.com/pkg/errors"
)

const tableActiveTimeout = 2 * time.Minute

// TableAPI is the part of the DynamoDB client needed to bootstrap tables.
type TableAPI interface {
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// TableSpecs returns the definition of every table the API uses.
func TableSpecs(cfg appconfig.DynamoDBConfig) []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		entityTable(cfg.QuotesTable),
		adminTable(cfg.AdminsTable),
		entityTable(cfg.MessagesTable),
		entityTable(cfg.ServicesTable),
	}
}

// EnsureTables creates missing tables and waits for them to become active.
// Existing tables are left as they are.
func EnsureTables(ctx context.Context, api TableAPI, cfg appconfig.DynamoDBConfig, log logger.Logger) error {
	for _, spec := range TableSpecs(cfg) {
		name := aws.ToString(spec.TableName)

		_, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: spec.TableName})
		if err == nil {
			log.Debug("dynamodb table present", logger.String("table", name))
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return pkgerrors.Wrapf(err, "describe table %s", name)
		}

		out, err := api.CreateTable(ctx, spec)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return pkgerrors.Wrapf(err, "create table %s", name)
		}
		log.Info("dynamodb table created", logger.String("table", name))

		if out.TableDescription != nil && out.TableDescription.TableStatus == types.TableStatusActive {
			continue
		}
		waiter := dynamodb.NewTableExistsWaiter(api)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: spec.TableName}, tableActiveTimeout); err != nil {
			return pkgerrors.Wrapf(err, "wait for table %s", name)
		}
	}
	return nil
}

func entityTable(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("entity"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("created_at"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(repository.EntityCreatedAtIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("entity"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("created_at"), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}
}

func adminTable(name string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("email"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(repository.EmailIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("email"), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}
}
