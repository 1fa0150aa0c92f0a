package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/CamilaNiebles/sls-assesment/application/ports"
)

// TableProbe reports reachability of the notes table for health checks.
type TableProbe struct {
	client    *dynamodb.Client
	tableName string
}

func NewTableProbe(client *dynamodb.Client, tableName string) *TableProbe {
	return &TableProbe{client: client, tableName: tableName}
}

// Ping issues a DescribeTable. Cheap, requires no item access, and fails
// fast on connectivity or permission problems.
func (p *TableProbe) Ping(ctx context.Context) error {
	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(p.tableName),
	}

	if _, err := p.client.DescribeTable(ctx, input); err != nil {
		return fmt.Errorf("dynamodb probe failed: %w", err)
	}

	return nil
}

var _ ports.DatabaseProbe = (*TableProbe)(nil)
