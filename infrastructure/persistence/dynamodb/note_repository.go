package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/application/ports"
	"github.com/CamilaNiebles/sls-assesment/domain/notes"
)

// NoteRepository implements the notes store contract on DynamoDB. Single
// table, PK = USER#<ownerId>, SK = NOTE#<id>; the owner id is part of the
// primary key on every operation, so cross-owner access is structurally
// impossible rather than filtered.
type NoteRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
	now       func() time.Time
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *NoteRepository {
	return &NoteRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
		now:       time.Now,
	}
}

// noteItem represents the DynamoDB item structure for a note
type noteItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	NoteID     string `dynamodbav:"NoteID"`
	OwnerID    string `dynamodbav:"OwnerID"`
	Title      string `dynamodbav:"Title"`
	Content    string `dynamodbav:"Content"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

func ownerPK(ownerID string) string {
	return fmt.Sprintf("USER#%s", ownerID)
}

func noteSK(id string) string {
	return fmt.Sprintf("NOTE#%s", id)
}

func noteKey(ownerID, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: ownerPK(ownerID)},
		"SK": &types.AttributeValueMemberS{Value: noteSK(id)},
	}
}

// Create persists a full note record. The input is returned unchanged on
// success; id collisions are not checked because ids come from a
// collision-resistant generator.
func (r *NoteRepository) Create(ctx context.Context, note *notes.Note) (*notes.Note, error) {
	item := noteItem{
		PK:         ownerPK(note.OwnerID),
		SK:         noteSK(note.ID),
		EntityType: "NOTE",
		NoteID:     note.ID,
		OwnerID:    note.OwnerID,
		Title:      note.Title,
		Content:    note.Content,
		CreatedAt:  note.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  note.UpdatedAt.Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal note: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save note to DynamoDB",
			zap.String("noteID", note.ID),
			zap.String("ownerID", note.OwnerID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	r.logger.Debug("Note saved",
		zap.String("noteID", note.ID),
		zap.String("ownerID", note.OwnerID),
	)

	return note, nil
}

// ListByOwner returns every note belonging to the owner, following
// LastEvaluatedKey so large owner sets come back whole. Order is whatever
// the backend returns.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*notes.Note, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(ownerPK(ownerID))).
		And(expression.Key("SK").BeginsWith("NOTE#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result := make([]*notes.Note, 0)
	var startKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		}

		out, err := r.client.Query(ctx, input)
		if err != nil {
			r.logger.Error("Failed to query notes",
				zap.String("ownerID", ownerID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to list notes for owner: %w", err)
		}

		page, err := notesFromItems(out.Items)
		if err != nil {
			r.logger.Error("Corrupt note item in owner listing",
				zap.String("ownerID", ownerID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to list notes for owner: %w", err)
		}
		result = append(result, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return result, nil
}

// UpdateFields performs a partial update: exactly the fields present in the
// mask are written, UpdatedAt is rewritten unconditionally, everything else
// stays untouched. The condition on PK makes updates against a missing
// (owner, id) fail instead of upserting a partial row.
func (r *NoteRepository) UpdateFields(ctx context.Context, ownerID, id string, mask notes.FieldMask) (*notes.Note, error) {
	expr, err := r.buildUpdateExpression(mask)
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       noteKey(ownerID, id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	}

	out, err := r.client.UpdateItem(ctx, input)
	if err != nil {
		r.logger.Error("Failed to update note",
			zap.String("noteID", id),
			zap.String("ownerID", ownerID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	var item noteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated note: %w", err)
	}

	note, err := item.toNote()
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct updated note: %w", err)
	}

	return note, nil
}

// buildUpdateExpression assembles the SET clause from the mask. UpdatedAt is
// always part of it; writing all fields unconditionally here would clobber
// attributes the caller never named, which is exactly what the mask exists
// to prevent.
func (r *NoteRepository) buildUpdateExpression(mask notes.FieldMask) (expression.Expression, error) {
	update := expression.Set(
		expression.Name("UpdatedAt"),
		expression.Value(r.now().UTC().Format(time.RFC3339)),
	)

	for _, field := range mask {
		switch field.Name {
		case notes.FieldTitle:
			update = update.Set(expression.Name("Title"), expression.Value(field.Value))
		case notes.FieldContent:
			update = update.Set(expression.Name("Content"), expression.Value(field.Value))
		default:
			return expression.Expression{}, fmt.Errorf("unknown update field: %s", field.Name)
		}
	}

	return expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
}

// DeleteByID removes the note. DynamoDB deletes are silent about absent
// keys, so success here never implies the row existed.
func (r *NoteRepository) DeleteByID(ctx context.Context, ownerID, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       noteKey(ownerID, id),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		r.logger.Error("Failed to delete note",
			zap.String("noteID", id),
			zap.String("ownerID", ownerID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

// toNote reconstructs the domain entity from a stored item
func (i noteItem) toNote() (*notes.Note, error) {
	return notes.Reconstruct(i.NoteID, i.OwnerID, i.Title, i.Content, i.CreatedAt, i.UpdatedAt)
}

// notesFromItems converts one query page. A row that fails to unmarshal or
// reconstruct fails the whole listing; silently dropping it would shrink the
// owner's list without any signal that the table holds bad data.
func notesFromItems(items []map[string]types.AttributeValue) ([]*notes.Note, error) {
	result := make([]*notes.Note, 0, len(items))
	for _, raw := range items {
		var item noteItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal note item: %w", err)
		}

		note, err := item.toNote()
		if err != nil {
			return nil, fmt.Errorf("corrupt note item %q: %w", item.NoteID, err)
		}
		result = append(result, note)
	}
	return result, nil
}

var _ ports.NoteRepository = (*NoteRepository)(nil)
