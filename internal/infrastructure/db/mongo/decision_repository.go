package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

const collectionDecisions = "decisiones"

type DecisionRepository struct {
	col *mongo.Collection
}

func NewDecisionRepository(db *mongo.Database) *DecisionRepository {
	return &DecisionRepository{col: db.Collection(collectionDecisions)}
}

// mongoDecision is the stored document. CreatedAt is UnixNano so that list
// order stays stable for decisions created within the same millisecond.
type mongoDecision struct {
	ID        string  `bson:"_id"`
	Text      string  `bson:"texto"`
	Result    *string `bson:"resultado"`
	Succeeded *bool   `bson:"exito"`
	Role      string  `bson:"tipo"`
	CreatedAt int64   `bson:"created_at"`
}

func (m *mongoDecision) toDomain() *domain.Decision {
	return &domain.Decision{
		ID:        m.ID,
		Text:      m.Text,
		Result:    m.Result,
		Succeeded: m.Succeeded,
		Role:      domain.Role(m.Role),
	}
}

// Create inserts a new decision document.
func (r *DecisionRepository) Create(ctx context.Context, in ports.NewDecision) (*domain.Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoDecision{
		ID:        uuid.NewString(),
		Text:      domain.NormalizeText(in.Text),
		Result:    in.Result,
		Succeeded: in.Succeeded,
		Role:      string(in.Role),
		CreatedAt: time.Now().UnixNano(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert decision: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByRole returns every decision of role ordered by creation time.
func (r *DecisionRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"tipo": string(role)}, opts)
	if err != nil {
		return nil, fmt.Errorf("find decisions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoDecision
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode decisions: %w", err)
	}

	out := make([]*domain.Decision, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *DecisionRepository) UpdateText(ctx context.Context, id string, role domain.Role, text string) (*domain.Decision, error) {
	return r.set(ctx, id, role, bson.M{"texto": domain.NormalizeText(text)})
}

func (r *DecisionRepository) UpdateResult(ctx context.Context, id string, role domain.Role, result string) (*domain.Decision, error) {
	return r.set(ctx, id, role, bson.M{"resultado": result})
}

func (r *DecisionRepository) UpdateSucceeded(ctx context.Context, id string, role domain.Role, succeeded bool) (*domain.Decision, error) {
	return r.set(ctx, id, role, bson.M{"exito": succeeded})
}

// Delete removes the decision. When role is non-empty the document must also
// carry that role.
func (r *DecisionRepository) Delete(ctx context.Context, id string, role domain.Role) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, scopeFilter(id, role))
	if err != nil {
		return 0, fmt.Errorf("delete decision: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes on the decisions collection.
func (r *DecisionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tipo", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// Ping reports whether the backing database answers.
func (r *DecisionRepository) Ping(ctx context.Context) error {
	return r.col.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// set applies a single-field $set and returns the updated document.
func (r *DecisionRepository) set(ctx context.Context, id string, role domain.Role, fields bson.M) (*domain.Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoDecision
	err := r.col.FindOneAndUpdate(ctx, scopeFilter(id, role), bson.M{"$set": fields}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDecisionNotFound
		}
		return nil, fmt.Errorf("update decision: %w", err)
	}
	return doc.toDomain(), nil
}

// scopeFilter matches by id and, when role is non-empty, additionally by role.
func scopeFilter(id string, role domain.Role) bson.M {
	filter := bson.M{"_id": id}
	if role != "" {
		filter["tipo"] = string(role)
	}
	return filter
}
