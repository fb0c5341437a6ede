package repository

import (
	"context"

	"skillsync/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PlanRepository owns the plans collection. One document per user; every
// mutation is a whole-document replace so a plan is always persisted as one
// atomic unit.
type PlanRepository struct {
	Col *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{Col: db.Collection("plans")}
}

// FindByUser returns the user's active plan, or nil when none exists.
func (r *PlanRepository) FindByUser(ctx context.Context, userID string) (*models.GoalPlan, error) {
	var plan models.GoalPlan
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) Create(ctx context.Context, plan *models.GoalPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	_, err := r.Col.InsertOne(ctx, plan)
	return err
}

// Save replaces the stored document with the in-memory plan.
func (r *PlanRepository) Save(ctx context.Context, plan *models.GoalPlan) error {
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": plan.ID}, plan)
	return err
}

// DeleteByUser removes the user's plan. Starting a new goal is a
// destructive reset, not an archival.
func (r *PlanRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
