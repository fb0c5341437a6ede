package repository

import (
	"context"
	"strings"

	"skillsync/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository is the collaborator interface to the user-profile store.
// Goal start uses it to auto-inject a template's foundation skills; callers
// treat every error here as non-fatal.
type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) GetSkills(ctx context.Context, userID string) ([]models.SkillDetail, error) {
	var user models.UserProfile
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user.Skills, nil
}

// AddSkills appends the skills the user does not already have (name match is
// case-insensitive) and returns the names actually added.
func (r *UserRepository) AddSkills(ctx context.Context, userID string, skills []models.SkillDetail) ([]string, error) {
	existing, err := r.GetSkills(ctx, userID)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[strings.ToLower(s.Name)] = true
	}

	var toAdd []models.SkillDetail
	var added []string
	for _, s := range skills {
		if !have[strings.ToLower(s.Name)] {
			toAdd = append(toAdd, s)
			added = append(added, s.Name)
		}
	}
	if len(toAdd) == 0 {
		return nil, nil
	}

	_, err = r.Col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"skills": bson.M{"$each": toAdd}}},
	)
	if err != nil {
		return nil, err
	}
	return added, nil
}
