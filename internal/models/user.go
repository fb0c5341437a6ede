package models

// UserProfile is the slice of the user document this service touches: the
// skill list used for best-effort auto-injection on goal start. The profile
// itself is owned by the external user service.
type UserProfile struct {
	ID     string        `bson:"_id,omitempty" json:"id"`
	UserID string        `bson:"user_id" json:"user_id"`
	Skills []SkillDetail `bson:"skills" json:"skills"`
}
