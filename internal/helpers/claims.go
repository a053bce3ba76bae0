package helpers

import "go.mongodb.org/mongo-driver/bson/primitive"

// AuthClaims is what the auth middleware stores in the request context:
// the verified token identity enriched with the stored profile.
type AuthClaims struct {
	UserID   primitive.ObjectID
	Role     string
	Username string
	Email    string
	Name     string
	Avatar   string
}

func (ac *AuthClaims) IsHost() bool {
	return ac.Role == "host"
}

func (ac *AuthClaims) HasRole(role string) bool {
	return ac.Role == role
}

func (ac *AuthClaims) IsOwner(userID primitive.ObjectID) bool {
	return ac.UserID == userID
}
