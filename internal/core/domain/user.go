package domain

// User models a registered marketplace account.
type User struct {
	ID           int64  `json:"id" bson:"_id,omitempty"`
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Avatar       string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsStaff      bool   `json:"is_staff" bson:"is_staff"`
}
