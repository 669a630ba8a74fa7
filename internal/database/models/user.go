package models

// User is a row of the users collection. Every profile column is nullable:
// the roster builder fills in display defaults for whatever is missing.
type User struct {
	BaseModel
	Name      *string `json:"name,omitempty" gorm:"size:200"`
	FullName  *string `json:"full_name,omitempty" gorm:"size:200"`
	Email     *string `json:"email,omitempty" gorm:"size:255;index"`
	Phone     *string `json:"phone,omitempty" gorm:"size:50"`
	Role      *string `json:"role,omitempty" gorm:"size:100"`
	AvatarURL *string `json:"avatar_url,omitempty" gorm:"type:text"`
	Status    *string `json:"status,omitempty" gorm:"type:varchar(20)"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
