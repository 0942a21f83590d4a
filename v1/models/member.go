package models

// Member represents a member row in the members table
type Member struct {
	// ID is assigned by the database on insert and never changes afterwards
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(255)" json:"name"`
	Age  int32  `gorm:"column:age" json:"age"`
}

// TableName specifies the table name for GORM
func (*Member) TableName() string {
	return "members"
}

// ToResponse projects a persisted member onto its API shape
func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:   m.ID,
		Name: m.Name,
		Age:  m.Age,
	}
}

// Apply overwrites the mutable fields of the member with the request values
func (m *Member) Apply(req MemberRequest) {
	m.Name = req.Name
	m.Age = req.Age
}

// NewMemberFromRequest builds an unsaved member from a request
func NewMemberFromRequest(req MemberRequest) *Member {
	member := &Member{}
	member.Apply(req)
	return member
}
