package models

// MemberRequest carries the mutable fields of a member for create and update
type MemberRequest struct {
	Name string `json:"name"`
	Age  int32  `json:"age"`
}

// MemberResponse is the externally visible projection of a member
type MemberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int32  `json:"age"`
}
