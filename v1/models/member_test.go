package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMember_TableName(t *testing.T) {
	m := &Member{}
	assert.Equal(t, "members", m.TableName())
}

func TestMember_ToResponse(t *testing.T) {
	m := &Member{ID: 7, Name: "Alice", Age: 30}
	assert.Equal(t, MemberResponse{ID: 7, Name: "Alice", Age: 30}, m.ToResponse())
}

func TestMember_Apply(t *testing.T) {
	m := &Member{ID: 7, Name: "Alice", Age: 30}
	m.Apply(MemberRequest{Name: "Bob", Age: 41})

	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, "Bob", m.Name)
	assert.Equal(t, int32(41), m.Age)
}

func TestNewMemberFromRequest(t *testing.T) {
	m := NewMemberFromRequest(MemberRequest{Name: "", Age: -1})

	assert.Zero(t, m.ID)
	assert.Equal(t, "", m.Name)
	assert.Equal(t, int32(-1), m.Age)
}

func TestNewMemberNotFoundError(t *testing.T) {
	err := NewMemberNotFoundError(99)

	assert.True(t, errors.Is(err, ErrMemberNotFound))
	assert.Contains(t, err.Error(), "Member not found with id: 99")
	assert.Equal(t, "Member not found with id: 99", NotFoundMessage(99))
}
