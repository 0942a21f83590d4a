package memberpb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Message is implemented by every member.v1 message type in this package
type Message interface {
	// Descriptor returns the protobuf descriptor of the message
	Descriptor() protoreflect.MessageDescriptor
	writeTo(m protoreflect.Message)
	readFrom(m protoreflect.Message)
}

// ToProto converts msg to a dynamic protobuf message ready for the wire
func ToProto(msg Message) *dynamicpb.Message {
	m := dynamicpb.NewMessage(msg.Descriptor())
	msg.writeTo(m)
	return m
}

// FromProto copies the fields of src into msg. src must have msg's descriptor.
func FromProto(src proto.Message, msg Message) error {
	m := src.ProtoReflect()
	if got, want := m.Descriptor().FullName(), msg.Descriptor().FullName(); got != want {
		return fmt.Errorf("memberpb: cannot read %s into %s", got, want)
	}
	msg.readFrom(m)
	return nil
}

// Marshal encodes msg in protobuf wire format
func Marshal(msg Message) ([]byte, error) {
	return proto.Marshal(ToProto(msg))
}

// Unmarshal decodes protobuf wire data into msg
func Unmarshal(data []byte, msg Message) error {
	m := dynamicpb.NewMessage(msg.Descriptor())
	if err := proto.Unmarshal(data, m); err != nil {
		return err
	}
	msg.readFrom(m)
	return nil
}

// MemberRequest carries member fields for CreateMember and UpdateMember.
// Id is ignored on create.
type MemberRequest struct {
	Id   int64
	Name string
	Age  int32
}

func (*MemberRequest) Descriptor() protoreflect.MessageDescriptor { return memberRequestDesc }

func (x *MemberRequest) writeTo(m protoreflect.Message) {
	setInt64(m, "id", x.Id)
	setString(m, "name", x.Name)
	setInt32(m, "age", x.Age)
}

func (x *MemberRequest) readFrom(m protoreflect.Message) {
	x.Id = get(m, "id").Int()
	x.Name = get(m, "name").String()
	x.Age = int32(get(m, "age").Int())
}

// GetMemberRequest identifies the member to fetch
type GetMemberRequest struct {
	Id int64
}

func (*GetMemberRequest) Descriptor() protoreflect.MessageDescriptor { return getMemberRequestDesc }

func (x *GetMemberRequest) writeTo(m protoreflect.Message) { setInt64(m, "id", x.Id) }

func (x *GetMemberRequest) readFrom(m protoreflect.Message) { x.Id = get(m, "id").Int() }

// DeleteMemberRequest identifies the member to delete
type DeleteMemberRequest struct {
	Id int64
}

func (*DeleteMemberRequest) Descriptor() protoreflect.MessageDescriptor {
	return deleteMemberRequestDesc
}

func (x *DeleteMemberRequest) writeTo(m protoreflect.Message) { setInt64(m, "id", x.Id) }

func (x *DeleteMemberRequest) readFrom(m protoreflect.Message) { x.Id = get(m, "id").Int() }

// ListMembersRequest has no fields
type ListMembersRequest struct{}

func (*ListMembersRequest) Descriptor() protoreflect.MessageDescriptor {
	return listMembersRequestDesc
}

func (*ListMembersRequest) writeTo(protoreflect.Message) {}

func (*ListMembersRequest) readFrom(protoreflect.Message) {}

// MemberResponse is a member plus a human-readable status message
type MemberResponse struct {
	Id      int64
	Name    string
	Age     int32
	Message string
}

func (*MemberResponse) Descriptor() protoreflect.MessageDescriptor { return memberResponseDesc }

func (x *MemberResponse) writeTo(m protoreflect.Message) {
	setInt64(m, "id", x.Id)
	setString(m, "name", x.Name)
	setInt32(m, "age", x.Age)
	setString(m, "message", x.Message)
}

func (x *MemberResponse) readFrom(m protoreflect.Message) {
	x.Id = get(m, "id").Int()
	x.Name = get(m, "name").String()
	x.Age = int32(get(m, "age").Int())
	x.Message = get(m, "message").String()
}

// DeleteMemberResponse reports whether the member existed and was deleted
type DeleteMemberResponse struct {
	Success bool
	Message string
}

func (*DeleteMemberResponse) Descriptor() protoreflect.MessageDescriptor {
	return deleteMemberResponseDesc
}

func (x *DeleteMemberResponse) writeTo(m protoreflect.Message) {
	if x.Success {
		m.Set(field(m, "success"), protoreflect.ValueOfBool(true))
	}
	setString(m, "message", x.Message)
}

func (x *DeleteMemberResponse) readFrom(m protoreflect.Message) {
	x.Success = get(m, "success").Bool()
	x.Message = get(m, "message").String()
}

// ListMembersResponse holds every member
type ListMembersResponse struct {
	Members []*MemberResponse
}

func (*ListMembersResponse) Descriptor() protoreflect.MessageDescriptor {
	return listMembersResponseDesc
}

func (x *ListMembersResponse) writeTo(m protoreflect.Message) {
	if len(x.Members) == 0 {
		return
	}
	list := m.Mutable(field(m, "members")).List()
	for _, member := range x.Members {
		item := list.NewElement()
		member.writeTo(item.Message())
		list.Append(item)
	}
}

func (x *ListMembersResponse) readFrom(m protoreflect.Message) {
	list := get(m, "members").List()
	x.Members = make([]*MemberResponse, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		member := &MemberResponse{}
		member.readFrom(list.Get(i).Message())
		x.Members = append(x.Members, member)
	}
}

func field(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

func get(m protoreflect.Message, name protoreflect.Name) protoreflect.Value {
	return m.Get(field(m, name))
}

// Zero values are skipped: proto3 scalars have no presence.

func setInt64(m protoreflect.Message, name protoreflect.Name, v int64) {
	if v != 0 {
		m.Set(field(m, name), protoreflect.ValueOfInt64(v))
	}
}

func setInt32(m protoreflect.Message, name protoreflect.Name, v int32) {
	if v != 0 {
		m.Set(field(m, name), protoreflect.ValueOfInt32(v))
	}
}

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	if v != "" {
		m.Set(field(m, name), protoreflect.ValueOfString(v))
	}
}
