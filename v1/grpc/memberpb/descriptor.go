// Package memberpb holds the member.v1 protobuf contract: message types,
// the MemberService service descriptor, and a typed client.
//
// The file descriptor is assembled at init time from descriptorpb and registered
// in the global protobuf registry, so messages use the standard protobuf wire
// format and are visible to gRPC server reflection. api/proto/member/v1/member.proto
// documents the same contract.
//
// Request types are plain structs, not proto.Message values. Server
// interceptors receive them as-is, so generic interceptors that type-assert
// proto.Message (validators, payload loggers) skip these requests.
package memberpb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	// FileName is the registered path of the member.v1 descriptor
	FileName = "member/v1/member.proto"
	// ServiceName is the fully-qualified gRPC service name
	ServiceName = "member.v1.MemberService"

	packageName = "member.v1"
)

// File is the registered member.v1 file descriptor
var File protoreflect.FileDescriptor

var (
	memberRequestDesc        protoreflect.MessageDescriptor
	getMemberRequestDesc     protoreflect.MessageDescriptor
	deleteMemberRequestDesc  protoreflect.MessageDescriptor
	listMembersRequestDesc   protoreflect.MessageDescriptor
	memberResponseDesc       protoreflect.MessageDescriptor
	deleteMemberResponseDesc protoreflect.MessageDescriptor
	listMembersResponseDesc  protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("memberpb: invalid file descriptor: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("memberpb: failed to register %s: %v", FileName, err))
	}
	File = fd

	msgs := fd.Messages()
	for i := 0; i < msgs.Len(); i++ {
		if err := protoregistry.GlobalTypes.RegisterMessage(dynamicpb.NewMessageType(msgs.Get(i))); err != nil {
			panic(fmt.Sprintf("memberpb: failed to register %s: %v", msgs.Get(i).FullName(), err))
		}
	}

	memberRequestDesc = msgs.ByName("MemberRequest")
	getMemberRequestDesc = msgs.ByName("GetMemberRequest")
	deleteMemberRequestDesc = msgs.ByName("DeleteMemberRequest")
	listMembersRequestDesc = msgs.ByName("ListMembersRequest")
	memberResponseDesc = msgs.ByName("MemberResponse")
	deleteMemberResponseDesc = msgs.ByName("DeleteMemberResponse")
	listMembersResponseDesc = msgs.ByName("ListMembersResponse")
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FileName),
		Package: proto.String(packageName),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/gov-dx-sandbox/member-service/v1/grpc/memberpb"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			message("MemberRequest",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
				scalar("name", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("age", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			),
			message("GetMemberRequest",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
			),
			message("DeleteMemberRequest",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
			),
			message("ListMembersRequest"),
			message("MemberResponse",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT64),
				scalar("name", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("age", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				scalar("message", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("DeleteMemberResponse",
				scalar("success", 1, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
				scalar("message", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("ListMembersResponse", &descriptorpb.FieldDescriptorProto{
				Name:     proto.String("members"),
				JsonName: proto.String("members"),
				Number:   proto.Int32(1),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
				TypeName: proto.String("." + packageName + ".MemberResponse"),
			}),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("MemberService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				rpc("CreateMember", "MemberRequest", "MemberResponse"),
				rpc("GetMember", "GetMemberRequest", "MemberResponse"),
				rpc("UpdateMember", "MemberRequest", "MemberResponse"),
				rpc("DeleteMember", "DeleteMemberRequest", "DeleteMemberResponse"),
				rpc("ListMembers", "ListMembersRequest", "ListMembersResponse"),
			},
		}},
	}
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func scalar(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func rpc(name, input, output string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + packageName + "." + input),
		OutputType: proto.String("." + packageName + "." + output),
	}
}
