package memberpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Full method names of MemberService
const (
	MemberServiceCreateMemberFullMethodName = "/" + ServiceName + "/CreateMember"
	MemberServiceGetMemberFullMethodName    = "/" + ServiceName + "/GetMember"
	MemberServiceUpdateMemberFullMethodName = "/" + ServiceName + "/UpdateMember"
	MemberServiceDeleteMemberFullMethodName = "/" + ServiceName + "/DeleteMember"
	MemberServiceListMembersFullMethodName  = "/" + ServiceName + "/ListMembers"
)

// MemberServiceServer is the server API for MemberService
type MemberServiceServer interface {
	CreateMember(context.Context, *MemberRequest) (*MemberResponse, error)
	GetMember(context.Context, *GetMemberRequest) (*MemberResponse, error)
	UpdateMember(context.Context, *MemberRequest) (*MemberResponse, error)
	DeleteMember(context.Context, *DeleteMemberRequest) (*DeleteMemberResponse, error)
	ListMembers(context.Context, *ListMembersRequest) (*ListMembersResponse, error)
}

// RegisterMemberServiceServer registers srv on s
func RegisterMemberServiceServer(s grpc.ServiceRegistrar, srv MemberServiceServer) {
	s.RegisterService(&MemberServiceDesc, srv)
}

// MemberServiceDesc is the grpc.ServiceDesc for MemberService
var MemberServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MemberServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateMember", Handler: unaryHandler(MemberServiceCreateMemberFullMethodName, MemberServiceServer.CreateMember)},
		{MethodName: "GetMember", Handler: unaryHandler(MemberServiceGetMemberFullMethodName, MemberServiceServer.GetMember)},
		{MethodName: "UpdateMember", Handler: unaryHandler(MemberServiceUpdateMemberFullMethodName, MemberServiceServer.UpdateMember)},
		{MethodName: "DeleteMember", Handler: unaryHandler(MemberServiceDeleteMemberFullMethodName, MemberServiceServer.DeleteMember)},
		{MethodName: "ListMembers", Handler: unaryHandler(MemberServiceListMembersFullMethodName, MemberServiceServer.ListMembers)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: FileName,
}

// unaryHandler decodes the wire request into Req, runs call through the
// interceptor chain, and encodes the typed response. Interceptors see the
// typed request.
func unaryHandler[Req any, PReq interface {
	*Req
	Message
}, Resp Message](fullMethod string, call func(MemberServiceServer, context.Context, PReq) (Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		var req PReq = new(Req)
		in := dynamicpb.NewMessage(req.Descriptor())
		if err := dec(in); err != nil {
			return nil, err
		}
		req.readFrom(in)

		handler := func(ctx context.Context, r any) (any, error) {
			resp, err := call(srv.(MemberServiceServer), ctx, r.(PReq))
			if err != nil {
				return nil, err
			}
			return ToProto(resp), nil
		}
		if interceptor == nil {
			return handler(ctx, req)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		return interceptor(ctx, req, info, handler)
	}
}

// MemberServiceClient is a typed client for MemberService
type MemberServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMemberServiceClient creates a client over cc
func NewMemberServiceClient(cc grpc.ClientConnInterface) *MemberServiceClient {
	return &MemberServiceClient{cc: cc}
}

func (c *MemberServiceClient) CreateMember(ctx context.Context, in *MemberRequest, opts ...grpc.CallOption) (*MemberResponse, error) {
	out := &MemberResponse{}
	if err := c.invoke(ctx, MemberServiceCreateMemberFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MemberServiceClient) GetMember(ctx context.Context, in *GetMemberRequest, opts ...grpc.CallOption) (*MemberResponse, error) {
	out := &MemberResponse{}
	if err := c.invoke(ctx, MemberServiceGetMemberFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MemberServiceClient) UpdateMember(ctx context.Context, in *MemberRequest, opts ...grpc.CallOption) (*MemberResponse, error) {
	out := &MemberResponse{}
	if err := c.invoke(ctx, MemberServiceUpdateMemberFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MemberServiceClient) DeleteMember(ctx context.Context, in *DeleteMemberRequest, opts ...grpc.CallOption) (*DeleteMemberResponse, error) {
	out := &DeleteMemberResponse{}
	if err := c.invoke(ctx, MemberServiceDeleteMemberFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MemberServiceClient) ListMembers(ctx context.Context, in *ListMembersRequest, opts ...grpc.CallOption) (*ListMembersResponse, error) {
	out := &ListMembersResponse{}
	if err := c.invoke(ctx, MemberServiceListMembersFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MemberServiceClient) invoke(ctx context.Context, method string, in, out Message, opts ...grpc.CallOption) error {
	resp := dynamicpb.NewMessage(out.Descriptor())
	if err := c.cc.Invoke(ctx, method, ToProto(in), resp, opts...); err != nil {
		return err
	}
	out.readFrom(resp)
	return nil
}
